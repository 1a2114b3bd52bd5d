// Package ecs provides generational handles, index-stable storage and the
// event plumbing used by the physics world.
package ecs

import "strconv"

// Entity is a weak handle: a slot id in the low 32 bits and the slot's
// generation in the high 32 bits. A handle goes stale once its slot is
// destroyed, even if the slot is reused.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// ID is the slot id, usable as a SparseSet key.
func (e Entity) ID() int {
	return int(e.id())
}

func (e Entity) String() string {
	return strconv.Itoa(int(e.id())) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

func (e Entity) Valid() bool {
	return e.id() > 0
}
