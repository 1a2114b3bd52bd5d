package ecs

// Registry hands out entity handles, tracking generations and free ids.
type Registry struct {
	nextID entityID
	gen    []generation
	free   []entityID
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Create() Entity {
	if r == nil {
		return 0
	}
	var id entityID
	if len(r.free) > 0 {
		id = r.free[len(r.free)-1]
		r.free = r.free[:len(r.free)-1]
	} else {
		r.nextID++
		id = r.nextID
		r.gen = append(r.gen, 0)
	}
	return makeEntity(id, r.gen[id-1])
}

// Destroy releases e. It reports false for stale or unknown handles.
func (r *Registry) Destroy(e Entity) bool {
	if !r.IsAlive(e) {
		return false
	}
	idx := e.id() - 1
	r.gen[idx]++
	r.free = append(r.free, e.id())
	return true
}

func (r *Registry) IsAlive(e Entity) bool {
	if r == nil || !e.Valid() || int(e.id()) > len(r.gen) {
		return false
	}
	return r.gen[e.id()-1] == e.generation()
}

// Len is the number of live handles.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.gen) - len(r.free)
}
