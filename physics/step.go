package physics

import (
	"slices"

	"github.com/jakecoffman/cp"
)

type contactPhase int

const (
	phaseBegin contactPhase = iota
	phaseStay
	phaseEnd
)

func (p *Physics2D) applyEffectors(dt float64) {
	for _, rb := range p.bodies.Values() {
		if rb.destroyed {
			continue
		}
		if !rb.enabled || rb.mode == ModeStatic {
			rb.velocity = cp.Vector{}
			rb.angularVelocity = 0
			rb.clearForces()
			continue
		}
		if rb.mode == ModeDynamic {
			drag := rb.velocity.Mult(-rb.drag)
			accel := p.gravity.Add(rb.forces.Add(drag).Mult(1 / rb.mass))
			rb.velocity = rb.velocity.Add(accel.Mult(dt))
			if rb.moment > 0 {
				rb.angularVelocity += rb.torque / rb.moment * dt
			}
		}
		rb.clearForces()
	}
}

func (p *Physics2D) moveRigidbodies(dt float64) {
	for _, rb := range p.bodies.Values() {
		if rb.destroyed || !rb.enabled || rb.mode == ModeStatic {
			continue
		}
		rb.prevPosition = rb.position
		rb.position = rb.position.Add(rb.velocity.Mult(dt))
		rb.rotation += rb.angularVelocity * dt
		rb.verletVelocity = rb.position.Sub(rb.prevPosition).Mult(1 / dt)
	}
}

func (p *Physics2D) updateWorldShapes() {
	for _, c := range p.colliders.Values() {
		if !c.IsDestroyed() {
			c.UpdateWorldShape()
		}
	}
}

// canCollide filters pairs before any geometry is tested.
func canCollide(a, b Collider2D) bool {
	if a.IsDestroyed() || b.IsDestroyed() {
		return false
	}
	ra, rb := a.Rigidbody(), b.Rigidbody()
	if ra == nil || rb == nil || ra == rb {
		return false
	}
	if ra.destroyed || rb.destroyed || !ra.enabled || !rb.enabled {
		return false
	}
	return ra.mode != ModeStatic || rb.mode != ModeStatic
}

func (p *Physics2D) detectCollisions() {
	colliders := p.colliders.Values()
	for i := 0; i < len(colliders); i++ {
		for j := i + 1; j < len(colliders); j++ {
			me, them := colliders[i], colliders[j]
			if !canCollide(me, them) || !me.Intersects(them) {
				continue
			}
			collision := Collision2D{
				Me:       me,
				Them:     them,
				Manifold: me.GetManifold(them),
				Pair:     NewPairID(me.ID(), them.ID()),
				FrameID:  p.frameID,
			}
			p.unresolved.Push(collision)
			p.recordContact(collision)
		}
	}
	p.sweepStaleContacts()
}

func (p *Physics2D) recordContact(collision Collision2D) {
	if entry, ok := p.contacts[collision.Pair]; ok {
		entry.collision = collision
		entry.lastFrame = p.frameID
		p.fireContactEvent(collision, phaseStay)
		return
	}
	p.contacts[collision.Pair] = &contactEntry{collision: collision, lastFrame: p.frameID}
	p.fireContactEvent(collision, phaseBegin)
}

// sweepStaleContacts ends every cached pair not seen this step, in pair order.
func (p *Physics2D) sweepStaleContacts() {
	var stale []PairID
	for pair, entry := range p.contacts {
		if entry.lastFrame != p.frameID {
			stale = append(stale, pair)
		}
	}
	slices.SortFunc(stale, func(a, b PairID) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
	for _, pair := range stale {
		entry := p.contacts[pair]
		delete(p.contacts, pair)
		p.fireContactEvent(entry.collision, phaseEnd)
	}
}

// fireContactEvent notifies both participants. Trigger pairs only report
// when the bodies share a layer; solid pairs only when their layers interact.
func (p *Physics2D) fireContactEvent(collision Collision2D, phase contactPhase) {
	me, them := collision.MyRigidbody(), collision.TheirRigidbody()
	if me == nil || them == nil {
		return
	}

	trigger := collision.IsTrigger()
	if trigger && me.layer != them.layer {
		return
	}
	if !trigger && !p.DoLayersInteract(me.layer, them.layer) {
		return
	}

	mine := collision
	theirs := collision.GetInversed()
	if phase != phaseEnd || !me.destroyed {
		contactDelegate(me, trigger, phase).Invoke(&mine)
	}
	if phase != phaseEnd || !them.destroyed {
		contactDelegate(them, trigger, phase).Invoke(&theirs)
	}
}

func contactDelegate(rb *Rigidbody2D, trigger bool, phase contactPhase) interface{ Invoke(*Collision2D) } {
	switch {
	case trigger && phase == phaseBegin:
		return &rb.OnTriggerBegin
	case trigger && phase == phaseStay:
		return &rb.OnTriggerStay
	case trigger:
		return &rb.OnTriggerEnd
	case phase == phaseBegin:
		return &rb.OnOverlapBegin
	case phase == phaseStay:
		return &rb.OnOverlapStay
	default:
		return &rb.OnOverlapEnd
	}
}

func (p *Physics2D) resolveCollisions() {
	for _, collision := range p.unresolved.Drain() {
		if collision.Me.IsDestroyed() || collision.Them.IsDestroyed() {
			continue
		}
		me, them := collision.MyRigidbody(), collision.TheirRigidbody()
		if me == nil || them == nil || me.destroyed || them.destroyed {
			continue
		}
		if collision.IsTrigger() || !p.DoLayersInteract(me.layer, them.layer) {
			continue
		}
		p.correctObjectsInCollision(collision)
		p.applyCollisionImpulses(collision)
	}
}

// correctObjectsInCollision pushes the bodies apart along the normal. The
// less immovable body takes all of it; equal modes split by mass.
func (p *Physics2D) correctObjectsInCollision(collision Collision2D) {
	depth := collision.Manifold.Penetration
	if depth <= 0 {
		return
	}
	me, them := collision.MyRigidbody(), collision.TheirRigidbody()

	var myShare, theirShare float64
	switch {
	case me.mode > them.mode:
		theirShare = 1
	case me.mode < them.mode:
		myShare = 1
	default:
		total := me.mass + them.mass
		myShare = them.mass / total
		theirShare = me.mass / total
	}

	push := collision.Manifold.Normal.Mult(depth)
	if myShare > 0 {
		me.position = me.position.Add(push.Mult(myShare))
		me.syncCollider()
	}
	if theirShare > 0 {
		them.position = them.position.Sub(push.Mult(theirShare))
		them.syncCollider()
	}
}

// applyCollisionImpulses resolves the normal and friction impulses at the
// contact edge.
func (p *Physics2D) applyCollisionImpulses(collision Collision2D) {
	me, them := collision.MyRigidbody(), collision.TheirRigidbody()
	normal := collision.Manifold.Normal
	edge := collision.Manifold.ContactEdge

	rMe := edge.ClosestPoint(me.position).Sub(me.position)
	rThem := edge.ClosestPoint(them.position).Sub(them.position)

	relative := me.GetImpactVelocity(me.position.Add(rMe)).Sub(them.GetImpactVelocity(them.position.Add(rThem)))
	vn := relative.Dot(normal)
	if vn > 0 {
		return
	}

	invMassMe, invMassThem := me.inverseMass(), them.inverseMass()
	invMomentMe, invMomentThem := me.inverseMoment(), them.inverseMoment()
	effectiveMass := func(dir cp.Vector) float64 {
		a, b := rMe.Cross(dir), rThem.Cross(dir)
		return invMassMe + invMassThem + a*a*invMomentMe + b*b*invMomentThem
	}

	denom := effectiveMass(normal)
	if denom <= 0 {
		return
	}
	myMaterial, theirMaterial := collision.Me.Material(), collision.Them.Material()
	restitution := myMaterial.GetBounceWith(theirMaterial)
	jn := -(1 + restitution) * vn / denom

	tangent := normal.Perp()
	jt := 0.0
	if denomT := effectiveMass(tangent); denomT > 0 {
		limit := myMaterial.GetFrictionWith(theirMaterial) * jn
		jt = cp.Clamp(-relative.Dot(tangent)/denomT, -limit, limit)
	}

	impulse := normal.Mult(jn).Add(tangent.Mult(jt))
	me.applyImpulse(impulse, rMe)
	them.applyImpulse(impulse.Neg(), rThem)
}

func (p *Physics2D) cleanupDestroyedObjects() {
	var deadColliders []Collider2D
	for _, c := range p.colliders.Values() {
		if c.IsDestroyed() {
			deadColliders = append(deadColliders, c)
		}
	}
	for _, c := range deadColliders {
		b := c.base()
		if rb := b.rigidbody; rb != nil && rb.collider == c {
			rb.collider = nil
			rb.recalculateMoment()
		}
		p.colliders.Remove(b.entity.ID())
		p.registry.Destroy(b.entity)
	}

	var deadBodies []*Rigidbody2D
	for _, rb := range p.bodies.Values() {
		if rb.destroyed {
			deadBodies = append(deadBodies, rb)
		}
	}
	for _, rb := range deadBodies {
		p.bodies.Remove(rb.entity.ID())
		p.registry.Destroy(rb.entity)
	}
}
