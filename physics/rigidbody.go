package physics

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/doomenstein/ecs"
)

// SimulationMode orders bodies by how immovable they are; a higher mode
// wins positional correction.
type SimulationMode int

const (
	ModeDynamic SimulationMode = iota
	ModeKinematic
	ModeStatic
)

func (m SimulationMode) String() string {
	switch m {
	case ModeDynamic:
		return "dynamic"
	case ModeKinematic:
		return "kinematic"
	case ModeStatic:
		return "static"
	default:
		return fmt.Sprintf("SimulationMode(%d)", int(m))
	}
}

func ParseSimulationMode(s string) (SimulationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dynamic":
		return ModeDynamic, nil
	case "kinematic":
		return ModeKinematic, nil
	case "static":
		return ModeStatic, nil
	default:
		return ModeDynamic, fmt.Errorf("unknown simulation mode %q", s)
	}
}

// Rigidbody2D is a simulated body. It owns at most one collider and is
// created and reaped by Physics2D.
type Rigidbody2D struct {
	entity   ecs.Entity
	physics  *Physics2D
	collider Collider2D

	position        cp.Vector
	prevPosition    cp.Vector
	verletVelocity  cp.Vector
	rotation        float64
	velocity        cp.Vector
	angularVelocity float64
	mass            float64
	drag            float64
	moment          float64
	mode            SimulationMode
	layer           uint
	enabled         bool
	destroyed       bool

	forces cp.Vector
	torque float64

	userTag  string
	userData any

	OnOverlapBegin ecs.Delegate[*Collision2D]
	OnOverlapStay  ecs.Delegate[*Collision2D]
	OnOverlapEnd   ecs.Delegate[*Collision2D]
	OnTriggerBegin ecs.Delegate[*Collision2D]
	OnTriggerStay  ecs.Delegate[*Collision2D]
	OnTriggerEnd   ecs.Delegate[*Collision2D]
}

func (rb *Rigidbody2D) Entity() ecs.Entity       { return rb.entity }
func (rb *Rigidbody2D) Physics() *Physics2D      { return rb.physics }
func (rb *Rigidbody2D) Collider() Collider2D     { return rb.collider }
func (rb *Rigidbody2D) Position() cp.Vector      { return rb.position }
func (rb *Rigidbody2D) Rotation() float64        { return rb.rotation }
func (rb *Rigidbody2D) Velocity() cp.Vector      { return rb.velocity }
func (rb *Rigidbody2D) AngularVelocity() float64 { return rb.angularVelocity }
func (rb *Rigidbody2D) Mass() float64            { return rb.mass }
func (rb *Rigidbody2D) Drag() float64            { return rb.drag }
func (rb *Rigidbody2D) Moment() float64          { return rb.moment }
func (rb *Rigidbody2D) Mode() SimulationMode     { return rb.mode }
func (rb *Rigidbody2D) Layer() uint              { return rb.layer }
func (rb *Rigidbody2D) IsEnabled() bool          { return rb.enabled }
func (rb *Rigidbody2D) IsDestroyed() bool        { return rb.destroyed }
func (rb *Rigidbody2D) UserTag() string          { return rb.userTag }
func (rb *Rigidbody2D) UserData() any            { return rb.userData }

// GetVerletVelocity is the displacement of the last step divided by its
// duration. It is diagnostic only; integration uses Velocity.
func (rb *Rigidbody2D) GetVerletVelocity() cp.Vector { return rb.verletVelocity }

func (rb *Rigidbody2D) SetPosition(p cp.Vector) {
	rb.position = p
	rb.prevPosition = p
	rb.syncCollider()
}

// SetRotation sets the orientation in radians.
func (rb *Rigidbody2D) SetRotation(radians float64) {
	rb.rotation = radians
	rb.syncCollider()
}

func (rb *Rigidbody2D) SetVelocity(v cp.Vector)      { rb.velocity = v }
func (rb *Rigidbody2D) SetAngularVelocity(w float64) { rb.angularVelocity = w }
func (rb *Rigidbody2D) SetDrag(drag float64)         { rb.drag = drag }
func (rb *Rigidbody2D) SetEnabled(enabled bool)      { rb.enabled = enabled }

func (rb *Rigidbody2D) SetMode(mode SimulationMode) {
	rb.mode = mode
	if mode == ModeStatic {
		rb.velocity = cp.Vector{}
		rb.angularVelocity = 0
	}
}

func (rb *Rigidbody2D) SetMass(mass float64) {
	if mass <= 0 {
		panicf("rigidbody mass must be positive, got %v", mass)
	}
	rb.mass = mass
	rb.recalculateMoment()
}

func (rb *Rigidbody2D) SetLayer(layer uint) {
	checkLayer(layer)
	rb.layer = layer
}

func (rb *Rigidbody2D) SetUserData(tag string, data any) {
	rb.userTag = tag
	rb.userData = data
}

// AddForce accumulates a force applied during the next ApplyEffectors.
func (rb *Rigidbody2D) AddForce(f cp.Vector) {
	rb.forces = rb.forces.Add(f)
}

func (rb *Rigidbody2D) AddTorque(t float64) {
	rb.torque += t
}

// AddImpulse changes velocity immediately as if impulse were applied at
// worldPoint. Only dynamic bodies respond.
func (rb *Rigidbody2D) AddImpulse(impulse, worldPoint cp.Vector) {
	rb.applyImpulse(impulse, worldPoint.Sub(rb.position))
}

// GetImpactVelocity is the velocity of the body's material at worldPoint.
func (rb *Rigidbody2D) GetImpactVelocity(worldPoint cp.Vector) cp.Vector {
	r := worldPoint.Sub(rb.position)
	return rb.velocity.Add(r.Perp().Mult(rb.angularVelocity))
}

// TakeCollider attaches c, destroying any collider held before. Passing nil
// destroys the current collider.
func (rb *Rigidbody2D) TakeCollider(c Collider2D) {
	if rb == nil || rb.collider == c {
		return
	}
	if rb.collider != nil {
		rb.collider.Destroy()
		rb.collider = nil
	}
	if c != nil {
		if prev := c.base().rigidbody; prev != nil && prev.collider == c {
			prev.collider = nil
			prev.recalculateMoment()
		}
		c.base().rigidbody = rb
		rb.collider = c
		c.UpdateWorldShape()
	}
	rb.recalculateMoment()
}

// Destroy marks the body and its collider for removal at the end of the
// current step.
func (rb *Rigidbody2D) Destroy() {
	if rb == nil || rb.destroyed {
		return
	}
	rb.destroyed = true
	if rb.collider != nil {
		rb.collider.Destroy()
	}
}

func (rb *Rigidbody2D) inverseMass() float64 {
	if rb.mode != ModeDynamic {
		return 0
	}
	return 1 / rb.mass
}

func (rb *Rigidbody2D) inverseMoment() float64 {
	if rb.mode != ModeDynamic || rb.moment <= 0 {
		return 0
	}
	return 1 / rb.moment
}

// applyImpulse applies impulse at offset r from the body origin.
func (rb *Rigidbody2D) applyImpulse(impulse, r cp.Vector) {
	if rb.mode != ModeDynamic {
		return
	}
	rb.velocity = rb.velocity.Add(impulse.Mult(rb.inverseMass()))
	rb.angularVelocity += r.Cross(impulse) * rb.inverseMoment()
}

func (rb *Rigidbody2D) recalculateMoment() {
	if rb.collider == nil {
		rb.moment = 0
		return
	}
	rb.moment = rb.collider.CalculateMoment(rb.mass)
}

func (rb *Rigidbody2D) syncCollider() {
	if rb.collider != nil {
		rb.collider.UpdateWorldShape()
	}
}

func (rb *Rigidbody2D) clearForces() {
	rb.forces = cp.Vector{}
	rb.torque = 0
}
