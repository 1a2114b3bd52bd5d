package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/doomenstein/ecs"
	"github.com/milk9111/doomenstein/geom"
)

type ColliderType int

const (
	ColliderDisc ColliderType = iota
	ColliderPolygon
)

func (t ColliderType) String() string {
	switch t {
	case ColliderDisc:
		return "disc"
	case ColliderPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Collider2D is the shape attached to a rigidbody. The set of variants is
// closed: DiscCollider2D and PolygonCollider2D.
type Collider2D interface {
	ID() int
	Type() ColliderType
	Physics() *Physics2D
	Rigidbody() *Rigidbody2D
	Material() PhysicsMaterial
	SetMaterial(m PhysicsMaterial)
	IsTrigger() bool
	SetTrigger(trigger bool)
	Bound() geom.Disc2
	WorldPosition() cp.Vector
	WorldRotation() float64
	Destroy()
	IsDestroyed() bool

	// UpdateWorldShape recomputes world geometry and the bounding disc from
	// the owning rigidbody's transform.
	UpdateWorldShape()
	GetClosestPoint(p cp.Vector) cp.Vector
	Contains(p cp.Vector) bool
	IntersectsPlane(plane geom.Plane2D) bool
	GetRadius() float64
	CalculateMoment(mass float64) float64
	AddVerticesToDebugRender(d DebugDrawer, color cp.FColor)

	Intersects(other Collider2D) bool
	GetManifold(other Collider2D) geom.Manifold2

	base() *colliderBase
}

type colliderBase struct {
	entity    ecs.Entity
	id        int
	kind      ColliderType
	physics   *Physics2D
	rigidbody *Rigidbody2D
	material  PhysicsMaterial
	bound     geom.Disc2
	trigger   bool
	destroyed bool

	worldPosition cp.Vector
	worldRotation float64
}

func (c *colliderBase) base() *colliderBase { return c }

func (c *colliderBase) ID() int                   { return c.id }
func (c *colliderBase) Type() ColliderType        { return c.kind }
func (c *colliderBase) Physics() *Physics2D       { return c.physics }
func (c *colliderBase) Rigidbody() *Rigidbody2D   { return c.rigidbody }
func (c *colliderBase) Material() PhysicsMaterial { return c.material }
func (c *colliderBase) IsTrigger() bool           { return c.trigger }
func (c *colliderBase) SetTrigger(trigger bool)   { c.trigger = trigger }
func (c *colliderBase) Bound() geom.Disc2         { return c.bound }
func (c *colliderBase) WorldPosition() cp.Vector  { return c.worldPosition }
func (c *colliderBase) WorldRotation() float64    { return c.worldRotation }
func (c *colliderBase) IsDestroyed() bool         { return c.destroyed }

func (c *colliderBase) SetMaterial(m PhysicsMaterial) {
	c.material = NewPhysicsMaterial(m.Restitution, m.Friction)
}

// Destroy marks the collider for removal at the end of the current step.
func (c *colliderBase) Destroy() {
	c.destroyed = true
}

// worldTransform composes the local offset with the owning body's
// transform, or returns the local transform when there is no body.
func (c *colliderBase) worldTransform(localPosition cp.Vector, localRotation float64) (cp.Vector, float64) {
	if c.rigidbody == nil {
		return localPosition, localRotation
	}
	rb := c.rigidbody
	body := cp.NewTransformRigid(rb.position, rb.rotation)
	return body.Point(localPosition), rb.rotation + localRotation
}

func (c *colliderBase) notifyShapeChanged() {
	if c.rigidbody != nil {
		c.rigidbody.recalculateMoment()
	}
}
