package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/doomenstein/geom"
)

type DiscCollider2D struct {
	colliderBase
	localPosition cp.Vector
	localRotation float64
	radius        float64
}

func (c *DiscCollider2D) LocalPosition() cp.Vector { return c.localPosition }
func (c *DiscCollider2D) Radius() float64          { return c.radius }

func (c *DiscCollider2D) SetLocalPosition(p cp.Vector) {
	c.localPosition = p
	c.UpdateWorldShape()
}

func (c *DiscCollider2D) SetRadius(radius float64) {
	if radius <= 0 {
		panicf("disc radius must be positive, got %v", radius)
	}
	c.radius = radius
	c.UpdateWorldShape()
	c.notifyShapeChanged()
}

// WorldDisc is the disc in world space as of the last UpdateWorldShape.
func (c *DiscCollider2D) WorldDisc() geom.Disc2 {
	return geom.Disc2{Center: c.worldPosition, Radius: c.radius}
}

func (c *DiscCollider2D) UpdateWorldShape() {
	c.worldPosition, c.worldRotation = c.worldTransform(c.localPosition, c.localRotation)
	c.bound = c.WorldDisc()
}

func (c *DiscCollider2D) GetClosestPoint(p cp.Vector) cp.Vector {
	return c.WorldDisc().ClosestPoint(p)
}

func (c *DiscCollider2D) Contains(p cp.Vector) bool {
	return c.WorldDisc().Contains(p)
}

func (c *DiscCollider2D) IntersectsPlane(plane geom.Plane2D) bool {
	return math.Abs(plane.SignedDistance(c.worldPosition)) < c.radius
}

func (c *DiscCollider2D) GetRadius() float64 {
	return c.radius
}

func (c *DiscCollider2D) CalculateMoment(mass float64) float64 {
	return cp.MomentForCircle(mass, 0, c.radius, cp.Vector{})
}

func (c *DiscCollider2D) AddVerticesToDebugRender(d DebugDrawer, color cp.FColor) {
	d.DrawCircle(c.worldPosition, c.radius, c.worldRotation, color)
}

func (c *DiscCollider2D) Intersects(other Collider2D) bool {
	return intersects(c, other)
}

func (c *DiscCollider2D) GetManifold(other Collider2D) geom.Manifold2 {
	return getManifold(c, other)
}
