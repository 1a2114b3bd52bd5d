package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/doomenstein/geom"
)

// PolygonCollider2D keeps its polygon in local space centred on the
// polygon's centroid; the centroid becomes part of the local position.
type PolygonCollider2D struct {
	colliderBase
	local         *geom.Polygon2D
	world         *geom.Polygon2D
	localPosition cp.Vector
	localRotation float64
	// localBound is computed once; its centre is rotated into world space.
	localBound geom.Disc2
}

func newPolygonShape(localPosition cp.Vector, points []cp.Vector, giftWrap bool) (*geom.Polygon2D, cp.Vector) {
	if giftWrap {
		points = geom.GiftWrap(points)
	}
	poly := geom.NewPolygon2D(points)
	if poly.Len() < 3 || !poly.IsValid() {
		panicf("polygon collider needs at least 3 non-degenerate points, got %d", poly.Len())
	}
	if !poly.IsConvex() {
		panicf("polygon collider must be convex: %v", points)
	}
	centroid := poly.Centroid()
	poly.Translate(centroid.Neg())
	return poly, localPosition.Add(centroid)
}

func (c *PolygonCollider2D) LocalPosition() cp.Vector { return c.localPosition }
func (c *PolygonCollider2D) LocalRotation() float64   { return c.localRotation }

// LocalPolygon returns a copy of the polygon centred on the origin.
func (c *PolygonCollider2D) LocalPolygon() *geom.Polygon2D {
	return c.local.Clone()
}

// WorldPolygon is the polygon in world space as of the last UpdateWorldShape.
func (c *PolygonCollider2D) WorldPolygon() *geom.Polygon2D {
	return c.world
}

func (c *PolygonCollider2D) SetLocalPosition(p cp.Vector) {
	c.localPosition = p
	c.UpdateWorldShape()
}

func (c *PolygonCollider2D) SetLocalRotation(radians float64) {
	c.localRotation = radians
	c.UpdateWorldShape()
}

func (c *PolygonCollider2D) UpdateWorldShape() {
	c.worldPosition, c.worldRotation = c.worldTransform(c.localPosition, c.localRotation)
	c.world = c.local.Transformed(cp.NewTransformRigid(c.worldPosition, c.worldRotation))
	c.bound = geom.Disc2{
		Center: c.worldPosition.Add(geom.RotateRadians(c.localBound.Center, c.worldRotation)),
		Radius: c.localBound.Radius,
	}
}

func (c *PolygonCollider2D) GetClosestPoint(p cp.Vector) cp.Vector {
	return c.world.GetClosestPoint(p)
}

func (c *PolygonCollider2D) Contains(p cp.Vector) bool {
	return c.world.Contains(p)
}

func (c *PolygonCollider2D) IntersectsPlane(plane geom.Plane2D) bool {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range c.world.Len() {
		d := plane.SignedDistance(c.world.Point(i))
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo <= 0 && hi >= 0
}

func (c *PolygonCollider2D) GetRadius() float64 {
	return c.localBound.Radius
}

func (c *PolygonCollider2D) CalculateMoment(mass float64) float64 {
	return mass * c.local.GetMomentWithoutMass()
}

func (c *PolygonCollider2D) AddVerticesToDebugRender(d DebugDrawer, color cp.FColor) {
	d.DrawPolygon(c.world.Points(), color)
}

func (c *PolygonCollider2D) Intersects(other Collider2D) bool {
	return intersects(c, other)
}

func (c *PolygonCollider2D) GetManifold(other Collider2D) geom.Manifold2 {
	return getManifold(c, other)
}
