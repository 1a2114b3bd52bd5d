package geom

import "github.com/jakecoffman/cp"

// Plane2D is the line {p : Normal·p == Distance}. Normal is unit length.
type Plane2D struct {
	Normal   cp.Vector
	Distance float64
}

func NewPlane2DFromPoint(normal, point cp.Vector) Plane2D {
	n := SafeNormalize(normal, cp.Vector{Y: 1})
	return Plane2D{Normal: n, Distance: n.Dot(point)}
}

func (p Plane2D) SignedDistance(point cp.Vector) float64 {
	return p.Normal.Dot(point) - p.Distance
}

func (p Plane2D) IsInFront(point cp.Vector) bool {
	return p.SignedDistance(point) > 0
}

// IsBehind reports whether point lies behind the plane, counting points up to
// tolerance in front of it as behind.
func (p Plane2D) IsBehind(point cp.Vector, tolerance float64) bool {
	return p.SignedDistance(point) <= tolerance
}

func (p Plane2D) ClosestPoint(point cp.Vector) cp.Vector {
	return point.Sub(p.Normal.Mult(p.SignedDistance(point)))
}
