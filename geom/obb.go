package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// OBB2 is an oriented box. IBasis is the unit local X axis; the local Y axis
// is its left perpendicular.
type OBB2 struct {
	Center      cp.Vector
	IBasis      cp.Vector
	HalfExtents cp.Vector
}

// NewOBB2 creates a box of the given full size rotated by degrees.
func NewOBB2(center, size cp.Vector, degrees float64) OBB2 {
	return OBB2{
		Center:      center,
		IBasis:      cp.ForAngle(DegreesToRadians(degrees)),
		HalfExtents: size.Mult(0.5),
	}
}

func (o OBB2) JBasis() cp.Vector {
	return o.IBasis.Perp()
}

func (o OBB2) LocalToWorld(local cp.Vector) cp.Vector {
	return o.Center.Add(o.IBasis.Mult(local.X)).Add(o.JBasis().Mult(local.Y))
}

func (o OBB2) WorldToLocal(world cp.Vector) cp.Vector {
	d := world.Sub(o.Center)
	return cp.Vector{X: d.Dot(o.IBasis), Y: d.Dot(o.JBasis())}
}

func (o OBB2) Contains(p cp.Vector) bool {
	l := o.WorldToLocal(p)
	return math.Abs(l.X) < o.HalfExtents.X && math.Abs(l.Y) < o.HalfExtents.Y
}

func (o OBB2) ClosestPoint(p cp.Vector) cp.Vector {
	l := o.WorldToLocal(p)
	l.X = cp.Clamp(l.X, -o.HalfExtents.X, o.HalfExtents.X)
	l.Y = cp.Clamp(l.Y, -o.HalfExtents.Y, o.HalfExtents.Y)
	return o.LocalToWorld(l)
}

// Points returns the corners in counter-clockwise order.
func (o OBB2) Points() []cp.Vector {
	hx, hy := o.HalfExtents.X, o.HalfExtents.Y
	return []cp.Vector{
		o.LocalToWorld(cp.Vector{X: -hx, Y: -hy}),
		o.LocalToWorld(cp.Vector{X: hx, Y: -hy}),
		o.LocalToWorld(cp.Vector{X: hx, Y: hy}),
		o.LocalToWorld(cp.Vector{X: -hx, Y: hy}),
	}
}
