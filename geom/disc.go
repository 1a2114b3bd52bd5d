package geom

import "github.com/jakecoffman/cp"

type Disc2 struct {
	Center cp.Vector
	Radius float64
}

func (d Disc2) Contains(p cp.Vector) bool {
	return d.Center.DistanceSq(p) < d.Radius*d.Radius
}

// ClosestPoint returns p if it is inside the disc, else the nearest point on its rim.
func (d Disc2) ClosestPoint(p cp.Vector) cp.Vector {
	if d.Contains(p) {
		return p
	}
	dir := SafeNormalize(p.Sub(d.Center), cp.Vector{X: 1})
	return d.Center.Add(dir.Mult(d.Radius))
}

// AABB returns the axis-aligned box enclosing the disc.
func (d Disc2) AABB() AABB2 {
	return AABB2{BB: cp.NewBBForCircle(d.Center, d.Radius)}
}

// DoDiscsOverlap is the broad-phase test: true when the centres are closer than
// the sum of the radii.
func DoDiscsOverlap(a, b Disc2) bool {
	r := a.Radius + b.Radius
	return a.Center.DistanceSq(b.Center) < r*r
}
