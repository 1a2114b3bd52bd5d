package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

type AABB2 struct {
	cp.BB
}

func NewAABB2(mins, maxs cp.Vector) AABB2 {
	return AABB2{BB: cp.BB{L: mins.X, B: mins.Y, R: maxs.X, T: maxs.Y}}
}

func NewAABB2FromCenter(center, halfExtents cp.Vector) AABB2 {
	return AABB2{BB: cp.NewBBForExtents(center, halfExtents.X, halfExtents.Y)}
}

// NewAABB2FromPoints returns the smallest box holding every point. An empty
// slice yields the zero box.
func NewAABB2FromPoints(points []cp.Vector) AABB2 {
	if len(points) == 0 {
		return AABB2{}
	}
	bb := cp.BB{L: math.Inf(1), B: math.Inf(1), R: math.Inf(-1), T: math.Inf(-1)}
	for _, p := range points {
		bb = bb.Expand(p)
	}
	return AABB2{BB: bb}
}

func (a AABB2) Mins() cp.Vector {
	return cp.Vector{X: a.L, Y: a.B}
}

func (a AABB2) Maxs() cp.Vector {
	return cp.Vector{X: a.R, Y: a.T}
}

func (a AABB2) HalfExtents() cp.Vector {
	return cp.Vector{X: (a.R - a.L) / 2, Y: (a.T - a.B) / 2}
}

func (a AABB2) Contains(p cp.Vector) bool {
	return a.ContainsVect(p)
}

func (a AABB2) Overlaps(b AABB2) bool {
	return a.Intersects(b.BB)
}

// Points returns the corners in counter-clockwise order starting bottom-left.
func (a AABB2) Points() []cp.Vector {
	return []cp.Vector{
		{X: a.L, Y: a.B},
		{X: a.R, Y: a.B},
		{X: a.R, Y: a.T},
		{X: a.L, Y: a.T},
	}
}
