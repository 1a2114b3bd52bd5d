package geom

import (
	"math"
	"slices"

	"github.com/jakecoffman/cp"
)

const epaMaxIterations = 64

// EPA expands the GJK simplex toward the boundary of a - b and returns the
// outward unit normal and distance of the boundary edge nearest the origin.
// Moving a by -normal*depth separates the shapes.
func EPA(a, b *Polygon2D, simplex Simplex) (cp.Vector, float64) {
	polytope := []cp.Vector{simplex[0], simplex[1], simplex[2]}
	if polytope[1].Sub(polytope[0]).Cross(polytope[2].Sub(polytope[0])) < 0 {
		polytope[1], polytope[2] = polytope[2], polytope[1]
	}

	var normal cp.Vector
	depth := 0.0
	for range epaMaxIterations {
		idx := -1
		depth = math.Inf(1)
		for i := range polytope {
			edge := polytope[(i+1)%len(polytope)].Sub(polytope[i])
			if edge.LengthSq() < nearlyZero {
				continue
			}
			n := edge.ReversePerp().Normalize()
			if d := n.Dot(polytope[i]); d < depth {
				idx, normal, depth = i, n, d
			}
		}
		if idx < 0 {
			return cp.Vector{Y: 1}, 0
		}

		support := MinkowskiSupport(a, b, normal)
		if support.Dot(normal)-depth < ContactTolerance {
			return normal, depth
		}
		polytope = slices.Insert(polytope, idx+1, support)
	}
	return normal, depth
}
