package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

const gjkMaxIterations = 32

// Simplex is a triangle in Minkowski-difference space.
type Simplex [3]cp.Vector

// MinkowskiSupport returns the support point of a - b along direction.
func MinkowskiSupport(a, b *Polygon2D, direction cp.Vector) cp.Vector {
	return a.GetSupport(direction).Sub(b.GetSupport(direction.Neg()))
}

// IsPointPassedOrigin reports whether point lies strictly beyond the origin
// when looking along direction.
func IsPointPassedOrigin(point, direction cp.Vector) bool {
	return point.Dot(direction) > 0
}

// IsOriginInsideTriangle is a three-sided half-plane test. Points on an edge
// count as inside, for either winding.
func IsOriginInsideTriangle(t Simplex) bool {
	d0 := t[1].Sub(t[0]).Cross(t[0].Neg())
	d1 := t[2].Sub(t[1]).Cross(t[1].Neg())
	d2 := t[0].Sub(t[2]).Cross(t[2].Neg())
	hasNeg := d0 < 0 || d1 < 0 || d2 < 0
	hasPos := d0 > 0 || d1 > 0 || d2 > 0
	return !(hasNeg && hasPos)
}

// PointOfTriangleNotOnClosestEdge returns the index of the vertex opposite
// the edge nearest to point. Edges that point is outside of win over edges it
// is inside of.
func PointOfTriangleNotOnClosestEdge(t Simplex, point cp.Vector) int {
	best := -1
	bestOutside := false
	bestDist := math.Inf(1)
	for i := range 3 {
		u, v, w := t[(i+1)%3], t[(i+2)%3], t[i]
		n := outwardNormal(u, v, w)
		outside := n.Dot(point.Sub(u)) > 0
		dist := point.DistanceSq(point.ClosestPointOnSegment(u, v))
		if best < 0 || (outside && !bestOutside) || (outside == bestOutside && dist < bestDist) {
			best, bestOutside, bestDist = i, outside, dist
		}
	}
	return best
}

// outwardNormal is a normal of edge uv pointing away from w. It is not unit
// length.
func outwardNormal(u, v, w cp.Vector) cp.Vector {
	n := v.Sub(u).Perp()
	if n.Dot(w.Sub(u)) > 0 {
		n = n.Neg()
	}
	return n
}

// GJKIntersect reports whether the convex polygons a and b overlap. On
// success it returns a triangle of the Minkowski difference a - b that
// encloses the origin. Touching shapes do not overlap.
func GJKIntersect(a, b *Polygon2D) (Simplex, bool) {
	dir := SafeNormalize(b.Centroid().Sub(a.Centroid()), cp.Vector{X: 1})

	var t Simplex
	t[0] = MinkowskiSupport(a, b, dir)
	if !IsPointPassedOrigin(t[0], dir) {
		return t, false
	}
	t[1] = MinkowskiSupport(a, b, dir.Neg())
	if !IsPointPassedOrigin(t[1], dir.Neg()) {
		return t, false
	}

	edge := t[1].Sub(t[0])
	third := TripleCross(edge, t[0].Neg(), edge)
	if third.LengthSq() < nearlyZero {
		// Origin sits on the first edge; either side may hold the third point.
		third = edge.Perp()
		if !IsPointPassedOrigin(MinkowskiSupport(a, b, third), third) {
			third = third.Neg()
		}
	}
	t[2] = MinkowskiSupport(a, b, third)
	if !IsPointPassedOrigin(t[2], third) {
		return t, false
	}

	for range gjkMaxIterations {
		if IsOriginInsideTriangle(t) {
			return t, true
		}
		drop := PointOfTriangleNotOnClosestEdge(t, cp.Vector{})
		u, v := t[(drop+1)%3], t[(drop+2)%3]
		n := outwardNormal(u, v, t[drop])
		s := MinkowskiSupport(a, b, n)
		if !IsPointPassedOrigin(s, n) {
			return t, false
		}
		t[drop] = s
	}
	return t, false
}
