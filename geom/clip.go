package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// ClipSegmentToSegment keeps the part of toClip that lies between the two
// lines through reference's endpoints perpendicular to reference. It reports
// false when nothing remains or reference is a single point.
func ClipSegmentToSegment(toClip, reference Segment2D) (Segment2D, bool) {
	if reference.IsPoint() {
		return Segment2D{}, false
	}
	axis := reference.Direction().Normalize()
	return ClipSegmentToSlab(toClip, axis, axis.Dot(reference.Start), axis.Dot(reference.End))
}

// ClipSegmentToSlab keeps the part of toClip whose projection onto axis lies
// in [lo, hi]. Clipped endpoints are mapped back by linear interpolation.
func ClipSegmentToSlab(toClip Segment2D, axis cp.Vector, lo, hi float64) (Segment2D, bool) {
	if lo > hi {
		lo, hi = hi, lo
	}
	s0 := axis.Dot(toClip.Start)
	s1 := axis.Dot(toClip.End)
	ds := s1 - s0
	if math.Abs(ds) < nearlyZero {
		if s0 < lo-nearlyZero || s0 > hi+nearlyZero {
			return Segment2D{}, false
		}
		return toClip, true
	}

	tEnter := (lo - s0) / ds
	tExit := (hi - s0) / ds
	if tEnter > tExit {
		tEnter, tExit = tExit, tEnter
	}
	t0 := math.Max(0, tEnter)
	t1 := math.Min(1, tExit)
	if t0 > t1 {
		return Segment2D{}, false
	}
	return Segment2D{Start: toClip.PointAt(t0), End: toClip.PointAt(t1)}, true
}

// ContactEdge finds the contact region of me resting against them, where
// normal points from them to me. The reference edge is every vertex of them
// within ContactTolerance of its support plane; me's edges are clipped to it
// and the surviving points, projected onto that plane, give the result as
// their extremes along the tangent.
// A degenerate clip falls back to them's support point.
func ContactEdge(me, them *Polygon2D, normal cp.Vector) Segment2D {
	support := them.GetSupport(normal)
	plane := NewPlane2DFromPoint(normal, support)
	tangent := plane.Normal.Perp()

	var reference Segment2D
	found := false
	for _, v := range them.points {
		if math.Abs(plane.SignedDistance(v)) >= ContactTolerance {
			continue
		}
		if !found {
			reference, found = PointSegment(v), true
			continue
		}
		if tangent.Dot(v) < tangent.Dot(reference.Start) {
			reference.Start = v
		}
		if tangent.Dot(v) > tangent.Dot(reference.End) {
			reference.End = v
		}
	}

	var kept []cp.Vector
	for i := range me.points {
		var clipped Segment2D
		var ok bool
		if reference.IsPoint() {
			s := tangent.Dot(reference.Start)
			clipped, ok = ClipSegmentToSlab(me.Edge(i), tangent, s, s)
		} else {
			clipped, ok = ClipSegmentToSegment(me.Edge(i), reference)
		}
		if !ok {
			continue
		}
		for _, p := range [2]cp.Vector{clipped.Start, clipped.End} {
			if plane.IsBehind(p, ContactTolerance) {
				kept = append(kept, plane.ClosestPoint(p))
			}
		}
	}
	if len(kept) == 0 {
		return PointSegment(support)
	}

	lo, hi := kept[0], kept[0]
	for _, p := range kept[1:] {
		s := tangent.Dot(p)
		if s < tangent.Dot(lo) {
			lo = p
		}
		if s > tangent.Dot(hi) {
			hi = p
		}
	}
	return Segment2D{Start: lo, End: hi}
}
