package geom

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestAABB2(t *testing.T) {
	box := NewAABB2FromPoints([]cp.Vector{Vec2(1, 3), Vec2(-1, 0), Vec2(2, 1)})
	if box.Mins() != Vec2(-1, 0) || box.Maxs() != Vec2(2, 3) {
		t.Fatalf("bounds = %v..%v", box.Mins(), box.Maxs())
	}
	if box.HalfExtents() != Vec2(1.5, 1.5) {
		t.Fatalf("half extents = %v", box.HalfExtents())
	}

	cases := []struct {
		name  string
		other AABB2
		want  bool
	}{
		{"inside", NewAABB2FromCenter(Vec2(0.5, 1.5), Vec2(0.1, 0.1)), true},
		{"crossing", NewAABB2(Vec2(1.5, -2), Vec2(4, 0.5)), true},
		{"apart", NewAABB2(Vec2(3, 4), Vec2(5, 6)), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := box.Overlaps(c.other); got != c.want {
				t.Fatalf("Overlaps = %v, want %v", got, c.want)
			}
			if got := c.other.Overlaps(box); got != c.want {
				t.Fatalf("Overlaps is not symmetric")
			}
		})
	}
}

func TestOBB2(t *testing.T) {
	box := NewOBB2(Vec2(1, 1), Vec2(4, 2), 90)

	cases := []struct {
		name string
		p    cp.Vector
		want bool
	}{
		{"along_long_axis", Vec2(1, 2.5), true},
		{"beyond_short_axis", Vec2(2.5, 1), false},
		{"center", Vec2(1, 1), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := box.Contains(c.p); got != c.want {
				t.Fatalf("Contains(%v) = %v, want %v", c.p, got, c.want)
			}
		})
	}

	if got := box.ClosestPoint(Vec2(5, 1)); !NearlyEqual(got, Vec2(2, 1), 1e-9) {
		t.Fatalf("ClosestPoint = %v, want (2,1)", got)
	}
	local := Vec2(0.7, -0.3)
	if got := box.WorldToLocal(box.LocalToWorld(local)); !NearlyEqual(got, local, 1e-12) {
		t.Fatalf("local round trip = %v", got)
	}
	if poly := NewPolygon2DFromOBB(box); !poly.IsConvex() || !NearlyEqual(poly.Centroid(), box.Center, 1e-9) {
		t.Fatalf("OBB polygon should be convex and centred")
	}
}

func TestPlane2D(t *testing.T) {
	plane := NewPlane2DFromPoint(Vec2(0, 2), Vec2(5, 1))
	if plane.Normal != Vec2(0, 1) || plane.Distance != 1 {
		t.Fatalf("plane = %+v", plane)
	}

	cases := []struct {
		name            string
		p               cp.Vector
		inFront, behind bool
	}{
		{"above", Vec2(0, 1.5), true, false},
		{"on", Vec2(-3, 1), false, true},
		{"within_tolerance", Vec2(0, 1.005), true, true},
		{"below", Vec2(0, -4), false, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := plane.IsInFront(c.p); got != c.inFront {
				t.Fatalf("IsInFront = %v, want %v", got, c.inFront)
			}
			if got := plane.IsBehind(c.p, ContactTolerance); got != c.behind {
				t.Fatalf("IsBehind = %v, want %v", got, c.behind)
			}
		})
	}

	if got := plane.ClosestPoint(Vec2(3, 4)); got != Vec2(3, 1) {
		t.Fatalf("ClosestPoint = %v", got)
	}
}

func TestSegmentAndDisc(t *testing.T) {
	seg := Segment2D{Start: Vec2(0, 0), End: Vec2(4, 0)}
	if got := seg.ClosestPoint(Vec2(-2, 3)); got != Vec2(0, 0) {
		t.Fatalf("ClosestPoint before start = %v", got)
	}
	if got := seg.ClosestPoint(Vec2(1, 3)); got != Vec2(1, 0) {
		t.Fatalf("ClosestPoint = %v", got)
	}
	if seg.IsPoint() || !PointSegment(Vec2(1, 1)).IsPoint() {
		t.Fatalf("IsPoint wrong")
	}

	a := Disc2{Center: Vec2(0, 0), Radius: 1}
	b := Disc2{Center: Vec2(2, 0), Radius: 1}
	if DoDiscsOverlap(a, b) {
		t.Fatalf("touching discs must not overlap")
	}
	b.Center = Vec2(1.9, 0)
	if !DoDiscsOverlap(a, b) {
		t.Fatalf("discs should overlap")
	}
	if got := a.ClosestPoint(Vec2(3, 0)); got != Vec2(1, 0) {
		t.Fatalf("disc ClosestPoint = %v", got)
	}
}
