package geom

import "github.com/jakecoffman/cp"

// GiftWrap returns the convex hull of points in counter-clockwise order using
// Jarvis march. Collinear boundary points are dropped. Fewer than three
// distinct input points are returned unchanged.
func GiftWrap(points []cp.Vector) []cp.Vector {
	if len(points) < 3 {
		return append([]cp.Vector(nil), points...)
	}

	start := 0
	for i, p := range points {
		s := points[start]
		if p.X < s.X || (p.X == s.X && p.Y < s.Y) {
			start = i
		}
	}

	hull := make([]cp.Vector, 0, len(points))
	current := start
	for range len(points) + 1 {
		hull = append(hull, points[current])
		candidate := (current + 1) % len(points)
		for i, p := range points {
			if i == current {
				continue
			}
			from := points[current]
			cross := points[candidate].Sub(from).Cross(p.Sub(from))
			if cross < 0 || (cross == 0 && p.DistanceSq(from) > points[candidate].DistanceSq(from)) {
				candidate = i
			}
		}
		current = candidate
		if current == start || points[current].Equal(points[start]) {
			break
		}
	}
	return hull
}
