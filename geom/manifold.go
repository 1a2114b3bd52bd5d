package geom

import "github.com/jakecoffman/cp"

// Manifold2 describes a contact. Normal points from "them" to "me" and
// Penetration is the overlap depth along it.
type Manifold2 struct {
	ContactEdge Segment2D
	Normal      cp.Vector
	Penetration float64
}

// Inversed returns the manifold as seen from the other side of the contact.
func (m Manifold2) Inversed() Manifold2 {
	m.Normal = m.Normal.Neg()
	return m
}

func (m Manifold2) ContactPoint() cp.Vector {
	return m.ContactEdge.Center()
}

// DiscVDiscManifold returns the contact of disc me against disc them.
func DiscVDiscManifold(me, them Disc2) Manifold2 {
	dist := me.Center.Distance(them.Center)
	normal := SafeNormalize(me.Center.Sub(them.Center), cp.Vector{Y: 1})
	return Manifold2{
		ContactEdge: PointSegment(me.Center.Lerp(them.Center, 0.5)),
		Normal:      normal,
		Penetration: me.Radius + them.Radius - dist,
	}
}

// DiscVPolygonManifold returns the contact of disc me against polygon them.
// A disc whose centre is inside the polygon is pushed out through the nearest
// edge with its full depth.
func DiscVPolygonManifold(me Disc2, them *Polygon2D) Manifold2 {
	nearest, edge := them.closestEdgePoint(me.Center)
	diff := me.Center.Sub(nearest)
	dist := diff.Length()

	var normal cp.Vector
	var penetration float64
	switch {
	case dist < nearlyZero:
		normal = them.EdgeNormal(edge)
		penetration = me.Radius
	case them.Contains(me.Center):
		normal = diff.Mult(-1 / dist)
		penetration = me.Radius + dist
	default:
		normal = diff.Mult(1 / dist)
		penetration = me.Radius - dist
	}
	return Manifold2{
		ContactEdge: PointSegment(nearest),
		Normal:      normal,
		Penetration: penetration,
	}
}

// DoDiscAndPolygonOverlap reports whether the disc touches the polygon.
func DoDiscAndPolygonOverlap(d Disc2, p *Polygon2D) bool {
	if p.Contains(d.Center) {
		return true
	}
	return p.GetClosestPointOnEdge(d.Center).DistanceSq(d.Center) < d.Radius*d.Radius
}

// PolygonVPolygonManifold runs GJK and EPA on me and them and extracts the
// contact edge. The zero manifold is returned when they do not overlap.
func PolygonVPolygonManifold(me, them *Polygon2D) (Manifold2, bool) {
	simplex, ok := GJKIntersect(me, them)
	if !ok {
		return Manifold2{}, false
	}
	// EPA's normal points from me toward them in Minkowski space.
	normal, depth := EPA(me, them, simplex)
	normal = normal.Neg()
	return Manifold2{
		ContactEdge: ContactEdge(me, them, normal),
		Normal:      normal,
		Penetration: depth,
	}, true
}
