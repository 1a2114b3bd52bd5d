package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Polygon2D is a convex polygon stored counter-clockwise with a cached
// area-weighted centroid. Mutators keep points and centroid in lockstep.
type Polygon2D struct {
	points   []cp.Vector
	centroid cp.Vector
}

// NewPolygon2D copies points, reversing them if they wind clockwise.
func NewPolygon2D(points []cp.Vector) *Polygon2D {
	pts := append([]cp.Vector(nil), points...)
	if signedArea(pts) < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	p := &Polygon2D{points: pts}
	p.centroid = computeCentroid(pts)
	return p
}

func NewPolygon2DFromAABB(box AABB2) *Polygon2D {
	return NewPolygon2D(box.Points())
}

func NewPolygon2DFromOBB(box OBB2) *Polygon2D {
	return NewPolygon2D(box.Points())
}

func (p *Polygon2D) Clone() *Polygon2D {
	return &Polygon2D{points: append([]cp.Vector(nil), p.points...), centroid: p.centroid}
}

func (p *Polygon2D) Points() []cp.Vector {
	return append([]cp.Vector(nil), p.points...)
}

func (p *Polygon2D) Len() int {
	return len(p.points)
}

func (p *Polygon2D) Point(i int) cp.Vector {
	return p.points[i]
}

func (p *Polygon2D) Centroid() cp.Vector {
	return p.centroid
}

// Edge returns the edge from point i to point i+1, wrapping at the end.
func (p *Polygon2D) Edge(i int) Segment2D {
	return Segment2D{Start: p.points[i], End: p.points[(i+1)%len(p.points)]}
}

func (p *Polygon2D) Edges() []Segment2D {
	edges := make([]Segment2D, len(p.points))
	for i := range p.points {
		edges[i] = p.Edge(i)
	}
	return edges
}

func (p *Polygon2D) Area() float64 {
	return cp.AreaForPoly(len(p.points), p.points, 0)
}

// IsValid reports whether the polygon has at least three points and a
// non-zero area.
func (p *Polygon2D) IsValid() bool {
	return len(p.points) >= 3 && p.Area() > nearlyZero
}

// IsConvex reports whether every vertex is a strict left turn and the
// boundary winds around exactly once.
func (p *Polygon2D) IsConvex() bool {
	n := len(p.points)
	if n < 3 {
		return false
	}
	turning := 0.0
	for i := 0; i < n; i++ {
		e0 := p.points[(i+1)%n].Sub(p.points[i])
		e1 := p.points[(i+2)%n].Sub(p.points[(i+1)%n])
		cross := e0.Cross(e1)
		if cross <= 0 {
			return false
		}
		turning += math.Atan2(cross, e0.Dot(e1))
	}
	return math.Abs(turning-2*math.Pi) < 1e-6
}

// Contains is the strict winding test: the point must be left of every edge.
func (p *Polygon2D) Contains(point cp.Vector) bool {
	n := len(p.points)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		start := p.points[i]
		edge := p.points[(i+1)%n].Sub(start)
		if edge.Cross(point.Sub(start)) <= 0 {
			return false
		}
	}
	return true
}

// GetSupport returns the point furthest along direction. Ties resolve to the
// first such point in stored order.
func (p *Polygon2D) GetSupport(direction cp.Vector) cp.Vector {
	best := p.points[0]
	bestDot := best.Dot(direction)
	for _, pt := range p.points[1:] {
		if d := pt.Dot(direction); d > bestDot {
			best, bestDot = pt, d
		}
	}
	return best
}

// GetClosestPoint returns point itself when it is inside, otherwise the
// nearest point on the boundary.
func (p *Polygon2D) GetClosestPoint(point cp.Vector) cp.Vector {
	if p.Contains(point) {
		return point
	}
	closest, _ := p.closestEdgePoint(point)
	return closest
}

// GetClosestPointOnEdge always projects onto the boundary, even for
// interior points.
func (p *Polygon2D) GetClosestPointOnEdge(point cp.Vector) cp.Vector {
	closest, _ := p.closestEdgePoint(point)
	return closest
}

// EdgeNormal is the outward unit normal of edge i.
func (p *Polygon2D) EdgeNormal(i int) cp.Vector {
	return SafeNormalize(p.Edge(i).Direction().ReversePerp(), cp.Vector{Y: 1})
}

func (p *Polygon2D) closestEdgePoint(point cp.Vector) (cp.Vector, int) {
	bestIdx := -1
	var best cp.Vector
	bestDist := math.Inf(1)
	for i := range p.points {
		c := p.Edge(i).ClosestPoint(point)
		if d := c.DistanceSq(point); d < bestDist {
			best, bestDist, bestIdx = c, d, i
		}
	}
	return best, bestIdx
}

// Rotate spins the polygon about its centroid.
func (p *Polygon2D) Rotate(degrees float64) {
	p.RotateAround(p.centroid, DegreesToRadians(degrees))
}

func (p *Polygon2D) RotateAround(pivot cp.Vector, radians float64) {
	rot := cp.ForAngle(radians)
	for i, pt := range p.points {
		p.points[i] = pivot.Add(pt.Sub(pivot).Rotate(rot))
	}
	p.centroid = pivot.Add(p.centroid.Sub(pivot).Rotate(rot))
}

func (p *Polygon2D) Translate(offset cp.Vector) {
	for i := range p.points {
		p.points[i] = p.points[i].Add(offset)
	}
	p.centroid = p.centroid.Add(offset)
}

// TranslateTo moves the polygon so its centroid sits at position.
func (p *Polygon2D) TranslateTo(position cp.Vector) {
	p.Translate(position.Sub(p.centroid))
}

// Transformed returns a copy rotated about the origin and then translated.
func (p *Polygon2D) Transformed(t cp.Transform) *Polygon2D {
	out := &Polygon2D{points: make([]cp.Vector, len(p.points))}
	for i, pt := range p.points {
		out.points[i] = t.Point(pt)
	}
	out.centroid = t.Point(p.centroid)
	return out
}

// GetMomentWithoutMass returns the moment of inertia per unit mass about the
// centroid, accumulated over the triangle fan from point 0.
func (p *Polygon2D) GetMomentWithoutMass() float64 {
	n := len(p.points)
	if n < 3 {
		return 0
	}
	a := p.points[0]
	totalArea, total := 0.0, 0.0
	for i := 1; i < n-1; i++ {
		b, c := p.points[i], p.points[i+1]
		area := math.Abs(b.Sub(a).Cross(c.Sub(a))) / 2
		if area < nearlyZero {
			continue
		}
		// Polar moment of a triangle about its centroid, per unit mass.
		own := (a.DistanceSq(b) + b.DistanceSq(c) + c.DistanceSq(a)) / 36
		triCentroid := a.Add(b).Add(c).Mult(1.0 / 3.0)
		total += area * (own + triCentroid.DistanceSq(p.centroid))
		totalArea += area
	}
	if totalArea < nearlyZero {
		return 0
	}
	return total / totalArea
}

func (p *Polygon2D) AABB() AABB2 {
	return NewAABB2FromPoints(p.points)
}

// BoundingDisc returns a disc around the box centre that encloses every point.
func (p *Polygon2D) BoundingDisc() Disc2 {
	center := p.AABB().Center()
	radius := 0.0
	for _, pt := range p.points {
		radius = math.Max(radius, pt.Distance(center))
	}
	return Disc2{Center: center, Radius: radius}
}

func signedArea(points []cp.Vector) float64 {
	sum := 0.0
	for i := range points {
		sum += points[i].Cross(points[(i+1)%len(points)])
	}
	return sum / 2
}

func computeCentroid(points []cp.Vector) cp.Vector {
	if len(points) == 0 {
		return cp.Vector{}
	}
	if math.Abs(signedArea(points)) < nearlyZero {
		sum := cp.Vector{}
		for _, pt := range points {
			sum = sum.Add(pt)
		}
		return sum.Mult(1 / float64(len(points)))
	}
	return cp.CentroidForPoly(len(points), points)
}
