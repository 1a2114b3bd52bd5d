package geom

import "github.com/jakecoffman/cp"

// Segment2D is a line segment. Start == End is a valid degenerate segment.
type Segment2D struct {
	Start cp.Vector
	End   cp.Vector
}

func PointSegment(p cp.Vector) Segment2D {
	return Segment2D{Start: p, End: p}
}

func (s Segment2D) Direction() cp.Vector {
	return s.End.Sub(s.Start)
}

func (s Segment2D) Length() float64 {
	return s.Start.Distance(s.End)
}

func (s Segment2D) Center() cp.Vector {
	return s.Start.Lerp(s.End, 0.5)
}

func (s Segment2D) IsPoint() bool {
	return s.Start.DistanceSq(s.End) < nearlyZero
}

func (s Segment2D) ClosestPoint(p cp.Vector) cp.Vector {
	if s.IsPoint() {
		return s.Start
	}
	return p.ClosestPointOnSegment(s.Start, s.End)
}

// PointAt interpolates between Start (t=0) and End (t=1).
func (s Segment2D) PointAt(t float64) cp.Vector {
	return s.Start.Lerp(s.End, t)
}
