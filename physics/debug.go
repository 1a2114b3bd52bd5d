package physics

import (
	"github.com/jakecoffman/cp"
)

// DebugDrawer receives world-space primitives from DebugRender.
type DebugDrawer interface {
	DrawCircle(center cp.Vector, radius, angle float64, color cp.FColor)
	DrawPolygon(verts []cp.Vector, color cp.FColor)
	DrawSegment(a, b cp.Vector, color cp.FColor)
	DrawDot(pos cp.Vector, color cp.FColor)
}

// DebugOptions selects what DebugRender draws.
type DebugOptions struct {
	Bounds   bool
	Contacts bool
}

var (
	DebugColorDynamic   = cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
	DebugColorKinematic = cp.FColor{R: 0.3, G: 0.6, B: 1, A: 0.9}
	DebugColorStatic    = cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 0.9}
	DebugColorTrigger   = cp.FColor{R: 1, G: 0.9, B: 0.2, A: 0.9}
	DebugColorDisabled  = cp.FColor{R: 0.4, G: 0.4, B: 0.4, A: 0.5}
	DebugColorBound     = cp.FColor{R: 1, G: 1, B: 1, A: 0.15}
	DebugColorContact   = cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
)

// DebugRender draws every live collider, colored by its body's mode.
func (p *Physics2D) DebugRender(d DebugDrawer, opts DebugOptions) {
	if p == nil || d == nil {
		return
	}
	for _, c := range p.Colliders() {
		c.AddVerticesToDebugRender(d, colliderColor(c))
		if opts.Bounds {
			b := c.Bound()
			d.DrawCircle(b.Center, b.Radius, 0, DebugColorBound)
		}
	}
	if !opts.Contacts {
		return
	}
	for _, col := range p.ActiveContacts() {
		edge := col.Manifold.ContactEdge
		d.DrawSegment(edge.Start, edge.End, DebugColorContact)
		d.DrawDot(edge.Start, DebugColorContact)
		d.DrawDot(edge.End, DebugColorContact)
		mid := edge.Center()
		d.DrawSegment(mid, mid.Add(col.Manifold.Normal.Mult(0.25)), DebugColorContact)
	}
}

func colliderColor(c Collider2D) cp.FColor {
	if c.IsTrigger() {
		return DebugColorTrigger
	}
	rb := c.Rigidbody()
	if rb == nil {
		return DebugColorStatic
	}
	if !rb.enabled {
		return DebugColorDisabled
	}
	switch rb.mode {
	case ModeKinematic:
		return DebugColorKinematic
	case ModeStatic:
		return DebugColorStatic
	default:
		return DebugColorDynamic
	}
}
