package physics

import "github.com/milk9111/doomenstein/geom"

// PairID is an unordered collider pair, stored with the lower id first.
type PairID struct {
	Low  int
	High int
}

func NewPairID(a, b int) PairID {
	if a > b {
		a, b = b, a
	}
	return PairID{Low: a, High: b}
}

func (p PairID) Less(o PairID) bool {
	if p.Low != o.Low {
		return p.Low < o.Low
	}
	return p.High < o.High
}

// Collision2D is one contact between two colliders during one step. The
// manifold normal points from Them to Me.
type Collision2D struct {
	Me       Collider2D
	Them     Collider2D
	Manifold geom.Manifold2
	Pair     PairID
	FrameID  uint64
}

// GetInversed returns the same contact as seen by Them.
func (c Collision2D) GetInversed() Collision2D {
	c.Me, c.Them = c.Them, c.Me
	c.Manifold = c.Manifold.Inversed()
	return c
}

func (c Collision2D) IsTrigger() bool {
	return c.Me.IsTrigger() || c.Them.IsTrigger()
}

func (c Collision2D) MyRigidbody() *Rigidbody2D {
	return c.Me.Rigidbody()
}

func (c Collision2D) TheirRigidbody() *Rigidbody2D {
	return c.Them.Rigidbody()
}
