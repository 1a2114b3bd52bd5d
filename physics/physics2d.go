// Package physics is a 2D rigid-body simulation: bodies, disc and polygon
// colliders, a fixed-step driver, and begin/stay/end contact events.
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/doomenstein/common"
	"github.com/milk9111/doomenstein/ecs"
	"github.com/milk9111/doomenstein/geom"
)

const (
	DefaultFixedDeltaTime = 1.0 / 120.0
)

var DefaultGravity = cp.Vector{X: 0, Y: -9.8}

type contactEntry struct {
	collision Collision2D
	lastFrame uint64
}

// Physics2D owns every rigidbody and collider and steps them at a fixed rate.
// It is not safe for concurrent use.
type Physics2D struct {
	clock     common.Clock
	ownsClock bool
	timer     *common.Timer
	fixedDt   float64
	gravity   cp.Vector
	frameID   uint64
	layers    LayerMatrix

	registry       *ecs.Registry
	bodies         ecs.SparseSet[*Rigidbody2D]
	colliders      ecs.SparseSet[Collider2D]
	nextColliderID int

	unresolved ecs.EventQueue[Collision2D]
	contacts   map[PairID]*contactEntry
}

type Option func(*Physics2D)

func WithGravity(g cp.Vector) Option {
	return func(p *Physics2D) { p.gravity = g }
}

func WithFixedDeltaTime(dt float64) Option {
	return func(p *Physics2D) { p.fixedDt = dt }
}

// WithClock drives Update from clock instead of an internal wall clock. The
// caller is responsible for advancing it.
func WithClock(clock common.Clock) Option {
	return func(p *Physics2D) {
		p.clock = clock
		p.ownsClock = false
	}
}

// New creates an empty world.
func New(opts ...Option) *Physics2D {
	p := &Physics2D{
		clock:     common.NewGameClock(),
		ownsClock: true,
		fixedDt:   DefaultFixedDeltaTime,
		gravity:   DefaultGravity,
		layers:    NewLayerMatrix(),
		registry:  ecs.NewRegistry(),
		contacts:  make(map[PairID]*contactEntry),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.fixedDt <= 0 {
		panicf("fixed delta time must be positive, got %v", p.fixedDt)
	}
	p.timer = common.NewTimer(p.clock, p.fixedDt)
	return p
}

func (p *Physics2D) SetSceneGravity(g cp.Vector) {
	if p == nil {
		return
	}
	p.gravity = g
}

func (p *Physics2D) SceneGravity() cp.Vector {
	if p == nil {
		return cp.Vector{}
	}
	return p.gravity
}

func (p *Physics2D) SetFixedDeltaTime(dt float64) {
	if p == nil {
		return
	}
	if dt <= 0 {
		panicf("fixed delta time must be positive, got %v", dt)
	}
	p.fixedDt = dt
	p.timer.SetPeriod(dt)
}

func (p *Physics2D) FixedDeltaTime() float64 {
	if p == nil {
		return 0
	}
	return p.fixedDt
}

func (p *Physics2D) SetClock(clock common.Clock) {
	if p == nil || clock == nil {
		return
	}
	p.clock = clock
	p.ownsClock = false
	p.timer.SetClock(clock)
}

func (p *Physics2D) Clock() common.Clock {
	if p == nil {
		return nil
	}
	return p.clock
}

// FrameID is the number of fixed steps run so far.
func (p *Physics2D) FrameID() uint64 {
	if p == nil {
		return 0
	}
	return p.frameID
}

func (p *Physics2D) EnableLayerInteraction(i, j uint) {
	p.layers.Enable(i, j)
}

func (p *Physics2D) DisableLayerInteraction(i, j uint) {
	p.layers.Disable(i, j)
}

func (p *Physics2D) DoLayersInteract(i, j uint) bool {
	return p.layers.Interact(i, j)
}

// CreateRigidbody adds a dynamic body of mass 1 at the origin.
func (p *Physics2D) CreateRigidbody() *Rigidbody2D {
	if p == nil {
		return nil
	}
	rb := &Rigidbody2D{
		entity:  p.registry.Create(),
		physics: p,
		mass:    1,
		mode:    ModeDynamic,
		enabled: true,
	}
	p.bodies.Set(rb.entity.ID(), rb)
	return rb
}

// Rigidbody resolves a handle. It fails once the body has been reaped.
func (p *Physics2D) Rigidbody(handle ecs.Entity) (*Rigidbody2D, bool) {
	if p == nil || !p.registry.IsAlive(handle) {
		return nil, false
	}
	rb, ok := p.bodies.Get(handle.ID())
	if !ok || rb.entity != handle {
		return nil, false
	}
	return rb, true
}

// DestroyRigidbody marks rb and its collider; both are reaped at the end of
// the current or next step.
func (p *Physics2D) DestroyRigidbody(rb *Rigidbody2D) {
	rb.Destroy()
}

func (p *Physics2D) CreateDiscCollider(localPosition cp.Vector, radius float64) *DiscCollider2D {
	if p == nil {
		return nil
	}
	if radius <= 0 {
		panicf("disc radius must be positive, got %v", radius)
	}
	c := &DiscCollider2D{localPosition: localPosition, radius: radius}
	p.addCollider(&c.colliderBase, ColliderDisc, c)
	return c
}

// CreatePolygonCollider builds a convex polygon collider. When giftWrap is
// set the points are replaced by their convex hull first. It panics if the
// polygon is not convex or has fewer than three points.
func (p *Physics2D) CreatePolygonCollider(localPosition cp.Vector, points []cp.Vector, giftWrap bool) *PolygonCollider2D {
	if p == nil {
		return nil
	}
	local, offset := newPolygonShape(localPosition, points, giftWrap)
	c := &PolygonCollider2D{
		local:         local,
		localPosition: offset,
		localBound:    local.BoundingDisc(),
	}
	p.addCollider(&c.colliderBase, ColliderPolygon, c)
	return c
}

func (p *Physics2D) DestroyCollider(c Collider2D) {
	if c == nil {
		return
	}
	c.Destroy()
}

func (p *Physics2D) addCollider(base *colliderBase, kind ColliderType, c Collider2D) {
	p.nextColliderID++
	base.entity = p.registry.Create()
	base.id = p.nextColliderID
	base.kind = kind
	base.physics = p
	base.material = DefaultMaterial
	p.colliders.Set(base.entity.ID(), c)
	c.UpdateWorldShape()
}

// Rigidbodies returns the bodies that have not been marked destroyed.
func (p *Physics2D) Rigidbodies() []*Rigidbody2D {
	if p == nil {
		return nil
	}
	out := make([]*Rigidbody2D, 0, p.bodies.Len())
	for _, rb := range p.bodies.Values() {
		if !rb.destroyed {
			out = append(out, rb)
		}
	}
	return out
}

// Colliders returns the colliders that have not been marked destroyed.
func (p *Physics2D) Colliders() []Collider2D {
	if p == nil {
		return nil
	}
	out := make([]Collider2D, 0, p.colliders.Len())
	for _, c := range p.colliders.Values() {
		if !c.IsDestroyed() {
			out = append(out, c)
		}
	}
	return out
}

// ActiveContacts returns the contacts seen on the latest step.
func (p *Physics2D) ActiveContacts() []Collision2D {
	if p == nil {
		return nil
	}
	out := make([]Collision2D, 0, len(p.contacts))
	for _, e := range p.contacts {
		if e.lastFrame == p.frameID {
			out = append(out, e.collision)
		}
	}
	return out
}

// ContactCount is the number of pairs held in the event cache.
func (p *Physics2D) ContactCount() int {
	if p == nil {
		return 0
	}
	return len(p.contacts)
}

// Update runs as many fixed steps as the clock has accumulated: zero, one or
// several.
func (p *Physics2D) Update() {
	if p == nil {
		return
	}
	if p.ownsClock {
		if c, ok := p.clock.(*common.GameClock); ok {
			c.Tick()
		}
	}
	for p.timer.CheckAndDecrement() {
		p.AdvanceSimulation(p.fixedDt)
	}
}

// AdvanceSimulation runs exactly one step of dt seconds.
func (p *Physics2D) AdvanceSimulation(dt float64) {
	if p == nil || dt <= 0 {
		return
	}
	p.frameID++
	p.applyEffectors(dt)
	p.moveRigidbodies(dt)
	p.updateWorldShapes()
	p.detectCollisions()
	p.resolveCollisions()
	p.cleanupDestroyedObjects()
}

// QueryPoint returns the live colliders containing point.
func (p *Physics2D) QueryPoint(point cp.Vector) []Collider2D {
	var out []Collider2D
	for _, c := range p.Colliders() {
		if c.Bound().Contains(point) && c.Contains(point) {
			out = append(out, c)
		}
	}
	return out
}

// QueryPlane returns the live colliders straddling plane.
func (p *Physics2D) QueryPlane(plane geom.Plane2D) []Collider2D {
	var out []Collider2D
	for _, c := range p.Colliders() {
		if c.IntersectsPlane(plane) {
			out = append(out, c)
		}
	}
	return out
}
