package common

import "time"

// Clock is the time source driving fixed-step timers.
type Clock interface {
	LastDeltaSeconds() float64
	TotalElapsedSeconds() float64
}

// DefaultMaxDeltaSeconds caps a single frame so a debugger pause or a window
// drag does not unleash hundreds of catch-up steps.
const DefaultMaxDeltaSeconds = 0.1

// GameClock accumulates scaled frame time. Tick reads the wall clock; Advance
// feeds an explicit delta, which is how tests and headless tools drive it.
type GameClock struct {
	MaxDeltaSeconds float64

	timeScale  float64
	paused     bool
	stepFrame  bool
	lastDelta  float64
	total      float64
	frameCount uint64
	lastTick   time.Time
}

func NewGameClock() *GameClock {
	return &GameClock{MaxDeltaSeconds: DefaultMaxDeltaSeconds, timeScale: 1}
}

// Tick advances by the wall time elapsed since the previous Tick. The first
// Tick only records the start time.
func (c *GameClock) Tick() {
	if c == nil {
		return
	}
	now := time.Now()
	if c.lastTick.IsZero() {
		c.lastTick = now
		c.Advance(0)
		return
	}
	dt := now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	c.Advance(dt)
}

func (c *GameClock) Advance(dt float64) {
	if c == nil {
		return
	}
	if c.MaxDeltaSeconds > 0 && dt > c.MaxDeltaSeconds {
		dt = c.MaxDeltaSeconds
	}
	if dt < 0 {
		dt = 0
	}
	switch {
	case c.stepFrame:
		c.stepFrame = false
		c.paused = true
	case c.paused:
		dt = 0
	default:
		dt *= c.timeScale
	}
	c.lastDelta = dt
	c.total += dt
	c.frameCount++
}

// StepSingleFrame unpauses for exactly one Advance of dt and then pauses.
func (c *GameClock) StepSingleFrame(dt float64) {
	if c == nil {
		return
	}
	c.stepFrame = true
	c.paused = false
	c.Advance(dt)
}

func (c *GameClock) SetPaused(paused bool) {
	if c == nil {
		return
	}
	c.paused = paused
}

func (c *GameClock) IsPaused() bool {
	return c != nil && c.paused
}

func (c *GameClock) SetTimeScale(scale float64) {
	if c == nil || scale < 0 {
		return
	}
	c.timeScale = scale
}

func (c *GameClock) TimeScale() float64 {
	if c == nil {
		return 0
	}
	return c.timeScale
}

func (c *GameClock) LastDeltaSeconds() float64 {
	if c == nil {
		return 0
	}
	return c.lastDelta
}

func (c *GameClock) TotalElapsedSeconds() float64 {
	if c == nil {
		return 0
	}
	return c.total
}

func (c *GameClock) FrameCount() uint64 {
	if c == nil {
		return 0
	}
	return c.frameCount
}
