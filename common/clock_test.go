package common

import (
	"math"
	"testing"
)

func TestTimerCheckAndDecrement(t *testing.T) {
	cases := []struct {
		name    string
		advance []float64
		steps   int
	}{
		{"none", []float64{0.01}, 0},
		{"exactly_one", []float64{0.02}, 1},
		{"catch_up", []float64{0.065}, 3},
		{"accumulates", []float64{0.015, 0.015, 0.015}, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clock := NewGameClock()
			timer := NewTimer(clock, 0.02)
			steps := 0
			for _, dt := range c.advance {
				clock.Advance(dt)
				for timer.CheckAndDecrement() {
					steps++
				}
			}
			if steps != c.steps {
				t.Fatalf("expected %d steps, got %d", c.steps, steps)
			}
		})
	}
}

func TestGameClockPauseScaleAndStep(t *testing.T) {
	clock := NewGameClock()
	clock.Advance(0.05)
	clock.SetTimeScale(2)
	clock.Advance(0.01)
	if math.Abs(clock.TotalElapsedSeconds()-0.07) > 1e-12 {
		t.Fatalf("expected 0.07 elapsed, got %v", clock.TotalElapsedSeconds())
	}

	clock.SetPaused(true)
	clock.Advance(0.05)
	if clock.LastDeltaSeconds() != 0 {
		t.Fatalf("paused clock should not advance")
	}

	clock.StepSingleFrame(0.01)
	if math.Abs(clock.LastDeltaSeconds()-0.01) > 1e-12 {
		t.Fatalf("single step should advance unscaled dt, got %v", clock.LastDeltaSeconds())
	}
	if !clock.IsPaused() {
		t.Fatalf("clock should pause again after a single step")
	}

	clock.SetPaused(false)
	clock.Advance(5)
	if math.Abs(clock.LastDeltaSeconds()-2*DefaultMaxDeltaSeconds) > 1e-12 {
		t.Fatalf("expected clamped and scaled delta, got %v", clock.LastDeltaSeconds())
	}
}

func TestTimerRunsOneStepPerPeriodFrame(t *testing.T) {
	const period = 1.0 / 120.0
	cases := []struct {
		name   string
		paused bool
		frames int
		drive  func(*GameClock)
	}{
		{"single_frame_steps", true, 1000, func(c *GameClock) { c.StepSingleFrame(period) }},
		{"steady_advance", false, 10000, func(c *GameClock) { c.Advance(period) }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clock := NewGameClock()
			clock.SetPaused(c.paused)
			timer := NewTimer(clock, period)
			for frame := range c.frames {
				c.drive(clock)
				steps := 0
				for timer.CheckAndDecrement() {
					steps++
				}
				if steps != 1 {
					t.Fatalf("frame %d ran %d steps, want 1", frame, steps)
				}
			}
		})
	}
}

func TestTimerSetPeriodKeepsElapsed(t *testing.T) {
	clock := NewGameClock()
	timer := NewTimer(clock, 0.02)
	clock.Advance(0.03)
	if !timer.CheckAndDecrement() {
		t.Fatalf("expected a step after 0.03s")
	}
	timer.SetPeriod(0.01)
	if math.Abs(timer.ElapsedSeconds()-0.01) > 1e-12 {
		t.Fatalf("expected 0.01 carried over, got %v", timer.ElapsedSeconds())
	}
	if !timer.CheckAndDecrement() || timer.CheckAndDecrement() {
		t.Fatalf("expected exactly one step at the new period")
	}
}
