package common

import "math"

// periodTolerance is the fraction of a period that still counts as a full
// period. Clock totals are float sums, so an elapsed time of exactly one
// period can land a few ulps short.
const periodTolerance = 1e-6

// Timer measures periods against a Clock. It is the fixed-step accumulator:
// CheckAndDecrement consumes one whole period at a time.
type Timer struct {
	clock    Clock
	period   float64
	origin   float64
	consumed int64
}

func NewTimer(clock Clock, period float64) *Timer {
	t := &Timer{clock: clock}
	t.Start(period)
	return t
}

// Start restarts the timer at the clock's current time.
func (t *Timer) Start(period float64) {
	t.period = period
	t.origin = t.now()
	t.consumed = 0
}

// SetPeriod changes the period without discarding elapsed time.
func (t *Timer) SetPeriod(period float64) {
	t.origin = t.start()
	t.consumed = 0
	t.period = period
}

func (t *Timer) SetClock(clock Clock) {
	t.clock = clock
	t.origin = t.now()
	t.consumed = 0
}

func (t *Timer) Period() float64 {
	return t.period
}

// ElapsedSeconds is the time since the start of the current period.
func (t *Timer) ElapsedSeconds() float64 {
	return t.now() - t.start()
}

func (t *Timer) HasPeriodElapsed() bool {
	if t.period <= 0 {
		return false
	}
	return t.duePeriods() > t.consumed
}

// CheckAndDecrement reports whether a full period has elapsed and, if so,
// moves the start forward by one period.
func (t *Timer) CheckAndDecrement() bool {
	if !t.HasPeriodElapsed() {
		return false
	}
	t.consumed++
	return true
}

// duePeriods is the number of whole periods since origin.
func (t *Timer) duePeriods() int64 {
	return int64(math.Floor((t.now()-t.origin)/t.period + periodTolerance))
}

func (t *Timer) start() float64 {
	return t.origin + float64(t.consumed)*t.period
}

func (t *Timer) now() float64 {
	if t.clock == nil {
		return 0
	}
	return t.clock.TotalElapsedSeconds()
}
