// Package clock provides the time source used by the session state machine
// and the render loop.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time. Implementations must be monotonic.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock; time.Now carries a monotonic reading so
// subtraction between two values is immune to wall-clock adjustments.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// Manual is a clock advanced explicitly by tests and deterministic replays.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual creates a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (manual *Manual) Now() time.Time {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.now
}

// Advance moves the clock forward. Negative durations are ignored.
func (manual *Manual) Advance(delta time.Duration) time.Time {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	if delta > 0 {
		manual.now = manual.now.Add(delta)
	}
	return manual.now
}

// Set jumps the clock to an absolute time if it is not earlier than the
// current reading.
func (manual *Manual) Set(now time.Time) {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	if now.After(manual.now) {
		manual.now = now
	}
}
