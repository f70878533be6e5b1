// Package gate implements the dungeon gate: a clickable rectangle whose double
// doors slide open over a little more than one second.
package gate

import (
	"math"

	"pomodungeon/internal/scene/geom"
)

// State is the animation state of the gate.
type State string

const (
	StateClosed  State = "closed"
	StateOpening State = "opening"
	StateOpen    State = "open"
)

const (
	// DefaultOpenRate is progress per second; a full open takes ~1.11s.
	DefaultOpenRate = 0.9
	doorSlideMax    = 18
)

// DefaultBounds returns the gate hit rectangle for a canvas of the given width.
func DefaultBounds(canvasWidth float64) geom.Rect {
	return geom.Rect{X: math.Floor(canvasWidth/2) - 38, Y: 66, W: 76, H: 74}
}

// Gate holds the gate animation and pointer flags.
type Gate struct {
	bounds   geom.Rect
	rate     float64
	progress float64
	opening  bool
	hover    bool
	armed    bool
	opened   int
}

// New creates a closed gate at fixed bounds.
func New(bounds geom.Rect, rate float64) *Gate {
	if rate <= 0 {
		rate = DefaultOpenRate
	}
	return &Gate{bounds: bounds, rate: rate}
}

// Bounds returns the hit rectangle.
func (gate *Gate) Bounds() geom.Rect {
	return gate.bounds
}

// Door returns the doorway rectangle inside the stone frame.
func (gate *Gate) Door() geom.Rect {
	return gate.bounds.Inset(10, 16, 10, -2)
}

// State derives the animation state from progress and the opening flag.
func (gate *Gate) State() State {
	switch {
	case gate.opening:
		return StateOpening
	case gate.progress >= 1:
		return StateOpen
	default:
		return StateClosed
	}
}

// Progress returns the raw linear progress in [0,1].
func (gate *Gate) Progress() float64 {
	return gate.progress
}

// Eased returns the ease-out cubic of progress, used for visuals.
func (gate *Gate) Eased() float64 {
	return geom.EaseOutCubic(gate.progress)
}

// DoorSlide returns how far each door leaf has slid, in pixels.
func (gate *Gate) DoorSlide() float64 {
	return math.Floor(gate.Eased() * doorSlideMax)
}

// Opening reports whether the doors are animating.
func (gate *Gate) Opening() bool {
	return gate.opening
}

// Hovered reports whether the pointer is over an idle gate.
func (gate *Gate) Hovered() bool {
	return gate.hover
}

// Armed reports whether a valid start action is pending.
func (gate *Gate) Armed() bool {
	return gate.armed
}

// OpenCount returns how many times the gate finished opening.
func (gate *Gate) OpenCount() int {
	return gate.opened
}

// SetArmed updates the armed flag.
func (gate *Gate) SetArmed(armed bool) {
	gate.armed = armed
}

// Contains tests a logical-space point against the gate bounds.
func (gate *Gate) Contains(x, y float64) bool {
	return gate.bounds.Contains(x, y)
}

// Hover recomputes the hover flag for a pointer position. Hover is suppressed
// while the doors animate or when blocked (a session is running).
func (gate *Gate) Hover(x, y float64, blocked bool) bool {
	gate.hover = gate.Contains(x, y) && !gate.opening && !blocked
	return gate.hover
}

// Leave clears the hover flag.
func (gate *Gate) Leave() {
	gate.hover = false
}

// Open starts the opening animation from progress 0. It is rejected while
// the doors are already opening.
func (gate *Gate) Open() bool {
	if gate.opening {
		return false
	}
	gate.progress = 0
	gate.opening = true
	gate.armed = false
	return true
}

// Advance moves an opening gate forward by dt seconds and reports whether it
// finished opening during this call.
func (gate *Gate) Advance(dt float64) bool {
	if !gate.opening || dt <= 0 {
		return false
	}
	gate.progress = geom.Clamp(gate.progress+dt*gate.rate, 0, 1)
	if gate.progress < 1 {
		return false
	}
	gate.opening = false
	gate.hover = false
	gate.opened++
	return true
}

// ForceClose snaps the doors shut and clears every pointer flag.
func (gate *Gate) ForceClose() {
	gate.progress = 0
	gate.opening = false
	gate.hover = false
	gate.armed = false
}

// ForceOpen snaps the doors fully open without animating.
func (gate *Gate) ForceOpen() {
	gate.progress = 1
	gate.opening = false
	gate.hover = false
	gate.armed = false
}
