package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"pomodungeon/internal/scene/geom"
)

func newTestGate() *Gate {
	return New(DefaultBounds(320), DefaultOpenRate)
}

func TestDefaultGeometry(t *testing.T) {
	gate := newTestGate()

	assert.Equal(t, geom.Rect{X: 122, Y: 66, W: 76, H: 74}, gate.Bounds())
	assert.Equal(t, geom.Rect{X: 132, Y: 82, W: 56, H: 60}, gate.Door())
	assert.Equal(t, StateClosed, gate.State())
}

func TestOpeningTakesJustOverASecond(t *testing.T) {
	gate := newTestGate()
	require.True(t, gate.Open())

	frames := 0
	for gate.Opening() {
		gate.Advance(1.0 / 60)
		frames++
	}

	assert.Equal(t, 67, frames)
	assert.Equal(t, 1.0, gate.Progress())
	assert.Equal(t, StateOpen, gate.State())
}

func TestOpenIsRejectedWhileOpening(t *testing.T) {
	gate := newTestGate()
	require.True(t, gate.Open())
	gate.Advance(0.3)

	assert.False(t, gate.Open())
	assert.InDelta(t, 0.27, gate.Progress(), 1e-9)
}

func TestHoverSuppressedWhileOpeningOrBlocked(t *testing.T) {
	gate := newTestGate()

	assert.True(t, gate.Hover(160, 100, false))
	assert.False(t, gate.Hover(10, 10, false))
	assert.False(t, gate.Hover(160, 100, true))

	gate.Open()
	assert.False(t, gate.Hover(160, 100, false))
}

func TestForceCloseResetsFlags(t *testing.T) {
	gate := newTestGate()
	gate.Hover(160, 100, false)
	gate.SetArmed(true)
	gate.ForceOpen()
	require.Equal(t, StateOpen, gate.State())

	gate.SetArmed(true)
	gate.ForceClose()

	assert.Equal(t, StateClosed, gate.State())
	assert.False(t, gate.Hovered())
	assert.False(t, gate.Armed())
	assert.False(t, gate.Opening())
	assert.Zero(t, gate.DoorSlide())
}

func TestDoorSlideUsesEasedProgress(t *testing.T) {
	gate := newTestGate()
	gate.Open()
	gate.Advance(0.5 / DefaultOpenRate)

	assert.InDelta(t, 0.5, gate.Progress(), 1e-9)
	assert.InDelta(t, 0.875, gate.Eased(), 1e-9)
	assert.Equal(t, 15.0, gate.DoorSlide())
}

func TestOpeningIsMonotonicAndCompletesOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		gate := newTestGate()
		gate.Open()

		previous := gate.Progress()
		completions := 0
		steps := rapid.IntRange(1, 400).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if gate.Advance(rapid.Float64Range(0, 0.2).Draw(t, "dt")) {
				completions++
			}
			if gate.Progress() < previous {
				t.Fatalf("progress decreased from %v to %v", previous, gate.Progress())
			}
			if gate.Progress() > 1 {
				t.Fatalf("progress %v exceeds 1", gate.Progress())
			}
			previous = gate.Progress()
		}

		if completions > 1 {
			t.Fatalf("gate reported %d completions", completions)
		}
		if gate.Progress() == 1 && completions != 1 {
			t.Fatalf("gate reached 1 without reporting completion")
		}
		if completions == 1 && gate.State() != StateOpen {
			t.Fatalf("gate completed but state is %s", gate.State())
		}
	})
}
