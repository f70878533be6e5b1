package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestRectContainsIncludesEdges(t *testing.T) {
	rect := Rect{X: 122, Y: 66, W: 76, H: 74}

	assert.True(t, rect.Contains(122, 66))
	assert.True(t, rect.Contains(198, 140))
	assert.True(t, rect.Contains(160, 100))
	assert.False(t, rect.Contains(121.9, 100))
	assert.False(t, rect.Contains(160, 140.1))
}

func TestInsetDoorRect(t *testing.T) {
	door := Rect{X: 122, Y: 66, W: 76, H: 74}.Inset(10, 16, 10, -2)

	assert.Equal(t, Rect{X: 132, Y: 82, W: 56, H: 60}, door)
	assert.Equal(t, 160.0, door.CenterX())
	assert.Equal(t, 142.0, door.Bottom())
}

func TestEaseOutCubicEndpoints(t *testing.T) {
	assert.Equal(t, 0.0, EaseOutCubic(0))
	assert.Equal(t, 1.0, EaseOutCubic(1))
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-9)
	assert.Equal(t, 1.0, EaseOutCubic(3))
}

func TestEaseOutCubicMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Float64Range(0, 1).Draw(t, "a")
		b := rapid.Float64Range(0, 1).Draw(t, "b")
		if a > b {
			a, b = b, a
		}
		if EaseOutCubic(a) > EaseOutCubic(b) {
			t.Fatalf("ease(%v)=%v > ease(%v)=%v", a, EaseOutCubic(a), b, EaseOutCubic(b))
		}
		if EaseOutCubic(a) < a {
			t.Fatalf("ease-out must lead the linear value at %v", a)
		}
	})
}
