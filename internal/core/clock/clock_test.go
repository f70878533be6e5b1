package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClockOnlyMovesForward(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	manual := NewManual(start)

	assert.Equal(t, start.Add(5*time.Second), manual.Advance(5*time.Second))
	manual.Advance(-time.Minute)
	assert.Equal(t, start.Add(5*time.Second), manual.Now())

	manual.Set(start)
	assert.Equal(t, start.Add(5*time.Second), manual.Now())

	manual.Set(start.Add(time.Hour))
	assert.Equal(t, start.Add(time.Hour), manual.Now())
}

func TestSystemClockIsMonotonic(t *testing.T) {
	var system System
	first := system.Now()
	second := system.Now()
	assert.False(t, second.Before(first))
}
