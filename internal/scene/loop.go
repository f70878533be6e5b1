package scene

import (
	"context"
	"time"

	"pomodungeon/internal/core/clock"
)

const (
	// MaxFrameDelta caps dt so a stalled window does not fast-forward the
	// simulation in one step.
	MaxFrameDelta = 33 * time.Millisecond
	DefaultFPS    = 60
)

// Loop drives a scene at a fixed frame rate.
type Loop struct {
	scene   *Scene
	surface Surface
	clock   clock.Clock
	fps     int
	last    time.Time
	frames  uint64
	hooks   []func(now time.Time)
}

// NewLoop binds a scene to a surface and a clock.
func NewLoop(scene *Scene, surface Surface, source clock.Clock, fps int) *Loop {
	if source == nil {
		source = clock.System{}
	}
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{scene: scene, surface: surface, clock: source, fps: fps}
}

// AfterFrame registers a hook run after every frame, on the loop goroutine.
func (loop *Loop) AfterFrame(hook func(now time.Time)) {
	loop.hooks = append(loop.hooks, hook)
}

// Frames returns the number of frames stepped.
func (loop *Loop) Frames() uint64 {
	return loop.frames
}

// Step renders one frame at now and returns the dt it used. The first frame
// and any backwards clock reading use dt = 0.
func (loop *Loop) Step(now time.Time) time.Duration {
	var delta time.Duration
	if !loop.last.IsZero() {
		delta = now.Sub(loop.last)
	}
	if delta < 0 {
		delta = 0
	}
	if delta > MaxFrameDelta {
		delta = MaxFrameDelta
	}
	loop.last = now

	loop.scene.Frame(delta.Seconds(), loop.surface)
	loop.frames++
	for _, hook := range loop.hooks {
		hook(now)
	}
	return delta
}

// Run steps the loop until ctx is cancelled.
func (loop *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(loop.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			loop.Step(loop.clock.Now())
		}
	}
}
