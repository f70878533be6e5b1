package particles

import (
	"math/rand"

	"pomodungeon/internal/scene/geom"
)

// LightningConfig tunes strike frequency and flash.
type LightningConfig struct {
	Cooldown      float64
	Chance        float64
	FlashDuration float64
	Boost         float64

	StepMin float64
	StepMax float64
	Jitter  float64
	// Bolts stop somewhere between these fractions of the sky height.
	StopMin float64
	StopMax float64
}

// DefaultLightningConfig returns a rare storm.
func DefaultLightningConfig() LightningConfig {
	return LightningConfig{
		Cooldown:      6,
		Chance:        0.004,
		FlashDuration: 0.35,
		Boost:         0.45,
		StepMin:       5,
		StepMax:       10,
		Jitter:        6,
		StopMin:       0.3,
		StopMax:       0.55,
	}
}

// Lightning is a low-frequency stochastic strike generator.
type Lightning struct {
	config   LightningConfig
	width    float64
	height   float64
	rng      *rand.Rand
	cooldown float64
	flash    float64
	bolt     []geom.Point
	strikes  int
}

// NewLightning creates a generator that is in cooldown from the start.
func NewLightning(config LightningConfig, width, height float64, rng *rand.Rand) *Lightning {
	return &Lightning{
		config:   config,
		width:    width,
		height:   height,
		rng:      rng,
		cooldown: config.Cooldown,
	}
}

// Update advances timers and rolls for a strike. It reports whether a strike
// started this frame.
func (lightning *Lightning) Update(dt float64) bool {
	if dt < 0 {
		dt = 0
	}
	if lightning.flash > 0 {
		lightning.flash -= dt
		if lightning.flash <= 0 {
			lightning.flash = 0
			lightning.bolt = nil
		}
	}

	if lightning.cooldown > 0 {
		lightning.cooldown -= dt
		return false
	}
	if lightning.rng.Float64() >= lightning.config.Chance {
		return false
	}

	lightning.Strike()
	return true
}

// Strike forces a bolt regardless of cooldown.
func (lightning *Lightning) Strike() {
	lightning.bolt = lightning.buildBolt()
	lightning.flash = lightning.config.FlashDuration
	lightning.cooldown = lightning.config.Cooldown
	lightning.strikes++
}

// Bolt returns the current polyline, or nil when no flash is active.
func (lightning *Lightning) Bolt() []geom.Point {
	return lightning.bolt
}

// Brightness is the screen boost, proportional to the remaining flash.
func (lightning *Lightning) Brightness() float64 {
	if lightning.flash <= 0 || lightning.config.FlashDuration <= 0 {
		return 0
	}
	return lightning.config.Boost * lightning.flash / lightning.config.FlashDuration
}

// Strikes returns the number of strikes so far.
func (lightning *Lightning) Strikes() int {
	return lightning.strikes
}

func (lightning *Lightning) buildBolt() []geom.Point {
	config := lightning.config
	stop := lightning.height * (config.StopMin + lightning.rng.Float64()*(config.StopMax-config.StopMin))

	x := lightning.width * (0.1 + lightning.rng.Float64()*0.8)
	y := 0.0
	points := []geom.Point{{X: x, Y: y}}
	for y < stop {
		step := config.StepMin + lightning.rng.Float64()*(config.StepMax-config.StepMin)
		if step <= 0 {
			step = 1
		}
		y += step
		x += (lightning.rng.Float64()*2 - 1) * config.Jitter
		points = append(points, geom.Point{X: geom.Clamp(x, 0, lightning.width-1), Y: y})
	}
	return points
}
