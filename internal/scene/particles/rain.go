package particles

import (
	"math"
	"math/rand"
)

// RainDrop is a single streak. Drops are recycled, never destroyed.
type RainDrop struct {
	X, Y   float64
	VX, VY float64
	Length int
}

// RainConfig tunes the rain field.
type RainConfig struct {
	Drops    int
	MinSpeed float64
	MaxSpeed float64
	Drift    float64
}

// DefaultRainConfig returns a light drizzle.
func DefaultRainConfig() RainConfig {
	return RainConfig{
		Drops:    70,
		MinSpeed: 110,
		MaxSpeed: 160,
		Drift:    -14,
	}
}

// Rain is a constant-density field of falling drops.
type Rain struct {
	config RainConfig
	width  float64
	height float64
	rng    *rand.Rand
	drops  []RainDrop
}

// NewRain scatters the configured number of drops across the visible area.
func NewRain(config RainConfig, width, height float64, rng *rand.Rand) *Rain {
	rain := &Rain{
		config: config,
		width:  width,
		height: height,
		rng:    rng,
		drops:  make([]RainDrop, config.Drops),
	}
	for i := range rain.drops {
		rain.drops[i] = rain.newDrop(rng.Float64() * height)
	}
	return rain
}

// Drops returns the drops. The slice is owned by Rain.
func (rain *Rain) Drops() []RainDrop {
	return rain.drops
}

// Update moves every drop, recycling those that leave the bottom edge and
// wrapping the horizontal axis.
func (rain *Rain) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	for i := range rain.drops {
		drop := &rain.drops[i]
		drop.X += drop.VX * dt
		drop.Y += drop.VY * dt

		if drop.Y > rain.height {
			*drop = rain.newDrop(-rain.rng.Float64()*rain.height*0.3 - float64(drop.Length))
		}
		drop.X = wrap(drop.X, rain.width)
	}
}

func (rain *Rain) newDrop(y float64) RainDrop {
	speed := rain.config.MinSpeed + rain.rng.Float64()*(rain.config.MaxSpeed-rain.config.MinSpeed)
	return RainDrop{
		X:      rain.rng.Float64() * rain.width,
		Y:      y,
		VX:     rain.config.Drift + rain.rng.Float64()*4 - 2,
		VY:     speed,
		Length: 3 + rain.rng.Intn(3),
	}
}

func wrap(value, size float64) float64 {
	if size <= 0 {
		return value
	}
	value = math.Mod(value, size)
	if value < 0 {
		value += size
	}
	return value
}
