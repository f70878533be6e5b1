// Package particles simulates the ambient effects around the dungeon gate:
// bursty mist at the threshold, constant rain and occasional lightning.
package particles

import (
	"math"
	"math/rand"

	"pomodungeon/internal/scene/geom"
	"pomodungeon/internal/scene/signal"
)

// DefaultMistCeiling is the population cap used by the scene.
const DefaultMistCeiling = 42

// MistParticle is one puff of fog.
type MistParticle struct {
	X, Y    float64
	VX, VY  float64
	Life    float64
	MaxLife float64
	Size    int
	Seed    float64
}

// MistConfig tunes emission and integration.
type MistConfig struct {
	Ceiling int

	IdleRate      float64
	ActiveRate    float64
	IntensityRate float64

	HorizontalDamping float64
	VerticalDamping   float64
	SettleDrift       float64

	// WideThreshold is the eased gate progress at which emission switches
	// from the threshold seam to the whole doorway.
	WideThreshold float64
}

// DefaultMistConfig returns the tuning of the gate scene.
func DefaultMistConfig() MistConfig {
	return MistConfig{
		Ceiling:           DefaultMistCeiling,
		IdleRate:          2,
		ActiveRate:        6,
		IntensityRate:     10,
		HorizontalDamping: 0.15,
		VerticalDamping:   0.05,
		SettleDrift:       6,
		WideThreshold:     0.25,
	}
}

// Emitter describes where mist may appear this frame.
type Emitter struct {
	Door    geom.Rect
	CenterX float64
	Eased   float64
}

// Mist owns the live mist particles. Oldest particles sit at the front.
type Mist struct {
	config    MistConfig
	rng       *rand.Rand
	particles []MistParticle
}

// NewMist creates an empty mist field.
func NewMist(config MistConfig, rng *rand.Rand) *Mist {
	if config.Ceiling <= 0 {
		config.Ceiling = DefaultMistCeiling
	}
	return &Mist{
		config:    config,
		rng:       rng,
		particles: make([]MistParticle, 0, config.Ceiling),
	}
}

// Particles returns the live particles, oldest first. The slice is owned by Mist.
func (mist *Mist) Particles() []MistParticle {
	return mist.particles
}

// Len returns the live particle count.
func (mist *Mist) Len() int {
	return len(mist.particles)
}

// Ceiling returns the population cap.
func (mist *Mist) Ceiling() int {
	return mist.config.Ceiling
}

// Reset drops every particle.
func (mist *Mist) Reset() {
	mist.particles = mist.particles[:0]
}

// Spawn emits one particle. It is a no-op at the ceiling unless force is set,
// in which case the oldest particles are evicted to make room.
func (mist *Mist) Spawn(emitter Emitter, force bool) bool {
	if len(mist.particles) >= mist.config.Ceiling && !force {
		return false
	}

	door := emitter.Door
	seamX := door.CenterX() + mist.between(-3, 3)
	thresholdY := door.Bottom() - 4

	var x, y float64
	if emitter.Eased < mist.config.WideThreshold {
		x = seamX + mist.between(-6, 6)
		y = thresholdY + mist.between(-3, 2)
	} else {
		x = mist.between(door.X+8, door.X+door.W-8)
		y = mist.between(door.Bottom()-14, door.Bottom()-5)
	}

	outward := 1.0
	if x < emitter.CenterX {
		outward = -1
	}
	life := mist.between(0.9, 1.6)

	mist.particles = append(mist.particles, MistParticle{
		X:       x,
		Y:       y,
		VX:      mist.between(6, 16)*outward + mist.between(-4, 4),
		VY:      mist.between(-18, -8),
		Life:    life,
		MaxLife: life,
		Size:    2 + mist.rng.Intn(3),
		Seed:    mist.rng.Float64() * 10,
	})

	if excess := len(mist.particles) - mist.config.Ceiling; excess > 0 {
		mist.particles = append(mist.particles[:0], mist.particles[excess:]...)
	}
	return true
}

// Burst force-spawns count particles.
func (mist *Mist) Burst(emitter Emitter, count int) {
	for i := 0; i < count; i++ {
		mist.Spawn(emitter, true)
	}
}

// Rate returns the emission rate in particles per second for the signal.
func (mist *Mist) Rate(signals signal.Interactivity) float64 {
	if !signals.Active() {
		return mist.config.IdleRate
	}
	return mist.config.ActiveRate + mist.config.IntensityRate*signals.EmitIntensity()
}

// Update emits new particles for the frame and integrates the live ones.
func (mist *Mist) Update(dt, now float64, signals signal.Interactivity, emitter Emitter) {
	if dt < 0 {
		dt = 0
	}

	toSpawn := dt * mist.Rate(signals)
	whole := math.Min(math.Floor(toSpawn), float64(mist.config.Ceiling))
	for i := 0; i < int(whole); i++ {
		mist.Spawn(emitter, false)
	}
	if mist.rng.Float64() < toSpawn-whole {
		mist.Spawn(emitter, false)
	}

	live := mist.particles[:0]
	for _, particle := range mist.particles {
		particle.Life -= dt
		if particle.Life <= 0 {
			continue
		}

		sway := math.Sin(now*2+particle.Seed) * 10
		particle.X += (particle.VX + sway*0.15) * dt
		particle.Y += particle.VY * dt

		particle.VX *= 1 - mist.config.HorizontalDamping*dt
		particle.VY *= 1 - mist.config.VerticalDamping*dt

		if particle.Life < particle.MaxLife*0.25 {
			particle.Y += mist.config.SettleDrift * dt
		}
		live = append(live, particle)
	}
	mist.particles = live
}

// Alpha returns the remaining-life fraction of a particle in [0,1].
func (particle MistParticle) Alpha() float64 {
	if particle.MaxLife <= 0 {
		return 0
	}
	return geom.Clamp(particle.Life/particle.MaxLife, 0, 1)
}

func (mist *Mist) between(low, high float64) float64 {
	return low + mist.rng.Float64()*(high-low)
}
