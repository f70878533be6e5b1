package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

type oscillator struct {
	freq     float64
	phase    float64
	position int
	length   int
	wave     Wave
	rate     beep.SampleRate
}

// NewOscillator streams a fixed-length tone.
func NewOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, length: rate.N(duration), wave: wave, rate: rate}
}

func (osc *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if osc.position >= osc.length {
			return i, i > 0
		}
		var value float64
		switch osc.wave {
		case WaveSquare:
			value = -1
			if osc.phase < 0.5 {
				value = 1
			}
		case WaveTriangle:
			value = 4*math.Abs(osc.phase-0.5) - 1
		default:
			value = math.Sin(2 * math.Pi * osc.phase)
		}
		samples[i][0] = value
		samples[i][1] = value

		osc.phase += osc.freq / float64(osc.rate)
		osc.phase -= math.Floor(osc.phase)
		osc.position++
	}
	return len(samples), true
}

func (osc *oscillator) Err() error { return nil }

type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope fades a stream in over attack and out over its last release.
func NewEnvelope(streamer beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: streamer,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (env *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := env.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if env.attack > 0 && env.position < env.attack {
			gain = float64(env.position) / float64(env.attack)
		}
		if remaining := env.total - env.position; env.release > 0 && remaining < env.release {
			gain = math.Max(0, float64(remaining)/float64(env.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		env.position++
	}
	return n, ok
}

func (env *envelope) Err() error { return env.streamer.Err() }

// volume scales linearly; zero is silent because log2(0) is -Inf.
func volume(streamer beep.Streamer, level float64) beep.Streamer {
	if level <= 0 {
		return &effects.Volume{Streamer: streamer, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: streamer, Base: 2, Volume: math.Log2(level)}
}

// note is one enveloped tone.
func note(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	release := duration / 2
	return NewEnvelope(NewOscillator(freq, duration, wave, rate), duration, 5*time.Millisecond, release, rate)
}
