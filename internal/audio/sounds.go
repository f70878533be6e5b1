package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Sound names an effect.
type Sound int

const (
	// SoundGate plays when the dungeon gate starts to open.
	SoundGate Sound = iota
	// SoundVictory plays when a task is completed.
	SoundVictory
	// SoundPhase plays when a pomodoro switches between study and break.
	SoundPhase
	// SoundFlee plays when a session is abandoned.
	SoundFlee
)

// Duration is the total length of a sound.
func (sound Sound) Duration() time.Duration {
	switch sound {
	case SoundGate:
		return 450 * time.Millisecond
	case SoundVictory:
		return 3 * 140 * time.Millisecond
	case SoundPhase:
		return 2 * 180 * time.Millisecond
	case SoundFlee:
		return 300 * time.Millisecond
	}
	return 0
}

// Build renders a sound at the given sample rate and level in [0,1].
func Build(sound Sound, rate beep.SampleRate, level float64) beep.Streamer {
	var streamer beep.Streamer
	switch sound {
	case SoundGate:
		// low rumble with a fifth on top
		streamer = beep.Mix(
			volume(note(98, 450*time.Millisecond, WaveTriangle, rate), 0.7),
			volume(note(147, 450*time.Millisecond, WaveSine, rate), 0.3),
		)
	case SoundVictory:
		step := 140 * time.Millisecond
		streamer = beep.Seq(
			note(523.25, step, WaveSquare, rate),
			note(659.25, step, WaveSquare, rate),
			note(783.99, step, WaveSquare, rate),
		)
		level *= 0.5
	case SoundPhase:
		step := 180 * time.Millisecond
		streamer = beep.Seq(
			note(880, step, WaveSine, rate),
			note(660, step, WaveSine, rate),
		)
	case SoundFlee:
		streamer = note(110, 300*time.Millisecond, WaveSquare, rate)
		level *= 0.4
	default:
		return beep.Silence(0)
	}
	return volume(streamer, level)
}
