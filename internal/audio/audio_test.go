package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, streamer beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buffer := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buffer)
		out = append(out, buffer[:n]...)
		if !ok {
			break
		}
	}
	require.NoError(t, streamer.Err())
	return out
}

func TestOscillatorStopsAtLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, wave := range []Wave{WaveSine, WaveSquare, WaveTriangle} {
		samples := drain(t, NewOscillator(440, 100*time.Millisecond, wave, rate))
		assert.Len(t, samples, 800)
		for _, sample := range samples {
			assert.GreaterOrEqual(t, sample[0], -1.0)
			assert.LessOrEqual(t, sample[0], 1.0)
		}
	}
}

func TestEnvelopeFadesEdges(t *testing.T) {
	rate := beep.SampleRate(1000)
	samples := drain(t, NewEnvelope(NewOscillator(0, time.Second, WaveSquare, rate), time.Second, 100*time.Millisecond, 100*time.Millisecond, rate))
	require.Len(t, samples, 1000)

	assert.Zero(t, samples[0][0])
	assert.InDelta(t, 0.5, samples[50][0], 1e-9)
	assert.Equal(t, 1.0, samples[500][0])
	assert.InDelta(t, 0.1, samples[990][0], 1e-9)
}

func TestSoundsMatchDurationsAndRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, sound := range []Sound{SoundGate, SoundVictory, SoundPhase, SoundFlee} {
		samples := drain(t, Build(sound, rate, 1))
		assert.Len(t, samples, rate.N(sound.Duration()), "sound %d", sound)
		for _, sample := range samples {
			assert.LessOrEqual(t, math.Abs(sample[0]), 1+1e-9)
		}
	}
}

func TestZeroLevelIsSilent(t *testing.T) {
	samples := drain(t, Build(SoundVictory, beep.SampleRate(8000), 0))
	require.NotEmpty(t, samples)
	for _, sample := range samples {
		assert.Zero(t, sample[0])
	}
}

func TestUninitialisedPlayerIsSilent(t *testing.T) {
	player := New(2, true)
	assert.Equal(t, 1.0, player.level)
	player.Play(SoundGate)
	assert.Zero(t, player.Playing())
	player.Close()

	player.Configure(-1, false)
	assert.Zero(t, player.level)
	assert.False(t, player.enabled)
}
