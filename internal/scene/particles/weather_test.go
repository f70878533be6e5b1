package particles

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRainRecyclesInsteadOfDestroying(t *testing.T) {
	rain := NewRain(DefaultRainConfig(), 320, 180, rand.New(rand.NewSource(7)))
	require.Len(t, rain.Drops(), 70)

	recycled := false
	for frame := 0; frame < 300; frame++ {
		before := make([]float64, len(rain.Drops()))
		for i, drop := range rain.Drops() {
			before[i] = drop.Y
		}
		rain.Update(0.033)

		require.Len(t, rain.Drops(), 70)
		for i, drop := range rain.Drops() {
			assert.GreaterOrEqual(t, drop.X, 0.0)
			assert.Less(t, drop.X, 320.0)
			if drop.Y < before[i] {
				recycled = true
				assert.Less(t, drop.Y, 0.0, "recycled drops restart above the visible area")
			}
		}
	}
	assert.True(t, recycled)
}

func TestWrapIsToroidal(t *testing.T) {
	assert.InDelta(t, 315.0, wrap(-5, 320), 1e-9)
	assert.InDelta(t, 4.0, wrap(324, 320), 1e-9)
	assert.InDelta(t, 100.0, wrap(100, 320), 1e-9)
}

func TestLightningWaitsForCooldown(t *testing.T) {
	config := DefaultLightningConfig()
	config.Chance = 1
	lightning := NewLightning(config, 320, 180, rand.New(rand.NewSource(8)))

	elapsed := 0.0
	for elapsed < config.Cooldown-0.1 {
		require.False(t, lightning.Update(0.033))
		elapsed += 0.033
	}
	for i := 0; i < 10 && lightning.Strikes() == 0; i++ {
		lightning.Update(0.033)
	}
	assert.Equal(t, 1, lightning.Strikes())
	assert.NotEmpty(t, lightning.Bolt())
}

func TestLightningNeverStrikesWithZeroChance(t *testing.T) {
	config := DefaultLightningConfig()
	config.Chance = 0
	lightning := NewLightning(config, 320, 180, rand.New(rand.NewSource(9)))

	for i := 0; i < 2000; i++ {
		assert.False(t, lightning.Update(0.033))
	}
	assert.Zero(t, lightning.Brightness())
}

func TestBoltIsJaggedAndStopsEarly(t *testing.T) {
	config := DefaultLightningConfig()
	lightning := NewLightning(config, 320, 180, rand.New(rand.NewSource(10)))

	for i := 0; i < 50; i++ {
		lightning.Strike()
		bolt := lightning.Bolt()
		require.GreaterOrEqual(t, len(bolt), 2)
		assert.Zero(t, bolt[0].Y)
		for j := 1; j < len(bolt); j++ {
			assert.Greater(t, bolt[j].Y, bolt[j-1].Y)
			assert.LessOrEqual(t, bolt[j].X-bolt[j-1].X, config.Jitter)
		}
		last := bolt[len(bolt)-1]
		assert.Less(t, last.Y, 180*config.StopMax+config.StepMax)
	}
}

func TestFlashDecaysProportionally(t *testing.T) {
	config := DefaultLightningConfig()
	config.Chance = 0
	lightning := NewLightning(config, 320, 180, rand.New(rand.NewSource(11)))

	lightning.Strike()
	assert.InDelta(t, config.Boost, lightning.Brightness(), 1e-9)

	lightning.Update(config.FlashDuration / 2)
	assert.InDelta(t, config.Boost/2, lightning.Brightness(), 1e-9)

	lightning.Update(config.FlashDuration)
	assert.Zero(t, lightning.Brightness())
	assert.Nil(t, lightning.Bolt())
}
