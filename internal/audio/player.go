// Package audio synthesises the app's short sound effects with beep.
package audio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes effects into the speaker. It is silent until Initialize
// succeeds, so a machine without audio keeps working.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	level       float64
	enabled     bool
	initialized bool
}

// New creates a player at the given level in [0,1].
func New(level float64, enabled bool) *Player {
	return &Player{mixer: &beep.Mixer{}, level: clampLevel(level), enabled: enabled}
}

// Initialize opens the speaker.
func (player *Player) Initialize() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(player.mixer)
	player.initialized = true
	return nil
}

// Configure updates level and the on/off switch.
func (player *Player) Configure(level float64, enabled bool) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.level = clampLevel(level)
	player.enabled = enabled
}

// Play queues a sound. It does nothing when muted or uninitialised.
func (player *Player) Play(sound Sound) {
	player.mu.Lock()
	if !player.enabled || !player.initialized {
		player.mu.Unlock()
		return
	}
	streamer := Build(sound, sampleRate, player.level)
	player.mu.Unlock()

	speaker.Lock()
	player.mixer.Add(streamer)
	speaker.Unlock()
}

// Close silences everything queued.
func (player *Player) Close() {
	player.mu.Lock()
	defer player.mu.Unlock()
	if !player.initialized {
		return
	}
	speaker.Lock()
	player.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	player.initialized = false
	log.Printf("[audio] closed")
}

// Playing reports how many sounds are still mixing.
func (player *Player) Playing() int {
	player.mu.Lock()
	defer player.mu.Unlock()
	if !player.initialized {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return player.mixer.Len()
}

func clampLevel(level float64) float64 {
	if level < 0 {
		return 0
	}
	if level > 1 {
		return 1
	}
	return level
}
