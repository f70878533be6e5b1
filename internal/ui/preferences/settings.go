package preferences

import (
	"time"

	"pomodungeon/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	FocusDuration time.Duration
	BreakDuration time.Duration
	Pomodoro      bool

	Rain      bool
	Lightning bool

	IdleEnabled bool
	IdleAfter   time.Duration

	Sound       bool
	SoundVolume float64

	LaunchAtLogin bool
	WindowScale   int
}

// DefaultSettings returns default settings for PomoDungeon.
func DefaultSettings() Settings {
	return Settings{
		FocusDuration: 25 * time.Minute,
		BreakDuration: 5 * time.Minute,
		Pomodoro:      false,
		Rain:          true,
		Lightning:     true,
		IdleEnabled:   true,
		IdleAfter:     5 * time.Minute,
		Sound:         true,
		SoundVolume:   0.6,
		LaunchAtLogin: false,
		WindowScale:   3,
	}
}

// SessionConfig converts settings to the session idle configuration.
func (settings Settings) SessionConfig() model.SessionConfig {
	return model.SessionConfig{
		IdlePauseEnabled:  settings.IdleEnabled,
		IdlePauseAfter:    settings.IdleAfter,
		IdleCheckInterval: 5 * time.Second,
	}
}

// PomodoroConfig returns the default study/break split.
func (settings Settings) PomodoroConfig() model.PomodoroConfig {
	return model.PomodoroConfig{
		Study: settings.FocusDuration,
		Break: settings.BreakDuration,
	}
}

// WeatherConfig returns the ambient layer toggles.
func (settings Settings) WeatherConfig() model.WeatherConfig {
	return model.WeatherConfig{
		Rain:      settings.Rain,
		Lightning: settings.Lightning,
	}
}
