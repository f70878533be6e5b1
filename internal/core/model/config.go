package model

import "time"

// PomodoroConfig defines the default study/break split offered by the UI.
type PomodoroConfig struct {
	Study time.Duration
	Break time.Duration
}

// SessionConfig contains runtime settings for the session state machine.
type SessionConfig struct {
	IdlePauseEnabled  bool
	IdlePauseAfter    time.Duration
	IdleCheckInterval time.Duration
}

// WeatherConfig toggles the ambient particle layers of the scene.
type WeatherConfig struct {
	Rain      bool
	Lightning bool
}
