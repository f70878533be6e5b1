package session

import "time"

// State represents the current session mode.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// Mode selects how a session ends.
type Mode string

const (
	// ModeCountdown completes automatically once elapsed reaches the target.
	ModeCountdown Mode = "countdown"
	// ModeStopwatch runs until explicitly stopped.
	ModeStopwatch Mode = "stopwatch"
)

// Phase is the pomodoro phase of a countdown session.
type Phase string

const (
	PhaseNone  Phase = ""
	PhaseStudy Phase = "study"
	PhaseBreak Phase = "break"
)

// EventType defines the type of session event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventPhaseChange EventType = "phase_change"
	EventCompleted   EventType = "completed"
	EventProgress    EventType = "progress"
	EventIdlePause   EventType = "idle_pause"
	EventIdleError   EventType = "idle_error"
)

// Event represents a session update for observers.
type Event struct {
	Type     EventType
	State    State
	Phase    Phase
	TaskID   string
	Elapsed  time.Duration
	Progress float64
	Message  string
	At       time.Time
}
