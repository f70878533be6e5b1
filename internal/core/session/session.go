// Package session implements the focus-session state machine behind the
// dungeon timer: countdown, stopwatch and pomodoro study/break sessions with
// pause, resume and idle auto-pause.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"pomodungeon/internal/core/clock"
	"pomodungeon/internal/core/model"
)

var (
	// ErrIdleUnsupported indicates idle detection is not available on this system.
	ErrIdleUnsupported = errors.New("idle detection unsupported")
	// ErrSessionActive is returned when starting while a session runs or is paused.
	ErrSessionActive = errors.New("session already active")
	// ErrInvalidTarget is returned for a countdown without a positive target.
	ErrInvalidTarget = errors.New("countdown target must be positive")
	ErrNotRunning    = errors.New("session not running")
	ErrNotPaused     = errors.New("session not paused")
	// ErrWrongMode is returned when stopping a countdown.
	ErrWrongMode = errors.New("operation not valid for session mode")
)

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Options describe a session being started.
type Options struct {
	Mode     Mode
	Target   time.Duration
	Break    time.Duration
	Pomodoro bool
	// Resume is time already spent on the task; elapsed starts from it.
	Resume time.Duration
	TaskID string
}

// Snapshot is a consistent read of the session.
type Snapshot struct {
	State     State
	Mode      Mode
	Phase     Phase
	TaskID    string
	Elapsed   time.Duration
	Target    time.Duration
	Remaining time.Duration
	Progress  float64
	Paused    time.Duration
}

// Active reports whether the session is running or paused.
func (snapshot Snapshot) Active() bool {
	return snapshot.State == StateRunning || snapshot.State == StatePaused
}

// Session is the timer state machine. At most one session is active.
type Session struct {
	mu          sync.Mutex
	clock       clock.Clock
	config      model.SessionConfig
	state       State
	mode        Mode
	phase       Phase
	taskID      string
	epoch       time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
	frozen      time.Duration
	target      time.Duration
	breakLength time.Duration
	studied     time.Duration

	idleChecker      IdleChecker
	lastIdleCheck    time.Time
	lastProgressSent time.Time
	events           []chan Event
}

// New creates an idle session bound to a clock.
func New(source clock.Clock, config model.SessionConfig) *Session {
	if source == nil {
		source = clock.System{}
	}
	if config.IdleCheckInterval <= 0 {
		config.IdleCheckInterval = 5 * time.Second
	}
	return &Session{clock: source, config: config, state: StateIdle}
}

// SetIdleChecker injects an idle checker.
func (session *Session) SetIdleChecker(checker IdleChecker) {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.idleChecker = checker
}

// UpdateConfig replaces the idle settings.
func (session *Session) UpdateConfig(config model.SessionConfig) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if config.IdleCheckInterval <= 0 {
		config.IdleCheckInterval = 5 * time.Second
	}
	session.config = config
	session.lastIdleCheck = time.Time{}
}

// Subscribe registers a new observer channel.
func (session *Session) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	session.mu.Lock()
	session.events = append(session.events, ch)
	session.mu.Unlock()
	return ch
}

// Close closes every observer channel.
func (session *Session) Close() {
	session.mu.Lock()
	events := session.events
	session.events = nil
	session.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Start begins a new session.
func (session *Session) Start(options Options) error {
	if options.Mode == "" {
		options.Mode = ModeCountdown
	}
	if options.Mode != ModeCountdown && options.Mode != ModeStopwatch {
		return fmt.Errorf("start session: %w", ErrWrongMode)
	}
	if options.Mode == ModeCountdown && options.Target <= 0 {
		return ErrInvalidTarget
	}
	if options.Resume < 0 {
		options.Resume = 0
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.activeLocked() {
		return ErrSessionActive
	}

	now := session.clock.Now()
	session.state = StateRunning
	session.mode = options.Mode
	session.taskID = options.TaskID
	session.epoch = now.Add(-options.Resume)
	session.pausedAt = time.Time{}
	session.pausedTotal = 0
	session.frozen = 0
	session.target = options.Target
	session.breakLength = 0
	session.studied = 0
	session.phase = PhaseNone
	if options.Mode == ModeCountdown && options.Pomodoro {
		session.phase = PhaseStudy
		session.breakLength = options.Break
	}
	if options.Mode == ModeStopwatch {
		session.target = 0
	}
	session.lastIdleCheck = time.Time{}
	session.lastProgressSent = time.Time{}

	session.emitLocked(session.eventLocked(EventStateChange, now))
	return nil
}

// Pause freezes elapsed time.
func (session *Session) Pause() error {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.state != StateRunning {
		return ErrNotRunning
	}
	session.pauseLocked(session.clock.Now())
	session.emitLocked(session.eventLocked(EventStateChange, session.pausedAt))
	return nil
}

// Resume continues a paused session from its frozen reading.
func (session *Session) Resume() error {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.state != StatePaused {
		return ErrNotPaused
	}
	now := session.clock.Now()
	if gap := now.Sub(session.pausedAt); gap > 0 {
		session.pausedTotal += gap
	}
	// Re-anchor so that now - epoch - pausedTotal equals the frozen reading.
	session.epoch = now.Add(-session.pausedTotal - session.frozen)
	session.pausedAt = time.Time{}
	session.state = StateRunning
	session.emitLocked(session.eventLocked(EventStateChange, now))
	return nil
}

// Stop ends a stopwatch session, keeping its final reading.
func (session *Session) Stop() (time.Duration, error) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if !session.activeLocked() {
		return 0, ErrNotRunning
	}
	if session.mode != ModeStopwatch {
		return 0, ErrWrongMode
	}
	now := session.clock.Now()
	session.frozen = session.elapsedLocked(now)
	session.state = StateIdle
	session.emitLocked(session.eventLocked(EventStateChange, now))
	return session.frozen, nil
}

// Abandon flees from any active session and returns the time spent so the
// caller can save it on the task.
func (session *Session) Abandon() (time.Duration, error) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if !session.activeLocked() {
		return 0, ErrNotRunning
	}
	now := session.clock.Now()
	spent := session.studied + session.elapsedLocked(now)
	if session.phase == PhaseBreak {
		spent = session.studied
	}
	session.frozen = session.elapsedLocked(now)
	session.state = StateIdle
	session.phase = PhaseNone
	session.emitLocked(session.eventLocked(EventStateChange, now))
	return spent, nil
}

// Reset returns a completed session to idle.
func (session *Session) Reset() {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.state != StateCompleted {
		return
	}
	session.state = StateIdle
	session.phase = PhaseNone
	session.emitLocked(session.eventLocked(EventStateChange, session.clock.Now()))
}

// Tick advances the state machine to now. Countdown sessions complete
// exactly once; pomodoro sessions switch from study to break first.
func (session *Session) Tick(now time.Time) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.state != StateRunning {
		return
	}

	session.handleIdleCheckLocked(now)
	if session.state != StateRunning {
		return
	}

	if session.mode == ModeCountdown && session.elapsedLocked(now) >= session.target {
		if session.phase == PhaseStudy && session.breakLength > 0 {
			session.enterBreakLocked(now)
			return
		}
		session.completeLocked(now)
		return
	}

	session.maybeEmitProgressLocked(now)
}

// Elapsed returns the current reading.
func (session *Session) Elapsed() time.Duration {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.elapsedLocked(session.clock.Now())
}

// Remaining returns the countdown time left, or zero for a stopwatch.
func (session *Session) Remaining() time.Duration {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.remainingLocked(session.elapsedLocked(session.clock.Now()))
}

// Progress returns the countdown completion ratio in [0,1].
func (session *Session) Progress() float64 {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.progressLocked(session.elapsedLocked(session.clock.Now()))
}

// State returns the current state.
func (session *Session) State() State {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state
}

// Snapshot returns a consistent view of the session.
func (session *Session) Snapshot() Snapshot {
	session.mu.Lock()
	defer session.mu.Unlock()
	now := session.clock.Now()
	elapsed := session.elapsedLocked(now)
	paused := session.pausedTotal
	if session.state == StatePaused {
		paused += now.Sub(session.pausedAt)
	}
	return Snapshot{
		State:     session.state,
		Mode:      session.mode,
		Phase:     session.phase,
		TaskID:    session.taskID,
		Elapsed:   elapsed,
		Target:    session.target,
		Remaining: session.remainingLocked(elapsed),
		Progress:  session.progressLocked(elapsed),
		Paused:    paused,
	}
}

func (session *Session) activeLocked() bool {
	return session.state == StateRunning || session.state == StatePaused
}

func (session *Session) elapsedLocked(now time.Time) time.Duration {
	if session.state != StateRunning {
		return session.frozen
	}
	elapsed := now.Sub(session.epoch) - session.pausedTotal
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (session *Session) remainingLocked(elapsed time.Duration) time.Duration {
	if session.mode != ModeCountdown || session.target <= 0 {
		return 0
	}
	if elapsed >= session.target {
		return 0
	}
	return session.target - elapsed
}

func (session *Session) progressLocked(elapsed time.Duration) float64 {
	if session.mode != ModeCountdown || session.target <= 0 {
		return 0
	}
	progress := float64(elapsed) / float64(session.target)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (session *Session) pauseLocked(now time.Time) {
	session.frozen = session.elapsedLocked(now)
	session.pausedAt = now
	session.state = StatePaused
}

func (session *Session) enterBreakLocked(now time.Time) {
	session.studied = session.target
	session.phase = PhaseBreak
	session.target = session.breakLength
	session.epoch = now
	session.pausedTotal = 0
	session.lastProgressSent = time.Time{}
	session.emitLocked(session.eventLocked(EventPhaseChange, now))
}

func (session *Session) completeLocked(now time.Time) {
	session.frozen = session.target
	session.state = StateCompleted
	event := session.eventLocked(EventCompleted, now)
	event.Elapsed = session.studied + session.target
	if session.phase == PhaseBreak {
		event.Elapsed = session.studied
	}
	session.emitLocked(event)
}

func (session *Session) handleIdleCheckLocked(now time.Time) {
	if !session.config.IdlePauseEnabled || session.idleChecker == nil {
		return
	}
	if !session.lastIdleCheck.IsZero() && now.Sub(session.lastIdleCheck) < session.config.IdleCheckInterval {
		return
	}
	session.lastIdleCheck = now

	idleDuration, err := session.idleChecker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			session.config.IdlePauseEnabled = false
		}
		event := session.eventLocked(EventIdleError, now)
		event.Message = err.Error()
		session.emitLocked(event)
		return
	}
	if session.config.IdlePauseAfter > 0 && idleDuration >= session.config.IdlePauseAfter {
		session.pauseLocked(now)
		event := session.eventLocked(EventIdlePause, now)
		event.Message = "idle pause"
		session.emitLocked(event)
	}
}

func (session *Session) maybeEmitProgressLocked(now time.Time) {
	if !session.lastProgressSent.IsZero() && now.Sub(session.lastProgressSent) < time.Second {
		return
	}
	session.emitLocked(session.eventLocked(EventProgress, now))
	session.lastProgressSent = now
}

func (session *Session) eventLocked(eventType EventType, now time.Time) Event {
	elapsed := session.elapsedLocked(now)
	return Event{
		Type:     eventType,
		State:    session.state,
		Phase:    session.phase,
		TaskID:   session.taskID,
		Elapsed:  elapsed,
		Progress: session.progressLocked(elapsed),
		At:       now,
	}
}

func (session *Session) emitLocked(event Event) {
	for _, ch := range session.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// Format renders a duration as H:MM:SS, or M:SS below one hour.
func Format(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}
	total := int64(duration / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
