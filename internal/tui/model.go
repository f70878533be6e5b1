package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"pomodungeon/internal/core/battle"
	"pomodungeon/internal/core/clock"
	"pomodungeon/internal/core/model"
	"pomodungeon/internal/core/quest"
	"pomodungeon/internal/core/session"
)

const tickInterval = 250 * time.Millisecond

type tickMsg time.Time

// Outcome is how a focus run ended.
type Outcome struct {
	Completion *quest.Completion
	Fled       bool
	Err        error
}

// Model is the terminal focus screen for one battle.
type Model struct {
	controller *battle.Controller
	clock      clock.Clock
	events     <-chan session.Event
	task       model.Task
	monster    model.Monster
	snapshot   session.Snapshot
	bar        progress.Model
	status     string
	outcome    Outcome
	done       bool
}

// NewModel builds the screen for a battle already begun on controller.
func NewModel(controller *battle.Controller, source clock.Clock, task model.Task, events <-chan session.Event) Model {
	if source == nil {
		source = clock.System{}
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40
	return Model{
		controller: controller,
		clock:      source,
		events:     events,
		task:       task,
		monster:    model.FindMonster(task.MonsterType),
		snapshot:   controller.Session().Snapshot(),
		bar:        bar,
	}
}

// Outcome reports how the run ended.
func (m Model) Outcome() Outcome {
	return m.outcome
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.done {
			return m, nil
		}
		m.controller.Session().Tick(m.clock.Now())
		m.drainEvents()
		m.snapshot = m.controller.Session().Snapshot()
		if m.done {
			return m, tea.Quit
		}
		return m, tick()
	case tea.WindowSizeMsg:
		m.bar.Width = clampWidth(msg.Width - 12)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, tea.Quit
	}
	timer := m.controller.Session()
	switch {
	case key.Matches(msg, keys.Pause):
		if m.snapshot.State == session.StatePaused {
			m.setError(timer.Resume())
		} else {
			m.setError(timer.Pause())
		}
		m.snapshot = timer.Snapshot()
		return m, nil
	case key.Matches(msg, keys.Victory):
		completion, err := m.controller.Victory()
		m.finish(completion, err)
		return m, tea.Quit
	case key.Matches(msg, keys.Flee), key.Matches(msg, keys.Quit):
		task, err := m.controller.Flee()
		m.done = true
		m.outcome = Outcome{Fled: true, Err: err}
		if err == nil {
			m.status = fmt.Sprintf("Fled with %s on the clock.", session.Format(task.Spent()))
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) drainEvents() {
	for {
		select {
		case event, ok := <-m.events:
			if !ok {
				return
			}
			m.handleEvent(event)
		default:
			return
		}
	}
}

func (m *Model) handleEvent(event session.Event) {
	switch event.Type {
	case session.EventPhaseChange:
		m.status = "Study phase won. Take your break."
	case session.EventIdlePause:
		m.status = "Paused while you were away."
	case session.EventCompleted:
		completion, ok, err := m.controller.Handle(event)
		if ok || err != nil {
			m.finish(completion, err)
		}
	}
}

func (m *Model) finish(completion quest.Completion, err error) {
	m.done = true
	if err != nil {
		m.outcome = Outcome{Err: err}
		return
	}
	m.outcome = Outcome{Completion: &completion}
	m.status = fmt.Sprintf("%s defeated! +%d coins", m.monster.Name, completion.CoinsEarned)
}

func (m *Model) setError(err error) {
	if err != nil {
		m.status = err.Error()
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.task.Name))
	b.WriteString("  ")
	b.WriteString(monsterStyle.Render("vs " + m.monster.Name))
	b.WriteString("\n\n")

	clockText := session.Format(m.snapshot.Elapsed)
	if m.snapshot.Mode == session.ModeCountdown {
		clockText = session.Format(m.snapshot.Remaining)
	}
	switch {
	case m.snapshot.State == session.StatePaused:
		b.WriteString(pausedStyle.Render(clockText + "  paused"))
	case m.snapshot.Phase == session.PhaseBreak:
		b.WriteString(breakStyle.Render(clockText + "  break"))
	default:
		b.WriteString(timerStyle.Render(clockText))
	}
	b.WriteString("\n\n")
	if m.snapshot.Mode == session.ModeCountdown {
		b.WriteString(m.bar.ViewAs(m.snapshot.Progress))
		b.WriteString("\n\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.outcome.Err != nil {
		b.WriteString(monsterStyle.Render(m.outcome.Err.Error()))
		b.WriteString("\n")
	}
	if !m.done {
		b.WriteString(helpStyle.Render(helpLine()))
	}
	return frameStyle.Render(b.String())
}

func helpLine() string {
	parts := make([]string, 0, 4)
	for _, binding := range keys.bindings() {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, " • ")
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(now time.Time) tea.Msg {
		return tickMsg(now)
	})
}

func clampWidth(width int) int {
	if width < 10 {
		return 10
	}
	if width > 80 {
		return 80
	}
	return width
}
