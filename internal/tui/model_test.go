package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodungeon/internal/core/battle"
	"pomodungeon/internal/core/clock"
	"pomodungeon/internal/core/model"
	"pomodungeon/internal/core/quest"
	"pomodungeon/internal/core/session"
)

type memoryStore struct {
	player model.Player
	tasks  []model.Task
}

func (store *memoryStore) LoadPlayer() (model.Player, error) { return store.player, nil }
func (store *memoryStore) LoadTasks() ([]model.Task, error)  { return store.tasks, nil }
func (store *memoryStore) SavePlayer(player model.Player) error {
	store.player = player
	return nil
}
func (store *memoryStore) SaveTasks(tasks []model.Task) error {
	store.tasks = tasks
	return nil
}

type fixture struct {
	quests *quest.Service
	clock  *clock.Manual
	model  Model
}

func newFixture(t *testing.T, input model.NewTask, mode session.Mode) fixture {
	t.Helper()
	manual := clock.NewManual(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	quests := quest.New(&memoryStore{}, quest.Config{Now: manual.Now})
	controller := battle.New(quests, session.New(manual, model.SessionConfig{}))
	task, err := quests.AddTask(input)
	require.NoError(t, err)

	events := controller.Session().Subscribe(16)
	_, err = controller.Begin(task.ID, mode)
	require.NoError(t, err)
	return fixture{quests: quests, clock: manual, model: NewModel(controller, manual, task, events)}
}

func update(t *testing.T, current Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := current.Update(msg)
	return next.(Model), cmd
}

func runes(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func TestCountdownCompletesTask(t *testing.T) {
	fx := newFixture(t, model.NewTask{Name: "Essay", EstimatedMinutes: 1}, session.ModeCountdown)
	assert.NotNil(t, fx.model.Init())

	m, cmd := update(t, fx.model, tickMsg(fx.clock.Advance(30*time.Second)))
	require.NotNil(t, cmd)
	assert.False(t, m.done)
	assert.Contains(t, m.View(), "0:30")

	m, _ = update(t, m, tickMsg(fx.clock.Advance(31*time.Second)))
	require.True(t, m.done)
	require.NotNil(t, m.Outcome().Completion)
	assert.Equal(t, model.DefaultReward, m.Outcome().Completion.CoinsEarned)
	assert.Contains(t, m.View(), "Goblin defeated!")
	assert.Equal(t, model.DefaultReward, fx.quests.Player().Coins)
}

func TestSpaceTogglesPause(t *testing.T) {
	fx := newFixture(t, model.NewTask{Name: "Read"}, session.ModeCountdown)

	m, _ := update(t, fx.model, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, session.StatePaused, m.snapshot.State)
	assert.Contains(t, m.View(), "paused")

	fx.clock.Advance(time.Minute)
	m, _ = update(t, m, runes("p"))
	assert.Equal(t, session.StateRunning, m.snapshot.State)
	assert.Equal(t, time.Duration(0), m.snapshot.Elapsed)
}

func TestFleeSavesTime(t *testing.T) {
	fx := newFixture(t, model.NewTask{Name: "Code"}, session.ModeCountdown)
	fx.clock.Advance(45 * time.Second)

	m, cmd := update(t, fx.model, runes("f"))
	require.NotNil(t, cmd)
	assert.True(t, m.Outcome().Fled)
	require.NoError(t, m.Outcome().Err)
	assert.Contains(t, m.View(), "0:45")

	task, err := fx.quests.Task(fx.model.task.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(45), task.TimeSpent)
	assert.False(t, task.Completed)
}

func TestDoneKeyCompletesStopwatch(t *testing.T) {
	fx := newFixture(t, model.NewTask{Name: "Plan", Priority: model.PriorityUrgent}, session.ModeStopwatch)
	fx.clock.Advance(2 * time.Minute)

	m, _ := update(t, fx.model, runes("d"))
	require.NotNil(t, m.Outcome().Completion)
	assert.Equal(t, 50, m.Outcome().Completion.CoinsEarned)
	assert.Equal(t, int64(120), m.Outcome().Completion.Task.TimeSpent)
	assert.NotContains(t, m.View(), "flee")
}

func TestWindowResizeClampsBar(t *testing.T) {
	fx := newFixture(t, model.NewTask{Name: "Wide"}, session.ModeCountdown)
	m, _ := update(t, fx.model, tea.WindowSizeMsg{Width: 500})
	assert.Equal(t, 80, m.bar.Width)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 5})
	assert.Equal(t, 10, m.bar.Width)
}
