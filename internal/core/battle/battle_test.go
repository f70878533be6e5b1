package battle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

var start = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newController(t *testing.T) (*Controller, *quest.Service, *clock.Manual) {
	t.Helper()
	manual := clock.NewManual(start)
	quests := quest.New(&memoryStore{}, quest.Config{Now: manual.Now})
	timer := session.New(manual, model.SessionConfig{})
	return New(quests, timer), quests, manual
}

func TestFleeSavesProgressAndResumes(t *testing.T) {
	controller, quests, manual := newController(t)
	task, err := quests.AddTask(model.NewTask{Name: "Essay", EstimatedMinutes: 10})
	require.NoError(t, err)

	_, err = controller.Begin(task.ID, session.ModeCountdown)
	require.NoError(t, err)
	current, ok := controller.Current()
	require.True(t, ok)
	assert.Equal(t, task.ID, current.ID)

	manual.Advance(4 * time.Minute)
	fled, err := controller.Flee()
	require.NoError(t, err)
	assert.Equal(t, int64(240), fled.TimeSpent)
	_, ok = controller.Current()
	assert.False(t, ok)

	_, err = controller.Begin(task.ID, session.ModeCountdown)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Minute, controller.Session().Elapsed())
	assert.Equal(t, 6*time.Minute, controller.Session().Remaining())
}

func TestCompletionEventCompletesTaskOnce(t *testing.T) {
	controller, quests, manual := newController(t)
	task, err := quests.AddTask(model.NewTask{Name: "Report", EstimatedMinutes: 1, Priority: model.PriorityHigh})
	require.NoError(t, err)
	events := controller.Session().Subscribe(8)

	_, err = controller.Begin(task.ID, session.ModeCountdown)
	require.NoError(t, err)
	controller.Session().Tick(manual.Advance(61 * time.Second))

	var completed session.Event
	for event := range drain(events) {
		if event.Type == session.EventCompleted {
			completed = event
		}
	}
	require.Equal(t, session.EventCompleted, completed.Type)

	completion, ok, err := controller.Handle(completed)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 35, completion.CoinsEarned)
	assert.Equal(t, int64(60), completion.Task.TimeSpent)
	assert.Equal(t, session.StateIdle, controller.Session().State())

	_, ok, err = controller.Handle(completed)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 35, quests.Player().Coins)
}

func TestVictoryCompletesEarly(t *testing.T) {
	controller, quests, manual := newController(t)
	task, err := quests.AddTask(model.NewTask{Name: "Read", Pomodoro: true})
	require.NoError(t, err)

	_, err = controller.Begin(task.ID, session.ModeStopwatch)
	require.NoError(t, err)
	manual.Advance(90 * time.Second)

	completion, err := controller.Victory()
	require.NoError(t, err)
	assert.True(t, completion.Task.Completed)
	assert.Equal(t, int64(90), completion.Task.TimeSpent)

	_, err = controller.Victory()
	assert.ErrorIs(t, err, ErrNoBattle)
	_, err = controller.Flee()
	assert.ErrorIs(t, err, ErrNoBattle)
	_, err = controller.Begin(task.ID, session.ModeCountdown)
	assert.ErrorIs(t, err, quest.ErrTaskCompleted)
}

func TestStopwatchVictoryStopsClock(t *testing.T) {
	controller, quests, manual := newController(t)
	task, err := quests.AddTask(model.NewTask{Name: "Inbox zero"})
	require.NoError(t, err)

	_, err = controller.Begin(task.ID, session.ModeStopwatch)
	require.NoError(t, err)
	manual.Advance(3 * time.Minute)

	completion, err := controller.Victory()
	require.NoError(t, err)
	assert.Equal(t, int64(180), completion.Task.TimeSpent)

	snapshot := controller.Session().Snapshot()
	assert.Equal(t, session.StateIdle, snapshot.State)
	assert.Equal(t, session.ModeStopwatch, snapshot.Mode)
	manual.Advance(time.Minute)
	assert.Equal(t, 3*time.Minute, controller.Session().Elapsed())
}

func TestBeginRejectsSecondBattle(t *testing.T) {
	controller, quests, _ := newController(t)
	first, _ := quests.AddTask(model.NewTask{Name: "One"})
	second, _ := quests.AddTask(model.NewTask{Name: "Two"})

	_, err := controller.Begin(first.ID, session.ModeCountdown)
	require.NoError(t, err)
	_, err = controller.Begin(second.ID, session.ModeCountdown)
	assert.ErrorIs(t, err, session.ErrSessionActive)
	current, _ := controller.Current()
	assert.Equal(t, first.ID, current.ID)

	_, err = controller.Begin("missing", session.ModeCountdown)
	assert.ErrorIs(t, err, quest.ErrTaskNotFound)
}

func drain(events <-chan session.Event) <-chan session.Event {
	out := make(chan session.Event, cap(events))
	for {
		select {
		case event := <-events:
			out <- event
		default:
			close(out)
			return out
		}
	}
}
