package quest

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"pomodungeon/internal/core/model"
)

type fakeStore struct {
	player      model.Player
	tasks       []model.Task
	playerSaves int
	taskSaves   int
	failSaves   bool
}

func (store *fakeStore) LoadPlayer() (model.Player, error) { return store.player, nil }
func (store *fakeStore) LoadTasks() ([]model.Task, error)  { return store.tasks, nil }

func (store *fakeStore) SavePlayer(player model.Player) error {
	store.playerSaves++
	if store.failSaves {
		return errors.New("disk full")
	}
	store.player = player
	return nil
}

func (store *fakeStore) SaveTasks(tasks []model.Task) error {
	store.taskSaves++
	if store.failSaves {
		return errors.New("disk full")
	}
	store.tasks = tasks
	return nil
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(store *fakeStore) *Service {
	counter := 0
	return New(store, Config{
		Now: func() time.Time { return fixedNow },
		NewID: func() string {
			counter++
			return fmt.Sprintf("task-%d", counter)
		},
		Rand: rand.New(rand.NewSource(7)),
	})
}

func TestNewFallsBackToDefaultPlayer(t *testing.T) {
	service := newTestService(&fakeStore{})
	player := service.Player()

	assert.Zero(t, player.Coins)
	assert.Equal(t, model.StarterAvatar, player.CurrentAvatar)
	assert.Empty(t, service.Tasks())
}

func TestAddTaskAppliesDefaults(t *testing.T) {
	store := &fakeStore{}
	service := newTestService(store)

	task, err := service.AddTask(model.NewTask{Name: "  "})
	require.NoError(t, err)
	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "Unnamed Task", task.Name)
	assert.Equal(t, 25, task.EstimatedMinutes)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, "goblin", task.MonsterType)
	assert.GreaterOrEqual(t, task.DungeonRoom, 0)
	assert.Less(t, task.DungeonRoom, model.DungeonRoomCount)
	assert.Equal(t, fixedNow, task.CreatedAt)
	assert.Zero(t, task.BreakMinutes)

	pomodoro, err := service.AddTask(model.NewTask{Name: "Read", Priority: model.PriorityUrgent, Pomodoro: true})
	require.NoError(t, err)
	assert.Equal(t, "flying_eye", pomodoro.MonsterType)
	assert.Equal(t, 5, pomodoro.BreakMinutes)
	assert.Equal(t, 2, store.taskSaves)
	assert.Len(t, store.tasks, 2)
}

func TestCompleteTaskPaysRewardOnce(t *testing.T) {
	store := &fakeStore{}
	service := newTestService(store)
	deadline := fixedNow.Add(90 * time.Minute)
	task, err := service.AddTask(model.NewTask{Name: "Essay", Priority: model.PriorityHigh, Deadline: &deadline})
	require.NoError(t, err)
	_, err = service.RecordTimeSpent(task.ID, 20*time.Minute)
	require.NoError(t, err)

	completion, err := service.CompleteTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, 35, completion.CoinsEarned)
	assert.True(t, completion.Task.Completed)

	player := service.Player()
	assert.Equal(t, 35, player.Coins)
	assert.Equal(t, 1, player.TotalTasksCompleted)
	assert.Equal(t, int64(1200), player.TotalTimeWorked)
	require.Len(t, player.CompletedTasks, 1)
	require.NotNil(t, player.CompletedTasks[0].TimeRemainingBeforeDeadline)
	assert.Equal(t, int64(90*60*1000), *player.CompletedTasks[0].TimeRemainingBeforeDeadline)
	assert.Equal(t, 35, store.player.Coins)

	_, err = service.CompleteTask(task.ID)
	assert.ErrorIs(t, err, ErrTaskCompleted)
	assert.Equal(t, 35, service.Player().Coins)

	_, err = service.CompleteTask("missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestRecordTimeSpentRoundsToSeconds(t *testing.T) {
	service := newTestService(&fakeStore{})
	task, err := service.AddTask(model.NewTask{Name: "Essay", Priority: model.PriorityLow})
	require.NoError(t, err)

	task, err = service.RecordTimeSpent(task.ID, 1500*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(2), task.TimeSpent)

	task, err = service.RecordTimeSpent(task.ID, 1400*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), task.TimeSpent)

	task, err = service.RecordTimeSpent(task.ID, -time.Second)
	require.NoError(t, err)
	assert.Zero(t, task.TimeSpent)
}

func TestUnlockAndEquipAvatar(t *testing.T) {
	store := &fakeStore{player: model.Player{
		Coins:           40,
		CurrentAvatar:   model.StarterAvatar,
		UnlockedAvatars: []string{model.StarterAvatar},
	}}
	service := newTestService(store)

	assert.ErrorIs(t, service.UnlockAvatar("wizard", 125), ErrInsufficientCoins)
	assert.Equal(t, 40, service.Player().Coins)
	assert.ErrorIs(t, service.SetCurrentAvatar("wizard"), ErrAvatarLocked)
	assert.ErrorIs(t, service.UnlockAvatar(model.StarterAvatar, 0), ErrAlreadyUnlocked)
	assert.ErrorIs(t, service.Buy("dragon"), ErrUnknownAvatar)
	assert.ErrorIs(t, service.UnlockAvatar("wizard", -500), ErrNegativeCost)
	assert.Equal(t, 40, service.Player().Coins)
	assert.False(t, service.Player().HasAvatar("wizard"))

	require.NoError(t, service.UnlockAvatar("knight_2", 30))
	require.NoError(t, service.SetCurrentAvatar("knight_2"))

	player := service.Player()
	assert.Equal(t, 10, player.Coins)
	assert.Equal(t, "knight_2", player.CurrentAvatar)
	assert.Equal(t, []string{model.StarterAvatar, "knight_2"}, player.UnlockedAvatars)
	assert.Equal(t, "knight_2", store.player.CurrentAvatar)
}

func TestActiveTasksSortStablyByPriority(t *testing.T) {
	service := newTestService(&fakeStore{})
	add := func(name string, priority model.Priority) string {
		task, err := service.AddTask(model.NewTask{Name: name, Priority: priority})
		require.NoError(t, err)
		return task.ID
	}
	add("low-a", model.PriorityLow)
	done := add("urgent-done", model.PriorityUrgent)
	add("medium-a", model.PriorityMedium)
	add("urgent-a", model.PriorityUrgent)
	add("low-b", model.PriorityLow)
	add("medium-b", model.PriorityMedium)
	_, err := service.CompleteTask(done)
	require.NoError(t, err)

	var names []string
	for _, task := range service.ActiveTasks() {
		names = append(names, task.Name)
	}
	assert.Equal(t, []string{"urgent-a", "medium-a", "medium-b", "low-a", "low-b"}, names)
}

func TestUpdateAndDeleteTask(t *testing.T) {
	service := newTestService(&fakeStore{})
	task, err := service.AddTask(model.NewTask{Name: "Draft"})
	require.NoError(t, err)

	empty := "   "
	_, err = service.UpdateTask(task.ID, model.TaskPatch{Name: &empty})
	assert.ErrorIs(t, err, ErrEmptyName)

	name := "Final draft"
	priority := model.PriorityLow
	updated, err := service.UpdateTask(task.ID, model.TaskPatch{Name: &name, Priority: &priority})
	require.NoError(t, err)
	assert.Equal(t, "Final draft", updated.Name)
	assert.Equal(t, "mushroom", updated.MonsterType)

	require.NoError(t, service.DeleteTask(task.ID))
	assert.ErrorIs(t, service.DeleteTask(task.ID), ErrTaskNotFound)
	_, err = service.UpdateTask(task.ID, model.TaskPatch{Name: &name})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestSaveFailureDoesNotFailOperation(t *testing.T) {
	store := &fakeStore{failSaves: true}
	service := newTestService(store)

	task, err := service.AddTask(model.NewTask{Name: "Offline"})
	require.NoError(t, err)
	_, err = service.CompleteTask(task.ID)
	require.NoError(t, err)

	assert.Equal(t, 20, service.Player().Coins)
	assert.Equal(t, 1, store.playerSaves)
}

func TestPlacementIsDeterministicAndClamped(t *testing.T) {
	first := Place("abc", 0, 3)
	assert.Equal(t, Placement{Left: 13, Top: 5, Rotation: 0}, first)
	assert.Equal(t, first, Place("abc", 0, 3))
	assert.Equal(t, 75.0, Place("abc", 2, 3).Left)

	rapid.Check(t, func(t *rapid.T) {
		id := rapid.StringMatching(`[a-z0-9-]{1,36}`).Draw(t, "id")
		total := rapid.IntRange(1, 40).Draw(t, "total")
		index := rapid.IntRange(0, total-1).Draw(t, "index")

		placement := Place(id, index, total)
		if placement.Left < 5 || placement.Left > 75 {
			t.Fatalf("left %v out of range", placement.Left)
		}
		if placement.Top < 5 || placement.Top > 65 {
			t.Fatalf("top %v out of range", placement.Top)
		}
		if placement.Rotation < -6 || placement.Rotation > 5 {
			t.Fatalf("rotation %v out of range", placement.Rotation)
		}
	})
}

func TestCoinsNeverGoNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		service := newTestService(&fakeStore{})
		count := rapid.IntRange(0, 10).Draw(t, "tasks")
		for i := 0; i < count; i++ {
			priority := rapid.SampledFrom(model.Priorities).Draw(t, "priority")
			task, _ := service.AddTask(model.NewTask{Name: "quest", Priority: priority})
			_, _ = service.CompleteTask(task.ID)
		}
		for _, avatar := range model.Avatars {
			if rapid.Bool().Draw(t, "buy") {
				before := service.Player().Coins
				err := service.Buy(avatar.ID)
				after := service.Player().Coins
				if err == nil && after != before-avatar.Cost {
					t.Fatalf("coins %d after buying %s from %d", after, avatar.ID, before)
				}
				if err != nil && after != before {
					t.Fatalf("failed purchase changed coins")
				}
			}
			if service.Player().Coins < 0 {
				t.Fatalf("coins went negative")
			}
		}
	})
}
