// Package quest owns the task board and the player profile: adding and
// completing tasks, paying coin rewards and unlocking avatars.
package quest

import (
	"errors"
	"log"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pomodungeon/internal/core/model"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskCompleted     = errors.New("task already completed")
	ErrAlreadyUnlocked   = errors.New("already unlocked")
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrNegativeCost      = errors.New("avatar cost is negative")
	ErrAvatarLocked      = errors.New("avatar not unlocked")
	ErrUnknownAvatar     = errors.New("unknown avatar")
	ErrEmptyName         = errors.New("task name is empty")
)

const (
	defaultTaskName     = "Unnamed Task"
	defaultEstimate     = 25
	defaultBreakMinutes = 5
)

// Store persists the player profile and the task list.
type Store interface {
	LoadPlayer() (model.Player, error)
	LoadTasks() ([]model.Task, error)
	SavePlayer(player model.Player) error
	SaveTasks(tasks []model.Task) error
}

// Config contains the injectable sources used by the service.
type Config struct {
	Now   func() time.Time
	NewID func() string
	Rand  *rand.Rand
}

// Completion is the result of completing a task.
type Completion struct {
	Task        model.Task
	CoinsEarned int
}

// Service is the reward API over a Store.
type Service struct {
	mu     sync.Mutex
	store  Store
	config Config
	player model.Player
	tasks  []model.Task
}

// New loads the current state from store. Load failures fall back to the
// values the store returned and are logged.
func New(store Store, config Config) *Service {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.NewID == nil {
		config.NewID = uuid.NewString
	}
	if config.Rand == nil {
		config.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	service := &Service{store: store, config: config}
	service.Reload()
	return service
}

// Reload re-reads the state from the store.
func (service *Service) Reload() {
	player, err := service.store.LoadPlayer()
	if err != nil {
		log.Printf("[quest] load player: %v", err)
	}
	if player.CurrentAvatar == "" {
		player = model.DefaultPlayer()
	}
	tasks, err := service.store.LoadTasks()
	if err != nil {
		log.Printf("[quest] load tasks: %v", err)
	}

	service.mu.Lock()
	service.player = player
	service.tasks = tasks
	service.mu.Unlock()
}

// Player returns a copy of the player profile.
func (service *Service) Player() model.Player {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.player.Clone()
}

// Tasks returns every task in insertion order.
func (service *Service) Tasks() []model.Task {
	service.mu.Lock()
	defer service.mu.Unlock()
	return append([]model.Task(nil), service.tasks...)
}

// Task looks a task up by id.
func (service *Service) Task(id string) (model.Task, error) {
	service.mu.Lock()
	defer service.mu.Unlock()
	index := service.indexLocked(id)
	if index < 0 {
		return model.Task{}, ErrTaskNotFound
	}
	return service.tasks[index], nil
}

// ActiveTasks returns incomplete tasks sorted by priority, urgent first.
// Tasks of equal priority keep their insertion order.
func (service *Service) ActiveTasks() []model.Task {
	service.mu.Lock()
	active := make([]model.Task, 0, len(service.tasks))
	for _, task := range service.tasks {
		if !task.Completed {
			active = append(active, task)
		}
	}
	service.mu.Unlock()

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority.Rank() < active[j].Priority.Rank()
	})
	return active
}

// AddTask creates a task with a monster chosen by priority and a random room.
func (service *Service) AddTask(input model.NewTask) (model.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = defaultTaskName
	}
	if input.EstimatedMinutes <= 0 {
		input.EstimatedMinutes = defaultEstimate
	}
	if input.Priority == "" {
		input.Priority = model.PriorityMedium
	}
	if input.Pomodoro && input.BreakMinutes <= 0 {
		input.BreakMinutes = defaultBreakMinutes
	}
	if !input.Pomodoro {
		input.BreakMinutes = 0
	}
	if input.Deadline != nil {
		deadline := *input.Deadline
		input.Deadline = &deadline
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	task := model.Task{
		ID:               service.config.NewID(),
		Name:             name,
		EstimatedMinutes: input.EstimatedMinutes,
		Deadline:         input.Deadline,
		Priority:         input.Priority,
		CreatedAt:        service.config.Now(),
		MonsterType:      model.MonsterForPriority(input.Priority),
		DungeonRoom:      service.config.Rand.Intn(model.DungeonRoomCount),
		Pomodoro:         input.Pomodoro,
		BreakMinutes:     input.BreakMinutes,
	}
	service.tasks = append(service.tasks, task)
	service.saveTasksLocked()
	return task, nil
}

// UpdateTask applies a patch to a task.
func (service *Service) UpdateTask(id string, patch model.TaskPatch) (model.Task, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	index := service.indexLocked(id)
	if index < 0 {
		return model.Task{}, ErrTaskNotFound
	}
	task := service.tasks[index]

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return model.Task{}, ErrEmptyName
		}
		task.Name = name
	}
	if patch.EstimatedMinutes != nil && *patch.EstimatedMinutes > 0 {
		task.EstimatedMinutes = *patch.EstimatedMinutes
	}
	if patch.ClearDeadline {
		task.Deadline = nil
	} else if patch.Deadline != nil {
		deadline := *patch.Deadline
		task.Deadline = &deadline
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
		task.MonsterType = model.MonsterForPriority(task.Priority)
	}
	if patch.Pomodoro != nil {
		task.Pomodoro = *patch.Pomodoro
	}
	if patch.BreakMinutes != nil && *patch.BreakMinutes > 0 {
		task.BreakMinutes = *patch.BreakMinutes
	}
	if task.Pomodoro && task.BreakMinutes <= 0 {
		task.BreakMinutes = defaultBreakMinutes
	}

	service.tasks[index] = task
	service.saveTasksLocked()
	return task, nil
}

// DeleteTask removes a task.
func (service *Service) DeleteTask(id string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	index := service.indexLocked(id)
	if index < 0 {
		return ErrTaskNotFound
	}
	service.tasks = append(service.tasks[:index], service.tasks[index+1:]...)
	service.saveTasksLocked()
	return nil
}

// RecordTimeSpent stores the time spent on a task, typically after fleeing
// a battle, so the next session resumes from it.
func (service *Service) RecordTimeSpent(id string, spent time.Duration) (model.Task, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	index := service.indexLocked(id)
	if index < 0 {
		return model.Task{}, ErrTaskNotFound
	}
	if spent < 0 {
		spent = 0
	}
	service.tasks[index].TimeSpent = int64(spent.Round(time.Second) / time.Second)
	service.saveTasksLocked()
	return service.tasks[index], nil
}

// CompleteTask marks a task completed, pays its reward and records it in the
// player's history.
func (service *Service) CompleteTask(id string) (Completion, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	index := service.indexLocked(id)
	if index < 0 {
		return Completion{}, ErrTaskNotFound
	}
	task := service.tasks[index]
	if task.Completed {
		return Completion{}, ErrTaskCompleted
	}

	now := service.config.Now()
	coins := task.Priority.Reward()
	task.Completed = true
	task.CompletedAt = &now
	service.tasks[index] = task

	record := model.CompletedRecord{
		TaskID:           task.ID,
		Name:             task.Name,
		EstimatedMinutes: task.EstimatedMinutes,
		Deadline:         task.Deadline,
		Priority:         task.Priority,
		CompletedAt:      now,
		TimeSpent:        task.TimeSpent,
		CoinsEarned:      coins,
	}
	if task.Deadline != nil {
		remaining := task.Deadline.Sub(now).Milliseconds()
		record.TimeRemainingBeforeDeadline = &remaining
	}

	service.player.Coins += coins
	service.player.TotalTasksCompleted++
	service.player.TotalTimeWorked += task.TimeSpent
	service.player.CompletedTasks = append(service.player.CompletedTasks, record)

	service.saveTasksLocked()
	service.savePlayerLocked()
	return Completion{Task: task, CoinsEarned: coins}, nil
}

// UnlockAvatar spends coins on an avatar.
func (service *Service) UnlockAvatar(id string, cost int) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	if cost < 0 {
		return ErrNegativeCost
	}
	if service.player.HasAvatar(id) {
		return ErrAlreadyUnlocked
	}
	if service.player.Coins < cost {
		return ErrInsufficientCoins
	}
	service.player.Coins -= cost
	service.player.UnlockedAvatars = append(service.player.UnlockedAvatars, id)
	service.savePlayerLocked()
	return nil
}

// Buy unlocks a catalog avatar at its listed price.
func (service *Service) Buy(id string) error {
	avatar, ok := model.FindAvatar(id)
	if !ok {
		return ErrUnknownAvatar
	}
	return service.UnlockAvatar(avatar.ID, avatar.Cost)
}

// SetCurrentAvatar equips an unlocked avatar.
func (service *Service) SetCurrentAvatar(id string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	if !service.player.HasAvatar(id) {
		return ErrAvatarLocked
	}
	service.player.CurrentAvatar = id
	service.savePlayerLocked()
	return nil
}

func (service *Service) indexLocked(id string) int {
	for index, task := range service.tasks {
		if task.ID == id {
			return index
		}
	}
	return -1
}

func (service *Service) saveTasksLocked() {
	if err := service.store.SaveTasks(append([]model.Task(nil), service.tasks...)); err != nil {
		log.Printf("[quest] save tasks: %v", err)
	}
}

func (service *Service) savePlayerLocked() {
	if err := service.store.SavePlayer(service.player.Clone()); err != nil {
		log.Printf("[quest] save player: %v", err)
	}
}
