package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"pomodungeon/internal/core/model"
)

const (
	PlayerKey = "pomoDungeon_player"
	TasksKey  = "pomoDungeon_tasks"
)

// GameStore keeps the player profile and tasks as JSON records in a KV.
// Missing or corrupt records load as defaults; corruption is reported as an
// error alongside the default value.
type GameStore struct {
	kv KV
}

// NewGameStore wraps a KV.
func NewGameStore(kv KV) *GameStore {
	return &GameStore{kv: kv}
}

// LoadPlayer reads the player profile.
func (store *GameStore) LoadPlayer() (model.Player, error) {
	player := model.DefaultPlayer()
	raw, err := store.kv.Get(PlayerKey)
	if errors.Is(err, ErrNotFound) {
		return player, nil
	}
	if err != nil {
		return player, err
	}

	var loaded model.Player
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		return player, fmt.Errorf("parse player record: %w", err)
	}
	if loaded.CurrentAvatar == "" {
		loaded.CurrentAvatar = model.StarterAvatar
	}
	if !loaded.HasAvatar(model.StarterAvatar) {
		loaded.UnlockedAvatars = append([]string{model.StarterAvatar}, loaded.UnlockedAvatars...)
	}
	if loaded.CompletedTasks == nil {
		loaded.CompletedTasks = []model.CompletedRecord{}
	}
	return loaded, nil
}

// LoadTasks reads the task list.
func (store *GameStore) LoadTasks() ([]model.Task, error) {
	raw, err := store.kv.Get(TasksKey)
	if errors.Is(err, ErrNotFound) {
		return []model.Task{}, nil
	}
	if err != nil {
		return []model.Task{}, err
	}

	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return []model.Task{}, fmt.Errorf("parse tasks record: %w", err)
	}
	for index := range tasks {
		if tasks[index].Priority == "" {
			tasks[index].Priority = model.PriorityMedium
		}
		if tasks[index].MonsterType == "" {
			tasks[index].MonsterType = model.MonsterForPriority(tasks[index].Priority)
		}
	}
	return tasks, nil
}

// SavePlayer writes the player profile.
func (store *GameStore) SavePlayer(player model.Player) error {
	serialized, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("marshal player: %w", err)
	}
	return store.kv.Set(PlayerKey, string(serialized))
}

// SaveTasks writes the task list.
func (store *GameStore) SaveTasks(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	serialized, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	return store.kv.Set(TasksKey, string(serialized))
}
