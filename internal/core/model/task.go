package model

import (
	"fmt"
	"strings"
	"time"
)

// Priority orders tasks on the quest board.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DefaultReward is paid when a task carries an unknown priority.
const DefaultReward = 20

// Priorities lists every priority from most to least pressing.
var Priorities = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority converts user input into a Priority.
func ParsePriority(value string) (Priority, error) {
	priority := Priority(strings.ToLower(strings.TrimSpace(value)))
	switch priority {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return priority, nil
	case "":
		return PriorityMedium, nil
	}
	return "", fmt.Errorf("parse priority %q: unknown value", value)
}

// Rank returns the sort position; lower ranks sort first.
func (priority Priority) Rank() int {
	switch priority {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Reward returns the coins paid for completing a task of this priority.
func (priority Priority) Reward() int {
	switch priority {
	case PriorityLow:
		return 10
	case PriorityMedium:
		return 20
	case PriorityHigh:
		return 35
	case PriorityUrgent:
		return 50
	}
	return DefaultReward
}

// Task is a quest on the board.
type Task struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	EstimatedMinutes int        `json:"timeEstimate"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Priority         Priority   `json:"priority"`
	Completed        bool       `json:"completed"`
	TimeSpent        int64      `json:"timeSpent"`
	CreatedAt        time.Time  `json:"createdAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	MonsterType      string     `json:"monsterType"`
	DungeonRoom      int        `json:"dungeonRoom"`
	Pomodoro         bool       `json:"isPomodoro,omitempty"`
	BreakMinutes     int        `json:"breakTime,omitempty"`
}

// Spent returns the recorded time spent as a duration.
func (task Task) Spent() time.Duration {
	return time.Duration(task.TimeSpent) * time.Second
}

// Estimate returns the estimate as a duration.
func (task Task) Estimate() time.Duration {
	return time.Duration(task.EstimatedMinutes) * time.Minute
}

// ParseDeadline reads a deadline as YYYY-MM-DD, meaning the end of that
// local day, or as an RFC 3339 timestamp.
func ParseDeadline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if due, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return due.Add(24*time.Hour - time.Second), nil
	}
	due, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse deadline %q: want YYYY-MM-DD or RFC 3339", value)
	}
	return due, nil
}

// NewTask carries the user-editable fields of a task being added.
type NewTask struct {
	Name             string
	EstimatedMinutes int
	Deadline         *time.Time
	Priority         Priority
	Pomodoro         bool
	BreakMinutes     int
}

// TaskPatch lists optional field updates; nil fields are left unchanged.
type TaskPatch struct {
	Name             *string
	EstimatedMinutes *int
	Deadline         *time.Time
	ClearDeadline    bool
	Priority         *Priority
	Pomodoro         *bool
	BreakMinutes     *int
}
