package model

import "time"

// CompletedRecord is one entry of the player's completion history.
// TimeRemainingBeforeDeadline is in milliseconds and negative when late.
type CompletedRecord struct {
	TaskID                      string     `json:"id"`
	Name                        string     `json:"name"`
	EstimatedMinutes            int        `json:"timeEstimate"`
	Deadline                    *time.Time `json:"deadline,omitempty"`
	Priority                    Priority   `json:"priority"`
	CompletedAt                 time.Time  `json:"completedAt"`
	TimeSpent                   int64      `json:"timeSpent"`
	TimeRemainingBeforeDeadline *int64     `json:"timeRemainingBeforeDeadline,omitempty"`
	CoinsEarned                 int        `json:"coinsEarned"`
}

// Player is the persistent player profile.
type Player struct {
	Coins               int               `json:"coins"`
	CurrentAvatar       string            `json:"currentAvatar"`
	UnlockedAvatars     []string          `json:"unlockedAvatars"`
	TotalTasksCompleted int               `json:"totalTasksCompleted"`
	TotalTimeWorked     int64             `json:"totalTimeWorked"`
	CompletedTasks      []CompletedRecord `json:"completedTasks"`
}

// DefaultPlayer returns a fresh profile with the starter avatar unlocked.
func DefaultPlayer() Player {
	return Player{
		CurrentAvatar:   StarterAvatar,
		UnlockedAvatars: []string{StarterAvatar},
		CompletedTasks:  []CompletedRecord{},
	}
}

// HasAvatar reports whether the avatar is unlocked.
func (player Player) HasAvatar(id string) bool {
	for _, unlocked := range player.UnlockedAvatars {
		if unlocked == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate shared slices.
func (player Player) Clone() Player {
	clone := player
	clone.UnlockedAvatars = append([]string(nil), player.UnlockedAvatars...)
	clone.CompletedTasks = append([]CompletedRecord(nil), player.CompletedTasks...)
	return clone
}
