// Package battle ties a focus session to the task it is fought for: starting
// resumes from the task's saved time, fleeing saves progress, and victory
// completes the task and pays its reward.
package battle

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"pomodungeon/internal/core/model"
	"pomodungeon/internal/core/quest"
	"pomodungeon/internal/core/session"
)

// ErrNoBattle is returned when no task is being fought.
var ErrNoBattle = errors.New("no battle in progress")

// Controller coordinates the session with the quest service.
type Controller struct {
	mu      sync.Mutex
	quests  *quest.Service
	session *session.Session
	taskID  string
}

// New creates a controller over a quest service and a session.
func New(quests *quest.Service, timer *session.Session) *Controller {
	return &Controller{quests: quests, session: timer}
}

// Begin starts fighting a task. Countdown sessions run to the task's
// estimate; pomodoro tasks add their break phase.
func (controller *Controller) Begin(taskID string, mode session.Mode) (model.Task, error) {
	task, err := controller.quests.Task(taskID)
	if err != nil {
		return model.Task{}, err
	}
	if task.Completed {
		return model.Task{}, quest.ErrTaskCompleted
	}

	options := session.Options{
		Mode:   mode,
		Target: task.Estimate(),
		Resume: task.Spent(),
		TaskID: task.ID,
	}
	if task.Pomodoro {
		options.Pomodoro = true
		options.Break = time.Duration(task.BreakMinutes) * time.Minute
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()
	if err := controller.session.Start(options); err != nil {
		return model.Task{}, fmt.Errorf("begin battle: %w", err)
	}
	controller.taskID = task.ID
	log.Printf("[battle] %q vs %s", task.Name, task.MonsterType)
	return task, nil
}

// Flee abandons the battle and saves the time spent on the task.
func (controller *Controller) Flee() (model.Task, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.taskID == "" {
		return model.Task{}, ErrNoBattle
	}
	spent, err := controller.session.Abandon()
	if err != nil {
		return model.Task{}, fmt.Errorf("flee: %w", err)
	}
	taskID := controller.taskID
	controller.taskID = ""
	return controller.quests.RecordTimeSpent(taskID, spent)
}

// Victory ends the battle early and completes its task. A stopwatch is
// stopped so its clock stays on the final time; a countdown is abandoned.
func (controller *Controller) Victory() (quest.Completion, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.taskID == "" {
		return quest.Completion{}, ErrNoBattle
	}
	end := controller.session.Abandon
	if controller.session.Snapshot().Mode == session.ModeStopwatch {
		end = controller.session.Stop
	}
	spent, err := end()
	if err != nil {
		return quest.Completion{}, fmt.Errorf("victory: %w", err)
	}
	return controller.completeLocked(spent)
}

// Handle reacts to a session event. A completed event for the current task
// completes it; ok reports whether that happened.
func (controller *Controller) Handle(event session.Event) (completion quest.Completion, ok bool, err error) {
	if event.Type != session.EventCompleted {
		return quest.Completion{}, false, nil
	}
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.taskID == "" || controller.taskID != event.TaskID {
		return quest.Completion{}, false, nil
	}
	controller.session.Reset()
	completion, err = controller.completeLocked(event.Elapsed)
	return completion, err == nil, err
}

// Current returns the task being fought.
func (controller *Controller) Current() (model.Task, bool) {
	controller.mu.Lock()
	taskID := controller.taskID
	controller.mu.Unlock()
	if taskID == "" {
		return model.Task{}, false
	}
	task, err := controller.quests.Task(taskID)
	return task, err == nil
}

// Session exposes the underlying timer.
func (controller *Controller) Session() *session.Session {
	return controller.session
}

func (controller *Controller) completeLocked(spent time.Duration) (quest.Completion, error) {
	taskID := controller.taskID
	controller.taskID = ""
	if _, err := controller.quests.RecordTimeSpent(taskID, spent); err != nil {
		return quest.Completion{}, err
	}
	completion, err := controller.quests.CompleteTask(taskID)
	if err != nil {
		return quest.Completion{}, err
	}
	log.Printf("[battle] defeated %s, +%d coins", completion.Task.MonsterType, completion.CoinsEarned)
	return completion, nil
}
