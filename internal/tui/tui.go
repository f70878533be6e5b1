// Package tui runs a focus battle in the terminal.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"pomodungeon/internal/core/battle"
	"pomodungeon/internal/core/session"
)

// Run begins a battle on taskID and shows it until it ends. Quitting flees
// and saves the time spent.
func Run(controller *battle.Controller, taskID string, mode session.Mode) (Outcome, error) {
	events := controller.Session().Subscribe(16)
	task, err := controller.Begin(taskID, mode)
	if err != nil {
		return Outcome{}, err
	}

	program := tea.NewProgram(NewModel(controller, nil, task, events))
	final, err := program.Run()
	if err != nil {
		if _, fleeErr := controller.Flee(); fleeErr != nil {
			err = fmt.Errorf("%w (flee: %v)", err, fleeErr)
		}
		return Outcome{}, fmt.Errorf("run focus screen: %w", err)
	}
	return final.(Model).Outcome(), nil
}
