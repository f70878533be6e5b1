// Package board shows the quest board and the armory.
package board

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodungeon/internal/core/model"
	"pomodungeon/internal/core/quest"
)

var priorityOptions = []string{
	string(model.PriorityUrgent),
	string(model.PriorityHigh),
	string(model.PriorityMedium),
	string(model.PriorityLow),
}

// Defaults prefill the add form.
type Defaults struct {
	EstimateMinutes int
	BreakMinutes    int
	Pomodoro        bool
}

// Window lists quests and avatars.
type Window struct {
	window    fyne.Window
	quests    *quest.Service
	onChange  func()
	defaults  Defaults
	tasks     []model.Task
	showDone  *widget.Check
	taskList  *widget.List
	name      *widget.Entry
	estimate  *widget.Entry
	priority  *widget.Select
	deadline  *widget.Entry
	pomodoro  *widget.Check
	breakLen  *widget.Entry
	addButton *widget.Button
	armory    *widget.List
	coins     *widget.Label
	hero      *widget.Label
	status    *widget.Label
}

// New creates the board window. onChange runs after any edit to tasks or the
// player.
func New(app fyne.App, quests *quest.Service, defaults Defaults, onChange func()) *Window {
	window := app.NewWindow("PomoDungeon Quest Board")

	board := &Window{
		window:   window,
		quests:   quests,
		onChange: onChange,
		name:     widget.NewEntry(),
		estimate: widget.NewEntry(),
		priority: widget.NewSelect(priorityOptions, nil),
		deadline: widget.NewEntry(),
		pomodoro: widget.NewCheck("Pomodoro", nil),
		breakLen: widget.NewEntry(),
		coins:    widget.NewLabel(""),
		hero:     widget.NewLabel(""),
		status:   widget.NewLabel(""),
	}
	board.name.SetPlaceHolder("Quest name")
	board.deadline.SetPlaceHolder("YYYY-MM-DD")
	board.showDone = widget.NewCheck("Show completed", func(bool) { board.Refresh() })
	board.addButton = widget.NewButton("Post quest", board.handleAdd)

	board.taskList = widget.NewList(
		func() int { return len(board.tasks) },
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewLabel(""),
				layout.NewSpacer(),
				widget.NewButton("Done", nil),
				widget.NewButton("Delete", nil),
			)
		},
		board.updateTaskRow,
	)
	board.armory = widget.NewList(
		func() int { return len(model.Avatars) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewLabel(""), layout.NewSpacer(), widget.NewButton("", nil))
		},
		board.updateAvatarRow,
	)

	form := container.NewVBox(
		board.name,
		container.NewGridWithColumns(2,
			container.NewBorder(nil, nil, nil, widget.NewLabel("min"), board.estimate),
			board.priority,
		),
		container.NewGridWithColumns(2, board.deadline, container.NewHBox(board.pomodoro, board.breakLen, widget.NewLabel("min break"))),
		board.addButton,
	)
	questsTab := container.NewBorder(container.NewVBox(form, board.showDone), board.status, nil, nil, board.taskList)
	armoryTab := container.NewBorder(container.NewHBox(board.hero, layout.NewSpacer(), board.coins), nil, nil, nil, board.armory)

	window.SetContent(container.NewAppTabs(
		container.NewTabItem("Quests", questsTab),
		container.NewTabItem("Armory", armoryTab),
	))
	window.Resize(fyne.NewSize(480, 560))
	window.SetCloseIntercept(window.Hide)

	board.SetDefaults(defaults)
	board.Refresh()
	return board
}

// Show displays the board.
func (board *Window) Show() {
	board.Refresh()
	board.window.Show()
	board.window.RequestFocus()
}

// SetDefaults resets the add form to new defaults.
func (board *Window) SetDefaults(defaults Defaults) {
	board.defaults = defaults
	board.resetForm()
}

// Refresh reloads tasks and the player.
func (board *Window) Refresh() {
	if board.showDone.Checked {
		board.tasks = board.quests.Tasks()
	} else {
		board.tasks = board.quests.ActiveTasks()
	}
	player := board.quests.Player()
	board.coins.SetText(fmt.Sprintf("%d coins", player.Coins))
	avatar, _ := model.FindAvatar(player.CurrentAvatar)
	board.hero.SetText("Hero: " + avatar.Name)
	board.taskList.Refresh()
	board.armory.Refresh()
}

func (board *Window) handleAdd() {
	input, err := board.collect()
	if err != nil {
		board.report(err)
		return
	}
	task, err := board.quests.AddTask(input)
	if err != nil {
		board.report(fmt.Errorf("add quest: %w", err))
		return
	}
	log.Printf("[board] added %q", task.Name)
	board.status.SetText(fmt.Sprintf("A %s now guards %q.", model.FindMonster(task.MonsterType).Name, task.Name))
	board.resetForm()
	board.changed()
}

// collect reads the add form. Blank numeric fields fall back to defaults.
func (board *Window) collect() (model.NewTask, error) {
	input := model.NewTask{
		Name:             board.name.Text,
		EstimatedMinutes: board.defaults.EstimateMinutes,
		Pomodoro:         board.pomodoro.Checked,
		BreakMinutes:     board.defaults.BreakMinutes,
	}
	if text := strings.TrimSpace(board.estimate.Text); text != "" {
		minutes, err := parseMinutes(text)
		if err != nil {
			return model.NewTask{}, fmt.Errorf("estimate: %w", err)
		}
		input.EstimatedMinutes = minutes
	}
	if text := strings.TrimSpace(board.breakLen.Text); text != "" && input.Pomodoro {
		minutes, err := parseMinutes(text)
		if err != nil {
			return model.NewTask{}, fmt.Errorf("break: %w", err)
		}
		input.BreakMinutes = minutes
	}
	priority, err := model.ParsePriority(board.priority.Selected)
	if err != nil {
		return model.NewTask{}, err
	}
	input.Priority = priority
	if text := strings.TrimSpace(board.deadline.Text); text != "" {
		due, err := model.ParseDeadline(text)
		if err != nil {
			return model.NewTask{}, err
		}
		input.Deadline = &due
	}
	return input, nil
}

func (board *Window) resetForm() {
	board.name.SetText("")
	board.estimate.SetText(strconv.Itoa(board.defaults.EstimateMinutes))
	board.priority.SetSelected(string(model.PriorityMedium))
	board.deadline.SetText("")
	board.pomodoro.SetChecked(board.defaults.Pomodoro)
	board.breakLen.SetText(strconv.Itoa(board.defaults.BreakMinutes))
}

func (board *Window) updateTaskRow(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(board.tasks) {
		return
	}
	task := board.tasks[id]
	row := item.(*fyne.Container)
	row.Objects[0].(*widget.Label).SetText(taskSummary(task, time.Now()))

	done := row.Objects[2].(*widget.Button)
	done.OnTapped = func() { board.complete(task.ID) }
	if task.Completed {
		done.Disable()
	} else {
		done.Enable()
	}
	row.Objects[3].(*widget.Button).OnTapped = func() { board.remove(task.ID) }
}

func (board *Window) updateAvatarRow(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(model.Avatars) {
		return
	}
	avatar := model.Avatars[id]
	player := board.quests.Player()
	row := item.(*fyne.Container)
	row.Objects[0].(*widget.Label).SetText(avatar.Name)

	action := row.Objects[2].(*widget.Button)
	action.Enable()
	switch {
	case player.CurrentAvatar == avatar.ID:
		action.SetText("Equipped")
		action.Disable()
		action.OnTapped = nil
	case player.HasAvatar(avatar.ID):
		action.SetText("Equip")
		action.OnTapped = func() { board.equip(avatar.ID) }
	default:
		action.SetText(fmt.Sprintf("Unlock (%d)", avatar.Cost))
		if player.Coins < avatar.Cost {
			action.Disable()
		}
		action.OnTapped = func() { board.unlock(avatar.ID) }
	}
}

func (board *Window) complete(taskID string) {
	completion, err := board.quests.CompleteTask(taskID)
	if err != nil {
		board.report(fmt.Errorf("complete quest: %w", err))
		return
	}
	board.status.SetText(fmt.Sprintf("%q done. +%d coins", completion.Task.Name, completion.CoinsEarned))
	board.changed()
}

func (board *Window) remove(taskID string) {
	if err := board.quests.DeleteTask(taskID); err != nil {
		board.report(fmt.Errorf("delete quest: %w", err))
		return
	}
	board.status.SetText("Quest removed.")
	board.changed()
}

func (board *Window) unlock(avatarID string) {
	if err := board.quests.Buy(avatarID); err != nil {
		board.report(fmt.Errorf("unlock avatar: %w", err))
		return
	}
	board.changed()
}

func (board *Window) equip(avatarID string) {
	if err := board.quests.SetCurrentAvatar(avatarID); err != nil {
		board.report(fmt.Errorf("equip avatar: %w", err))
		return
	}
	board.changed()
}

func (board *Window) changed() {
	board.Refresh()
	if board.onChange != nil {
		board.onChange()
	}
}

func (board *Window) report(err error) {
	log.Printf("[board] %v", err)
	board.status.SetText(err.Error())
}

func parseMinutes(value string) (int, error) {
	minutes, err := strconv.Atoi(value)
	if err != nil || minutes <= 0 {
		return 0, fmt.Errorf("%q is not a positive number of minutes", value)
	}
	return minutes, nil
}

func taskSummary(task model.Task, now time.Time) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s] %s", task.Priority, task.Name))
	parts = append(parts, fmt.Sprintf("%dm", task.EstimatedMinutes))
	if task.TimeSpent > 0 {
		parts = append(parts, fmt.Sprintf("%s spent", formatSpent(task.Spent())))
	}
	if task.Deadline != nil && !task.Completed {
		left := task.Deadline.Sub(now)
		if left < 0 {
			parts = append(parts, "overdue")
		} else {
			parts = append(parts, fmt.Sprintf("due in %s", left.Round(time.Hour)))
		}
	}
	if task.Completed {
		parts = append(parts, "done")
	}
	return strings.Join(parts, " · ")
}

func formatSpent(spent time.Duration) string {
	return spent.Round(time.Second).String()
}
