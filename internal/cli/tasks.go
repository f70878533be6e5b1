package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pomodungeon/internal/core/model"
	"pomodungeon/internal/core/quest"
	"pomodungeon/internal/core/session"
)

var errAmbiguousID = errors.New("ambiguous task id")

func newTasksCommand(current func() *App) *cobra.Command {
	tasks := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "Manage the quest board",
	}

	var showAll bool
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List open tasks, most urgent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			quests := current().Quests
			items := quests.ActiveTasks()
			if showAll {
				items = quests.Tasks()
			}
			printTasks(cmd.OutOrStdout(), items)
			return nil
		},
	}
	list.Flags().BoolVarP(&showAll, "all", "a", false, "include completed tasks")

	var (
		estimate  int
		priority  string
		deadline  string
		pomodoro  bool
		breakTime int
	)
	add := &cobra.Command{
		Use:   "add <name...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedPriority, err := model.ParsePriority(priority)
			if err != nil {
				return err
			}
			input := model.NewTask{
				Name:             strings.Join(args, " "),
				EstimatedMinutes: estimate,
				Priority:         parsedPriority,
				Pomodoro:         pomodoro,
				BreakMinutes:     breakTime,
			}
			if deadline != "" {
				due, err := model.ParseDeadline(deadline)
				if err != nil {
					return err
				}
				input.Deadline = &due
			}
			task, err := current().Quests.AddTask(input)
			if err != nil {
				return fmt.Errorf("add task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				styleSuccess.Render("Added"), styleValue.Render(task.Name),
				styleHint.Render(fmt.Sprintf("(%s, a %s guards it)", shortID(task.ID), model.FindMonster(task.MonsterType).Name)))
			return nil
		},
	}
	add.Flags().IntVarP(&estimate, "estimate", "e", 0, "estimated minutes (default 25)")
	add.Flags().StringVarP(&priority, "priority", "p", "", "low, medium, high or urgent")
	add.Flags().StringVarP(&deadline, "deadline", "d", "", "deadline as YYYY-MM-DD or RFC 3339")
	add.Flags().BoolVar(&pomodoro, "pomodoro", false, "fight in study/break phases")
	add.Flags().IntVar(&breakTime, "break", 0, "pomodoro break minutes (default 5)")

	complete := &cobra.Command{
		Use:   "complete <id>",
		Short: "Complete a task and collect its reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quests := current().Quests
			task, err := resolveTask(quests, args[0])
			if err != nil {
				return err
			}
			completion, err := quests.CompleteTask(task.ID)
			if err != nil {
				return fmt.Errorf("complete task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				styleSuccess.Render("Defeated"), styleValue.Render(completion.Task.Name),
				styleCoins.Render(fmt.Sprintf("+%d coins", completion.CoinsEarned)))
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quests := current().Quests
			task, err := resolveTask(quests, args[0])
			if err != nil {
				return err
			}
			if err := quests.DeleteTask(task.ID); err != nil {
				return fmt.Errorf("delete task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", task.Name)
			return nil
		},
	}

	tasks.AddCommand(add, complete, remove, list)
	return tasks
}

func printTasks(out io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(out, styleHint.Render("The board is empty. Run 'pomodungeon tasks add' to post a quest."))
		return
	}
	for _, task := range tasks {
		status := ""
		if task.Completed {
			status = styleSuccess.Render(" done")
		}
		badge := priorityStyles[string(task.Priority)].Render(fmt.Sprintf("%-6s", task.Priority))
		spent := ""
		if task.TimeSpent > 0 {
			spent = styleLabel.Render(fmt.Sprintf(" %s spent", session.Format(task.Spent())))
		}
		due := ""
		if task.Deadline != nil {
			due = styleLabel.Render(" due " + task.Deadline.Format("2006-01-02"))
		}
		fmt.Fprintf(out, "  %s  %s  %s %s%s%s%s\n",
			styleHint.Render(shortID(task.ID)), badge, styleValue.Render(task.Name),
			styleLabel.Render(fmt.Sprintf("[%dm]", task.EstimatedMinutes)), spent, due, status)
	}
}

// resolveTask finds a task by id or unique id prefix.
func resolveTask(quests *quest.Service, ref string) (model.Task, error) {
	if task, err := quests.Task(ref); err == nil {
		return task, nil
	}
	var found []model.Task
	for _, task := range quests.Tasks() {
		if strings.HasPrefix(task.ID, ref) {
			found = append(found, task)
		}
	}
	switch len(found) {
	case 0:
		return model.Task{}, fmt.Errorf("%s: %w", ref, quest.ErrTaskNotFound)
	case 1:
		return found[0], nil
	}
	return model.Task{}, fmt.Errorf("%s matches %d tasks: %w", ref, len(found), errAmbiguousID)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func newFocusCommand(current func() *App) *cobra.Command {
	var stopwatch bool
	focus := &cobra.Command{
		Use:   "focus <id>",
		Short: "Fight a task in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := current()
			task, err := resolveTask(app.Quests, args[0])
			if err != nil {
				return err
			}
			mode := session.ModeCountdown
			if stopwatch {
				mode = session.ModeStopwatch
			}
			return runFocus(cmd.OutOrStdout(), app, task.ID, mode)
		},
	}
	focus.Flags().BoolVar(&stopwatch, "stopwatch", false, "count up until you finish instead of down")
	return focus
}
