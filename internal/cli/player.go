package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"pomodungeon/internal/core/model"
	"pomodungeon/internal/core/session"
	"pomodungeon/internal/tui"
)

const historyLimit = 5

func newPlayerCommand(current func() *App) *cobra.Command {
	return &cobra.Command{
		Use:     "player",
		Aliases: []string{"me"},
		Short:   "Show coins, hero and recent victories",
		RunE: func(cmd *cobra.Command, args []string) error {
			printPlayer(cmd.OutOrStdout(), current().Quests.Player())
			return nil
		},
	}
}

func printPlayer(out io.Writer, player model.Player) {
	hero, _ := model.FindAvatar(player.CurrentAvatar)
	fmt.Fprintln(out, styleBrand.Render("PomoDungeon"))
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Hero:     "), styleValue.Render(hero.Name))
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Coins:    "), styleCoins.Render(fmt.Sprint(player.Coins)))
	fmt.Fprintf(out, "  %s %d\n", styleLabel.Render("Victories:"), player.TotalTasksCompleted)
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Time:     "),
		session.Format(time.Duration(player.TotalTimeWorked)*time.Second))

	history := player.CompletedTasks
	if len(history) == 0 {
		return
	}
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, styleLabel.Render("  Recent victories"))
	for index := len(history) - 1; index >= 0; index-- {
		record := history[index]
		line := fmt.Sprintf("  %s  %s %s", record.CompletedAt.Local().Format("Jan 02 15:04"),
			styleValue.Render(record.Name), styleCoins.Render(fmt.Sprintf("+%d", record.CoinsEarned)))
		if record.TimeRemainingBeforeDeadline != nil {
			margin := time.Duration(*record.TimeRemainingBeforeDeadline) * time.Millisecond
			if margin >= 0 {
				line += styleSuccess.Render(fmt.Sprintf(" %s early", margin.Round(time.Minute)))
			} else {
				line += styleHint.Render(fmt.Sprintf(" %s late", (-margin).Round(time.Minute)))
			}
		}
		fmt.Fprintln(out, line)
	}
}

func newShopCommand(current func() *App) *cobra.Command {
	shop := &cobra.Command{
		Use:   "shop",
		Short: "Browse and unlock heroes",
		RunE: func(cmd *cobra.Command, args []string) error {
			printShop(cmd.OutOrStdout(), current().Quests.Player())
			return nil
		},
	}
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List heroes and prices",
		RunE:    shop.RunE,
	}
	unlock := &cobra.Command{
		Use:   "unlock <avatar>",
		Short: "Spend coins on a hero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quests := current().Quests
			if err := quests.Buy(args[0]); err != nil {
				return fmt.Errorf("unlock %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", styleSuccess.Render("Unlocked"), args[0],
				styleHint.Render(fmt.Sprintf("(%d coins left)", quests.Player().Coins)))
			return nil
		},
	}
	equip := &cobra.Command{
		Use:   "equip <avatar>",
		Short: "Choose the hero who fights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current().Quests.SetCurrentAvatar(args[0]); err != nil {
				return fmt.Errorf("equip %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styleSuccess.Render("Equipped"), args[0])
			return nil
		},
	}
	shop.AddCommand(equip, list, unlock)
	return shop
}

func printShop(out io.Writer, player model.Player) {
	fmt.Fprintf(out, "%s %s\n", styleLabel.Render("Coins:"), styleCoins.Render(fmt.Sprint(player.Coins)))
	for _, avatar := range model.Avatars {
		state := styleCoins.Render(fmt.Sprintf("%d coins", avatar.Cost))
		switch {
		case avatar.ID == player.CurrentAvatar:
			state = styleSuccess.Render("equipped")
		case player.HasAvatar(avatar.ID):
			state = styleValue.Render("owned")
		}
		fmt.Fprintf(out, "  %-18s %-20s %s\n", avatar.ID, avatar.Name, state)
	}
}

func runFocus(out io.Writer, app *App, taskID string, mode session.Mode) error {
	outcome, err := tui.Run(app.Battles, taskID, mode)
	if err != nil {
		return err
	}
	if outcome.Err != nil {
		return outcome.Err
	}
	switch {
	case outcome.Completion != nil:
		fmt.Fprintf(out, "%s %s\n", styleSuccess.Render("Victory!"),
			styleCoins.Render(fmt.Sprintf("+%d coins", outcome.Completion.CoinsEarned)))
	case outcome.Fled:
		fmt.Fprintln(out, styleHint.Render("Progress saved. The monster waits."))
	}
	return nil
}
