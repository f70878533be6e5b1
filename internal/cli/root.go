// Package cli implements the pomodungeon command line.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pomodungeon/internal/config"
	"pomodungeon/internal/core/battle"
	"pomodungeon/internal/core/quest"
)

// App holds the services subcommands run against.
type App struct {
	Options config.Options
	Quests  *quest.Service
	Battles *battle.Controller
	Close   func() error
}

// Hooks connect the command tree to the rest of the program.
type Hooks struct {
	// ConfigDir is the user config directory used for defaults.
	ConfigDir string
	// Open builds the services once options are resolved.
	Open func(options config.Options) (*App, error)
	// Desktop runs the windowed app; it is used when no subcommand is given.
	Desktop func(options config.Options) error
}

// NewRootCommand builds the command tree.
func NewRootCommand(hooks Hooks) *cobra.Command {
	var app *App
	root := &cobra.Command{
		Use:   "pomodungeon",
		Short: "A focus timer where tasks are dungeon monsters",
		Long: `PomoDungeon turns your task list into a dungeon crawl. Start a task to
open the gate and battle its monster; finish it to earn coins for new heroes.

Run without a command to open the dungeon window.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := config.Load(cmd.Flags(), hooks.ConfigDir)
			if err != nil {
				return err
			}
			if hooks.Desktop == nil {
				return fmt.Errorf("desktop mode unavailable")
			}
			return hooks.Desktop(options)
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	requireApp := func(cmd *cobra.Command, args []string) error {
		options, err := config.Load(cmd.Flags(), hooks.ConfigDir)
		if err != nil {
			return err
		}
		if hooks.Open == nil {
			return fmt.Errorf("open store: no opener configured")
		}
		opened, err := hooks.Open(options)
		if err != nil {
			return err
		}
		app = opened
		return nil
	}
	closeApp := func() {
		if app == nil || app.Close == nil {
			return
		}
		if err := app.Close(); err != nil {
			log.Printf("[cli] close store: %v", err)
		}
		app = nil
	}
	current := func() *App { return app }

	for _, sub := range []*cobra.Command{
		newTasksCommand(current),
		newPlayerCommand(current),
		newShopCommand(current),
		newFocusCommand(current),
	} {
		sub.PersistentPreRunE = requireApp
		closeAfter(sub, closeApp)
		root.AddCommand(sub)
	}
	return root
}

// closeAfter wraps every runnable command so the store is closed whether or
// not the command fails.
func closeAfter(cmd *cobra.Command, closeApp func()) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			defer closeApp()
			return run(cmd, args)
		}
	}
	for _, child := range cmd.Commands() {
		closeAfter(child, closeApp)
	}
}

// Execute runs the command line and exits non-zero on failure.
func Execute(hooks Hooks) {
	if err := NewRootCommand(hooks).Execute(); err != nil {
		log.Printf("[cli] %v", err)
		os.Exit(1)
	}
}
