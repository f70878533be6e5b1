package main

import (
	"log"

	"pomodungeon/internal/cli"
	"pomodungeon/internal/config"
	"pomodungeon/internal/core/battle"
	"pomodungeon/internal/core/clock"
	"pomodungeon/internal/core/quest"
	"pomodungeon/internal/core/session"
	"pomodungeon/internal/platform"
	"pomodungeon/internal/storage"
)

func main() {
	configDir, err := platform.ConfigDir()
	if err != nil {
		log.Printf("[main] %v", err)
	}
	cli.Execute(cli.Hooks{
		ConfigDir: configDir,
		Open:      open,
		Desktop:   runDesktop,
	})
}

// open builds the game services on the configured store.
func open(options config.Options) (*cli.App, error) {
	var kv storage.KV
	if options.InMemory {
		kv = storage.NewMemoryKV()
	} else {
		sqlite, err := storage.OpenSQLite(options.Database)
		if err != nil {
			return nil, err
		}
		kv = sqlite
	}

	settings, err := storage.LoadSettingsFile(options.SettingsPath())
	if err != nil {
		log.Printf("[main] load settings: %v", err)
	}

	quests := quest.New(storage.NewGameStore(kv), quest.Config{})
	timer := session.New(clock.System{}, settings.SessionConfig())
	timer.SetIdleChecker(platform.NewIdleChecker())

	return &cli.App{
		Options: options,
		Quests:  quests,
		Battles: battle.New(quests, timer),
		Close: func() error {
			timer.Close()
			return kv.Close()
		},
	}, nil
}
