package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodungeon/internal/audio"
	"pomodungeon/internal/config"
	"pomodungeon/internal/core/clock"
	"pomodungeon/internal/platform"
	"pomodungeon/internal/render"
	"pomodungeon/internal/scene"
	"pomodungeon/internal/storage"
	"pomodungeon/internal/ui/animation"
	"pomodungeon/internal/ui/board"
	"pomodungeon/internal/ui/dungeon"
	"pomodungeon/internal/ui/preferences"
	"pomodungeon/internal/ui/tray"
	"pomodungeon/resources"
)

const appID = "com.pomodungeon.app"

// runDesktop opens the dungeon window and the tray and blocks until quit.
func runDesktop(options config.Options) error {
	instance, err := platform.AcquireInstance(config.AppName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		log.Printf("[main] already running, raised the open dungeon")
		return nil
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = instance.Release()
	}()

	if err := os.MkdirAll(options.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	services, err := open(options)
	if err != nil {
		return err
	}
	defer func() {
		if err := services.Close(); err != nil {
			log.Printf("[main] close store: %v", err)
		}
	}()

	settingsPath := options.SettingsPath()
	settings, err := storage.LoadSettingsFile(settingsPath)
	if err != nil {
		log.Printf("[main] load settings: %v", err)
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconActive))
	desktopApp, _ := fyneApp.(desktop.App)

	player := audio.New(settings.SoundVolume, settings.Sound)
	if err := player.Initialize(); err != nil {
		log.Printf("[main] sound disabled: %v", err)
	}
	defer player.Close()

	engine := animation.New(resources.AssetsDir(options.AssetsDir))
	defer engine.Stop()

	sceneConfig := scene.DefaultConfig()
	sceneConfig.Weather = settings.WeatherConfig()
	world := scene.New(sceneConfig)
	world.SetCast(engine)
	frame := render.NewRaster(scene.Width, scene.Height)
	loop := scene.NewLoop(world, frame, clock.System{}, options.FPS)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	crawl := dungeon.New(ctx, world, services.Battles, services.Quests, engine, player)
	mainWindow := dungeon.NewWindow(fyneApp, crawl, services.Quests, settings.WindowScale)
	instance.OnRaise(func() {
		fyne.Do(mainWindow.Show)
	})
	loop.AfterFrame(crawl.AfterFrame)
	loop.AfterFrame(func(time.Time) {
		mainWindow.SetFrame(frame.Snapshot())
	})

	var trayManager *tray.Manager
	questBoard := board.New(fyneApp, services.Quests, boardDefaults(settings), func() {
		mainWindow.RefreshQuests()
		crawl.SyncHero()
		trayManager.SetCoins(services.Quests.Player().Coins)
	})

	syncAutostart(settings.LaunchAtLogin)
	current := settings
	apply := func(updated preferences.Settings) {
		world.Do(func(target *scene.Scene) {
			target.SetWeather(updated.WeatherConfig())
		})
		services.Battles.Session().UpdateConfig(updated.SessionConfig())
		player.Configure(updated.SoundVolume, updated.Sound)
		questBoard.SetDefaults(boardDefaults(updated))
		if updated.WindowScale != current.WindowScale {
			mainWindow.SetScale(updated.WindowScale)
		}
		if updated.LaunchAtLogin != current.LaunchAtLogin {
			syncAutostart(updated.LaunchAtLogin)
		}
		current = updated
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := storage.SaveSettingsFile(settingsPath, updated); err != nil {
			log.Printf("[main] save settings: %v", err)
		}
		apply(updated)
	})

	watcher, err := storage.WatchSettings(settingsPath, func(updated preferences.Settings) {
		fyne.Do(func() {
			apply(updated)
			prefsWindow.UpdateSettings(updated)
		})
	})
	if err != nil {
		log.Printf("[main] live settings reload off: %v", err)
	} else {
		defer func() {
			_ = watcher.Close()
		}()
	}

	quit := func() {
		cancel()
		fyneApp.Quit()
	}
	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnDungeon:     mainWindow.Show,
		OnBoard:       questBoard.Show,
		OnPreferences: prefsWindow.Show,
		OnTogglePause: func() { logError(crawl.Pause()) },
		OnFlee:        func() { logError(crawl.Flee()) },
		OnQuit:        quit,
	})
	trayManager.SetCoins(services.Quests.Player().Coins)

	var lastBattle, lastPaused bool
	lastCoins := services.Quests.Player().Coins
	crawl.OnChange(func(state dungeon.State) {
		fyne.Do(func() {
			trayManager.SetInBattle(state.InBattle)
			trayManager.SetPaused(state.Paused)
			trayManager.SetCoins(state.Coins)
			if state.InBattle {
				trayManager.SetStatus(fmt.Sprintf("%s %s", state.Quest, state.Clock))
			} else {
				trayManager.SetStatus("resting")
			}
			if state.InBattle != lastBattle || state.Paused != lastPaused {
				setTrayIcon(desktopApp, state)
			}
			if state.InBattle != lastBattle || state.Coins != lastCoins {
				questBoard.Refresh()
			}
			lastBattle, lastPaused, lastCoins = state.InBattle, state.Paused, state.Coins
		})
	})

	if desktopApp != nil {
		desktopApp.SetSystemTrayIcon(resources.MustIcon(resources.IconActive))
		mainWindow.Window().SetCloseIntercept(mainWindow.Window().Hide)
	} else {
		mainWindow.Window().SetMaster()
	}

	go func() {
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("[main] scene loop: %v", err)
		}
	}()

	log.Printf("[main] data in %s", options.DataDir)
	mainWindow.Show()
	fyneApp.Run()
	return nil
}

func boardDefaults(settings preferences.Settings) board.Defaults {
	split := settings.PomodoroConfig()
	return board.Defaults{
		EstimateMinutes: int(split.Study.Minutes()),
		BreakMinutes:    int(split.Break.Minutes()),
		Pomodoro:        settings.Pomodoro,
	}
}

func setTrayIcon(desktopApp desktop.App, state dungeon.State) {
	if desktopApp == nil {
		return
	}
	icon := resources.IconActive
	switch {
	case state.Paused:
		icon = resources.IconPaused
	case state.InBattle:
		icon = resources.IconBattle
	}
	desktopApp.SetSystemTrayIcon(resources.MustIcon(icon))
}

// syncAutostart makes the login entry match the preference.
func syncAutostart(enabled bool) {
	autostart, err := platform.NewAutostart(config.AppName)
	if err != nil {
		log.Printf("[main] autostart: %v", err)
		return
	}
	if autostart.Enabled() == enabled {
		return
	}
	if err := autostart.Set(enabled); err != nil {
		log.Printf("[main] autostart: %v", err)
	}
}

func logError(err error) {
	if err != nil {
		log.Printf("[main] %v", err)
	}
}
