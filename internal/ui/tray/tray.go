// Package tray builds the system tray menu.
package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnDungeon     func()
	OnBoard       func()
	OnPreferences func()
	OnTogglePause func()
	OnFlee        func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	coinsItem   *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	fleeItem    *fyne.MenuItem
	callbacks   Callbacks
	paused      bool
	inBattle    bool
	statusLabel string
	menu        *fyne.Menu
}

// New creates a tray manager with the provided callbacks. app may be nil
// where no tray is available; the manager then only tracks state.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "resting",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.coinsItem = fyne.NewMenuItem("Coins: 0", nil)
	manager.coinsItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("Pause battle", call(&manager.callbacks.OnTogglePause))
	manager.pauseItem.Disabled = true
	manager.fleeItem = fyne.NewMenuItem("Flee", call(&manager.callbacks.OnFlee))
	manager.fleeItem.Disabled = true

	manager.menu = fyne.NewMenu("PomoDungeon",
		manager.statusItem,
		manager.coinsItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open dungeon", call(&manager.callbacks.OnDungeon)),
		fyne.NewMenuItem("Quest board", call(&manager.callbacks.OnBoard)),
		manager.pauseItem,
		manager.fleeItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", call(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", call(&manager.callbacks.OnQuit)),
	)
	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetCoins updates the coin counter.
func (manager *Manager) SetCoins(coins int) {
	manager.coinsItem.Label = fmt.Sprintf("Coins: %d", coins)
	manager.refreshMenu()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	manager.paused = paused
	if paused {
		manager.pauseItem.Label = "Resume battle"
	} else {
		manager.pauseItem.Label = "Pause battle"
	}
	manager.refreshStatus()
}

// SetInBattle toggles battle-related menu items.
func (manager *Manager) SetInBattle(inBattle bool) {
	manager.inBattle = inBattle
	manager.pauseItem.Disabled = !inBattle
	manager.fleeItem.Disabled = !inBattle
	if !inBattle {
		manager.SetPaused(false)
		return
	}
	manager.refreshMenu()
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

func call(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
