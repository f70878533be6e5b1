// Package animation loads sprite sheets off the UI thread and poses the
// avatar and monster for the dungeon scene.
package animation

import (
	"context"
	"image"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"pomodungeon/internal/core/model"
	"pomodungeon/internal/scene"
)

// Engine publishes the current battle roster and implements scene.Cast.
type Engine struct {
	mu        sync.Mutex
	assetsDir string
	cancel    context.CancelFunc
	roster    atomic.Pointer[Roster]
	onLoaded  func()
}

// New creates an engine reading sprites below assetsDir.
func New(assetsDir string) *Engine {
	return &Engine{assetsDir: assetsDir}
}

// SetOnLoaded sets a callback fired after a roster is published.
func (engine *Engine) SetOnLoaded(handler func()) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.onLoaded = handler
}

// Load starts loading the sheets for an avatar, monster and room, cancelling
// any load still in flight. The previous roster stays visible until the new
// one is ready. The returned channel closes when this load finishes.
func (engine *Engine) Load(ctx context.Context, avatarID, monsterID string, room int) <-chan struct{} {
	avatar, ok := model.FindAvatar(avatarID)
	if !ok {
		avatar, _ = model.FindAvatar(model.StarterAvatar)
	}
	monster := model.FindMonster(monsterID)

	done := make(chan struct{})
	engine.start(ctx, func(runCtx context.Context) {
		defer close(done)
		roster, err := LoadRoster(runCtx, engine.assetsDir, avatar, monster, room)
		if err != nil {
			return
		}

		engine.mu.Lock()
		if runCtx.Err() != nil {
			engine.mu.Unlock()
			return
		}
		engine.roster.Store(roster)
		handler := engine.onLoaded
		engine.mu.Unlock()

		log.Printf("[animation] loaded %s vs %s", avatar.ID, monster.ID)
		if handler != nil {
			handler()
		}
	})
	return done
}

// Stop cancels any load in flight.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

// Roster returns the published roster, or nil before the first load.
func (engine *Engine) Roster() *Roster {
	return engine.roster.Load()
}

// Pose implements scene.Cast.
func (engine *Engine) Pose(now, battle time.Duration, moving bool) scene.BattlePose {
	return engine.roster.Load().Pose(now, battle, moving)
}

// Backdrop implements scene.Cast.
func (engine *Engine) Backdrop() image.Image {
	roster := engine.roster.Load()
	if roster == nil {
		return nil
	}
	return roster.Backdrop
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go run(runCtx)
}
