// Package dungeon presents the gate scene and runs battles from the desktop
// window. Dungeon holds the window-independent flow; Window is its fyne
// shell.
package dungeon

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"pomodungeon/internal/audio"
	"pomodungeon/internal/core/battle"
	"pomodungeon/internal/core/model"
	"pomodungeon/internal/core/quest"
	"pomodungeon/internal/core/session"
	"pomodungeon/internal/scene"
)

// ErrNoQuest is returned when starting without a selected task.
var ErrNoQuest = errors.New("pick a quest first")

// Sounds plays effects.
type Sounds interface {
	Play(sound audio.Sound)
}

// Loader fetches the battle sprites for a hero, monster and room.
type Loader interface {
	Load(ctx context.Context, avatarID, monsterID string, room int) <-chan struct{}
}

// State is what the window shows besides the scene.
type State struct {
	QuestID  string
	Quest    string
	Monster  string
	InBattle bool
	Paused   bool
	Break    bool
	Clock    string
	Progress float64
	Status   string
	Coins    int
}

// Dungeon runs the select, open, fight and finish flow. AfterFrame runs on
// the loop goroutine; the other exported methods are safe from any goroutine.
type Dungeon struct {
	mu        sync.Mutex
	scene     *scene.Scene
	battles   *battle.Controller
	quests    *quest.Service
	loader    Loader
	sounds    Sounds
	events    <-chan session.Event
	ctx       context.Context
	selected  string
	hero      string
	mode      session.Mode
	status    string
	last      State
	listeners []func(State)
}

// New wires a dungeon to its scene. loader and sounds may be nil.
func New(ctx context.Context, world *scene.Scene, battles *battle.Controller, quests *quest.Service, loader Loader, sounds Sounds) *Dungeon {
	dungeon := &Dungeon{
		scene:   world,
		battles: battles,
		quests:  quests,
		loader:  loader,
		sounds:  sounds,
		events:  battles.Session().Subscribe(32),
		ctx:     ctx,
		mode:    session.ModeCountdown,
		status:  "Choose a quest, then knock on the gate.",
	}
	world.OnGateClick(dungeon.begin)
	dungeon.SyncHero()
	return dungeon
}

// SyncHero loads the equipped avatar when it differs from the one on stage,
// so the gate shows the current hero before any battle. A running battle
// keeps its sprites until it ends.
func (dungeon *Dungeon) SyncHero() {
	if dungeon.loader == nil {
		return
	}
	if _, fighting := dungeon.battles.Current(); fighting {
		return
	}
	avatar := dungeon.quests.Player().CurrentAvatar
	dungeon.mu.Lock()
	if avatar == dungeon.hero {
		dungeon.mu.Unlock()
		return
	}
	dungeon.hero = avatar
	taskID := dungeon.selected
	dungeon.mu.Unlock()

	monster, room := model.Monsters[0].ID, 0
	if task, err := dungeon.quests.Task(taskID); err == nil {
		monster, room = task.MonsterType, task.DungeonRoom
	}
	dungeon.loader.Load(dungeon.ctx, avatar, monster, room)
}

// OnChange registers a listener called on the loop goroutine whenever the
// visible state changes.
func (dungeon *Dungeon) OnChange(listener func(State)) {
	dungeon.mu.Lock()
	defer dungeon.mu.Unlock()
	dungeon.listeners = append(dungeon.listeners, listener)
}

// Select chooses the task the next battle is fought for. An empty id clears
// the selection.
func (dungeon *Dungeon) Select(taskID string) error {
	if taskID != "" {
		task, err := dungeon.quests.Task(taskID)
		if err != nil {
			return err
		}
		if task.Completed {
			return quest.ErrTaskCompleted
		}
	}
	dungeon.mu.Lock()
	dungeon.selected = taskID
	dungeon.mu.Unlock()
	dungeon.scene.Do(func(world *scene.Scene) {
		world.SetTaskReady(taskID != "")
	})
	return nil
}

// SetMode picks countdown or stopwatch for the next battle.
func (dungeon *Dungeon) SetMode(mode session.Mode) {
	dungeon.mu.Lock()
	defer dungeon.mu.Unlock()
	dungeon.mode = mode
}

// Start opens the gate as if it had been clicked.
func (dungeon *Dungeon) Start() {
	dungeon.scene.Do(func(*scene.Scene) {
		dungeon.begin()
	})
}

// Hover forwards a pointer position in a view of the given size.
func (dungeon *Dungeon) Hover(x, y, width, height float64) {
	x, y = scene.MapPointer(x, y, width, height)
	dungeon.scene.Do(func(world *scene.Scene) {
		world.PointerMove(x, y)
	})
}

// Leave clears the gate hover.
func (dungeon *Dungeon) Leave() {
	dungeon.scene.Do(func(world *scene.Scene) {
		world.PointerLeave()
	})
}

// Click forwards a click in a view of the given size. Clicking the gate
// starts the battle.
func (dungeon *Dungeon) Click(x, y, width, height float64) {
	x, y = scene.MapPointer(x, y, width, height)
	dungeon.scene.Do(func(world *scene.Scene) {
		world.PointerClick(x, y)
	})
}

// Pause toggles the running battle.
func (dungeon *Dungeon) Pause() error {
	timer := dungeon.battles.Session()
	if timer.State() == session.StatePaused {
		return timer.Resume()
	}
	return timer.Pause()
}

// Flee abandons the battle and keeps the time spent.
func (dungeon *Dungeon) Flee() error {
	task, err := dungeon.battles.Flee()
	if err != nil {
		return err
	}
	dungeon.play(audio.SoundFlee)
	dungeon.setStatus(fmt.Sprintf("You fled. %s saved on %q.", session.Format(task.Spent()), task.Name))
	dungeon.scene.Do(func(world *scene.Scene) {
		world.EndSession()
	})
	return nil
}

// Victory completes the task early.
func (dungeon *Dungeon) Victory() error {
	completion, err := dungeon.battles.Victory()
	if err != nil {
		return err
	}
	dungeon.win(completion)
	dungeon.scene.Do(func(world *scene.Scene) {
		world.EndSession()
	})
	return nil
}

// AfterFrame ticks the session and reacts to its events. Register it with
// scene.Loop.AfterFrame.
func (dungeon *Dungeon) AfterFrame(now time.Time) {
	timer := dungeon.battles.Session()
	timer.Tick(now)
	dungeon.drainEvents()
	dungeon.scene.SyncBattle(scene.BattleFromSnapshot(timer.Snapshot()))
	dungeon.notify()
}

// State returns the current window state.
func (dungeon *Dungeon) State() State {
	snapshot := dungeon.battles.Session().Snapshot()

	dungeon.mu.Lock()
	selected := dungeon.selected
	state := State{
		InBattle: snapshot.Active(),
		Paused:   snapshot.State == session.StatePaused,
		Break:    snapshot.Phase == session.PhaseBreak,
		Progress: snapshot.Progress,
		Status:   dungeon.status,
	}
	dungeon.mu.Unlock()

	state.Clock = session.Format(snapshot.Elapsed)
	if snapshot.Mode == session.ModeCountdown && snapshot.Active() {
		state.Clock = session.Format(snapshot.Remaining)
	}
	if current, ok := dungeon.battles.Current(); ok {
		selected = current.ID
	}
	if task, err := dungeon.quests.Task(selected); err == nil {
		state.QuestID = task.ID
		state.Quest = task.Name
		state.Monster = model.FindMonster(task.MonsterType).Name
	}
	state.Coins = dungeon.quests.Player().Coins
	return state
}

func (dungeon *Dungeon) begin() {
	dungeon.mu.Lock()
	taskID, mode := dungeon.selected, dungeon.mode
	dungeon.mu.Unlock()
	if taskID == "" {
		dungeon.setStatus(ErrNoQuest.Error())
		return
	}

	task, err := dungeon.battles.Begin(taskID, mode)
	if err != nil {
		dungeon.setStatus(err.Error())
		return
	}
	if !dungeon.scene.BeginSession() {
		log.Printf("[dungeon] gate refused to open for %s", task.ID)
	}
	if dungeon.loader != nil {
		avatar := dungeon.quests.Player().CurrentAvatar
		dungeon.mu.Lock()
		dungeon.hero = avatar
		dungeon.mu.Unlock()
		dungeon.loader.Load(dungeon.ctx, avatar, task.MonsterType, task.DungeonRoom)
	}
	dungeon.play(audio.SoundGate)
	dungeon.setStatus(fmt.Sprintf("A %s guards %q.", model.FindMonster(task.MonsterType).Name, task.Name))
}

func (dungeon *Dungeon) drainEvents() {
	for {
		select {
		case event, ok := <-dungeon.events:
			if !ok {
				return
			}
			dungeon.handleEvent(event)
		default:
			return
		}
	}
}

func (dungeon *Dungeon) handleEvent(event session.Event) {
	switch event.Type {
	case session.EventPhaseChange:
		dungeon.play(audio.SoundPhase)
		dungeon.setStatus("Study phase won. Catch your breath.")
	case session.EventIdlePause:
		dungeon.setStatus("Battle paused while you were away.")
	case session.EventIdleError:
		log.Printf("[dungeon] idle check: %s", event.Message)
	case session.EventCompleted:
		completion, ok, err := dungeon.battles.Handle(event)
		if err != nil {
			dungeon.setStatus(err.Error())
		}
		if !ok {
			return
		}
		dungeon.win(completion)
		dungeon.scene.EndSession()
	}
}

func (dungeon *Dungeon) win(completion quest.Completion) {
	dungeon.play(audio.SoundVictory)
	monster := model.FindMonster(completion.Task.MonsterType)
	dungeon.mu.Lock()
	if dungeon.selected == completion.Task.ID {
		dungeon.selected = ""
	}
	dungeon.status = fmt.Sprintf("%s defeated! +%d coins", monster.Name, completion.CoinsEarned)
	dungeon.mu.Unlock()
	dungeon.scene.Do(func(world *scene.Scene) {
		world.SetTaskReady(false)
	})
}

func (dungeon *Dungeon) notify() {
	state := dungeon.State()
	dungeon.mu.Lock()
	if state == dungeon.last {
		dungeon.mu.Unlock()
		return
	}
	dungeon.last = state
	listeners := append([]func(State)(nil), dungeon.listeners...)
	dungeon.mu.Unlock()

	for _, listener := range listeners {
		listener(state)
	}
}

func (dungeon *Dungeon) setStatus(status string) {
	dungeon.mu.Lock()
	dungeon.status = status
	dungeon.mu.Unlock()
}

func (dungeon *Dungeon) play(sound audio.Sound) {
	if dungeon.sounds != nil {
		dungeon.sounds.Play(sound)
	}
}
