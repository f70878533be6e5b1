// Package scene owns the dungeon simulation: the gate, the particle layers,
// the battle view and the per-frame draw order. All state is mutated on the
// loop goroutine; other goroutines submit work through Do.
package scene

import (
	"math/rand"
	"sync"
	"time"

	"pomodungeon/internal/core/model"
	"pomodungeon/internal/core/session"
	"pomodungeon/internal/scene/gate"
	"pomodungeon/internal/scene/geom"
	"pomodungeon/internal/scene/particles"
	"pomodungeon/internal/scene/signal"
)

const (
	// Width and Height are the logical canvas size.
	Width  = 320
	Height = 180

	// StartBurst is the number of mist particles forced out when the gate opens.
	StartBurst = 10
)

// Config contains scene construction options.
type Config struct {
	Weather   model.WeatherConfig
	Mist      particles.MistConfig
	Rain      particles.RainConfig
	Lightning particles.LightningConfig
	Rand      *rand.Rand
}

// DefaultConfig returns the standard scene configuration.
func DefaultConfig() Config {
	return Config{
		Weather:   model.WeatherConfig{Rain: true, Lightning: true},
		Mist:      particles.DefaultMistConfig(),
		Rain:      particles.DefaultRainConfig(),
		Lightning: particles.DefaultLightningConfig(),
	}
}

// Battle mirrors the session state the scene needs for drawing.
type Battle struct {
	Active   bool
	Paused   bool
	Progress float64
	Break    bool
	Mode     session.Mode
}

// BattleFromSnapshot converts a session snapshot.
func BattleFromSnapshot(snapshot session.Snapshot) Battle {
	return Battle{
		Active:   snapshot.Active(),
		Paused:   snapshot.State == session.StatePaused,
		Progress: snapshot.Progress,
		Break:    snapshot.Phase == session.PhaseBreak,
		Mode:     snapshot.Mode,
	}
}

// Status is a read-only summary of the scene for the UI.
type Status struct {
	Gate    gate.State
	Hover   bool
	Armed   bool
	Running bool
	Mist    int
	Strikes int
}

// Scene holds the whole simulation.
type Scene struct {
	mu       sync.Mutex
	commands []func(*Scene)

	rng       *rand.Rand
	time      float64
	gate      *gate.Gate
	mist      *particles.Mist
	rain      *particles.Rain
	lightning *particles.Lightning
	weather   model.WeatherConfig
	cast      Cast

	hasTask     bool
	running     bool
	battle      Battle
	battleStart float64

	onGateClick  func()
	onGateOpened func()
}

// New creates a scene with a closed gate.
func New(config Config) *Scene {
	rng := config.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scene{
		rng:       rng,
		gate:      gate.New(gate.DefaultBounds(Width), gate.DefaultOpenRate),
		mist:      particles.NewMist(config.Mist, rng),
		rain:      particles.NewRain(config.Rain, Width, Height, rng),
		lightning: particles.NewLightning(config.Lightning, Width, Height, rng),
		weather:   config.Weather,
	}
}

// Do queues a command to run on the loop goroutine before the next frame.
func (scene *Scene) Do(command func(*Scene)) {
	scene.mu.Lock()
	scene.commands = append(scene.commands, command)
	scene.mu.Unlock()
}

func (scene *Scene) drainCommands() {
	scene.mu.Lock()
	commands := scene.commands
	scene.commands = nil
	scene.mu.Unlock()

	for _, command := range commands {
		command(scene)
	}
}

// OnGateClick sets the handler fired when an idle gate is clicked.
func (scene *Scene) OnGateClick(handler func()) {
	scene.onGateClick = handler
}

// OnGateOpened sets the handler fired once the doors finish opening.
func (scene *Scene) OnGateOpened(handler func()) {
	scene.onGateOpened = handler
}

// SetCast sets the sprite source. A nil cast skips sprite drawing.
func (scene *Scene) SetCast(cast Cast) {
	scene.cast = cast
}

// SetWeather toggles the rain and lightning layers.
func (scene *Scene) SetWeather(weather model.WeatherConfig) {
	scene.weather = weather
}

// SetTaskReady records whether a task is selected, which arms the gate.
func (scene *Scene) SetTaskReady(ready bool) {
	scene.hasTask = ready
}

// SyncBattle updates the mirrored session state.
func (scene *Scene) SyncBattle(battle Battle) {
	scene.battle = battle
}

// MapPointer converts a device position in a view of the given size into
// logical canvas coordinates.
func MapPointer(px, py, viewWidth, viewHeight float64) (float64, float64) {
	if viewWidth <= 0 || viewHeight <= 0 {
		return 0, 0
	}
	return px * Width / viewWidth, py * Height / viewHeight
}

// PointerMove updates hover from a logical pointer position.
func (scene *Scene) PointerMove(x, y float64) {
	scene.gate.Hover(x, y, scene.running)
}

// PointerLeave clears hover.
func (scene *Scene) PointerLeave() {
	scene.gate.Leave()
}

// PointerClick handles a click at a logical position and reports whether it
// requested a start.
func (scene *Scene) PointerClick(x, y float64) bool {
	scene.gate.Hover(x, y, scene.running)
	if !scene.gate.Hovered() || scene.gate.Opening() || scene.running {
		return false
	}
	if scene.onGateClick != nil {
		scene.onGateClick()
	}
	return true
}

// BeginSession opens the gate with a mist burst and enters the running state.
func (scene *Scene) BeginSession() bool {
	if scene.running || !scene.gate.Open() {
		return false
	}
	scene.running = true
	scene.battleStart = scene.time
	scene.mist.Burst(scene.emitter(), StartBurst)
	return true
}

// EndSession closes the gate instantly and clears every pointer flag.
func (scene *Scene) EndSession() {
	scene.running = false
	scene.battle = Battle{}
	scene.gate.ForceClose()
}

// Status summarises the scene.
func (scene *Scene) Status() Status {
	return Status{
		Gate:    scene.gate.State(),
		Hover:   scene.gate.Hovered(),
		Armed:   scene.gate.Armed(),
		Running: scene.running,
		Mist:    scene.mist.Len(),
		Strikes: scene.lightning.Strikes(),
	}
}

// Gate exposes the gate for read-only inspection.
func (scene *Scene) Gate() *gate.Gate {
	return scene.gate
}

// Time returns the accumulated scene time in seconds.
func (scene *Scene) Time() float64 {
	return scene.time
}

// Signals computes the interactivity signal for the current frame.
func (scene *Scene) Signals() signal.Interactivity {
	return signal.Interactivity{
		Hover:   scene.gate.Hovered(),
		Opening: scene.gate.Opening(),
		Armed:   scene.gate.Armed(),
		Running: scene.running,
	}
}

// TorchIntensity returns the torch brightness in [0,1].
func (scene *Scene) TorchIntensity() float64 {
	intensity := 0.25
	if scene.gate.Armed() {
		intensity = 0.85
	}
	if scene.gate.Hovered() {
		intensity += 0.55
	}
	if scene.gate.Opening() {
		intensity += 0.45
	}
	intensity += scene.gate.Progress() * 0.25
	return geom.Clamp(intensity, 0, 1)
}

// InBattle reports whether the battle view replaces the gate view.
func (scene *Scene) InBattle() bool {
	return scene.running && scene.gate.State() == gate.StateOpen
}

// Frame advances the simulation by dt seconds and draws it.
func (scene *Scene) Frame(dt float64, surface Surface) {
	scene.drainCommands()
	scene.time += dt
	scene.gate.SetArmed(scene.hasTask && !scene.running && !scene.gate.Opening())

	if scene.InBattle() {
		scene.drawBattle(surface)
		scene.drawVignette(surface)
		return
	}

	if scene.weather.Lightning {
		scene.lightning.Update(dt)
	}

	signals := scene.Signals()
	scene.drawBackground(surface)
	if scene.weather.Lightning {
		scene.drawBolt(surface)
	}
	scene.drawAmbience(surface)
	scene.drawAvatar(surface)
	scene.drawTorches(surface, scene.TorchIntensity())
	scene.drawGate(surface, signals)

	scene.mist.Update(dt, scene.time, signals, scene.emitter())
	scene.drawMist(surface, signals)
	if scene.weather.Rain {
		scene.rain.Update(dt)
		scene.drawRain(surface)
	}

	if scene.gate.Advance(dt) && scene.onGateOpened != nil {
		scene.onGateOpened()
	}

	if scene.weather.Lightning {
		scene.drawFlash(surface)
	}
	scene.drawVignette(surface)
}

func (scene *Scene) emitter() particles.Emitter {
	return particles.Emitter{
		Door:    scene.gate.Door(),
		CenterX: scene.gate.Bounds().CenterX(),
		Eased:   scene.gate.Eased(),
	}
}

func (scene *Scene) sceneDuration() time.Duration {
	return durationOf(scene.time)
}
