package dungeon

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodungeon/internal/core/model"
	"pomodungeon/internal/core/quest"
	"pomodungeon/internal/core/session"
	"pomodungeon/internal/scene"
)

const noQuest = "(no quest)"

var (
	timerColor  = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	pausedColor = color.NRGBA{R: 150, G: 150, B: 160, A: 255}
	breakColor  = color.NRGBA{R: 110, G: 200, B: 140, A: 255}
)

// Window is the main dungeon window.
type Window struct {
	app       fyne.App
	window    fyne.Window
	dungeon   *Dungeon
	quests    *quest.Service
	view      *sceneView
	questPick *widget.Select
	stopwatch *widget.Check
	start     *widget.Button
	pause     *widget.Button
	flee      *widget.Button
	victory   *widget.Button
	quest     *widget.Label
	timer     *canvas.Text
	status    *widget.Label
	coins     *widget.Label
	progress  *widget.ProgressBar
	questIDs  map[string]string
	scale     int
}

// NewWindow builds the dungeon window around a dungeon.
func NewWindow(app fyne.App, dungeon *Dungeon, quests *quest.Service, scale int) *Window {
	window := app.NewWindow("PomoDungeon")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	win := &Window{
		app:      app,
		window:   window,
		dungeon:  dungeon,
		quests:   quests,
		view:     newSceneView(dungeon),
		quest:    widget.NewLabel(""),
		status:   widget.NewLabel(""),
		coins:    widget.NewLabel(""),
		progress: widget.NewProgressBar(),
		questIDs: map[string]string{},
	}

	win.timer = canvas.NewText("0:00", timerColor)
	win.timer.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	win.timer.TextSize = 22
	win.status.Wrapping = fyne.TextWrapWord

	win.questPick = widget.NewSelect(nil, win.handleQuestPick)
	win.questPick.PlaceHolder = "Choose a quest"
	win.stopwatch = widget.NewCheck("Stopwatch", func(checked bool) {
		mode := session.ModeCountdown
		if checked {
			mode = session.ModeStopwatch
		}
		dungeon.SetMode(mode)
	})
	win.start = widget.NewButton("Open gate", dungeon.Start)
	win.pause = widget.NewButton("Pause", func() { win.report(dungeon.Pause()) })
	win.flee = widget.NewButton("Flee", func() { win.report(dungeon.Flee()) })
	win.victory = widget.NewButton("Victory", func() { win.report(dungeon.Victory()) })

	controls := container.NewVBox(
		container.NewBorder(nil, nil, nil, win.stopwatch, win.questPick),
		container.NewHBox(win.quest, layout.NewSpacer(), win.coins),
		container.NewBorder(nil, nil, win.timer, nil, win.progress),
		container.NewGridWithColumns(4, win.start, win.pause, win.flee, win.victory),
		win.status,
	)
	window.SetContent(container.NewBorder(nil, controls, nil, nil, container.New(&aspectLayout{}, win.view)))

	win.RefreshQuests()
	win.applyUnsafe(dungeon.State())
	win.SetScale(scale)
	dungeon.OnChange(win.Apply)
	return win
}

// Window exposes the fyne window.
func (win *Window) Window() fyne.Window {
	return win.window
}

// Show brings the window forward.
func (win *Window) Show() {
	win.window.Show()
	win.window.RequestFocus()
}

// SetScale resizes the scene area to scale times the logical canvas.
func (win *Window) SetScale(scale int) {
	if scale <= 0 {
		scale = 1
	}
	win.scale = scale
	size := fyne.NewSize(float32(scene.Width*scale), float32(scene.Height*scale))
	win.view.minSize = size
	win.view.Refresh()
	win.window.Resize(win.window.Content().MinSize())
}

// SetFrame shows a rendered frame. Safe from any goroutine.
func (win *Window) SetFrame(frame image.Image) {
	fyne.Do(func() {
		win.view.image.Image = frame
		win.view.image.Refresh()
	})
}

// Apply updates the controls from a dungeon state. Safe from any goroutine.
func (win *Window) Apply(state State) {
	fyne.Do(func() {
		win.applyUnsafe(state)
	})
}

// RefreshQuests reloads the quest picker from the board.
func (win *Window) RefreshQuests() {
	tasks := win.quests.ActiveTasks()
	options := make([]string, 0, len(tasks)+1)
	ids := make(map[string]string, len(tasks)+1)
	options = append(options, noQuest)
	ids[noQuest] = ""
	for _, task := range tasks {
		label := questLabel(task)
		if _, taken := ids[label]; taken {
			label = fmt.Sprintf("%s #%s", label, shortID(task.ID))
		}
		if _, taken := ids[label]; taken {
			label = fmt.Sprintf("%s #%s", questLabel(task), task.ID)
		}
		options = append(options, label)
		ids[label] = task.ID
	}
	win.questIDs = ids
	win.questPick.Options = options
	win.questPick.Refresh()
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func (win *Window) handleQuestPick(label string) {
	taskID, ok := win.questIDs[label]
	if !ok {
		return
	}
	if err := win.dungeon.Select(taskID); err != nil {
		win.report(err)
		win.RefreshQuests()
	}
}

func (win *Window) applyUnsafe(state State) {
	if state.Quest == "" {
		win.quest.SetText("No quest chosen")
	} else {
		win.quest.SetText(fmt.Sprintf("%s vs %s", state.Quest, state.Monster))
	}
	win.coins.SetText(fmt.Sprintf("%d coins", state.Coins))
	win.status.SetText(state.Status)
	win.progress.SetValue(state.Progress)

	win.timer.Text = state.Clock
	win.timer.Color = timerColor
	switch {
	case state.Paused:
		win.timer.Color = pausedColor
	case state.Break:
		win.timer.Color = breakColor
	}
	win.timer.Refresh()

	if state.InBattle {
		win.questPick.Disable()
		win.stopwatch.Disable()
		win.start.Disable()
		win.pause.Enable()
		win.flee.Enable()
		win.victory.Enable()
	} else {
		win.questPick.Enable()
		win.stopwatch.Enable()
		win.start.Enable()
		win.pause.Disable()
		win.flee.Disable()
		win.victory.Disable()
	}
	if state.Paused {
		win.pause.SetText("Resume")
	} else {
		win.pause.SetText("Pause")
	}

	if !state.InBattle && state.QuestID == "" && win.questPick.Selected != "" && win.questPick.Selected != noQuest {
		win.RefreshQuests()
		win.questPick.ClearSelected()
	}
}

func (win *Window) report(err error) {
	if err == nil {
		return
	}
	log.Printf("[dungeon] %v", err)
	win.status.SetText(err.Error())
}

func questLabel(task model.Task) string {
	return fmt.Sprintf("%s [%s, %dm]", task.Name, task.Priority, task.EstimatedMinutes)
}

// sceneView draws frames with crisp pixels and feeds the pointer back.
type sceneView struct {
	widget.BaseWidget
	dungeon *Dungeon
	image   *canvas.Image
	minSize fyne.Size
}

var (
	_ desktop.Hoverable = (*sceneView)(nil)
	_ fyne.Tappable     = (*sceneView)(nil)
)

func newSceneView(dungeon *Dungeon) *sceneView {
	view := &sceneView{
		dungeon: dungeon,
		image:   canvas.NewImageFromImage(image.NewNRGBA(image.Rect(0, 0, scene.Width, scene.Height))),
		minSize: fyne.NewSize(scene.Width, scene.Height),
	}
	view.image.ScaleMode = canvas.ImageScalePixels
	view.image.FillMode = canvas.ImageFillStretch
	view.ExtendBaseWidget(view)
	return view
}

func (view *sceneView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(view.image)
}

func (view *sceneView) MinSize() fyne.Size {
	return view.minSize
}

func (view *sceneView) MouseIn(event *desktop.MouseEvent) {
	view.MouseMoved(event)
}

func (view *sceneView) MouseMoved(event *desktop.MouseEvent) {
	size := view.Size()
	view.dungeon.Hover(float64(event.Position.X), float64(event.Position.Y), float64(size.Width), float64(size.Height))
}

func (view *sceneView) MouseOut() {
	view.dungeon.Leave()
}

func (view *sceneView) Tapped(event *fyne.PointEvent) {
	size := view.Size()
	view.dungeon.Click(float64(event.Position.X), float64(event.Position.Y), float64(size.Width), float64(size.Height))
}

// aspectLayout keeps its single child at the logical canvas aspect ratio,
// centred in the available space.
type aspectLayout struct{}

func (layout *aspectLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) == 0 {
		return
	}
	width := size.Width
	height := width * scene.Height / scene.Width
	if height > size.Height {
		height = size.Height
		width = height * scene.Width / scene.Height
	}
	objects[0].Move(fyne.NewPos((size.Width-width)/2, (size.Height-height)/2))
	objects[0].Resize(fyne.NewSize(width, height))
}

func (layout *aspectLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) == 0 {
		return fyne.NewSize(0, 0)
	}
	return objects[0].MinSize()
}
