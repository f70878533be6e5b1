package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var scaleOptions = []string{"1x", "2x", "3x", "4x", "5x", "6x"}

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	focus      *widget.Entry
	breakLen   *widget.Entry
	pomodoro   *widget.Check
	rain       *widget.Check
	lightning  *widget.Check
	idleCheck  *widget.Check
	idleAfter  *widget.Entry
	sound      *widget.Check
	volume     *widget.Slider
	autostart  *widget.Check
	scale      *widget.Select
	saveButton *widget.Button
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("PomoDungeon Settings")

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		focus:     widget.NewEntry(),
		breakLen:  widget.NewEntry(),
		pomodoro:  widget.NewCheck("New quests use pomodoro phases", nil),
		rain:      widget.NewCheck("Rain", nil),
		lightning: widget.NewCheck("Lightning", nil),
		idleCheck: widget.NewCheck("Pause battles when I'm away", nil),
		idleAfter: widget.NewEntry(),
		sound:     widget.NewCheck("Sound effects", nil),
		volume:    widget.NewSlider(0.05, 1),
		autostart: widget.NewCheck("Launch at login", nil),
		scale:     widget.NewSelect(scaleOptions, nil),
	}
	prefs.volume.Step = 0.05

	form := container.NewVBox(
		widget.NewLabelWithStyle("Battles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Default estimate"), prefs.focus, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break length"), prefs.breakLen, widget.NewLabel("min")),
		prefs.pomodoro,
		container.NewHBox(prefs.idleCheck, prefs.idleAfter, widget.NewLabel("min")),
		widget.NewLabelWithStyle("Dungeon", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(prefs.rain, prefs.lightning),
		container.NewHBox(widget.NewLabel("Pixel scale"), prefs.scale),
		prefs.sound,
		prefs.volume,
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.autostart,
	)

	prefs.saveButton = widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(prefs.saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 460))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.focus.SetText(fmt.Sprintf("%d", int(settings.FocusDuration.Minutes())))
	prefs.breakLen.SetText(fmt.Sprintf("%d", int(settings.BreakDuration.Minutes())))
	prefs.pomodoro.SetChecked(settings.Pomodoro)
	prefs.rain.SetChecked(settings.Rain)
	prefs.lightning.SetChecked(settings.Lightning)
	prefs.idleCheck.SetChecked(settings.IdleEnabled)
	prefs.idleAfter.SetText(fmt.Sprintf("%d", int(settings.IdleAfter.Minutes())))
	prefs.sound.SetChecked(settings.Sound)
	prefs.volume.SetValue(settings.SoundVolume)
	prefs.autostart.SetChecked(settings.LaunchAtLogin)
	prefs.scale.SetSelected(fmt.Sprintf("%dx", settings.WindowScale))
}

// Settings returns the values last saved or loaded.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	settings := prefs.collect()
	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// collect reads the form; unparsable fields keep their previous values.
func (prefs *Window) collect() Settings {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.focus.Text); ok {
		settings.FocusDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.breakLen.Text); ok {
		settings.BreakDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.idleAfter.Text); ok {
		settings.IdleAfter = time.Duration(minutes) * time.Minute
	}
	if scale, ok := parsePositiveInt(strings.TrimSuffix(prefs.scale.Selected, "x")); ok && scale <= len(scaleOptions) {
		settings.WindowScale = scale
	}

	settings.Pomodoro = prefs.pomodoro.Checked
	settings.Rain = prefs.rain.Checked
	settings.Lightning = prefs.lightning.Checked
	settings.IdleEnabled = prefs.idleCheck.Checked
	settings.Sound = prefs.sound.Checked
	settings.SoundVolume = prefs.volume.Value
	settings.LaunchAtLogin = prefs.autostart.Checked
	return settings
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
