package preferences

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCollectsForm(t *testing.T) {
	app := test.NewTempApp(t)
	var saved *Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = &settings
	})

	prefs.focus.SetText("40")
	prefs.breakLen.SetText("oops")
	prefs.idleAfter.SetText("0")
	prefs.rain.SetChecked(false)
	prefs.scale.SetSelected("5x")
	prefs.volume.SetValue(0.25)
	test.Tap(prefs.saveButton)

	require.NotNil(t, saved)
	assert.Equal(t, 40*time.Minute, saved.FocusDuration)
	assert.Equal(t, 5*time.Minute, saved.BreakDuration)
	assert.Equal(t, 5*time.Minute, saved.IdleAfter)
	assert.False(t, saved.Rain)
	assert.True(t, saved.Lightning)
	assert.Equal(t, 5, saved.WindowScale)
	assert.InDelta(t, 0.25, saved.SoundVolume, 1e-9)
	assert.Equal(t, *saved, prefs.Settings())
}

func TestUpdateSettingsRefreshesForm(t *testing.T) {
	app := test.NewTempApp(t)
	prefs := New(app, DefaultSettings(), nil)

	updated := DefaultSettings()
	updated.FocusDuration = 50 * time.Minute
	updated.Pomodoro = true
	updated.WindowScale = 2
	prefs.UpdateSettings(updated)

	assert.Equal(t, "50", prefs.focus.Text)
	assert.True(t, prefs.pomodoro.Checked)
	assert.Equal(t, "2x", prefs.scale.Selected)

	collected := prefs.collect()
	assert.InDelta(t, updated.SoundVolume, collected.SoundVolume, 0.05)
	collected.SoundVolume = updated.SoundVolume
	assert.Equal(t, updated, collected)
}

func TestSettingsConversions(t *testing.T) {
	settings := DefaultSettings()
	assert.Equal(t, settings.IdleAfter, settings.SessionConfig().IdlePauseAfter)
	assert.Equal(t, 5*time.Second, settings.SessionConfig().IdleCheckInterval)
	assert.Equal(t, 25*time.Minute, settings.PomodoroConfig().Study)
	assert.True(t, settings.WeatherConfig().Rain)
}
