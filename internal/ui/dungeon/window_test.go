package dungeon

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestPickerSelectsTask(t *testing.T) {
	app := test.NewTempApp(t)
	h := newHarness(t)
	task := h.addTask(t, 5)
	win := NewWindow(app, h.dungeon, h.quests, 2)

	require.Equal(t, []string{noQuest, questLabel(task)}, win.questPick.Options)
	win.questPick.SetSelected(questLabel(task))
	h.step(16 * time.Millisecond)
	assert.Equal(t, task.ID, h.dungeon.State().QuestID)

	win.questPick.SetSelected(noQuest)
	h.step(16 * time.Millisecond)
	assert.Empty(t, h.dungeon.State().QuestID)
}

func TestQuestPickerTellsSameNamedTasksApart(t *testing.T) {
	app := test.NewTempApp(t)
	h := newHarness(t)
	first := h.addTask(t, 5)
	second := h.addTask(t, 5)
	require.Equal(t, questLabel(first), questLabel(second))
	win := NewWindow(app, h.dungeon, h.quests, 2)

	options := win.questPick.Options
	require.Len(t, options, 3)
	assert.NotEqual(t, options[1], options[2])

	picked := make(map[string]bool)
	for _, label := range options[1:] {
		win.questPick.SetSelected(label)
		h.step(16 * time.Millisecond)
		picked[h.dungeon.State().QuestID] = true
	}
	assert.Equal(t, map[string]bool{first.ID: true, second.ID: true}, picked)
}

func TestButtonsDriveBattle(t *testing.T) {
	app := test.NewTempApp(t)
	h := newHarness(t)
	task := h.addTask(t, 5)
	win := NewWindow(app, h.dungeon, h.quests, 2)
	require.NoError(t, h.dungeon.Select(task.ID))

	test.Tap(win.start)
	h.step(16 * time.Millisecond)
	require.True(t, h.dungeon.State().InBattle)

	win.applyUnsafe(h.dungeon.State())
	assert.True(t, win.start.Disabled())
	assert.False(t, win.flee.Disabled())

	test.Tap(win.pause)
	h.step(16 * time.Millisecond)
	state := h.dungeon.State()
	assert.True(t, state.Paused)
	win.applyUnsafe(state)
	assert.Equal(t, "Resume", win.pause.Text)

	test.Tap(win.flee)
	h.step(16 * time.Millisecond)
	state = h.dungeon.State()
	assert.False(t, state.InBattle)
	win.applyUnsafe(state)
	assert.False(t, win.start.Disabled())
	assert.True(t, win.victory.Disabled())
}

func TestStopwatchCheckSetsMode(t *testing.T) {
	app := test.NewTempApp(t)
	h := newHarness(t)
	task := h.addTask(t, 1)
	win := NewWindow(app, h.dungeon, h.quests, 1)
	require.NoError(t, h.dungeon.Select(task.ID))

	win.stopwatch.SetChecked(true)
	h.dungeon.Start()
	h.step(16 * time.Millisecond)

	h.step(2 * time.Minute)
	state := h.dungeon.State()
	assert.True(t, state.InBattle)
	assert.Equal(t, "2:00", state.Clock)
}

func TestAspectLayoutKeepsCanvasRatio(t *testing.T) {
	view := newSceneView(nil)
	layout := &aspectLayout{}
	layout.Layout([]fyne.CanvasObject{view}, fyne.NewSize(1000, 180))

	assert.Equal(t, fyne.NewSize(320, 180), view.Size())
	assert.Equal(t, fyne.NewPos(340, 0), view.Position())
}
