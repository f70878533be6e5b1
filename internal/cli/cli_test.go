package cli

import (
	"bytes"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodungeon/internal/config"
	"pomodungeon/internal/core/battle"
	"pomodungeon/internal/core/clock"
	"pomodungeon/internal/core/model"
	"pomodungeon/internal/core/quest"
	"pomodungeon/internal/core/session"
	"pomodungeon/internal/storage"
)

type harness struct {
	t       *testing.T
	kv      *storage.MemoryKV
	opened  int
	closed  int
	desktop *config.Options
	ids     int
}

func newHarness(t *testing.T) *harness {
	t.Chdir(t.TempDir())
	return &harness{t: t, kv: storage.NewMemoryKV()}
}

func (h *harness) hooks() Hooks {
	return Hooks{
		ConfigDir: h.t.TempDir(),
		Open: func(options config.Options) (*App, error) {
			h.opened++
			manual := clock.NewManual(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
			quests := quest.New(storage.NewGameStore(h.kv), quest.Config{
				Now: manual.Now,
				NewID: func() string {
					h.ids++
					return fmt.Sprintf("quest-%04d", h.ids)
				},
			})
			return &App{
				Options: options,
				Quests:  quests,
				Battles: battle.New(quests, session.New(manual, model.SessionConfig{})),
				Close: func() error {
					h.closed++
					return nil
				},
			}, nil
		},
		Desktop: func(options config.Options) error {
			h.desktop = &options
			return nil
		},
	}
}

func (h *harness) run(args ...string) (string, error) {
	root := NewRootCommand(h.hooks())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTaskLifecycle(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("tasks", "add", "Write", "report", "-p", "high", "-e", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Write report")
	assert.Contains(t, out, "Skeleton")

	_, err = h.run("tasks", "add", "Stretch", "--pomodoro")
	require.NoError(t, err)

	out, err = h.run("tasks", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Write report")
	assert.Less(t, bytes.Index([]byte(out), []byte("Write report")), bytes.Index([]byte(out), []byte("Stretch")))

	_, err = h.run("tasks", "complete", "quest-")
	assert.ErrorIs(t, err, errAmbiguousID)

	out, err = h.run("tasks", "complete", "quest-0001")
	require.NoError(t, err)
	assert.Contains(t, out, "+35 coins")

	out, err = h.run("tasks", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Write report")
	out, err = h.run("tasks", "ls", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "done")

	_, err = h.run("tasks", "rm", "quest-0002")
	require.NoError(t, err)
	_, err = h.run("tasks", "delete", "quest-0002")
	assert.ErrorIs(t, err, quest.ErrTaskNotFound)

	assert.Equal(t, h.opened, h.closed)
}

func TestAddRejectsBadInput(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("tasks", "add", "Thing", "-p", "whenever")
	assert.Error(t, err)
	_, err = h.run("tasks", "add", "Thing", "-d", "next week")
	assert.Error(t, err)
	_, err = h.run("tasks", "add")
	assert.Error(t, err)

	out, err := h.run("tasks", "add", "Dated", "-d", "2030-01-02")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Dated")
	out, err = h.run("tasks", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "due 2030-01-02")
}

func TestPlayerAndShop(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("tasks", "add", "Chore", "-p", "urgent")
	require.NoError(t, err)
	_, err = h.run("tasks", "complete", "quest-0001")
	require.NoError(t, err)

	out, err := h.run("player")
	require.NoError(t, err)
	assert.Contains(t, out, "Knight I")
	assert.Contains(t, out, "50")
	assert.Contains(t, out, "Chore")

	_, err = h.run("shop", "unlock", "wizard")
	assert.ErrorIs(t, err, quest.ErrInsufficientCoins)
	_, err = h.run("shop", "unlock", "dragon")
	assert.ErrorIs(t, err, quest.ErrUnknownAvatar)
	_, err = h.run("shop", "equip", "wizard")
	assert.ErrorIs(t, err, quest.ErrAvatarLocked)

	out, err = h.run("shop", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "equipped")
	assert.Contains(t, out, "125 coins")
}

func TestRootRunsDesktop(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("--fps", "30", "--memory")
	require.NoError(t, err)
	require.NotNil(t, h.desktop)
	assert.Equal(t, 30, h.desktop.FPS)
	assert.True(t, h.desktop.InMemory)
	assert.Zero(t, h.opened)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "quest-00", shortID("quest-0001"))
}
