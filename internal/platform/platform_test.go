package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondLaunchRaisesRunningInstance(t *testing.T) {
	name := "pomodungeon-test-" + t.Name()
	first, err := AcquireInstance(name)
	if err != nil {
		t.Skipf("loopback unavailable: %v", err)
	}
	defer first.Release()

	raised := make(chan struct{}, 1)
	first.OnRaise(func() { raised <- struct{}{} })

	_, err = AcquireInstance(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	select {
	case <-raised:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not raised")
	}

	require.NoError(t, first.Release())
	again, err := AcquireInstance(name)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestPortFromNameIsStable(t *testing.T) {
	port := portFromName("pomodungeon")
	assert.Equal(t, port, portFromName("pomodungeon"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)

	var instance *Instance
	assert.NoError(t, instance.Release())
}

func TestParseIdleMillis(t *testing.T) {
	idle, err := parseIdleMillis([]byte("90500\n"))
	require.NoError(t, err)
	assert.Equal(t, 90500*time.Millisecond, idle)

	idle, err = parseIdleMillis([]byte("-3"))
	require.NoError(t, err)
	assert.Zero(t, idle)

	_, err = parseIdleMillis([]byte("no display"))
	assert.Error(t, err)
}

func TestParseHIDIdleTime(t *testing.T) {
	output := []byte(`+-o IOHIDSystem  <class IOHIDSystem>
    {
      "HIDIdleTime" = 4250000000
      "HIDParameters" = {"HIDIdleTime"=1}
    }`)
	idle, err := parseHIDIdleTime(output)
	require.NoError(t, err)
	assert.Equal(t, 4250*time.Millisecond, idle)

	_, err = parseHIDIdleTime([]byte("{}"))
	assert.Error(t, err)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "pomo-dungeon", slug("  Pomo   Dungeon "))
	assert.Equal(t, "pomodungeon", slug("  "))
}

func TestAutostartRejectsEmptyArguments(t *testing.T) {
	assert.Error(t, (&Autostart{Exec: "/bin/true"}).Set(true))
	assert.Error(t, (&Autostart{Name: "app"}).Set(true))
}
