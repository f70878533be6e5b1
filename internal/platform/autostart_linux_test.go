//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopEntryRoundTrip(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	autostart := &Autostart{Name: "Pomo Dungeon", Exec: "/opt/pomo dungeon/bin"}
	assert.False(t, autostart.Enabled())

	require.NoError(t, autostart.Set(true))
	assert.True(t, autostart.Enabled())
	path := filepath.Join(configDir, "autostart", "pomo-dungeon.desktop")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `Exec="/opt/pomo dungeon/bin"`)
	assert.Contains(t, string(data), "Name=Pomo Dungeon")

	require.NoError(t, autostart.Set(false))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.False(t, autostart.Enabled())
	assert.NoError(t, autostart.Set(false))
}

func TestConfigDirHonoursXDG(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	got, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, configDir, got)
}
