// Package platform wraps the OS pieces the desktop dungeon needs: the config
// directory, launch at login, idle time and the single-instance lock.
package platform

import (
	"fmt"
	"os"
	"strings"
)

const defaultSlug = "pomodungeon"

// ConfigDir returns the OS configuration directory, falling back to the
// usual location under the home directory when the lookup fails.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}
	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err == nil {
			err = homeErr
		}
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return fallbackConfigDir(homeDir), nil
}

// Autostart launches Exec at login under Name.
type Autostart struct {
	Name string
	Exec string
}

// NewAutostart targets the running executable.
func NewAutostart(name string) (*Autostart, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	return &Autostart{Name: name, Exec: execPath}, nil
}

// Set registers or removes the login entry. Removing a missing entry is not
// an error.
func (autostart *Autostart) Set(enabled bool) error {
	if strings.TrimSpace(autostart.Name) == "" {
		return fmt.Errorf("set autostart: app name is empty")
	}
	if !enabled {
		if err := autostart.disable(); err != nil {
			return fmt.Errorf("disable autostart: %w", err)
		}
		return nil
	}
	if autostart.Exec == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}
	if err := autostart.enable(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

// Enabled reports whether a login entry exists.
func (autostart *Autostart) Enabled() bool {
	return autostart.enabled()
}

// slug turns an app name into a file-system friendly identifier.
func slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return defaultSlug
	}
	return strings.Join(strings.Fields(name), "-")
}
