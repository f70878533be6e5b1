//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func (autostart *Autostart) entryPath() (string, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", slug(autostart.Name)+".desktop"), nil
}

func (autostart *Autostart) enable() error {
	path, err := autostart.entryPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}
	return os.WriteFile(path, []byte(desktopEntry(autostart.Name, autostart.Exec)), 0o644)
}

func (autostart *Autostart) disable() error {
	path, err := autostart.entryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (autostart *Autostart) enabled() bool {
	path, err := autostart.entryPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// desktopEntry follows the freedesktop autostart spec. Exec values with
// spaces are quoted; embedded quotes and backslashes are escaped.
func desktopEntry(name, execPath string) string {
	exec := execPath
	if strings.ContainsAny(exec, " \t\"\\") {
		exec = `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(exec) + `"`
	}
	var entry strings.Builder
	entry.WriteString("[Desktop Entry]\n")
	entry.WriteString("Type=Application\n")
	fmt.Fprintf(&entry, "Name=%s\n", name)
	entry.WriteString("Comment=Fight your tasks in the dungeon\n")
	fmt.Fprintf(&entry, "Exec=%s\n", exec)
	entry.WriteString("Terminal=false\n")
	entry.WriteString("Categories=Utility;\n")
	entry.WriteString("X-GNOME-Autostart-enabled=true\n")
	return entry.String()
}
