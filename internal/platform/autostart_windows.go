//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const runKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func (autostart *Autostart) enable() error {
	command := `"` + strings.Trim(autostart.Exec, `"`) + `"`
	return reg("add", runKey, "/v", autostart.Name, "/t", "REG_SZ", "/d", command, "/f")
}

func (autostart *Autostart) disable() error {
	if !autostart.enabled() {
		return nil
	}
	return reg("delete", runKey, "/v", autostart.Name, "/f")
}

func (autostart *Autostart) enabled() bool {
	return exec.Command("reg", "query", runKey, "/v", autostart.Name).Run() == nil
}

func reg(args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("reg %s: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}
