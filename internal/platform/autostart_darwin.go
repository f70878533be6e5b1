//go:build darwin

package platform

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func (autostart *Autostart) label() string {
	return "com.pomodungeon." + slug(autostart.Name)
}

func (autostart *Autostart) plistPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents", autostart.label()+".plist"), nil
}

func (autostart *Autostart) enable() error {
	path, err := autostart.plistPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create LaunchAgents dir: %w", err)
	}
	return os.WriteFile(path, []byte(launchAgent(autostart.label(), autostart.Exec)), 0o644)
}

func (autostart *Autostart) disable() error {
	path, err := autostart.plistPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (autostart *Autostart) enabled() bool {
	path, err := autostart.plistPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func launchAgent(label, execPath string) string {
	var plist strings.Builder
	plist.WriteString(xml.Header)
	plist.WriteString(`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n")
	plist.WriteString("<plist version=\"1.0\">\n<dict>\n")
	writeKeyString(&plist, "Label", label)
	plist.WriteString("\t<key>ProgramArguments</key>\n\t<array>\n\t\t<string>")
	_ = xml.EscapeText(&plist, []byte(execPath))
	plist.WriteString("</string>\n\t</array>\n")
	plist.WriteString("\t<key>RunAtLoad</key>\n\t<true/>\n")
	writeKeyString(&plist, "ProcessType", "Interactive")
	plist.WriteString("</dict>\n</plist>\n")
	return plist.String()
}

func writeKeyString(plist *strings.Builder, key, value string) {
	fmt.Fprintf(plist, "\t<key>%s</key>\n\t<string>", key)
	_ = xml.EscapeText(plist, []byte(value))
	plist.WriteString("</string>\n")
}
