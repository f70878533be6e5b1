package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"pomodungeon/internal/ui/preferences"
)

type yamlSettings struct {
	FocusMinutes     int     `yaml:"focus_minutes"`
	BreakMinutes     int     `yaml:"break_minutes"`
	Pomodoro         bool    `yaml:"pomodoro"`
	Rain             bool    `yaml:"rain"`
	Lightning        bool    `yaml:"lightning"`
	IdleEnabled      bool    `yaml:"idle_enabled"`
	IdleAfterMinutes int     `yaml:"idle_after_minutes"`
	Sound            bool    `yaml:"sound"`
	SoundVolume      float64 `yaml:"sound_volume"`
	LaunchAtLogin    bool    `yaml:"launch_at_login"`
	WindowScale      int     `yaml:"window_scale"`
}

// LoadSettingsFile reads user preferences from YAML. A missing file yields
// the defaults.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes user preferences to YAML.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		FocusMinutes:     int(settings.FocusDuration / time.Minute),
		BreakMinutes:     int(settings.BreakDuration / time.Minute),
		Pomodoro:         settings.Pomodoro,
		Rain:             settings.Rain,
		Lightning:        settings.Lightning,
		IdleEnabled:      settings.IdleEnabled,
		IdleAfterMinutes: int(settings.IdleAfter / time.Minute),
		Sound:            settings.Sound,
		SoundVolume:      settings.SoundVolume,
		LaunchAtLogin:    settings.LaunchAtLogin,
		WindowScale:      settings.WindowScale,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.FocusMinutes > 0 {
		settings.FocusDuration = time.Duration(fileData.FocusMinutes) * time.Minute
	}
	if fileData.BreakMinutes > 0 {
		settings.BreakDuration = time.Duration(fileData.BreakMinutes) * time.Minute
	}
	if fileData.IdleAfterMinutes > 0 {
		settings.IdleAfter = time.Duration(fileData.IdleAfterMinutes) * time.Minute
	}
	if fileData.SoundVolume > 0 && fileData.SoundVolume <= 1 {
		settings.SoundVolume = fileData.SoundVolume
	}
	if fileData.WindowScale >= 1 && fileData.WindowScale <= 6 {
		settings.WindowScale = fileData.WindowScale
	}

	settings.Pomodoro = fileData.Pomodoro
	settings.Rain = fileData.Rain
	settings.Lightning = fileData.Lightning
	settings.IdleEnabled = fileData.IdleEnabled
	settings.Sound = fileData.Sound
	settings.LaunchAtLogin = fileData.LaunchAtLogin
}
