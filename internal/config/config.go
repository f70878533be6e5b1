// Package config resolves runtime options from flags, POMODUNGEON_*
// environment variables and an optional pomodungeon.yaml, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// AppName names the config directory and the single-instance lock.
	AppName   = "pomodungeon"
	EnvPrefix = "POMODUNGEON"

	KeyDataDir  = "data-dir"
	KeyDatabase = "db"
	KeyAssets   = "assets"
	KeyFPS      = "fps"
	KeyMemory   = "memory"
)

// Options are the resolved runtime options.
type Options struct {
	DataDir   string
	Database  string
	AssetsDir string
	FPS       int
	// InMemory keeps game state in memory only.
	InMemory bool
	// File is the config file that was read, if any.
	File string
}

// SettingsPath is the preferences file inside the data directory.
func (options Options) SettingsPath() string {
	return filepath.Join(options.DataDir, "settings.yaml")
}

// RegisterFlags adds the runtime flags to a flag set.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(KeyDataDir, "", "directory holding the database and settings")
	flags.String(KeyDatabase, "", "SQLite database path (default <data-dir>/pomodungeon.db)")
	flags.String(KeyAssets, "", "directory with sprite sheets and dungeon rooms")
	flags.Int(KeyFPS, 60, "dungeon frame rate")
	flags.Bool(KeyMemory, false, "keep game state in memory only")
}

// Load resolves options. configDir is the user config directory used when
// no data dir is given; flags may be nil.
func Load(flags *pflag.FlagSet, configDir string) (Options, error) {
	v := viper.New()
	v.SetDefault(KeyDataDir, filepath.Join(configDir, AppName))
	v.SetDefault(KeyAssets, "assets")
	v.SetDefault(KeyFPS, 60)
	v.SetDefault(KeyMemory, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Options{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetConfigName(AppName)
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString(KeyDataDir))
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Options{}, fmt.Errorf("read config: %w", err)
		}
	}

	options := Options{
		DataDir:   v.GetString(KeyDataDir),
		Database:  v.GetString(KeyDatabase),
		AssetsDir: v.GetString(KeyAssets),
		FPS:       v.GetInt(KeyFPS),
		InMemory:  v.GetBool(KeyMemory),
		File:      v.ConfigFileUsed(),
	}
	if options.Database == "" {
		options.Database = filepath.Join(options.DataDir, AppName+".db")
	}
	if options.FPS <= 0 || options.FPS > 240 {
		return Options{}, fmt.Errorf("fps %d out of range 1..240", options.FPS)
	}
	return options, nil
}
