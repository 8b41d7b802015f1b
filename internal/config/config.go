// Package config loads taskdeck settings from ~/.taskdeck/config.yaml with
// TASKDECK_* environment overrides.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/taskdeck/taskdeck/internal/errs"
)

// Config is the complete taskdeck configuration.
type Config struct {
	// DataDir holds the cache database and logs. Defaults to ~/.taskdeck.
	DataDir string `mapstructure:"data_dir"`
	// APIURL is the base URL of the task API. Empty disables the remote
	// hydration attempt entirely.
	APIURL string `mapstructure:"api_url"`
	// User is the display name used in the single-user stats snapshot.
	User string `mapstructure:"user"`
	// WeeklyGoal is the default weekly completion target.
	WeeklyGoal int `mapstructure:"weekly_goal"`
	// StatsWeeks is the default window for the weekly series.
	StatsWeeks int `mapstructure:"stats_weeks"`
	// Animations toggles TUI shine effects.
	Animations bool `mapstructure:"animations"`
}

// Load reads the config file if present and applies env overrides. A missing
// config file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errs.Wrap(err, "failed to resolve home directory")
	}
	defaultDir := filepath.Join(home, ".taskdeck")

	v.SetDefault("data_dir", defaultDir)
	v.SetDefault("api_url", "http://127.0.0.1:8000")
	v.SetDefault("user", "Me")
	v.SetDefault("weekly_goal", 7)
	v.SetDefault("stats_weeks", 8)
	v.SetDefault("animations", true)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultDir)

	v.SetEnvPrefix("TASKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errs.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errs.Wrap(err, "failed to parse config")
	}
	return &cfg, nil
}

// CachePath is the SQLite cache file inside the data dir.
func (c *Config) CachePath() string {
	return filepath.Join(c.DataDir, "taskdeck.db")
}

// LogPath is the rotating log file inside the data dir.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "logs", "taskdeck.log")
}
