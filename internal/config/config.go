// Package config loads cadence settings from defaults, an optional TOML
// file and CADENCE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/abhisek/cadence/internal/streak"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all cadence configuration.
type Config struct {
	// DBPath is the SQLite database file. Empty means the default data dir.
	DBPath string `toml:"db_path,omitempty"`

	// Timezone is an IANA zone name used to decide where a day starts.
	// Empty means the system local zone.
	Timezone string `toml:"timezone,omitempty"`

	// LogLevel is a zerolog level name. Default: "warn".
	LogLevel string `toml:"log_level,omitempty"`

	// DailyGoalMinutes is the engagement streak's daily goal. Default: 15.
	DailyGoalMinutes int `toml:"daily_goal_minutes"`

	// SnapshotKeep is how many streak snapshots survive pruning. Default: 5.
	SnapshotKeep int `toml:"snapshot_keep"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:         "warn",
		DailyGoalMinutes: streak.DefaultGoalMinutes,
		SnapshotKeep:     5,
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/cadence/config.toml, falling
// back to ~/.config/cadence/config.toml.
func DefaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "cadence", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "cadence", "config.toml")
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if strings.HasPrefix(cfg.DBPath, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.DBPath = filepath.Join(home, cfg.DBPath[2:])
		}
	}
	return cfg, nil
}

// ApplyEnv overrides fields from CADENCE_* environment variables.
func (c *Config) ApplyEnv() error {
	if p := os.Getenv("CADENCE_DB"); p != "" {
		c.DBPath = p
	}
	if tz := os.Getenv("CADENCE_TZ"); tz != "" {
		c.Timezone = tz
	}
	if l := os.Getenv("CADENCE_LOG_LEVEL"); l != "" {
		c.LogLevel = l
	}
	if g := os.Getenv("CADENCE_DAILY_GOAL"); g != "" {
		n, err := strconv.Atoi(g)
		if err != nil {
			return fmt.Errorf("%w: CADENCE_DAILY_GOAL=%q is not a number", ErrInvalidConfig, g)
		}
		c.DailyGoalMinutes = n
	}
	return nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if c.DailyGoalMinutes <= streak.HabitDailyMinutes {
		return fmt.Errorf("%w: daily_goal_minutes must be more than %d, got %d",
			ErrInvalidConfig, streak.HabitDailyMinutes, c.DailyGoalMinutes)
	}
	if c.SnapshotKeep < 1 {
		return fmt.Errorf("%w: snapshot_keep must be at least 1, got %d", ErrInvalidConfig, c.SnapshotKeep)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Location returns the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// Save writes the config as TOML, creating the directory if needed.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
