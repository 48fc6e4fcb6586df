// Package config loads the process-level configuration file: where the
// database and log directory live, how often the scheduler polls, and the
// default conflict strategy. Uses YAML (github.com/goccy/go-yaml) rather
// than a hand-rolled INI/section parser.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/CodeCraftgenz/deskcraft/internal/types"
)

// Config is the root of config.yaml.
type Config struct {
	// DatabasePath is where the SQLite database lives. Relative paths are
	// resolved against ConfigDir.
	DatabasePath string `yaml:"database_path"`

	// LogDir is where deskcraft.log is written. Relative paths are
	// resolved against ConfigDir.
	LogDir string `yaml:"log_dir"`

	// NoLogs disables file logging, writing only to stdout/stderr.
	NoLogs bool `yaml:"no_logs"`

	// SchedulerPollInterval is how often the scheduler checks for due
	// schedules. Zero falls back to the 30s default.
	SchedulerPollInterval time.Duration `yaml:"scheduler_poll_interval"`

	// DefaultConflictStrategy seeds the settings table's conflict_strategy
	// row on first run; it has no effect once that row already exists.
	DefaultConflictStrategy types.ConflictStrategy `yaml:"default_conflict_strategy"`

	// MoveRetries is how many times the executor retries a failed
	// copy/move before giving up on that item.
	MoveRetries int `yaml:"move_retries"`
}

// defaultPollInterval is the scheduler's steady-state tick.
const defaultPollInterval = 30 * time.Second

// defaultMoveRetries is how many times a failed copy/move is retried
// before the executor gives up on that item.
const defaultMoveRetries = 3

// Default returns the configuration used when no config.yaml exists yet.
func Default() Config {
	return Config{
		DatabasePath:            "deskcraft.db",
		LogDir:                  "logs",
		SchedulerPollInterval:   defaultPollInterval,
		DefaultConflictStrategy: types.DefaultConflict,
		MoveRetries:             defaultMoveRetries,
	}
}

// Load reads config.yaml from configDir, falling back to Default() (and
// writing it out) when the file doesn't exist yet, then resolves relative
// paths against configDir.
func Load(configDir string) (Config, error) {
	path := filepath.Join(configDir, "config.yaml")

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		if writeErr := write(path, cfg); writeErr != nil {
			return Config{}, fmt.Errorf("write default config.yaml: %w", writeErr)
		}
		return resolve(cfg, configDir), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config.yaml: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config.yaml: %w", err)
	}

	return resolve(cfg, configDir), nil
}

func resolve(cfg Config, configDir string) Config {
	if !filepath.IsAbs(cfg.DatabasePath) {
		cfg.DatabasePath = filepath.Join(configDir, cfg.DatabasePath)
	}
	if !filepath.IsAbs(cfg.LogDir) {
		cfg.LogDir = filepath.Join(configDir, cfg.LogDir)
	}
	if cfg.SchedulerPollInterval <= 0 {
		cfg.SchedulerPollInterval = defaultPollInterval
	}
	if cfg.DefaultConflictStrategy == "" {
		cfg.DefaultConflictStrategy = types.DefaultConflict
	}
	if cfg.MoveRetries <= 0 {
		cfg.MoveRetries = defaultMoveRetries
	}
	return cfg
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
