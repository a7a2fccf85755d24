// Package config loads the choreclock YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/frankb2024/Bad-kids-sub000/internal/constants"
)

type Config struct {
	DataDir   string          `yaml:"data_dir"`
	Timezone  string          `yaml:"timezone"`
	Debug     bool            `yaml:"debug"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Display   DisplayConfig   `yaml:"display"`
}

type SchedulerConfig struct {
	TickIntervalSec  int `yaml:"tick_interval_sec"`
	TriggerWindowSec int `yaml:"trigger_window_sec"`
	ExpiryGraceMin   int `yaml:"expiry_grace_min"`
}

type DisplayConfig struct {
	Enabled      bool   `yaml:"enabled"`
	LockfileDir  string `yaml:"lockfile_dir"`
}

// Load reads the config file at path, expanding a leading ~ and applying
// defaults for anything unset. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	path, err := ExpandHome(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if cfg.DataDir, err = ExpandHome(cfg.DataDir); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg := Config{
		DataDir:  "~/.local/share/choreclock",
		Timezone: "Local",
	}
	cfg.applyDefaults()
	if expanded, err := ExpandHome(cfg.DataDir); err == nil {
		cfg.DataDir = expanded
	}
	return cfg
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "~/.local/share/choreclock"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.Scheduler.TickIntervalSec <= 0 {
		c.Scheduler.TickIntervalSec = int(constants.DefaultTickInterval / time.Second)
	}
	if c.Scheduler.TriggerWindowSec <= 0 {
		c.Scheduler.TriggerWindowSec = constants.DefaultTriggerWindowSec
	}
	if c.Scheduler.ExpiryGraceMin <= 0 {
		c.Scheduler.ExpiryGraceMin = constants.DefaultExpiryGraceMin
	}
}

// TickInterval returns the poll interval as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.Scheduler.TickIntervalSec) * time.Second
}

// TriggerWindow returns the symmetric due-now tolerance as a duration.
func (c Config) TriggerWindow() time.Duration {
	return time.Duration(c.Scheduler.TriggerWindowSec) * time.Second
}

// ExpiryGrace returns how far past due a pending task may be before it is
// silently expired instead of fired.
func (c Config) ExpiryGrace() time.Duration {
	return time.Duration(c.Scheduler.ExpiryGraceMin) * time.Minute
}

// SchedulePath returns the schedule file location.
func (c Config) SchedulePath() string {
	return filepath.Join(c.DataDir, constants.ScheduleFileName)
}

// RotationStatePath returns the rotation state file location.
func (c Config) RotationStatePath() string {
	return filepath.Join(c.DataDir, constants.RotationStateFileName)
}

// TaskLogPath returns the task log file location.
func (c Config) TaskLogPath() string {
	return filepath.Join(c.DataDir, constants.TaskLogFileName)
}

// LockPath returns the process lock file location.
func (c Config) LockPath() string {
	return filepath.Join(c.DataDir, constants.LockFileName)
}

// DisplayLockfilePath returns where the display shell advertises itself.
func (c Config) DisplayLockfilePath() string {
	dir := c.Display.LockfileDir
	if dir == "" {
		dir = c.DataDir
	}
	return filepath.Join(dir, constants.NotifierLockfileName)
}

// ExpandHome expands a leading ~/ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
