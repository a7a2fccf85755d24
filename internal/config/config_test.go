package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TickInterval() != time.Second {
		t.Errorf("TickInterval = %v, want 1s", cfg.TickInterval())
	}
	if cfg.TriggerWindow() != 20*time.Second {
		t.Errorf("TriggerWindow = %v, want 20s", cfg.TriggerWindow())
	}
	if cfg.ExpiryGrace() != time.Hour {
		t.Errorf("ExpiryGrace = %v, want 1h", cfg.ExpiryGrace())
	}
	if cfg.DataDir == "" {
		t.Error("DataDir should default to a non-empty path")
	}
}

func TestLoad_ParsesAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choreclock.yaml")
	content := "data_dir: /var/lib/choreclock\ntimezone: America/Chicago\nscheduler:\n  trigger_window_sec: 45\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "/var/lib/choreclock" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Timezone != "America/Chicago" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.TriggerWindow() != 45*time.Second {
		t.Errorf("TriggerWindow = %v, want 45s", cfg.TriggerWindow())
	}
	// Unset fields still get defaults
	if cfg.ExpiryGrace() != time.Hour {
		t.Errorf("ExpiryGrace = %v, want 1h", cfg.ExpiryGrace())
	}

	if got := cfg.SchedulePath(); got != "/var/lib/choreclock/schedule.csv" {
		t.Errorf("SchedulePath = %q", got)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choreclock.yaml")
	if err := os.WriteFile(path, []byte("data_dir: [unclosed\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected malformed YAML to error")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir in test environment")
	}
	got, err := ExpandHome("~/data")
	if err != nil {
		t.Fatalf("ExpandHome failed: %v", err)
	}
	if got != filepath.Join(home, "data") {
		t.Errorf("ExpandHome = %q", got)
	}

	got, _ = ExpandHome("/absolute/path")
	if got != "/absolute/path" {
		t.Errorf("absolute path changed: %q", got)
	}
}
