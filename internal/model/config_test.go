package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.DatabasePath == "" {
		t.Error("default DatabasePath should not be empty")
	}
	if !cfg.Reminders.Enabled {
		t.Error("reminders should default to enabled")
	}
	if cfg.Reminders.TickSec != 30 {
		t.Errorf("TickSec = %d, want default 30", cfg.Reminders.TickSec)
	}
	if cfg.Display.Theme != "default" {
		t.Errorf("Theme = %q, want %q", cfg.Display.Theme, "default")
	}
}

func TestLoadConfigReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`database_path: /tmp/meds.db
display:
  clock_24: true
reminders:
  enabled: false
  tick_sec: 5
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.DatabasePath != "/tmp/meds.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "/tmp/meds.db")
	}
	if !cfg.Display.Clock24 {
		t.Error("Clock24 should be true")
	}
	if cfg.Reminders.Enabled {
		t.Error("reminders should be disabled")
	}
	if cfg.Reminders.TickSec != 5 {
		t.Errorf("TickSec = %d, want 5", cfg.Reminders.TickSec)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	in := defaultAppConfig()
	in.DatabasePath = "/tmp/rt.db"
	in.Reminders.TickSec = 60

	if err := SaveConfig(path, in); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	out, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if out.DatabasePath != "/tmp/rt.db" {
		t.Errorf("DatabasePath = %q, want %q", out.DatabasePath, "/tmp/rt.db")
	}
	if out.Reminders.TickSec != 60 {
		t.Errorf("TickSec = %d, want 60", out.Reminders.TickSec)
	}
}

func TestLoadConfigClampsTick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("reminders:\n  tick_sec: -1\n"), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Reminders.TickSec != 30 {
		t.Errorf("TickSec = %d, want clamped 30", cfg.Reminders.TickSec)
	}
}
