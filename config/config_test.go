package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Tracking.Interval != 3*time.Second {
		t.Errorf("expected 3s interval, got %v", cfg.Tracking.Interval)
	}
	if cfg.Storage.Directory != "static" || cfg.Storage.Visitors != "memory" || cfg.Storage.Trail != "memory" {
		t.Errorf("unexpected storage defaults %+v", cfg.Storage)
	}
	if cfg.Gate.EntryPath != "/enter" {
		t.Errorf("expected /enter, got %q", cfg.Gate.EntryPath)
	}
}

func TestLoadFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9000
tracking:
  interval: 500ms
storage:
  directory: postgres
  visitors: redis
db:
  host: db
  dbname: services
`)
	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9000 || cfg.Tracking.Interval != 500*time.Millisecond {
		t.Errorf("unexpected server/tracking %+v %+v", cfg.Server, cfg.Tracking)
	}
	if cfg.DB.DSN() != "postgres://postgres:postgres@db:5432/services?sslmode=disable" {
		t.Errorf("unexpected DSN %q", cfg.DB.DSN())
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("expected default redis addr, got %q", cfg.Redis.Addr)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("STORAGE_TRAIL", "mongo")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("expected port 9191, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Trail != "mongo" {
		t.Errorf("expected mongo trail, got %q", cfg.Storage.Trail)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown directory", body: "storage:\n  directory: sqlite\n"},
		{name: "negative port", body: "server:\n  port: -1\n"},
		{name: "relative entry path", body: "gate:\n  entry_path: enter\n"},
		{name: "zero interval", body: "tracking:\n  interval: 0s\n"},
		{name: "mongo without uri", body: "storage:\n  trail: mongo\nmongo:\n  uri: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing explicit file")
	}
}
