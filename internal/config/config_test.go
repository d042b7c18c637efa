package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Service.Name != "mediafetchd" {
		t.Errorf("Expected service name 'mediafetchd', got '%s'", cfg.Service.Name)
	}
	if cfg.Service.Port != 5000 {
		t.Errorf("Expected port 5000, got %d", cfg.Service.Port)
	}
	if cfg.Downloads.MaxCollectionSize != 100 {
		t.Errorf("Expected max collection size 100, got %d", cfg.Downloads.MaxCollectionSize)
	}
	if cfg.Downloads.SocketTimeout != 30*time.Second {
		t.Errorf("Expected 30s socket timeout, got %v", cfg.Downloads.SocketTimeout)
	}
	if cfg.Retention.Delay != 60*time.Second {
		t.Errorf("Expected 60s retention, got %v", cfg.Retention.Delay)
	}
	if len(cfg.Downloads.AllowedFormats) != 2 {
		t.Errorf("Expected mp3+mp4 allowed, got %v", cfg.Downloads.AllowedFormats)
	}
	if cfg.Downloads.AltRoot != cfg.Downloads.DefaultRoot {
		t.Errorf("Expected alt root to fall back to default root")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
service:
  port: 9090
downloads:
  default_root: /srv/media
  max_collection_size: 25
retention:
  delay: 5m
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Service.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Service.Port)
	}
	if cfg.Downloads.DefaultRoot != "/srv/media" {
		t.Errorf("Expected default root '/srv/media', got '%s'", cfg.Downloads.DefaultRoot)
	}
	if cfg.Downloads.MaxCollectionSize != 25 {
		t.Errorf("Expected max collection size 25, got %d", cfg.Downloads.MaxCollectionSize)
	}
	if cfg.Retention.Delay != 5*time.Minute {
		t.Errorf("Expected 5m retention, got %v", cfg.Retention.Delay)
	}
	// Unset sections still get defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default log level, got '%s'", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MEDIAFETCH_PORT", "7070")
	t.Setenv("MEDIAFETCH_DEFAULT_ROOT", "/data/downloads")
	t.Setenv("MEDIAFETCH_RETENTION", "90s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Service.Port != 7070 {
		t.Errorf("Expected env port 7070, got %d", cfg.Service.Port)
	}
	if cfg.Downloads.DefaultRoot != "/data/downloads" {
		t.Errorf("Expected env root, got '%s'", cfg.Downloads.DefaultRoot)
	}
	if cfg.Retention.Delay != 90*time.Second {
		t.Errorf("Expected 90s retention, got %v", cfg.Retention.Delay)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected debug level, got '%s'", cfg.Logging.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestConfig_Root(t *testing.T) {
	cfg, _ := Load("")

	if _, ok := cfg.Root(LocationDefault); !ok {
		t.Error("Expected default location to resolve")
	}
	if _, ok := cfg.Root("network"); ok {
		t.Error("Expected unknown location to not resolve")
	}
}

func TestConfig_EnsureRoots(t *testing.T) {
	dir := t.TempDir()
	cfg, _ := Load("")
	cfg.Downloads.DefaultRoot = filepath.Join(dir, "a", "b")
	cfg.Downloads.AltRoot = filepath.Join(dir, "c")

	if err := cfg.EnsureRoots(); err != nil {
		t.Fatalf("EnsureRoots() error: %v", err)
	}

	for _, p := range []string{cfg.Downloads.DefaultRoot, cfg.Downloads.AltRoot} {
		if info, err := os.Stat(p); err != nil || !info.IsDir() {
			t.Errorf("Expected directory %s to exist", p)
		}
	}
}
