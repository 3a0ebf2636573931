package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./recruitflow.db" {
			t.Errorf("expected database path ./recruitflow.db, got %s", config.Database.Path)
		}

		if config.Board.DefaultKind != "candidate" {
			t.Errorf("expected default kind candidate, got %s", config.Board.DefaultKind)
		}

		if got := config.API.Latencies().List; got != 500*time.Millisecond {
			t.Errorf("expected list latency 500ms, got %v", got)
		}

		if config.User.Name != "John Doe" {
			t.Errorf("expected user John Doe, got %s", config.User.Name)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[api]
stage_latency_ms = 10

[board]
default_kind = "vacancy"
toast_seconds = 0
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Board.DefaultKind != "vacancy" {
			t.Errorf("expected default kind vacancy, got %s", config.Board.DefaultKind)
		}

		if got := config.API.Latencies().Stage; got != 10*time.Millisecond {
			t.Errorf("expected stage latency 10ms, got %v", got)
		}

		if got := config.API.Latencies().Detail; got != 300*time.Millisecond {
			t.Errorf("missing keys should keep defaults, got detail latency %v", got)
		}

		if got := config.Board.ToastDuration(); got != 3*time.Second {
			t.Errorf("expected fallback toast duration, got %v", got)
		}
	})

	t.Run("LoadConfig rejects unknown kind", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[board]\ndefault_kind = \"company\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("ResolveConfig falls back to defaults", func(t *testing.T) {
		config, err := ResolveConfig(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Database.Path != "./recruitflow.db" {
			t.Errorf("expected default config, got %s", config.Database.Path)
		}
	})
}
