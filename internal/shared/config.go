package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	API      APIConfig      `toml:"api"`
	Board    BoardConfig    `toml:"board"`
	Log      LogConfig      `toml:"log"`
	User     UserConfig     `toml:"user"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// APIConfig controls the simulated latency and throttling of the pipeline API.
type APIConfig struct {
	ListLatencyMS     int     `toml:"list_latency_ms"`
	DetailLatencyMS   int     `toml:"detail_latency_ms"`
	StageLatencyMS    int     `toml:"stage_latency_ms"`
	StagesLatencyMS   int     `toml:"stages_latency_ms"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// BoardConfig contains pipeline board settings.
type BoardConfig struct {
	DefaultKind   string `toml:"default_kind"`
	DropTolerance int    `toml:"drop_tolerance"`
	ToastSeconds  int    `toml:"toast_seconds"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// UserConfig identifies the acting user recorded in the audit trail.
type UserConfig struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Latencies holds the per-call simulated latencies as durations.
type Latencies struct {
	List   time.Duration
	Detail time.Duration
	Stage  time.Duration
	Stages time.Duration
}

// Latencies converts the millisecond settings into [time.Duration] values.
func (c APIConfig) Latencies() Latencies {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return Latencies{
		List:   ms(c.ListLatencyMS),
		Detail: ms(c.DetailLatencyMS),
		Stage:  ms(c.StageLatencyMS),
		Stages: ms(c.StagesLatencyMS),
	}
}

// ToastDuration returns how long notifications stay on screen.
func (c BoardConfig) ToastDuration() time.Duration {
	if c.ToastSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.ToastSeconds) * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks settings that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is empty", ErrInvalidConfig)
	}
	switch c.Board.DefaultKind {
	case "vacancy", "candidate":
	default:
		return fmt.Errorf("%w: board.default_kind must be vacancy or candidate, got %q", ErrInvalidConfig, c.Board.DefaultKind)
	}
	if c.API.RequestsPerSecond < 0 || c.API.Burst < 0 {
		return fmt.Errorf("%w: api throttling values must not be negative", ErrInvalidConfig)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ResolveConfig loads the config at path when it exists and falls back to defaults otherwise.
func ResolveConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
