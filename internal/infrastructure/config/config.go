package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Storage   StorageConfig
	Workspace WorkspaceConfig
	Songs     SongsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	Origins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"memory"`
	Path   string `envconfig:"STORAGE_PATH" default:"deskshell.db"`
}

// WorkspaceConfig tunes per-visitor workspaces.
type WorkspaceConfig struct {
	PIN             string        `envconfig:"DESKSHELL_PIN" default:"129191"`
	ResetOnLogout   bool          `envconfig:"RESET_ON_LOGOUT" default:"false"`
	IdleTTL         time.Duration `envconfig:"WORKSPACE_IDLE_TTL" default:"30m"`
	JanitorInterval time.Duration `envconfig:"WORKSPACE_JANITOR_INTERVAL" default:"1m"`
	TickInterval    time.Duration `envconfig:"SCHEDULER_TICK" default:"50ms"`
}

// SongsConfig points at an optional remote song catalog.
type SongsConfig struct {
	URL        string        `envconfig:"SONGS_URL"`
	Timeout    time.Duration `envconfig:"SONGS_TIMEOUT" default:"5s"`
	MaxRetries int           `envconfig:"SONGS_MAX_RETRIES" default:"2"`
	Refresh    time.Duration `envconfig:"SONGS_REFRESH" default:"10m"`
}

// Storage drivers
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads a flat TOML file keyed by environment variable names and
// then loads as Load does. Variables already set in the environment win over
// the file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var values map[string]any
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	for key, value := range values {
		key = strings.ToUpper(key)
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, envValue(value)); err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", key, err)
		}
	}
	return Load()
}

func envValue(v any) string {
	switch v := v.(type) {
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ",")
	case time.Duration:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Workspace.PIN == "" {
		return fmt.Errorf("workspace pin must not be empty")
	}
	if c.Workspace.TickInterval <= 0 {
		return fmt.Errorf("scheduler tick must be positive")
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		CORS: CORSConfig{
			Origins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Storage: StorageConfig{
			Driver: DriverMemory,
			Path:   "deskshell.db",
		},
		Workspace: WorkspaceConfig{
			PIN:             "129191",
			IdleTTL:         30 * time.Minute,
			JanitorInterval: time.Minute,
			TickInterval:    50 * time.Millisecond,
		},
		Songs: SongsConfig{
			Timeout:    5 * time.Second,
			MaxRetries: 2,
			Refresh:    10 * time.Minute,
		},
	}
}
