// Package config loads application settings from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mrfortune94/casinodog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL     = casinodog.DefaultBaseURL
	DefaultPingTimeout = casinodog.DefaultPingTimeout
	DefaultFakePort    = 8081
)

type Config struct {
	// DefaultBaseURL is used until the user stores an API base URL.
	DefaultBaseURL string `yaml:"default-base-url"`

	// DataDir holds persisted preferences and launch history.
	DataDir string `yaml:"data-dir"`

	// LogDir receives main.log when LoggingToFile is set.
	LogDir        string `yaml:"log-dir"`
	LoggingToFile bool   `yaml:"logging-to-file"`
	Debug         bool   `yaml:"debug"`

	// PingTimeout bounds the connectivity probe. RequestTimeout bounds every
	// other call; zero leaves them to the caller's context.
	PingTimeout    time.Duration `yaml:"ping-timeout"`
	RequestTimeout time.Duration `yaml:"request-timeout"`

	// DatabaseURL switches launch history to Postgres.
	DatabaseURL string `yaml:"database-url"`

	FakeServerPort      int    `yaml:"fake-server-port"`
	FakeServerAccessKey string `yaml:"fake-server-access-key"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DefaultBaseURL: DefaultBaseURL,
		DataDir:        defaultDataDir(),
		LogDir:         "logs",
		PingTimeout:    DefaultPingTimeout,
		FakeServerPort: DefaultFakePort,
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "casinodog")
	}
	return "data"
}

// Load reads path (when non-empty) over the defaults, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CASINODOG_BASE_URL"); v != "" {
		cfg.DefaultBaseURL = v
	}
	if v := os.Getenv("CASINODOG_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("CASINODOG_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v, err := strconv.ParseBool(os.Getenv("CASINODOG_DEBUG")); err == nil {
		cfg.Debug = v
	}
	if v, err := strconv.ParseBool(os.Getenv("CASINODOG_LOG_TO_FILE")); err == nil {
		cfg.LoggingToFile = v
	}
	if v, err := time.ParseDuration(os.Getenv("CASINODOG_PING_TIMEOUT")); err == nil && v > 0 {
		cfg.PingTimeout = v
	}
	if v, err := time.ParseDuration(os.Getenv("CASINODOG_REQUEST_TIMEOUT")); err == nil && v >= 0 {
		cfg.RequestTimeout = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	// Prefer PORT (Render, Fly.io, Railway, etc.) then CASINODOG_FAKE_PORT
	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			cfg.FakeServerPort = v
		}
	} else if p := os.Getenv("CASINODOG_FAKE_PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			cfg.FakeServerPort = v
		}
	}
	if v := os.Getenv("CASINODOG_FAKE_ACCESS_KEY"); v != "" {
		cfg.FakeServerAccessKey = v
	}
}

// Validate rejects settings no component can work with.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("config: data-dir must not be empty")
	}
	if c.PingTimeout <= 0 {
		return errors.New("config: ping-timeout must be positive")
	}
	if c.RequestTimeout < 0 {
		return errors.New("config: request-timeout must not be negative")
	}
	if c.FakeServerPort <= 0 || c.FakeServerPort > 65535 {
		return fmt.Errorf("config: invalid fake-server-port %d", c.FakeServerPort)
	}
	return nil
}
