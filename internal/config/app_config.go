// Package config loads application configuration from environment
// variables and the provider registry YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all application-level configuration loaded from environment variables.
type AppConfig struct {
	// Port is the HTTP server port. Defaults to 8980.
	Port int `envconfig:"PORT" default:"8980"`

	// DataDir is the root data directory. Defaults to ~/.courier.
	DataDir string `envconfig:"COURIER_DATA_DIR"`

	// LogLevel sets the minimum log level (debug, info, warn, error). Defaults to info.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// ProvidersFile is the path to the provider registry YAML file.
	// Defaults to <DataDir>/providers.yaml.
	ProvidersFile string `envconfig:"COURIER_PROVIDERS_FILE"`

	// AsyncWorkers is the number of goroutines processing asynchronous sends.
	AsyncWorkers int `envconfig:"COURIER_ASYNC_WORKERS" default:"3"`

	// AsyncQueueSize is the buffer size of the asynchronous send queue.
	AsyncQueueSize int `envconfig:"COURIER_ASYNC_QUEUE_SIZE" default:"100"`
}

// Load reads AppConfig from environment variables using envconfig.
// DataDir defaults to ~/.courier if not set.
func Load() (*AppConfig, error) {
	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		c.DataDir = filepath.Join(home, ".courier")
	}
	if c.ProvidersFile == "" {
		c.ProvidersFile = filepath.Join(c.DataDir, "providers.yaml")
	}
	return &c, nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogDir returns the path to the log directory (~/.courier/logs).
func (c *AppConfig) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// DatabaseFile returns the path to the SQLite delivery log database.
func (c *AppConfig) DatabaseFile() string {
	return filepath.Join(c.DataDir, "courier.db")
}
