package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &AppConfig{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, c.SlogLevel())
		})
	}
}

func TestAppConfig_Paths(t *testing.T) {
	c := &AppConfig{DataDir: "/data"}
	assert.Equal(t, "/data/logs", c.LogDir())
	assert.Equal(t, "/data/courier.db", c.DatabaseFile())
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("COURIER_DATA_DIR", "/tmp/test-courier")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("COURIER_PROVIDERS_FILE", "")
	t.Setenv("COURIER_ASYNC_WORKERS", "5")
	t.Setenv("COURIER_ASYNC_QUEUE_SIZE", "")
	require.NoError(t, os.Unsetenv("COURIER_ASYNC_QUEUE_SIZE"))

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, c.Port)
	assert.Equal(t, "/tmp/test-courier", c.DataDir)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "/tmp/test-courier/providers.yaml", c.ProvidersFile)
	assert.Equal(t, 5, c.AsyncWorkers)
	assert.Equal(t, 100, c.AsyncQueueSize)
}

func TestLoad_Defaults(t *testing.T) {
	// t.Setenv registers the restore; the vars must be absent (not empty)
	// for envconfig defaults to apply.
	for _, key := range []string{"PORT", "LOG_LEVEL", "COURIER_PROVIDERS_FILE", "COURIER_ASYNC_WORKERS", "COURIER_ASYNC_QUEUE_SIZE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("COURIER_DATA_DIR", "/tmp/test-courier")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8980, c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 3, c.AsyncWorkers)
	assert.Equal(t, 100, c.AsyncQueueSize)
}
