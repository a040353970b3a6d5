package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"BACKEND_URL", "HTTP_TIMEOUT", "PLAY_INTERVAL", "CHART_WINDOW", "DISPLAY_TZ", "LOG_LEVEL", "PORT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.BackendURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.PlayInterval)
	assert.Equal(t, 200, cfg.ChartWindow)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
	assert.NotNil(t, cfg.Location)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://estuary.example.org")
	t.Setenv("HTTP_TIMEOUT", "PT30S")
	t.Setenv("PLAY_INTERVAL", "250ms")
	t.Setenv("CHART_WINDOW", "50")
	t.Setenv("DISPLAY_TZ", "UTC")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://estuary.example.org", cfg.BackendURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.PlayInterval)
	assert.Equal(t, 50, cfg.ChartWindow)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "9000", cfg.Port)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"BACKEND_URL":   "not a url",
		"HTTP_TIMEOUT":  "soon",
		"PLAY_INTERVAL": "-1s",
		"CHART_WINDOW":  "-5",
		"DISPLAY_TZ":    "Mars/Olympus",
		"LOG_LEVEL":     "loud",
		"PORT":          "http",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
