package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sosodev/duration"

	"github.com/Tonypepproni/Tidal-Estuary/internal/timeline"
)

var validate = validator.New()

type AppConfig struct {
	// BackendURL serves /data and /site-info.
	BackendURL string `validate:"required,url"`

	// HTTPTimeout bounds each backend request.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// PlayInterval is the play-mode advance period.
	PlayInterval time.Duration `validate:"gt=0"`

	// ChartWindow is the number of readings plotted per chart.
	ChartWindow int `validate:"gt=0"`

	// Location is used for time labels.
	Location *time.Location `validate:"required"`

	LogLevel slog.Level
	Port     string `validate:"required,numeric"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	cfg := &AppConfig{}

	cfg.BackendURL = strings.TrimSpace(getenvDefault("BACKEND_URL", "http://127.0.0.1:5000"))

	var err error
	if cfg.HTTPTimeout, err = parseDuration(getenvDefault("HTTP_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if cfg.PlayInterval, err = parseDuration(getenvDefault("PLAY_INTERVAL", timeline.DefaultPlayInterval.String())); err != nil {
		return nil, fmt.Errorf("invalid PLAY_INTERVAL: %w", err)
	}

	cfg.ChartWindow = getenvInt("CHART_WINDOW", timeline.DefaultWindowSize)

	tz := getenvDefault("DISPLAY_TZ", "Local")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TZ: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getenvDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// parseDuration accepts Go durations ("100ms") and ISO-8601 durations ("PT0.1S").
func parseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	d, err := duration.Parse(s)
	if err != nil {
		return 0, err
	}
	return d.ToTimeDuration(), nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
