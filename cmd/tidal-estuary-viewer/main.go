package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	httpapi "github.com/Tonypepproni/Tidal-Estuary/internal/api/http"
	"github.com/Tonypepproni/Tidal-Estuary/internal/backend"
	"github.com/Tonypepproni/Tidal-Estuary/internal/config"
	"github.com/Tonypepproni/Tidal-Estuary/internal/scheduler"
	"github.com/Tonypepproni/Tidal-Estuary/internal/surface"
	"github.com/Tonypepproni/Tidal-Estuary/internal/timeline"
)

func main() {
	// Load configuration (also reads .env when present).
	cfg, err := config.Load()
	if err != nil {
		slog.New(tint.NewHandler(os.Stderr, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: time.DateTime,
	}))
	slog.SetDefault(log)

	// Shared HTTP client for backend calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	client := backend.NewClient(httpClient, cfg.BackendURL, log)

	// Retained surface rendered by the HTTP layer.
	surf := surface.NewMemory()

	sched := scheduler.New(log)
	defer sched.Stop()

	viewer := timeline.NewViewer(client, surf, sched,
		timeline.WithLogger(log),
		timeline.WithWindowSize(cfg.ChartWindow),
		timeline.WithLocation(cfg.Location),
		timeline.WithPlayInterval(cfg.PlayInterval),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	viewer.Init(ctx)
	defer viewer.Stop()

	app := httpapi.NewApp()
	httpapi.RegisterRoutes(app, httpapi.NewHandler(viewer, surf, client, log))

	go func() {
		log.Info("listening", "port", cfg.Port, "backend", cfg.BackendURL)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}
