package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/lotto/internal/application"
	"github.com/JonMunkholm/lotto/internal/config"
	"github.com/JonMunkholm/lotto/internal/logging"
	"github.com/JonMunkholm/lotto/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	sel, err := config.LoadSelection(cfg.Generate.SelectionFile)
	if err != nil {
		slog.Error("failed to load selection file", "path", cfg.Generate.SelectionFile, "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"source_kind", cfg.Source.Kind,
		"selection_mode", sel.Mode,
		"presets", sel.PresetNames(),
		"order", cfg.Generate.Order,
		"random_source", cfg.Generate.RandomSource,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := application.New(ctx, cfg, sel)
	if err != nil {
		slog.Error("failed to initialise application", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	// A failed initial load is not fatal: the page shows the cause and
	// /api/reload or a file change can recover.
	if err := app.Load(ctx); err != nil {
		slog.Warn("initial table load failed", "source", app.Source.Name(), "error", err)
	}

	if err := app.Watch(ctx); err != nil {
		slog.Warn("table watcher not started", "error", err)
	}

	server := web.NewServer(app.Service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancel()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		app.Close()
		os.Exit(1)
	}
	slog.Info("server stopped")
}
