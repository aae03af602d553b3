package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/onkofaze/internal/config"
	"github.com/JonMunkholm/onkofaze/internal/core"
	"github.com/JonMunkholm/onkofaze/internal/logging"
	"github.com/JonMunkholm/onkofaze/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	var source core.Source = core.DefaultSource()
	if !cfg.Document.UsesEmbeddedSchedule() {
		source = core.FileSource{Path: cfg.Document.Path, MaxSize: cfg.Document.MaxSize}
	}

	service := core.NewService(source)

	// A broken document at startup is served as an empty schedule until it is fixed.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := service.Reload(ctx); err != nil {
		slog.Warn("initial schedule load failed", "error", err, "user_message", core.FormatUserError(err))
	}

	if cfg.Document.Watch && !cfg.Document.UsesEmbeddedSchedule() {
		watcher, err := core.NewWatcher(service, cfg.Document.Path, cfg.Document.WatchDebounce)
		if err != nil {
			slog.Error("failed to create schedule watcher", "error", err)
			os.Exit(1)
		}
		defer watcher.Stop()
		if err := watcher.Start(ctx); err != nil {
			slog.Warn("schedule watcher disabled", "error", err)
		}
	}

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		slog.Error("server error", "error", err)
		stop()
		os.Exit(1)
	}
	<-shutdownDone
	slog.Info("server stopped")
}
