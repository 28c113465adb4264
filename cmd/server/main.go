// Package main is the entry point for the Hizuke server. It loads
// configuration, connects to Redis when configured, wires the quiz plugin
// and serves HTTP until interrupted.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/hizuke/internal/app"
	"github.com/keyxmakerx/hizuke/internal/config"
	"github.com/keyxmakerx/hizuke/internal/database"
)

// shutdownTimeout is how long in-flight requests may run after a signal.
const shutdownTimeout = 10 * time.Second

func main() {
	// --- Load Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	// Configure structured logging based on environment and LOG_LEVEL.
	setupLogging(cfg)

	// Cancelled on SIGINT/SIGTERM; also bounds the initial Redis ping.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Connect to Redis ---
	// Redis is optional in development. Without it, quiz sessions live in
	// process memory and are lost on restart.
	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		rdb, err = database.NewRedis(ctx, cfg.Redis)
		if err != nil {
			slog.Error("failed to connect to Redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer rdb.Close()
		slog.Info("connected to Redis")
	} else {
		slog.Warn("REDIS_URL not set, keeping quiz sessions in memory")
	}

	// --- Create Application ---
	application := app.New(cfg, rdb)

	// Register the quiz pages, JSON API and health check.
	application.RegisterRoutes()

	// --- Start Server ---
	if err := serve(ctx, application.Start, application.Echo.Shutdown); err != nil {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// serve runs start until ctx is cancelled, then calls shutdown. Echo's Start
// returns http.ErrServerClosed as soon as Shutdown begins, while in-flight
// requests are still draining, so serve also waits for shutdown itself to
// return. Only then may the caller close Redis.
func serve(ctx context.Context, start func() error, shutdown func(context.Context) error) error {
	// --- Graceful Shutdown ---
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		slog.Info("shutting down server...")

		// Give in-flight requests shutdownTimeout to complete.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("server forced shutdown", slog.Any("error", err))
		}
	}()

	// ErrServerClosed is the expected result of a graceful shutdown.
	if err := start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-drained
	return nil
}

// setupLogging configures the global slog logger. Development uses text
// format for readability; production uses JSON for log aggregation.
func setupLogging(cfg *config.Config) {
	level, err := cfg.SlogLevel()
	if err != nil {
		// config.Load already rejects a bad LOG_LEVEL; this covers a Config
		// built by hand.
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
