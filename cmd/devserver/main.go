// Copyright (c) 2026 Modhaven. All rights reserved.

// Command devserver is the entry point for the Modhaven gallery dev server:
// an in-memory stand-in for the production site API that the interaction
// engine develops and tests against.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis (optional, for restart-surviving sessions).
//  4. Seed users and wire domain services.
//  5. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/modhaven/modhaven/internal/api"
	"github.com/modhaven/modhaven/internal/platform/config"
	"github.com/modhaven/modhaven/internal/platform/constants"
	redisstore "github.com/modhaven/modhaven/internal/platform/redis"
	"github.com/modhaven/modhaven/internal/platform/sec"
	"github.com/modhaven/modhaven/internal/site/account"
	"github.com/modhaven/modhaven/internal/site/video"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Modhaven] devserver_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Session Store (Redis optional) ─────────────────────────────────
	var sessionStore account.SessionStore = account.NewMemorySessionStore()
	var checkCache func() error

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		sessionStore = account.NewRedisSessionStore(rdb)
		checkCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	}

	// ── 4. Token Service ──────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
	must(log, err, "initialize token service")

	// ── 5. Health Handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckCache: checkCache,
	}, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	userStore, err := account.NewMemoryUserStore(account.DefaultSeedUsers())
	must(log, err, "seed dev users")

	accountService := account.NewService(userStore, sessionStore, tokenService)
	accountHandler := account.NewHandler(accountService)

	videoStore := video.NewMemoryStore()
	videoService := video.NewService(videoStore, cfg.SubmissionDailyLimit, log)
	videoHandler := video.NewHandler(videoService)

	// Preload demo galleries so the engine has content on a fresh server.
	if cfg.IsDevelopment() {
		demoOwner, err := userStore.FindByUsername(startupCtx, "alice")
		must(log, err, "resolve demo submitter")
		must(log, video.SeedDemoVideos(startupCtx, videoStore, demoOwner.ID, demoOwner.Username), "seed demo videos")
		log.Info("demo_videos_seeded")
	}

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      accountHandler,
		Video:     videoHandler,
	}

	server := api.NewServer(cfg, log, accountService, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
