// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

// Command api is the entry point for the MangaShelf HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire repositories, services and handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/gosanz/mangashelfapi/internal/api"
	"github.com/gosanz/mangashelfapi/internal/collection"
	"github.com/gosanz/mangashelfapi/internal/core/catalog"
	"github.com/gosanz/mangashelfapi/internal/platform/config"
	"github.com/gosanz/mangashelfapi/internal/platform/constants"
	"github.com/gosanz/mangashelfapi/internal/platform/logger"
	"github.com/gosanz/mangashelfapi/internal/platform/migration"
	pgstore "github.com/gosanz/mangashelfapi/internal/platform/postgres"
	redisstore "github.com/gosanz/mangashelfapi/internal/platform/redis"
	"github.com/gosanz/mangashelfapi/internal/platform/sec"
	"github.com/gosanz/mangashelfapi/internal/stats"
	"github.com/gosanz/mangashelfapi/internal/users/account"
	"github.com/gosanz/mangashelfapi/internal/users/auth"
	"github.com/gosanz/mangashelfapi/internal/users/oauth"
)

const oauthKeyFetchTimeout = 10 * time.Second

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := logger.New(os.Stdout, false)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = logger.New(os.Stdout, true)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, log), "run migrations")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, cfg.AccessTokenTTL)
	must(log, err, "initialize token service")

	catalogService := catalog.NewService(
		catalog.NewPublisherRepository(pool),
		catalog.NewSeriesRepository(pool),
		catalog.NewVolumeRepository(pool),
		log,
	)
	collectionService := collection.NewService(collection.NewRepository(pool), catalogService, log, nil)
	statsService := stats.NewService(stats.NewRepository(pool))

	sessionRepository := auth.NewSessionRepository(rdb)
	accountService := account.NewService(account.NewRepository(pool), sessionRepository, log, nil)

	authService := auth.NewService(auth.NewUserRepository(pool), sessionRepository, tokenService, cfg.RefreshTokenTTL, log)
	authService.SetRestorer(accountService)

	oauthClient := &http.Client{Timeout: oauthKeyFetchTimeout}
	if cfg.GoogleClientID != "" {
		authService.RegisterProvider(auth.ProviderGoogle, oauth.NewGoogleVerifier(cfg.GoogleClientID, oauthClient))
	}
	if cfg.AppleClientID != "" {
		authService.RegisterProvider(auth.ProviderApple, oauth.NewAppleVerifier(cfg.AppleClientID, oauthClient))
	}

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log,
		api.Guards{Verifier: tokenService, Active: accountService},
		api.Handlers{
			Liveness:   liveness,
			Readiness:  readiness,
			Auth:       auth.NewHandler(authService),
			Account:    account.NewHandler(accountService),
			Catalog:    catalog.NewHandler(catalogService),
			Collection: collection.NewHandler(collectionService),
			Stats:      stats.NewHandler(statsService),
		},
	)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("server_shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// must logs a structured fatal error and terminates the process if err is
// non-nil. Only startup wiring uses it.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failed",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
