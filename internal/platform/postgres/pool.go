// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

// Package postgres builds the pgx connection pool shared by every
// repository (catalog, ledger, statistics, accounts).
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosanz/mangashelfapi/internal/platform/constants"
)

const (
	defaultMaxConns   = 20
	defaultMinConns   = 2
	maxConnLifetime   = time.Hour
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

// Option adjusts the pool configuration before it is opened.
type Option func(*pgxpool.Config)

// WithMaxConns caps the pool. shelfctl and the tests need far fewer
// connections than the API server.
func WithMaxConns(n int32) Option {
	return func(config *pgxpool.Config) {
		config.MaxConns = n
		if config.MinConns > n {
			config.MinConns = n
		}
	}
}

// WithApplicationName tags the sessions in pg_stat_activity.
func WithApplicationName(name string) Option {
	return func(config *pgxpool.Config) {
		config.ConnConfig.RuntimeParams["application_name"] = name
	}
}

/*
NewPool opens and pings a PostgreSQL pool.

Every session runs in UTC with statement_timeout set to the request deadline,
so a runaway ledger or statistics query cannot outlive its HTTP request.

Parameters:
  - ctx: bounds the initial connection attempt
  - dsn: a libpq connection string or postgres:// URL
  - logger: receives the pool_connected event
  - options: applied in order after the defaults
*/
func NewPool(ctx context.Context, dsn string, logger *slog.Logger, options ...Option) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	config.MaxConns = defaultMaxConns
	config.MinConns = defaultMinConns
	config.MaxConnLifetime = maxConnLifetime
	config.MaxConnIdleTime = maxConnIdleTime
	config.HealthCheckPeriod = healthCheckPeriod
	config.ConnConfig.ConnectTimeout = connectTimeout

	runtime := config.ConnConfig.RuntimeParams
	runtime["timezone"] = "UTC"
	runtime["statement_timeout"] = strconv.FormatInt(constants.GlobalRequestTimeout.Milliseconds(), 10)
	if _, ok := runtime["application_name"]; !ok {
		runtime["application_name"] = constants.AppName
	}

	for _, option := range options {
		option(config)
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, config)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.String("application_name", config.ConnConfig.RuntimeParams["application_name"]),
		slog.Int("max_conns", int(config.MaxConns)),
	)
	return pool, nil
}

// Ping checks the pool within a short deadline. It backs /ready.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}
	return nil
}
