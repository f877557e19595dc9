// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package redis opens the go-redis client that stores refresh sessions.

Sessions are volatile by nature: each key carries the refresh TTL and Redis
expires it on its own. No catalog or collection data lives here.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gosanz/mangashelfapi/internal/platform/constants"
)

const (
	poolSize     = 10
	minIdleConns = 2
	dialTimeout  = 3 * time.Second
	ioTimeout    = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

/*
NewClient parses redisURL (redis:// or rediss://), applies the session
store's pool settings and pings the server before returning.

A URL that already sets pool_size or the timeouts keeps its own values.
*/
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	if options.PoolSize == 0 {
		options.PoolSize = poolSize
	}
	if options.MinIdleConns == 0 {
		options.MinIdleConns = minIdleConns
	}
	if options.DialTimeout == 0 {
		options.DialTimeout = dialTimeout
	}
	if options.ReadTimeout == 0 {
		options.ReadTimeout = ioTimeout
	}
	if options.WriteTimeout == 0 {
		options.WriteTimeout = ioTimeout
	}
	options.ClientName = constants.AppName

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)
	return client, nil
}

// Ping checks the server within a short deadline. It backs /ready.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
