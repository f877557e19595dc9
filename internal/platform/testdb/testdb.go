// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package testdb prepares a migrated, empty PostgreSQL database for
integration tests.

Tests call [New] and are skipped when TEST_DATABASE_URL is unset. Test
binaries of different packages run in parallel against the same database,
so [New] holds a session advisory lock until the test ends.
*/
package testdb

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/gosanz/mangashelfapi/internal/platform/database/schema"
	"github.com/gosanz/mangashelfapi/internal/platform/migration"
	pgstore "github.com/gosanz/mangashelfapi/internal/platform/postgres"
	"github.com/gosanz/mangashelfapi/pkg/uuid"
)

// EnvDatabaseURL names the variable that enables integration tests.
const EnvDatabaseURL = "TEST_DATABASE_URL"

// lockKey is an arbitrary advisory-lock id reserved for test isolation.
const lockKey = 73_110_221

// New returns a pool on a freshly truncated schema. The pool and the lock
// are released by t.Cleanup.
func New(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s not set; skipping integration test", EnvDatabaseURL)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, dsn, logger, pgstore.WithMaxConns(4))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	lockConn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	_, err = lockConn.Exec(ctx, "SELECT pg_advisory_lock($1)", lockKey)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = lockConn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", lockKey)
		lockConn.Release()
	})

	require.NoError(t, migration.RunUp(dsn, logger))

	_, err = pool.Exec(ctx, "TRUNCATE "+
		schema.CollectionEntry.Table+", "+
		schema.User.Table+", "+
		schema.Volume.Table+", "+
		schema.Series.Table+", "+
		schema.Publisher.Table+
		" RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	return pool
}

// InsertUser stores an active account and returns its id.
func InsertUser(t *testing.T, pool *pgxpool.Pool, username string) string {
	t.Helper()

	id := uuid.New()
	now := time.Now().UTC()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO "+schema.User.Table+" (id, username, email, role, is_active, created_at, updated_at) VALUES ($1, $2, $3, 'user', TRUE, $4, $4)",
		id, username, username+"@example.com", now,
	)
	require.NoError(t, err)
	return id
}
