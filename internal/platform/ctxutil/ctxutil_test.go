// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosanz/mangashelfapi/internal/platform/ctxutil"
	"github.com/gosanz/mangashelfapi/internal/platform/sec"
)

/*
TestContext_Empty checks the zero answers outside a request.
*/
func TestContext_Empty(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))
	assert.Nil(t, ctxutil.GetAuthUser(ctx))
	assert.Empty(t, ctxutil.CallerID(ctx))
}

/*
TestContext_RoundTrip stores and reads back each request value.
*/
func TestContext_RoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	claims := &sec.AuthClaims{UserID: "0190a000-0000-7000-8000-000000000001", Role: string(sec.RoleUser)}

	ctx := ctxutil.WithRequestID(context.Background(), "req-42")
	ctx = ctxutil.WithLogger(ctx, logger)
	ctx = ctxutil.WithAuthUser(ctx, claims)

	assert.Equal(t, "req-42", ctxutil.GetRequestID(ctx))
	assert.Same(t, logger, ctxutil.GetLogger(ctx))

	caller := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, caller)
	assert.Equal(t, claims.UserID, caller.UserID)
	assert.Equal(t, claims.UserID, ctxutil.CallerID(ctx))
}

/*
TestContext_ForeignKeys ignores values stored under plain string keys.
*/
func TestContext_ForeignKeys(t *testing.T) {
	//nolint:staticcheck // deliberately colliding key name
	ctx := context.WithValue(context.Background(), "request_id", "spoofed")

	assert.Empty(t, ctxutil.GetRequestID(ctx))
}
