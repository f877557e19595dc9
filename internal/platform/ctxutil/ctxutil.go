// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package ctxutil carries per-request values through [context.Context]: the
correlation id, the request-scoped logger and the caller's access-token
claims.

Keys are values of an unexported type, so no other package can read or
overwrite them by accident.
*/
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/gosanz/mangashelfapi/internal/platform/sec"
)

type contextKey uint8

const (
	requestIDKey contextKey = iota + 1
	loggerKey
	callerKey
)

func lookup[T any](ctx context.Context, key contextKey) (T, bool) {
	value, ok := ctx.Value(key).(T)
	return value, ok
}

// # Request Tracing

// WithRequestID attaches the X-Request-ID value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the correlation id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := lookup[string](ctx, requestIDKey)
	return id
}

// # Structured Logging

// WithLogger attaches the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request-scoped logger, falling back to
// [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := lookup[*slog.Logger](ctx, loggerKey); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Caller Identity

// WithAuthUser attaches the verified access-token claims of the caller.
func WithAuthUser(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, callerKey, claims)
}

// GetAuthUser returns the caller's claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := lookup[*sec.AuthClaims](ctx, callerKey)
	return claims
}

// CallerID returns the caller's user id, or "" for anonymous requests.
func CallerID(ctx context.Context) string {
	if claims := GetAuthUser(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}
