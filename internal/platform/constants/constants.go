// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package constants holds platform-wide timeouts, limits and keys shared
between the HTTP layer, storage and shelfctl.
*/
package constants

import "time"

const (
	AppName    = "mangashelf-api"
	AppVersion = "0.1.0"

	// AuthIssuer is the iss claim of access tokens.
	AuthIssuer = "mangashelf.app"
)

// # HTTP Server

const (
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 40 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute

	// GlobalRequestTimeout bounds a handler and, through statement_timeout,
	// every SQL statement it runs. DefaultWriteTimeout must stay above it.
	GlobalRequestTimeout = 30 * time.Second

	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	DefaultRateLimitRPS      = 50.0
	DefaultRateLimitBurst    = 100
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Headers and Body Keys

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"

	FieldStatus = "status"
	FieldChecks = "checks"
)
