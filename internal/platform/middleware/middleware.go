// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package middleware holds the HTTP chain shared by every MangaShelf route.

Order in the router:

	RequestID -> StructuredLogger -> PanicRecovery -> Timeout -> RateLimit -> CORS -> Authenticate

The account guards (RequireAuth, RequireActive, RequireRole) live in authz.go
and are attached per route group.
*/
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"runtime/debug"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
	"github.com/gosanz/mangashelfapi/internal/platform/constants"
	"github.com/gosanz/mangashelfapi/internal/platform/ctxutil"
	"github.com/gosanz/mangashelfapi/internal/platform/respond"
	"github.com/gosanz/mangashelfapi/pkg/uuid"
)

// # Request Tracing

// RequestID reuses an inbound X-Request-ID or mints a UUIDv7 one, and echoes
// it on the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := strings.TrimSpace(request.Header.Get(constants.HeaderXRequestID))
			if requestID == "" {
				requestID = uuid.New()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

/*
StructuredLogger puts a request-scoped logger in the context and emits one
http_request_finished event per request.

5xx responses log at Error and 4xx at Warn.
*/
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			started := time.Now()
			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
			)
			context := ctxutil.WithLogger(request.Context(), requestLogger)

			recorder := chimw.NewWrapResponseWriter(writer, request.ProtoMajor)
			next.ServeHTTP(recorder, request.WithContext(context))

			status := recorder.Status()
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			requestLogger.Log(context, level, "http_request_finished",
				slog.Int("status", status),
				slog.Int("bytes", recorder.BytesWritten()),
				slog.Duration("latency", time.Since(started)),
				slog.String("ip", RealIP(request)),
			)
		})
	}
}

// PanicRecovery answers 500 after a handler panics and logs the stack.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "panic_recovered",
					slog.Any("panic", recovered),
					slog.String("stack", string(debug.Stack())),
				)
				respond.Error(writer, request, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Rate Limiting

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitors keeps one token bucket per client IP.
type visitors struct {
	mu     sync.Mutex
	byIP   map[string]*visitor
	limit  rate.Limit
	burst  int
	maxAge time.Duration
}

// reserve takes a token for ip, returning how long the caller must wait
// when none is available.
func (registry *visitors) reserve(ip string, now time.Time) time.Duration {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	entry, ok := registry.byIP[ip]
	if !ok {
		entry = &visitor{limiter: rate.NewLimiter(registry.limit, registry.burst)}
		registry.byIP[ip] = entry
	}
	entry.lastSeen = now

	reservation := entry.limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
	}
	return delay
}

func (registry *visitors) forget(now time.Time) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for ip, entry := range registry.byIP {
		if now.Sub(entry.lastSeen) > registry.maxAge {
			delete(registry.byIP, ip)
		}
	}
}

/*
RateLimit applies a per-IP token bucket of rps with the given burst.

Rejected requests get 429 with a Retry-After header. Idle buckets are dropped
by a background sweep that ends with ctx.
*/
func RateLimit(ctx context.Context, rps float64, burst int) func(http.Handler) http.Handler {
	registry := &visitors{
		byIP:   map[string]*visitor{},
		limit:  rate.Limit(rps),
		burst:  burst,
		maxAge: constants.RateLimitClientTTL,
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				registry.forget(now)
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if delay := registry.reserve(RealIP(request), time.Now()); delay > 0 {
				seconds := int(math.Ceil(delay.Seconds()))
				writer.Header().Set("Retry-After", strconv.Itoa(seconds))
				respond.Error(writer, request, apperr.RateLimited(seconds))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// # CORS

// AppConfig is the part of the configuration CORS needs.
type AppConfig interface {
	IsDevelopment() bool
	AllowedOrigins() []string
}

var corsHeaders = map[string]string{
	"Access-Control-Allow-Methods":     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	"Access-Control-Allow-Headers":     "Accept, Authorization, Content-Type, X-Request-ID",
	"Access-Control-Expose-Headers":    "Retry-After, X-Request-ID",
	"Access-Control-Allow-Credentials": "true",
	"Access-Control-Max-Age":           "300",
}

// CORS echoes the Origin back when it is allowed. Development accepts any
// origin. Preflight requests end here with 204.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	allowed := cfg.AllowedOrigins()
	anyOrigin := cfg.IsDevelopment()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Add("Vary", "Origin")
			if anyOrigin || slices.Contains(allowed, origin) {
				header.Set("Access-Control-Allow-Origin", origin)
				for name, value := range corsHeaders {
					header.Set(name, value)
				}
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// RealIP prefers X-Real-IP, then the first X-Forwarded-For hop, then the
// socket address.
func RealIP(request *http.Request) string {
	if ip := strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP)); ip != "" {
		return ip
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(request.RemoteAddr); err == nil {
		return host
	}
	return request.RemoteAddr
}
