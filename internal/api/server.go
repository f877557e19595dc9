// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package api wires the chi router, the middleware chain and the domain
handlers into a runnable [http.Server].

Route groups:

  - /health, /ready: unauthenticated probes.
  - /api/v1/auth: public sign-in endpoints.
  - everything else under /api/v1: an authenticated caller whose account is
    active. Catalog writes and /admin additionally require the admin role.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/gosanz/mangashelfapi/internal/collection"
	"github.com/gosanz/mangashelfapi/internal/core/catalog"
	"github.com/gosanz/mangashelfapi/internal/platform/config"
	"github.com/gosanz/mangashelfapi/internal/platform/constants"
	"github.com/gosanz/mangashelfapi/internal/platform/middleware"
	"github.com/gosanz/mangashelfapi/internal/stats"
	"github.com/gosanz/mangashelfapi/internal/users/account"
	"github.com/gosanz/mangashelfapi/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler.
	Readiness http.HandlerFunc

	Auth       *auth.Handler
	Account    *account.Handler
	Catalog    *catalog.Handler
	Collection *collection.Handler
	Stats      *stats.Handler
}

// Guards are the per-request checks the route groups depend on.
type Guards struct {
	// Verifier validates bearer access tokens.
	Verifier middleware.TokenVerifier

	// Active rejects callers whose account is pending deletion.
	Active middleware.ActiveChecker
}

// # Server Initialization

// NewRouter builds the chi router with the full middleware chain and every
// route group. The context bounds background work such as the rate limiter
// sweep.
func NewRouter(context context.Context, cfg *config.Config, log *slog.Logger, guards Guards, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)
	r.Use(middleware.Authenticate(guards.Verifier))

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		api.Group(func(active chi.Router) {
			active.Use(middleware.RequireActive(guards.Active))

			active.Mount("/users", h.Account.MeRoutes())
			active.Mount("/admin/users", h.Account.AdminRoutes())

			active.Mount("/publishers", h.Catalog.PublisherRoutes())
			active.Mount("/series", h.Catalog.SeriesRoutes())
			active.Mount("/volumes", h.Catalog.VolumeRoutes())

			active.Route("/collection", func(shelf chi.Router) {
				shelf.Mount("/stats", h.Stats.Routes())
				h.Collection.Register(shelf)
			})
		})
	})

	return r
}

// NewServer wraps [NewRouter] in an [http.Server] with the platform timeouts.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, guards Guards, h Handlers) *Server {
	router := NewRouter(context, cfg, log, guards, h)

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server. It blocks until the server is
// closed or fails.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
