// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package catalog provides the HTTP interface for browsing and curating the
shared catalog.

# Routing Strategy

  - Discovery: reads are mounted behind the active-user guard by the server.
  - Curation: creates and deletes additionally require [sec.RoleAdmin].
*/
package catalog

import (
	"github.com/go-chi/chi/v5"

	"github.com/gosanz/mangashelfapi/internal/platform/middleware"
	"github.com/gosanz/mangashelfapi/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for publishers, series and volumes.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// PublisherRoutes returns the router mounted at /publishers.
func (handler *Handler) PublisherRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPublishers)
	router.Get("/search", handler.searchPublishers)
	router.Get("/{id}", handler.getPublisher)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/", handler.createPublisher)
	})

	return router
}

// SeriesRoutes returns the router mounted at /series.
func (handler *Handler) SeriesRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listSeries)
	router.Get("/search", handler.searchSeries)
	router.Get("/publisher/{id}", handler.listSeriesByPublisher)
	router.Get("/{id}", handler.getSeries)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/", handler.createSeries)
		admin.Delete("/{id}", handler.deleteSeries)
	})

	return router
}

// VolumeRoutes returns the router mounted at /volumes.
func (handler *Handler) VolumeRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listVolumes)
	router.Get("/search", handler.searchVolumes)
	router.Get("/isbn/{isbn}", handler.getVolumeByISBN)
	router.Get("/series/{id}", handler.listVolumesBySeries)
	router.Get("/{id}", handler.getVolume)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/", handler.createVolume)
		admin.Post("/bulk", handler.createVolumes)
		admin.Delete("/{id}", handler.deleteVolume)
	})

	return router
}
