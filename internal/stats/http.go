// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package stats

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/gosanz/mangashelfapi/internal/platform/request"
	"github.com/gosanz/mangashelfapi/internal/platform/respond"
)

// summaryResponse renders money as a JSON number.
type summaryResponse struct {
	TotalEntries   int     `json:"total_entries"`
	DistinctSeries int     `json:"distinct_series"`
	OwnedCount     int     `json:"owned_count"`
	WishlistCount  int     `json:"wishlist_count"`
	ReadingCount   int     `json:"reading_count"`
	CompletedCount int     `json:"completed_count"`
	TotalSpent     float64 `json:"total_spent"`
}

// # Handler Implementation

// Handler exposes the statistics of the authenticated user.
type Handler struct {
	service *Service
}

// NewHandler constructs a new statistics [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted at /collection/stats.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/summary", handler.summary)
	router.Get("/publishers/by-volumes", handler.ranking(handler.service.TopPublishersByVolumes))
	router.Get("/publishers/by-series", handler.ranking(handler.service.TopPublishersBySeries))
	router.Get("/authors/by-volumes", handler.ranking(handler.service.TopAuthorsByVolumes))
	router.Get("/authors/by-series", handler.ranking(handler.service.TopAuthorsBySeries))
	router.Get("/series-progress", handler.seriesProgress)

	return router
}

// GET /api/v1/collection/stats/summary.
func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.CollectionSummary(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summaryResponse{
		TotalEntries:   summary.TotalEntries,
		DistinctSeries: summary.DistinctSeries,
		OwnedCount:     summary.OwnedCount,
		WishlistCount:  summary.WishlistCount,
		ReadingCount:   summary.ReadingCount,
		CompletedCount: summary.CompletedCount,
		TotalSpent:     summary.TotalSpent.InexactFloat64(),
	})
}

type rankingQuery func(context context.Context, userID string, limit int) ([]Ranking, error)

/*
GET /api/v1/collection/stats/{publishers|authors}/{by-volumes|by-series}.

Request:
  - limit: int (default 5, 1..20)
*/
func (handler *Handler) ranking(query rankingQuery) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		limit, err := requestutil.QueryInt(request, FieldLimit, DefaultRankingLimit, 1, MaxRankingLimit)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		rankings, err := query(request.Context(), userID, limit)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, rankings)
	}
}

/*
GET /api/v1/collection/stats/series-progress.

Request:
  - limit: int (default 10, 1..50)
*/
func (handler *Handler) seriesProgress(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	limit, err := requestutil.QueryInt(request, FieldLimit, DefaultProgressLimit, 1, MaxProgressLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	progress, err := handler.service.SeriesProgress(request.Context(), userID, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, progress)
}
