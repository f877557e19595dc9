// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package stats_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosanz/mangashelfapi/internal/platform/ctxutil"
	"github.com/gosanz/mangashelfapi/internal/platform/sec"
	"github.com/gosanz/mangashelfapi/internal/stats"
)

const readerID = "0190a000-0000-7000-8000-000000000001"

type fixedRepository struct {
	summary stats.Summary
	rows    []stats.SeriesOwnership
	userIDs []string
}

func (repository *fixedRepository) Summary(_ context.Context, userID string) (stats.Summary, error) {
	repository.userIDs = append(repository.userIDs, userID)
	return repository.summary, nil
}

func (repository *fixedRepository) OwnedSeries(_ context.Context, userID string) ([]stats.SeriesOwnership, error) {
	repository.userIDs = append(repository.userIDs, userID)
	return repository.rows, nil
}

func newStatsRouter(repository stats.Repository) http.Handler {
	handler := stats.NewHandler(stats.NewService(repository))

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := &sec.AuthClaims{UserID: readerID, Role: string(sec.RoleUser)}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
		})
	})
	router.Mount("/stats", handler.Routes())
	return router
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

/*
TestHandler_Summary renders the exact decimal total as a JSON number.
*/
func TestHandler_Summary(t *testing.T) {
	total := decimal.RequireFromString("0.10").
		Add(decimal.RequireFromString("0.20")).
		Add(decimal.RequireFromString("12.45"))

	repository := &fixedRepository{summary: stats.Summary{TotalEntries: 3, DistinctSeries: 2, OwnedCount: 3, TotalSpent: total}}
	recorder := get(newStatsRouter(repository), "/stats/summary")
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, 12.75, envelope.Data["total_spent"])
	assert.Equal(t, float64(2), envelope.Data["distinct_series"])
	assert.Equal(t, []string{readerID}, repository.userIDs)
}

/*
TestHandler_Summary_EmptyCollection reports zero spent.
*/
func TestHandler_Summary_EmptyCollection(t *testing.T) {
	recorder := get(newStatsRouter(&fixedRepository{}), "/stats/summary")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total_spent":0`)
}

/*
TestHandler_Limits validates the limit ranges of each endpoint.
*/
func TestHandler_Limits(t *testing.T) {
	router := newStatsRouter(&fixedRepository{rows: shelf()})

	tests := []struct {
		name   string
		target string
		status int
		count  int
	}{
		{"default_ranking", "/stats/publishers/by-volumes", http.StatusOK, 2},
		{"ranking_limit_one", "/stats/authors/by-series?limit=1", http.StatusOK, 1},
		{"ranking_limit_too_high", "/stats/authors/by-volumes?limit=21", http.StatusBadRequest, 0},
		{"ranking_limit_zero", "/stats/publishers/by-series?limit=0", http.StatusBadRequest, 0},
		{"progress_default", "/stats/series-progress", http.StatusOK, 4},
		{"progress_max", "/stats/series-progress?limit=50", http.StatusOK, 4},
		{"progress_too_high", "/stats/series-progress?limit=51", http.StatusBadRequest, 0},
		{"progress_malformed", "/stats/series-progress?limit=ten", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := get(router, tt.target)
			require.Equal(t, tt.status, recorder.Code)
			if tt.status != http.StatusOK {
				return
			}

			var envelope struct {
				Data []json.RawMessage `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Len(t, envelope.Data, tt.count)
		})
	}
}
