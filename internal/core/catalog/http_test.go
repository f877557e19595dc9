// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosanz/mangashelfapi/internal/core/catalog"
	"github.com/gosanz/mangashelfapi/internal/platform/ctxutil"
	"github.com/gosanz/mangashelfapi/internal/platform/sec"
)

func newCatalogRouter(store *memoryCatalog, role sec.UserRole) http.Handler {
	handler := catalog.NewHandler(newTestService(store))

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := &sec.AuthClaims{UserID: "0190a000-0000-7000-8000-000000000001", Username: "reader", Role: string(role)}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
		})
	})
	router.Mount("/publishers", handler.PublisherRoutes())
	router.Mount("/series", handler.SeriesRoutes())
	router.Mount("/volumes", handler.VolumeRoutes())
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, target, nil)
	} else {
		request = httptest.NewRequest(method, target, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_PublisherWritesRequireAdmin checks the role guard on curation routes.
*/
func TestHandler_PublisherWritesRequireAdmin(t *testing.T) {
	store := newMemoryCatalog()
	body := `{"name":"Kodansha","country":"JP"}`

	recorder := serve(newCatalogRouter(store, sec.RoleUser), http.MethodPost, "/publishers", body)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = serve(newCatalogRouter(store, sec.RoleAdmin), http.MethodPost, "/publishers", body)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var envelope struct {
		Data catalog.Publisher `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "Kodansha", envelope.Data.Name)

	recorder = serve(newCatalogRouter(store, sec.RoleAdmin), http.MethodPost, "/publishers", body)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

/*
TestHandler_Reads covers lookups, pagination metadata and path validation.
*/
func TestHandler_Reads(t *testing.T) {
	store := newMemoryCatalog()
	admin := newCatalogRouter(store, sec.RoleAdmin)
	reader := newCatalogRouter(store, sec.RoleUser)

	require.Equal(t, http.StatusCreated, serve(admin, http.MethodPost, "/series", `{"title":"Monster","total_volumes":18}`).Code)
	require.Equal(t, http.StatusCreated, serve(admin, http.MethodPost, "/volumes/bulk",
		`{"volumes":[{"series_id":1,"volume_number":1,"isbn":"9781591167211"},{"series_id":1,"volume_number":2}]}`).Code)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"series_found", "/series/1", http.StatusOK},
		{"series_missing", "/series/42", http.StatusNotFound},
		{"series_bad_id", "/series/abc", http.StatusBadRequest},
		{"volumes_of_series", "/volumes/series/1", http.StatusOK},
		{"volumes_of_missing_series", "/volumes/series/9", http.StatusNotFound},
		{"volume_by_isbn", "/volumes/isbn/9781591167211", http.StatusOK},
		{"volume_by_unknown_isbn", "/volumes/isbn/9780000000000", http.StatusNotFound},
		{"search_without_term", "/series/search", http.StatusBadRequest},
		{"search", "/series/search?q=mon", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(reader, http.MethodGet, tt.target, "").Code)
		})
	}

	recorder := serve(reader, http.MethodGet, "/volumes/series/1?limit=500", "")
	var envelope struct {
		Data []catalog.Volume `json:"data"`
		Meta struct {
			Limit    int `json:"limit"`
			Returned int `json:"returned"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, 200, envelope.Meta.Limit)
	assert.Equal(t, 2, envelope.Meta.Returned)
	assert.Equal(t, 1, envelope.Data[0].VolumeNumber)
}

/*
TestHandler_DeleteVolume returns 204 then 404.
*/
func TestHandler_DeleteVolume(t *testing.T) {
	store := newMemoryCatalog()
	admin := newCatalogRouter(store, sec.RoleAdmin)

	require.Equal(t, http.StatusCreated, serve(admin, http.MethodPost, "/series", `{"title":"Pluto"}`).Code)
	require.Equal(t, http.StatusCreated, serve(admin, http.MethodPost, "/volumes", `{"series_id":1,"volume_number":1}`).Code)

	assert.Equal(t, http.StatusNoContent, serve(admin, http.MethodDelete, "/volumes/2", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(admin, http.MethodDelete, "/volumes/2", "").Code)
}
