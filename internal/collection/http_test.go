// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package collection_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosanz/mangashelfapi/internal/collection"
	"github.com/gosanz/mangashelfapi/internal/platform/ctxutil"
	"github.com/gosanz/mangashelfapi/internal/platform/sec"
)

func newLedgerRouter(t *testing.T) http.Handler {
	t.Helper()

	service, _ := newLedgerService(newMemoryLedger())
	handler := collection.NewHandler(service)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := &sec.AuthClaims{UserID: readerID, Username: "reader", Role: string(sec.RoleUser)}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
		})
	})
	router.Route("/collection", handler.Register)
	return router
}

func call(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_Lifecycle walks add, read, patch, list and remove over HTTP.
*/
func TestHandler_Lifecycle(t *testing.T) {
	router := newLedgerRouter(t)

	recorder := call(router, http.MethodPost, "/collection", `{"volume_id":1,"is_owned":true,"purchase_price":"7.99"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created struct {
		Data struct {
			VolumeID      int64  `json:"volume_id"`
			PurchasePrice string `json:"purchase_price"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.Data.VolumeID)
	assert.Equal(t, "7.99", created.Data.PurchasePrice)

	assert.Equal(t, http.StatusConflict, call(router, http.MethodPost, "/collection", `{"volume_id":1}`).Code)
	assert.Equal(t, http.StatusNotFound, call(router, http.MethodPost, "/collection", `{"volume_id":404}`).Code)

	assert.Equal(t, http.StatusOK, call(router, http.MethodGet, "/collection/1", "").Code)
	assert.Equal(t, http.StatusNotFound, call(router, http.MethodGet, "/collection/2", "").Code)
	assert.Equal(t, http.StatusBadRequest, call(router, http.MethodGet, "/collection/abc", "").Code)

	assert.Equal(t, http.StatusBadRequest, call(router, http.MethodPatch, "/collection/1", `{"is_owned":null}`).Code)
	assert.Equal(t, http.StatusOK, call(router, http.MethodPatch, "/collection/1", `{"is_wishlist":true}`).Code)

	recorder = call(router, http.MethodGet, "/collection/wishlist", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var listed struct {
		Data []collection.Entry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)

	assert.Equal(t, http.StatusNoContent, call(router, http.MethodDelete, "/collection/1", "").Code)
	assert.Equal(t, http.StatusNotFound, call(router, http.MethodDelete, "/collection/1", "").Code)
}
