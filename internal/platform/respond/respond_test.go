// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
	"github.com/gosanz/mangashelfapi/internal/platform/ctxutil"
	"github.com/gosanz/mangashelfapi/internal/platform/respond"
	"github.com/gosanz/mangashelfapi/pkg/pagination"
)

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}

/*
TestError maps application errors to their status and hides anything else
behind a 500.
*/
func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantText   string
	}{
		{"not found", apperr.NotFound("Volume"), http.StatusNotFound, apperr.CodeNotFound, ""},
		{"wrapped conflict", fmt.Errorf("collection_service_add_failed: %w", apperr.Conflict("Volume is already in the collection")),
			http.StatusConflict, apperr.CodeConflict, "Volume is already in the collection"},
		{"unexpected", errors.New("pq: connection reset"), http.StatusInternalServerError, apperr.CodeInternal, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/v1/collection", nil)
			request = request.WithContext(ctxutil.WithRequestID(request.Context(), "req-42"))
			recorder := httptest.NewRecorder()

			respond.Error(recorder, request, tt.err)

			require.Equal(t, tt.wantStatus, recorder.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, "req-42", body.RequestID)
			if tt.wantText != "" {
				assert.Equal(t, tt.wantText, body.Error)
			}
		})
	}
}

/*
TestPaginated writes the meta block next to the page.
*/
func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, []string{"a", "b"}, pagination.Meta{Skip: 10, Limit: 2, Returned: 2})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":["a","b"],"meta":{"skip":10,"limit":2,"returned":2}}`, recorder.Body.String())
}

/*
TestData omits meta on single resources.
*/
func TestData(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Data(recorder, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"status":"degraded"}}`, recorder.Body.String())
}
