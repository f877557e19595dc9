// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package requestutil extracts typed values from HTTP requests.

It hides chi's parameter extraction and JSON body decoding behind helpers that
always fail with an [apperr.AppError].
*/
package requestutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
	"github.com/gosanz/mangashelfapi/internal/platform/ctxutil"
	"github.com/gosanz/mangashelfapi/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into target.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, or the ValidationError
    raised by a field's UnmarshalJSON.
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		if appError := apperr.As(err); appError != nil {
			return appError
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Int64Param parses a named URL parameter as a positive integer id.

Returns:
  - error: apperr.ValidationError when the segment is not a positive integer
*/
func Int64Param(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validate.Field(name, "Must be a positive integer")
	}
	return id, nil
}

/*
QueryInt reads an optional integer query parameter bounded by [min, max].

Returns:
  - int: the parsed value, or fallback when absent
  - error: apperr.ValidationError when malformed or out of range
*/
func QueryInt(request *http.Request, name string, fallback, min, max int) (int, error) {
	raw := strings.TrimSpace(request.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < min || value > max {
		return 0, validate.Field(name, fmt.Sprintf("Must be an integer between %d and %d", min, max))
	}
	return value, nil
}

/*
RequiredQuery reads a mandatory, non-blank query parameter.
*/
func RequiredQuery(request *http.Request, name string) (string, error) {
	value := strings.TrimSpace(request.URL.Query().Get(name))
	if value == "" {
		return "", validate.Field(name, "This field is required")
	}
	return value, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.
*/
func RequiredUserID(request *http.Request) (string, error) {
	userID := ctxutil.CallerID(request.Context())
	if userID == "" {
		return "", apperr.Unauthorized("Authentication required")
	}
	return userID, nil
}
