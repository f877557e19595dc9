// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package apperr defines the error type shared by every layer of the shelf API.

Services return an [*AppError] (or wrap one with %w) whenever the failure is
meaningful to a client. Anything else is treated as an internal error by the
respond package.

Mapping:

  - NotFound, Conflict and InvalidState cover the ledger and lifecycle rules.
  - ValidationError carries per-field details for malformed input.
  - Internal keeps the cause for server-side logs only.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeConflict           = "CONFLICT"
	CodeInvalidState       = "INVALID_STATE"
	CodeValidation         = "VALIDATION_ERROR"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// AppError is what a client sees when a request fails. Message is safe to
// return; Cause stays in server logs.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (appError *AppError) Error() string { return appError.Message }

func (appError *AppError) Unwrap() error { return appError.Cause }

// WithCause returns a copy carrying cause. The shared value is not mutated,
// so package-level errors such as validate.ErrInvalidJSON stay clean.
func (appError *AppError) WithCause(cause error) *AppError {
	clone := *appError
	clone.Cause = cause
	return &clone
}

func newError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # 4xx

// NotFound reports a missing resource: NotFound("Volume") reads
// "Volume not found".
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, http.StatusNotFound, resource+" not found")
}

func Unauthorized(message string) *AppError {
	return newError(CodeUnauthorized, http.StatusUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return newError(CodeForbidden, http.StatusForbidden, message)
}

// Conflict reports a uniqueness clash, such as a volume already in the
// collection or a taken username.
func Conflict(message string) *AppError {
	return newError(CodeConflict, http.StatusConflict, message)
}

// InvalidState reports an operation the account or entry cannot undergo in
// its current lifecycle state. It shares 409 with Conflict but not the code.
func InvalidState(message string) *AppError {
	return newError(CodeInvalidState, http.StatusConflict, message)
}

func ValidationError(message string, details ...FieldError) *AppError {
	appError := newError(CodeValidation, http.StatusBadRequest, message)
	appError.Details = details
	return appError
}

func RateLimited(retryAfterSeconds int) *AppError {
	return newError(CodeRateLimited, http.StatusTooManyRequests,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// # 5xx

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	appError := newError(CodeInternal, http.StatusInternalServerError, "An unexpected error occurred")
	appError.Cause = cause
	return appError
}

// ServiceUnavailable is used when an optional integration, such as an
// OAuth provider, is not configured.
func ServiceUnavailable(message string) *AppError {
	return newError(CodeServiceUnavailable, http.StatusServiceUnavailable, message)
}

// # Inspection

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

func HasCode(err error, code string) bool {
	appError := As(err)
	return appError != nil && appError.Code == code
}

func IsNotFound(err error) bool { return HasCode(err, CodeNotFound) }

func IsConflict(err error) bool { return HasCode(err, CodeConflict) }
