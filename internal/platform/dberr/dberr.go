// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
)

var (
	// ErrNotFound is returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap classifies a pgx error into an [apperr.AppError].
//
//   - pgx.ErrNoRows            -> NOT_FOUND
//   - 23505 unique_violation   -> CONFLICT
//   - 23503 foreign_key        -> NOT_FOUND (the referenced row is gone)
//   - 23514 check_violation    -> VALIDATION_ERROR
//   - anything else            -> INTERNAL_ERROR with the action recorded
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(conflictMessage(pgError)).WithCause(err)
		case pgerrcode.ForeignKeyViolation:
			return apperr.NotFound("Referenced resource").WithCause(err)
		case pgerrcode.CheckViolation:
			return apperr.ValidationError("Value violates a data constraint").WithCause(err)
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsUniqueViolation reports whether err is a Postgres unique_violation,
// optionally restricted to a named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) || pgError.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgError.ConstraintName == constraint
}

func conflictMessage(pgError *pgconn.PgError) string {
	if pgError.ConstraintName == "" {
		return "Resource already exists"
	}
	return "Resource already exists (" + pgError.ConstraintName + ")"
}
