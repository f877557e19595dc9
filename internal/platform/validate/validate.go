// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package validate collects field errors for catalog, ledger and account input
and folds them into one VALIDATION_ERROR.

Handlers check request shape; services re-check the rules that must hold no
matter who calls them (bulk volume import, shelfctl, tests).

Usage:

	validator := &validate.Validator{}
	validator.Required("title", input.Title).MaxLen("title", input.Title, 255)
	if err := validator.Err(); err != nil {
		return nil, err
	}
*/
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
)

const failedMessage = "Validation failed"

// ISBN-10 or ISBN-13, hyphens allowed between digits.
var isbnPattern = regexp.MustCompile(`^(?:97[89]-?)?(?:\d-?){9}[\dXx]$`)

// ErrInvalidJSON is returned when a request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates [apperr.FieldError] values. Use one per operation;
// it is not safe for concurrent use.
type Validator struct {
	failures []apperr.FieldError
}

// Field builds a VALIDATION_ERROR carrying a single field failure.
func Field(field, message string) *apperr.AppError {
	return apperr.ValidationError(failedMessage, apperr.FieldError{Field: field, Message: message})
}

// Custom records message against field when failed is true.
func (validator *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		validator.failures = append(validator.failures, apperr.FieldError{Field: field, Message: message})
	}
	return validator
}

// # Text

func (validator *Validator) Required(field, value string) *Validator {
	return validator.Custom(field, strings.TrimSpace(value) == "", "This field is required")
}

func (validator *Validator) MinLen(field, value string, limit int) *Validator {
	return validator.Custom(field, utf8.RuneCountInString(value) < limit, fmt.Sprintf("Minimum %d characters", limit))
}

func (validator *Validator) MaxLen(field, value string, limit int) *Validator {
	return validator.Custom(field, utf8.RuneCountInString(value) > limit, fmt.Sprintf("Maximum %d characters", limit))
}

// OneOf requires value to be one of allowed.
func (validator *Validator) OneOf(field, value string, allowed ...string) *Validator {
	return validator.Custom(field, !slices.Contains(allowed, value),
		fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
}

// # Numbers

func (validator *Validator) Min(field string, value, limit int) *Validator {
	return validator.Custom(field, value < limit, fmt.Sprintf("Must be at least %d", limit))
}

// # Formats

// Email accepts what net/mail accepts as a bare address.
func (validator *Validator) Email(field, value string) *Validator {
	_, err := mail.ParseAddress(value)
	return validator.Custom(field, err != nil, "Must be a valid email address")
}

// UUID accepts any RFC 4122 textual form in canonical 36-character layout.
func (validator *Validator) UUID(field, value string) *Validator {
	_, err := uuid.Parse(value)
	return validator.Custom(field, err != nil || len(value) != 36, "Must be a valid UUID")
}

// URL requires an absolute http or https URL with a host.
func (validator *Validator) URL(field, value string) *Validator {
	parsed, err := url.Parse(value)
	valid := err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
	return validator.Custom(field, !valid, "Must be a valid http(s) URL")
}

// ISBN checks shape only. Check digits are not verified because publishers
// do print invalid ones.
func (validator *Validator) ISBN(field, value string) *Validator {
	return validator.Custom(field, !isbnPattern.MatchString(value), "Must be a valid ISBN-10 or ISBN-13")
}

// # Result

func (validator *Validator) HasErrors() bool {
	return len(validator.failures) > 0
}

// Err returns nil when every rule passed.
func (validator *Validator) Err() error {
	if !validator.HasErrors() {
		return nil
	}
	return apperr.ValidationError(failedMessage, validator.failures...)
}
