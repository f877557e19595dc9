// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

// Package pagination provides the skip/limit window used by list endpoints.
//
// # Overview
//
// Each endpoint declares its own default and maximum limit through [Bounds].
// Out-of-range values are clamped rather than rejected.
package pagination

import (
	"net/http"

	"github.com/gosanz/mangashelfapi/pkg/convert"
)

// Bounds describes the accepted limit range of one endpoint.
type Bounds struct {
	DefaultLimit int
	MaxLimit     int
}

var (
	// Catalog is used by publisher, series and volume listings.
	Catalog = Bounds{DefaultLimit: 100, MaxLimit: 100}
	// SeriesVolumes allows a whole long-running series in one page.
	SeriesVolumes = Bounds{DefaultLimit: 200, MaxLimit: 200}
	// Search is used by the substring search endpoints.
	Search = Bounds{DefaultLimit: 20, MaxLimit: 100}
	// Collection is used by the ledger listings.
	Collection = Bounds{DefaultLimit: 100, MaxLimit: 100}
)

// Window is a skip/limit slice of an ordered result set.
type Window struct {
	Skip  int
	Limit int
}

// Meta is the pagination metadata included in list responses.
type Meta struct {
	Skip     int `json:"skip"`
	Limit    int `json:"limit"`
	Returned int `json:"returned"`
}

// NewMeta builds the response metadata for a served window.
func NewMeta(window Window, returned int) Meta {
	return Meta{Skip: window.Skip, Limit: window.Limit, Returned: returned}
}

// Clamp forces the window into bounds: negative skip becomes 0, a missing or
// non-positive limit becomes the default and an excessive one the maximum.
func (b Bounds) Clamp(window Window) Window {
	if window.Skip < 0 {
		window.Skip = 0
	}
	if window.Limit <= 0 {
		window.Limit = b.DefaultLimit
	}
	if window.Limit > b.MaxLimit {
		window.Limit = b.MaxLimit
	}
	return window
}

// FromRequest parses "skip" and "limit" query parameters and clamps them.
func FromRequest(r *http.Request, bounds Bounds) Window {
	return bounds.Clamp(Window{
		Skip:  convert.ToIntD(r.URL.Query().Get("skip"), 0),
		Limit: convert.ToIntD(r.URL.Query().Get("limit"), bounds.DefaultLimit),
	})
}
