// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package stats computes read-only aggregates over one user's collection.

# Architecture

  - Summary: a single SQL aggregate over the ledger.
  - Rankings and progress: the store returns one [SeriesOwnership] row per
    series the user owns at least one volume of; the pure functions in
    engine.go group, sort and truncate those rows.

Every query is scoped to a single user id.
*/
package stats

import (
	"github.com/shopspring/decimal"
)

// # Read Models

// Summary holds the headline counters of a collection.
type Summary struct {
	TotalEntries   int
	DistinctSeries int
	OwnedCount     int
	WishlistCount  int
	ReadingCount   int
	CompletedCount int
	// TotalSpent is the exact sum of non-null purchase prices.
	TotalSpent decimal.Decimal
}

// SeriesOwnership is how many volumes of one series a user owns.
type SeriesOwnership struct {
	SeriesID      int64
	Title         string
	PublisherName *string
	Author        *string
	TotalVolumes  *int
	OwnedVolumes  int
}

// Ranking is one row of a top-N list.
type Ranking struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Progress is the completion state of one series.
type Progress struct {
	SeriesID             int64   `json:"series_id"`
	Title                string  `json:"title"`
	OwnedVolumes         int     `json:"owned_volumes"`
	TotalVolumes         *int    `json:"total_volumes"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// # Limits

const (
	DefaultRankingLimit  = 5
	MaxRankingLimit      = 20
	DefaultProgressLimit = 10
	MaxProgressLimit     = 50

	FieldLimit = "limit"
)
