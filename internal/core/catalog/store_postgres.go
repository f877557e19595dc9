// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package catalog provides the PostgreSQL implementation of the catalog stores.

Lookups that may legitimately miss return (nil, false, nil). Constraint
violations are translated by dberr: duplicate names and ISBNs become
CONFLICT, dangling publisher or series ids become NOT_FOUND.
*/
package catalog

import (
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/unicode/norm"
)

// # PostgreSQL Repositories

// publisherRepository implements [PublisherRepository] using pgx.
type publisherRepository struct {
	pool *pgxpool.Pool
}

// NewPublisherRepository constructs a PostgreSQL backed publisher store.
func NewPublisherRepository(pool *pgxpool.Pool) PublisherRepository {
	return &publisherRepository{pool: pool}
}

// seriesRepository implements [SeriesRepository] using pgx.
type seriesRepository struct {
	pool *pgxpool.Pool
}

// NewSeriesRepository constructs a PostgreSQL backed series store.
func NewSeriesRepository(pool *pgxpool.Pool) SeriesRepository {
	return &seriesRepository{pool: pool}
}

// volumeRepository implements [VolumeRepository] using pgx.
type volumeRepository struct {
	pool *pgxpool.Pool
}

// NewVolumeRepository constructs a PostgreSQL backed volume store.
func NewVolumeRepository(pool *pgxpool.Pool) VolumeRepository {
	return &volumeRepository{pool: pool}
}

// # Helpers

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchPattern builds an ILIKE substring pattern. The term is NFC-normalized
// so composed and decomposed accents match the stored text, and LIKE
// metacharacters are escaped.
func searchPattern(term string) string {
	normalized := norm.NFC.String(strings.TrimSpace(term))
	return "%" + likeEscaper.Replace(normalized) + "%"
}
