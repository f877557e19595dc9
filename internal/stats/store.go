// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosanz/mangashelfapi/internal/platform/database/schema"
	"github.com/gosanz/mangashelfapi/internal/platform/dberr"
)

// # Data Access

// Repository loads the raw aggregates the engine works on.
type Repository interface {
	// Summary computes the headline counters in one statement.
	Summary(context context.Context, userID string) (Summary, error)

	// OwnedSeries returns one row per series with at least one owned volume.
	OwnedSeries(context context.Context, userID string) ([]SeriesOwnership, error)
}

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed statistics store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

var (
	entry     = schema.CollectionEntry
	volume    = schema.Volume
	series    = schema.Series
	publisher = schema.Publisher

	summaryQuery = fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(DISTINCT v.%s),
			COUNT(*) FILTER (WHERE e.%s),
			COUNT(*) FILTER (WHERE e.%s),
			COUNT(*) FILTER (WHERE e.%s),
			COUNT(*) FILTER (WHERE e.%s),
			COALESCE(SUM(e.%s), 0)
		FROM %s e
		JOIN %s v ON v.%s = e.%s
		WHERE e.%s = $1`,
		volume.SeriesID,
		entry.IsOwned, entry.IsWishlist, entry.IsReading, entry.IsCompleted,
		entry.PurchasePrice,
		entry.Table,
		volume.Table, volume.ID, entry.VolumeID,
		entry.UserID,
	)

	ownedSeriesQuery = fmt.Sprintf(`
		SELECT s.%s, s.%s, p.%s, s.%s, s.%s, COUNT(*)
		FROM %s e
		JOIN %s v ON v.%s = e.%s
		JOIN %s s ON s.%s = v.%s
		LEFT JOIN %s p ON p.%s = s.%s
		WHERE e.%s = $1 AND e.%s
		GROUP BY s.%s, s.%s, p.%s, s.%s, s.%s`,
		series.ID, series.Title, publisher.Name, series.Author, series.TotalVolumes,
		entry.Table,
		volume.Table, volume.ID, entry.VolumeID,
		series.Table, series.ID, volume.SeriesID,
		publisher.Table, publisher.ID, series.PublisherID,
		entry.UserID, entry.IsOwned,
		series.ID, series.Title, publisher.Name, series.Author, series.TotalVolumes,
	)
)

// Summary runs the aggregate query.
func (repository *postgresRepository) Summary(context context.Context, userID string) (Summary, error) {
	var summary Summary

	err := repository.pool.QueryRow(context, summaryQuery, userID).Scan(
		&summary.TotalEntries,
		&summary.DistinctSeries,
		&summary.OwnedCount,
		&summary.WishlistCount,
		&summary.ReadingCount,
		&summary.CompletedCount,
		&summary.TotalSpent,
	)
	if err != nil {
		return Summary{}, dberr.Wrap(err, "collection_summary")
	}
	return summary, nil
}

// OwnedSeries groups owned entries per series.
func (repository *postgresRepository) OwnedSeries(context context.Context, userID string) ([]SeriesOwnership, error) {
	rows, err := repository.pool.Query(context, ownedSeriesQuery, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "owned_series")
	}
	defer rows.Close()

	result := []SeriesOwnership{}
	for rows.Next() {
		var row SeriesOwnership
		if err := rows.Scan(&row.SeriesID, &row.Title, &row.PublisherName, &row.Author, &row.TotalVolumes, &row.OwnedVolumes); err != nil {
			return nil, dberr.Wrap(err, "owned_series")
		}
		result = append(result, row)
	}

	return result, dberr.Wrap(rows.Err(), "owned_series")
}
