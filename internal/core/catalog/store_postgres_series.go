// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gosanz/mangashelfapi/internal/platform/database/schema"
	"github.com/gosanz/mangashelfapi/internal/platform/dberr"
	"github.com/gosanz/mangashelfapi/pkg/pagination"
)

var seriesColumns = schema.List("s", schema.Series.Columns())

// Create inserts a series row.
func (repository *seriesRepository) Create(context context.Context, series *Series) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`,
		schema.Series.Table,
		schema.Series.Title, schema.Series.Author, schema.Series.PublisherID, schema.Series.EditionType, schema.Series.TotalVolumes,
		schema.Series.IsCompleted, schema.Series.Description, schema.Series.CoverImageURL,
		schema.Series.StartedPublicationDate, schema.Series.EndedPublicationDate,
		schema.Series.ID,
	)

	err := repository.pool.QueryRow(context, query,
		series.Title, series.Author, series.PublisherID, series.EditionType, series.TotalVolumes,
		series.IsCompleted, series.Description, series.CoverImageURL,
		series.StartedPublicationDate, series.EndedPublicationDate,
	).Scan(&series.ID)

	return dberr.Wrap(err, "create_series")
}

// FindByID returns the series joined with its publisher.
func (repository *seriesRepository) FindByID(context context.Context, id int64) (*Series, bool, error) {
	query := fmt.Sprintf(`
		SELECT %s, p.%s, p.%s, p.%s, p.%s
		FROM %s s
		LEFT JOIN %s p ON p.%s = s.%s
		WHERE s.%s = $1`,
		seriesColumns,
		schema.Publisher.ID, schema.Publisher.Name, schema.Publisher.Country, schema.Publisher.IsActive,
		schema.Series.Table,
		schema.Publisher.Table, schema.Publisher.ID, schema.Series.PublisherID,
		schema.Series.ID,
	)

	var (
		publisherID       *int64
		publisherName     *string
		publisherCountry  *string
		publisherIsActive *bool
	)

	series := &Series{}
	destinations := append(seriesDestinations(series), &publisherID, &publisherName, &publisherCountry, &publisherIsActive)

	err := repository.pool.QueryRow(context, query, id).Scan(destinations...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, dberr.Wrap(err, "find_series")
	}

	if publisherID != nil {
		series.Publisher = &Publisher{
			ID:       *publisherID,
			Name:     *publisherName,
			Country:  publisherCountry,
			IsActive: publisherIsActive != nil && *publisherIsActive,
		}
	}

	return series, true, nil
}

// List returns series ordered by title.
func (repository *seriesRepository) List(context context.Context, window pagination.Window) ([]*Series, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s s
		ORDER BY s.%s ASC, s.%s ASC
		LIMIT $1 OFFSET $2`,
		seriesColumns, schema.Series.Table, schema.Series.Title, schema.Series.ID)

	return repository.query(context, "list_series", query, window.Limit, window.Skip)
}

// Search matches title or author with ILIKE.
func (repository *seriesRepository) Search(context context.Context, term string, window pagination.Window) ([]*Series, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s s
		WHERE s.%s ILIKE $1 OR s.%s ILIKE $1
		ORDER BY s.%s ASC, s.%s ASC
		LIMIT $2 OFFSET $3`,
		seriesColumns, schema.Series.Table,
		schema.Series.Title, schema.Series.Author,
		schema.Series.Title, schema.Series.ID)

	return repository.query(context, "search_series", query, searchPattern(term), window.Limit, window.Skip)
}

// ListByPublisher returns every series of one publisher.
func (repository *seriesRepository) ListByPublisher(context context.Context, publisherID int64, window pagination.Window) ([]*Series, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s s
		WHERE s.%s = $1
		ORDER BY s.%s ASC, s.%s ASC
		LIMIT $2 OFFSET $3`,
		seriesColumns, schema.Series.Table,
		schema.Series.PublisherID,
		schema.Series.Title, schema.Series.ID)

	return repository.query(context, "list_series_by_publisher", query, publisherID, window.Limit, window.Skip)
}

// Delete removes the series; volumes and ledger entries follow by cascade.
func (repository *seriesRepository) Delete(context context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Series.Table, schema.Series.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_series")
	}
	return tag.RowsAffected() > 0, nil
}

func (repository *seriesRepository) query(context context.Context, action, query string, args ...any) ([]*Series, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	list := []*Series{}
	for rows.Next() {
		series := &Series{}
		if err := rows.Scan(seriesDestinations(series)...); err != nil {
			return nil, dberr.Wrap(err, action)
		}
		list = append(list, series)
	}

	return list, dberr.Wrap(rows.Err(), action)
}

// seriesDestinations lists scan targets in [schema.SeriesTable.Columns] order.
func seriesDestinations(series *Series) []any {
	return []any{
		&series.ID, &series.Title, &series.Author, &series.PublisherID, &series.EditionType,
		&series.TotalVolumes, &series.IsCompleted, &series.Description, &series.CoverImageURL,
		&series.StartedPublicationDate, &series.EndedPublicationDate,
	}
}
