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

var (
	volumeColumns = schema.List("v", schema.Volume.Columns())

	insertVolumeQuery = fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`,
		schema.Volume.Table,
		schema.Volume.SeriesID, schema.Volume.VolumeNumber, schema.Volume.ISBN, schema.Volume.Title,
		schema.Volume.Pages, schema.Volume.Chapters, schema.Volume.ReleaseDate, schema.Volume.CoverImageURL,
		schema.Volume.ID,
	)
)

// Create inserts one volume row.
func (repository *volumeRepository) Create(context context.Context, volume *Volume) error {
	err := repository.pool.QueryRow(context, insertVolumeQuery, volumeArgs(volume)...).Scan(&volume.ID)
	return dberr.Wrap(err, "create_volume")
}

// CreateBulk inserts every volume inside a single transaction.
func (repository *volumeRepository) CreateBulk(context context.Context, volumes []*Volume) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_bulk_volumes")
	}
	defer func() { _ = transaction.Rollback(context) }()

	for _, volume := range volumes {
		if err := transaction.QueryRow(context, insertVolumeQuery, volumeArgs(volume)...).Scan(&volume.ID); err != nil {
			return dberr.Wrap(err, "create_bulk_volumes")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_bulk_volumes")
	}
	return nil
}

// FindByID returns the volume joined with its series.
func (repository *volumeRepository) FindByID(context context.Context, id int64) (*Volume, bool, error) {
	return repository.findOne(context, "find_volume", schema.Volume.ID, id)
}

// FindByISBN returns the volume joined with its series.
func (repository *volumeRepository) FindByISBN(context context.Context, isbn string) (*Volume, bool, error) {
	return repository.findOne(context, "find_volume_by_isbn", schema.Volume.ISBN, isbn)
}

func (repository *volumeRepository) findOne(context context.Context, action, column string, value any) (*Volume, bool, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s v
		JOIN %s s ON s.%s = v.%s
		WHERE v.%s = $1`,
		volumeColumns, seriesColumns,
		schema.Volume.Table,
		schema.Series.Table, schema.Series.ID, schema.Volume.SeriesID,
		column,
	)

	volume := &Volume{Series: &Series{}}
	destinations := append(volumeDestinations(volume), seriesDestinations(volume.Series)...)

	err := repository.pool.QueryRow(context, query, value).Scan(destinations...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, dberr.Wrap(err, action)
	}
	return volume, true, nil
}

// Exists reports whether the volume id is present.
func (repository *volumeRepository) Exists(context context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.Volume.Table, schema.Volume.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "volume_exists")
	}
	return exists, nil
}

// List returns volumes ordered by id.
func (repository *volumeRepository) List(context context.Context, window pagination.Window) ([]*Volume, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s v
		ORDER BY v.%s ASC
		LIMIT $1 OFFSET $2`,
		volumeColumns, schema.Volume.Table, schema.Volume.ID)

	return repository.query(context, "list_volumes", query, window.Limit, window.Skip)
}

// ListBySeries returns the volumes of a series by number.
func (repository *volumeRepository) ListBySeries(context context.Context, seriesID int64, window pagination.Window) ([]*Volume, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s v
		WHERE v.%s = $1
		ORDER BY v.%s ASC
		LIMIT $2 OFFSET $3`,
		volumeColumns, schema.Volume.Table,
		schema.Volume.SeriesID, schema.Volume.VolumeNumber)

	return repository.query(context, "list_volumes_by_series", query, seriesID, window.Limit, window.Skip)
}

// Search matches title or ISBN with ILIKE.
func (repository *volumeRepository) Search(context context.Context, term string, window pagination.Window) ([]*Volume, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s v
		WHERE v.%s ILIKE $1 OR v.%s ILIKE $1
		ORDER BY v.%s ASC, v.%s ASC
		LIMIT $2 OFFSET $3`,
		volumeColumns, schema.Volume.Table,
		schema.Volume.Title, schema.Volume.ISBN,
		schema.Volume.SeriesID, schema.Volume.VolumeNumber)

	return repository.query(context, "search_volumes", query, searchPattern(term), window.Limit, window.Skip)
}

// Delete removes the volume; its ledger entries follow by cascade.
func (repository *volumeRepository) Delete(context context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Volume.Table, schema.Volume.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_volume")
	}
	return tag.RowsAffected() > 0, nil
}

func (repository *volumeRepository) query(context context.Context, action, query string, args ...any) ([]*Volume, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	volumes := []*Volume{}
	for rows.Next() {
		volume := &Volume{}
		if err := rows.Scan(volumeDestinations(volume)...); err != nil {
			return nil, dberr.Wrap(err, action)
		}
		volumes = append(volumes, volume)
	}

	return volumes, dberr.Wrap(rows.Err(), action)
}

func volumeArgs(volume *Volume) []any {
	return []any{
		volume.SeriesID, volume.VolumeNumber, volume.ISBN, volume.Title,
		volume.Pages, volume.Chapters, volume.ReleaseDate, volume.CoverImageURL,
	}
}

// volumeDestinations lists scan targets in [schema.VolumeTable.Columns] order.
func volumeDestinations(volume *Volume) []any {
	return []any{
		&volume.ID, &volume.SeriesID, &volume.VolumeNumber, &volume.ISBN, &volume.Title,
		&volume.Pages, &volume.Chapters, &volume.ReleaseDate, &volume.CoverImageURL,
	}
}

// ScanVolumeWithSeries exposes the joined scan layout to packages that embed
// volumes in their own rows. Columns must be selected with [VolumeSelectList].
func ScanVolumeWithSeries(volume *Volume) []any {
	volume.Series = &Series{}
	return append(volumeDestinations(volume), seriesDestinations(volume.Series)...)
}

// VolumeSelectList returns the SELECT list matching [ScanVolumeWithSeries]
// for the given volume and series aliases.
func VolumeSelectList(volumeAlias, seriesAlias string) string {
	return schema.List(volumeAlias, schema.Volume.Columns()) + ", " + schema.List(seriesAlias, schema.Series.Columns())
}
