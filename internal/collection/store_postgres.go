// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosanz/mangashelfapi/internal/core/catalog"
	"github.com/gosanz/mangashelfapi/internal/platform/database/schema"
	"github.com/gosanz/mangashelfapi/internal/platform/dberr"
	"github.com/gosanz/mangashelfapi/pkg/pagination"
)

// # PostgreSQL Repository

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed ledger store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

var (
	entryTable = schema.CollectionEntry

	entryColumns = schema.List("e", entryTable.Columns())

	// selectEntries joins every entry to its volume and series.
	selectEntries = fmt.Sprintf(`
		SELECT %s, %s
		FROM %s e
		JOIN %s v ON v.%s = e.%s
		JOIN %s s ON s.%s = v.%s`,
		entryColumns, catalog.VolumeSelectList("v", "s"),
		entryTable.Table,
		schema.Volume.Table, schema.Volume.ID, entryTable.VolumeID,
		schema.Series.Table, schema.Series.ID, schema.Volume.SeriesID,
	)

	filterColumns = map[Filter]string{
		FilterOwned:    entryTable.IsOwned,
		FilterWishlist: entryTable.IsWishlist,
		FilterReading:  entryTable.IsReading,
	}
)

// Insert stores a new entry.
func (repository *postgresRepository) Insert(context context.Context, entry *Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		entryTable.Table, schema.List("", entryTable.Columns()),
	)

	_, err := repository.pool.Exec(context, query, entryArgs(entry)...)
	return dberr.Wrap(err, "insert_collection_entry")
}

// Find returns the entry with its volume and series.
func (repository *postgresRepository) Find(context context.Context, userID string, volumeID int64) (*Entry, bool, error) {
	query := selectEntries + fmt.Sprintf(` WHERE e.%s = $1 AND e.%s = $2`, entryTable.UserID, entryTable.VolumeID)

	entry, err := scanEntry(repository.pool.QueryRow(context, query, userID, volumeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, dberr.Wrap(err, "find_collection_entry")
	}
	return entry, true, nil
}

// Exists reports whether the pair is in the ledger.
func (repository *postgresRepository) Exists(context context.Context, userID string, volumeID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		entryTable.Table, entryTable.UserID, entryTable.VolumeID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, userID, volumeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "collection_entry_exists")
	}
	return exists, nil
}

// Update performs the locked read-modify-write.
func (repository *postgresRepository) Update(context context.Context, userID string, volumeID int64, mutate func(*Entry)) (bool, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return false, dberr.Wrap(err, "begin_update_collection_entry")
	}
	defer func() { _ = transaction.Rollback(context) }()

	lockQuery := fmt.Sprintf(`
		SELECT %s FROM %s e
		WHERE e.%s = $1 AND e.%s = $2
		FOR UPDATE`,
		entryColumns, entryTable.Table, entryTable.UserID, entryTable.VolumeID)

	entry := &Entry{}
	err = transaction.QueryRow(context, lockQuery, userID, volumeID).Scan(entryDestinations(entry)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, dberr.Wrap(err, "lock_collection_entry")
	}

	mutate(entry)

	updateQuery := fmt.Sprintf(`
		UPDATE %s SET
			%s = $3, %s = $4, %s = $5, %s = $6,
			%s = $7, %s = $8,
			%s = $9, %s = $10, %s = $11, %s = $12
		WHERE %s = $1 AND %s = $2`,
		entryTable.Table,
		entryTable.IsOwned, entryTable.IsReading, entryTable.IsCompleted, entryTable.IsWishlist,
		entryTable.StartedReadingAt, entryTable.CompletedReadingAt,
		entryTable.PurchasePrice, entryTable.PurchaseDate, entryTable.Condition, entryTable.Notes,
		entryTable.UserID, entryTable.VolumeID,
	)

	_, err = transaction.Exec(context, updateQuery,
		userID, volumeID,
		entry.IsOwned, entry.IsReading, entry.IsCompleted, entry.IsWishlist,
		entry.StartedReadingAt, entry.CompletedReadingAt,
		entry.PurchasePrice, entry.PurchaseDate, entry.Condition, entry.Notes,
	)
	if err != nil {
		return false, dberr.Wrap(err, "update_collection_entry")
	}

	if err := transaction.Commit(context); err != nil {
		return false, dberr.Wrap(err, "commit_update_collection_entry")
	}
	return true, nil
}

// Delete removes one entry.
func (repository *postgresRepository) Delete(context context.Context, userID string, volumeID int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		entryTable.Table, entryTable.UserID, entryTable.VolumeID)

	tag, err := repository.pool.Exec(context, query, userID, volumeID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_collection_entry")
	}
	return tag.RowsAffected() > 0, nil
}

// ListByUser returns a filtered window of the user's ledger.
func (repository *postgresRepository) ListByUser(context context.Context, userID string, filter Filter, window pagination.Window) ([]*Entry, error) {
	where := fmt.Sprintf(` WHERE e.%s = $1`, entryTable.UserID)
	if column, ok := filterColumns[filter]; ok {
		where += fmt.Sprintf(` AND e.%s`, column)
	}

	query := selectEntries + where + fmt.Sprintf(`
		ORDER BY e.%s ASC, e.%s ASC
		LIMIT $2 OFFSET $3`,
		entryTable.AddedAt, entryTable.VolumeID)

	rows, err := repository.pool.Query(context, query, userID, window.Limit, window.Skip)
	if err != nil {
		return nil, dberr.Wrap(err, "list_collection_entries")
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "list_collection_entries")
		}
		entries = append(entries, entry)
	}

	return entries, dberr.Wrap(rows.Err(), "list_collection_entries")
}

// # Helpers

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	entry := &Entry{Volume: &catalog.Volume{}}
	destinations := append(entryDestinations(entry), catalog.ScanVolumeWithSeries(entry.Volume)...)

	if err := row.Scan(destinations...); err != nil {
		return nil, err
	}
	return entry, nil
}

// entryDestinations lists scan targets in [schema.CollectionEntryTable.Columns] order.
func entryDestinations(entry *Entry) []any {
	return []any{
		&entry.UserID, &entry.VolumeID,
		&entry.IsOwned, &entry.IsReading, &entry.IsCompleted, &entry.IsWishlist,
		&entry.AddedAt, &entry.StartedReadingAt, &entry.CompletedReadingAt,
		&entry.PurchasePrice, &entry.PurchaseDate, &entry.Condition, &entry.Notes,
	}
}

func entryArgs(entry *Entry) []any {
	return []any{
		entry.UserID, entry.VolumeID,
		entry.IsOwned, entry.IsReading, entry.IsCompleted, entry.IsWishlist,
		entry.AddedAt, entry.StartedReadingAt, entry.CompletedReadingAt,
		entry.PurchasePrice, entry.PurchaseDate, entry.Condition, entry.Notes,
	}
}
