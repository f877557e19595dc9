// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosanz/mangashelfapi/internal/platform/database/schema"
	"github.com/gosanz/mangashelfapi/internal/platform/dberr"
	"github.com/gosanz/mangashelfapi/internal/users/auth"
)

// # PostgreSQL Repository

// repository implements [Repository] using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed account store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// FindByID returns a user including one pending deletion.
func (repository *repository) FindByID(context context.Context, id string) (*auth.User, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		auth.UserSelectList(""), schema.User.Table, schema.User.ID)

	user, err := auth.ScanUser(repository.pool.QueryRow(context, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, dberr.Wrap(err, "find_account")
	}
	return user, true, nil
}

// IsActive reads the is_active flag.
func (repository *repository) IsActive(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.User.IsActive, schema.User.Table, schema.User.ID)

	var isActive bool
	err := repository.pool.QueryRow(context, query, id).Scan(&isActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, dberr.Wrap(err, "account_is_active")
	}
	return isActive, nil
}

// MarkDeleted starts the grace period. A second call is a no-op.
func (repository *repository) MarkDeleted(context context.Context, id string, at time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = FALSE, %s = $2
		WHERE %s = $1 AND %s IS NULL`,
		schema.User.Table, schema.User.DeletedAt, schema.User.IsActive, schema.User.UpdatedAt,
		schema.User.ID, schema.User.DeletedAt,
	)

	_, err := repository.pool.Exec(context, query, id, at)
	return dberr.Wrap(err, "mark_account_deleted")
}

// ClearDeleted ends the grace period early. The grace guard sits in the
// WHERE clause so a restore racing a purge or an expiry cannot slip through.
func (repository *repository) ClearDeleted(context context.Context, id string, notBefore, at time.Time) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = NULL, %s = TRUE, %s = $3
		WHERE %s = $1 AND %s IS NOT NULL AND %s >= $2`,
		schema.User.Table, schema.User.DeletedAt, schema.User.IsActive, schema.User.UpdatedAt,
		schema.User.ID, schema.User.DeletedAt, schema.User.DeletedAt,
	)

	tag, err := repository.pool.Exec(context, query, id, notBefore, at)
	if err != nil {
		return false, dberr.Wrap(err, "clear_account_deleted")
	}
	return tag.RowsAffected() == 1, nil
}

// Purge removes the ledger and then the user in one transaction. The
// deleted_at guard is re-checked under the transaction so a concurrent
// restore wins.
func (repository *repository) Purge(context context.Context, id string, cutoff time.Time) (bool, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return false, dberr.Wrap(err, "purge_account_begin")
	}
	defer func() { _ = transaction.Rollback(context) }()

	lockQuery := fmt.Sprintf(`
		SELECT 1 FROM %s
		WHERE %s = $1 AND %s IS NOT NULL AND %s < $2
		FOR UPDATE`,
		schema.User.Table, schema.User.ID, schema.User.DeletedAt, schema.User.DeletedAt)

	var locked int
	err = transaction.QueryRow(context, lockQuery, id, cutoff).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, dberr.Wrap(err, "purge_account_lock")
	}

	entriesQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CollectionEntry.Table, schema.CollectionEntry.UserID)
	if _, err := transaction.Exec(context, entriesQuery, id); err != nil {
		return false, dberr.Wrap(err, "purge_account_entries")
	}

	userQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.User.Table, schema.User.ID)
	if _, err := transaction.Exec(context, userQuery, id); err != nil {
		return false, dberr.Wrap(err, "purge_account_user")
	}

	if err := transaction.Commit(context); err != nil {
		return false, dberr.Wrap(err, "purge_account_commit")
	}
	return true, nil
}

// ListPurgeCandidates returns accounts deleted before cutoff.
func (repository *repository) ListPurgeCandidates(context context.Context, cutoff time.Time) ([]PurgeCandidate, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s FROM %s
		WHERE %s IS NOT NULL AND %s < $1
		ORDER BY %s ASC, %s ASC`,
		schema.User.ID, schema.User.Username, schema.User.DeletedAt, schema.User.Table,
		schema.User.DeletedAt, schema.User.DeletedAt,
		schema.User.DeletedAt, schema.User.ID,
	)

	rows, err := repository.pool.Query(context, query, cutoff)
	if err != nil {
		return nil, dberr.Wrap(err, "list_purge_candidates")
	}

	candidates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (PurgeCandidate, error) {
		var candidate PurgeCandidate
		err := row.Scan(&candidate.ID, &candidate.Username, &candidate.DeletedAt)
		return candidate, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "list_purge_candidates")
	}
	return candidates, nil
}

// UpdateProfile writes the mutable identity fields.
func (repository *repository) UpdateProfile(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1`,
		schema.User.Table, schema.User.Username, schema.User.Email, schema.User.UpdatedAt,
		schema.User.ID,
	)

	tag, err := repository.pool.Exec(context, query, user.ID, user.Username, user.Email, user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_profile")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// UpdatePassword stores a new bcrypt hash.
func (repository *repository) UpdatePassword(context context.Context, id, passwordHash string, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.User.Table, schema.User.PasswordHash, schema.User.UpdatedAt, schema.User.ID)

	tag, err := repository.pool.Exec(context, query, id, passwordHash, at)
	if err != nil {
		return dberr.Wrap(err, "update_password")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
