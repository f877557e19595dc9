// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosanz/mangashelfapi/internal/platform/database/schema"
	"github.com/gosanz/mangashelfapi/internal/platform/dberr"
)

// # PostgreSQL Repository

// userRepository implements [UserRepository] using pgx.
type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed identity store.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// UserSelectList returns the column list [ScanUser] expects, qualified with
// alias when it is not empty.
func UserSelectList(alias string) string {
	return schema.List(alias, schema.User.Columns())
}

// ScanUser reads one row selected with [UserSelectList].
func ScanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.GoogleID, &user.AppleID, &user.Role, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt, &user.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID returns a user by primary key.
func (repository *userRepository) FindByID(context context.Context, id string) (*User, bool, error) {
	return repository.findOne(context, "find_user_by_id", schema.User.ID, id)
}

// FindByUsername returns a user by exact username.
func (repository *userRepository) FindByUsername(context context.Context, username string) (*User, bool, error) {
	return repository.findOne(context, "find_user_by_username", schema.User.Username, username)
}

// FindByEmail returns a user by email. Emails are stored lower-cased.
func (repository *userRepository) FindByEmail(context context.Context, email string) (*User, bool, error) {
	return repository.findOne(context, "find_user_by_email", schema.User.Email, email)
}

// FindByProvider returns a user by Google or Apple subject id.
func (repository *userRepository) FindByProvider(context context.Context, provider Provider, subject string) (*User, bool, error) {
	column, err := providerColumn(provider)
	if err != nil {
		return nil, false, err
	}
	return repository.findOne(context, "find_user_by_provider", column, subject)
}

// Create inserts a user row.
func (repository *userRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		schema.User.Table, UserSelectList(""),
	)

	_, err := repository.pool.Exec(context, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.GoogleID, user.AppleID, user.Role, user.IsActive,
		user.CreatedAt, user.UpdatedAt, user.DeletedAt,
	)
	return dberr.Wrap(err, "create_user")
}

// LinkProvider stores the provider subject on an existing user.
func (repository *userRepository) LinkProvider(context context.Context, userID string, provider Provider, subject string) error {
	column, err := providerColumn(provider)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		schema.User.Table, column, schema.User.UpdatedAt, schema.User.ID)

	tag, err := repository.pool.Exec(context, query, subject, userID)
	if err != nil {
		return dberr.Wrap(err, "link_provider")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *userRepository) findOne(context context.Context, action, column string, value any) (*User, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		UserSelectList(""), schema.User.Table, column)

	user, err := ScanUser(repository.pool.QueryRow(context, query, value))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, dberr.Wrap(err, action)
	}
	return user, true, nil
}

func providerColumn(provider Provider) (string, error) {
	switch provider {
	case ProviderGoogle:
		return schema.User.GoogleID, nil
	case ProviderApple:
		return schema.User.AppleID, nil
	default:
		return "", fmt.Errorf("auth: unknown provider %q", provider)
	}
}
