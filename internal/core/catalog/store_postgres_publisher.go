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

var publisherColumns = schema.List("", schema.Publisher.Columns())

// Create inserts a publisher row.
func (repository *publisherRepository) Create(context context.Context, publisher *Publisher) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s`,
		schema.Publisher.Table, schema.Publisher.Name, schema.Publisher.Country, schema.Publisher.IsActive,
		schema.Publisher.ID,
	)

	err := repository.pool.QueryRow(context, query, publisher.Name, publisher.Country, publisher.IsActive).
		Scan(&publisher.ID)
	return dberr.Wrap(err, "create_publisher")
}

// FindByID returns one publisher.
func (repository *publisherRepository) FindByID(context context.Context, id int64) (*Publisher, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		publisherColumns, schema.Publisher.Table, schema.Publisher.ID)

	publisher, err := scanPublisher(repository.pool.QueryRow(context, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, dberr.Wrap(err, "find_publisher")
	}
	return publisher, true, nil
}

// List returns publishers ordered by name.
func (repository *publisherRepository) List(context context.Context, window pagination.Window) ([]*Publisher, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC LIMIT $1 OFFSET $2`,
		publisherColumns, schema.Publisher.Table, schema.Publisher.Name)

	return repository.query(context, "list_publishers", query, window.Limit, window.Skip)
}

// Search matches the name with ILIKE.
func (repository *publisherRepository) Search(context context.Context, term string, window pagination.Window) ([]*Publisher, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s ILIKE $1
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3`,
		publisherColumns, schema.Publisher.Table, schema.Publisher.Name, schema.Publisher.Name)

	return repository.query(context, "search_publishers", query, searchPattern(term), window.Limit, window.Skip)
}

func (repository *publisherRepository) query(context context.Context, action, query string, args ...any) ([]*Publisher, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	publishers := []*Publisher{}
	for rows.Next() {
		publisher, err := scanPublisher(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		publishers = append(publishers, publisher)
	}

	return publishers, dberr.Wrap(rows.Err(), action)
}

func scanPublisher(row rowScanner) (*Publisher, error) {
	publisher := &Publisher{}
	if err := row.Scan(&publisher.ID, &publisher.Name, &publisher.Country, &publisher.IsActive); err != nil {
		return nil, err
	}
	return publisher, nil
}
