// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package collection

import (
	"context"

	"github.com/gosanz/mangashelfapi/pkg/pagination"
)

// # Data Access

// Repository defines the data access contract for ledger entries.
type Repository interface {

	/*
		Insert persists a new entry.

		Returns:
		  - error: apperr.Conflict when (user, volume) already exists,
		    apperr.NotFound when the user or volume row is gone
	*/
	Insert(context context.Context, entry *Entry) error

	/*
		Find returns one entry with its volume and series embedded.

		Returns:
		  - bool: false when the user does not hold the volume
	*/
	Find(context context.Context, userID string, volumeID int64) (*Entry, bool, error)

	// Exists reports whether (user, volume) is present.
	Exists(context context.Context, userID string, volumeID int64) (bool, error)

	/*
		Update locks the entry, lets mutate change it and writes it back in the
		same transaction.

		Returns:
		  - bool: false when the entry does not exist (mutate is not called)
	*/
	Update(context context.Context, userID string, volumeID int64, mutate func(*Entry)) (bool, error)

	// Delete removes the entry. It reports whether a row was removed.
	Delete(context context.Context, userID string, volumeID int64) (bool, error)

	// ListByUser returns entries ordered by added_at then volume id.
	ListByUser(context context.Context, userID string, filter Filter, window pagination.Window) ([]*Entry, error)
}
