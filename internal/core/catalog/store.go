// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package catalog

import (
	"context"

	"github.com/gosanz/mangashelfapi/pkg/pagination"
)

// # Publisher Data Access

// PublisherRepository defines the data access contract for publishers.
type PublisherRepository interface {

	/*
		Create persists a new publisher and fills its ID.

		Returns:
		  - error: apperr.Conflict on a duplicate name
	*/
	Create(context context.Context, publisher *Publisher) error

	/*
		FindByID returns the publisher with the given ID.

		Returns:
		  - *Publisher: nil when absent
		  - bool: false when absent
		  - error: storage failures only
	*/
	FindByID(context context.Context, id int64) (*Publisher, bool, error)

	// List returns publishers ordered by name.
	List(context context.Context, window pagination.Window) ([]*Publisher, error)

	// Search returns publishers whose name contains the term (case-insensitive).
	Search(context context.Context, term string, window pagination.Window) ([]*Publisher, error)
}

// # Series Data Access

// SeriesRepository defines the data access contract for manga series.
type SeriesRepository interface {

	/*
		Create persists a new series and fills its ID.

		Returns:
		  - error: apperr.NotFound when publisher_id does not exist
	*/
	Create(context context.Context, series *Series) error

	/*
		FindByID returns the series with its publisher hydrated.

		Returns:
		  - bool: false when absent
	*/
	FindByID(context context.Context, id int64) (*Series, bool, error)

	// List returns series ordered by title then id.
	List(context context.Context, window pagination.Window) ([]*Series, error)

	// Search returns series whose title or author contains the term.
	Search(context context.Context, term string, window pagination.Window) ([]*Series, error)

	// ListByPublisher returns the series of one publisher ordered by title.
	ListByPublisher(context context.Context, publisherID int64, window pagination.Window) ([]*Series, error)

	/*
		Delete removes a series. Its volumes and their collection entries are
		removed by cascade in the same statement.

		Returns:
		  - bool: false when nothing was deleted
	*/
	Delete(context context.Context, id int64) (bool, error)
}

// # Volume Data Access

// VolumeRepository defines the data access contract for manga volumes.
type VolumeRepository interface {

	/*
		Create persists a new volume and fills its ID.

		Returns:
		  - error: apperr.Conflict on duplicate ISBN or (series, number)
	*/
	Create(context context.Context, volume *Volume) error

	/*
		CreateBulk persists every volume in one transaction: all or nothing.
	*/
	CreateBulk(context context.Context, volumes []*Volume) error

	// FindByID returns the volume with its series hydrated.
	FindByID(context context.Context, id int64) (*Volume, bool, error)

	// FindByISBN returns the volume with the exact ISBN.
	FindByISBN(context context.Context, isbn string) (*Volume, bool, error)

	// Exists reports whether a volume id is present.
	Exists(context context.Context, id int64) (bool, error)

	// List returns volumes ordered by id.
	List(context context.Context, window pagination.Window) ([]*Volume, error)

	// ListBySeries returns the volumes of one series ordered by volume number.
	ListBySeries(context context.Context, seriesID int64, window pagination.Window) ([]*Volume, error)

	// Search returns volumes whose title or ISBN contains the term.
	Search(context context.Context, term string, window pagination.Window) ([]*Volume, error)

	// Delete removes a volume and, by cascade, its collection entries.
	Delete(context context.Context, id int64) (bool, error)
}
