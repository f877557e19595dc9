// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package catalog manages the shared reference data every collection points at:
publishers, manga series and the physical volumes of each series.

# Architecture

  - Entities: Publisher, Series, Volume.
  - Ownership: a Volume belongs to exactly one Series; a Series optionally
    references a Publisher by id. References are plain ids, never back-pointers.
  - Integrity: deleting a Series deletes its Volumes and every collection
    entry that points at them (ON DELETE CASCADE in the schema).
*/
package catalog

import (
	"github.com/gosanz/mangashelfapi/pkg/civil"
)

// # Domain Entities

// Publisher is an editorial house. Names are unique.
type Publisher struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Country  *string `json:"country"`
	IsActive bool    `json:"is_active"`
}

// Series is a manga title in one edition.
type Series struct {
	ID                     int64       `json:"id"`
	Title                  string      `json:"title"`
	Author                 *string     `json:"author"`
	PublisherID            *int64      `json:"publisher_id"`
	EditionType            *string     `json:"edition_type"`
	TotalVolumes           *int        `json:"total_volumes"`
	IsCompleted            bool        `json:"is_completed"`
	Description            *string     `json:"description"`
	CoverImageURL          *string     `json:"cover_image_url"`
	StartedPublicationDate *civil.Date `json:"started_publication_date"`
	EndedPublicationDate   *civil.Date `json:"ended_publication_date"`

	// Publisher is hydrated on single-series lookups only.
	Publisher *Publisher `json:"publisher,omitempty"`
}

// Volume is one physical tome of a series.
type Volume struct {
	ID            int64       `json:"id"`
	SeriesID      int64       `json:"series_id"`
	VolumeNumber  int         `json:"volume_number"`
	ISBN          *string     `json:"isbn"`
	Title         *string     `json:"title"`
	Pages         *int        `json:"pages"`
	Chapters      *string     `json:"chapters"`
	ReleaseDate   *civil.Date `json:"release_date"`
	CoverImageURL *string     `json:"cover_image_url"`

	// Series is hydrated on single-volume lookups and ledger reads.
	Series *Series `json:"series,omitempty"`
}

// # Inputs

// PublisherInput carries the fields accepted when creating a publisher.
type PublisherInput struct {
	Name     string  `json:"name"`
	Country  *string `json:"country"`
	IsActive *bool   `json:"is_active"`
}

// SeriesInput carries the fields accepted when creating a series.
type SeriesInput struct {
	Title                  string      `json:"title"`
	Author                 *string     `json:"author"`
	PublisherID            *int64      `json:"publisher_id"`
	EditionType            *string     `json:"edition_type"`
	TotalVolumes           *int        `json:"total_volumes"`
	IsCompleted            bool        `json:"is_completed"`
	Description            *string     `json:"description"`
	CoverImageURL          *string     `json:"cover_image_url"`
	StartedPublicationDate *civil.Date `json:"started_publication_date"`
	EndedPublicationDate   *civil.Date `json:"ended_publication_date"`
}

// VolumeInput carries the fields accepted when creating a volume.
type VolumeInput struct {
	SeriesID      int64       `json:"series_id"`
	VolumeNumber  int         `json:"volume_number"`
	ISBN          *string     `json:"isbn"`
	Title         *string     `json:"title"`
	Pages         *int        `json:"pages"`
	Chapters      *string     `json:"chapters"`
	ReleaseDate   *civil.Date `json:"release_date"`
	CoverImageURL *string     `json:"cover_image_url"`
}

// # Field Identifiers

const (
	FieldName          = "name"
	FieldCountry       = "country"
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldPublisherID   = "publisher_id"
	FieldEditionType   = "edition_type"
	FieldTotalVolumes  = "total_volumes"
	FieldDescription   = "description"
	FieldCoverImageURL = "cover_image_url"
	FieldEndedDate     = "ended_publication_date"
	FieldSeriesID      = "series_id"
	FieldVolumeNumber  = "volume_number"
	FieldISBN          = "isbn"
	FieldPages         = "pages"
	FieldChapters      = "chapters"
	FieldVolumes       = "volumes"
	FieldQuery         = "q"
)

// # Limits

const (
	maxNameLength        = 200
	maxTitleLength       = 300
	maxShortTextLength   = 100
	maxDescriptionLength = 5000

	// MaxBulkVolumes caps a single bulk insert.
	MaxBulkVolumes = 200
)
