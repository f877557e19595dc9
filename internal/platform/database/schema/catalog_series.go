// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package schema

// SeriesTable represents the 'manga_series' table
type SeriesTable struct {
	Table                  string
	ID                     string
	Title                  string
	Author                 string
	PublisherID            string
	EditionType            string
	TotalVolumes           string
	IsCompleted            string
	Description            string
	CoverImageURL          string
	StartedPublicationDate string
	EndedPublicationDate   string
}

// Series is the schema definition for manga_series
var Series = SeriesTable{
	Table:                  "manga_series",
	ID:                     "id",
	Title:                  "title",
	Author:                 "author",
	PublisherID:            "publisher_id",
	EditionType:            "edition_type",
	TotalVolumes:           "total_volumes",
	IsCompleted:            "is_completed",
	Description:            "description",
	CoverImageURL:          "cover_image_url",
	StartedPublicationDate: "started_publication_date",
	EndedPublicationDate:   "ended_publication_date",
}

// Columns returns all standard column names
func (t SeriesTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Author, t.PublisherID, t.EditionType, t.TotalVolumes,
		t.IsCompleted, t.Description, t.CoverImageURL, t.StartedPublicationDate,
		t.EndedPublicationDate,
	}
}
