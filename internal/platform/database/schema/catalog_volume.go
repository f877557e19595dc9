// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package schema

// VolumeTable represents the 'manga_volumes' table
type VolumeTable struct {
	Table         string
	ID            string
	SeriesID      string
	VolumeNumber  string
	ISBN          string
	Title         string
	Pages         string
	Chapters      string
	ReleaseDate   string
	CoverImageURL string
}

// Volume is the schema definition for manga_volumes
var Volume = VolumeTable{
	Table:         "manga_volumes",
	ID:            "id",
	SeriesID:      "series_id",
	VolumeNumber:  "volume_number",
	ISBN:          "isbn",
	Title:         "title",
	Pages:         "pages",
	Chapters:      "chapters",
	ReleaseDate:   "release_date",
	CoverImageURL: "cover_image_url",
}

// Columns returns all standard column names
func (t VolumeTable) Columns() []string {
	return []string{
		t.ID, t.SeriesID, t.VolumeNumber, t.ISBN, t.Title, t.Pages,
		t.Chapters, t.ReleaseDate, t.CoverImageURL,
	}
}
