// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package schema

// CollectionEntryTable represents the 'user_collection_entries' table
type CollectionEntryTable struct {
	Table              string
	UserID             string
	VolumeID           string
	IsOwned            string
	IsReading          string
	IsCompleted        string
	IsWishlist         string
	AddedAt            string
	StartedReadingAt   string
	CompletedReadingAt string
	PurchasePrice      string
	PurchaseDate       string
	Condition          string
	Notes              string
}

// CollectionEntry is the schema definition for user_collection_entries
var CollectionEntry = CollectionEntryTable{
	Table:              "user_collection_entries",
	UserID:             "user_id",
	VolumeID:           "volume_id",
	IsOwned:            "is_owned",
	IsReading:          "is_reading",
	IsCompleted:        "is_completed",
	IsWishlist:         "is_wishlist",
	AddedAt:            "added_at",
	StartedReadingAt:   "started_reading_at",
	CompletedReadingAt: "completed_reading_at",
	PurchasePrice:      "purchase_price",
	PurchaseDate:       "purchase_date",
	Condition:          "condition",
	Notes:              "notes",
}

// Columns returns all standard column names
func (t CollectionEntryTable) Columns() []string {
	return []string{
		t.UserID, t.VolumeID, t.IsOwned, t.IsReading, t.IsCompleted, t.IsWishlist,
		t.AddedAt, t.StartedReadingAt, t.CompletedReadingAt, t.PurchasePrice,
		t.PurchaseDate, t.Condition, t.Notes,
	}
}
