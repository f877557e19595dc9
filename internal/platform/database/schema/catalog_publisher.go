// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

// Package schema names every table and column used in hand-written SQL.
package schema

// PublisherTable represents the 'publishers' table
type PublisherTable struct {
	Table    string
	ID       string
	Name     string
	Country  string
	IsActive string
}

// Publisher is the schema definition for publishers
var Publisher = PublisherTable{
	Table:    "publishers",
	ID:       "id",
	Name:     "name",
	Country:  "country",
	IsActive: "is_active",
}

// Columns returns all standard column names
func (t PublisherTable) Columns() []string {
	return []string{t.ID, t.Name, t.Country, t.IsActive}
}
