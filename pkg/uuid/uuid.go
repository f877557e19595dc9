// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package uuid generates the time-ordered identifiers used for user ids and
request ids.

Version 7 values sort by creation time, which keeps the users primary key
index append-mostly.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string. It panics only when the system entropy
// source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
