// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

// Package pointer builds and reads the optional (*T) fields of catalog and
// ledger records.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, or returns the zero value of T when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
