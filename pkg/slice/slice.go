// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package slice complements the standard [slices] package with small generic
helpers used by the read-side aggregations.
*/
package slice

// Map transforms every element. The result is never nil, so it encodes as a
// JSON array even when empty.
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter keeps the elements for which predicate is true. The result is never nil.
func Filter[T any](input []T, predicate func(T) bool) []T {
	result := make([]T, 0, len(input))
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}

// Take returns at most the first n elements. A non-positive n yields an
// empty slice.
func Take[T any](input []T, n int) []T {
	if n <= 0 {
		return input[:0]
	}
	if n > len(input) {
		return input
	}
	return input[:n]
}
