// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

// Package slug folds arbitrary Unicode text into lowercase ASCII tokens, as
// used for generated usernames ("kaori-miyazono").
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// From slugs s with '-' between words.
func From(s string) string {
	return WithSeparator(s, '-')
}

/*
WithSeparator decomposes s (NFD), drops combining marks, lowercases it and
keeps only ASCII letters and digits. Every other run of characters becomes a
single separator; leading and trailing separators are trimmed.

Letters with no ASCII decomposition ("ł", "の") are treated as separators.
*/
func WithSeparator(s string, separator rune) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), s)
	if err != nil {
		folded = s
	}

	var builder strings.Builder
	builder.Grow(len(folded))

	pending := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && builder.Len() > 0 {
				builder.WriteRune(separator)
			}
			builder.WriteRune(r)
			pending = false
			continue
		}
		pending = true
	}

	return builder.String()
}
