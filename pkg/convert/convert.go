// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package convert parses loosely typed strings, such as query parameters,
into values with a fallback instead of an error.

Use it only where a malformed value and a missing one mean the same thing.
Endpoints that must reject bad input use request.QueryInt instead.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD parses s as a base-10 int, returning def when s is blank or
// malformed.
func ToIntD(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}

	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
