// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package schema

import "strings"

// List joins column names for a SELECT or INSERT list, optionally
// qualifying each with a table alias.
func List(alias string, columns []string) string {
	if alias == "" {
		return strings.Join(columns, ", ")
	}

	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}
