// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gosanz/mangashelfapi/pkg/convert"
)

func TestToIntD(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 7},
		{"  ", 7},
		{"25", 25},
		{" 3 ", 3},
		{"-4", -4},
		{"ten", 7},
		{"1.5", 7},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, convert.ToIntD(tt.input, 7))
		})
	}
}
