// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gosanz/mangashelfapi/pkg/slice"
)

/*
TestMapFilter checks that empty inputs still produce non-nil results.
*/
func TestMapFilter(t *testing.T) {
	doubled := slice.Map([]int{1, 2, 3}, func(v int) int { return v * 2 })
	assert.Equal(t, []int{2, 4, 6}, doubled)

	assert.NotNil(t, slice.Map[int, int](nil, func(v int) int { return v }))

	even := slice.Filter([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)

	assert.NotNil(t, slice.Filter([]int{1}, func(int) bool { return false }))
}

/*
TestTake covers the truncation bounds.
*/
func TestTake(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []int
	}{
		{"fewer", 2, []int{1, 2}},
		{"more", 10, []int{1, 2, 3}},
		{"zero", 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slice.Take([]int{1, 2, 3}, tt.n))
		})
	}
}
