// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package optional_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosanz/mangashelfapi/pkg/optional"
)

type notePatch struct {
	Notes  optional.Value[string] `json:"notes"`
	Owned  optional.Value[bool]   `json:"owned"`
	Volume optional.Value[int]    `json:"volume"`
}

/*
TestValue_UnmarshalJSON distinguishes absent, null and present fields.
*/
func TestValue_UnmarshalJSON(t *testing.T) {
	var patch notePatch
	require.NoError(t, json.Unmarshal([]byte(`{"notes": null, "owned": false}`), &patch))

	// 1. Explicit null
	assert.True(t, patch.Notes.Set)
	assert.True(t, patch.Notes.Null)
	assert.Nil(t, patch.Notes.Ptr())

	// 2. Present false is still a value
	assert.True(t, patch.Owned.HasValue())
	assert.False(t, patch.Owned.Val)

	// 3. Absent
	assert.False(t, patch.Volume.Set)
	assert.False(t, patch.Volume.HasValue())
}

/*
TestValue_UnmarshalJSON_TypeMismatch rejects a value of the wrong type.
*/
func TestValue_UnmarshalJSON_TypeMismatch(t *testing.T) {
	var patch notePatch
	err := json.Unmarshal([]byte(`{"volume": "three"}`), &patch)
	assert.Error(t, err)
}

/*
TestValue_Apply covers the three patch outcomes on a nullable target.
*/
func TestValue_Apply(t *testing.T) {
	original := "first edition"

	t.Run("absent_keeps", func(t *testing.T) {
		target := &original
		optional.Value[string]{}.Apply(&target)
		require.NotNil(t, target)
		assert.Equal(t, "first edition", *target)
	})

	t.Run("null_clears", func(t *testing.T) {
		target := &original
		optional.Null[string]().Apply(&target)
		assert.Nil(t, target)
	})

	t.Run("value_replaces", func(t *testing.T) {
		target := &original
		optional.Of("signed copy").Apply(&target)
		require.NotNil(t, target)
		assert.Equal(t, "signed copy", *target)
		assert.Equal(t, "first edition", original)
	})
}

/*
TestValue_MarshalJSON encodes absent and null as null.
*/
func TestValue_MarshalJSON(t *testing.T) {
	encoded, err := json.Marshal(notePatch{Notes: optional.Of("mint"), Owned: optional.Null[bool]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"notes":"mint","owned":null,"volume":null}`, string(encoded))
}
