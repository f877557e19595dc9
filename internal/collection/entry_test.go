// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package collection_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosanz/mangashelfapi/internal/collection"
	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
	"github.com/gosanz/mangashelfapi/pkg/pointer"
)

var (
	firstInstant  = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	secondInstant = time.Date(2026, 3, 5, 18, 30, 0, 0, time.UTC)
)

func decodePatch(t *testing.T, body string) collection.Patch {
	t.Helper()

	var patch collection.Patch
	require.NoError(t, json.Unmarshal([]byte(body), &patch))
	return patch
}

/*
TestNewEntry_StampsWithAddedAt checks that flags given at creation share the
added_at instant.
*/
func TestNewEntry_StampsWithAddedAt(t *testing.T) {
	entry := collection.NewEntry("u1", collection.AddInput{VolumeID: 7, IsReading: true, IsCompleted: true}, firstInstant)

	assert.Equal(t, firstInstant, entry.AddedAt)
	require.NotNil(t, entry.StartedReadingAt)
	require.NotNil(t, entry.CompletedReadingAt)
	assert.Equal(t, firstInstant, *entry.StartedReadingAt)
	assert.Equal(t, firstInstant, *entry.CompletedReadingAt)

	plain := collection.NewEntry("u1", collection.AddInput{VolumeID: 8, IsOwned: true}, firstInstant)
	assert.Nil(t, plain.StartedReadingAt)
	assert.Nil(t, plain.CompletedReadingAt)
}

/*
TestPatch_ApplyTo_ReadingStampIsMonotonic verifies the set-once rule.
*/
func TestPatch_ApplyTo_ReadingStampIsMonotonic(t *testing.T) {
	entry := collection.NewEntry("u1", collection.AddInput{VolumeID: 1, IsOwned: true}, firstInstant)

	decodePatch(t, `{"is_reading": true}`).ApplyTo(entry, firstInstant)
	require.NotNil(t, entry.StartedReadingAt)
	assert.Equal(t, firstInstant, *entry.StartedReadingAt)

	decodePatch(t, `{"is_reading": false}`).ApplyTo(entry, secondInstant)
	assert.False(t, entry.IsReading)
	assert.Equal(t, firstInstant, *entry.StartedReadingAt)

	decodePatch(t, `{"is_reading": true}`).ApplyTo(entry, secondInstant)
	assert.True(t, entry.IsReading)
	assert.Equal(t, firstInstant, *entry.StartedReadingAt)

	decodePatch(t, `{"is_completed": true}`).ApplyTo(entry, secondInstant)
	require.NotNil(t, entry.CompletedReadingAt)
	assert.Equal(t, secondInstant, *entry.CompletedReadingAt)
}

/*
TestPatch_ApplyTo_Sparse distinguishes absent, null and value.
*/
func TestPatch_ApplyTo_Sparse(t *testing.T) {
	entry := collection.NewEntry("u1", collection.AddInput{
		VolumeID:      1,
		IsOwned:       true,
		PurchasePrice: pointer.To(decimal.RequireFromString("9.95")),
		Condition:     pointer.To("new"),
		Notes:         pointer.To("signed"),
	}, firstInstant)

	decodePatch(t, `{"notes": null, "condition": "used", "is_wishlist": true}`).ApplyTo(entry, secondInstant)

	assert.True(t, entry.IsOwned)
	assert.True(t, entry.IsWishlist)
	assert.Nil(t, entry.Notes)
	assert.Equal(t, "used", *entry.Condition)
	assert.True(t, decimal.RequireFromString("9.95").Equal(*entry.PurchasePrice))
	assert.Nil(t, entry.StartedReadingAt)
}

/*
TestPatch_Validate rejects null flags and malformed prices.
*/
func TestPatch_Validate(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"null_flag", `{"is_owned": null}`, collection.FieldIsOwned},
		{"negative_price", `{"purchase_price": -1}`, collection.FieldPurchasePrice},
		{"three_decimals", `{"purchase_price": "1.005"}`, collection.FieldPurchasePrice},
		{"too_large", `{"purchase_price": 100000000}`, collection.FieldPurchasePrice},
		{"valid", `{"purchase_price": 12.5, "notes": null, "is_reading": true}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodePatch(t, tt.body).Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, apperr.CodeValidation, appError.Code)
			assert.Equal(t, tt.field, appError.Details[0].Field)
		})
	}
}
