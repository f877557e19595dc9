// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package collection implements the per-user ledger of catalog volumes.

# Architecture

An [Entry] is keyed by (user, volume) and carries four independent flags
(owned, reading, completed, wishlist) plus purchase metadata. Reading and
completion timestamps are stamped the first time the matching flag turns on
and are never reset afterwards.

Entries are removed with their user (account purge) or their volume
(catalog delete) by ON DELETE CASCADE.
*/
package collection

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gosanz/mangashelfapi/internal/core/catalog"
	"github.com/gosanz/mangashelfapi/internal/platform/validate"
	"github.com/gosanz/mangashelfapi/pkg/civil"
	"github.com/gosanz/mangashelfapi/pkg/optional"
)

// # Domain Entities

// Entry is one volume in one user's collection.
type Entry struct {
	UserID             string           `json:"user_id"`
	VolumeID           int64            `json:"volume_id"`
	IsOwned            bool             `json:"is_owned"`
	IsReading          bool             `json:"is_reading"`
	IsCompleted        bool             `json:"is_completed"`
	IsWishlist         bool             `json:"is_wishlist"`
	AddedAt            time.Time        `json:"added_at"`
	StartedReadingAt   *time.Time       `json:"started_reading_at"`
	CompletedReadingAt *time.Time       `json:"completed_reading_at"`
	PurchasePrice      *decimal.Decimal `json:"purchase_price"`
	PurchaseDate       *civil.Date      `json:"purchase_date"`
	Condition          *string          `json:"condition"`
	Notes              *string          `json:"notes"`

	// Volume embeds the catalog volume with its series on reads.
	Volume *catalog.Volume `json:"volume,omitempty"`
}

// # Filters

// Filter narrows a ledger listing to one flag.
type Filter int

const (
	FilterNone Filter = iota
	FilterOwned
	FilterWishlist
	FilterReading
)

// String returns the route segment of the filter.
func (f Filter) String() string {
	switch f {
	case FilterOwned:
		return "owned"
	case FilterWishlist:
		return "wishlist"
	case FilterReading:
		return "reading"
	default:
		return "all"
	}
}

// # Inputs

// AddInput carries the fields accepted when adding a volume.
type AddInput struct {
	VolumeID      int64            `json:"volume_id"`
	IsOwned       bool             `json:"is_owned"`
	IsReading     bool             `json:"is_reading"`
	IsCompleted   bool             `json:"is_completed"`
	IsWishlist    bool             `json:"is_wishlist"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	PurchaseDate  *civil.Date      `json:"purchase_date"`
	Condition     *string          `json:"condition"`
	Notes         *string          `json:"notes"`
}

/*
Patch is a sparse update: absent fields keep their stored value, null clears
a nullable field and a value replaces it. The four flags are not nullable.
*/
type Patch struct {
	IsOwned       optional.Value[bool]            `json:"is_owned"`
	IsReading     optional.Value[bool]            `json:"is_reading"`
	IsCompleted   optional.Value[bool]            `json:"is_completed"`
	IsWishlist    optional.Value[bool]            `json:"is_wishlist"`
	PurchasePrice optional.Value[decimal.Decimal] `json:"purchase_price"`
	PurchaseDate  optional.Value[civil.Date]      `json:"purchase_date"`
	Condition     optional.Value[string]          `json:"condition"`
	Notes         optional.Value[string]          `json:"notes"`
}

// # Field Identifiers

const (
	FieldVolumeID      = "volume_id"
	FieldIsOwned       = "is_owned"
	FieldIsReading     = "is_reading"
	FieldIsCompleted   = "is_completed"
	FieldIsWishlist    = "is_wishlist"
	FieldPurchasePrice = "purchase_price"
	FieldCondition     = "condition"
	FieldNotes         = "notes"
)

const (
	maxConditionLength = 50
	maxNotesLength     = 2000
)

// maxPrice is the first value NUMERIC(10,2) cannot hold.
var maxPrice = decimal.New(1, 8)

// # Rules

/*
NewEntry builds the stored form of an AddInput. Reading and completed flags
stamp their timestamps with the same instant as added_at.
*/
func NewEntry(userID string, input AddInput, now time.Time) *Entry {
	entry := &Entry{
		UserID:        userID,
		VolumeID:      input.VolumeID,
		IsOwned:       input.IsOwned,
		IsReading:     input.IsReading,
		IsCompleted:   input.IsCompleted,
		IsWishlist:    input.IsWishlist,
		AddedAt:       now,
		PurchasePrice: input.PurchasePrice,
		PurchaseDate:  input.PurchaseDate,
		Condition:     input.Condition,
		Notes:         input.Notes,
	}

	if entry.IsReading {
		entry.StartedReadingAt = &now
	}
	if entry.IsCompleted {
		entry.CompletedReadingAt = &now
	}
	return entry
}

/*
ApplyTo merges the patch into entry.

Timestamp rule: setting is_reading (or is_completed) to true stamps
started_reading_at (or completed_reading_at) with now only when it is still
empty. Turning a flag off keeps the stamp.
*/
func (patch Patch) ApplyTo(entry *Entry, now time.Time) {
	if patch.IsOwned.HasValue() {
		entry.IsOwned = patch.IsOwned.Val
	}
	if patch.IsWishlist.HasValue() {
		entry.IsWishlist = patch.IsWishlist.Val
	}
	if patch.IsReading.HasValue() {
		entry.IsReading = patch.IsReading.Val
		if entry.IsReading && entry.StartedReadingAt == nil {
			stamp := now
			entry.StartedReadingAt = &stamp
		}
	}
	if patch.IsCompleted.HasValue() {
		entry.IsCompleted = patch.IsCompleted.Val
		if entry.IsCompleted && entry.CompletedReadingAt == nil {
			stamp := now
			entry.CompletedReadingAt = &stamp
		}
	}

	patch.PurchasePrice.Apply(&entry.PurchasePrice)
	patch.PurchaseDate.Apply(&entry.PurchaseDate)
	patch.Condition.Apply(&entry.Condition)
	patch.Notes.Apply(&entry.Notes)
}

// Validate rejects explicit nulls on flags and out-of-range values.
func (patch Patch) Validate() error {
	validator := &validate.Validator{}

	validator.Custom(FieldIsOwned, patch.IsOwned.Null, "Cannot be null")
	validator.Custom(FieldIsReading, patch.IsReading.Null, "Cannot be null")
	validator.Custom(FieldIsCompleted, patch.IsCompleted.Null, "Cannot be null")
	validator.Custom(FieldIsWishlist, patch.IsWishlist.Null, "Cannot be null")

	validatePurchase(validator, patch.PurchasePrice.Ptr(), patch.Condition.Ptr(), patch.Notes.Ptr())
	return validator.Err()
}

// Validate checks the volume reference shape and purchase metadata.
func (input AddInput) Validate() error {
	validator := &validate.Validator{}

	validator.Custom(FieldVolumeID, input.VolumeID <= 0, "Must be a positive integer")
	validatePurchase(validator, input.PurchasePrice, input.Condition, input.Notes)
	return validator.Err()
}

func validatePurchase(validator *validate.Validator, price *decimal.Decimal, condition, notes *string) {
	if price != nil {
		validator.Custom(FieldPurchasePrice, price.IsNegative(), "Must not be negative")
		validator.Custom(FieldPurchasePrice, !price.Equal(price.Round(2)), "At most 2 decimal places")
		validator.Custom(FieldPurchasePrice, price.GreaterThanOrEqual(maxPrice), "Must be below 100000000")
	}
	if condition != nil {
		validator.MaxLen(FieldCondition, *condition, maxConditionLength)
	}
	if notes != nil {
		validator.MaxLen(FieldNotes, *notes, maxNotesLength)
	}
}
