// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package optional models a JSON field that can be absent, explicitly null or
carry a value.

Sparse PATCH payloads need all three states: absent leaves the stored value
alone, null clears it and a value replaces it. A plain pointer cannot tell
absent from null.

	type patch struct {
	    Notes optional.Value[string] `json:"notes"`
	}
*/
package optional

import (
	"bytes"
	"encoding/json"
)

// Value is a tri-state optional.
type Value[T any] struct {
	// Set is true when the field was present in the payload (even as null).
	Set bool
	// Null is true when the field was present and explicitly null.
	Null bool
	// Val holds the decoded value when Set && !Null.
	Val T
}

// Of returns a present, non-null Value.
func Of[T any](v T) Value[T] {
	return Value[T]{Set: true, Val: v}
}

// Null returns a present, explicitly null Value.
func Null[T any]() Value[T] {
	return Value[T]{Set: true, Null: true}
}

// HasValue reports whether the field was present with a non-null value.
func (v Value[T]) HasValue() bool {
	return v.Set && !v.Null
}

// Ptr returns a pointer to the value, or nil when absent or null.
func (v Value[T]) Ptr() *T {
	if !v.HasValue() {
		return nil
	}
	val := v.Val
	return &val
}

// Apply writes the patch into a nullable target: absent keeps it, null
// clears it and a value replaces it.
func (v Value[T]) Apply(target **T) {
	if !v.Set {
		return
	}
	*target = v.Ptr()
}

// UnmarshalJSON implements [json.Unmarshaler]. It is only invoked for keys
// present in the payload, so reaching it means Set.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		v.Null = true
		var zero T
		v.Val = zero
		return nil
	}

	v.Null = false
	return json.Unmarshal(data, &v.Val)
}

// MarshalJSON implements [json.Marshaler]. Absent and null both encode as null.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.HasValue() {
		return []byte("null"), nil
	}
	return json.Marshal(v.Val)
}
