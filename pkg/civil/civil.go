// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

/*
Package civil provides a calendar date without time or zone.

Purchase dates, release dates and publication dates are days, not instants.
Date travels as "YYYY-MM-DD" in JSON and maps to a Postgres DATE through
pgx's DateScanner and DateValuer interfaces.
*/
package civil

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const layout = "2006-01-02"

// Date is a calendar day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Of returns the calendar day of t in t's location.
func Of(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// Parse reads a "YYYY-MM-DD" string.
func Parse(value string) (Date, error) {
	parsed, err := time.Parse(layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("civil: invalid date %q: %w", value, err)
	}
	return Of(parsed), nil
}

// MustParse is Parse for literals; it panics on malformed input.
func MustParse(value string) Date {
	date, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return date
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time().Format(layout)
}

// MarshalJSON implements [json.Marshaler].
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements [json.Unmarshaler].
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("civil: date must be a string: %w", err)
	}

	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ScanDate implements [pgtype.DateScanner].
func (d *Date) ScanDate(value pgtype.Date) error {
	if !value.Valid {
		*d = Date{}
		return nil
	}
	if value.InfinityModifier != pgtype.Finite {
		return fmt.Errorf("civil: cannot scan infinite date")
	}
	*d = Of(value.Time)
	return nil
}

// DateValue implements [pgtype.DateValuer].
func (d Date) DateValue() (pgtype.Date, error) {
	return pgtype.Date{Time: d.Time(), Valid: true}, nil
}
