package listview

import (
	"strings"
	"time"
)

// Fields adapts a record type to the engine. Every accessor is optional; a
// nil accessor reads as the zero value, so a record without it never matches
// an active constraint on that dimension.
type Fields[T any] struct {
	// Text returns the name-like parts searched by the free-text term.
	Text func(T) []string
	// Category returns the categorical value (gender, type...).
	Category func(T) string
	// Status returns the record status, if the record has one.
	Status func(T) string
	// RangeDate returns the date checked against the range bounds.
	RangeDate func(T) (time.Time, bool)
	// SortDate returns the primary ordering date.
	SortDate func(T) (time.Time, bool)
}

func (f Fields[T]) text(r T) string {
	if f.Text == nil {
		return ""
	}
	return strings.Join(f.Text(r), " ")
}

func (f Fields[T]) category(r T) string {
	if f.Category == nil {
		return ""
	}
	return f.Category(r)
}

func (f Fields[T]) status(r T) string {
	if f.Status == nil {
		return ""
	}
	return f.Status(r)
}

func (f Fields[T]) rangeDate(r T) (time.Time, bool) {
	if f.RangeDate == nil {
		return time.Time{}, false
	}
	return f.RangeDate(r)
}

func (f Fields[T]) sortDate(r T) (time.Time, bool) {
	if f.SortDate == nil {
		return time.Time{}, false
	}
	return f.SortDate(r)
}
