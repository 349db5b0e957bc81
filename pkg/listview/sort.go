package listview

import (
	"fmt"
	"slices"
	"strings"
)

// Order is the direction of the date ordering.
type Order string

const (
	// Ascending puts the soonest record first (upcoming appointments).
	Ascending Order = "asc"
	// Descending puts the most recent record first (a patient's history).
	Descending Order = "desc"
	// Unsorted keeps the order the source returned.
	Unsorted Order = ""
)

// ParseOrder accepts "asc", "desc" or the empty string.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case Ascending, Descending, Unsorted:
		return o, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// Compare orders a and b by their primary date and returns -1, 0 or 1.
// Records without a date sort after dated ones in either direction.
func Compare[T any](a, b T, f Fields[T], order Order) int {
	da, okA := f.sortDate(a)
	db, okB := f.sortDate(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	c := da.Compare(db)
	if order == Descending {
		c = -c
	}
	return c
}

// Sort returns a stably sorted copy of items. Unsorted returns a plain copy.
func Sort[T any](items []T, f Fields[T], order Order) []T {
	sorted := slices.Clone(items)
	if order == Unsorted || f.SortDate == nil {
		return sorted
	}
	slices.SortStableFunc(sorted, func(a, b T) int {
		return Compare(a, b, f, order)
	})
	return sorted
}
