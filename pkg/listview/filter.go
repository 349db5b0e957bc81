package listview

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// RangeMode names a date-range shortcut offered by the list filters.
type RangeMode string

const (
	RangeAll       RangeMode = "all"
	RangeToday     RangeMode = "today"
	RangeThisWeek  RangeMode = "this-week"
	RangeThisMonth RangeMode = "this-month"
	RangeCustom    RangeMode = "custom"
)

// StatusAll disables the status dimension.
const StatusAll = "all"

// ParseRangeMode accepts the wire form of a range mode. The empty string maps
// to RangeCustom so that bare from/to bounds are honoured.
func ParseRangeMode(s string) (RangeMode, error) {
	switch m := RangeMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return RangeCustom, nil
	case RangeAll, RangeToday, RangeThisWeek, RangeThisMonth, RangeCustom:
		return m, nil
	default:
		return "", fmt.Errorf("unknown date range %q", s)
	}
}

// Criteria holds the active filter values of a list view. It is replaced
// wholesale on every edit; a zero field means no constraint from that
// dimension.
type Criteria struct {
	Term     string     `json:"term,omitempty"`
	Category string     `json:"category,omitempty"`
	Status   string     `json:"status,omitempty"`
	Range    RangeMode  `json:"range,omitempty"`
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
}

// WithRange returns a copy of c switched to mode. Explicit bounds only
// survive in custom mode.
func (c Criteria) WithRange(mode RangeMode) Criteria {
	c.Range = mode
	if mode != RangeCustom && mode != "" {
		c.From, c.To = nil, nil
	}
	return c
}

// Bounds resolves the date bounds in effect at now. Shortcut modes are
// computed from the calendar day of now; custom mode returns the explicit
// bounds. Returned times are truncated to the day.
func (c Criteria) Bounds(now time.Time) (from, to *time.Time) {
	today := Day(now)
	switch c.Range {
	case RangeAll:
		return nil, nil
	case RangeToday:
		return &today, &today
	case RangeThisWeek:
		end := today.AddDate(0, 0, 7)
		return &today, &end
	case RangeThisMonth:
		end := today.AddDate(0, 1, 0)
		return &today, &end
	}
	if c.From != nil {
		d := Day(*c.From)
		from = &d
	}
	if c.To != nil {
		d := Day(*c.To)
		to = &d
	}
	return from, to
}

// Day strips the time of day. The calendar date is read in t's location and
// the result is midnight UTC, so days from different zones compare by date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Matches reports whether record satisfies every active dimension of c.
func Matches[T any](record T, c Criteria, f Fields[T], now time.Time) bool {
	return compile(c, f, now)(record)
}

// Filter returns the records matching c, preserving their relative order.
// The input slice is not modified.
func Filter[T any](items []T, c Criteria, f Fields[T], now time.Time) []T {
	match := compile(c, f, now)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}

func compile[T any](c Criteria, f Fields[T], now time.Time) func(T) bool {
	// A Caser is stateful, so each compiled predicate owns one.
	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(c.Term))
	status := c.Status
	if status == StatusAll {
		status = ""
	}
	from, to := c.Bounds(now)

	return func(r T) bool {
		if term != "" && !strings.Contains(fold.String(f.text(r)), term) {
			return false
		}
		if c.Category != "" && f.category(r) != c.Category {
			return false
		}
		if status != "" && f.status(r) != status {
			return false
		}
		if from == nil && to == nil {
			return true
		}
		d, ok := f.rangeDate(r)
		if !ok {
			return false
		}
		d = Day(d)
		if from != nil && d.Before(*from) {
			return false
		}
		if to != nil && d.After(*to) {
			return false
		}
		return true
	}
}
