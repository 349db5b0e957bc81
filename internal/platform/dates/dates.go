package dates

import (
	"time"
)

// Layout is the calendar date format used on the wire.
const Layout = time.DateOnly

// Parse reads a YYYY-MM-DD date, also accepting a full RFC 3339 timestamp.
// The boolean is false for blank or malformed input.
func Parse(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(Layout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Valid reports whether s parses as a date.
func Valid(s string) bool {
	_, ok := Parse(s)
	return ok
}

// Combine joins a date and an HH:MM time of day. An unparsable clock falls
// back to midnight.
func Combine(date, clock string) (time.Time, bool) {
	d, ok := Parse(date)
	if !ok {
		return time.Time{}, false
	}
	c, err := time.Parse("15:04", clock)
	if err != nil {
		return d, true
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, d.Location()), true
}

// Age returns the age in whole years at now of someone born on dob.
func Age(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
