package dates

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want string
	}{
		{"2024-01-15", true, "2024-01-15"},
		{"2024-01-15T09:30:00Z", true, "2024-01-15"},
		{"", false, ""},
		{"15/01/2024", false, ""},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if ok != tt.ok {
			t.Errorf("Parse(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got.Format(Layout) != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got.Format(Layout), tt.want)
		}
	}
}

func TestCombine(t *testing.T) {
	got, ok := Combine("2024-01-15", "14:30")
	if !ok {
		t.Fatal("expected ok")
	}
	if got.Hour() != 14 || got.Minute() != 30 {
		t.Errorf("unexpected time %v", got)
	}

	midnight, ok := Combine("2024-01-15", "")
	if !ok || midnight.Hour() != 0 {
		t.Errorf("expected midnight fallback, got %v %v", midnight, ok)
	}

	if _, ok := Combine("", "10:00"); ok {
		t.Error("expected failure without a date")
	}
}

func TestAge(t *testing.T) {
	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), 33},
		{time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), 34},
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 33},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 34},
	}
	for _, tt := range tests {
		if got := Age(dob, tt.now); got != tt.want {
			t.Errorf("Age at %s = %d, want %d", tt.now.Format(Layout), got, tt.want)
		}
	}
}
