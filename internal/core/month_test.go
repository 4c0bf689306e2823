package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestAddMonthsWrapsYearBoundaries(t *testing.T) {
	tests := []struct {
		key   string
		delta int
		want  string
	}{
		{"2025-01", -1, "2024-12"},
		{"2025-12", 1, "2026-01"},
		{"2025-06", 0, "2025-06"},
		{"2025-06", 13, "2026-07"},
		{"2025-06", -18, "2023-12"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s%+d", tt.key, tt.delta), func(t *testing.T) {
			got, err := AddMonths(tt.key, tt.delta)
			if err != nil {
				t.Fatalf("AddMonths: %v", err)
			}
			if got != tt.want {
				t.Errorf("AddMonths(%q, %d) = %q, want %q", tt.key, tt.delta, got, tt.want)
			}
		})
	}
}

func TestAddMonthsRoundTrips(t *testing.T) {
	// Forward then back is the identity for any key, the property the
	// month navigation buttons depend on.
	for _, key := range []string{"2024-01", "2024-12", "2026-08"} {
		for delta := -24; delta <= 24; delta++ {
			there, err := AddMonths(key, delta)
			if err != nil {
				t.Fatalf("AddMonths(%q, %d): %v", key, delta, err)
			}
			back, err := AddMonths(there, -delta)
			if err != nil {
				t.Fatalf("AddMonths(%q, %d): %v", there, -delta, err)
			}
			if back != key {
				t.Fatalf("round trip %q %+d = %q", key, delta, back)
			}
		}
	}
}

func TestParseMonthKeyRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "2025", "2025-13", "2025-00", "abcd-01", "2025-1-1"} {
		if _, _, err := ParseMonthKey(in); !errors.Is(err, ErrInvalidMonthKey) {
			t.Errorf("ParseMonthKey(%q) err = %v, want ErrInvalidMonthKey", in, err)
		}
	}
}

func TestMonthKeyOfDate(t *testing.T) {
	key, err := MonthKeyOfDate("2026-08-28")
	if err != nil || key != "2026-08" {
		t.Errorf("MonthKeyOfDate = %q (err %v), want 2026-08", key, err)
	}
	if _, err := MonthKeyOfDate("28-08-2026"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("bad date err = %v, want ErrInvalidDate", err)
	}
}

func TestMonthIndex(t *testing.T) {
	if i, ok := MonthIndex("January"); !ok || i != 1 {
		t.Errorf("MonthIndex(January) = %d/%v", i, ok)
	}
	if i, ok := MonthIndex("December"); !ok || i != 12 {
		t.Errorf("MonthIndex(December) = %d/%v", i, ok)
	}
	if _, ok := MonthIndex("Sometober"); ok {
		t.Error("MonthIndex accepted an unknown month")
	}
}

func TestFormatMonthKey(t *testing.T) {
	if got := FormatMonthKey("2025-06"); got != "June 2025" {
		t.Errorf("FormatMonthKey = %q, want June 2025", got)
	}
	// Malformed keys pass through untouched.
	if got := FormatMonthKey("garbage"); got != "garbage" {
		t.Errorf("FormatMonthKey(garbage) = %q", got)
	}
}
