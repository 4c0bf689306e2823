package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthKeyLayout is the "YYYY-MM" key budget transactions are bucketed by.
const MonthKeyLayout = "2006-01"

// MonthNames holds the twelve bucket keys used by month-grouped recurring
// dates, in calendar order.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthIndex returns the 1-based calendar position of a month-name bucket.
func MonthIndex(name string) (int, bool) {
	for i, m := range MonthNames {
		if m == name {
			return i + 1, true
		}
	}
	return 0, false
}

// MonthKeyOf derives the month key of a point in time.
func MonthKeyOf(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// MonthKeyOfDate derives the month key from an ISO "YYYY-MM-DD" day.
func MonthKeyOfDate(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", ErrInvalidDate
	}
	return MonthKeyOf(t), nil
}

// ParseMonthKey splits a "YYYY-MM" key into year and 1-12 month.
func ParseMonthKey(key string) (year, month int, err error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, ErrInvalidMonthKey
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return 0, 0, ErrInvalidMonthKey
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, ErrInvalidMonthKey
	}
	return year, month, nil
}

// AddMonths shifts a month key by delta months, carrying across year
// boundaries. It is a bijection mod 12: AddMonths("2025-01", -1) is
// "2024-12", AddMonths("2025-12", 1) is "2026-01".
func AddMonths(key string, delta int) (string, error) {
	year, month, err := ParseMonthKey(key)
	if err != nil {
		return "", err
	}
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return MonthKeyOf(t), nil
}

// FormatMonthKey renders a key as a human label, e.g. "June 2025".
func FormatMonthKey(key string) string {
	year, month, err := ParseMonthKey(key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s %d", MonthNames[month-1], year)
}
