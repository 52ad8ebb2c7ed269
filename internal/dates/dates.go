// Package dates owns the calendar arithmetic the ledger is bucketed by:
// canonical "YYYY-MM" month keys and "YYYY-MM-DD" ISO dates.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	isoDateLayout = "2006-01-02"
	monthsPerYear = 12
)

// MonthKey returns the canonical month bucket for t, e.g. "2024-03".
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// ISODate formats t as "YYYY-MM-DD".
func ISODate(t time.Time) string {
	return t.Format(isoDateLayout)
}

// ParseISODate parses a "YYYY-MM-DD" string.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse iso date %q: %w", s, err)
	}
	return t, nil
}

// ParseMonthKey splits a month key into year and month (1-12).
func ParseMonthKey(key string) (year int, month int, err error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid month key %q", key)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in month key %q: %w", key, err)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in month key %q: %w", key, err)
	}
	if month < 1 || month > monthsPerYear {
		return 0, 0, fmt.Errorf("month out of range in key %q", key)
	}
	return year, month, nil
}

// ShiftMonth moves a month key by offset months, normalizing overflow
// (so "2024-12" shifted by +1 is "2025-01").
func ShiftMonth(key string, offset int) (string, error) {
	year, month, err := ParseMonthKey(key)
	if err != nil {
		return "", err
	}
	t := time.Date(year, time.Month(month+offset), 1, 0, 0, 0, 0, time.UTC)
	return MonthKey(t), nil
}

// MonthKeysOfYear returns the 12 canonical keys of a year in calendar order.
func MonthKeysOfYear(year int) []string {
	keys := make([]string, 0, monthsPerYear)
	for m := 1; m <= monthsPerYear; m++ {
		keys = append(keys, fmt.Sprintf("%04d-%02d", year, m))
	}
	return keys
}

// MonthLabel renders a month key as a human label, e.g. "March 2024".
// Unparseable keys are returned unchanged.
func MonthLabel(key string) string {
	year, month, err := ParseMonthKey(key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}
