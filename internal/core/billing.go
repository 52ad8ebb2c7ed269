package core

import (
	"fmt"
	"time"
)

const isoDateLayout = "2006-01-02"

// NextBilling rolls a subscription's next billing date forward by whole
// cycles until it is on or after ref. A subscription without a next
// billing date, or with one already in the future, is returned as is.
// Monthly and yearly cycles clamp to the last day of short months.
func NextBilling(sub Subscription, ref time.Time) (string, error) {
	if sub.NextBillingDate == "" {
		return "", nil
	}
	due, err := time.Parse(isoDateLayout, sub.NextBillingDate)
	if err != nil {
		return "", fmt.Errorf("parse next billing date %q: %w", sub.NextBillingDate, ErrInvalidDate)
	}
	day := ref.Truncate(24 * time.Hour)
	anchor := due.Day()
	for due.Before(day) {
		due = advance(due, sub.BillingCycle, anchor)
	}
	return due.Format(isoDateLayout), nil
}

// advance moves a due date one cycle forward. anchor is the day of
// month of the original due date, so a Jan 31 subscription lands on
// Feb 29 and back on Mar 31 instead of drifting to ever-earlier days.
func advance(t time.Time, cycle Cycle, anchor int) time.Time {
	switch cycle {
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Yearly:
		return clampDay(t.Year()+1, t.Month(), anchor)
	default:
		return clampDay(t.Year(), t.Month()+1, anchor)
	}
}

// clampDay builds a date, pulling the day back to the end of the month
// when the target month is shorter (Jan 31 + 1 month = Feb 28/29).
func clampDay(year int, month time.Month, day int) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
