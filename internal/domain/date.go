package domain

import "time"

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultSearchHorizonDays bounds the next-available forward search
const DefaultSearchHorizonDays = 365

// NormalizeDate truncates a timestamp to its calendar day, midnight UTC.
// Every date stored, compared or used as an aggregation key goes through
// this first; bookings are calendar-day granular, never instants.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
