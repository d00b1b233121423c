package schedule

import "time"

// fixedHolidays are South Africa's annual fixed-date public holidays
var fixedHolidays = []struct {
	Month time.Month
	Day   int
}{
	{time.January, 1},    // New Year's Day
	{time.March, 21},     // Human Rights Day
	{time.April, 27},     // Freedom Day
	{time.May, 1},        // Workers' Day
	{time.June, 16},      // Youth Day
	{time.August, 9},     // National Women's Day
	{time.September, 24}, // Heritage Day
	{time.December, 16},  // Day of Reconciliation
	{time.December, 25},  // Christmas Day
	{time.December, 26},  // Day of Goodwill
}

// IsEligibleDate reports whether the clinic accepts bookings on the given
// calendar date. Rules are applied in order, short-circuiting on the first
// failure:
//
//  1. no weekends
//  2. no Tuesdays or Thursdays (the clinic runs Mon/Wed/Fri only)
//  3. no public holidays
//
// Eligibility is independent of capacity; a date can be eligible and full.
func IsEligibleDate(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	case time.Tuesday, time.Thursday:
		return false
	}
	return !IsPublicHoliday(date)
}

// IsPublicHoliday reports whether the date is a South African public
// holiday: one of the ten fixed-date holidays, or one of the Easter-relative
// days for that year. Comparison is by (month, day) equality within the
// date's own year, not elapsed-time arithmetic.
//
// Easter Sunday itself is in the excluded set alongside Good Friday and
// Family Day, mirroring the booking rules this clinic has always run with,
// even though it is not a statutory public holiday. It falls on a Sunday and
// is therefore rejected by the weekday rule anyway.
func IsPublicHoliday(date time.Time) bool {
	month, day := date.Month(), date.Day()

	for _, h := range fixedHolidays {
		if month == h.Month && day == h.Day {
			return true
		}
	}

	easter := easterSunday(date.Year())
	goodFriday := easter.AddDate(0, 0, -2)
	familyDay := easter.AddDate(0, 0, 1)

	for _, h := range []time.Time{goodFriday, easter, familyDay} {
		if month == h.Month() && day == h.Day() {
			return true
		}
	}

	return false
}

// easterSunday computes Gregorian Easter Sunday for a year using the
// Meeus/Jones/Butcher algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
