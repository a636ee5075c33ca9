package stats

import (
	"math"
	"time"
)

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween is the whole number of days from a to b, rounded down.
func DaysBetween(a, b time.Time) int {
	return int(math.Floor(b.Sub(a).Hours() / 24))
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWithinMonthDayRange reports whether t's month/day lies in the inclusive
// range start..end. A start after end wraps around the year end.
func IsWithinMonthDayRange(t time.Time, startMonth time.Month, startDay int, endMonth time.Month, endDay int) bool {
	m, d := t.Month(), t.Day()
	afterStart := m > startMonth || (m == startMonth && d >= startDay)
	beforeEnd := m < endMonth || (m == endMonth && d <= endDay)
	if startMonth <= endMonth {
		return afterStart && beforeEnd
	}
	return afterStart || beforeEnd
}

// nthSunday returns midnight of the n-th Sunday of month in t's year and location.
func nthSunday(year int, month time.Month, n int, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := (7 - int(first.Weekday())) % 7
	return first.AddDate(0, 0, offset+7*(n-1))
}

// IsNearDaylightSavingTransition approximates the US transitions (second
// Sunday of March, first Sunday of November) and reports whether t is within
// windowDays of either.
func IsNearDaylightSavingTransition(t time.Time, windowDays int) bool {
	loc := t.Location()
	march := nthSunday(t.Year(), time.March, 2, loc)
	november := nthSunday(t.Year(), time.November, 1, loc)
	window := float64(windowDays)
	return math.Abs(t.Sub(march).Hours()/24) <= window ||
		math.Abs(t.Sub(november).Hours()/24) <= window
}
