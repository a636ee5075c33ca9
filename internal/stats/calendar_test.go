package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(date(2024, 6, 1)))
	assert.True(t, IsWeekend(date(2024, 6, 2)))
	assert.False(t, IsWeekend(date(2024, 6, 3)))
}

func TestIsWithinMonthDayRange(t *testing.T) {
	tests := []struct {
		day  time.Time
		want bool
	}{
		{date(2024, 11, 19), false},
		{date(2024, 11, 20), true},
		{date(2024, 12, 31), true},
		{date(2025, 1, 1), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWithinMonthDayRange(tt.day, time.November, 20, time.December, 31), tt.day.Format(time.DateOnly))
	}

	// Wrapping range.
	assert.True(t, IsWithinMonthDayRange(date(2025, 1, 3), time.December, 20, time.January, 10))
	assert.True(t, IsWithinMonthDayRange(date(2024, 12, 25), time.December, 20, time.January, 10))
	assert.False(t, IsWithinMonthDayRange(date(2025, 1, 11), time.December, 20, time.January, 10))
}

func TestIsNearDaylightSavingTransition(t *testing.T) {
	// 2026: March 8 and November 1.
	assert.True(t, IsNearDaylightSavingTransition(date(2026, 3, 8), 3))
	assert.True(t, IsNearDaylightSavingTransition(date(2026, 3, 11), 3))
	assert.False(t, IsNearDaylightSavingTransition(date(2026, 3, 12), 3))
	assert.True(t, IsNearDaylightSavingTransition(date(2026, 10, 29), 3))
	assert.False(t, IsNearDaylightSavingTransition(date(2026, 7, 1), 3))
}

func TestDayHelpers(t *testing.T) {
	ts := time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, date(2024, 6, 15), StartOfDay(ts))
	assert.True(t, SameDay(ts, date(2024, 6, 15)))
	assert.False(t, SameDay(ts, date(2024, 6, 16)))
	assert.Equal(t, 7, DaysBetween(date(2024, 6, 8), ts))
}
