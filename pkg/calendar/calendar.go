// Package calendar provides day-granularity date arithmetic for the booking
// calendar. All functions truncate their inputs to UTC midnight first, so
// time-of-day never participates in comparisons.
package calendar

import (
	"fmt"
	"time"
)

const (
	// DayKey is the canonical wire and index format for a calendar day.
	DayKey = "2006-01-02"

	MonthKey = "2006-01"
)

// Truncate drops the time-of-day component, normalizing to UTC midnight.
func Truncate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func AddDays(t time.Time, n int) time.Time {
	return Truncate(t).AddDate(0, 0, n)
}

// DaysBetween returns the signed number of days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)) / (24 * time.Hour))
}

func SameDay(a, b time.Time) bool {
	return Truncate(a).Equal(Truncate(b))
}

func Before(a, b time.Time) bool {
	return Truncate(a).Before(Truncate(b))
}

func After(a, b time.Time) bool {
	return Truncate(a).After(Truncate(b))
}

func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// StartOfGrid returns the first cell of the month's calendar grid, the
// Sunday on or before the first of the month.
func StartOfGrid(t time.Time) time.Time {
	start := StartOfMonth(t)
	return AddDays(start, -int(start.Weekday()))
}

// EndOfGrid returns the last cell of the month's calendar grid, the
// Saturday on or after the last day of the month.
func EndOfGrid(t time.Time) time.Time {
	end := EndOfMonth(t)
	return AddDays(end, int(time.Saturday-end.Weekday()))
}

// GridDays enumerates every cell of the month grid from StartOfGrid to
// EndOfGrid inclusive. The result length is always a multiple of 7.
func GridDays(t time.Time) []time.Time {
	var days []time.Time
	for d := StartOfGrid(t); !d.After(EndOfGrid(t)); d = AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// Key formats a day in the canonical YYYY-MM-DD form used by the
// availability index and the HTTP API.
func Key(t time.Time) string {
	return Truncate(t).Format(DayKey)
}

func ParseKey(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayKey, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

func ParseMonth(s string) (time.Time, error) {
	t, err := time.ParseInLocation(MonthKey, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return t, nil
}
