// Package calendar contains pure date arithmetic used by the availability engine.
//
// Calendar dates are represented as time.Time values at midnight UTC; use DateOf
// to normalize an arbitrary instant. None of the functions mutate their inputs.
package calendar

import (
	"time"
)

// ISODateFormat is the zero-padded YYYY-MM-DD layout.
const ISODateFormat = "2006-01-02"

// GridWeeks and GridDays define the fixed month grid shape.
const (
	GridWeeks = 6
	GridDays  = 7
)

// Grid is a 6x7 month grid with Monday-first columns.
type Grid [GridWeeks][GridDays]time.Time

// DateOf drops the time-of-day and location of t, keeping its calendar fields.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date of now as observed in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	return DateOf(now.In(loc))
}

// ParseISODate parses a YYYY-MM-DD string into a calendar date.
func ParseISODate(s string) (time.Time, error) {
	return time.ParseInLocation(ISODateFormat, s, time.UTC)
}

// FormatISODate formats a date as YYYY-MM-DD.
func FormatISODate(date time.Time) string {
	return date.Format(ISODateFormat)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekdayOfMonth returns the weekday of the 1st of the given month.
func FirstWeekdayOfMonth(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// MondayIndex maps a weekday to a Monday-first column index (Monday=0, Sunday=6).
func MondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// CalendarGrid returns the 6x7 grid covering the month, padded with days of the
// adjacent months.
func CalendarGrid(year int, month time.Month) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -MondayIndex(first.Weekday()))

	var grid Grid
	for w := 0; w < GridWeeks; w++ {
		for d := 0; d < GridDays; d++ {
			grid[w][d] = start.AddDate(0, 0, w*GridDays+d)
		}
	}
	return grid
}

// WeekDates returns the seven dates Monday through Sunday of the week containing date.
func WeekDates(date time.Time) [GridDays]time.Time {
	d := DateOf(date)
	monday := d.AddDate(0, 0, -MondayIndex(d.Weekday()))

	var week [GridDays]time.Time
	for i := range week {
		week[i] = monday.AddDate(0, 0, i)
	}
	return week
}

// AddDays returns date shifted by n days.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// AddMonths returns date shifted by n months. The day is clamped to the last day
// of the target month, so Jan 31 + 1 month is Feb 28/29.
func AddMonths(date time.Time, n int) time.Time {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location()).AddDate(0, n, 0)
	day := date.Day()
	if last := DaysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day,
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

// IsSameDay reports whether a and b fall on the same calendar date, ignoring time of day.
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsSameMonth reports whether a and b fall in the same calendar month.
func IsSameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// IsToday reports whether date is today as observed in loc.
func IsToday(date, now time.Time, loc *time.Location) bool {
	return IsSameDay(date, Today(now, loc))
}

// DaysBetween returns the whole number of days from a to b (b - a).
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}
