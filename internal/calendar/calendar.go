// Package calendar provides day-granularity date arithmetic. All review
// dates and streak boundaries are whole calendar days in the location of the
// time value passed in; callers convert to the learner's timezone first.
package calendar

import "time"

// Layout is the canonical textual form of a calendar day.
const Layout = "2006-01-02"

// Day returns midnight of t's calendar day, in t's location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayDiff returns the number of calendar days from `from` to `to`.
// Negative when `to` is an earlier day. Both dates are read in their own
// location, so a DST shift never produces a fractional day.
func DayDiff(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// AddDays returns the day n calendar days after t's day.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayDiff(a, b) == 0
}

// Bounds returns the half-open interval [start, end) covering t's day.
func Bounds(t time.Time) (start, end time.Time) {
	start = Day(t)
	return start, start.AddDate(0, 0, 1)
}

// Format renders t's day as YYYY-MM-DD. The zero time renders as "".
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(Layout)
}

// Parse reads a YYYY-MM-DD day in loc. An empty string yields the zero time.
func Parse(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(Layout, s, loc)
}
