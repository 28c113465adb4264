// Package calendar provides the Gregorian date arithmetic behind the quiz:
// weekday lookup, day and month offsets, and the Sunday-first week grid used
// both to render a month and to find "last week" and "next week".
//
// All values are calendar dates with day granularity. Time of day and time
// zones never enter into it; conversions to time.Time use midnight UTC.
package calendar

import (
	"fmt"
	"time"
)

// Date is a calendar date. It is a value type: every offset returns a new
// Date and the receiver is never modified.
type Date struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// New returns the date for year, month and day. Out-of-range month or day
// values are normalised the way time.Date normalises them.
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week, Sunday = 0.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// ClampPolicy selects how AddMonths handles offsets that leave the year.
type ClampPolicy int

const (
	// ClampWithinYear pins the month to January..December of the same year,
	// so "next month" asked in December is still December.
	ClampWithinYear ClampPolicy = iota
	// RollOver carries into the previous or next year.
	RollOver
)

// AddMonths returns the date n months after d under the given policy. The
// day is clamped to the length of the resulting month (January 31 plus one
// month is February 28 or 29), never carried into the month after.
func (d Date) AddMonths(n int, policy ClampPolicy) Date {
	year := d.Year
	month := int(d.Month) + n

	switch policy {
	case ClampWithinYear:
		month = min(max(month, 1), 12)
	case RollOver:
		total := year*12 + month - 1
		year = floorDiv(total, 12)
		month = total - year*12 + 1
	default:
		panic(fmt.Sprintf("calendar: unknown clamp policy %d", policy))
	}

	m := time.Month(month)
	return Date{Year: year, Month: m, Day: min(d.Day, DaysIn(year, m))}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
