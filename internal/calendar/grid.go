package calendar

import (
	"fmt"
	"time"
)

// Week is one row of a month grid. The slot index is the weekday
// (Sunday = 0) and the value is the day of the month, or 0 for a slot that
// falls outside the month.
type Week [7]int

// Days returns the non-empty day numbers of the row in weekday order.
func (w Week) Days() []int {
	days := make([]int, 0, 7)
	for _, day := range w {
		if day != 0 {
			days = append(days, day)
		}
	}
	return days
}

// RealDays returns how many slots of the row hold a date.
func (w Week) RealDays() int {
	n := 0
	for _, day := range w {
		if day != 0 {
			n++
		}
	}
	return n
}

// Contains reports whether the row holds the given day of the month.
func (w Week) Contains(day int) bool {
	if day == 0 {
		return false
	}
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

// WeekGrid partitions one month into Sunday-first rows. The first and last
// rows may be partially filled; every day of the month appears exactly once.
type WeekGrid struct {
	Year  int
	Month time.Month
	Weeks []Week
}

// NewWeekGrid builds the grid for the given month. A row is flushed when it
// reaches Saturday or the month runs out, so months that begin on a Sunday
// or on a Saturday split correctly without looking at how full the row is.
func NewWeekGrid(year int, month time.Month) WeekGrid {
	last := DaysIn(year, month)
	grid := WeekGrid{Year: year, Month: month}

	var row Week
	for day := 1; day <= last; day++ {
		wd := Date{Year: year, Month: month, Day: day}.Weekday()
		row[wd] = day
		if wd == time.Saturday || day == last {
			grid.Weeks = append(grid.Weeks, row)
			row = Week{}
		}
	}
	return grid
}

// Len returns the number of rows.
func (g WeekGrid) Len() int {
	return len(g.Weeks)
}

// Row returns row i. Asking for a row outside the grid is a caller defect.
func (g WeekGrid) Row(i int) Week {
	if i < 0 || i >= len(g.Weeks) {
		panic(fmt.Sprintf("calendar: row %d outside %d-%02d grid of %d rows", i, g.Year, int(g.Month), len(g.Weeks)))
	}
	return g.Weeks[i]
}

// Date returns the full date for a day number of the grid's month.
func (g WeekGrid) Date(day int) Date {
	return Date{Year: g.Year, Month: g.Month, Day: day}
}

// Contains reports whether d lies in the grid's month.
func (g WeekGrid) Contains(d Date) bool {
	return d.Year == g.Year && d.Month == g.Month && d.Day >= 1 && d.Day <= DaysIn(g.Year, g.Month)
}

// IndexOf returns the row holding d. Exactly one row must match; a date from
// another month means the caller built the grid for the wrong month, and
// that panics rather than returning a plausible wrong row.
func (g WeekGrid) IndexOf(d Date) int {
	found := -1
	if d.Year == g.Year && d.Month == g.Month {
		for i, w := range g.Weeks {
			if !w.Contains(d.Day) {
				continue
			}
			if found >= 0 {
				panic(fmt.Sprintf("calendar: %s appears in rows %d and %d", d, found, i))
			}
			found = i
		}
	}
	if found < 0 {
		panic(fmt.Sprintf("calendar: %s is not in the %d-%02d grid", d, g.Year, int(g.Month)))
	}
	return found
}
