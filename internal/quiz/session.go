// Package quiz generates self-test questions about Japanese date
// expressions. A Session holds one reference date, a shuffled order over the
// question catalog and one seed per question; every prompt and answer is
// recomputed from those values on demand.
package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/keyxmakerx/hizuke/internal/calendar"
	"github.com/keyxmakerx/hizuke/internal/era"
)

// The reference year is drawn from this inclusive window.
const (
	FirstYear = era.EpochYear
	LastYear  = FirstYear + 30
)

// ErrInvalidSession is returned by Validate for session data that could not
// have come from NewTest.
var ErrInvalidSession = errors.New("quiz: invalid session")

// Rand is the randomness a test draws on. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand draws from the math/rand/v2 top-level source, which is safe
// for concurrent use.
var DefaultRand Rand = globalRand{}

// Session is one quiz. It is a value: ToggleAnswers returns a new Session and
// NewTest replaces it wholesale.
type Session struct {
	Date           calendar.Date `json:"date"`
	Order          []int         `json:"order"`
	Seeds          []float64     `json:"seeds"`
	AnswersVisible bool          `json:"answers_visible"`
}

// Candidates returns the dates of the month that may serve as a reference
// date. The first and last rows of the month grid are excluded, and when
// either of those rows holds fewer than two days the same shortfall is
// trimmed from the corresponding end of the remaining days. Every candidate
// therefore has a full row before and after it.
func Candidates(year int, month time.Month) []calendar.Date {
	grid := calendar.NewWeekGrid(year, month)
	n := grid.Len()

	var days []int
	for i := 1; i <= n-2; i++ {
		days = append(days, grid.Row(i).Days()...)
	}
	front := max(2-grid.Row(0).RealDays(), 0)
	back := max(2-grid.Row(n-1).RealDays(), 0)
	days = days[front : len(days)-back]

	out := make([]calendar.Date, len(days))
	for i, d := range days {
		out[i] = grid.Date(d)
	}
	return out
}

// PickDate draws a reference date: a uniform year in [FirstYear, LastYear],
// a uniform month, then a uniform candidate of that month.
func PickDate(r Rand) calendar.Date {
	year := FirstYear + r.IntN(LastYear-FirstYear+1)
	month := time.Month(1 + r.IntN(12))
	cands := Candidates(year, month)
	return cands[r.IntN(len(cands))]
}

// NewTest starts a quiz: a fresh reference date, a Fisher-Yates shuffle of
// the catalog, and one seed per question drawn once and kept for the life of
// the session. Answers start hidden.
func NewTest(r Rand) Session {
	if r == nil {
		r = DefaultRand
	}
	date := PickDate(r)

	order := make([]int, len(catalog))
	for i := range order {
		order[i] = i
	}
	for i := len(order) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		order[i], order[j] = order[j], order[i]
	}

	seeds := make([]float64, len(order))
	for i := range seeds {
		seeds[i] = r.Float64()
	}

	return Session{Date: date, Order: order, Seeds: seeds}
}

// ToggleAnswers returns a copy of s with answer visibility flipped.
func (s Session) ToggleAnswers() Session {
	s.AnswersVisible = !s.AnswersVisible
	return s
}

// ToggleLabel is the caption for the control that flips visibility.
func (s Session) ToggleLabel() string {
	if s.AnswersVisible {
		return "Hide Answers"
	}
	return "Reveal Answers"
}

// Validate checks data loaded from outside the process before it reaches
// code that panics on broken invariants.
func (s Session) Validate() error {
	if s.Date.Year < FirstYear || s.Date.Year > LastYear {
		return fmt.Errorf("%w: year %d outside %d-%d", ErrInvalidSession, s.Date.Year, FirstYear, LastYear)
	}
	if s.Date.Month < time.January || s.Date.Month > time.December {
		return fmt.Errorf("%w: month %d", ErrInvalidSession, s.Date.Month)
	}
	if !isCandidate(s.Date) {
		return fmt.Errorf("%w: %s is not a selectable date", ErrInvalidSession, s.Date)
	}
	if len(s.Order) != len(catalog) || len(s.Seeds) != len(s.Order) {
		return fmt.Errorf("%w: %d questions and %d seeds for a catalog of %d",
			ErrInvalidSession, len(s.Order), len(s.Seeds), len(catalog))
	}
	seen := make([]bool, len(catalog))
	for _, idx := range s.Order {
		if idx < 0 || idx >= len(catalog) || seen[idx] {
			return fmt.Errorf("%w: order is not a permutation of the catalog", ErrInvalidSession)
		}
		seen[idx] = true
	}
	for _, seed := range s.Seeds {
		if seed < 0 || seed >= 1 {
			return fmt.Errorf("%w: seed %v outside [0, 1)", ErrInvalidSession, seed)
		}
	}
	return nil
}

func isCandidate(d calendar.Date) bool {
	for _, c := range Candidates(d.Year, d.Month) {
		if c == d {
			return true
		}
	}
	return false
}
