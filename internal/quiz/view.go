package quiz

import (
	"fmt"
	"time"

	"github.com/keyxmakerx/hizuke/internal/calendar"
	"golang.org/x/text/width"
)

// DayCell is one slot of the calendar grid. Day is 0 for a slot outside the
// month.
type DayCell struct {
	Day    int  `json:"day"`
	Active bool `json:"active"`
}

// WeekdayHeader labels one calendar column.
type WeekdayHeader struct {
	English string `json:"english"`
	Kanji   string `json:"kanji"`
}

// CalendarView is the month around the reference date with that date
// marked active.
type CalendarView struct {
	Label         string           `json:"label"`
	JapaneseLabel string           `json:"japanese_label"`
	Headers       [7]WeekdayHeader `json:"headers"`
	Weeks         [][7]DayCell     `json:"weeks"`
}

// QuestionView is one numbered question. Answer is nil while answers are
// hidden.
type QuestionView struct {
	Number int     `json:"number"`
	ID     string  `json:"id"`
	Prompt Prompt  `json:"prompt"`
	Answer *Answer `json:"answer,omitempty"`
}

// View is everything a renderer needs to draw a session.
type View struct {
	Date           calendar.Date  `json:"date"`
	Calendar       CalendarView   `json:"calendar"`
	Questions      []QuestionView `json:"questions"`
	AnswersVisible bool           `json:"answers_visible"`
	ToggleLabel    string         `json:"toggle_label"`
}

// Calendar builds the calendar display model for the session's month.
func (s Session) Calendar() CalendarView {
	grid := calendar.NewWeekGrid(s.Date.Year, s.Date.Month)

	cv := CalendarView{
		Label:         fmt.Sprintf("%s %d", s.Date.Month, s.Date.Year),
		JapaneseLabel: width.Widen.String(fmt.Sprintf("%d年%d月", s.Date.Year, int(s.Date.Month))),
		Weeks:         make([][7]DayCell, grid.Len()),
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		cv.Headers[wd] = WeekdayHeader{English: wd.String()[:3], Kanji: weekdayShort[wd]}
	}
	for i, w := range grid.Weeks {
		for slot, day := range w {
			cv.Weeks[i][slot] = DayCell{Day: day, Active: day != 0 && day == s.Date.Day}
		}
	}
	return cv
}

// Questions renders the session's questions in shuffled order. Answers are
// computed fresh from the stored date and seeds when visible.
func (s Session) Questions() []QuestionView {
	out := make([]QuestionView, len(s.Order))
	for i, idx := range s.Order {
		t := templateAt(idx)
		q := QuestionView{
			Number: i + 1,
			ID:     t.ID,
			Prompt: t.Prompt(s.Date, s.Seeds[i]),
		}
		if s.AnswersVisible {
			a := t.Answer(s.Date, s.Seeds[i])
			q.Answer = &a
		}
		out[i] = q
	}
	return out
}

// View builds the full display model.
func (s Session) View() View {
	return View{
		Date:           s.Date,
		Calendar:       s.Calendar(),
		Questions:      s.Questions(),
		AnswersVisible: s.AnswersVisible,
		ToggleLabel:    s.ToggleLabel(),
	}
}
