package quiz

import (
	"fmt"

	"github.com/keyxmakerx/hizuke/internal/calendar"
)

// Prompt is a question in Japanese with an English gloss.
type Prompt struct {
	Japanese string `json:"japanese"`
	English  string `json:"english"`
}

// Template generates one question and its answer from a reference date and
// a seed in [0, 1). pick resolves the date the question is about; prompt and
// answer both receive that date, so a question and its answer cannot
// disagree about a randomly chosen day.
type Template struct {
	ID string

	pick   func(ref calendar.Date, seed float64) calendar.Date
	prompt func(ref, target calendar.Date) Prompt
	answer func(ref, target calendar.Date) Answer
}

// Prompt renders the question for ref and seed.
func (t Template) Prompt(ref calendar.Date, seed float64) Prompt {
	return t.prompt(ref, t.pick(ref, seed))
}

// Answer renders the answer for ref and seed. It is pure: the same inputs
// always give the same answer.
func (t Template) Answer(ref calendar.Date, seed float64) Answer {
	return t.answer(ref, t.pick(ref, seed))
}

// Target returns the date the question is about.
func (t Template) Target(ref calendar.Date, seed float64) calendar.Date {
	return t.pick(ref, seed)
}

// --- Relative expressions ---

// relative describes one offset from the reference date in both languages.
type relative struct {
	offset  int
	word    string // Japanese relative word, e.g. きのう
	english string // English phrase, e.g. "yesterday"
	past    bool
}

var dayOffsets = []relative{
	{-2, "おととい", "the day before yesterday", true},
	{-1, "きのう", "yesterday", true},
	{0, "きょう", "today", false},
	{1, "あした", "tomorrow", false},
	{2, "あさって", "the day after tomorrow", false},
}

var monthOffsets = []relative{
	{-1, "先月", "last month", true},
	{0, "今月", "this month", false},
	{1, "来月", "next month", false},
}

var yearOffsets = []relative{
	{-1, "去年", "last year", true},
	{0, "今年", "this year", false},
	{1, "来年", "next year", false},
}

var weekOffsets = []relative{
	{-1, "先週", "last week", true},
	{0, "今週", "this week", false},
	{1, "来週", "next week", false},
}

// --- Phrasing ---

// ending closes a Japanese question in the past or non-past tense.
func ending(past bool) string {
	if past {
		return "でしたか。"
	}
	return "ですか。"
}

// english builds "What <noun> was it <when>?" or "What <noun> is it <when>?"
// The future reads "will it be" except for the present day and period.
func english(noun string, r relative) string {
	switch {
	case r.past:
		return fmt.Sprintf("What %s was it %s?", noun, r.english)
	case r.offset == 0:
		return fmt.Sprintf("What %s is it %s?", noun, r.english)
	default:
		return fmt.Sprintf("What %s will it be %s?", noun, r.english)
	}
}

// --- Day, month and year templates ---

// dayPick resolves a day offset. The seed is unused: the target is fixed.
func dayPick(offset int) func(calendar.Date, float64) calendar.Date {
	return func(ref calendar.Date, _ float64) calendar.Date {
		return ref.AddDays(offset)
	}
}

func weekdayTemplate(r relative) Template {
	return Template{
		ID:   fmt.Sprintf("weekday%+d", r.offset),
		pick: dayPick(r.offset),
		prompt: func(_, _ calendar.Date) Prompt {
			return Prompt{
				Japanese: r.word + "は何曜日" + ending(r.past),
				English:  english("day", r),
			}
		},
		answer: func(_, target calendar.Date) Answer {
			return single(weekdayFact(target.Weekday()))
		},
	}
}

func dateTemplate(r relative) Template {
	return Template{
		ID:   fmt.Sprintf("date%+d", r.offset),
		pick: dayPick(r.offset),
		prompt: func(_, _ calendar.Date) Prompt {
			return Prompt{
				Japanese: r.word + "は何日" + ending(r.past),
				English:  english("date", r),
			}
		},
		answer: func(_, target calendar.Date) Answer {
			return single(dayFact(target.Day))
		},
	}
}

// monthTemplate keeps the answer inside the reference year: last month in
// January and next month in December both answer with the current month.
func monthTemplate(r relative) Template {
	return Template{
		ID: fmt.Sprintf("month%+d", r.offset),
		pick: func(ref calendar.Date, _ float64) calendar.Date {
			return ref.AddMonths(r.offset, calendar.ClampWithinYear)
		},
		prompt: func(_, _ calendar.Date) Prompt {
			return Prompt{
				Japanese: r.word + "は何月" + ending(r.past),
				English:  english("month", r),
			}
		},
		answer: func(_, target calendar.Date) Answer {
			return single(monthFact(target.Month))
		},
	}
}

func yearTemplate(r relative) Template {
	return Template{
		ID: fmt.Sprintf("year%+d", r.offset),
		// Unlike months, years roll over freely.
		pick: func(ref calendar.Date, _ float64) calendar.Date {
			return ref.AddMonths(12*r.offset, calendar.RollOver)
		},
		prompt: func(_, _ calendar.Date) Prompt {
			return Prompt{
				Japanese: r.word + "は何年" + ending(r.past),
				English:  english("year", r),
			}
		},
		answer: func(_, target calendar.Date) Answer {
			return yearAnswer(target.Year)
		},
	}
}

// --- Week templates ---

// weekPick chooses a day from the row offset rows away from the row holding
// ref. Only real days are candidates; the seed selects among them.
func weekPick(offset int) func(calendar.Date, float64) calendar.Date {
	return func(ref calendar.Date, seed float64) calendar.Date {
		grid := calendar.NewWeekGrid(ref.Year, ref.Month)
		// Reference dates are never on the first or last row, so the
		// neighbouring rows exist and hold at least one day.
		days := grid.Row(grid.IndexOf(ref) + offset).Days()
		// The clamp keeps the index in range for any seed.
		i := min(max(int(seed*float64(len(days))), 0), len(days)-1)
		return grid.Date(days[i])
	}
}

// weekPast reports whether a week question is in the past tense. Last week
// always is; this week is past only when the target precedes ref.
func weekPast(r relative, ref, target calendar.Date) bool {
	if r.offset == 0 {
		return target.Before(ref)
	}
	return r.past
}

// weekEnglish phrases "What date was Tuesday last week?" and its variants.
func weekEnglish(noun, subject string, r relative, past bool) string {
	switch {
	case past:
		return fmt.Sprintf("What %s was %s %s?", noun, subject, r.english)
	case r.offset == 0:
		return fmt.Sprintf("What %s is %s %s?", noun, subject, r.english)
	default:
		return fmt.Sprintf("What %s will %s %s be?", noun, subject, r.english)
	}
}

// weekDateTemplate asks for the date of a weekday in the target week.
func weekDateTemplate(r relative) Template {
	return Template{
		ID:   fmt.Sprintf("week%+d-date", r.offset),
		pick: weekPick(r.offset),
		prompt: func(ref, target calendar.Date) Prompt {
			wd := weekdayFact(target.Weekday())
			past := weekPast(r, ref, target)
			return Prompt{
				Japanese: r.word + "の" + wd.Kanji + "は何日" + ending(past),
				English:  weekEnglish("date", wd.English, r, past),
			}
		},
		answer: func(_, target calendar.Date) Answer {
			return single(dayFact(target.Day))
		},
	}
}

// weekWeekdayTemplate asks for the weekday of a date in the target week.
func weekWeekdayTemplate(r relative) Template {
	return Template{
		ID:   fmt.Sprintf("week%+d-weekday", r.offset),
		pick: weekPick(r.offset),
		prompt: func(ref, target calendar.Date) Prompt {
			past := weekPast(r, ref, target)
			return Prompt{
				Japanese: r.word + "の" + dayKanji(target.Day) + "は何曜日" + ending(past),
				English:  weekEnglish("day", "the "+ordinal(target.Day), r, past),
			}
		},
		answer: func(_, target calendar.Date) Answer {
			return single(weekdayFact(target.Weekday()))
		},
	}
}

// --- Catalog ---

// catalog is built once; sessions store indexes into it, so its order is
// part of the stored data format.
var catalog = buildCatalog()

func buildCatalog() []Template {
	var out []Template
	for _, r := range dayOffsets {
		out = append(out, weekdayTemplate(r))
	}
	for _, r := range dayOffsets {
		out = append(out, dateTemplate(r))
	}
	for _, r := range monthOffsets {
		out = append(out, monthTemplate(r))
	}
	for _, r := range yearOffsets {
		out = append(out, yearTemplate(r))
	}
	for _, r := range weekOffsets {
		out = append(out, weekDateTemplate(r))
	}
	for _, r := range weekOffsets {
		out = append(out, weekWeekdayTemplate(r))
	}
	return out
}

// Catalog returns the ordered list of question templates. The slice is a
// copy and may be modified by the caller.
func Catalog() []Template {
	return append([]Template(nil), catalog...)
}

// CatalogSize is the number of templates in the catalog.
func CatalogSize() int {
	return len(catalog)
}

// templateAt returns catalog entry i. An index outside the catalog means
// session data is corrupt or was built against another catalog.
func templateAt(i int) Template {
	if i < 0 || i >= len(catalog) {
		panic(fmt.Sprintf("quiz: template %d outside catalog of %d", i, len(catalog)))
	}
	return catalog[i]
}
