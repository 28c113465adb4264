package practice

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/keyxmakerx/hizuke/internal/middleware"
	"github.com/keyxmakerx/hizuke/internal/quiz"
	"github.com/keyxmakerx/hizuke/internal/templates/layouts"
)

// fragmentID is the element HTMX swaps on every quiz action.
const fragmentID = "quiz"

// QuizPage is the full quiz page.
func QuizPage(v quiz.View) templ.Component {
	return layouts.Base("Quiz", QuizFragment(v))
}

// QuizFragment is the swappable part of the page: calendar, controls and
// questions.
func QuizFragment(v quiz.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		h.Raw(`<div id="` + fragmentID + `">`)
		h.Component(ctx, calendarTable(v.Calendar))
		h.Component(ctx, controls(v))
		h.Component(ctx, questionList(v.Questions))
		h.Raw(`</div>`)
		return h.Err()
	})
}

func calendarTable(cv quiz.CalendarView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		h.Raw(`<table class="calendar"><caption><strong>`)
		h.Text(cv.JapaneseLabel)
		h.Raw(`</strong> `)
		h.Text(cv.Label)
		h.Raw(`</caption><thead><tr>`)
		for _, hd := range cv.Headers {
			h.Raw(`<th title="`)
			h.Text(hd.English)
			h.Raw(`">`)
			h.Text(hd.Kanji)
			h.Raw(`</th>`)
		}
		h.Raw(`</tr></thead><tbody>`)
		for _, week := range cv.Weeks {
			h.Raw(`<tr>`)
			for _, cell := range week {
				switch {
				case cell.Day == 0:
					h.Raw(`<td class="empty"></td>`)
				case cell.Active:
					h.Raw(`<td class="active" aria-current="date">` + strconv.Itoa(cell.Day) + `</td>`)
				default:
					h.Raw(`<td>` + strconv.Itoa(cell.Day) + `</td>`)
				}
			}
			h.Raw(`</tr>`)
		}
		h.Raw(`</tbody></table>`)
		return h.Err()
	})
}

// controls renders the two actions as plain forms. HTMX upgrades them to
// fragment swaps; without JavaScript they post and follow the redirect.
func controls(v quiz.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		token := layouts.GetCSRFToken(ctx)
		h := layouts.NewHTML(w)
		h.Raw(`<div class="actions">`)
		for _, action := range []struct{ path, label string }{
			{"/quiz/new", "New Test"},
			{"/quiz/toggle", v.ToggleLabel},
		} {
			h.Raw(`<form method="post" action="` + action.path + `" hx-post="` + action.path +
				`" hx-target="#` + fragmentID + `" hx-swap="outerHTML">`)
			h.Raw(`<input type="hidden" name="` + middleware.CSRFFormField + `" value="`)
			h.Text(token)
			h.Raw(`"><button type="submit">`)
			h.Text(action.label)
			h.Raw(`</button></form>`)
		}
		h.Raw(`</div>`)
		return h.Err()
	})
}

func questionList(qs []quiz.QuestionView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		h.Raw(`<ol class="questions">`)
		for _, q := range qs {
			h.Raw(`<li id="q-`)
			h.Text(q.ID)
			h.Raw(`"><div lang="ja">`)
			h.Text(q.Prompt.Japanese)
			h.Raw(`</div><div class="gloss">`)
			h.Text(q.Prompt.English)
			h.Raw(`</div>`)
			if q.Answer != nil {
				h.Raw(`<div class="answer">`)
				h.Text(q.Answer.Text())
				h.Raw(`</div>`)
			}
			h.Raw(`</li>`)
		}
		h.Raw(`</ol>`)
		return h.Err()
	})
}
