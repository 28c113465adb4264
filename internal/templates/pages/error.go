// Package pages holds the stand-alone pages that do not belong to a plugin.
package pages

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/keyxmakerx/hizuke/internal/templates/layouts"
)

// ErrorPage renders a full error page for the given status.
func ErrorPage(code int, message string) templ.Component {
	title := strconv.Itoa(code) + " " + http.StatusText(code)
	return layouts.Base(title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := layouts.NewHTML(w)
		h.Raw(`<section class="error"><h1>`)
		h.Text(title)
		h.Raw(`</h1><p>`)
		h.Text(message)
		h.Raw(`</p><p><a href="/quiz">Back to the quiz</a></p></section>`)
		return h.Err()
	}))
}
