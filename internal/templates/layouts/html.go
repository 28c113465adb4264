package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HTML writes markup for hand-built components. It keeps the first write
// error and turns later writes into no-ops, so a component can emit a whole
// page and check Err once at the end.
type HTML struct {
	w   io.Writer
	err error
}

// NewHTML wraps w.
func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

// Raw writes s unescaped. Only pass literal markup.
func (h *HTML) Raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

// Text writes s escaped for element content or a quoted attribute value.
func (h *HTML) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Component renders c in place.
func (h *HTML) Component(ctx context.Context, c templ.Component) {
	if h.err == nil {
		h.err = c.Render(ctx, h.w)
	}
}

// Err returns the first error seen.
func (h *HTML) Err() error {
	return h.err
}
