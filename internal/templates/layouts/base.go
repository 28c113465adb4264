package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HTMXScript is the pinned htmx build the pages load.
const HTMXScript = "https://unpkg.com/htmx.org@2.0.4"

// htmxConfig makes every HTMX request echo the CSRF cookie in a header.
const htmxConfig = `<script>
document.addEventListener('htmx:configRequest', function (evt) {
  var m = document.cookie.match(/(?:^|; )hizuke_csrf=([^;]*)/);
  if (m) evt.detail.headers['X-CSRF-Token'] = decodeURIComponent(m[1]);
});
</script>`

const baseStyle = `<style>
body { font-family: system-ui, "Hiragino Sans", "Noto Sans JP", sans-serif; margin: 0 auto; max-width: 56rem; padding: 1rem; color: #222; }
header { display: flex; align-items: baseline; gap: 1rem; border-bottom: 1px solid #ddd; margin-bottom: 1rem; }
header a { color: inherit; text-decoration: none; font-weight: 600; }
.calendar { border-collapse: collapse; margin-bottom: 1.5rem; }
.calendar th, .calendar td { width: 2.5rem; height: 2rem; text-align: center; border: 1px solid #eee; }
.calendar td.active { background: #c0392b; color: #fff; font-weight: 700; }
.calendar td.empty { background: #fafafa; }
.questions li { margin-bottom: .75rem; }
.questions .gloss { color: #666; font-size: .9em; }
.questions .answer { color: #1a5276; margin-top: .25rem; }
.actions { display: flex; gap: .5rem; margin: 1rem 0; }
.error { text-align: center; padding: 3rem 1rem; }
</style>`

// Base wraps body in the full HTML document.
func Base(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(w)
		h.Raw(`<!DOCTYPE html><html lang="ja"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw(`<meta name="csrf-token" content="`)
		h.Text(GetCSRFToken(ctx))
		h.Raw(`"><title>`)
		h.Text(title)
		h.Raw(` | 日付 Hizuke</title><script src="` + HTMXScript + `"></script>`)
		h.Raw(htmxConfig)
		h.Raw(baseStyle)
		h.Raw(`</head><body><header><a href="/quiz">日付 Hizuke</a><span>Japanese date practice</span></header><main>`)
		h.Component(ctx, body)
		h.Raw(`</main></body></html>`)
		return h.Err()
	})
}
