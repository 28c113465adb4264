package layouts

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	if GetCSRFToken(ctx) != "" || GetActivePath(ctx) != "" {
		t.Fatal("expected empty values on a bare context")
	}
	ctx = SetActivePath(SetCSRFToken(ctx, "tok"), "/quiz")
	if GetCSRFToken(ctx) != "tok" || GetActivePath(ctx) != "/quiz" {
		t.Errorf("unexpected values %q %q", GetCSRFToken(ctx), GetActivePath(ctx))
	}
}

func TestBase_EscapesAndEmbedsBody(t *testing.T) {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>body</p>")
		return err
	})
	ctx := SetCSRFToken(context.Background(), `"><script>`)

	var buf bytes.Buffer
	if err := Base("<Quiz>", body).Render(ctx, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<p>body</p>") {
		t.Error("expected body in output")
	}
	if strings.Contains(out, "<Quiz>") || !strings.Contains(out, "&lt;Quiz&gt;") {
		t.Error("expected title to be escaped")
	}
	if strings.Contains(out, `content=""><script>`) {
		t.Error("expected csrf token to be escaped")
	}
	if !strings.Contains(out, HTMXScript) {
		t.Error("expected htmx script tag")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestHTML_KeepsFirstError(t *testing.T) {
	h := NewHTML(failingWriter{})
	h.Raw("a")
	h.Text("b")
	if h.Err() == nil || h.Err().Error() != "broken pipe" {
		t.Errorf("expected broken pipe, got %v", h.Err())
	}
}
