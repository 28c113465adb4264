// Package practice serves the date quiz over HTTP. Each browser owns one
// worksheet, addressed by a UUID kept in a cookie (or, for API clients, the
// X-Quiz-Session header). Worksheets live in a SessionStore and are replaced
// wholesale on every new test.
package practice

import (
	"time"

	"github.com/keyxmakerx/hizuke/internal/quiz"
)

const (
	// CookieName holds the worksheet ID for browsers.
	CookieName = "hizuke_quiz"

	// HeaderName carries the worksheet ID for API clients. Responses echo it.
	HeaderName = "X-Quiz-Session"
)

// Worksheet is one stored quiz and the ID that addresses it.
type Worksheet struct {
	ID        string       `json:"id"`
	Session   quiz.Session `json:"session"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Response is the JSON API body: the display model plus the worksheet ID.
type Response struct {
	SessionID string `json:"session_id"`
	quiz.View
}

func newResponse(ws *Worksheet) Response {
	return Response{SessionID: ws.ID, View: ws.Session.View()}
}
