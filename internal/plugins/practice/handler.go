package practice

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/hizuke/internal/apperror"
	"github.com/keyxmakerx/hizuke/internal/middleware"
)

// Handler processes HTTP requests for the quiz.
type Handler struct {
	svc          QuizService
	cookieTTL    time.Duration
	secureCookie bool
}

// NewHandler creates a quiz Handler. cookieTTL should match the store TTL.
func NewHandler(svc QuizService, cookieTTL time.Duration, secureCookie bool) *Handler {
	return &Handler{svc: svc, cookieTTL: cookieTTL, secureCookie: secureCookie}
}

// Index sends visitors to the quiz.
// GET /
func (h *Handler) Index(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/quiz")
}

// Show renders the current quiz, starting one on the first visit.
// GET /quiz
func (h *Handler) Show(c echo.Context) error {
	if h.svc == nil {
		return apperror.NewMissingContext()
	}
	ws, err := h.svc.Current(c.Request().Context(), h.sessionID(c))
	if err != nil {
		return err
	}
	h.remember(c, ws)

	if middleware.IsHTMX(c) {
		return middleware.Render(c, http.StatusOK, QuizFragment(ws.Session.View()))
	}
	return middleware.Render(c, http.StatusOK, QuizPage(ws.Session.View()))
}

// NewTest replaces the quiz with a fresh one.
// POST /quiz/new
func (h *Handler) NewTest(c echo.Context) error {
	if h.svc == nil {
		return apperror.NewMissingContext()
	}
	ws, err := h.svc.NewTest(c.Request().Context(), h.sessionID(c))
	if err != nil {
		return err
	}
	return h.afterChange(c, ws)
}

// ToggleAnswers reveals or hides the answers.
// POST /quiz/toggle
func (h *Handler) ToggleAnswers(c echo.Context) error {
	if h.svc == nil {
		return apperror.NewMissingContext()
	}
	ws, err := h.svc.ToggleAnswers(c.Request().Context(), h.sessionID(c))
	if err != nil {
		return err
	}
	return h.afterChange(c, ws)
}

// afterChange answers a mutating form post: HTMX swaps in the new fragment,
// a plain form follows a 303 back to the page.
func (h *Handler) afterChange(c echo.Context, ws *Worksheet) error {
	h.remember(c, ws)
	if middleware.IsHTMX(c) {
		return middleware.Render(c, http.StatusOK, QuizFragment(ws.Session.View()))
	}
	return c.Redirect(http.StatusSeeOther, "/quiz")
}

// --- JSON API ---

// APIShow returns the current quiz.
// GET /api/v1/quiz
func (h *Handler) APIShow(c echo.Context) error {
	if h.svc == nil {
		return apperror.NewMissingContext()
	}
	ws, err := h.svc.Current(c.Request().Context(), h.sessionID(c))
	if err != nil {
		return err
	}
	h.remember(c, ws)
	return c.JSON(http.StatusOK, newResponse(ws))
}

// APINewTest starts a fresh quiz.
// POST /api/v1/quiz/new
func (h *Handler) APINewTest(c echo.Context) error {
	if h.svc == nil {
		return apperror.NewMissingContext()
	}
	ws, err := h.svc.NewTest(c.Request().Context(), h.sessionID(c))
	if err != nil {
		return err
	}
	h.remember(c, ws)
	return c.JSON(http.StatusCreated, newResponse(ws))
}

// APIToggleAnswers flips answer visibility.
// POST /api/v1/quiz/toggle
func (h *Handler) APIToggleAnswers(c echo.Context) error {
	if h.svc == nil {
		return apperror.NewMissingContext()
	}
	ws, err := h.svc.ToggleAnswers(c.Request().Context(), h.sessionID(c))
	if err != nil {
		return err
	}
	h.remember(c, ws)
	return c.JSON(http.StatusOK, newResponse(ws))
}

// sessionID reads the worksheet ID from the API header, then the cookie.
func (h *Handler) sessionID(c echo.Context) string {
	if id := c.Request().Header.Get(HeaderName); id != "" {
		return id
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// remember hands the worksheet ID back to the client and refreshes the
// cookie lifetime.
func (h *Handler) remember(c echo.Context, ws *Worksheet) {
	c.Response().Header().Set(HeaderName, ws.ID)
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    ws.ID,
		Path:     "/",
		MaxAge:   int(h.cookieTTL / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
