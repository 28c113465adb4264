package practice

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the quiz pages and JSON API. limiter guards every
// route that can write to the store. That includes the GET routes, since a
// first visit without a session cookie creates and stores a worksheet.
func RegisterRoutes(e *echo.Echo, h *Handler, limiter echo.MiddlewareFunc) {
	e.GET("/", h.Index)

	// --- Browser pages (HTMX fragments for hx- requests) ---
	e.GET("/quiz", h.Show, limiter)
	e.POST("/quiz/new", h.NewTest, limiter)
	e.POST("/quiz/toggle", h.ToggleAnswers, limiter)

	// --- JSON API (session id in the X-Quiz-Session header) ---
	api := e.Group("/api/v1/quiz")
	api.GET("", h.APIShow, limiter)
	api.POST("/new", h.APINewTest, limiter)
	api.POST("/toggle", h.APIToggleAnswers, limiter)
}
