package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/hizuke/internal/database"
	"github.com/keyxmakerx/hizuke/internal/middleware"
	"github.com/keyxmakerx/hizuke/internal/plugins/practice"
	"github.com/keyxmakerx/hizuke/internal/quiz"
	"github.com/keyxmakerx/hizuke/internal/templates/layouts"
)

// RegisterRoutes sets up all application routes.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// --- Layout data ---
	// Templates cannot see the Echo context; this copies what the layouts
	// need into the render context. Set here so middleware never imports
	// the templates package.
	middleware.LayoutInjector = func(c echo.Context, ctx context.Context) context.Context {
		ctx = layouts.SetCSRFToken(ctx, middleware.GetCSRFToken(c))
		return layouts.SetActivePath(ctx, c.Request().URL.Path)
	}

	// --- Public routes ---
	// Health checks come from the orchestrator and are not rate limited.
	e.GET("/healthz", a.health)

	// --- Quiz plugin ---
	// One limiter instance, so page views, form posts and API calls from an
	// IP share a single budget.
	limiter := middleware.RateLimit(a.Config.RateLimit.Requests, a.Config.RateLimit.Window)
	svc := practice.NewQuizService(a.Store, quiz.DefaultRand)
	handler := practice.NewHandler(svc, a.Config.Session.TTL, a.Config.SecureCookies())
	practice.RegisterRoutes(e, handler, limiter)
}

// health reports 503 when the Redis session store is unreachable.
// GET /healthz
func (a *App) health(c echo.Context) error {
	status := map[string]string{"status": "ok", "store": "memory"}
	if a.Redis != nil {
		status["store"] = "redis"
		if err := database.Ping(c.Request().Context(), a.Redis); err != nil {
			slog.Warn("health check failed", slog.Any("error", err))
			status["status"] = "unavailable"
			return c.JSON(http.StatusServiceUnavailable, status)
		}
	}
	return c.JSON(http.StatusOK, status)
}
