// Package app is the application bootstrap and dependency injection root.
// It holds the shared infrastructure (Redis client, session store, Echo
// instance) and wires the quiz plugin onto it.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/hizuke/internal/apperror"
	"github.com/keyxmakerx/hizuke/internal/config"
	"github.com/keyxmakerx/hizuke/internal/middleware"
	"github.com/keyxmakerx/hizuke/internal/plugins/practice"
	"github.com/keyxmakerx/hizuke/internal/templates/pages"
)

// App holds all shared dependencies and the Echo HTTP server instance.
type App struct {
	Config *config.Config

	// Redis is nil when quiz sessions are kept in memory.
	Redis *redis.Client

	// Store holds quiz worksheets.
	Store practice.SessionStore

	Echo *echo.Echo
}

// New creates the App and configures Echo with global middleware and error
// handling. A nil rdb selects the in-memory session store.
func New(cfg *config.Config, rdb *redis.Client) *App {
	e := echo.New()
	// Startup is logged through slog instead of Echo's banner.
	e.HideBanner = true
	e.HidePort = true

	// Must run before any middleware calls c.RealIP().
	middleware.TrustedProxies(e, cfg.TrustedProxies)

	// Both stores expire worksheets after the session TTL, which is also
	// the cookie lifetime.
	var store practice.SessionStore
	if rdb != nil {
		store = practice.NewRedisStore(rdb, cfg.Session.TTL)
	} else {
		store = practice.NewMemoryStore(cfg.Session.TTL)
	}

	app := &App{
		Config: cfg,
		Redis:  rdb,
		Store:  store,
		Echo:   e,
	}

	app.setupMiddleware()
	e.HTTPErrorHandler = app.errorHandler

	return app
}

// setupMiddleware registers global middleware. The request logger sits
// outside recovery so recovered panics are logged with their final status.
func (a *App) setupMiddleware() {
	a.Echo.Use(middleware.RequestLogger())
	a.Echo.Use(middleware.Recovery())
	// Headers are set before the handler runs, so error pages carry them too.
	a.Echo.Use(middleware.SecurityHeaders())
	// CORS must precede CSRF so preflight requests are answered before a
	// token is demanded.
	a.Echo.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   a.Config.CORSOrigins,
		AllowCredentials: true,
	}))
	a.Echo.Use(middleware.CSRF(a.Config.SecureCookies()))
}

// errorHandler maps errors to responses: JSON for the API, an error page for
// browsers. HTMX requests are retargeted to the body so the error page
// replaces the whole document instead of landing inside the quiz fragment.
func (a *App) errorHandler(err error, c echo.Context) {
	// A handler that already wrote its response cannot be given another.
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := defaultErrorMessage(code)

	var appErr *apperror.AppError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		code = appErr.Code
		message = appErr.Message
		if appErr.Internal != nil {
			slog.Error("internal error",
				slog.String("type", appErr.Type),
				slog.String("message", appErr.Message),
				slog.Any("internal", appErr.Internal),
				slog.String("path", c.Request().URL.Path),
			)
		}
	case errors.As(err, &echoErr):
		code = echoErr.Code
		message = defaultErrorMessage(code)
	default:
		slog.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
		)
	}

	// --- API clients get JSON ---
	if isAPIRequest(c) {
		if err := c.JSON(code, map[string]string{
			"error":   http.StatusText(code),
			"message": message,
		}); err != nil {
			slog.Error("writing error response", slog.Any("error", err))
		}
		return
	}

	// --- Browsers get an error page ---
	if middleware.IsHTMX(c) {
		c.Response().Header().Set("HX-Retarget", "body")
		c.Response().Header().Set("HX-Reswap", "innerHTML")
	}

	if err := middleware.Render(c, code, pages.ErrorPage(code, message)); err != nil {
		slog.Error("rendering error page", slog.Any("error", err))
	}
}

// defaultErrorMessage returns a user-facing message for status codes raised
// by the router rather than by a handler.
func defaultErrorMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "The request was invalid or cannot be processed."
	case http.StatusForbidden:
		return "You don't have permission to do that."
	case http.StatusNotFound:
		return "The page you're looking for doesn't exist."
	case http.StatusMethodNotAllowed:
		return "This action is not allowed."
	case http.StatusTooManyRequests:
		return "You're making too many requests. Please slow down."
	case http.StatusServiceUnavailable:
		return "The service is temporarily unavailable. Please try again later."
	default:
		return "Something went wrong on our end. Please try again."
	}
}

func isAPIRequest(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}

// Start begins listening on the configured port.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)
	slog.Info("starting Hizuke server",
		slog.String("addr", addr),
		slog.String("env", a.Config.Env),
	)
	return a.Echo.Start(addr)
}
