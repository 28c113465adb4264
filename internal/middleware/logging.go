// Package middleware provides the HTTP middleware for the quiz server.
// Global middleware is registered in internal/app/app.go; the rate limiter
// is attached per route by the practice plugin.
package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger logs every request with method, path, status, latency and
// client IP. Errors returned by the handler are resolved through the Echo
// error handler first so the logged status is the one the client saw.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Resolve the error here rather than letting it bubble up to
			// Echo. c.Error runs the app's error handler, which writes the
			// response, so res.Status below is the final status. Returning
			// nil afterwards stops Echo from handling the error twice.
			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", res.Status),
				slog.Duration("latency", time.Since(start)),
				slog.String("remote_ip", c.RealIP()),
			}
			// Fragment swaps and full page loads hit the same paths; the
			// flag tells them apart in the log.
			if IsHTMX(c) {
				attrs = append(attrs, slog.Bool("htmx", true))
			}

			// Client errors are warnings, server errors are errors.
			level := slog.LevelInfo
			switch {
			case res.Status >= 500:
				level = slog.LevelError
			case res.Status >= 400:
				level = slog.LevelWarn
			}

			slog.LogAttrs(req.Context(), level, "request", attrs...)
			return nil
		}
	}
}
