package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/hizuke/internal/apperror"
)

// Recovery turns a panic in a handler into a logged 500. Broken invariants
// in the quiz engine panic, so this is what keeps one bad session from
// taking the server down.
func Recovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (returnErr error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				// net/http uses ErrAbortHandler to abort a response on
				// purpose; it must keep propagating to the server.
				if r == http.ErrAbortHandler {
					panic(r)
				}
				slog.Error("panic recovered",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", c.Request().Method),
					slog.String("path", c.Request().URL.Path),
				)
				// The panic value stays in Internal, which the error handler
				// logs but never shows to the client.
				returnErr = apperror.NewInternal(fmt.Errorf("panic: %v", r))
			}()

			return next(c)
		}
	}
}
