package middleware

import (
	"context"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// LayoutInjector copies request-scoped values from the Echo context into the
// context.Context that templ components render with. Set once at startup in
// app/routes.go so this package never imports the layouts package.
var LayoutInjector func(echo.Context, context.Context) context.Context

// IsHTMX reports whether the request came from HTMX and is not a boosted
// navigation. Handlers return a fragment for these and a full page
// otherwise.
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true" &&
		c.Request().Header.Get("HX-Boosted") != "true"
}

// Render writes a templ component with the given status code.
func Render(c echo.Context, statusCode int, component templ.Component) error {
	// Carry the CSRF token and active path into the component context.
	ctx := c.Request().Context()
	if LayoutInjector != nil {
		ctx = LayoutInjector(c, ctx)
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	// Headers must be set before WriteHeader commits them.
	c.Response().WriteHeader(statusCode)
	return component.Render(ctx, c.Response().Writer)
}
