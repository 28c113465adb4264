package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig lists the origins allowed to call the JSON API.
type CORSConfig struct {
	// AllowedOrigins may contain "*" to allow any origin.
	AllowedOrigins []string

	// AllowCredentials lets the browser send the quiz session cookie along.
	// It is ignored for wildcard origins.
	AllowCredentials bool
}

// Preflight answers. X-Quiz-Session carries the session id for API clients,
// so it must be both allowed on requests and exposed on responses.
var (
	corsMethods = strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodOptions}, ", ")
	corsHeaders = strings.Join([]string{echo.HeaderContentType, "X-Quiz-Session"}, ", ")
)

// CORS answers preflight requests and sets Access-Control headers for
// allowed origins. Requests without an Origin header pass through untouched.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	// Build the origin set once; the middleware only does map lookups.
	allowAll := false
	origins := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		origins[o] = true
	}
	// Browsers refuse credentialed responses for "*", so drop credentials
	// rather than send a header pair they will reject.
	if allowAll && cfg.AllowCredentials {
		slog.Warn("CORS: credentials are not sent for a wildcard origin")
		cfg.AllowCredentials = false
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			origin := req.Header.Get(echo.HeaderOrigin)
			// Same-origin requests and unknown origins get no CORS headers;
			// the browser then enforces the same-origin policy.
			if origin == "" || !(allowAll || origins[origin]) {
				return next(c)
			}

			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, origin)
			// The response depends on Origin, so caches must key on it.
			h.Add(echo.HeaderVary, echo.HeaderOrigin)
			if cfg.AllowCredentials {
				h.Set(echo.HeaderAccessControlAllowCredentials, "true")
			}

			// Preflight: answer directly without reaching the route.
			if req.Method == http.MethodOptions {
				h.Set(echo.HeaderAccessControlAllowMethods, corsMethods)
				h.Set(echo.HeaderAccessControlAllowHeaders, corsHeaders)
				h.Set(echo.HeaderAccessControlMaxAge, "3600")
				return c.NoContent(http.StatusNoContent)
			}

			h.Set(echo.HeaderAccessControlExposeHeaders, "X-Quiz-Session")
			return next(c)
		}
	}
}
