package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/hizuke/internal/apperror"
)

const (
	// CSRFCookieName holds the token. It is readable by scripts so HTMX can
	// echo it back in CSRFHeaderName.
	CSRFCookieName = "hizuke_csrf"
	CSRFHeaderName = "X-CSRF-Token"
	CSRFFormField  = "csrf_token"

	csrfContextKey  = "csrf_token"
	csrfTokenLength = 32
)

// CSRF implements the double-submit cookie pattern. Every response carries
// a token cookie; a mutating request must send the same token back in the
// X-CSRF-Token header or the csrf_token form field.
//
// The JSON API under /api/ is skipped: it is meant for non-browser clients
// that never hold the cookie.
func CSRF(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			// API clients authenticate with the X-Quiz-Session header, which
			// a cross-site form cannot set.
			if strings.HasPrefix(req.URL.Path, "/api/") {
				return next(c)
			}

			// Reuse the cookie's token when present; otherwise issue one. The
			// cookie is not HttpOnly because the htmx config script reads it.
			var token string
			if cookie, err := req.Cookie(CSRFCookieName); err == nil && cookie.Value != "" {
				token = cookie.Value
			} else {
				fresh, err := generateCSRFToken()
				if err != nil {
					return apperror.NewInternal(err)
				}
				token = fresh
				c.SetCookie(&http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			// Expose the token to templates for the hidden form field.
			c.Set(csrfContextKey, token)

			if isSafeMethod(req.Method) {
				return next(c)
			}

			// HTMX sends the header; plain forms send the field.
			submitted := req.Header.Get(CSRFHeaderName)
			if submitted == "" {
				submitted = req.FormValue(CSRFFormField)
			}
			// Constant-time compare so response timing leaks nothing about
			// the token.
			if submitted == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
				return apperror.NewForbidden("Your form has expired. Reload the page and try again.")
			}

			return next(c)
		}
	}
}

// isSafeMethod reports whether method cannot change state.
func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// generateCSRFToken returns csrfTokenLength random bytes, hex encoded.
func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GetCSRFToken returns the token set by CSRF for this request.
func GetCSRFToken(c echo.Context) string {
	if token, ok := c.Get(csrfContextKey).(string); ok {
		return token
	}
	return ""
}
