package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/hizuke/internal/apperror"
)

// --- Limiter ---

// rateLimiter counts requests per key in fixed windows. It lives in process
// memory, so each server instance enforces its own limit.
type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*rateLimitEntry

	// lastSweep is when stale entries were last dropped.
	lastSweep time.Time
}

// rateLimitEntry is one key's count in its current window.
type rateLimitEntry struct {
	count       int
	windowStart time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*rateLimitEntry),
	}
}

// allow records one request for key at now and reports whether it is within
// the limit. Stale entries are swept at most once per window, so memory is
// bounded by the number of distinct keys seen in two windows.
func (l *rateLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Sweep before counting so a flood of distinct keys cannot grow the
	// map without bound.
	if now.Sub(l.lastSweep) > l.window {
		for k, e := range l.entries {
			if now.Sub(e.windowStart) > l.window {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	// A new key, or one whose window has passed, starts a fresh window.
	e, ok := l.entries[key]
	if !ok || now.Sub(e.windowStart) > l.window {
		l.entries[key] = &rateLimitEntry{count: 1, windowStart: now}
		return true
	}
	// Requests past the limit still count, so a client that keeps
	// hammering stays limited until its window ends.
	e.count++
	return e.count <= l.limit
}

// --- Middleware ---

// RateLimit allows each client IP at most limit requests per window and
// answers 429 beyond that.
func RateLimit(limit int, window time.Duration) echo.MiddlewareFunc {
	l := newRateLimiter(limit, window)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// RealIP honours forwarding headers only from trusted proxies
			// (see TrustedProxies).
			if !l.allow(c.RealIP(), time.Now()) {
				return apperror.NewTooManyRequests("Too many requests. Please slow down.")
			}
			return next(c)
		}
	}
}
