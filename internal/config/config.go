// Package config loads application configuration from environment
// variables, optionally seeded from a .env file. No other package reads the
// environment directly.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DotEnvFile is read at startup when present. Variables already set in the
// environment win over the file.
const DotEnvFile = ".env"

// Config holds all application configuration.
type Config struct {
	// Env is "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL. An https scheme marks cookies Secure.
	BaseURL string

	// LogLevel is "debug", "info", "warn" or "error". Empty picks debug in
	// development and info otherwise.
	LogLevel string

	Redis RedisConfig

	Session SessionConfig

	RateLimit RateLimitConfig

	// TrustedProxies lists the CIDRs whose forwarding headers are believed.
	TrustedProxies []string

	// CORSOrigins lists origins allowed to call the JSON API.
	CORSOrigins []string
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL, e.g. "redis://localhost:6379/0".
	// Empty keeps quiz sessions in process memory.
	URL string
}

// SessionConfig controls how long a quiz survives between visits.
type SessionConfig struct {
	TTL time.Duration
}

// RateLimitConfig bounds requests per client IP on the mutating routes.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

var defaultTrustedProxies = []string{
	"127.0.0.0/8",
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"fd00::/8",
}

// Load reads the .env file if there is one, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", DotEnvFile, err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only. Returns an
// error if a value required in production is missing.
func FromEnv() (*Config, error) {
	baseURL := getEnv("BASE_URL", "http://localhost:8080")
	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		BaseURL:  baseURL,
		LogLevel: getEnv("LOG_LEVEL", ""),

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},

		Session: SessionConfig{
			TTL: getEnvDuration("SESSION_TTL", 24*time.Hour),
		},

		RateLimit: RateLimitConfig{
			Requests: getEnvInt("RATE_LIMIT_REQUESTS", 60),
			Window:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},

		TrustedProxies: getEnvList("TRUSTED_PROXIES", defaultTrustedProxies),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{baseURL}),
	}

	if !cfg.IsDevelopment() && cfg.Redis.URL == "" {
		return nil, fmt.Errorf("REDIS_URL is required in production")
	}
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.Session.TTL)
	}
	if cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// SecureCookies reports whether cookies should carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(strings.ToLower(c.BaseURL), "https://")
}

// SlogLevel parses LogLevel, defaulting by environment.
func (c *Config) SlogLevel() (slog.Level, error) {
	if c.LogLevel == "" {
		if c.IsDevelopment() {
			return slog.LevelDebug, nil
		}
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

// --- Helper functions for reading environment variables ---

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration such as "24h" or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// getEnvList reads a comma-separated list, dropping empty entries.
func getEnvList(key string, defaultVal []string) []string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
