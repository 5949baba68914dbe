package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AccessTokenCookie is the name of the httpOnly cookie carrying the session token.
const AccessTokenCookie = "access_token"

// Config holds application configuration values.
type Config struct {
	AppPort           string
	InternalAPIURL    string
	PublicAPIURL      string
	CookieSecure      bool
	CookieMaxAge      time.Duration
	UpstreamTimeout   time.Duration
	SessionRateMax    int
	SessionRateWindow time.Duration
}

// Load reads environment variables and returns a populated Config.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:           getEnv("APP_PORT", "3000"),
		InternalAPIURL:    getEnv("API_URL_INTERNAL", ""),
		PublicAPIURL:      getEnv("PUBLIC_API_URL", "http://localhost:8000"),
		CookieSecure:      getEnvBool("COOKIE_SECURE", true),
		CookieMaxAge:      getEnvDuration("COOKIE_MAX_AGE_HOURS", 168) * time.Hour,
		UpstreamTimeout:   getEnvDuration("UPSTREAM_TIMEOUT_SECONDS", 15) * time.Second,
		SessionRateMax:    getEnvInt("SESSION_RATE_MAX", 20),
		SessionRateWindow: getEnvDuration("SESSION_RATE_WINDOW_SECONDS", 60) * time.Second,
	}

	if cfg.AppPort == "" {
		log.Fatal("APP_PORT must be set")
	}

	return cfg
}

// BackendBaseURL resolves the upstream API base URL. The internal URL is
// preferred so server-to-server calls stay on the private network; the public
// URL is the fallback for local or single-host deployments.
func (c *Config) BackendBaseURL() string {
	if c.InternalAPIURL != "" {
		return strings.TrimRight(c.InternalAPIURL, "/")
	}
	if c.PublicAPIURL != "" {
		return strings.TrimRight(c.PublicAPIURL, "/")
	}
	return "http://localhost:8000"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback int) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return time.Duration(parsed)
		}
	}
	return time.Duration(fallback)
}
