package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/laundromate/internal/config"
	"github.com/example/laundromate/internal/utils"
)

const sessionContextKey = "currentSession"

// Session is the per-request view of the caller's credentials. It is written
// once by the session middleware and read-only everywhere downstream.
type Session struct {
	Token string
}

// SessionMiddleware extracts the bearer token for the request. The httpOnly
// cookie is the source of truth; the Authorization header is accepted as a
// fallback for non-browser clients. Tokens that are provably expired are
// treated as absent so pages redirect to login without a backend round trip.
func SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(config.AccessTokenCookie)

		if token == "" {
			header := c.Get(fiber.HeaderAuthorization)
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = strings.TrimSpace(parts[1])
			}
		}

		if token != "" && !utils.TokenExpired(token) {
			c.Locals(sessionContextKey, Session{Token: token})
		}

		return c.Next()
	}
}

// GetSession extracts the session established by SessionMiddleware.
func GetSession(c *fiber.Ctx) (Session, bool) {
	value := c.Locals(sessionContextKey)
	if value == nil {
		return Session{}, false
	}

	if sess, ok := value.(Session); ok && sess.Token != "" {
		return sess, true
	}

	return Session{}, false
}

// SetSessionCookie issues the httpOnly access-token cookie.
func SetSessionCookie(c *fiber.Ctx, cfg *config.Config, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     config.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.CookieMaxAge.Seconds()),
		Expires:  time.Now().Add(cfg.CookieMaxAge),
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie expires the access-token cookie.
func ClearSessionCookie(c *fiber.Ctx, cfg *config.Config) {
	c.Cookie(&fiber.Cookie{
		Name:     config.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
