package middleware

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/example/laundromate/internal/models"
	"github.com/example/laundromate/internal/services"
)

const userContextKey = "currentUser"

// ErrSessionRejected marks a token the backend refused with 401.
var ErrSessionRejected = errors.New("session rejected by backend")

const loginPath = "/auth/login"

// ResolveRole fetches the current user from the backend and classifies it.
// Transport failures and malformed records classify as customer so a
// mis-provisioned but legitimate user is never stranded; only an upstream 401
// is surfaced, as ErrSessionRejected.
func ResolveRole(backend *services.BackendClient, token, requestID string) (models.Role, *models.User, error) {
	resp, err := backend.Do(services.RequestOpts{
		Method:    http.MethodGet,
		Path:      "/auth/me",
		Token:     token,
		RequestID: requestID,
	})
	if err != nil {
		log.Printf("[Guard] role lookup failed: %v", err)
		return models.RoleCustomer, nil, nil
	}

	if resp.Status == fiber.StatusUnauthorized {
		return models.RoleCustomer, nil, ErrSessionRejected
	}

	if resp.Status < 200 || resp.Status >= 300 {
		log.Printf("[Guard] role lookup returned status %d", resp.Status)
		return models.RoleCustomer, nil, nil
	}

	var user models.User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		log.Printf("[Guard] malformed user record: %v", err)
		return models.RoleCustomer, nil, nil
	}

	return user.Classify(), &user, nil
}

// RequireRole guards a page behind a minimum role. Without a session the
// request is redirected to login before any backend call; with one, the role
// is resolved once and insufficient callers are sent to the fallback surface.
func RequireRole(backend *services.BackendClient, required models.Role, fallback string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := GetSession(c)
		if !ok {
			return c.Redirect(loginPath, fiber.StatusFound)
		}

		role, user, err := ResolveRole(backend, sess.Token, c.Get(fiber.HeaderXRequestID))
		if err != nil {
			return c.Redirect(loginPath, fiber.StatusFound)
		}

		if role < required {
			return c.Redirect(fallback, fiber.StatusFound)
		}

		if user != nil {
			c.Locals(userContextKey, user)
		}
		return c.Next()
	}
}

// GetCurrentUser extracts the user record loaded by RequireRole.
func GetCurrentUser(c *fiber.Ctx) (*models.User, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return nil, false
	}

	if user, ok := value.(*models.User); ok {
		return user, true
	}

	return nil, false
}

// LandingPath maps a role to its landing surface.
func LandingPath(role models.Role) string {
	switch role {
	case models.RoleSuperAdmin:
		return "/super-admin"
	case models.RoleAdmin:
		return "/admin"
	default:
		return "/portal"
	}
}
