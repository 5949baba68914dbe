package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/example/laundromate/internal/config"
	"github.com/example/laundromate/internal/middleware"
	"github.com/example/laundromate/internal/services"
)

// SessionHandler bundles dependencies for the session endpoints: login,
// registration, OTP, and logout. Credentials are never verified here; they
// are forwarded to the backend and the issued token is persisted as an
// httpOnly cookie.
type SessionHandler struct {
	backend *services.BackendClient
	cfg     *config.Config
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(backend *services.BackendClient, cfg *config.Config) *SessionHandler {
	return &SessionHandler{backend: backend, cfg: cfg}
}

// Login forwards credentials to the backend and, on success, sets the
// access-token cookie in addition to echoing the token in the body.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	return h.forward(c, "/auth/login", true)
}

// Register forwards a registration payload. The backend may or may not issue
// a token on registration; the cookie is only set when one is present.
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	return h.forward(c, "/auth/register", true)
}

// RequestOTP asks the backend to send a one-time code to the given phone.
func (h *SessionHandler) RequestOTP(c *fiber.Ctx) error {
	return h.forward(c, "/auth/otp/request", false)
}

// VerifyOTP validates the submitted code. A successful verification behaves
// like a login: cookie plus token in the body.
func (h *SessionHandler) VerifyOTP(c *fiber.Ctx) error {
	return h.forward(c, "/auth/otp/verify", true)
}

// Logout clears the session cookie. No upstream call is made; the backend
// does not revoke tokens in this design.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	middleware.ClearSessionCookie(c, h.cfg)
	return c.JSON(fiber.Map{"success": true})
}

func (h *SessionHandler) forward(c *fiber.Ctx, path string, issueCookie bool) error {
	resp, err := h.backend.Do(services.RequestOpts{
		Method:    http.MethodPost,
		Path:      path,
		Body:      c.Body(),
		RequestID: c.Get(fiber.HeaderXRequestID),
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "auth service unreachable")
	}

	payload := map[string]interface{}{}
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &payload); err != nil {
			// Unparseable upstream body: mirror it untouched.
			if ct := resp.Header.Get(fiber.HeaderContentType); ct != "" {
				c.Set(fiber.HeaderContentType, ct)
			}
			return c.Status(resp.Status).Send(resp.Body)
		}
	}

	if issueCookie && resp.Status >= 200 && resp.Status < 300 {
		if token, ok := payload["access_token"].(string); ok && token != "" {
			middleware.SetSessionCookie(c, h.cfg, token)
		}
	}

	return c.Status(resp.Status).JSON(payload)
}
