package handlers

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/laundromate/internal/config"
	"github.com/example/laundromate/internal/middleware"
	"github.com/example/laundromate/internal/models"
	"github.com/example/laundromate/internal/services"
)

// PageHandler serves the role-specific page surfaces. The shells are
// deliberately minimal; layout and styling live elsewhere. What matters here
// is which surface a caller reaches.
type PageHandler struct {
	backend *services.BackendClient
	cfg     *config.Config
}

// NewPageHandler constructs a PageHandler.
func NewPageHandler(backend *services.BackendClient, cfg *config.Config) *PageHandler {
	return &PageHandler{backend: backend, cfg: cfg}
}

const pageShell = `<!DOCTYPE html>
<html>
<head><title>%s - LaundroMate</title></head>
<body><main id="app" data-surface="%s">%s</main></body>
</html>`

func renderShell(c *fiber.Ctx, title, surface, content string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(fmt.Sprintf(pageShell, html.EscapeString(title), surface, content))
}

// Landing serves "/". A signed-in caller is redirected to the surface their
// role maps to; everyone else gets the public landing shell.
func (h *PageHandler) Landing(c *fiber.Ctx) error {
	sess, ok := middleware.GetSession(c)
	if !ok {
		return renderShell(c, "LaundroMate", "landing",
			`<a href="/auth/login">Log in</a> <a href="/auth/register">Get Started</a>`)
	}

	role, _, err := middleware.ResolveRole(h.backend, sess.Token, c.Get(fiber.HeaderXRequestID))
	if err != nil {
		return c.Redirect("/auth/login", fiber.StatusFound)
	}

	return c.Redirect(middleware.LandingPath(role), fiber.StatusFound)
}

// LoginPage serves the login shell.
func (h *PageHandler) LoginPage(c *fiber.Ctx) error {
	return renderShell(c, "Log in", "auth-login", `<form id="login"></form>`)
}

// RegisterPage serves the registration shell.
func (h *PageHandler) RegisterPage(c *fiber.Ctx) error {
	return renderShell(c, "Register", "auth-register", `<form id="register"></form>`)
}

// Portal serves the customer surface. A missing customer profile is a normal
// state: the shell renders a create-profile call to action instead of an
// error. An unauthorized answer on any lookup sends the caller back to login.
func (h *PageHandler) Portal(c *fiber.Ctx) error {
	sess, _ := middleware.GetSession(c)
	requestID := c.Get(fiber.HeaderXRequestID)

	resp, err := h.backend.Do(services.RequestOpts{
		Method:    http.MethodGet,
		Path:      "/customers/me",
		Token:     sess.Token,
		RequestID: requestID,
	})
	if err == nil && resp.Status == fiber.StatusUnauthorized {
		return c.Redirect("/auth/login", fiber.StatusFound)
	}

	content := `<a href="/portal/customer/new">Create Profile</a>`
	if err == nil && resp.Status >= 200 && resp.Status < 300 {
		var customer models.Customer
		if jsonErr := json.Unmarshal(resp.Body, &customer); jsonErr == nil && customer.ID != 0 {
			content = h.customerSummary(sess.Token, requestID, customer)
		}
	}

	return renderShell(c, "Portal", "portal", content)
}

func (h *PageHandler) customerSummary(token, requestID string, customer models.Customer) string {
	summary := fmt.Sprintf(`<p data-customer-id="%d">Customer #%d</p>`, customer.ID, customer.ID)

	query := url.Values{}
	query.Set("customer_id", strconv.FormatInt(customer.ID, 10))
	resp, err := h.backend.Do(services.RequestOpts{
		Method:    http.MethodGet,
		Path:      "/addresses",
		Query:     query,
		Token:     token,
		RequestID: requestID,
	})
	if err != nil || resp.Status < 200 || resp.Status >= 300 {
		return summary
	}

	var addresses []models.Address
	if err := json.Unmarshal(resp.Body, &addresses); err != nil {
		return summary
	}

	summary += fmt.Sprintf(`<p>%d saved addresses</p>`, len(addresses))
	for _, addr := range addresses {
		if addr.IsDefault {
			summary += fmt.Sprintf(`<p>Default: %s, %s</p>`,
				html.EscapeString(addr.AddressLine1), html.EscapeString(addr.City))
			break
		}
	}
	return summary
}

// Admin serves the admin surface; the role guard runs before this handler.
func (h *PageHandler) Admin(c *fiber.Ctx) error {
	user, _ := middleware.GetCurrentUser(c)
	return renderShell(c, "Admin", "admin",
		fmt.Sprintf(`<p>Signed in as %s</p>`, html.EscapeString(user.DisplayName())))
}

// SuperAdmin serves the super-admin surface; the role guard runs before this
// handler.
func (h *PageHandler) SuperAdmin(c *fiber.Ctx) error {
	user, _ := middleware.GetCurrentUser(c)
	return renderShell(c, "Super Admin", "super-admin",
		fmt.Sprintf(`<p>Signed in as %s</p>`, html.EscapeString(user.DisplayName())))
}
