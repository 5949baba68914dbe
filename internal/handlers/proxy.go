package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/laundromate/internal/config"
	"github.com/example/laundromate/internal/middleware"
	"github.com/example/laundromate/internal/models"
	"github.com/example/laundromate/internal/services"
)

// ProxyHandler forwards API requests to the laundromat backend, attaching the
// caller's bearer token and mirroring the backend's status code verbatim.
type ProxyHandler struct {
	backend *services.BackendClient
	cfg     *config.Config
}

// NewProxyHandler constructs a ProxyHandler.
func NewProxyHandler(backend *services.BackendClient, cfg *config.Config) *ProxyHandler {
	return &ProxyHandler{backend: backend, cfg: cfg}
}

// Me returns the current user record from the backend.
func (h *ProxyHandler) Me(c *fiber.Ctx) error {
	return h.relay(c, services.RequestOpts{
		Method: http.MethodGet,
		Path:   "/auth/me",
	})
}

// OrderDetail returns one order with its items.
func (h *ProxyHandler) OrderDetail(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	return h.relay(c, services.RequestOpts{
		Method: http.MethodGet,
		Path:   "/orders/" + url.PathEscape(orderID) + "/detail",
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus sets an order's status. The backend expects the new value
// as a query parameter; transitions are not validated here, any status may be
// requested and the backend decides legality.
func (h *ProxyHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Status == "" {
		return fiber.NewError(fiber.StatusBadRequest, "status is required")
	}
	if !models.OrderStatus(req.Status).IsValid() {
		log.Printf("[Orders] forwarding unrecognized status %q", req.Status)
	}

	query := url.Values{}
	query.Set("status_value", req.Status)

	orderID := c.Params("orderId")
	return h.relay(c, services.RequestOpts{
		Method: http.MethodPut,
		Path:   "/orders/" + url.PathEscape(orderID) + "/status",
		Query:  query,
	})
}

// CreateOrder forwards an order creation payload, computing any line totals
// the client left at zero.
func (h *ProxyHandler) CreateOrder(c *fiber.Ctx) error {
	var req models.OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "order requires at least one item")
	}
	req.FillItemTotals()

	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	return h.relay(c, services.RequestOpts{
		Method: http.MethodPost,
		Path:   "/orders",
		Body:   body,
	})
}

// Forward is the generic passthrough for resource routes: the /api prefix is
// stripped and everything else (method, query, body) goes to the backend
// unchanged.
func (h *ProxyHandler) Forward(c *fiber.Ctx) error {
	path := strings.TrimPrefix(c.Path(), "/api")
	if path == "" || path == "/" {
		return fiber.NewError(fiber.StatusBadRequest, "missing backend path")
	}

	return h.relay(c, services.RequestOpts{
		Method: c.Method(),
		Path:   path,
		Body:   c.Body(),
	})
}

// relay executes the backend call with the caller's session token and mirrors
// the response. Empty upstream bodies become an empty JSON object so the
// browser layer always has JSON to parse.
func (h *ProxyHandler) relay(c *fiber.Ctx, opts services.RequestOpts) error {
	if sess, ok := middleware.GetSession(c); ok {
		opts.Token = sess.Token
	}
	if opts.RequestID == "" {
		opts.RequestID = c.Get(fiber.HeaderXRequestID)
	}
	if opts.Query == nil {
		opts.Query = requestQuery(c)
	}

	resp, err := h.backend.Do(opts)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "backend unreachable")
	}

	c.Status(resp.Status)
	if len(resp.Body) == 0 {
		return c.JSON(fiber.Map{})
	}

	ct := resp.Header.Get(fiber.HeaderContentType)
	if ct == "" {
		ct = fiber.MIMEApplicationJSON
	}
	c.Set(fiber.HeaderContentType, ct)
	return c.Send(resp.Body)
}

func requestQuery(c *fiber.Ctx) url.Values {
	query := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		query.Add(string(key), string(value))
	})
	return query
}
