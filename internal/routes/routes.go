package routes

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/laundromate/internal/config"
	"github.com/example/laundromate/internal/handlers"
	"github.com/example/laundromate/internal/metrics"
	"github.com/example/laundromate/internal/middleware"
	"github.com/example/laundromate/internal/models"
	"github.com/example/laundromate/internal/services"
)

// errorHandler renders handler errors as JSON so API consumers never see a
// plain-text body. fiber.Error codes pass through; anything else is a 500.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	return c.Status(code).JSON(fiber.Map{"detail": message})
}

// NewApp builds the gateway application: the fiber instance with the JSON
// error handler, base middleware, and all routes.
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "LaundroMate Gateway",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	Register(app, cfg)
	return app
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, cfg *config.Config) {
	backend := services.NewBackendClient(cfg)

	sessionHandler := handlers.NewSessionHandler(backend, cfg)
	proxyHandler := handlers.NewProxyHandler(backend, cfg)
	pageHandler := handlers.NewPageHandler(backend, cfg)

	app.Use(middleware.SessionMiddleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", metrics.Middleware())

	// Session routes: credential-bearing, so rate limited.
	session := api.Group("/session", limiter.New(limiter.Config{
		Max:        cfg.SessionRateMax,
		Expiration: cfg.SessionRateWindow,
	}))
	session.Post("/login", sessionHandler.Login)
	session.Post("/register", sessionHandler.Register)
	session.Post("/otp/request", sessionHandler.RequestOTP)
	session.Post("/otp/verify", sessionHandler.VerifyOTP)
	session.Post("/logout", sessionHandler.Logout)

	api.Get("/me", proxyHandler.Me)

	orders := api.Group("/orders")
	orders.Get("/", proxyHandler.Forward)
	orders.Post("/", proxyHandler.CreateOrder)
	orders.Get("/:orderId/detail", proxyHandler.OrderDetail)
	orders.Put("/:orderId/status", proxyHandler.UpdateOrderStatus)

	api.Get("/customers/me", proxyHandler.Forward)
	api.Post("/customers", proxyHandler.Forward)
	api.Get("/addresses", proxyHandler.Forward)
	api.Post("/addresses", proxyHandler.Forward)
	api.Get("/services", proxyHandler.Forward)

	// Page surfaces. The guard enforces the role both here and on the landing
	// redirect, so a non-privileged user can never sit on a privileged page.
	app.Get("/", pageHandler.Landing)
	app.Get("/auth/login", pageHandler.LoginPage)
	app.Get("/auth/register", pageHandler.RegisterPage)
	app.Get("/portal",
		middleware.RequireRole(backend, models.RoleCustomer, "/portal"),
		pageHandler.Portal)
	app.Get("/admin",
		middleware.RequireRole(backend, models.RoleAdmin, "/portal"),
		pageHandler.Admin)
	app.Get("/super-admin",
		middleware.RequireRole(backend, models.RoleSuperAdmin, "/admin"),
		pageHandler.SuperAdmin)
}
