package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/neighborlyhelp/backend/internal/config"
	"github.com/neighborlyhelp/backend/internal/handlers"
	"github.com/neighborlyhelp/backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	requestHandler *handlers.RequestHandler,
	viewHandler *handlers.ViewHandler,
	paymentHandler *handlers.PaymentHandler,
	webhookHandler *handlers.WebhookHandler,
	i18nHandler *handlers.I18nHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Locale / translation (public; translation degrades, never errors out)
	api.Get("/languages", i18nHandler.Languages)
	api.Post("/translate", i18nHandler.Translate)

	// Auth — stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/google", authHandler.GoogleSignIn)
	auth.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Profile (protected)
	api.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)
	api.Patch("/me", middleware.JWTProtected(cfg), authHandler.UpdateMe)

	// Request feed is public; creation and "mine" require a session
	api.Get("/requests", requestHandler.List)
	api.Get("/requests/mine", middleware.JWTProtected(cfg), requestHandler.Mine)
	api.Get("/requests/:id", requestHandler.Get)
	api.Post("/requests", middleware.JWTProtected(cfg), requestHandler.Create)

	// Views: gate decides, so the token is optional here
	api.Get("/views/:name", middleware.JWTOptional(cfg), viewHandler.Resolve)

	// Map is readable without a session
	api.Get("/map/markers", viewHandler.Markers)

	// Payments (protected)
	payments := api.Group("/payments", middleware.JWTProtected(cfg))
	payments.Post("/intent", paymentHandler.CreateIntent)
	payments.Post("/process", paymentHandler.Process)
	payments.Get("/", paymentHandler.List)

	api.Post("/payment-methods", middleware.JWTProtected(cfg), paymentHandler.AddPaymentMethod)
	api.Get("/payment-methods", middleware.JWTProtected(cfg), paymentHandler.ListPaymentMethods)

	// Processor webhook — shared-secret auth, no JWT
	api.Post("/webhooks/payments", webhookHandler.HandlePayment)
}
