package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"github.com/neighborlyhelp/backend/internal/catalog"
	"github.com/neighborlyhelp/backend/internal/config"
	"github.com/neighborlyhelp/backend/internal/database"
	"github.com/neighborlyhelp/backend/internal/geo"
	"github.com/neighborlyhelp/backend/internal/handlers"
	"github.com/neighborlyhelp/backend/internal/i18n"
	"github.com/neighborlyhelp/backend/internal/logging"
	"github.com/neighborlyhelp/backend/internal/middleware"
	"github.com/neighborlyhelp/backend/internal/routes"
	"github.com/neighborlyhelp/backend/internal/services"
)

func main() {
	_ = godotenv.Load()

	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Language registry
	registry, err := i18n.LoadFromFile(cfg.LanguagesConfigPath)
	if err != nil {
		slog.Warn("language config not loaded, using built-in set", "path", cfg.LanguagesConfigPath, "error", err)
		registry = i18n.NewRegistry(i18n.DefaultLanguages)
	}
	slog.Info("language registry loaded", "languages", len(registry.All()))
	translator := i18n.NewTranslator(registry)

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewFanout(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetention, cleanupDone)

	// Request catalog with demo content
	cat := catalog.New()
	catalog.Seed(cat)

	// Geocoder: real when a Maps key is configured, no-op otherwise
	var geocoder geo.Geocoder = geo.NoopGeocoder{}
	if cfg.MapsAPIKey != "" {
		g, err := geo.NewGoogleGeocoder(cfg.MapsAPIKey)
		if err != nil {
			slog.Error("geocoder init failed", "error", err)
			os.Exit(1)
		}
		geocoder = g
	}

	// Payment processor: HTTP when an API key is configured, mock otherwise
	var processor services.Processor = services.MockProcessor{}
	if cfg.PaymentAPIKey != "" {
		processor = services.NewHTTPProcessor(cfg.PaymentAPIURL, cfg.PaymentAPIKey, cfg.PaymentTimeout)
	} else {
		slog.Info("no payment API key configured, using mock processor")
	}

	// Services
	identityService := services.NewIdentityService(database.DB, cfg)
	paymentService := services.NewPaymentService(database.DB, processor, cfg.DefaultCurrency)

	// Handlers
	authHandler := handlers.NewAuthHandler(identityService)
	requestHandler := handlers.NewRequestHandler(cat, identityService, geocoder)
	viewHandler := handlers.NewViewHandler(cat, identityService, paymentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	webhookHandler := handlers.NewWebhookHandler(paymentService, cfg.PaymentWebhookSecret)
	i18nHandler := handlers.NewI18nHandler(registry, translator)
	healthHandler := handlers.NewHealthHandler(cat)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, authHandler, requestHandler, viewHandler, paymentHandler, webhookHandler, i18nHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
