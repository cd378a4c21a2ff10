// Package router wires the Fiber application: middleware, handlers and routes.
package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/healthlens/healthlens/internal/chat"
	"github.com/healthlens/healthlens/internal/config"
	"github.com/healthlens/healthlens/internal/handlers"
	"github.com/healthlens/healthlens/internal/loader"
	"github.com/healthlens/healthlens/internal/logging"
	"github.com/healthlens/healthlens/internal/middleware"
	"github.com/healthlens/healthlens/internal/services"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, source services.Source, completer services.Completer, cfg config.Config) *handlers.Handler {
	// Create services
	dashboardService := services.NewDashboardService(logger, source, cfg.Analytics)
	chatService := services.NewChatService(logger, source, completer)

	// Create handler instance
	h := handlers.New(logger, dashboardService, chatService)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger, logging.DefaultMiddlewareConfig()))

	// Health check
	app.Get("/health", h.Health)

	api := app.Group("/api")

	// Raw records
	api.Get("/data/:type", h.Data)

	// Analytics
	api.Get("/analytics", h.Analytics)
	api.Get("/analytics/:type", h.AnalyticsType)

	// Long-term view and dashboard header
	api.Get("/trends", h.Trends)
	api.Get("/overview", h.Overview)

	// Assistant
	api.Post("/chat", h.Chat)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration. Records are read from
// cfg.Data.Dir and chat completions go to cfg.Chat.
func New(logger *logging.Logger, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "HealthLens",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, loader.New(cfg.Data.Dir), chat.NewClient(cfg.Chat, logger), cfg)

	return app
}
