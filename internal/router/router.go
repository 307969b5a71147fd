package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/9mit/Youtube-Intelligence/internal/handler"
	"github.com/9mit/Youtube-Intelligence/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Analyze *handler.AnalyzeHandler
	Health  *handler.HealthHandler
	Reports *handler.ReportsHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))

	// Health and metrics (before API group, no rate limiting)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	analysisLimit := middleware.NewAnalysisRateLimiter().Handler()
	battleLimit := middleware.NewBattleRateLimiter().Handler()
	statsLimit := middleware.NewStatsRateLimiter().Handler()
	exportLimit := middleware.NewExportRateLimiter().Handler()

	// Analysis routes
	api.Post("/analyze-channel", h.Analyze.Channel, analysisLimit)
	api.Post("/run-battle", h.Analyze.Battle, battleLimit)
	api.Post("/analyze-truth", h.Analyze.Truth, analysisLimit)

	// Stats and archive routes
	api.Get("/stats", h.Reports.GetStats, statsLimit)
	api.Get("/reports/recent", h.Reports.Recent, statsLimit)
	api.Get("/reports/export", h.Reports.Export, exportLimit)

	// Anything else is a 404 with the same error shape as the rest of
	// the API.
	app.Use(func(c fiber.Ctx) error {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Endpoint not found")
	})
}
