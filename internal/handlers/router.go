package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/cla-designs/clabot/internal/metrics"
	"github.com/cla-designs/clabot/internal/middleware"
)

// Register mounts the interaction webhook, the admin API and the metrics
// endpoint. Login must stay registered before the guarded admin group.
func (h *Handlers) Register(app *fiber.App) {
	app.Post("/interactions", h.InteractionsHandler)

	app.Post("/api/admin/login", h.LoginHandler)

	adminRoutes := app.Group("/api/admin", middleware.AuthMiddleware)
	adminRoutes.Get("/points/:id", h.GetPointsHandler)
	adminRoutes.Get("/atrisk", h.AtRiskHandler)
	adminRoutes.Get("/stats", h.StatsHandler)
	adminRoutes.Post("/cleanup", h.CleanupHandler)
	adminRoutes.Post("/reset/:id", h.ResetPointsHandler)
	adminRoutes.Post("/classify", h.ClassifyHandler)

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
}
