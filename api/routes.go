package api

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, h *Handler) {
	v1 := app.Group("/api/v1")

	v1.Post("/sync/:userId", h.StartSync)
	v1.Get("/sync/:userId/status/:jobId", h.GetSyncStatus)
	v1.Get("/progress/:userId", h.GetProgress)
	v1.Get("/stats/:userId", h.GetStats)
	v1.Get("/stats/:userId/heatmap", h.GetHeatmap)
	v1.Get("/leaderboard", h.GetLeaderboard)
	v1.Get("/health", h.Health)
}
