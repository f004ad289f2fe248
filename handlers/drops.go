// handlers/drops.go
package handlers

import (
	"bingo-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupDropRoutes(app *fiber.App, dropService *services.DropService, dropAuth fiber.Handler) {
	// 🔐 Ingest routes — require the drop API key
	app.Post("/webhook", dropAuth, dropService.HandleWebhook)
	app.Post("/drop", dropAuth, dropService.RecordDrop)
	app.Post("/history-only", dropAuth, dropService.RecordHistoryOnly)

	// 🔓 Public read
	app.Get("/history", dropService.GetHistory)
}
