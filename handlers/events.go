// handlers/events.go
package handlers

import (
	"bingo-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupEventRoutes(app *fiber.App, eventService *services.EventService) {
	app.Get("/events", eventService.ListEvents)
	app.Post("/events", eventService.CreateEvent)
}
