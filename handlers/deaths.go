// handlers/deaths.go
package handlers

import (
	"bingo-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupDeathRoutes(app *fiber.App, deathService *services.DeathService, dropAuth fiber.Handler) {
	// 🔐 Ingest route — same key as the drop routes
	app.Post("/death", dropAuth, deathService.RecordDeath)

	// 🔓 Public reads
	app.Get("/deaths", deathService.GetDeaths)
	app.Get("/deaths/by-npc", deathService.GetDeathsByNPC)
	app.Get("/deaths/by-player-npc", deathService.GetDeathsByPlayerNPC)
}
