// handlers/rank.go
package handlers

import (
	"bingo-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRankRoutes(app *fiber.App, rankService *services.RankService, dropAuth fiber.Handler) {
	app.Get("/rank/history", rankService.GetRankHistory)

	// 🔐 Snapshot ingest uses the drop key; refresh is password-checked in body
	app.Post("/rank/snapshot", dropAuth, rankService.PostSnapshot)
	app.Post("/rank/refresh", rankService.RefreshRank)
}
