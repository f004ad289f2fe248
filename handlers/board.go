// handlers/board.go
package handlers

import (
	"bingo-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBoardRoutes(app *fiber.App, boardService *services.BoardService) {
	// 🔓 Public reads
	app.Get("/bingo", boardService.GetBingo)
	app.Get("/scores", boardService.GetScores)

	// 🔐 Admin actions — password checked in the request body
	app.Post("/login", boardService.Login)
	app.Post("/update", boardService.UpdateBoard)
	app.Post("/manual-override", boardService.ManualOverride)
}
