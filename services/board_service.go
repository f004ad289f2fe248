package services

import (
	"log"
	"time"

	"bingo-tracker/bingo"
	"bingo-tracker/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BoardService owns loading, mutating and persisting event boards. Every
// mutation replaces the whole jsonb document inside a row-locking
// transaction, so concurrent drops for the same event serialize.
type BoardService struct {
	DB            *gorm.DB
	Events        *EventService
	AdminPassword string
}

func NewBoardService(db *gorm.DB, events *EventService, adminPassword string) *BoardService {
	return &BoardService{DB: db, Events: events, AdminPassword: adminPassword}
}

// loadBoardTx fetches (or first-creates) the board row for an event. With
// lock set, the row is locked FOR UPDATE for the rest of the transaction.
func (s *BoardService) loadBoardTx(tx *gorm.DB, eventID string, lock bool) (*models.BoardRecord, error) {
	q := tx
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rec models.BoardRecord
	err := q.Where("event_id = ?", eventID).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		rec = models.BoardRecord{
			ID:      uuid.NewString(),
			EventID: eventID,
			Data:    *bingo.NewBoard(bingo.DefaultBoardSize),
		}
		if err := tx.Create(&rec).Error; err != nil {
			return nil, err
		}
		return &rec, nil
	}
	if err != nil {
		return nil, err
	}

	rec.Data.Normalize()
	return &rec, nil
}

// LoadBoard returns the current board for an event.
func (s *BoardService) LoadBoard(eventID string) (*bingo.Board, error) {
	rec, err := s.loadBoardTx(s.DB, eventID, false)
	if err != nil {
		return nil, err
	}
	return &rec.Data, nil
}

// ApplyItemEvent runs the matcher against the event's board and persists the
// result when anything changed.
func (s *BoardService) ApplyItemEvent(eventID string, ev bingo.ItemEvent) ([]bingo.TileCompletion, bool, error) {
	var completions []bingo.TileCompletion
	var changed bool

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := s.loadBoardTx(tx, eventID, true)
		if err != nil {
			return err
		}
		completions, changed = bingo.ApplyItemEvent(&rec.Data, ev)
		if !changed {
			return nil
		}
		return tx.Save(rec).Error
	})
	return completions, changed, err
}

func (s *BoardService) checkAdminPassword(password string) bool {
	return s.AdminPassword != "" && password == s.AdminPassword
}

// GetBingo answers the current board state.
func (s *BoardService) GetBingo(c *fiber.Ctx) error {
	event, err := s.Events.ResolveFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve event"})
	}
	board, err := s.LoadBoard(event.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load board"})
	}
	return c.JSON(board)
}

// Login authenticates the admin password.
func (s *BoardService) Login(c *fiber.Ctx) error {
	var payload struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if !s.checkAdminPassword(payload.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Incorrect password"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Login successful"})
}

// UpdateBoard replaces the whole board document (admin, used by the board
// editor to sync).
func (s *BoardService) UpdateBoard(c *fiber.Ctx) error {
	var payload struct {
		Password string      `json:"password"`
		Board    bingo.Board `json:"board"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if !s.checkAdminPassword(payload.Password) {
		log.Printf("🚫 [ADMIN] Unauthorized board update attempt")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	event, err := s.Events.ResolveFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve event"})
	}

	payload.Board.Normalize()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := s.loadBoardTx(tx, event.ID, true)
		if err != nil {
			return err
		}
		rec.Data = payload.Board
		return tx.Save(rec).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save board"})
	}

	log.Printf("✅ [ADMIN] Board replaced for event %s", event.Slug)
	return c.JSON(fiber.Map{"success": true})
}

// ManualOverride adds or removes a player on a tile (admin). This is the only
// path that removes completedBy membership.
func (s *BoardService) ManualOverride(c *fiber.Ctx) error {
	var payload struct {
		Password   string `json:"password"`
		TileIndex  *int   `json:"tileIndex"`
		PlayerName string `json:"playerName"`
		Action     string `json:"action"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if !s.checkAdminPassword(payload.Password) {
		log.Printf("🚫 [ADMIN] Unauthorized manual override attempt")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	if payload.TileIndex == nil || payload.PlayerName == "" || payload.Action == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}
	if payload.Action != "add" && payload.Action != "remove" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid action"})
	}

	event, err := s.Events.ResolveFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve event"})
	}

	var result fiber.Map
	status := fiber.StatusOK
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		rec, err := s.loadBoardTx(tx, event.ID, true)
		if err != nil {
			return err
		}

		idx := *payload.TileIndex
		if idx < 0 || idx >= len(rec.Data.Tiles) {
			status = fiber.StatusBadRequest
			result = fiber.Map{"error": "Invalid tile index"}
			return nil
		}
		tile := &rec.Data.Tiles[idx]

		switch payload.Action {
		case "add":
			for _, p := range tile.CompletedBy {
				if p == payload.PlayerName {
					result = fiber.Map{"success": false, "message": payload.PlayerName + " already completed this tile"}
					return nil
				}
			}
			tile.CompletedBy = append(tile.CompletedBy, payload.PlayerName)
			log.Printf("✅ [ADMIN] Manual override: added %s to tile %d", payload.PlayerName, idx+1)
			result = fiber.Map{"success": true, "message": "Added " + payload.PlayerName}
			return tx.Save(rec).Error
		case "remove":
			for i, p := range tile.CompletedBy {
				if p == payload.PlayerName {
					tile.CompletedBy = append(tile.CompletedBy[:i], tile.CompletedBy[i+1:]...)
					log.Printf("✅ [ADMIN] Manual override: removed %s from tile %d", payload.PlayerName, idx+1)
					result = fiber.Map{"success": true, "message": "Removed " + payload.PlayerName}
					return tx.Save(rec).Error
				}
			}
			result = fiber.Map{"success": false, "message": payload.PlayerName + " has not completed this tile"}
			return nil
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update board"})
	}
	return c.Status(status).JSON(result)
}

// GetScores answers per-player totals including line bonuses.
func (s *BoardService) GetScores(c *fiber.Ctx) error {
	event, err := s.Events.ResolveFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve event"})
	}
	board, err := s.LoadBoard(event.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load board"})
	}
	scores := board.PlayerScores()
	return c.JSON(fiber.Map{"scores": scores, "count": len(scores), "generated_at": time.Now().UTC()})
}
