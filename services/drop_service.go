package services

import (
	"log"
	"time"

	"bingo-tracker/bingo"
	"bingo-tracker/dink"
	"bingo-tracker/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DropService runs the ingest pipeline: extraction → dedupe policy → history
// insert → board matcher.
type DropService struct {
	DB     *gorm.DB
	Events *EventService
	Boards *BoardService
	Deaths *DeathService
	Policy bingo.DedupePolicy
	Window time.Duration
}

func NewDropService(db *gorm.DB, events *EventService, boards *BoardService, deaths *DeathService, policy bingo.DedupePolicy, window time.Duration) *DropService {
	if window <= 0 {
		window = bingo.DefaultDedupeWindow
	}
	return &DropService{DB: db, Events: events, Boards: boards, Deaths: deaths, Policy: policy, Window: window}
}

// DropOutcome reports what happened to one extracted item.
type DropOutcome struct {
	Player         string                 `json:"player"`
	Item           string                 `json:"item"`
	Duplicate      bool                   `json:"duplicate"`
	Recorded       bool                   `json:"recorded"`
	CompletedTiles []bingo.TileCompletion `json:"completedTiles"`
}

func parseWarn(format string, args ...any) {
	log.Printf("⚠️  [PARSE] "+format, args...)
}

// HandleWebhook ingests a Dink webhook execution: every embed is classified
// as a drop or a death and run through the full pipeline.
func (s *DropService) HandleWebhook(c *fiber.Ctx) error {
	var payload dink.WebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid webhook payload"})
	}

	event, err := s.Events.ResolveFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve event"})
	}

	receivedAt := time.Now().UTC()
	outcomes := []DropOutcome{}
	deaths := 0

	for _, embed := range payload.Embeds {
		if drop := dink.ExtractDrop(embed, parseWarn); drop != nil {
			log.Printf("📥 [WEBHOOK] %s drop from %s: %d item(s)", drop.DropType, drop.Player, len(drop.Items))
			for _, item := range drop.Items {
				outcome, err := s.processItem(event.ID, itemEventFrom(drop, item, receivedAt))
				if err != nil {
					log.Printf("❌ [WEBHOOK] failed to process %s for %s: %v", item.Name, drop.Player, err)
					continue
				}
				outcomes = append(outcomes, *outcome)
			}
			continue
		}

		if death := dink.ExtractDeath(embed); death != nil {
			var cause *string
			if death.Cause != "" && death.Cause != "Unknown" {
				cause = &death.Cause
			}
			if err := s.Deaths.record(event.ID, death.Player, cause, receivedAt); err != nil {
				log.Printf("❌ [WEBHOOK] failed to record death of %s: %v", death.Player, err)
				continue
			}
			log.Printf("💀 [WEBHOOK] death recorded: %s to %s", death.Player, death.Cause)
			deaths++
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"drops":   outcomes,
		"deaths":  deaths,
	})
}

func itemEventFrom(drop *dink.DropExtraction, item dink.ParsedItem, receivedAt time.Time) bingo.ItemEvent {
	return bingo.ItemEvent{
		Player:       drop.Player,
		Name:         item.Name,
		Quantity:     item.Quantity,
		RawValue:     item.RawValue,
		NumericValue: item.NumericValue,
		DropType:     drop.DropType,
		Source:       drop.Source,
		KillCount:    drop.KillCount,
		Rarity:       drop.Rarity,
		Timestamp:    receivedAt,
	}
}

// processItem applies the dedupe policy, records history, and runs the board
// matcher. The matcher runs even for duplicates: it is idempotent and a
// duplicate can still complete a tile that the first announcement raced past.
func (s *DropService) processItem(eventID string, ev bingo.ItemEvent) (*DropOutcome, error) {
	outcome := &DropOutcome{Player: ev.Player, Item: ev.Name, CompletedTiles: []bingo.TileCompletion{}}

	if s.Policy == bingo.DedupeByWindow {
		dup, err := s.isDuplicate(eventID, ev.Player, ev.Name, ev.Timestamp)
		if err != nil {
			// Advisory check: failure to look up history never blocks the drop.
			log.Printf("⚠️  [DROP] duplicate check failed: %v", err)
		}
		outcome.Duplicate = dup
	}

	if !outcome.Duplicate {
		rec := models.DropRecord{
			ID:           uuid.NewString(),
			EventID:      eventID,
			Player:       ev.Player,
			Item:         ev.Name,
			Quantity:     ev.Quantity,
			RawValue:     ev.RawValue,
			NumericValue: ev.NumericValue,
			DropType:     ev.DropType,
			Source:       ev.Source,
			KillCount:    ev.KillCount,
			Rarity:       ev.Rarity,
			Timestamp:    ev.Timestamp,
		}
		if err := s.DB.Create(&rec).Error; err != nil {
			return nil, err
		}
		outcome.Recorded = true
	} else {
		log.Printf("⚠️  [DROP] duplicate detected for %s / %s — history insert skipped", ev.Player, ev.Name)
	}

	completions, _, err := s.Boards.ApplyItemEvent(eventID, ev)
	if err != nil {
		return nil, err
	}
	outcome.CompletedTiles = completions
	return outcome, nil
}

func (s *DropService) isDuplicate(eventID, player, item string, ts time.Time) (bool, error) {
	var rows []models.DropRecord
	err := s.DB.Where("event_id = ? AND player = ? AND item = ?", eventID, player, item).
		Order("timestamp DESC").Limit(50).Find(&rows).Error
	if err != nil {
		return false, err
	}

	entries := make([]bingo.HistoryEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, bingo.HistoryEntry{Player: r.Player, Item: r.Item, Timestamp: r.Timestamp})
	}
	return bingo.IsDuplicate(entries, player, item, ts, s.Window), nil
}

type dropRequest struct {
	Player    string `json:"player"`
	Item      string `json:"item"`
	DropType  string `json:"drop_type"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

func (r *dropRequest) itemEvent() bingo.ItemEvent {
	ts := time.Now().UTC()
	if r.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339, r.Timestamp); err == nil {
			ts = parsed.UTC()
		}
	}
	dropType := r.DropType
	if dropType == "" {
		dropType = dink.DropTypeLoot
	}
	return bingo.ItemEvent{
		Player:    r.Player,
		Name:      r.Item,
		Quantity:  1,
		RawValue:  dink.ValueUnknown,
		DropType:  dropType,
		Source:    r.Source,
		Timestamp: ts,
	}
}

// RecordDrop receives one pre-extracted drop, records it and checks tiles.
func (s *DropService) RecordDrop(c *fiber.Ctx) error {
	var req dropRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Player == "" || req.Item == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing player or item"})
	}

	event, err := s.Events.ResolveFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve event"})
	}

	outcome, err := s.processItem(event.ID, req.itemEvent())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record drop"})
	}

	if len(outcome.CompletedTiles) > 0 {
		return c.JSON(fiber.Map{
			"success":        true,
			"message":        req.Player + " completed tile(s)!",
			"completedTiles": outcome.CompletedTiles,
			"duplicate":      outcome.Duplicate,
		})
	}
	return c.JSON(fiber.Map{
		"success":   false,
		"message":   "No matching tiles found or already completed",
		"duplicate": outcome.Duplicate,
	})
}

// RecordHistoryOnly saves a drop without tile checking, for historical
// imports. The duplicate window always applies here, whatever the policy:
// imports are replayed freely and must not double-insert.
func (s *DropService) RecordHistoryOnly(c *fiber.Ctx) error {
	var req dropRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Player == "" || req.Item == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing player or item"})
	}

	event, err := s.Events.ResolveFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve event"})
	}

	ev := req.itemEvent()
	dup, err := s.isDuplicate(event.ID, ev.Player, ev.Name, ev.Timestamp)
	if err != nil {
		log.Printf("⚠️  [DROP] duplicate check failed: %v", err)
	}
	if dup {
		return c.JSON(fiber.Map{"success": false, "message": "Duplicate detected - skipped", "duplicate": true})
	}

	rec := models.DropRecord{
		ID:        uuid.NewString(),
		EventID:   event.ID,
		Player:    ev.Player,
		Item:      ev.Name,
		Quantity:  ev.Quantity,
		RawValue:  ev.RawValue,
		DropType:  ev.DropType,
		Source:    ev.Source,
		Timestamp: ev.Timestamp,
	}
	if err := s.DB.Create(&rec).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save drop"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Saved " + ev.Player + " - " + ev.Name + " to history", "duplicate": false})
}

// GetHistory answers the drop log with optional player/date filters.
func (s *DropService) GetHistory(c *fiber.Ctx) error {
	event, err := s.Events.ResolveFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve event"})
	}

	q := s.DB.Where("event_id = ?", event.ID)
	if player := c.Query("player"); player != "" {
		q = q.Where("player = ?", player)
	}
	if start := c.Query("start_date"); start != "" {
		if ts, err := time.Parse(time.RFC3339, start); err == nil {
			q = q.Where("timestamp >= ?", ts)
		}
	}
	if end := c.Query("end_date"); end != "" {
		if ts, err := time.Parse(time.RFC3339, end); err == nil {
			q = q.Where("timestamp <= ?", ts)
		}
	}

	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	var records []models.DropRecord
	if err := q.Order("timestamp DESC").Limit(limit).Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get history"})
	}
	return c.JSON(fiber.Map{"history": records, "count": len(records)})
}
