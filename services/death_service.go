package services

import (
	"log"
	"strings"
	"time"

	"bingo-tracker/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeathService records player deaths and answers the death leaderboards.
type DeathService struct {
	DB     *gorm.DB
	Events *EventService
}

func NewDeathService(db *gorm.DB, events *EventService) *DeathService {
	return &DeathService{DB: db, Events: events}
}

func (s *DeathService) record(eventID, player string, cause *string, ts time.Time) error {
	rec := models.DeathRecord{
		ID:        uuid.NewString(),
		EventID:   eventID,
		Player:    player,
		Cause:     cause,
		Timestamp: ts,
	}
	return s.DB.Create(&rec).Error
}

// RecordDeath receives one pre-extracted death.
func (s *DeathService) RecordDeath(c *fiber.Ctx) error {
	var req struct {
		Player    string  `json:"player"`
		NPC       *string `json:"npc"`
		Timestamp string  `json:"timestamp"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Player == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing player name"})
	}

	event, err := s.Events.ResolveFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve event"})
	}

	ts := time.Now().UTC()
	if req.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339, req.Timestamp); err == nil {
			ts = parsed.UTC()
		}
	}

	if err := s.record(event.ID, req.Player, req.NPC, ts); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save death"})
	}

	npcText := ""
	if req.NPC != nil {
		npcText = " to " + *req.NPC
	}
	log.Printf("💀 Death recorded: %s%s", req.Player, npcText)
	return c.JSON(fiber.Map{"success": true, "message": req.Player + " death recorded"})
}

// GetDeaths answers per-player death counts with the most recent death and
// its cause.
func (s *DeathService) GetDeaths(c *fiber.Ctx) error {
	event, err := s.Events.ResolveFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve event"})
	}

	var rows []struct {
		Player    string    `json:"player"`
		Deaths    int       `json:"deaths"`
		LastDeath time.Time `json:"last_death"`
		LastNPC   *string   `json:"last_npc"`
	}
	err = s.DB.Raw(`
		SELECT player,
		       COUNT(*) AS deaths,
		       MAX(timestamp) AS last_death,
		       (ARRAY_AGG(cause ORDER BY timestamp DESC))[1] AS last_npc
		FROM death_records
		WHERE event_id = ?
		GROUP BY player
		ORDER BY deaths DESC`, event.ID).Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get deaths"})
	}

	total := 0
	for _, r := range rows {
		total += r.Deaths
	}
	return c.JSON(fiber.Map{"total_deaths": total, "player_stats": rows})
}

// GetDeathsByNPC answers the 50 deadliest causes of death.
func (s *DeathService) GetDeathsByNPC(c *fiber.Ctx) error {
	event, err := s.Events.ResolveFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve event"})
	}

	var rows []struct {
		NPC           string    `json:"npc"`
		Deaths        int       `json:"deaths"`
		UniquePlayers int       `json:"unique_players"`
		PlayerList    string    `json:"-"`
		LastVictim    string    `json:"last_victim"`
		LastDeathTime time.Time `json:"last_death_time"`
	}
	err = s.DB.Raw(`
		SELECT cause AS npc,
		       COUNT(*) AS deaths,
		       COUNT(DISTINCT player) AS unique_players,
		       STRING_AGG(DISTINCT player, ',') AS player_list,
		       (ARRAY_AGG(player ORDER BY timestamp DESC))[1] AS last_victim,
		       MAX(timestamp) AS last_death_time
		FROM death_records
		WHERE event_id = ? AND cause IS NOT NULL
		GROUP BY cause
		ORDER BY deaths DESC
		LIMIT 50`, event.ID).Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get NPC deaths"})
	}

	type npcStat struct {
		NPC           string    `json:"npc"`
		Deaths        int       `json:"deaths"`
		UniquePlayers int       `json:"unique_players"`
		Players       []string  `json:"players"`
		LastVictim    string    `json:"last_victim"`
		LastDeathTime time.Time `json:"last_death_time"`
	}
	stats := make([]npcStat, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, npcStat{
			NPC:           r.NPC,
			Deaths:        r.Deaths,
			UniquePlayers: r.UniquePlayers,
			Players:       strings.Split(r.PlayerList, ","),
			LastVictim:    r.LastVictim,
			LastDeathTime: r.LastDeathTime,
		})
	}
	return c.JSON(fiber.Map{"npc_stats": stats, "count": len(stats)})
}

// GetDeathsByPlayerNPC answers how many times each player died to each cause.
func (s *DeathService) GetDeathsByPlayerNPC(c *fiber.Ctx) error {
	event, err := s.Events.ResolveFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve event"})
	}

	var rows []struct {
		Player string
		Cause  string
		Deaths int
	}
	err = s.DB.Raw(`
		SELECT player, cause, COUNT(*) AS deaths
		FROM death_records
		WHERE event_id = ? AND cause IS NOT NULL
		GROUP BY player, cause
		ORDER BY deaths DESC`, event.ID).Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get player-NPC deaths"})
	}

	byPlayer := map[string]map[string]int{}
	for _, r := range rows {
		if byPlayer[r.Player] == nil {
			byPlayer[r.Player] = map[string]int{}
		}
		byPlayer[r.Player][r.Cause] = r.Deaths
	}
	return c.JSON(fiber.Map{"player_npc_deaths": byPlayer})
}
