package services

import (
	"context"
	"log"

	"bingo-tracker/models"
	"bingo-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RankScraper triggers a hiscores scrape on demand.
type RankScraper interface {
	Run(ctx context.Context) error
}

// RankService caches group-ironman leaderboard snapshots and computes deltas
// against the previous one.
type RankService struct {
	DB            *gorm.DB
	Group         string
	AdminPassword string
	Scraper       RankScraper
}

func NewRankService(db *gorm.DB, group, adminPassword string) *RankService {
	return &RankService{DB: db, Group: utils.TitleCase(group), AdminPassword: adminPassword}
}

// saveSnapshot fills in the change columns from the previous snapshot and
// inserts the new one.
func (s *RankService) saveSnapshot(snap *models.RankSnapshot) error {
	var prev models.RankSnapshot
	err := s.DB.Where("group_name = ?", snap.GroupName).Order("created_at DESC").First(&prev).Error
	if err == nil {
		snap.RankChange = snap.Rank - prev.Rank
		snap.XPChange = snap.TotalXP - prev.TotalXP
		if snap.PrestigeRank != nil && prev.PrestigeRank != nil {
			snap.PrestigeRankChange = *snap.PrestigeRank - *prev.PrestigeRank
		}
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	snap.ID = uuid.NewString()
	return s.DB.Create(snap).Error
}

// RecordRank is the sink the hiscores scraper reports into.
func (s *RankService) RecordRank(rank int, prestigeRank *int, totalXP int64) error {
	snap := &models.RankSnapshot{
		GroupName:    s.Group,
		Rank:         rank,
		PrestigeRank: prestigeRank,
		TotalXP:      totalXP,
	}
	if err := s.saveSnapshot(snap); err != nil {
		return err
	}
	log.Printf("📊 [RANK] %s: overall #%d, xp %d (Δrank %+d, Δxp %+d)",
		s.Group, snap.Rank, snap.TotalXP, snap.RankChange, snap.XPChange)
	return nil
}

// PostSnapshot receives an externally-computed snapshot (e.g. a CI-run
// scraper posting its result in).
func (s *RankService) PostSnapshot(c *fiber.Ctx) error {
	var req struct {
		Rank         int   `json:"rank"`
		PrestigeRank *int  `json:"prestigeRank"`
		TotalXP      int64 `json:"totalXp"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Rank < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "rank is required"})
	}

	snap := &models.RankSnapshot{
		GroupName:    s.Group,
		Rank:         req.Rank,
		PrestigeRank: req.PrestigeRank,
		TotalXP:      req.TotalXP,
	}
	if err := s.saveSnapshot(snap); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save snapshot"})
	}
	return c.JSON(fiber.Map{"success": true, "snapshot": snap})
}

// GetRankHistory answers the latest snapshot plus recent history.
func (s *RankService) GetRankHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 30)
	if limit < 1 || limit > 365 {
		limit = 30
	}

	var snapshots []models.RankSnapshot
	err := s.DB.Where("group_name = ?", s.Group).
		Order("created_at DESC").Limit(limit).Find(&snapshots).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get rank history"})
	}

	resp := fiber.Map{"group": s.Group, "history": snapshots, "count": len(snapshots)}
	if len(snapshots) > 0 {
		resp["latest"] = snapshots[0]
	}
	return c.JSON(resp)
}

// RefreshRank kicks off a scrape immediately (admin).
func (s *RankService) RefreshRank(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if s.AdminPassword == "" || req.Password != s.AdminPassword {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	if s.Scraper == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "scraper not configured"})
	}

	go func() {
		if err := s.Scraper.Run(context.Background()); err != nil {
			log.Printf("❌ [RANK] manual refresh failed: %v", err)
		}
	}()
	return c.JSON(fiber.Map{"success": true, "message": "Rank refresh started"})
}
