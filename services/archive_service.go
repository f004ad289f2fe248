package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"bingo-tracker/models"
	"bingo-tracker/utils"

	"gorm.io/gorm"
)

// ArchiveService snapshots each event's board and recent history to R2 as
// an off-site backup.
type ArchiveService struct {
	DB *gorm.DB
}

func NewArchiveService(db *gorm.DB) *ArchiveService {
	return &ArchiveService{DB: db}
}

const archiveHistoryLimit = 500

func (s *ArchiveService) Run(ctx context.Context) error {
	if !utils.R2Enabled() {
		return nil
	}

	var events []models.Event
	if err := s.DB.Find(&events).Error; err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	now := time.Now().UTC()
	for _, event := range events {
		var board models.BoardRecord
		err := s.DB.Where("event_id = ?", event.ID).First(&board).Error
		if err == gorm.ErrRecordNotFound {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load board for %s: %w", event.Slug, err)
		}

		var drops []models.DropRecord
		if err := s.DB.Where("event_id = ?", event.ID).
			Order("timestamp DESC").Limit(archiveHistoryLimit).Find(&drops).Error; err != nil {
			return fmt.Errorf("failed to load history for %s: %w", event.Slug, err)
		}

		snapshot := map[string]any{
			"event":       event,
			"board":       board.Data,
			"history":     drops,
			"archived_at": now,
		}
		key := fmt.Sprintf("snapshots/%s/%s.json", event.Slug, now.Format("2006-01-02"))

		url, err := utils.UploadJSONToR2(ctx, key, snapshot)
		if err != nil {
			return fmt.Errorf("failed to archive %s: %w", event.Slug, err)
		}
		log.Printf("[ARCHIVE] ✅ %s → %s", event.Slug, url)
	}

	return nil
}
