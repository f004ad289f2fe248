// models/board.go
package models

import (
	"time"

	"bingo-tracker/bingo"
)

// BoardRecord persists one event's board as a single jsonb document. The
// whole document is replaced on every mutation, inside a row-locking
// transaction, so concurrent drops for the same event cannot race on
// read-modify-write.
type BoardRecord struct {
	ID        string      `json:"id" gorm:"primaryKey"`
	EventID   string      `json:"event_id" gorm:"uniqueIndex;not null"`
	Data      bingo.Board `json:"data" gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
