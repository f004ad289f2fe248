// models/drop.go
package models

import "time"

// DropRecord is one recorded item drop: the audit log and the lookup source
// for duplicate detection.
type DropRecord struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	EventID      string    `json:"event_id" gorm:"index;not null"`
	Player       string    `json:"player" gorm:"index;not null"`
	Item         string    `json:"item" gorm:"not null"`
	Quantity     int       `json:"quantity" gorm:"default:1"`
	RawValue     string    `json:"value"`
	NumericValue float64   `json:"value_numeric"`
	DropType     string    `json:"drop_type" gorm:"default:'loot'"`
	Source       string    `json:"source,omitempty"`
	KillCount    *int      `json:"kill_count,omitempty"`
	Rarity       string    `json:"rarity,omitempty"`
	Timestamp    time.Time `json:"timestamp" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
}
