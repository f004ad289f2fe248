// models/death.go
package models

import "time"

// DeathRecord is one player death. Cause is nil when the notification did
// not say what killed the player.
type DeathRecord struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	EventID   string    `json:"event_id" gorm:"index;not null"`
	Player    string    `json:"player" gorm:"index;not null"`
	Cause     *string   `json:"npc,omitempty"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}
