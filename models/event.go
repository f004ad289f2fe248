// models/event.go
package models

import "time"

// Event is one bingo event (tenant). Boards, drops and deaths all hang off
// an event; routes address it by slug.
type Event struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultEventName is the event used when a request names none.
const DefaultEventName = "Default Event"
