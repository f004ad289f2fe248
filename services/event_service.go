package services

import (
	"strings"
	"time"

	"bingo-tracker/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// EventService resolves which event (tenant) a request targets. Events are
// addressed by slug; the board/drop/death services treat the resolved event
// ID as opaque.
type EventService struct {
	DB *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{DB: db}
}

// Resolve finds the event for a name or slug, creating it on first use. An
// empty name resolves to the default event.
func (s *EventService) Resolve(name string) (*models.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = models.DefaultEventName
	}
	eventSlug := slug.Make(name)

	var event models.Event
	err := s.DB.Where("slug = ?", eventSlug).First(&event).Error
	if err == gorm.ErrRecordNotFound {
		event = models.Event{
			ID:        uuid.NewString(),
			Name:      name,
			Slug:      eventSlug,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}
		if err := s.DB.Create(&event).Error; err != nil {
			return nil, err
		}
		return &event, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ResolveFromQuery resolves the event named by the ?event= query parameter.
func (s *EventService) ResolveFromQuery(c *fiber.Ctx) (*models.Event, error) {
	return s.Resolve(c.Query("event"))
}

func (s *EventService) ListEvents(c *fiber.Ctx) error {
	var events []models.Event
	if err := s.DB.Order("created_at ASC").Find(&events).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list events"})
	}
	return c.JSON(fiber.Map{"events": events, "count": len(events)})
}

func (s *EventService) CreateEvent(c *fiber.Ctx) error {
	var payload struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&payload); err != nil || strings.TrimSpace(payload.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	event, err := s.Resolve(payload.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create event"})
	}
	return c.JSON(fiber.Map{"success": true, "event": event})
}
