package services

import (
	"time"

	"ksabeheer/internal/models"
	"ksabeheer/internal/repositories"

	"github.com/google/uuid"
)

// EventService handles business logic for the chapter agenda.
type EventService struct {
	repo repositories.EventRepository
}

// NewEventService creates a new EventService.
func NewEventService(repo repositories.EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

// GetAllEvents retrieves all agenda events ordered by date.
func (s *EventService) GetAllEvents() ([]models.Event, error) {
	return s.repo.GetAll()
}

// GetEventByID retrieves a single event by its ID.
func (s *EventService) GetEventByID(id string) (*models.Event, error) {
	return s.repo.GetByID(id)
}

// CreateEvent adds a new event to the agenda.
func (s *EventService) CreateEvent(event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	return s.repo.Create(event)
}

// UpdateEvent updates an existing event.
func (s *EventService) UpdateEvent(event *models.Event) error {
	event.UpdatedAt = time.Now()
	return s.repo.Update(event)
}

// DeleteEvent removes an event from the agenda.
func (s *EventService) DeleteEvent(id string) error {
	return s.repo.Delete(id)
}
