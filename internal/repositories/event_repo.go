package repositories

import "ksabeheer/internal/models"

// EventRepository defines the interface for agenda event data access.
type EventRepository interface {
	GetAll() ([]models.Event, error)
	GetByID(id string) (*models.Event, error)
	Create(event *models.Event) error
	Update(event *models.Event) error
	Delete(id string) error
}
