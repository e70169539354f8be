package repositories

import (
	"fmt"
	"ksabeheer/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMEventRepository is a GORM implementation of EventRepository.
type GORMEventRepository struct {
	db *gorm.DB
}

// NewGORMEventRepository creates a new instance of GORMEventRepository.
func NewGORMEventRepository(db *gorm.DB) *GORMEventRepository {
	return &GORMEventRepository{
		db: db,
	}
}

// GetAll retrieves all agenda events ordered by date.
func (r *GORMEventRepository) GetAll() ([]models.Event, error) {
	var events []models.Event
	if err := r.db.Order("date").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to get all events: %w", err)
	}
	return events, nil
}

// GetByID retrieves a single event by its ID.
func (r *GORMEventRepository) GetByID(id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.First(&event, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("event with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get event by ID %s: %w", id, err)
	}
	return &event, nil
}

// Create creates a new event.
func (r *GORMEventRepository) Create(event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// Update updates an existing event.
func (r *GORMEventRepository) Update(event *models.Event) error {
	res := r.db.Save(event)
	if res.Error != nil {
		return fmt.Errorf("failed to update event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("event with ID %s not found for update", event.ID)
	}
	return nil
}

// Delete deletes an event by its ID.
func (r *GORMEventRepository) Delete(id string) error {
	res := r.db.Delete(&models.Event{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("event with ID %s not found for deletion", id)
	}
	return nil
}
