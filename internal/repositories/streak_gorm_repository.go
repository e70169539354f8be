package repositories

import (
	"fmt"
	"time"

	"ksabeheer/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMStreakRepository is a GORM implementation of StreakRepository.
type GORMStreakRepository struct {
	db *gorm.DB
}

// NewGORMStreakRepository creates a new instance of GORMStreakRepository.
func NewGORMStreakRepository(db *gorm.DB) *GORMStreakRepository {
	return &GORMStreakRepository{
		db: db,
	}
}

// GetAll retrieves the full streak log, newest first.
func (r *GORMStreakRepository) GetAll() ([]models.Streak, error) {
	var streaks []models.Streak
	if err := r.db.Order("timestamp desc").Find(&streaks).Error; err != nil {
		return nil, fmt.Errorf("failed to get all streaks: %w", err)
	}
	return streaks, nil
}

// GetByID retrieves a single streak by its ID.
func (r *GORMStreakRepository) GetByID(id string) (*models.Streak, error) {
	var streak models.Streak
	if err := r.db.First(&streak, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("streak with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get streak by ID %s: %w", id, err)
	}
	return &streak, nil
}

// GetBetween returns the streaks with from <= timestamp < to.
func (r *GORMStreakRepository) GetBetween(from, to time.Time) ([]models.Streak, error) {
	var streaks []models.Streak
	if err := r.db.Where("timestamp >= ? AND timestamp < ?", from, to).
		Order("timestamp").Find(&streaks).Error; err != nil {
		return nil, fmt.Errorf("failed to get streaks between %s and %s: %w", from, to, err)
	}
	return streaks, nil
}

// Create appends a new streak to the log.
func (r *GORMStreakRepository) Create(streak *models.Streak) error {
	if streak.ID == "" {
		streak.ID = uuid.New().String()
	}
	if err := r.db.Create(streak).Error; err != nil {
		return fmt.Errorf("failed to create streak: %w", err)
	}
	return nil
}

// Delete removes a streak from the log.
func (r *GORMStreakRepository) Delete(id string) error {
	res := r.db.Delete(&models.Streak{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete streak: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("streak with ID %s not found for deletion", id)
	}
	return nil
}
