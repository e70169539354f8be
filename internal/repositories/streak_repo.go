package repositories

import (
	"time"

	"ksabeheer/internal/models"
)

// StreakRepository defines the interface for streak log data access. The log
// is append-only: entries are created and deleted, never updated.
type StreakRepository interface {
	GetAll() ([]models.Streak, error)
	GetByID(id string) (*models.Streak, error)
	// GetBetween returns the streaks with from <= timestamp < to.
	GetBetween(from, to time.Time) ([]models.Streak, error)
	Create(streak *models.Streak) error
	Delete(id string) error
}
