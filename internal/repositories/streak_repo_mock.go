package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"ksabeheer/internal/models"

	"github.com/google/uuid"
)

// MockStreakRepository is an in-memory implementation of StreakRepository.
type MockStreakRepository struct {
	streaks map[string]models.Streak
	mu      sync.RWMutex
}

// NewMockStreakRepository creates a new instance of MockStreakRepository.
func NewMockStreakRepository() *MockStreakRepository {
	return &MockStreakRepository{
		streaks: make(map[string]models.Streak),
	}
}

// GetAll returns the full streak log, newest first.
func (r *MockStreakRepository) GetAll() ([]models.Streak, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	streakList := make([]models.Streak, 0, len(r.streaks))
	for _, s := range r.streaks {
		streakList = append(streakList, s)
	}
	sort.Slice(streakList, func(i, j int) bool {
		return streakList[i].Timestamp.After(streakList[j].Timestamp)
	})
	return streakList, nil
}

// GetByID returns a streak by its ID.
func (r *MockStreakRepository) GetByID(id string) (*models.Streak, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	streak, ok := r.streaks[id]
	if !ok {
		return nil, fmt.Errorf("streak with ID %s not found", id)
	}
	return &streak, nil
}

// GetBetween returns the streaks with from <= timestamp < to.
func (r *MockStreakRepository) GetBetween(from, to time.Time) ([]models.Streak, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var streakList []models.Streak
	for _, s := range r.streaks {
		if !s.Timestamp.Before(from) && s.Timestamp.Before(to) {
			streakList = append(streakList, s)
		}
	}
	sort.Slice(streakList, func(i, j int) bool {
		return streakList[i].Timestamp.Before(streakList[j].Timestamp)
	})
	return streakList, nil
}

// Create appends a new streak to the log.
func (r *MockStreakRepository) Create(streak *models.Streak) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if streak.ID == "" {
		streak.ID = uuid.New().String()
	}
	r.streaks[streak.ID] = *streak
	return nil
}

// Delete removes a streak from the log.
func (r *MockStreakRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.streaks[id]; !ok {
		return fmt.Errorf("streak with ID %s not found for deletion", id)
	}
	delete(r.streaks, id)
	return nil
}
