package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"ksabeheer/internal/models"
	"ksabeheer/internal/repositories"

	"github.com/google/uuid"
)

// ErrOutOfStock is returned when a streep is attempted on a drink with no
// stock left.
var ErrOutOfStock = errors.New("drink is out of stock")

// StreakService handles the consumption log: quick streeps and their admin
// removal. A streak copies the drink's name and price at streep time, so
// later catalog edits never change what was logged.
type StreakService struct {
	streakRepo repositories.StreakRepository
	drinkRepo  repositories.DrinkRepository
	userRepo   repositories.UserRepository
}

// NewStreakService creates a new StreakService.
func NewStreakService(streakRepo repositories.StreakRepository, drinkRepo repositories.DrinkRepository, userRepo repositories.UserRepository) *StreakService {
	return &StreakService{
		streakRepo: streakRepo,
		drinkRepo:  drinkRepo,
		userRepo:   userRepo,
	}
}

// Streep logs one consumption for the acting user: it appends a streak,
// takes one unit of stock and puts the price on the user's tab.
func (s *StreakService) Streep(actingUserID, drinkID string) (*models.Streak, error) {
	user, err := s.userRepo.GetByID(actingUserID)
	if err != nil {
		return nil, fmt.Errorf("streep user not found: %w", err)
	}

	drink, err := s.drinkRepo.GetByID(drinkID)
	if err != nil {
		return nil, fmt.Errorf("streep drink not found: %w", err)
	}

	// Claim the unit first. The repository decrement is conditional, so of
	// two concurrent streeps on the last unit exactly one gets it.
	if err := s.drinkRepo.AdjustStock(drink.ID, -1); err != nil {
		if errors.Is(err, repositories.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: %s", ErrOutOfStock, drink.Name)
		}
		return nil, fmt.Errorf("failed to take stock for drink %s: %w", drink.ID, err)
	}

	streak := &models.Streak{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		DrinkID:   drink.ID,
		DrinkName: drink.Name,
		Price:     drink.Price,
		Timestamp: time.Now(),
	}
	if err := s.streakRepo.Create(streak); err != nil {
		if restockErr := s.drinkRepo.AdjustStock(drink.ID, 1); restockErr != nil {
			log.Printf("Warning: could not return stock for drink %s: %v", drink.ID, restockErr)
		}
		return nil, fmt.Errorf("failed to create streak: %w", err)
	}
	if err := s.userRepo.AddToBalance(user.ID, drink.Price); err != nil {
		return nil, fmt.Errorf("failed to charge balance: %w", err)
	}

	return streak, nil
}

// RemoveStreak deletes a logged streak (sfeerbeheer only), refunds its price
// from the owner's tab and puts the unit back in stock. Restocking a drink
// that has since been deleted from the catalog is skipped.
func (s *StreakService) RemoveStreak(streakID string) error {
	streak, err := s.streakRepo.GetByID(streakID)
	if err != nil {
		return err
	}

	if err := s.streakRepo.Delete(streakID); err != nil {
		return err
	}

	if err := s.userRepo.AddToBalance(streak.UserID, -streak.Price); err != nil {
		return fmt.Errorf("failed to refund balance: %w", err)
	}
	if err := s.drinkRepo.AdjustStock(streak.DrinkID, 1); err != nil {
		log.Printf("Warning: could not restock drink %s: %v", streak.DrinkID, err)
	}
	return nil
}

// ListWeek returns the streaks logged in the week starting at weekStart.
func (s *StreakService) ListWeek(weekStart time.Time) ([]models.Streak, error) {
	return s.streakRepo.GetBetween(weekStart, weekStart.AddDate(0, 0, 7))
}
