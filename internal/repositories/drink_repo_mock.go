package repositories

import (
	"fmt"
	"sort"
	"sync"

	"ksabeheer/internal/models"

	"github.com/google/uuid"
)

// MockDrinkRepository is an in-memory implementation of DrinkRepository.
type MockDrinkRepository struct {
	drinks map[string]models.Drink
	mu     sync.RWMutex
}

// NewMockDrinkRepository creates a new instance of MockDrinkRepository.
func NewMockDrinkRepository() *MockDrinkRepository {
	return &MockDrinkRepository{
		drinks: make(map[string]models.Drink),
	}
}

// GetAll returns all drinks ordered by name.
func (r *MockDrinkRepository) GetAll() ([]models.Drink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drinkList := make([]models.Drink, 0, len(r.drinks))
	for _, d := range r.drinks {
		drinkList = append(drinkList, d)
	}
	sort.Slice(drinkList, func(i, j int) bool {
		return drinkList[i].Name < drinkList[j].Name
	})
	return drinkList, nil
}

// GetByID returns a drink by its ID.
func (r *MockDrinkRepository) GetByID(id string) (*models.Drink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drink, ok := r.drinks[id]
	if !ok {
		return nil, fmt.Errorf("drink with ID %s not found", id)
	}
	return &drink, nil
}

// Create adds a new drink.
func (r *MockDrinkRepository) Create(drink *models.Drink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if drink.ID == "" {
		drink.ID = uuid.New().String()
	}
	r.drinks[drink.ID] = *drink
	return nil
}

// Update modifies an existing drink.
func (r *MockDrinkRepository) Update(drink *models.Drink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drinks[drink.ID]; !ok {
		return fmt.Errorf("drink with ID %s not found for update", drink.ID)
	}
	r.drinks[drink.ID] = *drink
	return nil
}

// Delete removes a drink by its ID.
func (r *MockDrinkRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drinks[id]; !ok {
		return fmt.Errorf("drink with ID %s not found for deletion", id)
	}
	delete(r.drinks, id)
	return nil
}

// AdjustStock changes a drink's stock level by delta. Like the GORM
// implementation it refuses to take stock below zero.
func (r *MockDrinkRepository) AdjustStock(id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	drink, ok := r.drinks[id]
	if !ok {
		return fmt.Errorf("drink with ID %s not found for stock adjustment", id)
	}
	if drink.Stock+delta < 0 {
		return fmt.Errorf("%w for drink %s", ErrInsufficientStock, id)
	}
	drink.Stock += delta
	r.drinks[id] = drink
	return nil
}
