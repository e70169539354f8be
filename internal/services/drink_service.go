package services

import (
	"log"

	"ksabeheer/internal/models"
	"ksabeheer/internal/repositories"
)

// DrinkService handles business logic for the drink catalog and its stock.
type DrinkService struct {
	repo repositories.DrinkRepository
}

// NewDrinkService creates a new DrinkService.
func NewDrinkService(repo repositories.DrinkRepository) *DrinkService {
	return &DrinkService{
		repo: repo,
	}
}

// Catalog returns the drink catalog ordered by name. When the catalog cannot
// be loaded or comes back empty, the hardcoded fallback list is substituted
// instead of surfacing an error; the bar keeps working without a backend.
func (s *DrinkService) Catalog() []models.Drink {
	drinks, err := s.repo.GetAll()
	if err != nil {
		log.Printf("Warning: failed to load drink catalog, using fallback: %v", err)
		return models.FallbackCatalog()
	}
	if len(drinks) == 0 {
		return models.FallbackCatalog()
	}
	return drinks
}

// GetDrinkByID retrieves a single drink by its ID.
func (s *DrinkService) GetDrinkByID(id string) (*models.Drink, error) {
	return s.repo.GetByID(id)
}

// CreateDrink adds a new drink to the catalog.
func (s *DrinkService) CreateDrink(drink *models.Drink) error {
	return s.repo.Create(drink)
}

// UpdateDrink updates an existing drink.
func (s *DrinkService) UpdateDrink(drink *models.Drink) error {
	return s.repo.Update(drink)
}

// DeleteDrink removes a drink from the catalog. Streaks already logged for
// it keep their copied name and price.
func (s *DrinkService) DeleteDrink(id string) error {
	return s.repo.Delete(id)
}
