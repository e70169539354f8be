package repositories

import (
	"errors"

	"ksabeheer/internal/models"
)

// ErrInsufficientStock is returned by AdjustStock when the adjustment would
// drive a drink's stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// DrinkRepository defines the interface for drink catalog data access.
// GetAll returns the catalog ordered by name.
type DrinkRepository interface {
	GetAll() ([]models.Drink, error)
	GetByID(id string) (*models.Drink, error)
	Create(drink *models.Drink) error
	Update(drink *models.Drink) error
	Delete(id string) error
	// AdjustStock changes a drink's stock level by delta (negative on a
	// streep, positive when one is removed). The adjustment is conditional:
	// it fails with ErrInsufficientStock instead of letting stock go
	// negative, so concurrent streeps cannot overdraw the last unit.
	AdjustStock(id string, delta int) error
}
