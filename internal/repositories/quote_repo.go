package repositories

import "ksabeheer/internal/models"

// QuoteRepository defines the interface for quote wall data access.
type QuoteRepository interface {
	GetAll() ([]models.Quote, error)
	GetByID(id string) (*models.Quote, error)
	Create(quote *models.Quote) error
	Delete(id string) error
}
