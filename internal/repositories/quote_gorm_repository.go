package repositories

import (
	"fmt"
	"ksabeheer/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMQuoteRepository is a GORM implementation of QuoteRepository.
type GORMQuoteRepository struct {
	db *gorm.DB
}

// NewGORMQuoteRepository creates a new instance of GORMQuoteRepository.
func NewGORMQuoteRepository(db *gorm.DB) *GORMQuoteRepository {
	return &GORMQuoteRepository{
		db: db,
	}
}

// GetAll retrieves all quotes, newest first.
func (r *GORMQuoteRepository) GetAll() ([]models.Quote, error) {
	var quotes []models.Quote
	if err := r.db.Order("created_at desc").Find(&quotes).Error; err != nil {
		return nil, fmt.Errorf("failed to get all quotes: %w", err)
	}
	return quotes, nil
}

// GetByID retrieves a single quote by its ID.
func (r *GORMQuoteRepository) GetByID(id string) (*models.Quote, error) {
	var quote models.Quote
	if err := r.db.First(&quote, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("quote with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get quote by ID %s: %w", id, err)
	}
	return &quote, nil
}

// Create creates a new quote.
func (r *GORMQuoteRepository) Create(quote *models.Quote) error {
	if quote.ID == "" {
		quote.ID = uuid.New().String()
	}
	if err := r.db.Create(quote).Error; err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}
	return nil
}

// Delete deletes a quote by its ID.
func (r *GORMQuoteRepository) Delete(id string) error {
	res := r.db.Delete(&models.Quote{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete quote: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("quote with ID %s not found for deletion", id)
	}
	return nil
}
