package services

import (
	"time"

	"ksabeheer/internal/models"
	"ksabeheer/internal/repositories"

	"github.com/google/uuid"
)

// QuoteService handles business logic for the quote wall.
type QuoteService struct {
	repo repositories.QuoteRepository
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(repo repositories.QuoteRepository) *QuoteService {
	return &QuoteService{
		repo: repo,
	}
}

// GetAllQuotes retrieves all quotes, newest first.
func (s *QuoteService) GetAllQuotes() ([]models.Quote, error) {
	return s.repo.GetAll()
}

// CreateQuote adds a new quote to the wall.
func (s *QuoteService) CreateQuote(quote *models.Quote) error {
	if quote.ID == "" {
		quote.ID = uuid.New().String()
	}
	quote.CreatedAt = time.Now()
	return s.repo.Create(quote)
}

// DeleteQuote removes a quote from the wall (sfeerbeheer only).
func (s *QuoteService) DeleteQuote(id string) error {
	return s.repo.Delete(id)
}
