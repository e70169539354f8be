package repositories

import "ksabeheer/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(user *models.User) error
	// AddToBalance adjusts a user's running tab by delta (positive for a
	// charge, negative for a refund).
	AddToBalance(id string, delta float64) error
}
