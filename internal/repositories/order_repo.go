package repositories

import "ksabeheer/internal/models"

// OrderRepository defines the interface for fry-order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	Delete(id string) error
	// CompleteAllPending bulk-transitions every pending order to completed
	// and returns how many were affected. Archiving a session is the only
	// caller; no other code path changes order status.
	CompleteAllPending() (int, error)
}
