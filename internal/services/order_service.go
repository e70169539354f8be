package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"ksabeheer/internal/models"
	"ksabeheer/internal/repositories"
	"ksabeheer/pkg/rabbitmq"

	"github.com/google/uuid"
)

// ErrEmptyOrder is returned for an order without valid line items.
var ErrEmptyOrder = errors.New("an order needs at least one item with a positive quantity")

// OrderService handles the fry-order ledger: placing orders while the
// session is open, removing them with a refund for the owner, and listing.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	session   *SessionService
	notifier  Notifier
	mqClient  *rabbitmq.Client // May be nil when no broker is configured
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, session *SessionService, notifier Notifier, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		session:   session,
		notifier:  notifier,
		mqClient:  mqClient,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// PlaceOrder appends a pending order to the ledger. forUserID may name
// another member; when it does, the acting user's balance is untouched and
// the target member is warned that an order was placed in their name. The
// total is the sum of price*quantity at submission time and is never
// recomputed afterwards.
func (s *OrderService) PlaceOrder(actingUserID, forUserID string, items []models.OrderItem) (*models.Order, error) {
	targetID := forUserID
	if targetID == "" {
		targetID = actingUserID
	}
	target, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, fmt.Errorf("order target not found: %w", err)
	}

	var totalPrice float64
	for _, item := range items {
		if item.Quantity <= 0 || item.Name == "" {
			return nil, ErrEmptyOrder
		}
		totalPrice += item.Price * float64(item.Quantity)
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	newOrder := &models.Order{
		ID:         uuid.New().String(),
		UserID:     target.ID,
		UserName:   target.DisplayName(),
		Items:      items,
		TotalPrice: totalPrice,
		Date:       time.Now(),
		Status:     models.OrderStatusPending,
	}

	// The open-check and the ledger mutation run under the session lock, so
	// a concurrent Finalize cannot slip this order into a locked session.
	err = s.session.WhileOpen(func() error {
		if err := s.orderRepo.Create(newOrder); err != nil {
			return fmt.Errorf("failed to create order in repository: %w", err)
		}
		if target.ID == actingUserID {
			// Charge the member's own running tab.
			if err := s.userRepo.AddToBalance(actingUserID, totalPrice); err != nil {
				return fmt.Errorf("failed to charge balance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if target.ID != actingUserID && s.notifier != nil {
		// Anti-fraud flag: the target is told someone ordered in their name.
		msg := fmt.Sprintf("An order of €%.2f was placed in your name.", totalPrice)
		if err := s.notifier.Notify(target.ID, "Order placed in your name", msg); err != nil {
			log.Printf("Warning: failed to notify user %s of order in their name: %v", target.ID, err)
		}
	}

	if s.mqClient != nil {
		err := s.mqClient.PublishEvent("order.created", map[string]interface{}{
			"order_id": newOrder.ID,
			"user_id":  newOrder.UserID,
			"total":    newOrder.TotalPrice,
		})
		if err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", newOrder.ID, err)
		}
	}

	return newOrder, nil
}

// RemoveOrder deletes an order from the ledger. The charge is refunded to
// the acting user's balance if and only if the order belongs to them; an
// order placed for another member never auto-refunds that member.
func (s *OrderService) RemoveOrder(actingUserID, orderID string) error {
	return s.session.WhileOpen(func() error {
		order, err := s.orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}

		if err := s.orderRepo.Delete(orderID); err != nil {
			return err
		}

		if order.UserID == actingUserID {
			if err := s.userRepo.AddToBalance(actingUserID, -order.TotalPrice); err != nil {
				return fmt.Errorf("failed to refund balance: %w", err)
			}
		}
		return nil
	})
}
