package services

import (
	"fmt"
	"time"

	"ksabeheer/internal/models"
	"ksabeheer/internal/repositories"

	"github.com/google/uuid"
)

// Notifier delivers messages to members. SessionService and OrderService
// depend on this interface rather than the concrete NotificationService so
// they can be tested in isolation.
type Notifier interface {
	// Notify delivers a message to a single member.
	Notify(userID, title, message string) error
	// Broadcast delivers a message to every known member.
	Broadcast(title, message string) error
}

// NotificationService handles creating and reading member notifications.
type NotificationService struct {
	notifRepo repositories.NotificationRepository
	userRepo  repositories.UserRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationService {
	return &NotificationService{
		notifRepo: notifRepo,
		userRepo:  userRepo,
	}
}

// Notify delivers a message to a single member.
func (s *NotificationService) Notify(userID, title, message string) error {
	n := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.notifRepo.Create(n); err != nil {
		return fmt.Errorf("failed to notify user %s: %w", userID, err)
	}
	return nil
}

// Broadcast delivers a message to every known member, one notification each.
func (s *NotificationService) Broadcast(title, message string) error {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to list users for broadcast: %w", err)
	}
	for _, u := range users {
		if err := s.Notify(u.ID, title, message); err != nil {
			return err
		}
	}
	return nil
}

// ListForUser returns a member's notifications, newest first.
func (s *NotificationService) ListForUser(userID string) ([]models.Notification, error) {
	return s.notifRepo.GetByUser(userID)
}

// MarkRead marks one of the member's own notifications as read.
func (s *NotificationService) MarkRead(id, userID string) error {
	return s.notifRepo.MarkRead(id, userID)
}

// UnreadCount returns how many unread notifications a member has.
func (s *NotificationService) UnreadCount(userID string) (int, error) {
	notifications, err := s.notifRepo.GetByUser(userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count, nil
}
