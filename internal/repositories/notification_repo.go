package repositories

import "ksabeheer/internal/models"

// NotificationRepository defines the interface for notification data access.
type NotificationRepository interface {
	GetByUser(userID string) ([]models.Notification, error)
	Create(notification *models.Notification) error
	// MarkRead marks a notification as read. The userID guards against
	// marking another member's notification.
	MarkRead(id, userID string) error
}
