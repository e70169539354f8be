package handlers

import (
	"log"
	"strings"

	"ksabeheer/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles HTTP requests for member notifications.
type NotificationHandler struct {
	service *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

// RegisterRoutes registers the notification routes with the Fiber app.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notifRoutes := router.Group("/notifications")
	notifRoutes.Get("/", h.HandleGetNotifications)
	notifRoutes.Post("/:id/read", h.HandleMarkRead)
}

// HandleGetNotifications lists the authenticated member's notifications.
func (h *NotificationHandler) HandleGetNotifications(c *fiber.Ctx) error {
	actingUserID, _ := c.Locals("user_id").(string)
	notifications, err := h.service.ListForUser(actingUserID)
	if err != nil {
		log.Printf("Error getting notifications: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve notifications",
			"error":   err.Error(),
		})
	}
	return c.JSON(notifications)
}

// HandleMarkRead marks one of the member's notifications as read.
func (h *NotificationHandler) HandleMarkRead(c *fiber.Ctx) error {
	notifID := c.Params("id")
	actingUserID, _ := c.Locals("user_id").(string)

	if err := h.service.MarkRead(notifID, actingUserID); err != nil {
		log.Printf("Error marking notification %s read: %v", notifID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Notification not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not mark notification as read",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}
