package handlers

import (
	"fmt"
	"log"
	"strings"

	"ksabeheer/internal/models"
	"ksabeheer/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// EventHandler handles HTTP requests for the chapter agenda.
type EventHandler struct {
	service  *services.EventService
	validate *validator.Validate
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service *services.EventService) *EventHandler {
	return &EventHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the agenda routes. Deleting an event is a
// sfeerbeheer action and goes on the admin router.
func (h *EventHandler) RegisterRoutes(router, admin fiber.Router) {
	router.Get("/events", h.HandleGetEvents)
	router.Post("/events", h.HandleCreateEvent)
	router.Put("/events/:id", h.HandleUpdateEvent)
	admin.Delete("/events/:id", h.HandleDeleteEvent)
}

// HandleGetEvents retrieves the agenda ordered by date.
func (h *EventHandler) HandleGetEvents(c *fiber.Ctx) error {
	events, err := h.service.GetAllEvents()
	if err != nil {
		log.Printf("Error getting all events: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve events",
			"error":   err.Error(),
		})
	}
	return c.JSON(events)
}

// HandleCreateEvent adds a new event. Title and date are required.
func (h *EventHandler) HandleCreateEvent(c *fiber.Ctx) error {
	var event models.Event
	if err := c.BodyParser(&event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(event); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	event.CreatedBy, _ = c.Locals("user_id").(string)
	if err := h.service.CreateEvent(&event); err != nil {
		log.Printf("Error creating event: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create event",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// HandleUpdateEvent updates an existing event.
func (h *EventHandler) HandleUpdateEvent(c *fiber.Ctx) error {
	var event models.Event
	if err := c.BodyParser(&event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	event.ID = c.Params("id")

	if err := h.validate.Struct(event); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.service.UpdateEvent(&event); err != nil {
		log.Printf("Error updating event %s: %v", event.ID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Event with ID %s not found", event.ID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update event",
			"error":   err.Error(),
		})
	}
	return c.JSON(event)
}

// HandleDeleteEvent removes an event from the agenda (sfeerbeheer only).
func (h *EventHandler) HandleDeleteEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if err := h.service.DeleteEvent(eventID); err != nil {
		log.Printf("Error deleting event %s: %v", eventID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Event with ID %s not found", eventID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete event",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Event %s deleted", eventID),
	})
}
