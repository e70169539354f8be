package handlers

import (
	"errors"
	"log"

	"ksabeheer/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles HTTP requests for the fry-order session lifecycle.
type SessionHandler struct {
	service *services.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{
		service: service,
	}
}

// RegisterRoutes registers the session routes with the Fiber app. The manual
// archive is an admin escape hatch and goes on the admin router.
func (h *SessionHandler) RegisterRoutes(router, admin fiber.Router) {
	sessionRoutes := router.Group("/session")
	sessionRoutes.Get("/", h.HandleGetSession)
	sessionRoutes.Post("/start", h.HandleStart)
	sessionRoutes.Post("/finalize", h.HandleFinalize)
	sessionRoutes.Post("/reopen", h.HandleReopen)
	sessionRoutes.Post("/ordering", h.HandleStartOrdering)
	sessionRoutes.Post("/ordered", h.HandleMarkOrdered)
	admin.Post("/session/archive", h.HandleArchive)
}

// HandleGetSession returns the current session state.
func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	return c.JSON(h.service.Current())
}

// HandleStart opens a new session.
func (h *SessionHandler) HandleStart(c *fiber.Ctx) error {
	return h.respondTransition(c, h.service.Start())
}

// HandleFinalize locks the session for review.
func (h *SessionHandler) HandleFinalize(c *fiber.Ctx) error {
	return h.respondTransition(c, h.service.Finalize())
}

// HandleReopen reopens a finalized session. The first request arms the
// reopen and returns 409; repeating it confirms.
func (h *SessionHandler) HandleReopen(c *fiber.Ctx) error {
	err := h.service.Reopen()
	if errors.Is(err, services.ErrReopenNotConfirmed) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Repeat the request to confirm reopening the session",
		})
	}
	return h.respondTransition(c, err)
}

// HandleStartOrdering marks the session as being phoned in.
func (h *SessionHandler) HandleStartOrdering(c *fiber.Ctx) error {
	return h.respondTransition(c, h.service.StartOrdering())
}

// MarkOrderedRequest represents the request body for marking the session
// ordered.
type MarkOrderedRequest struct {
	PickupTime string `json:"pickup_time"`
}

// HandleMarkOrdered records the pickup time and moves the session to ordered.
func (h *SessionHandler) HandleMarkOrdered(c *fiber.Ctx) error {
	var req MarkOrderedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	err := h.service.MarkOrdered(req.PickupTime)
	if errors.Is(err, services.ErrInvalidPickupTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Pickup time must be formatted as HH:MM",
		})
	}
	return h.respondTransition(c, err)
}

// HandleArchive archives an ordered session before its pickup deadline
// (sfeerbeheer only).
func (h *SessionHandler) HandleArchive(c *fiber.Ctx) error {
	return h.respondTransition(c, h.service.Archive())
}

func (h *SessionHandler) respondTransition(c *fiber.Ctx, err error) error {
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Session transition not allowed",
				"error":   err.Error(),
			})
		}
		log.Printf("Error during session transition: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Session transition failed",
			"error":   err.Error(),
		})
	}
	return c.JSON(h.service.Current())
}
