package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"ksabeheer/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StreakHandler handles HTTP requests for the streak log and the weekly tab.
type StreakHandler struct {
	streaks *services.StreakService
	tab     *services.TabService
}

// NewStreakHandler creates a new StreakHandler.
func NewStreakHandler(streaks *services.StreakService, tab *services.TabService) *StreakHandler {
	return &StreakHandler{
		streaks: streaks,
		tab:     tab,
	}
}

// RegisterRoutes registers the streak and tab routes with the Fiber app.
// Removing a streak is an admin action and goes on the admin router.
func (h *StreakHandler) RegisterRoutes(router, admin fiber.Router) {
	router.Post("/streaks", h.HandleStreep)
	router.Get("/tab", h.HandleWeeklyTab)
	admin.Delete("/streaks/:id", h.HandleRemoveStreak)
}

// StreepRequest represents the request body for a quick streep.
type StreepRequest struct {
	DrinkID string `json:"drink_id"`
}

// HandleStreep logs one consumption for the authenticated member.
func (h *StreakHandler) HandleStreep(c *fiber.Ctx) error {
	var req StreepRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.DrinkID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "drink_id is required",
		})
	}

	actingUserID, _ := c.Locals("user_id").(string)
	streak, err := h.streaks.Streep(actingUserID, req.DrinkID)
	if err != nil {
		log.Printf("Error logging streep: %v", err)
		if errors.Is(err, services.ErrOutOfStock) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Drink is out of stock",
				"error":   err.Error(),
			})
		}
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Drink or user not found",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not log streep",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(streak)
}

// HandleRemoveStreak deletes a logged streak (sfeerbeheer only).
func (h *StreakHandler) HandleRemoveStreak(c *fiber.Ctx) error {
	streakID := c.Params("id")
	if err := h.streaks.RemoveStreak(streakID); err != nil {
		log.Printf("Error removing streak %s: %v", streakID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Streak not found",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove streak",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Streak removed",
	})
}

// HandleWeeklyTab returns the aggregated weekly consumption table. Query
// parameters: week (YYYY-MM-DD, any day of the wanted week, defaults to the
// current week), sort (name or drink) and drink (the column to sort by).
func (h *StreakHandler) HandleWeeklyTab(c *fiber.Ctx) error {
	anchor := time.Now()
	if week := c.Query("week"); week != "" {
		parsed, err := time.ParseInLocation("2006-01-02", week, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "week must be formatted as YYYY-MM-DD",
			})
		}
		anchor = parsed
	}

	mode := services.TabSortByName
	if c.Query("sort") == string(services.TabSortByDrink) {
		mode = services.TabSortByDrink
	}

	actingUserID, _ := c.Locals("user_id").(string)
	table, err := h.tab.WeeklyTab(services.WeekStart(anchor), actingUserID, mode, c.Query("drink"))
	if err != nil {
		log.Printf("Error aggregating weekly tab: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not aggregate weekly tab",
			"error":   err.Error(),
		})
	}
	return c.JSON(table)
}
