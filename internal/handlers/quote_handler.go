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

// QuoteHandler handles HTTP requests for the quote wall.
type QuoteHandler struct {
	service  *services.QuoteService
	validate *validator.Validate
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(service *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the quote routes. Deletion is sfeerbeheer-only.
func (h *QuoteHandler) RegisterRoutes(router, admin fiber.Router) {
	router.Get("/quotes", h.HandleGetQuotes)
	router.Post("/quotes", h.HandleCreateQuote)
	admin.Delete("/quotes/:id", h.HandleDeleteQuote)
}

// HandleGetQuotes retrieves all quotes, newest first.
func (h *QuoteHandler) HandleGetQuotes(c *fiber.Ctx) error {
	quotes, err := h.service.GetAllQuotes()
	if err != nil {
		log.Printf("Error getting all quotes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve quotes",
			"error":   err.Error(),
		})
	}
	return c.JSON(quotes)
}

// HandleCreateQuote pins a new quote to the wall.
func (h *QuoteHandler) HandleCreateQuote(c *fiber.Ctx) error {
	var quote models.Quote
	if err := c.BodyParser(&quote); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(quote); err != nil {
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

	quote.AddedBy, _ = c.Locals("user_id").(string)
	if err := h.service.CreateQuote(&quote); err != nil {
		log.Printf("Error creating quote: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create quote",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(quote)
}

// HandleDeleteQuote removes a quote from the wall (sfeerbeheer only).
func (h *QuoteHandler) HandleDeleteQuote(c *fiber.Ctx) error {
	quoteID := c.Params("id")
	if err := h.service.DeleteQuote(quoteID); err != nil {
		log.Printf("Error deleting quote %s: %v", quoteID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Quote with ID %s not found", quoteID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete quote",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Quote %s deleted", quoteID),
	})
}
