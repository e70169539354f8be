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

// DrinkHandler handles HTTP requests for the drink catalog.
type DrinkHandler struct {
	service  *services.DrinkService
	validate *validator.Validate
}

// NewDrinkHandler creates a new DrinkHandler.
func NewDrinkHandler(service *services.DrinkService) *DrinkHandler {
	return &DrinkHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the drink routes with the Fiber app. Catalog
// reads are open to all members; mutations require sfeerbeheer and are
// guarded by the admin router.
func (h *DrinkHandler) RegisterRoutes(router, admin fiber.Router) {
	router.Get("/drinks", h.HandleGetDrinks)
	router.Get("/drinks/:id", h.HandleGetDrinkByID)
	admin.Post("/drinks", h.HandleCreateDrink)
	admin.Put("/drinks/:id", h.HandleUpdateDrink)
	admin.Delete("/drinks/:id", h.HandleDeleteDrink)
}

// HandleGetDrinks returns the catalog; the service substitutes the fallback
// list when the catalog is unavailable, so this never errors.
func (h *DrinkHandler) HandleGetDrinks(c *fiber.Ctx) error {
	return c.JSON(h.service.Catalog())
}

// HandleGetDrinkByID retrieves a single drink by its ID.
func (h *DrinkHandler) HandleGetDrinkByID(c *fiber.Ctx) error {
	drinkID := c.Params("id")
	drink, err := h.service.GetDrinkByID(drinkID)
	if err != nil {
		log.Printf("Error getting drink by ID %s: %v", drinkID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Drink with ID %s not found", drinkID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve drink",
			"error":   err.Error(),
		})
	}
	return c.JSON(drink)
}

// HandleCreateDrink adds a new drink to the catalog.
func (h *DrinkHandler) HandleCreateDrink(c *fiber.Ctx) error {
	var drink models.Drink
	if err := c.BodyParser(&drink); err != nil {
		log.Printf("Error parsing drink request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(drink); err != nil {
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

	if err := h.service.CreateDrink(&drink); err != nil {
		log.Printf("Error creating drink: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create drink",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(drink)
}

// HandleUpdateDrink updates an existing drink.
func (h *DrinkHandler) HandleUpdateDrink(c *fiber.Ctx) error {
	var drink models.Drink
	if err := c.BodyParser(&drink); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	drink.ID = c.Params("id")

	if err := h.validate.Struct(drink); err != nil {
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

	if err := h.service.UpdateDrink(&drink); err != nil {
		log.Printf("Error updating drink %s: %v", drink.ID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Drink with ID %s not found", drink.ID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update drink",
			"error":   err.Error(),
		})
	}
	return c.JSON(drink)
}

// HandleDeleteDrink removes a drink from the catalog.
func (h *DrinkHandler) HandleDeleteDrink(c *fiber.Ctx) error {
	drinkID := c.Params("id")
	if err := h.service.DeleteDrink(drinkID); err != nil {
		log.Printf("Error deleting drink %s: %v", drinkID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Drink with ID %s not found", drinkID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete drink",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Drink %s deleted", drinkID),
	})
}
