package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"ksabeheer/internal/models"
	"ksabeheer/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for fry orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Delete("/:id", h.HandleRemoveOrder)
}

// HandleGetOrders retrieves all orders in the ledger.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}

// CreateOrderRequest represents the request body for placing an order.
// ForUserID may name another member to order on their behalf.
type CreateOrderRequest struct {
	ForUserID string             `json:"for_user_id"`
	Items     []models.OrderItem `json:"items"`
}

// HandleCreateOrder places a new order in the ledger.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	actingUserID, _ := c.Locals("user_id").(string)
	createdOrder, err := h.service.PlaceOrder(actingUserID, req.ForUserID, req.Items)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		if errors.Is(err, services.ErrSessionNotOpen) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "The fry-order session is not open",
			})
		}
		if errors.Is(err, services.ErrEmptyOrder) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "An order needs at least one item with a positive quantity",
			})
		}
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order target not found",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(createdOrder)
}

// HandleRemoveOrder deletes an order; the charge is refunded only when the
// order belongs to the acting member.
func (h *OrderHandler) HandleRemoveOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	actingUserID, _ := c.Locals("user_id").(string)

	if err := h.service.RemoveOrder(actingUserID, orderID); err != nil {
		log.Printf("Error removing order %s: %v", orderID, err)
		if errors.Is(err, services.ErrSessionNotOpen) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "The fry-order session is not open",
			})
		}
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove order",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s removed", orderID),
	})
}
