package handlers

import (
	"log"

	"ksabeheer/internal/services"

	"github.com/gofiber/fiber/v2"
)

// BillingHandler handles HTTP requests for the team-drink billing settings.
type BillingHandler struct {
	service *services.BillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(service *services.BillingService) *BillingHandler {
	return &BillingHandler{
		service: service,
	}
}

// RegisterRoutes registers the billing routes. Reads are open to members;
// mutations go on the admin router.
func (h *BillingHandler) RegisterRoutes(router, admin fiber.Router) {
	router.Get("/billing/links", h.HandleGetLinks)
	router.Get("/billing/paid", h.HandleGetPaidUsers)
	admin.Put("/billing/links", h.HandleSetLinks)
	admin.Post("/billing/paid/:userId", h.HandleMarkPaid)
	admin.Delete("/billing/paid/:userId", h.HandleUnmarkPaid)
}

// HandleGetLinks returns the spreadsheet links; unset links come back empty.
func (h *BillingHandler) HandleGetLinks(c *fiber.Ctx) error {
	ctx := c.Context()
	excelLink, err := h.service.ExcelLink(ctx)
	if err != nil {
		log.Printf("Error reading excel link: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not read billing links",
			"error":   err.Error(),
		})
	}
	billingLink, err := h.service.BillingExcelLink(ctx)
	if err != nil {
		log.Printf("Error reading billing excel link: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not read billing links",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"excel_link":         excelLink,
		"billing_excel_link": billingLink,
	})
}

// SetLinksRequest represents the request body for updating the links.
// Empty fields are left untouched.
type SetLinksRequest struct {
	ExcelLink        string `json:"excel_link"`
	BillingExcelLink string `json:"billing_excel_link"`
}

// HandleSetLinks updates one or both spreadsheet links (sfeerbeheer only).
func (h *BillingHandler) HandleSetLinks(c *fiber.Ctx) error {
	var req SetLinksRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	ctx := c.Context()
	if req.ExcelLink != "" {
		if err := h.service.SetExcelLink(ctx, req.ExcelLink); err != nil {
			log.Printf("Error storing excel link: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not store billing links",
				"error":   err.Error(),
			})
		}
	}
	if req.BillingExcelLink != "" {
		if err := h.service.SetBillingExcelLink(ctx, req.BillingExcelLink); err != nil {
			log.Printf("Error storing billing excel link: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not store billing links",
				"error":   err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{
		"message": "Billing links updated",
	})
}

// HandleGetPaidUsers returns the IDs of members marked as paid.
func (h *BillingHandler) HandleGetPaidUsers(c *fiber.Ctx) error {
	ids, err := h.service.PaidUsers(c.Context())
	if err != nil {
		log.Printf("Error reading paid users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not read paid users",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"paid_users": ids,
	})
}

// HandleMarkPaid adds a member to the paid list (sfeerbeheer only).
func (h *BillingHandler) HandleMarkPaid(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if err := h.service.MarkPaid(c.Context(), userID); err != nil {
		log.Printf("Error marking user %s paid: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not mark user as paid",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "User marked as paid",
	})
}

// HandleUnmarkPaid removes a member from the paid list (sfeerbeheer only).
func (h *BillingHandler) HandleUnmarkPaid(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if err := h.service.UnmarkPaid(c.Context(), userID); err != nil {
		log.Printf("Error unmarking user %s paid: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not unmark user as paid",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "User removed from paid list",
	})
}
