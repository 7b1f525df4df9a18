package handler

import (
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/ai"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/service"
	"github.com/choudharyanish1236-cloud/retail-task-manager/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type BillingHandler struct {
	service service.BillingService
}

func NewBillingHandler(s service.BillingService) *BillingHandler {
	return &BillingHandler{service: s}
}

// CreateInvoice gates the submit preconditions (customer name, at least one
// item) before handing the draft to the commit workflow.
func (h *BillingHandler) CreateInvoice(c *fiber.Ctx) error {
	var draft service.InvoiceDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := validator.Error(&draft); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	inv, err := h.service.CreateInvoice(&draft)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Invoice created", "data": inv})
}

func (h *BillingHandler) GetInvoices(c *fiber.Ctx) error {
	return c.JSON(h.service.ListInvoices())
}

// GetSuggestions proxies the AI product search. Queries shorter than three
// characters return an empty list without calling the collaborator.
func (h *BillingHandler) GetSuggestions(c *fiber.Ctx) error {
	query := c.Query("q")
	if len(query) <= 2 {
		return c.JSON([]ai.Suggestion{})
	}
	return c.JSON(h.service.Suggest(c.Context(), query))
}
