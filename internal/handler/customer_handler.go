package handler

import (
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/model"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/service"
	"github.com/choudharyanish1236-cloud/retail-task-manager/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler serves the pending-payments view: unpaid invoices,
// reminders and settlement.
type CustomerHandler struct {
	service service.ReminderService
}

func NewCustomerHandler(s service.ReminderService) *CustomerHandler {
	return &CustomerHandler{service: s}
}

func (h *CustomerHandler) GetPendingInvoices(c *fiber.Ctx) error {
	return c.JSON(h.service.PendingInvoices())
}

type reminderRequest struct {
	Message string               `json:"message"`
	Method  model.ReminderMethod `json:"method" validate:"required,oneof=IN_APP WHATSAPP"`
}

func (h *CustomerHandler) SendReminder(c *fiber.Ctx) error {
	var req reminderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := validator.Error(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	reminder, err := h.service.SendReminder(c.Params("id"), req.Message, req.Method)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if reminder == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Invoice not found"})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Reminder sent", "data": reminder})
}

func (h *CustomerHandler) MarkPaid(c *fiber.Ctx) error {
	inv, err := h.service.MarkPaid(c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if inv == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Invoice not found"})
	}
	return c.JSON(fiber.Map{"message": "Invoice marked paid", "data": inv})
}
