package handler

import (
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/model"
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/service"
	"github.com/choudharyanish1236-cloud/retail-task-manager/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

type adjustStockRequest struct {
	ProductName string            `json:"productName" validate:"required"`
	Quantity    int               `json:"quantity" validate:"gt=0"`
	Action      model.StockAction `json:"action" validate:"required,oneof=ADD_STOCK REDUCE_STOCK"`
}

func (h *StockHandler) AdjustStock(c *fiber.Ctx) error {
	var req adjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := validator.Error(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.AdjustStock(req.ProductName, req.Quantity, req.Action)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Stock updated", "data": result})
}

type voiceCommandRequest struct {
	Transcript string `json:"transcript" validate:"required"`
}

// ParseVoiceCommand extracts a pending stock action from a transcript. The
// client confirms the action before calling AdjustStock; nothing is mutated
// here. An unparseable transcript yields a null command, not an error.
func (h *StockHandler) ParseVoiceCommand(c *fiber.Ctx) error {
	var req voiceCommandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := validator.Error(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	cmd := h.service.ParseCommand(c.Context(), req.Transcript)
	return c.JSON(fiber.Map{"transcript": req.Transcript, "command": cmd})
}

func (h *StockHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.NewProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.AddProduct(&req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

type thresholdRequest struct {
	LowStockThreshold int `json:"lowStockThreshold" validate:"gte=0"`
}

func (h *StockHandler) UpdateThreshold(c *fiber.Ctx) error {
	var req thresholdRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := validator.Error(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	product, err := h.service.SetLowStockThreshold(c.Params("id"), req.LowStockThreshold)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if product == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(fiber.Map{"message": "Threshold updated", "data": product})
}

func (h *StockHandler) GetProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.ListProducts())
}

func (h *StockHandler) GetLowStock(c *fiber.Ctx) error {
	return c.JSON(h.service.LowStockProducts())
}
