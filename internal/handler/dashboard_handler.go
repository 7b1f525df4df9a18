package handler

import (
	"github.com/choudharyanish1236-cloud/retail-task-manager/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStats returns the overview block: sales totals, pending collection,
// low-stock alerts and chart data.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	return c.JSON(h.service.GetStats())
}

func (h *DashboardHandler) GetTransactions(c *fiber.Ctx) error {
	return c.JSON(h.service.Transactions())
}
