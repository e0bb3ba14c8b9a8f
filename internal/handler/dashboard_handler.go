package handler

import (
	"github.com/gofiber/fiber/v2"

	"ouvidoria-ativa/internal/domain"
	"ouvidoria-ativa/internal/service"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	period := domain.ParsePeriod(c.Query("period", string(domain.PeriodLast30Days)))

	stats, err := h.dashboardService.ComputeStats(c.Context(), period)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
