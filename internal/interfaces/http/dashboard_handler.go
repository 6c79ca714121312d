package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/terraflow-api/internal/application/analytics"
	"github.com/jhoicas/terraflow-api/internal/application/dto"
	"github.com/jhoicas/terraflow-api/pkg/logger"
)

// DashboardHandler maneja los endpoints del dashboard de administración.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetStats devuelve los contadores globales.
// GET /api/admin/dashboard-stats
//
// Respuesta: {success, data: DashboardStatsDTO}. totalRevenue excluye pedidos cancelados.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Success: true, Data: stats})
}

// GetProductionRecommendations lista productos a reponer, Urgent primero.
// GET /api/admin/production-recommendations
func (h *DashboardHandler) GetProductionRecommendations(c *fiber.Ctx) error {
	recs, err := h.uc.ProductionRecommendations(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.DataResponse{Success: true, Data: recs})
}
