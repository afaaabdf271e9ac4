package handlers

import (
	"clinicare-portal/internal/core/services"
	"clinicare-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler handles dashboard statistics endpoints
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Overview handles the dashboard overview
// @Summary Dashboard overview
// @Description Get clinic-wide counts for the admin dashboard
// @Tags Stats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /stats/overview [get]
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.statsService.GetOverview(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get dashboard overview")
	}

	return response.Success(c, "Dashboard overview retrieved", overview)
}
