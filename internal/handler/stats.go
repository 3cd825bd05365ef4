package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/anto1/ds-survey/internal/middleware"
	"github.com/anto1/ds-survey/internal/service"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /api/admin/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.svc.GetStats(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("stats fetch failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}
	return c.JSON(stats)
}
