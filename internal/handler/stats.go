package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/GabrielPedrotti/irecipes/internal/service"
)

type StatsHandler struct {
	svc *service.VideoService
}

func NewStatsHandler(svc *service.VideoService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context())
	if err != nil {
		return respondError(c, err, "Failed to fetch statistics")
	}
	return c.JSON(stats)
}
