package handlers

import (
	"time"

	"multiciber/internal/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Stats *services.StatsService
}

// GET /api/dashboard/stats
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	stats, err := h.Stats.Dashboard(ownerID(c), time.Now())
	if err != nil {
		return svcError(c, "dashboard.stats.fail", err)
	}
	return ok(c, stats)
}
