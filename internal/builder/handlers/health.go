package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"invite-builder/internal/common/logger"
)

// ============================================================
// Health Check Handlers
// ============================================================

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ready(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	log     logger.Logger
	timeout time.Duration
}

func NewHealthHandler(db Pinger, log logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log, timeout: 2 * time.Second}
}

// Live проверяет, что приложение работает.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// Ready проверяет доступность базы проектов.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	if err := h.db.Ready(ctx); err != nil {
		h.log.Warn("readiness check failed", logger.Err(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  "database unreachable",
		})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}
