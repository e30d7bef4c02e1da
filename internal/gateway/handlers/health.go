package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"

	"invite-builder/internal/common/logger"
)

// ============================================================
// Health Check Handlers
// ============================================================

type HealthHandler struct {
	builderURL string
	client     *http.Client
	log        logger.Logger
}

func NewHealthHandler(builderURL string, client *http.Client, log logger.Logger) *HealthHandler {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Second}
	}
	return &HealthHandler{builderURL: builderURL, client: client, log: log}
}

// LivenessProbe проверяет, что приложение работает
func (h *HealthHandler) LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe готов, только если builder отвечает на свой /health/ready
func (h *HealthHandler) ReadinessProbe(c fiber.Ctx) error {
	if err := h.checkBuilder(c.Context()); err != nil {
		h.log.Warn("builder not ready", logger.String("builder", h.builderURL), logger.Err(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "unavailable",
			"builder": "down",
		})
	}
	return c.JSON(fiber.Map{
		"status":  "ready",
		"builder": "up",
	})
}

// StartupProbe проверяет, что приложение успешно запустилось
func (h *HealthHandler) StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}

func (h *HealthHandler) checkBuilder(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.builderURL+"/health/ready", nil)
	if err != nil {
		return err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("builder readiness returned %d", resp.StatusCode)
	}
	return nil
}
