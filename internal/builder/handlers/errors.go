package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"invite-builder/internal/builder/canvas"
	"invite-builder/internal/builder/editor"
	"invite-builder/internal/builder/repository"
	"invite-builder/internal/builder/service"
	"invite-builder/internal/common/logger"
)

// ============================================================
// Error mapping
// ============================================================

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, editor.ErrElementNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidDocument):
		return fiber.StatusBadRequest
	case errors.Is(err, canvas.ErrNothingSelected),
		errors.Is(err, canvas.ErrGestureInProgress):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes {"error": ...}; unexpected errors are logged and hidden.
func fail(c fiber.Ctx, log logger.Logger, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error("request failed",
			logger.String("method", c.Method()),
			logger.String("path", c.Path()),
			logger.Err(err),
		)
		return c.Status(status).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// decodeBody unmarshals a required JSON body into v. The error text is
// meant for a 400 response.
func decodeBody(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return errors.New("empty body")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}
