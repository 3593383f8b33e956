package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/abeba/internal/prediction"
	"github.com/terraincognita07/abeba/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func inputError(c *fiber.Ctx, field string, reason string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "invalid input",
		"field":  field,
		"reason": reason,
	})
}

// respondPredictionError maps projection and profile failures onto statuses.
func (handler *Handler) respondPredictionError(c *fiber.Ctx, err error) error {
	var fieldErr *prediction.InputError
	switch {
	case errors.As(err, &fieldErr):
		return inputError(c, fieldErr.Field, fieldErr.Reason)
	case errors.Is(err, prediction.ErrInvalidInput):
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	case errors.Is(err, prediction.ErrDegenerateCycle):
		return apiError(c, fiber.StatusUnprocessableEntity, "cycle length leaves no room for a cycle")
	case errors.Is(err, services.ErrProfileNotFound):
		return apiError(c, fiber.StatusNotFound, "cycle profile not found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apiError(c, fiber.StatusServiceUnavailable, "request cancelled")
	default:
		handler.logger.WithError(err).WithField("path", c.Path()).Error("prediction request failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to build prediction")
	}
}
