package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/wirkaufenfair/fairprice/internal/dto"
	"github.com/wirkaufenfair/fairprice/internal/services"
)

// respondError maps service errors to HTTP responses. Server-side details are
// logged, never returned.
func respondError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return fail(c, fiber.StatusBadRequest, verr.Error())
	case errors.Is(err, services.ErrPriceReportNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrReportFinalized):
		return fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		slog.Error("request timed out",
			"method", c.Method(),
			"path", c.Path(),
			"trace_id", traceID(c),
			"error", err.Error(),
		)
		return fail(c, fiber.StatusServiceUnavailable, "Service temporarily unavailable")
	}

	slog.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"trace_id", traceID(c),
		"error", err.Error(),
	)
	return fail(c, fiber.StatusInternalServerError, "Internal server error")
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func traceID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
