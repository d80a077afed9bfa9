package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wirkaufenfair/fairprice/internal/dto"
)

type HealthHandler struct {
	ping    func(ctx context.Context) error
	timeout time.Duration
}

func NewHealthHandler(ping func(ctx context.Context) error, timeout time.Duration) *HealthHandler {
	return &HealthHandler{ping: ping, timeout: timeout}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	dbStatus := "ok"
	if err := h.ping(ctx); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
