package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether a dependency answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the fact store is reachable.
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Healthz returns 200 when the store answers and 503 otherwise.
func (h *HealthHandler) Healthz(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return textError(c, fiber.StatusServiceUnavailable, "unavailable")
	}
	return c.SendString("ok")
}
