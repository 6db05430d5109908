package handler

import (
	"context"

	"eqwip/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is anything whose liveness the health endpoint reports on.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports dependency status. The cache is optional, so a cache
// failure degrades the report without failing the request.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	data := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}
	status := fiber.StatusOK

	if h.db == nil || h.db.Ping(c.Context()) != nil {
		data["database"] = "down"
		status = fiber.StatusServiceUnavailable
	}
	if h.cache == nil || h.cache.Ping(c.Context()) != nil {
		data["cache"] = "down"
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, response.MessageError, data)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
