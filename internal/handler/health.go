package handler

import (
	"context"
	"time"

	"video-quiz/internal/domain"
	"video-quiz/internal/dto"
	"video-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler reports liveness and the state of optional dependencies
type HealthHandler struct {
	backend domain.GenerationBackend
	cache   domain.Cache
}

// NewHealthHandler accepts a nil cache when caching is disabled.
func NewHealthHandler(backend domain.GenerationBackend, cache domain.Cache) *HealthHandler {
	return &HealthHandler{backend: backend, cache: cache}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok", Generation: "unavailable", Cache: "disabled"}

	if h.backend != nil && h.backend.Available() {
		resp.Generation = h.backend.Name()
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			logger.Get().Warn("Cache ping failed", zap.Error(err))
			resp.Cache = "unavailable"
		} else {
			resp.Cache = "ok"
		}
	}

	return c.JSON(resp)
}
