package handlers

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger: всё, что умеет проверить своё соединение (пул MySQL, redis).
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks map[string]Pinger
	log    *zap.Logger
}

// NewHealthHandler: nil-зависимости пропускаются, так redis без REDIS_ENABLED не проверяется.
func NewHealthHandler(checks map[string]Pinger, log *zap.Logger) *HealthHandler {
	live := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			live[name] = p
		}
	}
	return &HealthHandler{checks: live, log: log}
}

// Health godoc
// @Summary Проверка доступности
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Services: map[string]string{}}
	code := http.StatusOK
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			h.log.Warn("health check failed", zap.String("service", name), zap.Error(err))
			resp.Services[name] = "down"
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Services[name] = "up"
	}
	c.JSON(code, resp)
}
