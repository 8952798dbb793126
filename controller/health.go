package controller

import (
	"chatbot-backend/response"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"

	healthProbeTimeout = 5 * time.Second
)

// Health 逐个探测依赖，任一失败则整体状态为degraded
func (ctl *Controller) Health(c *gin.Context) {
	services := make(map[string]string, len(ctl.checks))
	overall := statusHealthy

	for _, check := range ctl.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
		err := check.Probe(ctx)
		cancel()

		if err != nil {
			services[check.Name] = statusUnhealthy
			overall = statusDegraded
		} else {
			services[check.Name] = statusHealthy
		}
	}

	c.JSON(http.StatusOK, response.HealthResponse{
		Status:    overall,
		Timestamp: time.Now(),
		Services:  services,
	})
}
