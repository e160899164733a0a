package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// healthCheckTimeout bounds each dependency probe.
const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one dependency. A nil error means the dependency is reachable.
type HealthCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

// HealthController handles health check endpoints.
type HealthController struct {
	checks []HealthCheck
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
	Timestamp  string            `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(checks ...HealthCheck) *HealthController {
	return &HealthController{
		checks: checks,
	}
}

// Check handles GET /health requests.
// The API reports "degraded" with 503 when any dependency is unreachable.
func (h *HealthController) Check(c *gin.Context) {
	status := "ok"
	code := http.StatusOK
	components := make(map[string]string, len(h.checks))

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		err := check.Probe(ctx)
		cancel()

		if err != nil {
			components[check.Name] = "disconnected"
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		components[check.Name] = "connected"
	}

	c.JSON(code, HealthResponse{
		Status:     status,
		Components: components,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}
