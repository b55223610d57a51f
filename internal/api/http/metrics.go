package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/workspace"
	"github.com/GriffinCanCode/DeskShell/backend/internal/infrastructure/monitoring"
)

// Summary is the high level view of the JSON metrics endpoint
type Summary struct {
	TotalRequests     int64   `json:"total_requests"`
	AverageLatencyMs  float64 `json:"average_latency_ms"`
	ErrorRate         float64 `json:"error_rate"`
	ActiveConnections int64   `json:"active_connections"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// MetricsReport combines counters with live workspace statistics
type MetricsReport struct {
	Timestamp  time.Time                  `json:"timestamp"`
	Backend    monitoring.MetricsSnapshot `json:"backend"`
	Workspaces workspace.Stats            `json:"workspaces"`
	Summary    Summary                    `json:"summary"`
}

// MetricsSummary serves the JSON metrics report
func (h *Handlers) MetricsSummary(c *gin.Context) {
	snap := h.metrics.Snapshot()
	c.JSON(http.StatusOK, MetricsReport{
		Timestamp:  time.Now(),
		Backend:    snap,
		Workspaces: h.manager.Stats(),
		Summary:    summarize(snap),
	})
}

func summarize(s monitoring.MetricsSnapshot) Summary {
	sum := Summary{
		TotalRequests:     s.TotalRequests,
		ActiveConnections: s.ActiveConnections,
		UptimeSeconds:     s.Uptime,
	}
	if s.TotalRequests > 0 {
		sum.AverageLatencyMs = s.TotalDuration / float64(s.TotalRequests) * 1000
		sum.ErrorRate = float64(s.TotalErrors) / float64(s.TotalRequests) * 100
	}
	return sum
}
