package handler

import (
	"net/http"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"
)

// Check is one named readiness probe.
type Check struct {
	Name  string
	Probe func() error
}

type HealthHandler struct {
	checks []Check
}

func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Live reports healthy as soon as the process serves requests.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports healthy only when every configured check passes.
func (h *HealthHandler) Ready(c *gin.Context) {
	results := make(gin.H, len(h.checks))
	ready := true
	for _, check := range h.checks {
		if err := check.Probe(); err != nil {
			results[check.Name] = err.Error()
			ready = false
		} else {
			results[check.Name] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "checks": results})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": results})
}

func (h *HealthHandler) Metrics(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/plain")
	metrics.WritePrometheus(c.Writer, true)
}
