package handler

import (
	"net/http"

	"wager-settlement/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// HealthCheck handles GET /health: a deep check of every dependency plus the
// process mode. Demo mode is reported but does not make the process unhealthy.
func HealthCheck(modes ports.SettlementService, checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		body := gin.H{
			"status":       status,
			"dependencies": deps,
		}
		if modes != nil {
			body["mode"] = modes.GetMode()
		}
		c.JSON(httpCode, body)
	}
}
