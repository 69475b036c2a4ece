package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yangnim21029/pagelens/models"
)

// Health returns a handler for GET /api/v1/health.
func Health(metrics *Metrics, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:       "healthy",
			Uptime:       time.Since(startTime).Round(time.Second).String(),
			AuditsServed: metrics.AuditsServed.Load(),
			Version:      "0.1.0",
		})
	}
}
