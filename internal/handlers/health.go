package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string              `json:"status"`
	Database string              `json:"database"`
	Pool     *database.PoolStats `json:"pool,omitempty"`
}

// HealthCheck reports service and database status. A nil ping means no
// database is configured; a nil stats leaves pool counters out.
func HealthCheck(ping func(context.Context) error, stats func() *database.PoolStats) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := HealthResponse{Status: "ok"}

		if ping == nil {
			response.Database = "not configured"
			c.JSON(http.StatusOK, response)
			return
		}
		if stats != nil {
			response.Pool = stats()
		}
		if err := ping(c.Request.Context()); err != nil {
			response.Status = "degraded"
			response.Database = "disconnected"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
		response.Database = "connected"
		c.JSON(http.StatusOK, response)
	}
}
