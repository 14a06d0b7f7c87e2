package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/examadmission/internal/app/models/dto"
)

// Pinger checks the storage backend
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports liveness and storage reachability
type HealthController struct {
	db     Pinger
	driver string
}

// NewHealthController creates a new HealthController. db may be nil for the memory driver.
func NewHealthController(db Pinger, driver string) *HealthController {
	return &HealthController{db: db, driver: driver}
}

// Health reports service status
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	if c.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.db.Ping(pingCtx); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable", Database: c.driver})
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: c.driver})
}
