package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/featherpress/featherpress/utils"
)

// HealthController serves the liveness probe.
type HealthController struct {
	db *gorm.DB
}

// NewHealthController creates a HealthController.
func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Health pings the database and reports pool statistics.
func (h *HealthController) Health(ctx *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "database unavailable")
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "database unavailable")
		return
	}

	stats := sqlDB.Stats()
	utils.Success(ctx, gin.H{
		"status":           "ok",
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
	})
}
