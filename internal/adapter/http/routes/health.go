package routes

import (
	"context"
	"net/http"
	"time"

	"planejao/internal/infrastructure/logging"

	"github.com/gin-gonic/gin"
)

func addHealthRoutes(router *gin.Engine, ready func(ctx context.Context) error) {
	live := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", live)
	router.GET("/health/live", live)
	router.GET("/health/ready", func(c *gin.Context) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ready(ctx); err != nil {
				logging.Logger.Warnf("[health] storage not ready: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}
