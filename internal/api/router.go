package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeapi/internal/api/middleware"
	"resumeapi/internal/config"
	"resumeapi/internal/metrics"
)

// NewRouter 构建 Gin 路由引擎并挂载公共中间件、健康检查与指标端点。
func NewRouter(cfg *config.Config, logger *slog.Logger) *gin.Engine {
	if cfg != nil && cfg.API.ReloadOnChange {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.CorrelationIDMiddleware(),
		middleware.SlogLoggerMiddleware(logger),
		metrics.GinMiddleware(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	return router
}
