package api

import (
	"net/http"
	"time"

	"github.com/daily-saju/fortune-backend/internal/fortune"
	"github.com/daily-saju/fortune-backend/internal/ocr"
	"github.com/daily-saju/fortune-backend/internal/stats"
	"github.com/gin-gonic/gin"
)

// Handlers 汇集各模块的HTTP处理器，由main在启动时组装。
type Handlers struct {
	Fortune *fortune.Handler
	Stats   *stats.Handler
	OCR     *ocr.Handler
}

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine, h Handlers) {
	// 健康检查
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "fortune backend is running",
			"status":    "running",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		// 生成式内容相关的路由组
		fortuneRoutes := api.Group("/fortune")
		{
			fortuneRoutes.POST("/daily", h.Fortune.Daily)
			fortuneRoutes.POST("/subconscious", h.Fortune.Subconscious)
			fortuneRoutes.POST("/balance", h.Fortune.Balance)
		}

		// 统计相关的路由
		statsRoutes := api.Group("/statistics")
		{
			statsRoutes.POST("", h.Stats.Save)
			statsRoutes.GET("", h.Stats.Get)
			statsRoutes.DELETE("", h.Stats.Reset)
			statsRoutes.GET("/export", h.Stats.Export)
			statsRoutes.POST("/dropout", h.Stats.Dropout)
		}

		// OCR代理。base64图片体积较大，请求体上限放宽到10MB
		api.POST("/ocr", limitBody(10<<20), h.OCR.Recognize)
	}

	// 未注册的路径统一返回404
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
	})
}

// limitBody 限制单个请求体的最大字节数。
func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
