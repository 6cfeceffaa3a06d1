package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultry-stock/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares. notify may be
// nil when WhatsApp is not configured; the notify route is then not mounted.
func New(stock *handlers.StockHandler, notify *handlers.NotifyHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	reconciliation := api.Group("/stock/reconciliation")
	reconciliation.GET("", stock.Daily)
	reconciliation.GET("/range", stock.Range)
	reconciliation.POST("/compute", stock.Compute)
	reconciliation.GET("/export", stock.Export)
	reconciliation.POST("/close", stock.Close)

	api.GET("/stock/reports/:date", stock.Stored)

	if notify != nil {
		api.POST("/notify", notify.SendMessage)
	}

	if logger != nil {
		logger.Info("router initialized", zap.Bool("notify", notify != nil))
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
