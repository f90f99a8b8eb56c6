package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/barstock/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by New.
type Handlers struct {
	Liquor    *handlers.LiquorHandler
	Beer      *handlers.BeerHandler
	Dashboard *handlers.DashboardHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	liquor := r.Group("/liquor")
	{
		liquor.GET("/catalog", h.Liquor.Catalog)
		liquor.POST("/catalog", h.Liquor.AddBottle)
		liquor.POST("/measure", h.Liquor.Measure)
		liquor.POST("/session/start", h.Liquor.StartSession)
		liquor.GET("/session", h.Liquor.OpenSession)
		liquor.POST("/session/items", h.Liquor.AddItem)
		liquor.DELETE("/session/items/:index", h.Liquor.RemoveItem)
		liquor.POST("/session/close", h.Liquor.CloseSession)
		liquor.GET("/history", h.Liquor.History)
		liquor.GET("/export.csv", h.Liquor.ExportCSV)
		liquor.GET("/summary", h.Liquor.Summary)
		liquor.GET("/trends", h.Liquor.Trends)
		liquor.GET("/series/:key", h.Liquor.Series)
	}

	beer := r.Group("/beer")
	{
		beer.GET("/catalog", h.Beer.Catalog)
		beer.POST("/catalog", h.Beer.AddBeer)
		beer.POST("/session/start", h.Beer.StartSession)
		beer.GET("/session", h.Beer.OpenSession)
		beer.POST("/session/items", h.Beer.AddItem)
		beer.DELETE("/session/items/:index", h.Beer.RemoveItem)
		beer.POST("/session/close", h.Beer.CloseSession)
		beer.GET("/history", h.Beer.History)
		beer.GET("/export.csv", h.Beer.ExportCSV)
		beer.GET("/series/:key", h.Beer.Series)
	}

	r.GET("/dashboard/alerts", h.Dashboard.Alerts)
	r.GET("/dashboard/predictions", h.Dashboard.Predictions)
	r.POST("/export/sheets", h.Dashboard.ExportSheets)

	logger.Info("router initialized")
	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
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
