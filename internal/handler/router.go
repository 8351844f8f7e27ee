package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the API onto r. Any origin may call it.
func RegisterRoutes(r *gin.Engine, newsHandler *NewsHandler, usageHandler *UsageHandler) {
	r.Use(RequestID())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{RequestIDHeader},
	}))

	r.GET("/", newsHandler.GetRoot)
	r.GET("/news", newsHandler.GetNews)
	r.GET("/trends", newsHandler.GetTrends)
	r.GET("/health", newsHandler.GetHealth)
	r.GET("/usage", usageHandler.GetUsage)
}
