package router

import (
	"github.com/gin-gonic/gin"

	"invex/internal/config"
	"invex/internal/handler"
	"invex/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	extractionH *handler.ExtractionHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health check
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")

	extractions := v1.Group("/extractions")
	extractions.POST("", extractionH.Extract)
	extractions.POST("/export", extractionH.Export)

	return r
}
