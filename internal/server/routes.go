package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fleveque/therapist-finder/internal/config"
	"github.com/fleveque/therapist-finder/internal/handler"
	"github.com/fleveque/therapist-finder/internal/middleware"
)

// RegisterRoutes sets up all HTTP routes on the Gin engine.
// In Go, dependencies are passed explicitly: no DI container, no magic.
// Each handler gets exactly the dependencies it needs.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps, logger *zap.Logger) {
	healthHandler := handler.NewHealthHandler(deps.Provider, deps.Model)
	pageHandler := handler.NewPageHandler(deps.Finder, logger)
	therapistHandler := handler.NewTherapistHandler(deps.Finder, logger)

	r.GET("/healthz", healthHandler.Healthz)

	r.GET("/", pageHandler.Index)
	r.GET("/search", pageHandler.Search)

	api := r.Group("/api/v1")
	api.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	// Group middleware only runs on matched routes, so preflight needs its own route
	api.OPTIONS("/therapists", func(*gin.Context) {})

	// Groups share a path prefix and a middleware chain; an empty prefix just
	// layers more middleware on /api/v1.
	authed := api.Group("")
	authed.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	authed.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	{
		authed.GET("/therapists", therapistHandler.List)
	}
}
