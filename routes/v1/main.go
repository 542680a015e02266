package v1

import (
	"pqapi/handlers/auth"
	"pqapi/handlers/bonuses"
	"pqapi/handlers/challenges"
	"pqapi/handlers/languages"
	"pqapi/handlers/sets"
	"pqapi/handlers/users"
	"pqapi/middleware"

	"github.com/gin-gonic/gin"
)

// Register the endpoints for the v1 API
func Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(600, 100)
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)
	auth.RegisterRoutes(v1)
	users.RegisterRoutes(v1)
	challenges.RegisterRoutes(v1)
	sets.RegisterRoutes(v1)
	bonuses.RegisterRoutes(v1)
	languages.RegisterRoutes(v1)

	RegisterMetricsRoutes(v1)
	RegisterSwaggerRoutes(v1)
}
