package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nutrilog/backend/internal/api"
	"github.com/nutrilog/backend/internal/middleware"
)

// Handlers groups the API handlers the router wires up.
type Handlers struct {
	Auth    *api.AuthHandler
	Food    *api.FoodHandler
	Profile *api.ProfileHandler
	Goal    *api.GoalHandler
}

// Setup configures the application routes.
func Setup(h Handlers, validator middleware.TokenValidator, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")

	// Auth routes (no token required)
	h.Auth.RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.Auth(validator))
	{
		h.Food.RegisterRoutes(protected)
		h.Profile.RegisterRoutes(protected)
		h.Goal.RegisterRoutes(protected)
	}

	return router
}
