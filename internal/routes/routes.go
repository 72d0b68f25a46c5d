package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bostonfood/internal/config"
	"bostonfood/internal/controllers"
)

// SetupRouter initializes controllers and API routes
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	violationsController := controllers.ViolationsController{DB: db}

	router := gin.Default()

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	api := router.Group("/api/v1")
	{
		violations := api.Group("/violations")
		{
			// GET /api/v1/violations?code=&limit=
			violations.GET("", violationsController.GetViolations)

			// GET /api/v1/violations/top-codes?limit=
			violations.GET("/top-codes", violationsController.GetTopCodes)

			// GET /api/v1/violations/top-descriptions?limit=
			violations.GET("/top-descriptions", violationsController.GetTopDescriptions)
		}
	}

	return router
}
