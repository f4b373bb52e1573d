package routes

import (
	"account-panel/internal/api/handlers"
	"account-panel/internal/api/middleware"
	"account-panel/internal/config"
	"account-panel/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize services
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db, authService)
	activityService := services.NewActivityService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, activityService)
	userHandler := handlers.NewUserHandler(userService, authService, activityService)
	adminHandler := handlers.NewAdminHandler(userService, activityService)

	// Middleware
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "Account Panel API is running",
			})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			// Registration is open; OptionalAuth only attributes the audit
			// record when the caller presents a valid token
			auth.POST("/register", middleware.OptionalAuth(authService), authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/verify", middleware.AuthMiddleware(authService), authHandler.Verify)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(authService), middleware.RequireRole("admin"))
		{
			admin.GET("/users", adminHandler.GetUsers)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
		}

		// User routes
		users := api.Group("/users")
		users.Use(middleware.AuthMiddleware(authService))
		{
			users.PUT("/profile", userHandler.UpdateProfile)
			users.GET("/activities", userHandler.GetActivities)
		}
	}
}
