package routes

import (
	"dawah-report-api/controllers"
	"dawah-report-api/middleware"
	"dawah-report-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Dawah Report API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Report category definitions (all authenticated users)
			protected.GET("/categories", controllers.GetCategories)

			// Daily reports, one route pair per category
			reports := protected.Group("/reports")
			{
				reports.GET("/:category", controllers.GetReports)
				reports.POST("/:category", controllers.CreateReport)
			}

			// User administration
			users := protected.Group("/users")
			{
				users.GET("", controllers.GetUsers)

				// Role and scope edits are central-admin only and audited
				users.PUT("", middleware.RequireRole(models.RoleCentralAdmin), controllers.UpdateUser)
				users.POST("/ban", middleware.RequireRole(models.RoleCentralAdmin), controllers.SetBanned)
				users.DELETE("", middleware.RequireRole(models.RoleCentralAdmin), controllers.DeleteUser)
			}

			// Leave requests
			leaves := protected.Group("/leaves")
			{
				leaves.GET("", controllers.GetLeaves)
				leaves.POST("", controllers.CreateLeave)
				leaves.PUT("", middleware.RequireAdmin(), controllers.DecideLeave)
			}

			// Weekly to-do plans
			todos := protected.Group("/todos")
			{
				todos.GET("", controllers.GetTodos)
				todos.POST("", controllers.CreateTodo)
				todos.PUT("/:id", controllers.UpdateTodo)
				todos.DELETE("/:id", controllers.DeleteTodo)
			}

			// Dashboard and comparison views (admins)
			dashboard := protected.Group("/dashboard")
			dashboard.Use(middleware.RequireAdmin())
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
				dashboard.GET("/overview", controllers.GetMonthlyOverview)
				dashboard.GET("/compare", controllers.CompareReports)
			}
		}
	}
}
