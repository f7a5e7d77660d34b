package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/oguzk/labsessions/internal/app/controllers"
	"github.com/oguzk/labsessions/internal/app/models/dto"
	"github.com/oguzk/labsessions/internal/middleware"
	"github.com/oguzk/labsessions/internal/pkg/auth"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	sessionController *controllers.SessionController,
	registrationController *controllers.RegistrationController,
	feedController *controllers.FeedController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Course-scoped reads
		courses := authenticated.Group("/courses")
		{
			courses.GET("/:courseId/sessions", sessionController.ListCourseSessions)
			courses.GET("/:courseId/calendar-feed", feedController.CalendarFeed)
		}

		sessions := authenticated.Group("/sessions")
		{
			sessions.GET("/:sessionId", sessionController.GetSessionByID)

			// Registration flow is open to every authenticated student
			sessions.POST("/:sessionId/registrations", registrationController.Register)
			sessions.GET("/:sessionId/registrations/status", registrationController.Status)

			// Catalog management is staff only
			sessionsStaffProtected := sessions.Group("")
			sessionsStaffProtected.Use(authMiddleware.RoleRequired(auth.RoleStaff))
			{
				sessionsStaffProtected.POST("", sessionController.CreateSession)
				sessionsStaffProtected.PATCH("/:sessionId/capacity", sessionController.IncreaseCapacity)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/ping", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
