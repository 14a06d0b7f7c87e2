package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/examadmission/internal/app/controllers"
	"github.com/yigit/examadmission/internal/middleware"
	"github.com/yigit/examadmission/internal/pkg/metrics"
)

// Controllers groups every HTTP handler set mounted by SetupRouter
type Controllers struct {
	Auth         *controllers.AuthController
	Users        *controllers.UserController
	Exams        *controllers.ExamController
	Applications *controllers.ApplicationController
	Rooms        *controllers.RoomController
	Scores       *controllers.ScoreController
	Admission    *controllers.AdmissionController
	Health       *controllers.HealthController
}

// SetupRouter configures all application routes.
// Role checks live in the services; the router only separates public and authenticated routes.
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter *middleware.RateLimiter,
	m *metrics.Metrics,
) {
	router.GET("/health", c.Health.Health)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", c.Auth.Register)
		authGroup.POST("/login", loginLimiter.Handler(), c.Auth.Login)
		// Logout reads the token itself so an unknown session answers 404
		authGroup.POST("/logout", c.Auth.Logout)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.Authenticate())

	authenticated.GET("/auth/me", c.Auth.Me)

	exams := authenticated.Group("/exams")
	{
		exams.GET("", c.Exams.ListExams)
		exams.GET("/:id", c.Exams.GetExam)
		exams.POST("", c.Exams.CreateExam)
		exams.PUT("/:id", c.Exams.UpdateExam)
	}

	applications := authenticated.Group("/applications")
	{
		applications.POST("", c.Applications.Submit)
		applications.GET("/me", c.Applications.ListMine)
		applications.POST("/:id/decision", c.Applications.Decide)
	}

	rooms := authenticated.Group("/rooms")
	{
		rooms.POST("/assign", c.Rooms.AssignRooms)
		rooms.GET("/me", c.Rooms.MySeats)
	}

	authenticated.POST("/scores", c.Scores.EnterScore)
	authenticated.PUT("/thresholds", c.Scores.SetThreshold)

	admission := authenticated.Group("/admission")
	{
		admission.GET("/me", c.Admission.MyVerdict)
		admission.GET("/applications/:id", c.Admission.ApplicationVerdict)
	}
	authenticated.GET("/results/me", c.Admission.MyResults)

	admin := authenticated.Group("/admin")
	{
		admin.POST("/users", c.Users.CreateUser)
		admin.POST("/users/:id/reset-password", c.Users.ResetPassword)
	}
}
