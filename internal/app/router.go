package app

import (
	"arrurru_training_backend/docs"
	"arrurru_training_backend/internal/config"
	"arrurru_training_backend/internal/middleware"
	"arrurru_training_backend/internal/model"
	"arrurru_training_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerStaffRoutes(router, c, cfg)
	a.registerManagerRoutes(router, c, cfg)
}

// Public routes need no token: login, invitation redemption, access requests
// and the health check.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/login", c.auth.Login)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/access-request", c.report.AccessRequest)
	}
}

// Staff routes cover everything a logged-in employee does: reading content,
// taking exams and tests, tracking progress, requesting a certificate.
func (a *App) registerStaffRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.GET("/users/me", c.user.Me)
		api.PATCH("/users/me", c.user.UpdateProfile)
		api.POST("/users/me/password", c.user.ChangePassword)

		api.GET("/content", c.content.List)
		api.GET("/content/slug/:slug", c.content.BySlug)
		api.GET("/content/:id", c.content.Get)

		api.GET("/exams/:contentId", c.exam.State)
		api.POST("/exams/:contentId/start", c.exam.Start)
		api.POST("/exams/:contentId/answer", c.exam.Answer)
		api.POST("/exams/:contentId/next", c.exam.Next)
		api.POST("/exams/:contentId/previous", c.exam.Previous)
		api.POST("/exams/:contentId/restart", c.exam.Restart)

		api.POST("/tests/:contentId/submit", c.test.Submit)

		api.GET("/progress", c.statistics.MyProgress)
		api.GET("/progress/exam-results", c.statistics.MyExamResults)

		api.GET("/certificates/eligibility", c.certificate.Eligibility)
		api.POST("/certificates/request", c.certificate.Request)
		api.GET("/certificates/status", c.certificate.Status)

		api.POST("/error-report", c.report.ErrorReport)
	}
}

// Manager routes carry the admin surface: content authoring, invitations,
// accounts, review queues, statistics and uploads.
func (a *App) registerManagerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Manager))
	{
		admin.POST("/content", c.content.Save)
		admin.DELETE("/content/:id", c.content.Delete)

		admin.POST("/invitations", c.auth.Invite)
		admin.GET("/invitations", c.auth.ListInvitations)
		admin.DELETE("/invitations/:id", c.auth.RevokeInvitation)

		admin.GET("/users", c.user.List)
		admin.PATCH("/users/:id", c.user.Update)
		admin.DELETE("/users/:id", c.user.Delete)

		admin.GET("/test-results", c.test.List)
		admin.POST("/test-results/:id/review", c.test.MarkReviewed)

		admin.GET("/certificates", c.certificate.List)
		admin.PATCH("/certificates/:userId", c.certificate.Approve)
		admin.DELETE("/certificates/:userId", c.certificate.Delete)

		admin.GET("/statistics/users", c.statistics.PerUser)
		admin.GET("/statistics/topics", c.statistics.PerTopic)
		admin.GET("/statistics/activity", c.statistics.RecentActivity)
		admin.GET("/statistics/leaderboard", c.statistics.Leaderboard)
		admin.GET("/statistics/export", c.statistics.ExportCSV)

		admin.POST("/upload", c.upload.Upload)
	}
}
