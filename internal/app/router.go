package app

import (
	"sat_tutor_backend/internal/config"
	"sat_tutor_backend/internal/middleware"
	"sat_tutor_backend/internal/model"
	"sat_tutor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/profile", c.auth.UpdateProfile)

		authGroup.GET("/tests", c.homework.ListTests)

		authGroup.GET("/homework", c.homework.ListHomework)
		authGroup.POST("/homework/submit-mistakes", c.homework.SubmitMistakes)
		authGroup.GET("/homework/quiz/:quizId", c.homework.GetQuiz)
		authGroup.POST("/homework/quiz/:quizId/submit", c.homework.SubmitQuiz)

		authGroup.GET("/remediation", c.remediation.GetRemediation)
		authGroup.POST("/remediation/submit", c.remediation.SubmitFollowUp)

		authGroup.GET("/videos", c.video.ListVideos)
		authGroup.GET("/videos/recent", c.video.RecentVideos)
		authGroup.GET("/videos/:id", c.video.GetVideo)

		authGroup.GET("/progress", c.progress.GetSummary)
		authGroup.GET("/progress/skills", c.progress.GetSkillBreakdown)

		tutor := authGroup.Group("/tutor")
		tutor.Use(middleware.RoleMiddleware(model.Tutor, model.Admin))
		{
			tutor.GET("/students/:id/progress", c.progress.GetStudentProgress)
		}
	}
}
