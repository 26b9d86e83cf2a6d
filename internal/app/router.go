package app

import (
	"quizhub_backend/docs"
	"quizhub_backend/internal/config"
	"quizhub_backend/internal/middleware"
	"quizhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/signup", c.auth.Signup)
		public.POST("/auth/signin", c.auth.Signin)
		public.GET("/quiz-categories", c.quiz.ListCategories)
		public.GET("/quiz-questions/:categoryId", c.quiz.GetQuestions)
		public.POST("/generate-quiz", c.generator.GenerateQuiz)
		public.POST("/seed-data", c.quiz.SeedData)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.POST("/quiz-attempts", c.attempt.CreateAttempt)
		authGroup.GET("/quiz-attempts", c.attempt.ListAttempts)
		authGroup.GET("/quiz-stats", c.attempt.GetStats)
		authGroup.POST("/ai-analysis", c.attempt.CreateAnalysis)

		// 服务端会话
		sessions := authGroup.Group("/quiz-sessions")
		{
			sessions.POST("", c.session.StartSession)
			sessions.GET("/:id", c.session.GetSession)
			sessions.POST("/:id/answer", c.session.Answer)
			sessions.POST("/:id/advance", c.session.Advance)
			sessions.POST("/:id/previous", c.session.Previous)
		}
	}
}
