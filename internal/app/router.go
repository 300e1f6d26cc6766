package app

import (
	"math_edu_backend/docs"
	"math_edu_backend/internal/config"
	"math_edu_backend/internal/middleware"
	"math_edu_backend/internal/model"
	"math_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)

	// 题目浏览
	rg.GET("/problems", c.problem.ListProblems)
	rg.GET("/problems/:id", c.problem.GetProblem)
	rg.GET("/tags", c.tag.ListTags)

	// 回答与进度
	rg.POST("/progress/submit", c.progress.SubmitAnswer)
	rg.GET("/progress", c.progress.GetProgress)
	rg.GET("/progress/answers", c.progress.GetAnswers)
	rg.GET("/progress/stats", c.progress.GetStats)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		// 题目管理
		teacher.POST("/problems", c.problem.CreateProblem)
		teacher.PUT("/problems/:id", c.problem.UpdateProblem)
		teacher.DELETE("/problems/:id", c.problem.DeleteProblem)
		teacher.POST("/problems/:id/choices", c.problem.AddChoice)
		teacher.PUT("/choices/:id", c.problem.UpdateChoice)
		teacher.DELETE("/choices/:id", c.problem.DeleteChoice)

		// 标签管理
		teacher.POST("/tags", c.tag.CreateTag)
		teacher.DELETE("/tags/:id", c.tag.DeleteTag)

		// 按题目的回答统计
		teacher.GET("/teacher/problems/:id/stats", c.problem.GetProblemStats)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		// 用户列表和详情：允许管理员和老师访问
		admin.GET("/users", middleware.RoleMiddleware(model.Admin, model.Teacher), c.user.GetUsers)
		admin.GET("/users/:id", middleware.RoleMiddleware(model.Admin, model.Teacher), c.user.GetUser)

		// 其他接口：仅限管理员访问
		adminOnly := admin.Group("/")
		adminOnly.Use(middleware.RoleMiddleware(model.Admin))
		{
			adminOnly.PATCH("/users/:id/disable", c.user.DisableUser)
		}
	}
}
