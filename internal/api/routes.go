package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"resumeapi/internal/api/middleware"
	"resumeapi/internal/config"
	"resumeapi/internal/controller"
)

// Services 汇总 RegisterRoutes 装配处理器所需的依赖。
type Services struct {
	Auth   *controller.AuthController
	Resume *controller.ResumeController
	Media  MediaDeps
	Config config.ResumeConfig
	Logger *slog.Logger
}

// RegisterRoutes 注册全部 API 路由。GET 公开（/users 除外），写操作需要 Bearer 令牌。
func RegisterRoutes(router *gin.Engine, svc Services) {
	authHandler := NewAuthHandler(svc.Auth, svc.Logger)
	resumeHandler := NewResumeHandler(svc.Resume)
	mediaHandler := NewMediaHandler(svc.Media, svc.Config, svc.Logger)
	authMiddleware := middleware.AuthMiddleware(svc.Auth)

	router.POST("/token", authHandler.Token)
	router.GET("/", resumeHandler.GetFullResume)

	router.GET("/basic_info", resumeHandler.GetBasicInfo)
	router.GET("/basic_info/:fact", resumeHandler.GetBasicInfoItem)
	router.GET("/education", resumeHandler.GetEducationHistory)
	router.GET("/education/:id", resumeHandler.GetEducationItem)
	router.GET("/experience", resumeHandler.GetExperience)
	router.GET("/experience/:id", resumeHandler.GetExperienceItem)
	router.GET("/experience/detail/:id", resumeHandler.GetJobDetail)
	router.GET("/experience/highlight/:id", resumeHandler.GetJobHighlight)
	router.GET("/certifications", resumeHandler.GetCertifications)
	router.GET("/certifications/:cert", resumeHandler.GetCertification)
	router.GET("/side_projects", resumeHandler.GetSideProjects)
	router.GET("/side_projects/:title", resumeHandler.GetSideProject)
	router.GET("/interests", resumeHandler.GetAllInterests)
	router.GET("/interests/:category", resumeHandler.GetInterests)
	router.GET("/social_links", resumeHandler.GetSocialLinks)
	router.GET("/social_links/:platform", resumeHandler.GetSocialLink)
	router.GET("/skills", resumeHandler.GetSkills)
	router.GET("/skills/:skill", resumeHandler.GetSkill)
	router.GET("/competencies", resumeHandler.GetCompetencies)
	router.GET("/competencies/:competency", resumeHandler.GetCompetency)
	router.GET("/preferences", resumeHandler.GetPreferences)
	router.GET("/preferences/:preference", resumeHandler.GetPreference)
	router.GET("/pdf", mediaHandler.GetPDF)
	router.GET("/html", mediaHandler.GetHTML)

	users := router.Group("/users", authMiddleware)
	{
		users.GET("", authHandler.ListUsers)
		users.GET("/me", authHandler.Me)
	}

	protected := router.Group("", authMiddleware)
	{
		protected.PUT("/basic_info", resumeHandler.UpsertBasicInfoItem)
		protected.DELETE("/basic_info/:fact", resumeHandler.DeleteBasicInfoItem)

		protected.PUT("/education", resumeHandler.UpsertEducationItem)
		protected.DELETE("/education/:id", resumeHandler.DeleteEducationItem)

		protected.PUT("/experience", resumeHandler.UpsertExperienceItem)
		protected.DELETE("/experience/:id", resumeHandler.DeleteExperienceItem)
		protected.PUT("/experience/detail", resumeHandler.UpsertJobDetail)
		protected.DELETE("/experience/detail/:id", resumeHandler.DeleteJobDetail)
		protected.PUT("/experience/highlight", resumeHandler.UpsertJobHighlight)
		protected.DELETE("/experience/highlight/:id", resumeHandler.DeleteJobHighlight)

		protected.PUT("/certifications", resumeHandler.UpsertCertification)
		protected.DELETE("/certifications/:cert", resumeHandler.DeleteCertification)

		protected.PUT("/side_projects", resumeHandler.UpsertSideProject)
		protected.DELETE("/side_projects/:title", resumeHandler.DeleteSideProject)

		protected.PUT("/interests/:category", resumeHandler.UpsertInterest)
		protected.DELETE("/interests/:interest", resumeHandler.DeleteInterest)

		protected.PUT("/social_links", resumeHandler.UpsertSocialLink)
		protected.DELETE("/social_links/:platform", resumeHandler.DeleteSocialLink)

		protected.PUT("/skills", resumeHandler.UpsertSkill)
		protected.DELETE("/skills/:skill", resumeHandler.DeleteSkill)

		protected.PUT("/competencies", resumeHandler.UpsertCompetency)
		protected.DELETE("/competencies/:competency", resumeHandler.DeleteCompetency)

		protected.PUT("/preferences", resumeHandler.UpsertPreference)
		protected.DELETE("/preferences/:preference", resumeHandler.DeletePreference)

		protected.PUT("/pdf", mediaHandler.UploadPDF)
		protected.DELETE("/pdf", mediaHandler.DeletePDF)
		protected.POST("/pdf/render", mediaHandler.RenderPDF)
	}
}
