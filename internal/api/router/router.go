package router

import (
	"context"
	"time"

	"resume-analyzer-go/internal/api/handler"
	"resume-analyzer-go/internal/constants"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, resumeHandler *handler.ResumeHandler, jobMatchHandler *handler.JobMatchHandler) {
	// 根路径：服务信息
	h.GET("/", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{
			"message": "AI Resume Analyzer API",
			"version": constants.ServiceVersion,
			"endpoints": utils.H{
				"health":             constants.APIPrefix + "/health",
				"upload_and_analyze": constants.APIPrefix + "/analyze",
				"match_jobs":         constants.APIPrefix + "/match-jobs",
				"search_jobs":        constants.APIPrefix + "/jobs/search",
			},
		})
	})

	api := h.Group(constants.APIPrefix)

	api.POST("/analyze", resumeHandler.HandleAnalyze)
	api.POST("/match-jobs", jobMatchHandler.HandleMatchJobs)
	api.GET("/jobs/search", jobMatchHandler.HandleSearchJobs)

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
}
