package handler

import (
	"context"
	"strconv"

	"resume-analyzer-go/internal/config"
	"resume-analyzer-go/internal/job"
	"resume-analyzer-go/internal/logger"
	"resume-analyzer-go/internal/parser"
	"resume-analyzer-go/internal/scorer"
	"resume-analyzer-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// JobMatchHandler 职位匹配处理器：上传简历并找出语义上最匹配的职位
type JobMatchHandler struct {
	*ResumeHandler
	fetcher *job.Fetcher
	matcher *job.Matcher
}

// NewJobMatchHandler 创建职位匹配处理器
// fetcher/matcher 允许为nil（未配置凭证时），此时接口返回503
func NewJobMatchHandler(cfg *config.Config, resumeParser *parser.ResumeParser, atsScorer *scorer.ATSScorer, fetcher *job.Fetcher, matcher *job.Matcher) *JobMatchHandler {
	return &JobMatchHandler{
		ResumeHandler: NewResumeHandler(cfg, resumeParser, atsScorer),
		fetcher:       fetcher,
		matcher:       matcher,
	}
}

// MatchJobsResponse POST /match-jobs 的响应
type MatchJobsResponse struct {
	Success           bool             `json:"success"`
	Matches           []types.JobMatch `json:"matches"`
	TotalJobsAnalyzed int              `json:"total_jobs_analyzed"`
	AverageScore      float64          `json:"average_score"`
	Message           string           `json:"message,omitempty"`
}

// HandleMatchJobs 处理简历上传+职位匹配请求
// POST /api/v1/match-jobs
func (h *JobMatchHandler) HandleMatchJobs(c context.Context, ctx *app.RequestContext) {
	if h.fetcher == nil || h.matcher == nil {
		ctx.JSON(consts.StatusServiceUnavailable, utils.H{"error": "职位匹配功能未启用，请配置Adzuna凭证和Embedding API密钥"})
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "缺少上传文件"})
		return
	}
	if !hasSupportedExtension(fileHeader.Filename) {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "不支持的文件类型，仅支持PDF和DOCX"})
		return
	}

	keywords := formOrQuery(ctx, "keywords")
	if keywords == "" {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "缺少搜索关键词 keywords"})
		return
	}
	location := formOrQuery(ctx, "location")
	if location == "" {
		location = h.cfg.Adzuna.Country
	}
	resultsPerPage := clampInt(intParam(ctx, "results_per_page", h.cfg.Adzuna.ResultsPerPage), 1, 50)
	topMatches := clampInt(intParam(ctx, "top_matches", h.cfg.Matcher.TopN), 1, 20)

	filePath, err := h.saveUploadedFile(fileHeader)
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("保存上传文件失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "保存上传文件失败"})
		return
	}
	defer h.cleanupFile(filePath)

	resume, err := h.parser.ParseResume(c, filePath)
	if err != nil {
		respondParseError(ctx, err)
		return
	}

	searchResult := h.fetcher.SearchJobs(c, keywords, location, resultsPerPage, 1)
	if !searchResult.Success {
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "Job fetching error: " + searchResult.Error})
		return
	}
	if len(searchResult.Jobs) == 0 {
		ctx.JSON(consts.StatusOK, MatchJobsResponse{
			Success: false,
			Matches: []types.JobMatch{},
			Message: "No jobs found for the given keywords and location.",
		})
		return
	}

	matchResult, err := h.matcher.MatchResumeToJobs(c, resume, searchResult.Jobs, topMatches)
	if err != nil {
		logger.Error().Err(err).Msg("职位匹配失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "Job matching error: " + err.Error()})
		return
	}

	ctx.JSON(consts.StatusOK, MatchJobsResponse{
		Success:           true,
		Matches:           matchResult.Matches,
		TotalJobsAnalyzed: matchResult.TotalJobsAnalyzed,
		AverageScore:      matchResult.AverageScore,
		Message:           "Jobs matched successfully",
	})
}

// HandleSearchJobs 处理不带简历的职位搜索请求
// GET /api/v1/jobs/search
func (h *JobMatchHandler) HandleSearchJobs(c context.Context, ctx *app.RequestContext) {
	if h.fetcher == nil {
		ctx.JSON(consts.StatusServiceUnavailable, utils.H{"error": "职位搜索功能未启用，请配置Adzuna凭证"})
		return
	}

	keywords := ctx.Query("keywords")
	if keywords == "" {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "缺少搜索关键词 keywords"})
		return
	}
	location := ctx.Query("location")
	if location == "" {
		location = h.cfg.Adzuna.Country
	}
	resultsPerPage := clampInt(intParam(ctx, "results_per_page", h.cfg.Adzuna.ResultsPerPage), 1, 50)

	result := h.fetcher.SearchJobs(c, keywords, location, resultsPerPage, 1)
	if !result.Success {
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": result.Error})
		return
	}

	ctx.JSON(consts.StatusOK, result)
}

// formOrQuery 参数可以放在表单或查询串里
func formOrQuery(ctx *app.RequestContext, key string) string {
	if v := ctx.PostForm(key); v != "" {
		return v
	}
	return ctx.Query(key)
}

func intParam(ctx *app.RequestContext, key string, fallback int) int {
	raw := formOrQuery(ctx, key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
