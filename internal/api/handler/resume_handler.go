package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"resume-analyzer-go/internal/config"
	"resume-analyzer-go/internal/logger"
	"resume-analyzer-go/internal/parser"
	"resume-analyzer-go/internal/scorer"
	"resume-analyzer-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/gofrs/uuid/v5"
)

// ResumeHandler 简历分析处理器，协调上传文件的解析和评分
type ResumeHandler struct {
	cfg    *config.Config
	parser *parser.ResumeParser
	scorer *scorer.ATSScorer
}

// NewResumeHandler 创建简历分析处理器
func NewResumeHandler(cfg *config.Config, resumeParser *parser.ResumeParser, atsScorer *scorer.ATSScorer) *ResumeHandler {
	return &ResumeHandler{
		cfg:    cfg,
		parser: resumeParser,
		scorer: atsScorer,
	}
}

// ParsedData 返回给客户端的解析结果摘要
type ParsedData struct {
	Skills      []string          `json:"skills"`
	ContactInfo types.ContactInfo `json:"contact_info"`
	Entities    types.Entities    `json:"entities"`
	Education   []string          `json:"education"`
	WordCount   int               `json:"word_count"`
}

// AnalyzeResponse POST /analyze 的响应
type AnalyzeResponse struct {
	Success    bool              `json:"success"`
	ATSScore   int               `json:"ats_score"`
	ATSGrade   string            `json:"ats_grade"`
	Feedback   types.ATSFeedback `json:"feedback"`
	ParsedData ParsedData        `json:"parsed_data"`
	Message    string            `json:"message,omitempty"`
}

// HandleAnalyze 处理简历上传与分析请求
// POST /api/v1/analyze
func (h *ResumeHandler) HandleAnalyze(c context.Context, ctx *app.RequestContext) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "缺少上传文件"})
		return
	}

	// 扩展名校验先于任何保存和解析
	if !hasSupportedExtension(fileHeader.Filename) {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "不支持的文件类型，仅支持PDF和DOCX"})
		return
	}

	filePath, err := h.saveUploadedFile(fileHeader)
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("保存上传文件失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "保存上传文件失败"})
		return
	}
	// 无论成功失败都清理临时文件
	defer h.cleanupFile(filePath)

	resume, err := h.parser.ParseResume(c, filePath)
	if err != nil {
		respondParseError(ctx, err)
		return
	}

	result := h.scorer.CalculateATSScore(resume)

	ctx.JSON(consts.StatusOK, AnalyzeResponse{
		Success:  true,
		ATSScore: result.Score,
		ATSGrade: result.Grade,
		Feedback: result.Feedback,
		ParsedData: ParsedData{
			Skills:      resume.Skills,
			ContactInfo: resume.ContactInfo,
			Entities:    resume.Entities,
			Education:   resume.Education,
			WordCount:   resume.WordCount,
		},
		Message: "Resume analyzed successfully",
	})
}

// saveUploadedFile 把上传内容落到临时目录，文件名用UUIDv7避免冲突
func (h *ResumeHandler) saveUploadedFile(fileHeader *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.cfg.Upload.Dir, 0o755); err != nil {
		return "", fmt.Errorf("创建上传目录失败: %w", err)
	}

	uuidV7, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("生成UUIDv7失败: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(h.cfg.Upload.Dir, fmt.Sprintf("resume_%s%s", uuidV7.String(), ext))

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("创建临时文件失败: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("写入临时文件失败: %w", err)
	}
	return dstPath, nil
}

func (h *ResumeHandler) cleanupFile(filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Str("file", filePath).Msg("清理临时文件失败")
	}
}

// respondParseError 解析错误分类：输入类错误返回400，其余500
func respondParseError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, parser.ErrUnsupportedFormat),
		errors.Is(err, parser.ErrEmptyContent),
		errors.Is(err, parser.ErrExtractionFailed),
		errors.Is(err, parser.ErrResumeNotFound):
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
	default:
		logger.Error().Err(err).Msg("简历解析失败")
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": fmt.Sprintf("Internal server error: %v", err)})
	}
}

// hasSupportedExtension 仅接受 .pdf / .docx（大小写不敏感）
func hasSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".pdf" || ext == ".docx"
}
