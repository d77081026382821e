package job

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strings"

	"resume-analyzer-go/internal/constants"
	"resume-analyzer-go/internal/types"

	"github.com/cloudwego/eino/components/embedding"
)

// 简历/职位描述参与向量化的文本截断长度
const (
	resumeTextSampleLen     = 1000
	jobDescriptionSampleLen = 500
)

// ErrNoJobs 没有可匹配的职位
var ErrNoJobs = errors.New("没有可匹配的职位")

// TextEmbedder 文本向量化能力接口（eino规范）
type TextEmbedder interface {
	EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error)
}

// Matcher 基于语义相似度的职位匹配器
// 把简历和职位描述分别向量化，按余弦相似度排序
type Matcher struct {
	embedder TextEmbedder
	logger   *log.Logger
}

// MatcherOption 定义配置选项函数
type MatcherOption func(*Matcher)

// WithMatcherLogger 配置自定义日志记录器
func WithMatcherLogger(logger *log.Logger) MatcherOption {
	return func(m *Matcher) {
		m.logger = logger
	}
}

// NewMatcher 创建职位匹配器
func NewMatcher(embedder TextEmbedder, options ...MatcherOption) (*Matcher, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder不能为空")
	}
	m := &Matcher{
		embedder: embedder,
		logger:   log.New(os.Stderr, "[JobMatcher] ", log.LstdFlags),
	}
	for _, option := range options {
		option(m)
	}
	return m, nil
}

// MatchResumeToJobs 为简历找出最匹配的职位
// 一次批量向量化：第一条是简历画像，其余是各职位文本；
// 按余弦相似度×100打分排序，返回Top N，平均分基于全部职位
func (m *Matcher) MatchResumeToJobs(ctx context.Context, resume *types.ParsedResume, jobs []types.Job, topN int) (*types.MatchResult, error) {
	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}
	if topN <= 0 {
		topN = 10
	}

	texts := make([]string, 0, len(jobs)+1)
	texts = append(texts, buildResumeProfile(resume))
	for _, j := range jobs {
		texts = append(texts, buildJobText(j))
	}

	vectors, err := m.embedder.EmbedStrings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("向量化失败: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("向量化结果数量不匹配: 期望 %d, 实际 %d", len(texts), len(vectors))
	}

	resumeVec := vectors[0]
	matches := make([]types.JobMatch, 0, len(jobs))
	var totalScore float64
	for i, j := range jobs {
		// 平均分基于未舍入的原始分，只在最后对聚合值舍入一次
		raw := cosineSimilarity(resumeVec, vectors[i+1]) * 100
		totalScore += raw
		score := round2(raw)
		matches = append(matches, types.JobMatch{
			Job:        j,
			MatchScore: score,
			MatchGrade: matchGrade(score),
		})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].MatchScore > matches[b].MatchScore
	})
	if len(matches) > topN {
		matches = matches[:topN]
	}

	m.logger.Printf("职位匹配完成: 分析 %d 个职位, 返回前 %d 个", len(jobs), len(matches))
	return &types.MatchResult{
		Matches:           matches,
		TotalJobsAnalyzed: len(jobs),
		AverageScore:      round2(totalScore / float64(len(jobs))),
	}, nil
}

// buildResumeProfile 把简历的关键部分拼成一段用于向量化的文本
func buildResumeProfile(resume *types.ParsedResume) string {
	var parts []string
	if len(resume.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(resume.Skills, " "))
	}
	if len(resume.Education) > 0 {
		parts = append(parts, "Education: "+strings.Join(resume.Education, " "))
	}
	if resume.RawText != "" {
		parts = append(parts, truncateRunes(resume.RawText, resumeTextSampleLen))
	}
	return strings.Join(parts, " ")
}

// buildJobText 职位标题加描述样本
func buildJobText(j types.Job) string {
	return j.Title + ". " + truncateRunes(j.Description, jobDescriptionSampleLen)
}

// matchGrade 匹配分到等级
func matchGrade(score float64) string {
	switch {
	case score >= 80:
		return constants.MatchGradeExcellent
	case score >= 70:
		return constants.MatchGradeGood
	case score >= 60:
		return constants.MatchGradeFair
	default:
		return constants.MatchGradePoor
	}
}

// cosineSimilarity 余弦相似度 (A·B) / (||A||·||B||)
// 任一向量为零向量时返回0
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
