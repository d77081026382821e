package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"resume-analyzer-go/internal/config"
	"resume-analyzer-go/internal/tracing"
	"resume-analyzer-go/internal/types"

	"go.opentelemetry.io/otel"
)

var fetcherTracer = otel.Tracer("resume-analyzer-go/job/fetcher")

// Fetcher Adzuna职位搜索API客户端
// 失败被分类为确定性的错误描述写入结果，而不是返回Go错误：
// 对上游API来说搜索失败是数据，不是异常
type Fetcher struct {
	appID   string
	appKey  string
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// FetcherOption 定义配置选项函数
type FetcherOption func(*Fetcher)

// WithFetcherTimeout 配置HTTP客户端超时时间
func WithFetcherTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.client.Timeout = timeout
	}
}

// WithFetcherLogger 配置自定义日志记录器
func WithFetcherLogger(logger *log.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher 创建职位搜索客户端
func NewFetcher(cfg config.AdzunaConfig, options ...FetcherOption) (*Fetcher, error) {
	if cfg.AppID == "" || cfg.AppKey == "" {
		return nil, fmt.Errorf("Adzuna API凭证未配置")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.adzuna.com/v1/api/jobs"
	}

	f := &Fetcher{
		appID:   cfg.AppID,
		appKey:  cfg.AppKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  log.New(os.Stderr, "[JobFetcher] ", log.LstdFlags),
	}
	for _, option := range options {
		option(f)
	}
	return f, nil
}

// adzunaResponse Adzuna搜索接口的原始响应（只取用到的字段）
type adzunaResponse struct {
	Count   int `json:"count"`
	Results []struct {
		Title   string `json:"title"`
		Company struct {
			DisplayName string `json:"display_name"`
		} `json:"company"`
		Location struct {
			DisplayName string `json:"display_name"`
		} `json:"location"`
		Description  string   `json:"description"`
		SalaryMin    *float64 `json:"salary_min"`
		SalaryMax    *float64 `json:"salary_max"`
		ContractType string   `json:"contract_type"`
		RedirectURL  string   `json:"redirect_url"`
		Created      string   `json:"created"`
	} `json:"results"`
}

// SearchJobs 按关键词搜索职位
// location为国家代码（gb、de、fr等），page从1开始
func (f *Fetcher) SearchJobs(ctx context.Context, keywords, location string, resultsPerPage, page int) *types.JobSearchResult {
	ctx, span := fetcherTracer.Start(ctx, "Fetcher.SearchJobs")
	defer span.End()

	if page < 1 {
		page = 1
	}

	endpoint := fmt.Sprintf("%s/%s/search/%d", f.baseURL, location, page)
	params := url.Values{}
	params.Set("app_id", f.appID)
	params.Set("app_key", f.appKey)
	params.Set("results_per_page", strconv.Itoa(resultsPerPage))
	params.Set("what", keywords)
	params.Set("content-type", "application/json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return failedSearch(fmt.Sprintf("Request failed: %v", err))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeJobAPI)
		return failedSearch(classifyTransportError(err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// 继续解析
	case http.StatusUnauthorized:
		tracing.RecordHTTPError(span, nil, resp.StatusCode)
		return failedSearch("Invalid API credentials. Check your Adzuna configuration")
	case http.StatusTooManyRequests:
		tracing.RecordHTTPError(span, nil, resp.StatusCode)
		return failedSearch("Rate limit exceeded. Try again later")
	default:
		tracing.RecordHTTPError(span, nil, resp.StatusCode)
		return failedSearch(fmt.Sprintf("API returned status code %d", resp.StatusCode))
	}

	var data adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeJobAPI)
		return failedSearch(fmt.Sprintf("Request failed: %v", err))
	}

	jobs := make([]types.Job, 0, len(data.Results))
	for _, result := range data.Results {
		jobs = append(jobs, types.Job{
			Title:        valueOr(result.Title, "N/A"),
			Company:      valueOr(result.Company.DisplayName, "N/A"),
			Location:     valueOr(result.Location.DisplayName, "N/A"),
			Description:  valueOr(result.Description, "N/A"),
			SalaryMin:    result.SalaryMin,
			SalaryMax:    result.SalaryMax,
			ContractType: valueOr(result.ContractType, "N/A"),
			URL:          valueOr(result.RedirectURL, "N/A"),
			Created:      valueOr(result.Created, "N/A"),
		})
	}

	f.logger.Printf("职位搜索完成: 关键词=%q 国家=%s 返回=%d 总计=%d", keywords, location, len(jobs), data.Count)
	return &types.JobSearchResult{
		Success:      true,
		Count:        len(jobs),
		Jobs:         jobs,
		TotalResults: data.Count,
	}
}

// classifyTransportError 把网络层错误归入确定性的描述
func classifyTransportError(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return "Request timed out. Check your internet connection"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timed out. Check your internet connection"
	}
	if errors.As(err, &urlErr) {
		return "Connection error. Check your internet connection"
	}
	return fmt.Sprintf("Request failed: %v", err)
}

func failedSearch(reason string) *types.JobSearchResult {
	return &types.JobSearchResult{
		Success: false,
		Jobs:    []types.Job{},
		Error:   reason,
	}
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
