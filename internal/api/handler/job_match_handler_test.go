package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-analyzer-go/internal/config"
	"resume-analyzer-go/internal/job"
	"resume-analyzer-go/internal/parser"
	"resume-analyzer-go/internal/scorer"
	"resume-analyzer-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSearchTestApp 构造带真实职位搜索客户端的测试服务
// adzunaURL 指向本地mock的Adzuna接口
func newSearchTestApp(t *testing.T, adzunaURL string) *server.Hertz {
	t.Helper()

	cfg := &config.Config{}
	cfg.Upload.Dir = t.TempDir()
	cfg.Adzuna.Country = "gb"
	cfg.Adzuna.ResultsPerPage = 10

	resumeParser, err := parser.NewResumeParser(context.Background(),
		parser.WithPDFExtractor(&fakeTextExtractor{text: handlerResumeText}),
	)
	require.NoError(t, err, "创建解析器不应失败")

	fetcher, err := job.NewFetcher(config.AdzunaConfig{
		AppID:   "test-id",
		AppKey:  "test-key",
		BaseURL: adzunaURL,
	})
	require.NoError(t, err, "创建职位搜索客户端不应失败")

	jobMatchHandler := NewJobMatchHandler(cfg, resumeParser, scorer.NewATSScorer(), fetcher, nil)
	h := server.New()
	h.GET("/api/v1/jobs/search", jobMatchHandler.HandleSearchJobs)
	return h
}

func TestHandleSearchJobsSuccess(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	adzuna := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"what":             r.URL.Query().Get("what"),
			"results_per_page": r.URL.Query().Get("results_per_page"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"count": 7,
			"results": [
				{
					"title": "Go Developer",
					"company": {"display_name": "Acme"},
					"location": {"display_name": "London"},
					"description": "Build backend services"
				},
				{
					"title": "Platform Engineer",
					"company": {"display_name": "Globex"},
					"location": {"display_name": "Leeds"},
					"description": "Run Kubernetes clusters"
				}
			]
		}`))
	}))
	defer adzuna.Close()

	h := newSearchTestApp(t, adzuna.URL)
	w := ut.PerformRequest(h.Engine, http.MethodGet, "/api/v1/jobs/search?keywords=go+developer", nil)
	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode(), "成功搜索应该返回200")

	var result types.JobSearchResult
	require.NoError(t, json.Unmarshal(resp.Body(), &result), "响应应该是合法JSON")
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Count, "count应该等于返回的职位数")
	assert.Len(t, result.Jobs, 2)
	assert.Equal(t, 7, result.TotalResults, "total_results应该透传上游总数")
	assert.Equal(t, "Go Developer", result.Jobs[0].Title)

	assert.Equal(t, "/gb/search/1", gotPath, "未指定location时应该使用默认国家")
	assert.Equal(t, "go developer", gotQuery["what"], "关键词应该传给上游")
	assert.Equal(t, "10", gotQuery["results_per_page"], "未指定时应该使用默认每页数量")
}

func TestHandleSearchJobsMissingKeywords(t *testing.T) {
	h := newSearchTestApp(t, "http://127.0.0.1:0")

	w := ut.PerformRequest(h.Engine, http.MethodGet, "/api/v1/jobs/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode(), "缺少keywords应该返回400")
}

func TestHandleSearchJobsClampsResultsPerPage(t *testing.T) {
	var gotPerPage string
	adzuna := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPerPage = r.URL.Query().Get("results_per_page")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer adzuna.Close()

	h := newSearchTestApp(t, adzuna.URL)
	w := ut.PerformRequest(h.Engine, http.MethodGet, "/api/v1/jobs/search?keywords=go&results_per_page=500", nil)
	assert.Equal(t, http.StatusOK, w.Result().StatusCode())
	assert.Equal(t, "50", gotPerPage, "每页数量应该被钳制到50")
}

func TestHandleSearchJobsUpstreamFailure(t *testing.T) {
	adzuna := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer adzuna.Close()

	h := newSearchTestApp(t, adzuna.URL)
	w := ut.PerformRequest(h.Engine, http.MethodGet, "/api/v1/jobs/search?keywords=go", nil)
	resp := w.Result()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode(), "上游失败应该返回500")

	var body map[string]string
	require.NoError(t, json.Unmarshal(resp.Body(), &body))
	assert.Equal(t, "Invalid API credentials. Check your Adzuna configuration", body["error"],
		"错误消息应该透传分类后的失败原因")
}

func TestHandleSearchJobsUnavailableWithoutCredentials(t *testing.T) {
	h := newTestApp(t)

	w := ut.PerformRequest(h.Engine, http.MethodGet, "/api/v1/jobs/search?keywords=go", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Result().StatusCode(),
		"未配置Adzuna凭证时应该返回503")
}
