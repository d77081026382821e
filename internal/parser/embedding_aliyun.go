package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"resume-analyzer-go/internal/config"
	"resume-analyzer-go/internal/tracing"

	"github.com/cloudwego/eino/components/embedding"
	"go.opentelemetry.io/otel"
)

var embedTracer = otel.Tracer("resume-analyzer-go/parser/embedding")

// AliyunEmbedder 阿里云文本向量化客户端（OpenAI兼容接口）
// 实现 eino 的 embedding.Embedder
type AliyunEmbedder struct {
	apiKey     string
	model      string
	dimensions int
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

var _ embedding.Embedder = (*AliyunEmbedder)(nil)

// NewAliyunEmbedder 创建Embedder
func NewAliyunEmbedder(apiKey string, embeddingCfg config.EmbeddingConfig) (*AliyunEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API密钥不能为空")
	}

	model := embeddingCfg.Model
	if model == "" {
		model = "text-embedding-v3"
	}
	baseURL := embeddingCfg.BaseURL
	if baseURL == "" {
		baseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	}

	return &AliyunEmbedder{
		apiKey:     apiKey,
		model:      model,
		dimensions: embeddingCfg.Dimensions,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     log.New(os.Stderr, "[AliyunEmbedder] ", log.LstdFlags),
	}, nil
}

// GetDimensions 返回配置的向量维度
func (a *AliyunEmbedder) GetDimensions() int {
	return a.dimensions
}

// embeddingRequest OpenAI兼容的Embedding请求结构
type embeddingRequest struct {
	Input          []string `json:"input"`
	Model          string   `json:"model"`
	Dimensions     int      `json:"dimensions,omitempty"`
	EncodingFormat string   `json:"encoding_format,omitempty"`
}

// embeddingResponse OpenAI兼容的Embedding响应结构
type embeddingResponse struct {
	Object string `json:"object"`
	Data   []struct {
		Object    string    `json:"object"`
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Model string `json:"model"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// EmbedStrings 将一批文本转换为向量表示
func (a *AliyunEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	ctx, span := embedTracer.Start(ctx, "AliyunEmbedder.EmbedStrings")
	defer span.End()

	reqBody := embeddingRequest{
		Input:          texts,
		Model:          a.model,
		EncodingFormat: "float",
	}
	if a.dimensions > 0 {
		reqBody.Dimensions = a.dimensions
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return nil, fmt.Errorf("序列化Embedding请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(payload))
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return nil, fmt.Errorf("构造Embedding请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	startTime := time.Now()
	resp, err := a.httpClient.Do(req)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeEmbedding)
		return nil, fmt.Errorf("调用Embedding服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err := fmt.Errorf("Embedding服务返回状态码 %d: %s", resp.StatusCode, string(respBody))
		tracing.RecordHTTPError(span, err, resp.StatusCode)
		return nil, err
	}

	var result embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeEmbedding)
		return nil, fmt.Errorf("解析Embedding响应失败: %w", err)
	}
	if result.Error != nil {
		err := fmt.Errorf("Embedding服务错误: %s (%s)", result.Error.Message, result.Error.Type)
		tracing.RecordError(span, err, tracing.ErrorTypeEmbedding)
		return nil, err
	}
	if len(result.Data) != len(texts) {
		err := fmt.Errorf("Embedding结果数量不匹配: 期望 %d, 实际 %d", len(texts), len(result.Data))
		tracing.RecordError(span, err, tracing.ErrorTypeEmbedding)
		return nil, err
	}

	// 响应按index排序，保证与输入顺序对应
	vectors := make([][]float64, len(texts))
	for _, entry := range result.Data {
		if entry.Index < 0 || entry.Index >= len(vectors) {
			continue
		}
		vectors[entry.Index] = entry.Embedding
	}

	a.logger.Printf("Embedding完成: %d 条文本 (用时 %.2f秒)", len(texts), time.Since(startTime).Seconds())
	return vectors, nil
}
