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

	"resume-analyzer-go/internal/tracing"

	"go.opentelemetry.io/otel"
)

var nerTracer = otel.Tracer("resume-analyzer-go/parser/ner")

// SpacyNERClient 通过HTTP访问spaCy NER sidecar服务
type SpacyNERClient struct {
	// NER服务地址，例如 http://localhost:8090
	ServerURL string
	// HTTP客户端，可配置超时等参数
	Client *http.Client
	// 日志记录
	logger *log.Logger
}

var _ EntityRecognizer = (*SpacyNERClient)(nil)

// NEROption 定义配置选项函数
type NEROption func(*SpacyNERClient)

// WithNERTimeout 配置HTTP客户端超时时间
func WithNERTimeout(timeout time.Duration) NEROption {
	return func(c *SpacyNERClient) {
		c.Client.Timeout = timeout
	}
}

// WithNERLogger 配置自定义日志记录器
func WithNERLogger(logger *log.Logger) NEROption {
	return func(c *SpacyNERClient) {
		c.logger = logger
	}
}

// NewSpacyNERClient 创建NER服务客户端
func NewSpacyNERClient(serverURL string, options ...NEROption) *SpacyNERClient {
	client := &SpacyNERClient{
		ServerURL: serverURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log.New(os.Stderr, "[NER客户端] ", log.LstdFlags),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// nerRequest NER服务请求体
type nerRequest struct {
	Text string `json:"text"`
}

// nerResponse NER服务响应体
type nerResponse struct {
	Entities []RecognizedEntity `json:"entities"`
}

// Recognize 调用NER服务识别文本中的命名实体
func (c *SpacyNERClient) Recognize(ctx context.Context, text string) ([]RecognizedEntity, error) {
	ctx, span := nerTracer.Start(ctx, "SpacyNERClient.Recognize")
	defer span.End()

	body, err := json.Marshal(nerRequest{Text: text})
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return nil, fmt.Errorf("序列化NER请求失败: %w", err)
	}

	url := c.ServerURL + "/ner"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return nil, fmt.Errorf("构造NER请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeNER)
		return nil, fmt.Errorf("调用NER服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err := fmt.Errorf("NER服务返回状态码 %d: %s", resp.StatusCode, string(respBody))
		tracing.RecordHTTPError(span, err, resp.StatusCode)
		return nil, err
	}

	var result nerResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeNER)
		return nil, fmt.Errorf("解析NER响应失败: %w", err)
	}

	c.logger.Printf("NER识别完成: %d 个实体 (用时 %.2f秒)", len(result.Entities), time.Since(startTime).Seconds())
	return result.Entities, nil
}
