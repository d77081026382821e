package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrorType 定义错误类型，便于分类和过滤
type ErrorType string

const (
	// ErrorTypeHTTP HTTP错误
	ErrorTypeHTTP ErrorType = "http"
	// ErrorTypeNER 外部NER服务错误
	ErrorTypeNER ErrorType = "ner"
	// ErrorTypeEmbedding 向量化服务错误
	ErrorTypeEmbedding ErrorType = "embedding"
	// ErrorTypeJobAPI 职位搜索API错误
	ErrorTypeJobAPI ErrorType = "job_api"
	// ErrorTypeExtraction 文档解析错误
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypeValidation 验证错误
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeTimeout 超时错误
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeInternal 内部错误
	ErrorTypeInternal ErrorType = "internal"
)

// RecordError 记录错误到span，附带统一的错误类型标签
func RecordError(span trace.Span, err error, errorType ErrorType) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("error.type", string(errorType)))
}

// RecordHTTPError 记录HTTP错误，附带状态码
func RecordHTTPError(span trace.Span, err error, statusCode int) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(
		attribute.String("error.type", string(ErrorTypeHTTP)),
		attribute.Int("http.status_code", statusCode),
	)
}
