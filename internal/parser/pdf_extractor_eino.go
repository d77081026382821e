package parser

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
)

// TextExtractor 文档文本提取器接口
// 失败语义：整份文档提取失败返回错误，由调用方决定是否降级为空文本
type TextExtractor interface {
	// ExtractText 从文档内容中提取纯文本，保持阅读顺序
	ExtractText(ctx context.Context, reader io.Reader, uri string) (string, error)
}

// EinoPDFExtractor 使用 Eino PDF Parser 按页提取文本
type EinoPDFExtractor struct {
	parser *pdf.PDFParser
	logger *log.Logger
}

var _ TextExtractor = (*EinoPDFExtractor)(nil)

// EinoPDFOption PDF提取器的配置选项
type EinoPDFOption func(*EinoPDFExtractor)

// WithEinoLogger 配置自定义日志记录器
func WithEinoLogger(logger *log.Logger) EinoPDFOption {
	return func(e *EinoPDFExtractor) {
		e.logger = logger
	}
}

// NewEinoPDFExtractor 初始化 Eino PDF 文本提取器
// 配置为按页分割，以便在拼接时用换行符分隔各页文本
func NewEinoPDFExtractor(ctx context.Context, options ...EinoPDFOption) (*EinoPDFExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: true,
	})
	if err != nil {
		return nil, fmt.Errorf("创建Eino PDF解析器失败: %w", err)
	}

	extractor := &EinoPDFExtractor{
		parser: p,
		logger: log.New(os.Stderr, "[PDF提取器] ", log.LstdFlags),
	}

	for _, option := range options {
		option(extractor)
	}

	return extractor, nil
}

// ExtractText 从PDF内容中按页提取文本
// 各页文本以换行符拼接，空白页不产生任何内容
func (e *EinoPDFExtractor) ExtractText(ctx context.Context, reader io.Reader, uri string) (string, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	docs, err := e.parser.Parse(ctx, reader, einoParser.WithURI(uri))
	duration := time.Since(startTime)
	if err != nil {
		e.logger.Printf("PDF解析失败 (URI: %s, 用时 %.2f秒): %v", uri, duration.Seconds(), err)
		return "", fmt.Errorf("eino PDF解析器处理 %s 失败: %w", uri, err)
	}

	var sb strings.Builder
	pages := 0
	for _, doc := range docs {
		if doc.Content == "" {
			continue
		}
		sb.WriteString(doc.Content)
		sb.WriteString("\n")
		pages++
	}

	e.logger.Printf("PDF解析完成: %d 页有效文本，共 %d 个字符 (用时 %.2f秒)", pages, sb.Len(), duration.Seconds())
	return sb.String(), nil
}
