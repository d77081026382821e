package parser

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"resume-analyzer-go/internal/logger"
	"resume-analyzer-go/internal/types"

	"golang.org/x/sync/errgroup"
)

// ResumeParser 简历解析编排器
// 负责：校验输入、提取文本、并行运行四个子提取器、组装结果
type ResumeParser struct {
	pdfExtractor  TextExtractor
	docxExtractor TextExtractor

	contact   *ContactExtractor
	skills    *SkillExtractor
	education *EducationExtractor
	entities  *EntityExtractor
}

// ResumeParserOption 解析器配置选项
type ResumeParserOption func(*ResumeParser)

// WithPDFExtractor 替换PDF文本提取器
func WithPDFExtractor(extractor TextExtractor) ResumeParserOption {
	return func(p *ResumeParser) {
		p.pdfExtractor = extractor
	}
}

// WithDOCXExtractor 替换DOCX文本提取器
func WithDOCXExtractor(extractor TextExtractor) ResumeParserOption {
	return func(p *ResumeParser) {
		p.docxExtractor = extractor
	}
}

// WithEntityRecognizer 配置NER能力；不配置时实体提取返回空结果
func WithEntityRecognizer(recognizer EntityRecognizer) ResumeParserOption {
	return func(p *ResumeParser) {
		p.entities = NewEntityExtractor(recognizer)
	}
}

// NewResumeParser 创建简历解析器
// 默认使用Eino PDF提取器和内置DOCX提取器
func NewResumeParser(ctx context.Context, options ...ResumeParserOption) (*ResumeParser, error) {
	p := &ResumeParser{
		docxExtractor: NewDOCXExtractor(),
		contact:       NewContactExtractor(),
		skills:        NewSkillExtractor(),
		education:     NewEducationExtractor(),
		entities:      NewEntityExtractor(nil),
	}

	for _, option := range options {
		option(p)
	}

	if p.pdfExtractor == nil {
		pdfExtractor, err := NewEinoPDFExtractor(ctx)
		if err != nil {
			return nil, err
		}
		p.pdfExtractor = pdfExtractor
	}

	return p, nil
}

// ParseResume 解析文件系统上的简历文件
func (p *ResumeParser) ParseResume(ctx context.Context, filePath string) (*types.ParsedResume, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, NewNotFoundError(filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, NewNotFoundError(filePath)
	}
	defer file.Close()

	resume, err := p.ParseResumeFromReader(ctx, file, filePath)
	if err != nil {
		return nil, err
	}
	resume.FilePath = filePath
	return resume, nil
}

// ParseResumeFromReader 从内容流解析简历
// 扩展名校验先于任何提取；整份文档提取失败降级为空文本，
// 降级后仍为空以 ErrExtractionFailed 上报，正常提取出空文本以 ErrEmptyContent 上报
func (p *ResumeParser) ParseResumeFromReader(ctx context.Context, reader io.Reader, filename string) (*types.ParsedResume, error) {
	var extractor TextExtractor
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		extractor = p.pdfExtractor
	case ".docx":
		extractor = p.docxExtractor
	default:
		return nil, NewUnsupportedFormatError(filename, ext)
	}

	text, extractErr := extractor.ExtractText(ctx, reader, filename)
	if extractErr != nil {
		logger.Warn().Err(extractErr).Str("file", filename).Msg("文档文本提取失败，按空文本处理")
		text = ""
	}

	if strings.TrimSpace(text) == "" {
		// 空文本由文档故障导致时上报解析失败，否则按空内容上报
		if extractErr != nil {
			return nil, NewExtractionError(filename, extractErr.Error())
		}
		return nil, NewEmptyContentError(filename)
	}

	resume := &types.ParsedResume{
		RawText:   text,
		WordCount: len(strings.Fields(text)),
		CharCount: utf8.RuneCountInString(text),
	}

	// 四个子提取器读取同一份不可变文本，彼此无依赖，可以并行执行
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resume.ContactInfo = p.contact.Extract(text)
		return nil
	})
	g.Go(func() error {
		resume.Skills = p.skills.Extract(text)
		return nil
	})
	g.Go(func() error {
		resume.Education = p.education.Extract(text)
		return nil
	})
	g.Go(func() error {
		entities, err := p.entities.Extract(gctx, text)
		if err != nil {
			// NER是外部服务，失败降级为空实体，不让整次解析失败
			logger.Warn().Err(err).Str("file", filename).Msg("NER识别失败，实体结果降级为空")
		}
		resume.Entities = entities
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resume, nil
}
