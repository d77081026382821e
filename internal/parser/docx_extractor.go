package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// DOCXExtractor 解析DOCX（OOXML）文档的文本提取器
// 输出顺序：先是全部正文段落（换行分隔），然后是全部表格单元格
// （逐行逐列，每个单元格前加一个换行符）
type DOCXExtractor struct {
	logger *log.Logger
}

var _ TextExtractor = (*DOCXExtractor)(nil)

// DOCXOption DOCX提取器的配置选项
type DOCXOption func(*DOCXExtractor)

// WithDOCXLogger 配置自定义日志记录器
func WithDOCXLogger(logger *log.Logger) DOCXOption {
	return func(e *DOCXExtractor) {
		e.logger = logger
	}
}

// NewDOCXExtractor 创建DOCX文本提取器
func NewDOCXExtractor(options ...DOCXOption) *DOCXExtractor {
	extractor := &DOCXExtractor{
		logger: log.New(os.Stderr, "[DOCX提取器] ", log.LstdFlags),
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor
}

// ExtractText 从DOCX内容中提取纯文本
func (e *DOCXExtractor) ExtractText(ctx context.Context, reader io.Reader, uri string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("读取DOCX内容失败 (URI: %s): %w", uri, err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("DOCX不是有效的zip包 (URI: %s): %w", uri, err)
	}

	var docXML *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML = f
			break
		}
	}
	if docXML == nil {
		return "", fmt.Errorf("DOCX中缺少 word/document.xml (URI: %s)", uri)
	}

	rc, err := docXML.Open()
	if err != nil {
		return "", fmt.Errorf("打开 word/document.xml 失败 (URI: %s): %w", uri, err)
	}
	defer rc.Close()

	paragraphs, cells := e.walkDocument(ctx, rc, uri)

	var sb strings.Builder
	sb.WriteString(strings.Join(paragraphs, "\n"))
	for _, cell := range cells {
		sb.WriteString("\n")
		sb.WriteString(cell)
	}
	return sb.String(), nil
}

// walkDocument 遍历OOXML文档主体，收集正文段落和表格单元格文本
// 单元格内的多个段落用换行符连接。遇到XML解码错误时不整体失败，
// 返回已收集到的片段
func (e *DOCXExtractor) walkDocument(ctx context.Context, r io.Reader, uri string) (paragraphs, cells []string) {
	decoder := xml.NewDecoder(r)

	var (
		tableDepth int
		inPara     bool // 正文段落（表格外）
		inCellPara bool // 单元格内段落
		inCell     bool
		inText     bool // w:t 内部
		curPara    strings.Builder
		cellPara   strings.Builder
		cellParas  []string
	)

	for {
		if ctx.Err() != nil {
			e.logger.Printf("DOCX遍历被取消 (URI: %s): %v", uri, ctx.Err())
			break
		}
		tok, err := decoder.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				e.logger.Printf("DOCX解码中断，保留已提取内容 (URI: %s): %v", uri, err)
			}
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "p":
				if tableDepth == 0 {
					inPara = true
					curPara.Reset()
				} else if inCell {
					inCellPara = true
					cellPara.Reset()
				}
			case "tc":
				if tableDepth == 1 {
					inCell = true
					cellParas = cellParas[:0]
				}
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "p":
				if tableDepth == 0 && inPara {
					paragraphs = append(paragraphs, curPara.String())
					inPara = false
				} else if inCell && inCellPara {
					cellParas = append(cellParas, cellPara.String())
					inCellPara = false
				}
			case "tc":
				if tableDepth == 1 && inCell {
					cells = append(cells, strings.Join(cellParas, "\n"))
					inCell = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if !inText {
				continue
			}
			if tableDepth == 0 && inPara {
				curPara.Write(t)
			} else if inCell && inCellPara {
				cellPara.Write(t)
			}
		}
	}

	return paragraphs, cells
}
