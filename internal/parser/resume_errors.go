package parser

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrResumeNotFound    = errors.New("简历文件不存在")
	ErrUnsupportedFormat = errors.New("不支持的文件格式，仅支持 .pdf 和 .docx")
	ErrEmptyContent      = errors.New("未能从文件中提取到任何文本")
	ErrExtractionFailed  = errors.New("文档解析失败")
)

// ResumeParseError 包含详细上下文的解析错误
type ResumeParseError struct {
	FilePath string
	Op       string
	BaseErr  error
	Detail   string
}

func (e *ResumeParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 文件:%s): %s", e.BaseErr, e.Op, e.FilePath, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 文件:%s)", e.BaseErr, e.Op, e.FilePath)
}

func (e *ResumeParseError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ResumeParseError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewNotFoundError(filePath string) error {
	return &ResumeParseError{
		FilePath: filePath,
		Op:       "stat",
		BaseErr:  ErrResumeNotFound,
	}
}

func NewUnsupportedFormatError(filePath, ext string) error {
	return &ResumeParseError{
		FilePath: filePath,
		Op:       "validate",
		BaseErr:  ErrUnsupportedFormat,
		Detail:   fmt.Sprintf("扩展名 %q", ext),
	}
}

func NewEmptyContentError(filePath string) error {
	return &ResumeParseError{
		FilePath: filePath,
		Op:       "extract",
		BaseErr:  ErrEmptyContent,
	}
}

func NewExtractionError(filePath, detail string) error {
	return &ResumeParseError{
		FilePath: filePath,
		Op:       "extract",
		BaseErr:  ErrExtractionFailed,
		Detail:   detail,
	}
}
