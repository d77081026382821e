package parser

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTextExtractor 返回固定文本的提取器，并记录是否被调用
type fakeTextExtractor struct {
	text   string
	err    error
	called bool
}

func (f *fakeTextExtractor) ExtractText(ctx context.Context, reader io.Reader, uri string) (string, error) {
	f.called = true
	return f.text, f.err
}

func newTestParser(t *testing.T, pdf, docx TextExtractor, options ...ResumeParserOption) *ResumeParser {
	t.Helper()
	opts := append([]ResumeParserOption{
		WithPDFExtractor(pdf),
		WithDOCXExtractor(docx),
	}, options...)
	p, err := NewResumeParser(context.Background(), opts...)
	require.NoError(t, err, "创建解析器不应失败")
	return p
}

const sampleResumeText = `John Smith
Email: john.smith@example.com
Phone: +40 723 456 789

Skills: Python, Docker, Kubernetes

Education
Bachelor of Computer Science, Oxford University`

func TestParseResumeFromReaderAssemblesRecord(t *testing.T) {
	pdf := &fakeTextExtractor{text: sampleResumeText}
	recognizer := &fakeRecognizer{
		entities: []RecognizedEntity{
			{Text: "John Smith", Label: "PERSON"},
			{Text: "Oxford University", Label: "ORG"},
		},
	}
	p := newTestParser(t, pdf, &fakeTextExtractor{}, WithEntityRecognizer(recognizer))

	resume, err := p.ParseResumeFromReader(context.Background(), strings.NewReader("%PDF"), "resume.pdf")
	require.NoError(t, err, "解析不应返回错误")
	require.True(t, pdf.called, "PDF提取器应该被调用")

	assert.Equal(t, sampleResumeText, resume.RawText, "原始文本应该原样保留")
	assert.Equal(t, "john.smith@example.com", resume.ContactInfo.Email)
	assert.Equal(t, "+40 723 456 789", resume.ContactInfo.Phone)
	assert.Equal(t, []string{"Python", "Docker", "Kubernetes"}, resume.Skills)
	assert.Contains(t, resume.Education, "bachelor")
	assert.Contains(t, resume.Education, "university")
	assert.Equal(t, []string{"John Smith"}, resume.Entities.Persons)
	assert.Equal(t, []string{"Oxford University"}, resume.Entities.Organizations)
	assert.Equal(t, len(strings.Fields(sampleResumeText)), resume.WordCount, "词数按空白分词统计")
	assert.Equal(t, len([]rune(sampleResumeText)), resume.CharCount, "字符数按rune统计")
}

func TestParseResumeFromReaderCharCountRunes(t *testing.T) {
	// 多字节字符按rune计数，不按字节
	text := "日本語テキスト résumé"
	pdf := &fakeTextExtractor{text: text}
	p := newTestParser(t, pdf, &fakeTextExtractor{})

	resume, err := p.ParseResumeFromReader(context.Background(), strings.NewReader("%PDF"), "cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, len([]rune(text)), resume.CharCount, "CharCount应该等于rune数量")
	assert.Less(t, resume.CharCount, len(text), "多字节文本的rune数应该少于字节数")
}

func TestParseResumeFromReaderRoutesByExtension(t *testing.T) {
	pdf := &fakeTextExtractor{text: "pdf content words here"}
	docx := &fakeTextExtractor{text: "docx content words here"}
	p := newTestParser(t, pdf, docx)

	resume, err := p.ParseResumeFromReader(context.Background(), strings.NewReader("x"), "cv.docx")
	require.NoError(t, err)
	assert.True(t, docx.called, "docx文件应该走DOCX提取器")
	assert.False(t, pdf.called, "docx文件不应该走PDF提取器")
	assert.Equal(t, "docx content words here", resume.RawText)

	// 扩展名大小写不敏感
	resume, err = p.ParseResumeFromReader(context.Background(), strings.NewReader("x"), "CV.PDF")
	require.NoError(t, err)
	assert.True(t, pdf.called, "大写扩展名的PDF也应该走PDF提取器")
	assert.Equal(t, "pdf content words here", resume.RawText)
}

func TestParseResumeFromReaderUnsupportedFormat(t *testing.T) {
	pdf := &fakeTextExtractor{text: "content"}
	docx := &fakeTextExtractor{text: "content"}
	p := newTestParser(t, pdf, docx)

	_, err := p.ParseResumeFromReader(context.Background(), strings.NewReader("plain"), "resume.txt")
	require.Error(t, err, "不支持的扩展名应该返回错误")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat), "错误应该匹配ErrUnsupportedFormat")
	assert.False(t, pdf.called, "格式校验应该先于任何提取")
	assert.False(t, docx.called, "格式校验应该先于任何提取")
}

func TestParseResumeFromReaderEmptyContent(t *testing.T) {
	p := newTestParser(t, &fakeTextExtractor{text: "   \n\t  "}, &fakeTextExtractor{})

	_, err := p.ParseResumeFromReader(context.Background(), strings.NewReader("%PDF"), "blank.pdf")
	require.Error(t, err, "空白文本应该返回错误")
	assert.True(t, errors.Is(err, ErrEmptyContent), "错误应该匹配ErrEmptyContent")
}

func TestParseResumeFromReaderExtractionFailureDegrades(t *testing.T) {
	// 提取器失败降级为空文本，空文本时以ErrExtractionFailed上报
	p := newTestParser(t, &fakeTextExtractor{err: errors.New("损坏的文档")}, &fakeTextExtractor{})

	_, err := p.ParseResumeFromReader(context.Background(), strings.NewReader("%PDF"), "corrupt.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtractionFailed), "文档故障导致的空文本应该表现为解析失败错误")
	assert.False(t, errors.Is(err, ErrEmptyContent), "文档故障不应伪装成普通空内容错误")
	assert.Contains(t, err.Error(), "损坏的文档", "错误详情应该保留底层故障描述")
}

func TestParseResumeFromReaderNERFailureDegrades(t *testing.T) {
	// NER失败不让整次解析失败，实体结果降级为空
	recognizer := &fakeRecognizer{err: errors.New("NER服务不可达")}
	p := newTestParser(t, &fakeTextExtractor{text: "Python developer with Docker skills"}, &fakeTextExtractor{},
		WithEntityRecognizer(recognizer))

	resume, err := p.ParseResumeFromReader(context.Background(), strings.NewReader("%PDF"), "cv.pdf")
	require.NoError(t, err, "NER失败不应导致解析失败")
	assert.NotNil(t, resume.Entities.Persons, "实体桶应该降级为空切片")
	assert.Empty(t, resume.Entities.Persons)
	assert.Contains(t, resume.Skills, "Python", "其他提取器的结果不受NER失败影响")
}

func TestParseResumeFileNotFound(t *testing.T) {
	p := newTestParser(t, &fakeTextExtractor{}, &fakeTextExtractor{})

	_, err := p.ParseResume(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err, "不存在的文件应该返回错误")
	assert.True(t, errors.Is(err, ErrResumeNotFound), "错误应该匹配ErrResumeNotFound")
}

func TestParseResumeFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF fake bytes"), 0o644))

	p := newTestParser(t, &fakeTextExtractor{text: sampleResumeText}, &fakeTextExtractor{})

	resume, err := p.ParseResume(context.Background(), path)
	require.NoError(t, err, "解析磁盘文件不应返回错误")
	assert.Equal(t, path, resume.FilePath, "结果应该记录文件路径")
	assert.Equal(t, "john.smith@example.com", resume.ContactInfo.Email)
}
