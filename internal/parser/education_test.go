package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEducationExtractorKeywords(t *testing.T) {
	extractor := NewEducationExtractor()

	found := extractor.Extract("Bachelor of Science in Computer Science, Oxford University")
	assert.Equal(t, []string{"bachelor", "university", "computer science"}, found,
		"应该按词表顺序返回命中的教育关键词")
}

func TestEducationExtractorRomanian(t *testing.T) {
	extractor := NewEducationExtractor()

	found := extractor.Extract("Licenta in Informatica, Universitatea Politehnica")
	assert.Contains(t, found, "licenta", "应该识别罗马尼亚语学位词")
	assert.Contains(t, found, "informatica", "应该识别罗马尼亚语专业词")
	assert.Contains(t, found, "universitate", "应该识别罗马尼亚语院校词")
}

func TestEducationExtractorSubstringSemantics(t *testing.T) {
	extractor := NewEducationExtractor()

	// 匹配是子串包含，不要求词边界
	found := extractor.Extract("A masterful analysis of schooling systems")
	assert.Contains(t, found, "master", "子串匹配下masterful应该命中master")
	assert.Contains(t, found, "school", "子串匹配下schooling应该命中school")
}

func TestEducationExtractorDedup(t *testing.T) {
	extractor := NewEducationExtractor()

	found := extractor.Extract("University of Bucharest and Cambridge University")
	count := 0
	for _, kw := range found {
		if kw == "university" {
			count++
		}
	}
	assert.Equal(t, 1, count, "重复出现的关键词应该只保留一次")
}

func TestEducationExtractorEmpty(t *testing.T) {
	extractor := NewEducationExtractor()

	found := extractor.Extract("Weather report for the weekend")
	assert.Empty(t, found, "没有教育关键词时应该返回空结果")
}
