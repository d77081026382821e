package parser

import "strings"

// educationVocabulary 教育相关关键词：学位缩写、院校类型、专业领域
// 含英语和罗马尼亚语词条；匹配为大小写不敏感的子串包含，不要求词边界
var educationVocabulary = []string{
	// 学位（国际）
	"bachelor", "master", "phd", "doctorate", "mba", "degree",
	"licenta", "doctorat", // 罗马尼亚语
	"b.s.", "m.s.", "b.a.", "m.a.", "b.sc.", "m.sc.",
	"b.tech", "m.tech", "b.e.", "m.e.",

	// 院校
	"university", "college", "institute", "school", "academy",
	"universitate", "colegiu", "institut", // 罗马尼亚语

	// 专业领域
	"computer science", "engineering", "mathematics", "physics",
	"business", "economics", "informatica", "inginerie", // 罗马尼亚语
	"software engineering", "data science", "information technology",
}

// EducationExtractor 基于关键词出现的教育信息提取器
// 返回命中的词表词条本身，不做学位/院校的结构化解析
type EducationExtractor struct{}

// NewEducationExtractor 创建教育信息提取器
func NewEducationExtractor() *EducationExtractor {
	return &EducationExtractor{}
}

// Extract 返回文本中出现的教育关键词，按词表顺序去重
func (e *EducationExtractor) Extract(text string) []string {
	textLower := strings.ToLower(text)

	seen := make(map[string]bool)
	var found []string
	for _, keyword := range educationVocabulary {
		if !strings.Contains(textLower, keyword) {
			continue
		}
		if seen[keyword] {
			continue
		}
		seen[keyword] = true
		found = append(found, keyword)
	}
	return found
}
