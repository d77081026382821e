package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillExtractorBasic(t *testing.T) {
	extractor := NewSkillExtractor()

	skills := extractor.Extract("Experienced in Python, Docker and Kubernetes")
	assert.Equal(t, []string{"Python", "Docker", "Kubernetes"}, skills, "应该按词表顺序返回命中的技能")
}

func TestSkillExtractorCaseInsensitive(t *testing.T) {
	extractor := NewSkillExtractor()

	// 大小写不敏感匹配，大小写不同的重复只保留一次
	skills := extractor.Extract("PYTHON developer, loves python and Python")
	assert.Equal(t, []string{"Python"}, skills, "同一技能的不同大小写写法应该去重为一项")
}

func TestSkillExtractorWordBoundary(t *testing.T) {
	extractor := NewSkillExtractor()

	// "javascript" 不应该同时命中 "java"
	skills := extractor.Extract("Senior JavaScript developer")
	assert.Contains(t, skills, "JavaScript", "应该识别出JavaScript")
	assert.NotContains(t, skills, "Java", "java不应该作为javascript的子串被命中")
}

func TestSkillExtractorDisplayForms(t *testing.T) {
	extractor := NewSkillExtractor()

	// 缩写词全大写展示
	skills := extractor.Extract("Deployed on AWS and GCP with SQL databases")
	assert.Contains(t, skills, "AWS", "缩写词应该全大写展示")
	assert.Contains(t, skills, "GCP", "缩写词应该全大写展示")
	assert.Contains(t, skills, "SQL", "缩写词应该全大写展示")

	// 带点号的框架名保持原样
	skills = extractor.Extract("Built services with node.js and react")
	assert.Equal(t, []string{"React", "node.js"}, skills, "带点号的名称保持原样，其余首字母大写")

	// c sharp 规范化为 C#
	skills = extractor.Extract("Proficient in C Sharp programming")
	assert.Equal(t, []string{"C#"}, skills, "c sharp应该展示为C#")
}

func TestSkillExtractorNoSkills(t *testing.T) {
	extractor := NewSkillExtractor()

	skills := extractor.Extract("An essay about gardening and cooking")
	assert.Empty(t, skills, "没有技能词时应该返回空结果")
}
