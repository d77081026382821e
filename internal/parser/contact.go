package parser

import (
	"regexp"
	"strings"

	"resume-analyzer-go/internal/types"
)

// 邮箱匹配：user@domain.tld，任意2位以上字母的顶级域名
var emailPattern = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// phonePatterns 电话号码模式，按优先级从高到低排列
// 顺序是语义的一部分：先尝试具体的地区格式，再逐步放宽到通用格式，
// 一旦某个模式产生了通过验证的匹配，后面的模式不再参与
var phonePatterns = []*regexp.Regexp{
	// 罗马尼亚格式：+40 123 456 789, +40-123-456-789, +40123456789
	regexp.MustCompile(`\+40[-.\s]?\d{3}[-.\s]?\d{3}[-.\s]?\d{3}`),
	// 罗马尼亚手机：07XX XXX XXX
	regexp.MustCompile(`\b07\d{2}[-.\s]?\d{3}[-.\s]?\d{3}\b`),
	// 罗马尼亚座机：02XX/03XX XXX XXX
	regexp.MustCompile(`\b0[2-3]\d{2}[-.\s]?\d{3}[-.\s]?\d{3}\b`),
	// 通用国际格式：+1 555 123 4567, +44 20 1234 5678
	regexp.MustCompile(`\+\d{1,4}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}`),
	// 美国/加拿大格式：(555) 123-4567, 555-123-4567, 555.123.4567
	regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
	// 英国格式：020 1234 5678
	regexp.MustCompile(`\b0\d{2,4}[-.\s]?\d{3,4}[-.\s]?\d{4}\b`),
	// 纯数字：10-15位连续数字
	regexp.MustCompile(`\b\d{10,15}\b`),
	// 欧洲格式：+49 30 12345678, +33 1 23 45 67 89
	regexp.MustCompile(`\+\d{2}[-.\s]?\d{1,4}[-.\s]?\d{4,10}`),
}

var (
	nonDigitPattern = regexp.MustCompile(`\D`)
	yearPattern     = regexp.MustCompile(`19\d{2}|20\d{2}`)
	// 兜底模式：原始文本中任何9-25个字符的数字/空白/连字符/点/括号/加号序列
	fallbackPhonePattern = regexp.MustCompile(`[0-9\s\-.()+]{9,25}`)
)

// ContactExtractor 从简历文本中提取邮箱和电话号码
type ContactExtractor struct{}

// NewContactExtractor 创建联系方式提取器
func NewContactExtractor() *ContactExtractor {
	return &ContactExtractor{}
}

// Extract 提取联系方式，未找到的字段为空字符串
func (e *ContactExtractor) Extract(text string) types.ContactInfo {
	return types.ContactInfo{
		Email: e.extractEmail(text),
		Phone: e.extractPhone(text),
	}
}

// extractEmail 返回文档顺序中的第一个邮箱匹配
func (e *ContactExtractor) extractEmail(text string) string {
	return emailPattern.FindString(text)
}

// extractPhone 按优先级在归一化文本上逐个尝试电话模式
// 先把所有空白压缩为单个空格，提升跨行/多空格号码的匹配率；
// 兜底扫描则在原始文本上进行
func (e *ContactExtractor) extractPhone(text string) string {
	cleaned := strings.Join(strings.Fields(text), " ")

	for _, pattern := range phonePatterns {
		matches := pattern.FindAllString(cleaned, -1)
		for _, match := range matches {
			digits := nonDigitPattern.ReplaceAllString(match, "")

			// 有效号码：9-15位数字（覆盖国际号段）
			if len(digits) < 9 || len(digits) > 15 {
				continue
			}
			// 恰好4位的视为年份，排除
			if len(digits) == 4 {
				continue
			}
			// 含19XX/20XX的视为日期区间的一部分，排除
			if yearPattern.MatchString(match) {
				continue
			}
			return strings.TrimSpace(match)
		}
	}

	// 兜底：在原始文本中寻找任何可能是电话的数字序列
	for _, candidate := range fallbackPhonePattern.FindAllString(text, -1) {
		digits := nonDigitPattern.ReplaceAllString(candidate, "")
		if len(digits) < 9 || len(digits) > 15 {
			continue
		}
		// 至少4个不同的数字，排除占位符式的重复数字串
		if distinctDigits(digits) <= 3 {
			continue
		}
		return strings.TrimSpace(candidate)
	}

	return ""
}

func distinctDigits(digits string) int {
	seen := make(map[rune]struct{}, 10)
	for _, r := range digits {
		seen[r] = struct{}{}
	}
	return len(seen)
}
