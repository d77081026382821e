package scorer

import (
	"fmt"
	"regexp"
	"strings"

	"resume-analyzer-go/internal/constants"
	"resume-analyzer-go/internal/types"
)

// 各类别分数上限；总分由结构保证不超过100，不需要事后截断
const (
	MaxContactInfoScore  = 15
	MaxSectionsScore     = 20
	MaxSkillsScore       = 25
	MaxFormattingScore   = 15
	MaxAchievementsScore = 15
	MaxActionVerbsScore  = 10
)

// requiredSections 标准简历章节标题词表，按扫描顺序排列
var requiredSections = []string{
	"experience", "education", "skills", "certifications",
	"work experience", "professional experience", "technical skills",
	"projects",
}

// actionVerbs 强动作动词词表
var actionVerbs = []string{
	"developed", "managed", "created", "implemented", "designed",
	"led", "improved", "increased", "reduced", "achieved",
	"built", "launched", "optimized", "analyzed", "coordinated",
	"collaborated", "delivered", "executed", "facilitated",
}

// 量化成就：百分比（1-3位数字+%）和普通数字token
var numberTokenPattern = regexp.MustCompile(`\b\d+%?`)

// ATSScorer 按六个类别对解析后的简历打分
type ATSScorer struct{}

// NewATSScorer 创建评分器
func NewATSScorer() *ATSScorer {
	return &ATSScorer{}
}

// CalculateATSScore 计算ATS总分、等级和分类反馈
// 对格式良好的 ParsedResume 总能成功；缺失字段（如无技能）是合法的
// 可评分状态，不是错误
func (s *ATSScorer) CalculateATSScore(resume *types.ParsedResume) *types.ATSResult {
	text := resume.RawText

	var total int
	var feedback types.ATSFeedback

	score, fb := s.checkContactInfo(resume)
	total += score
	feedback.ContactInfo = fb

	score, fb = s.checkSections(text)
	total += score
	feedback.Sections = fb

	score, fb = s.checkSkills(resume.Skills)
	total += score
	feedback.Skills = fb

	score, fb = s.checkFormatting(text)
	total += score
	feedback.Formatting = fb

	score, fb = s.checkAchievements(text)
	total += score
	feedback.Achievements = fb

	score, fb = s.checkActionVerbs(text)
	total += score
	feedback.ActionVerbs = fb

	grade, tip := gradeForScore(total)
	feedback.OverallTips = []string{tip}

	return &types.ATSResult{
		Score:    total,
		Grade:    grade,
		Feedback: feedback,
	}
}

// gradeForScore 分数到等级的阶梯函数，每个等级附带一条固定建议
func gradeForScore(score int) (grade, tip string) {
	switch {
	case score >= 90:
		return constants.GradeExcellent, "Your resume is ATS-optimized! 🎉"
	case score >= 75:
		return constants.GradeGood, "Strong resume. Fix minor issues to reach 90+"
	case score >= 60:
		return constants.GradeFair, "Needs improvement. Focus on skills and achievements"
	default:
		return constants.GradePoor, "Major revisions needed. Follow all recommendations above"
	}
}

// checkContactInfo 联系方式：邮箱+10，电话+5
func (s *ATSScorer) checkContactInfo(resume *types.ParsedResume) (int, []string) {
	score := 0
	var feedback []string

	if resume.ContactInfo.Email != "" {
		score += 10
		feedback = append(feedback, "✓ Email found")
	} else {
		feedback = append(feedback, "✗ Email missing - Add a professional email address")
	}

	if resume.ContactInfo.Phone != "" {
		score += 5
		feedback = append(feedback, "✓ Phone number found")
	} else {
		feedback = append(feedback, "✗ Phone number missing - Include a valid phone number")
	}

	return score, feedback
}

// checkSections 标准章节：≥3个得满分20，2个得15，否则5
func (s *ATSScorer) checkSections(text string) (int, []string) {
	textLower := strings.ToLower(text)

	var found []string
	for _, section := range requiredSections {
		if strings.Contains(textLower, section) {
			found = append(found, section)
		}
	}

	switch {
	case len(found) >= 3:
		return 20, []string{fmt.Sprintf("✓ Found sections: %s", strings.Join(found[:3], ", "))}
	case len(found) >= 2:
		return 15, []string{fmt.Sprintf("✓ Found sections: %s. Add more standard headers", strings.Join(found, ", "))}
	default:
		return 5, []string{"✗ Few or no standard sections. Include headers like Experience, Education, Skills"}
	}
}

// checkSkills 技能数量：≥8→25，≥5→18，≥3→10，否则5
func (s *ATSScorer) checkSkills(skills []string) (int, []string) {
	numSkills := len(skills)

	switch {
	case numSkills >= 8:
		return 25, []string{fmt.Sprintf("✓ Excellent - %d skills found", numSkills)}
	case numSkills >= 5:
		return 18, []string{fmt.Sprintf("⚠ Good - %d skills found. Add 3-5 more relevant skills", numSkills)}
	case numSkills >= 3:
		return 10, []string{fmt.Sprintf("⚠ Fair - %d skills found. Add 5-8 more skills", numSkills)}
	default:
		return 5, []string{fmt.Sprintf("✗ Weak - Only %d skills. Add a dedicated Skills section with 8+ skills", numSkills)}
	}
}

// checkFormatting 格式：项目符号≥5个+8分；词数400-1000+7分，超过1000+3分
func (s *ATSScorer) checkFormatting(text string) (int, []string) {
	score := 0
	var feedback []string

	bulletCount := strings.Count(text, "•") + strings.Count(text, "-") + strings.Count(text, "*")
	if bulletCount >= 5 {
		score += 8
		feedback = append(feedback, fmt.Sprintf("✓ %d bullet points found - Good use of lists", bulletCount))
	} else {
		feedback = append(feedback, fmt.Sprintf("⚠ Only %d bullet points - Use more lists for readability", bulletCount))
	}

	wordCount := len(strings.Fields(text))
	switch {
	case wordCount >= 400 && wordCount <= 1000:
		score += 7
		feedback = append(feedback, fmt.Sprintf("✓ Word count is %d - Ideal length", wordCount))
	case wordCount < 400:
		feedback = append(feedback, fmt.Sprintf("⚠ Word count is %d - Consider adding more detail", wordCount))
	default:
		score += 3
		feedback = append(feedback, fmt.Sprintf("⚠ Word count is %d - Ensure content is relevant and concise", wordCount))
	}

	return score, feedback
}

// checkAchievements 量化成就：信号 = 百分比token数 + 数字token数/3（整除）
// ≥5→15，≥3→10，否则5；反馈文本报告的就是这个复合信号
func (s *ATSScorer) checkAchievements(text string) (int, []string) {
	percentages, numbers := countNumberTokens(text)
	signal := percentages + numbers/3

	switch {
	case signal >= 5:
		return 15, []string{fmt.Sprintf("✓ Great - %d quantified achievements found", signal)}
	case signal >= 3:
		return 10, []string{fmt.Sprintf("⚠ Good - %d quantified achievements. Add 2-3 more", signal)}
	default:
		return 5, []string{"✗ Weak - Add numbers to show impact (e.g., 'Increased efficiency by 30%')"}
	}
}

// countNumberTokens 统计文本中的数字token
// 带%后缀且不超过3位数字的算百分比，其余算普通数字
func countNumberTokens(text string) (percentages, numbers int) {
	for _, token := range numberTokenPattern.FindAllString(text, -1) {
		if strings.HasSuffix(token, "%") && len(token) <= 4 {
			percentages++
		} else {
			numbers++
		}
	}
	return percentages, numbers
}

// checkActionVerbs 动作动词：不同动词≥8个→10分，≥5→7分，否则3分
func (s *ATSScorer) checkActionVerbs(text string) (int, []string) {
	textLower := strings.ToLower(text)

	found := 0
	for _, verb := range actionVerbs {
		if strings.Contains(textLower, verb) {
			found++
		}
	}

	switch {
	case found >= 8:
		return 10, []string{fmt.Sprintf("✓ Excellent use of action verbs (%d found)", found)}
	case found >= 5:
		return 7, []string{fmt.Sprintf("⚠ Good action verbs (%d). Add more like 'achieved', 'optimized'", found)}
	default:
		return 3, []string{"✗ Weak - Start bullet points with action verbs like 'Developed', 'Managed', 'Led'"}
	}
}
