package types

// ATSFeedback 按评分类别组织的反馈文本
// 每个类别一个有序列表，外加整体建议
type ATSFeedback struct {
	ContactInfo  []string `json:"contact_info"`
	Sections     []string `json:"sections"`
	Skills       []string `json:"skills"`
	Formatting   []string `json:"formatting"`
	Achievements []string `json:"achievements"`
	ActionVerbs  []string `json:"action_verbs"`
	OverallTips  []string `json:"overall_tips"`
}

// ATSResult ATS评分结果
// Score 为六个类别分数之和，结构上不会超过100
type ATSResult struct {
	Score    int         `json:"score"`
	Grade    string      `json:"grade"`
	Feedback ATSFeedback `json:"feedback"`
}
