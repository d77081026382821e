package types

// Job 职位搜索API返回的单条职位信息（已整形）
type Job struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	SalaryMin    *float64 `json:"salary_min"`
	SalaryMax    *float64 `json:"salary_max"`
	ContractType string   `json:"contract_type"`
	URL          string   `json:"url"`
	Created      string   `json:"created"`
}

// JobSearchResult 职位搜索结果
// 失败时 Success 为 false 且 Error 给出分类后的原因，不抛Go错误
type JobSearchResult struct {
	Success      bool   `json:"success"`
	Count        int    `json:"count"`
	Jobs         []Job  `json:"jobs"`
	TotalResults int    `json:"total_results"`
	Error        string `json:"error,omitempty"`
}

// JobMatch 单个职位与简历的匹配结果
type JobMatch struct {
	Job        Job     `json:"job"`
	MatchScore float64 `json:"match_score"`
	MatchGrade string  `json:"match_grade"`
}

// MatchResult 简历与一批职位的完整匹配结果
// AverageScore 基于参与分析的全部职位计算，而非仅Top N
type MatchResult struct {
	Matches           []JobMatch `json:"matches"`
	TotalJobsAnalyzed int        `json:"total_jobs_analyzed"`
	AverageScore      float64    `json:"average_score"`
}
