package constants

const (
	// Application-level constants
	ServiceName    = "resume-analyzer-go"
	ServiceVersion = "1.0.0"

	// API route prefix
	APIPrefix = "/api/v1"

	// 上传文件的默认临时目录
	DefaultUploadDir = "uploads"

	// ATS评分等级
	GradeExcellent = "Excellent"
	GradeGood      = "Good"
	GradeFair      = "Fair"
	GradePoor      = "Poor"

	// 职位匹配等级
	MatchGradeExcellent = "Excellent Match"
	MatchGradeGood      = "Good Match"
	MatchGradeFair      = "Fair Match"
	MatchGradePoor      = "Poor Match"
)
