package types

// ContactInfo 从简历文本中提取的联系方式
// 空字符串表示未提取到对应字段
type ContactInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Entities 命名实体识别结果，按类别分桶
// 每个桶内部已去重，保留首次出现的顺序
type Entities struct {
	Persons       []string `json:"persons"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
	Dates         []string `json:"dates"`
}

// ParsedResume 一次解析产出的完整结构化简历记录
// 在单个请求内创建并使用，解析完成后不再修改
type ParsedResume struct {
	RawText     string      `json:"raw_text"`
	ContactInfo ContactInfo `json:"contact_info"`
	Skills      []string    `json:"skills"`
	Entities    Entities    `json:"entities"`
	Education   []string    `json:"education"`
	WordCount   int         `json:"word_count"`
	CharCount   int         `json:"char_count"`
	FilePath    string      `json:"file_path,omitempty"`
}
