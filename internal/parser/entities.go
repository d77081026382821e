package parser

import (
	"context"

	"resume-analyzer-go/internal/types"
)

// RecognizedEntity NER服务返回的单个实体
type RecognizedEntity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// EntityRecognizer 命名实体识别能力接口
// 生产实现委托外部NER服务；测试可以注入确定性的假实现
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]RecognizedEntity, error)
}

// EntityExtractor 把NER结果按类别分桶
type EntityExtractor struct {
	recognizer EntityRecognizer
}

// NewEntityExtractor 创建实体提取器
func NewEntityExtractor(recognizer EntityRecognizer) *EntityExtractor {
	return &EntityExtractor{recognizer: recognizer}
}

// Extract 识别并按 PERSON/ORG/GPE/DATE 分桶，其余类别丢弃
// 每个桶去重并保留首次出现顺序；识别失败时返回错误由调用方降级处理
func (e *EntityExtractor) Extract(ctx context.Context, text string) (types.Entities, error) {
	// 空桶序列化为 []，而不是 null
	entities := types.Entities{
		Persons:       []string{},
		Organizations: []string{},
		Locations:     []string{},
		Dates:         []string{},
	}
	if e.recognizer == nil {
		return entities, nil
	}

	recognized, err := e.recognizer.Recognize(ctx, text)
	if err != nil {
		return entities, err
	}

	persons := newDedupList()
	organizations := newDedupList()
	locations := newDedupList()
	dates := newDedupList()

	for _, ent := range recognized {
		switch ent.Label {
		case "PERSON":
			persons.add(ent.Text)
		case "ORG":
			organizations.add(ent.Text)
		case "GPE":
			locations.add(ent.Text)
		case "DATE":
			dates.add(ent.Text)
		}
	}

	entities.Persons = persons.items
	entities.Organizations = organizations.items
	entities.Locations = locations.items
	entities.Dates = dates.items
	return entities, nil
}

// dedupList 保序去重的字符串集合
type dedupList struct {
	seen  map[string]bool
	items []string
}

func newDedupList() *dedupList {
	return &dedupList{seen: make(map[string]bool), items: []string{}}
}

func (d *dedupList) add(s string) {
	if d.seen[s] {
		return
	}
	d.seen[s] = true
	d.items = append(d.items, s)
}
