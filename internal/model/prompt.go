package model

// PromptStatus Prompt 生命周期状态（整型编码）
type PromptStatus int

const (
	PromptStatusDiscarded     PromptStatus = 0
	PromptStatusRolledOut     PromptStatus = 1
	PromptStatusExperimenting PromptStatus = 2
)

// Label 状态标签文本
func (s PromptStatus) Label() string {
	switch s {
	case PromptStatusDiscarded:
		return "废弃"
	case PromptStatusRolledOut:
		return "推全"
	case PromptStatusExperimenting:
		return "实验中"
	default:
		return "未知"
	}
}

// Color 状态标签颜色
func (s PromptStatus) Color() string {
	switch s {
	case PromptStatusDiscarded:
		return ColorRed
	case PromptStatusRolledOut:
		return ColorGreen
	default:
		return ColorBlue
	}
}

// Prompt 归属于某个 MMU 的带权内容变体
type Prompt struct {
	PromptID   ID           `json:"prompt_id"`
	MmuID      ID           `json:"mmu_id"`
	MmuName    string       `json:"mmu_name"`
	Name       string       `json:"name"`
	Content    string       `json:"content"`
	Rate       float64      `json:"rate"`
	Score      *float64     `json:"score"`
	Status     PromptStatus `json:"status"`
	CreateTime Timestamp    `json:"createTime"`
	UpdateTime Timestamp    `json:"updateTime"`
}
