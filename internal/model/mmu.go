package model

// MmuStatus MMU 状态
// 列表筛选使用 实验中/已推全/关闭，编辑表单使用 实验中/已上线/已下线，两套取值并存
type MmuStatus string

const (
	MmuStatusExperimenting MmuStatus = "实验中"
	MmuStatusRolledOut     MmuStatus = "已推全"
	MmuStatusClosed        MmuStatus = "关闭"
	MmuStatusOnline        MmuStatus = "已上线"
	MmuStatusOffline       MmuStatus = "已下线"
)

// Color 状态标签颜色
func (s MmuStatus) Color() string {
	switch s {
	case MmuStatusRolledOut:
		return ColorGreen
	case MmuStatusClosed:
		return ColorRed
	default:
		return ColorBlue
	}
}

// Strategy MMU 策略（创建时允许自由文本）
const (
	StrategyPerItem   = "单项概率"
	StrategyAggregate = "整体概率"
)

// Mmu 实验/策略分组
type Mmu struct {
	MmuID       ID        `json:"mmu_id"`
	MmuName     string    `json:"mmu_name"`
	Strategy    string    `json:"strategy"`
	Sort        int       `json:"sort"`
	Status      MmuStatus `json:"status"`
	Description string    `json:"description"`
	Desc        string    `json:"desc,omitempty"`
	CreateTime  Timestamp `json:"create_time"`
	UpdateTime  Timestamp `json:"update_time"`
}

// Describe 描述信息，后端可能以 description 或 desc 返回
func (m *Mmu) Describe() string {
	if m.Description != "" {
		return m.Description
	}
	return m.Desc
}

// MmuUpdate 更新 MMU 的请求体（mmu_id 放在 body 中寻址）
type MmuUpdate struct {
	MmuID       ID        `json:"mmu_id"`
	MmuName     string    `json:"mmu_name"`
	Strategy    string    `json:"strategy"`
	Sort        int       `json:"sort"`
	Status      MmuStatus `json:"status"`
	Description string    `json:"description"`
}

// PromptDraft 开启实验时随 MMU 一并提交的 Prompt
type PromptDraft struct {
	Name    string  `json:"name"`
	Content string  `json:"content"`
	Rate    float64 `json:"rate"`
}

// MmuOpen 开启实验（MMU + 初始 Prompt 组）的合并请求体
type MmuOpen struct {
	MmuName     string        `json:"mmu_name"`
	Strategy    string        `json:"strategy"`
	Sort        int           `json:"sort"`
	Description string        `json:"description"`
	Desc        string        `json:"desc"`
	Prompts     []PromptDraft `json:"prompts"`
}
