package dto

// ── Prompt 模块 DTO ──

// PromptViewRequest 进入 Prompt 视图，mmu 为开启实验后带来的预选提示
type PromptViewRequest struct {
	Mmu string `form:"mmu"`
}

// SelectMmuRequest 顶部 MMU 选择器
type SelectMmuRequest struct {
	MmuName string `json:"mmu_name" binding:"required"`
}

// GroupFilterRequest 组内状态筛选
type GroupFilterRequest struct {
	MmuName string `json:"mmu_name" binding:"required"`
	Status  string `json:"status"   binding:"required,oneof=all 0 1 2"`
}

// ActiveKeysRequest 展开的折叠面板
type ActiveKeysRequest struct {
	ActiveKeys []string `json:"active_keys"`
}

// PromptActionRequest 推全/废弃的确认请求
type PromptActionRequest struct {
	Action string `json:"action" binding:"required,oneof=flowAll discard"`
}

// PromptRow Prompt 表格行
type PromptRow struct {
	Index      int      `json:"index"`
	PromptID   string   `json:"prompt_id"`
	MmuID      string   `json:"mmu_id"`
	Name       string   `json:"name"`
	Content    string   `json:"content"`
	Rate       float64  `json:"rate"`
	Percentage string   `json:"percentage"`
	Score      string   `json:"score"`
	Status     Tag      `json:"status"`
	Actions    []string `json:"actions"`
	CreateTime string   `json:"create_time"`
	UpdateTime string   `json:"update_time"`
}

// PromptGroupView 单个 MMU 面板
type PromptGroupView struct {
	MmuName      string      `json:"mmu_name"`
	StatusFilter string      `json:"status_filter"`
	Rows         []PromptRow `json:"rows"`
}

// PromptViewResponse Prompt 管理视图
type PromptViewResponse struct {
	SelectedMmu   string            `json:"selected_mmu"`
	MmuOptions    []Option          `json:"mmu_options"`
	StatusOptions []Option          `json:"status_options"`
	ActiveKeys    []string          `json:"active_keys"`
	Groups        []PromptGroupView `json:"groups"`
	Error         string            `json:"error,omitempty"`
}
