package dto

// ── MMU 模块 DTO ──

// MmuListRequest MMU 列表查询参数（为空时回到全部状态、服务端顺序）
type MmuListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=all 关闭 实验中 已推全"`
	Sort   string `form:"sort"   binding:"omitempty,oneof=none ascend descend"`
}

// MmuFilterRequest 修改列表筛选（不重新拉取）
type MmuFilterRequest struct {
	Status string `json:"status" binding:"required,oneof=all 关闭 实验中 已推全"`
	Sort   string `json:"sort"   binding:"omitempty,oneof=none ascend descend"`
}

// PromptDraftRequest 开启实验表单中的单个 Prompt
type PromptDraftRequest struct {
	Name    string   `json:"name"    binding:"required"`
	Content string   `json:"content" binding:"required"`
	Rate    *float64 `json:"rate"    binding:"required,gte=0,lte=1"`
}

// OpenMmuRequest 开启实验（MMU 配置 + Prompt 配置）
type OpenMmuRequest struct {
	MmuName     string               `json:"mmu_name"    binding:"required"`
	Strategy    string               `json:"strategy"    binding:"required"`
	Sort        *int                 `json:"sort"        binding:"required"`
	Description string               `json:"description"`
	Prompts     []PromptDraftRequest `json:"prompts"     binding:"required,min=1,dive"`
}

// UpdateMmuRequest 编辑 MMU
type UpdateMmuRequest struct {
	MmuName     string `json:"mmu_name"    binding:"required"`
	Strategy    string `json:"strategy"    binding:"required,oneof=单项概率 整体概率"`
	Sort        *int   `json:"sort"        binding:"required"`
	Status      string `json:"status"      binding:"required,oneof=实验中 已上线 已下线"`
	Description string `json:"description"`
}

// EqualSplitRequest 等概率（仅改写表单草稿，不落库）
type EqualSplitRequest struct {
	Prompts []EqualSplitDraft `json:"prompts"`
}

// EqualSplitDraft 等概率的草稿行，未填写字段允许为空
type EqualSplitDraft struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// EqualSplitResponse 等概率结果
type EqualSplitResponse struct {
	Prompts []DraftResponse `json:"prompts"`
}

// DraftResponse 改写后的草稿行（rate 为两位小数文本）
type DraftResponse struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Rate    string `json:"rate"`
}

// MmuRow MMU 表格行
type MmuRow struct {
	Index       int    `json:"index"`
	MmuID       string `json:"mmu_id"`
	MmuName     string `json:"mmu_name"`
	Strategy    string `json:"strategy"`
	Sort        int    `json:"sort"`
	Status      Tag    `json:"status"`
	Description string `json:"description"`
	CreateTime  string `json:"create_time"`
	UpdateTime  string `json:"update_time"`
}

// MmuListResponse MMU 管理视图
type MmuListResponse struct {
	StatusFilter  string   `json:"status_filter"`
	StatusOptions []Option `json:"status_options"`
	Sort          string   `json:"sort"`
	Rows          []MmuRow `json:"rows"`
	Total         int      `json:"total"`
	EmptyText     string   `json:"empty_text"`
	Error         string   `json:"error,omitempty"`
}

// OpenMmuResponse 开启实验成功后的跳转提示
type OpenMmuResponse struct {
	Navigation Navigation `json:"navigation"`
}
