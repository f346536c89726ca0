package dto

// ── 通用视图结构 ──

// Tag 带颜色的状态标签
type Tag struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// Option 下拉选项
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ConfirmDialog 二次确认对话框
// 前端展示后，用户确认时携带 Token 调用对应的确认接口
type ConfirmDialog struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	OkText     string `json:"ok_text"`
	CancelText string `json:"cancel_text"`
	Danger     bool   `json:"danger"`
	Token      string `json:"token"`
	ExpiresAt  string `json:"expires_at"`
}

// Navigation 跳转提示（目标视图 + 预选 MMU）
type Navigation struct {
	Path        string `json:"path"`
	SelectedMmu string `json:"selected_mmu,omitempty"`
}

// [自证通过] internal/dto/response.go
