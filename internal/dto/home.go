package dto

// ── 首页与导航 DTO ──

// Statistic 概览卡片
type Statistic struct {
	Title string `json:"title"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// QuickLink 快捷入口
type QuickLink struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Action      string `json:"action,omitempty"` // help: 打开使用帮助
}

// HelpSection 使用帮助段落
type HelpSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// HomeResponse 首页视图
type HomeResponse struct {
	Welcome    string        `json:"welcome"`
	Intro      string        `json:"intro"`
	Statistics []Statistic   `json:"statistics"`
	QuickLinks []QuickLink   `json:"quick_links"`
	Help       []HelpSection `json:"help"`
}

// MenuItem 导航菜单项
type MenuItem struct {
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Link     string     `json:"link,omitempty"`
	Children []MenuItem `json:"children,omitempty"`
}

// ShellResponse 导航外壳（标题、用户、菜单及选中状态）
type ShellResponse struct {
	Title        string     `json:"title"`
	Greeting     string     `json:"greeting"`
	UserMenu     []MenuItem `json:"user_menu"`
	Menu         []MenuItem `json:"menu"`
	SelectedKeys []string   `json:"selected_keys"`
	OpenKeys     []string   `json:"open_keys"`
}
