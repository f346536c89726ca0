package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/inshionfu/gpt-mng-web/config"
	"github.com/inshionfu/gpt-mng-web/internal/dto"
	"github.com/inshionfu/gpt-mng-web/internal/model"
	"github.com/inshionfu/gpt-mng-web/internal/repository"
)

// ConsoleTitle 控制台标题
const ConsoleTitle = "Prompt管理系统"

// HomeService 首页概览与导航外壳
type HomeService interface {
	// Overview 首页：统计卡片基于实时数据，两个列表并发拉取
	Overview(ctx context.Context) (*dto.HomeResponse, error)
	// Shell 导航外壳，选中与展开的菜单由当前路径决定
	Shell(path string) *dto.ShellResponse
}

type homeService struct {
	repo    *repository.Repository
	console *config.ConsoleConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewHomeService 创建 HomeService 实例
func NewHomeService(repo *repository.Repository, console *config.ConsoleConfig, logger *zap.Logger) HomeService {
	return &homeService{repo: repo, console: console, logger: logger, now: time.Now}
}

// ────────────────────── Overview ──────────────────────

func (s *homeService) Overview(ctx context.Context) (*dto.HomeResponse, error) {
	var (
		mmus    []model.Mmu
		prompts []model.Prompt
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.repo.Mmu.List(gctx)
		if err != nil {
			return err
		}
		mmus = list
		return nil
	})
	g.Go(func() error {
		list, err := s.repo.Prompt.List(gctx)
		if err != nil {
			return err
		}
		prompts = list
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("获取首页概览失败", zap.Error(err))
		return nil, err
	}

	experimenting := 0
	for _, p := range prompts {
		if p.Status == model.PromptStatusExperimenting {
			experimenting++
		}
	}

	return &dto.HomeResponse{
		Welcome: "欢迎使用" + ConsoleTitle,
		Intro:   "本系统提供MMU和Prompt的全生命周期管理，帮助您高效地组织和使用AI资源。",
		Statistics: []dto.Statistic{
			{Title: "MMU总数", Value: len(mmus), Color: "#1890ff"},
			{Title: "Prompt总数", Value: len(prompts), Color: "#52c41a"},
			{Title: "实验中Prompt", Value: experimenting, Color: "#722ed1"},
			{Title: "本月新增", Value: createdThisMonth(mmus, s.now()), Color: "#fa8c16"},
		},
		QuickLinks: quickLinks,
		Help:       helpSections,
	}, nil
}

// createdThisMonth 当前自然月内创建的 MMU 数量（按本地时区）
func createdThisMonth(mmus []model.Mmu, now time.Time) int {
	now = now.Local()
	n := 0
	for _, m := range mmus {
		if m.CreateTime.IsZero() {
			continue
		}
		ct := m.CreateTime.Local()
		if ct.Year() == now.Year() && ct.Month() == now.Month() {
			n++
		}
	}
	return n
}

// ────────────────────── Shell ──────────────────────

func (s *homeService) Shell(path string) *dto.ShellResponse {
	if path == "" {
		path = "/"
	}

	openKeys := []string{}
	if strings.HasPrefix(path, "/mmu") || strings.HasPrefix(path, "/prompt") {
		openKeys = []string{"prompt"}
	}

	return &dto.ShellResponse{
		Title:        ConsoleTitle,
		Greeting:     "欢迎您，" + s.console.UserName,
		UserMenu:     []dto.MenuItem{{Key: "logout", Label: "退出登录"}},
		Menu:         menu,
		SelectedKeys: []string{path},
		OpenKeys:     openKeys,
	}
}

// ── 静态内容 ──

var menu = []dto.MenuItem{
	{Key: "/", Label: "首页", Link: "/"},
	{
		Key:   "prompt",
		Label: "Prompt管理",
		Children: []dto.MenuItem{
			{Key: "/mmu", Label: "mmu管理", Link: "/mmu"},
			{Key: "/prompt", Label: "prompt管理", Link: "/prompt"},
		},
	},
}

var quickLinks = []dto.QuickLink{
	{Title: "MMU管理", Description: "管理和配置MMU模型", Link: "/mmu"},
	{Title: "Prompt管理", Description: "创建和编辑Prompt模板", Link: "/prompt"},
	{Title: "系统设置", Description: "配置系统参数和权限", Link: "#"},
	{Title: "使用帮助", Description: "查看系统使用指南", Link: "#", Action: "help"},
}

var helpSections = []dto.HelpSection{
	{
		Title:   "MMU管理",
		Content: "在MMU管理页面，您可以：\n• 创建新的MMU实验\n• 设置MMU的策略和排序\n• 查看和编辑MMU的详细信息\n• 管理MMU的状态（实验中/已推全/关闭）",
	},
	{
		Title:   "Prompt管理",
		Content: "在Prompt管理页面，您可以：\n• 查看所有MMU下的Prompt列表\n• 管理Prompt的状态和流量分配\n• 进行Prompt的推全或废弃操作\n• 按MMU名称和状态筛选Prompt",
	},
	{
		Title:   "使用技巧",
		Content: "• 使用顶部的状态筛选快速定位目标MMU/Prompt\n• 通过排序功能优化MMU的展示顺序\n• 及时更新Prompt状态以确保系统正常运行\n• 定期检查数据统计，了解系统运行情况",
	},
}
