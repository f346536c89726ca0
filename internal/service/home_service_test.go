package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/inshionfu/gpt-mng-web/config"
	"github.com/inshionfu/gpt-mng-web/internal/model"
	"github.com/inshionfu/gpt-mng-web/internal/repository"
)

// ── 测试辅助 ──

func setupTestHomeService(mmuRepo *mockMmuRepo, promptRepo *mockPromptRepo) *homeService {
	repo := &repository.Repository{Mmu: mmuRepo, Prompt: promptRepo}
	svc := NewHomeService(repo, &config.ConsoleConfig{UserName: "测试用户"}, zap.NewNop()).(*homeService)
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local) }
	return svc
}

func ts(y int, m time.Month, d int) model.Timestamp {
	return model.Timestamp{Time: time.Date(y, m, d, 9, 0, 0, 0, time.Local)}
}

// ── Overview 测试 ──

func TestHomeService_Overview(t *testing.T) {
	defer goleak.VerifyNone(t)

	mmuRepo := newMockMmuRepo(
		model.Mmu{MmuID: "m1", CreateTime: ts(2024, time.June, 1)},
		model.Mmu{MmuID: "m2", CreateTime: ts(2024, time.June, 14)},
		model.Mmu{MmuID: "m3", CreateTime: ts(2024, time.May, 31)},
		model.Mmu{MmuID: "m4", CreateTime: ts(2023, time.June, 10)},
		model.Mmu{MmuID: "m5"},
	)
	promptRepo := newMockPromptRepo(samplePrompts()...)
	svc := setupTestHomeService(mmuRepo, promptRepo)

	resp, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview 应成功: %v", err)
	}

	want := map[string]int{"MMU总数": 5, "Prompt总数": 4, "实验中Prompt": 2, "本月新增": 2}
	if len(resp.Statistics) != len(want) {
		t.Fatalf("期望%d张统计卡片，实际=%d", len(want), len(resp.Statistics))
	}
	for _, s := range resp.Statistics {
		if s.Value != want[s.Title] {
			t.Errorf("%s 期望=%d，实际=%d", s.Title, want[s.Title], s.Value)
		}
	}
	if resp.Statistics[0].Color != "#1890ff" {
		t.Errorf("MMU总数颜色不符合预期: %s", resp.Statistics[0].Color)
	}
	if resp.Welcome != "欢迎使用Prompt管理系统" {
		t.Errorf("欢迎语不符合预期: %s", resp.Welcome)
	}
	if len(resp.QuickLinks) != 4 || resp.QuickLinks[3].Action != "help" {
		t.Errorf("快捷入口不符合预期: %+v", resp.QuickLinks)
	}
	if len(resp.Help) != 3 {
		t.Errorf("期望3段帮助内容，实际=%d", len(resp.Help))
	}
}

func TestHomeService_Overview_Failure(t *testing.T) {
	defer goleak.VerifyNone(t)

	promptRepo := newMockPromptRepo()
	promptRepo.listErr = errTransport
	svc := setupTestHomeService(newMockMmuRepo(), promptRepo)

	if _, err := svc.Overview(context.Background()); !errors.Is(err, errTransport) {
		t.Errorf("期望传输错误，实际: %v", err)
	}
}

// ── Shell 测试 ──

func TestHomeService_Shell(t *testing.T) {
	svc := setupTestHomeService(newMockMmuRepo(), newMockPromptRepo())

	cases := []struct {
		path     string
		selected string
		open     int
	}{
		{"", "/", 0},
		{"/", "/", 0},
		{"/mmu", "/mmu", 1},
		{"/prompt", "/prompt", 1},
	}
	for _, tc := range cases {
		shell := svc.Shell(tc.path)
		if len(shell.SelectedKeys) != 1 || shell.SelectedKeys[0] != tc.selected {
			t.Errorf("path=%q 选中菜单不符合预期: %v", tc.path, shell.SelectedKeys)
		}
		if len(shell.OpenKeys) != tc.open {
			t.Errorf("path=%q 展开菜单不符合预期: %v", tc.path, shell.OpenKeys)
		}
	}

	shell := svc.Shell("/mmu")
	if shell.Title != "Prompt管理系统" || shell.Greeting != "欢迎您，测试用户" {
		t.Errorf("外壳文案不符合预期: %s / %s", shell.Title, shell.Greeting)
	}
	if shell.OpenKeys[0] != "prompt" {
		t.Error("MMU 与 Prompt 页面应展开 prompt 子菜单")
	}
	if len(shell.Menu) != 2 || len(shell.Menu[1].Children) != 2 {
		t.Errorf("菜单结构不符合预期: %+v", shell.Menu)
	}
	if shell.UserMenu[0].Label != "退出登录" {
		t.Error("用户菜单应包含 退出登录")
	}
}
