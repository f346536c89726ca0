package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/inshionfu/gpt-mng-web/internal/allocation"
	"github.com/inshionfu/gpt-mng-web/internal/dto"
	"github.com/inshionfu/gpt-mng-web/internal/model"
	"github.com/inshionfu/gpt-mng-web/internal/repository"
	apperrors "github.com/inshionfu/gpt-mng-web/pkg/errors"
)

// ── Prompt 模块业务错误 ──

var (
	ErrPromptNotFound   = errors.New("Prompt不存在")
	ErrGroupNotFound    = errors.New("MMU分组不存在")
	ErrActionNotAllowed = errors.New("当前状态不允许该操作")
)

// PromptStatusOptions 组内状态筛选项
var PromptStatusOptions = []dto.Option{
	{Value: FilterAll, Label: "全部状态"},
	{Value: "2", Label: "实验中"},
	{Value: "1", Label: "已推全"},
	{Value: "0", Label: "废弃"},
}

// PromptStore Prompt 管理视图模型
//
// 持有按 mmu_name 分组的 Prompt 快照、顶部 MMU 选择、组内状态筛选与展开面板。
// 推全与废弃都需要两阶段确认，成功后整表刷新，不做本地乐观更新。
type PromptStore interface {
	// Enter 进入视图：拉取并分组；hint 非空时预选该 MMU 并展开其面板
	Enter(ctx context.Context, hint string) error
	// Refresh 拉取并分组，所有组内筛选重置为全部
	Refresh(ctx context.Context) error
	// SelectMmu 顶部 MMU 选择器，不重置组内筛选
	SelectMmu(name string) error
	SetGroupFilter(mmuName, status string) error
	SetActiveKeys(keys []string)
	View() *dto.PromptViewResponse
	// PrepareAction 打开推全/废弃确认框
	PrepareAction(action ConfirmAction, promptID string) (*dto.ConfirmDialog, error)
	// ConfirmAction 凭令牌执行已确认的操作
	ConfirmAction(ctx context.Context, token string) (ConfirmAction, error)
	PromoteToFull(ctx context.Context, mmuID, promptID model.ID) error
	Discard(ctx context.Context, promptID model.ID) error
}

type promptStore struct {
	repo      *repository.Repository
	confirmer *Confirmer
	logger    *zap.Logger

	mu           sync.RWMutex
	groups       []allocation.Group
	groupFilters map[string]string
	selectedMmu  string
	activeKeys   []string
	loadErr      string
}

// NewPromptStore 创建 PromptStore 实例
func NewPromptStore(repo *repository.Repository, confirmer *Confirmer, logger *zap.Logger) PromptStore {
	return &promptStore{
		repo:         repo,
		confirmer:    confirmer,
		logger:       logger.With(zap.String("store", "prompt")),
		groups:       []allocation.Group{},
		groupFilters: make(map[string]string),
		selectedMmu:  FilterAll,
		activeKeys:   []string{},
	}
}

// ────────────────────── Enter / Refresh ──────────────────────

func (s *promptStore) Enter(ctx context.Context, hint string) error {
	// 进入视图即重置为初始状态，创建后跳转的提示在拉取失败时同样生效
	s.mu.Lock()
	if hint == "" {
		s.selectedMmu = FilterAll
		s.activeKeys = []string{}
	} else {
		s.selectedMmu = hint
		s.activeKeys = []string{hint}
	}
	s.mu.Unlock()

	return s.Refresh(ctx)
}

func (s *promptStore) Refresh(ctx context.Context) error {
	list, err := s.repo.Prompt.List(ctx)
	if err != nil {
		s.logger.Error("获取Prompt列表失败", zap.Error(err))
		s.mu.Lock()
		s.loadErr = apperrors.Toast("获取Prompt列表", err)
		s.mu.Unlock()
		return err
	}

	groups := allocation.GroupByMmuName(list)
	filters := make(map[string]string, len(groups))
	for _, g := range groups {
		filters[g.MmuName] = FilterAll
	}

	s.mu.Lock()
	s.groups = groups
	s.groupFilters = filters
	s.loadErr = ""
	s.mu.Unlock()
	return nil
}

// ────────────────────── 选择与筛选 ──────────────────────

func (s *promptStore) SelectMmu(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name != FilterAll && s.findGroup(name) == nil {
		return fmt.Errorf("%w: %s", ErrGroupNotFound, name)
	}
	s.selectedMmu = name
	return nil
}

func (s *promptStore) SetGroupFilter(mmuName, status string) error {
	if !validPromptFilter(status) {
		return fmt.Errorf("%w: status=%s", ErrInvalidFilter, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findGroup(mmuName) == nil {
		return fmt.Errorf("%w: %s", ErrGroupNotFound, mmuName)
	}
	s.groupFilters[mmuName] = status
	return nil
}

func (s *promptStore) SetActiveKeys(keys []string) {
	cp := make([]string, len(keys))
	copy(cp, keys)

	s.mu.Lock()
	s.activeKeys = cp
	s.mu.Unlock()
}

// ────────────────────── View ──────────────────────

func (s *promptStore) View() *dto.PromptViewResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	options := make([]dto.Option, 0, len(s.groups)+1)
	options = append(options, dto.Option{Value: FilterAll, Label: "全部MMU"})
	for _, g := range s.groups {
		options = append(options, dto.Option{Value: g.MmuName, Label: g.MmuName})
	}

	var visible []allocation.Group
	if s.selectedMmu == FilterAll {
		visible = s.groups
	} else if g := s.findGroup(s.selectedMmu); g != nil {
		visible = []allocation.Group{*g}
	} else {
		// 预选的 MMU 尚无 Prompt 时展示空面板
		visible = []allocation.Group{{MmuName: s.selectedMmu}}
	}

	groups := make([]dto.PromptGroupView, 0, len(visible))
	for _, g := range visible {
		filter := s.groupFilters[g.MmuName]
		if filter == "" {
			filter = FilterAll
		}
		groups = append(groups, dto.PromptGroupView{
			MmuName:      g.MmuName,
			StatusFilter: filter,
			Rows:         buildPromptRows(g.Prompts, filter),
		})
	}

	activeKeys := make([]string, len(s.activeKeys))
	copy(activeKeys, s.activeKeys)

	return &dto.PromptViewResponse{
		SelectedMmu:   s.selectedMmu,
		MmuOptions:    options,
		StatusOptions: PromptStatusOptions,
		ActiveKeys:    activeKeys,
		Groups:        groups,
		Error:         s.loadErr,
	}
}

// ────────────────────── 两阶段确认 ──────────────────────

func (s *promptStore) PrepareAction(action ConfirmAction, promptID string) (*dto.ConfirmDialog, error) {
	s.mu.RLock()
	target := s.findPrompt(model.ID(promptID))
	s.mu.RUnlock()

	if target == nil {
		return nil, ErrPromptNotFound
	}
	if !actionAllowedFor(action, target.Status) {
		return nil, fmt.Errorf("%w: %s on status %d", ErrActionNotAllowed, action, target.Status)
	}

	content := "确定要废弃该Prompt吗？"
	if action == ActionFlowAll {
		content = "确定要将该Prompt推全吗？"
	}

	token, expiresAt := s.confirmer.Issue(Intent{
		Action:   action,
		MmuID:    target.MmuID,
		MmuName:  target.MmuName,
		PromptID: target.PromptID,
	})

	return &dto.ConfirmDialog{
		Title:      "确认操作",
		Content:    content,
		OkText:     "确认",
		CancelText: "取消",
		Danger:     action == ActionDiscard,
		Token:      token,
		ExpiresAt:  expiresAt.Format(time.RFC3339),
	}, nil
}

func (s *promptStore) ConfirmAction(ctx context.Context, token string) (ConfirmAction, error) {
	intent, err := s.confirmer.Consume(token, ActionFlowAll, ActionDiscard)
	if err != nil {
		return "", err
	}

	switch intent.Action {
	case ActionFlowAll:
		return intent.Action, s.PromoteToFull(ctx, intent.MmuID, intent.PromptID)
	default:
		return intent.Action, s.Discard(ctx, intent.PromptID)
	}
}

// ────────────────────── 状态流转 ──────────────────────

// PromoteToFull 推全；同组其他 Prompt 不做联动调整
func (s *promptStore) PromoteToFull(ctx context.Context, mmuID, promptID model.ID) error {
	if err := s.repo.Prompt.FlowAll(ctx, mmuID, promptID); err != nil {
		s.logger.Error("流量推全失败",
			zap.String("mmu_id", mmuID.String()),
			zap.String("prompt_id", promptID.String()),
			zap.Error(err),
		)
		return err
	}
	s.refreshAfterWrite(ctx)
	return nil
}

func (s *promptStore) Discard(ctx context.Context, promptID model.ID) error {
	if err := s.repo.Prompt.Abort(ctx, promptID); err != nil {
		s.logger.Error("Prompt废弃失败", zap.String("prompt_id", promptID.String()), zap.Error(err))
		return err
	}
	s.refreshAfterWrite(ctx)
	return nil
}

// ── 内部辅助方法 ──

func (s *promptStore) refreshAfterWrite(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("写操作后刷新Prompt列表失败", zap.Error(err))
	}
}

// findGroup 调用方需持有锁
func (s *promptStore) findGroup(name string) *allocation.Group {
	for i := range s.groups {
		if s.groups[i].MmuName == name {
			return &s.groups[i]
		}
	}
	return nil
}

// findPrompt 调用方需持有锁
func (s *promptStore) findPrompt(id model.ID) *model.Prompt {
	for gi := range s.groups {
		for pi := range s.groups[gi].Prompts {
			if s.groups[gi].Prompts[pi].PromptID == id {
				p := s.groups[gi].Prompts[pi]
				return &p
			}
		}
	}
	return nil
}

func validPromptFilter(status string) bool {
	for _, o := range PromptStatusOptions {
		if o.Value == status {
			return true
		}
	}
	return false
}

// allowedActions 废弃后不再提供操作；未推全（含未知状态）均可推全
func allowedActions(status model.PromptStatus) []string {
	actions := make([]string, 0, 2)
	if status == model.PromptStatusDiscarded {
		return actions
	}
	if status != model.PromptStatusRolledOut {
		actions = append(actions, string(ActionFlowAll))
	}
	return append(actions, string(ActionDiscard))
}

func actionAllowedFor(action ConfirmAction, status model.PromptStatus) bool {
	for _, a := range allowedActions(status) {
		if a == string(action) {
			return true
		}
	}
	return false
}

// buildPromptRows 按组内筛选输出行；百分比始终基于完整分组计算
func buildPromptRows(group []model.Prompt, filter string) []dto.PromptRow {
	rows := make([]dto.PromptRow, 0, len(group))
	for _, p := range group {
		if filter != FilterAll && strconv.Itoa(int(p.Status)) != filter {
			continue
		}
		score := "-"
		if p.Score != nil {
			score = strconv.FormatFloat(*p.Score, 'f', -1, 64)
		}
		rows = append(rows, dto.PromptRow{
			Index:      len(rows) + 1,
			PromptID:   p.PromptID.String(),
			MmuID:      p.MmuID.String(),
			Name:       p.Name,
			Content:    p.Content,
			Rate:       p.Rate,
			Percentage: allocation.Percentage(p, group),
			Score:      score,
			Status:     dto.Tag{Text: p.Status.Label(), Color: p.Status.Color()},
			Actions:    allowedActions(p.Status),
			CreateTime: p.CreateTime.Display(),
			UpdateTime: p.UpdateTime.Display(),
		})
	}
	return rows
}
