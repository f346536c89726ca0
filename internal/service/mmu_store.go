package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/inshionfu/gpt-mng-web/internal/allocation"
	"github.com/inshionfu/gpt-mng-web/internal/dto"
	"github.com/inshionfu/gpt-mng-web/internal/model"
	"github.com/inshionfu/gpt-mng-web/internal/repository"
	apperrors "github.com/inshionfu/gpt-mng-web/pkg/errors"
)

// ── MMU 模块业务错误 ──

var (
	ErrMmuNotFound   = errors.New("MMU不存在")
	ErrNoPrompts     = errors.New("至少创建一个Prompt")
	ErrInvalidFilter = errors.New("无效的筛选条件")
)

// ── 列表筛选与排序取值 ──

const (
	FilterAll = "all"

	SortNone    = "none"
	SortAscend  = "ascend"
	SortDescend = "descend"
)

// MmuStatusOptions 列表状态筛选项（与编辑表单的状态取值不同）
var MmuStatusOptions = []dto.Option{
	{Value: FilterAll, Label: "全部"},
	{Value: string(model.MmuStatusClosed), Label: string(model.MmuStatusClosed)},
	{Value: string(model.MmuStatusExperimenting), Label: string(model.MmuStatusExperimenting)},
	{Value: string(model.MmuStatusRolledOut), Label: string(model.MmuStatusRolledOut)},
}

// MmuStore MMU 管理视图模型
//
// 持有最近一次成功拉取的 MMU 列表。任何写操作只在后端返回成功后触发整表刷新，
// 失败时不修改本地状态。
type MmuStore interface {
	// Refresh 拉取全部 MMU；失败时保留旧快照并设置错误横幅
	Refresh(ctx context.Context) error
	// SetFilter 修改状态筛选与排序，不触发拉取
	SetFilter(status, sortOrder string) error
	// View 以当前筛选渲染列表
	View() *dto.MmuListResponse
	// Open 开启实验：MMU 与初始 Prompt 一次提交
	Open(ctx context.Context, req *dto.OpenMmuRequest) (*dto.OpenMmuResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateMmuRequest) error
	// PrepareDelete 打开删除确认框
	PrepareDelete(id string) (*dto.ConfirmDialog, error)
	// Delete 凭确认令牌删除
	Delete(ctx context.Context, token string) (*Intent, error)
	// EqualSplit 等概率改写表单草稿
	EqualSplit(req *dto.EqualSplitRequest) *dto.EqualSplitResponse
}

type mmuStore struct {
	repo      *repository.Repository
	confirmer *Confirmer
	logger    *zap.Logger

	mu           sync.RWMutex
	records      []model.Mmu
	loadErr      string
	statusFilter string
	sortOrder    string
}

// NewMmuStore 创建 MmuStore 实例
func NewMmuStore(repo *repository.Repository, confirmer *Confirmer, logger *zap.Logger) MmuStore {
	return &mmuStore{
		repo:         repo,
		confirmer:    confirmer,
		logger:       logger.With(zap.String("store", "mmu")),
		records:      []model.Mmu{},
		statusFilter: FilterAll,
		sortOrder:    SortNone,
	}
}

// ────────────────────── Refresh ──────────────────────

func (s *mmuStore) Refresh(ctx context.Context) error {
	list, err := s.repo.Mmu.List(ctx)
	if err != nil {
		s.logger.Error("获取MMU列表失败", zap.Error(err))
		s.mu.Lock()
		s.loadErr = apperrors.Toast("获取MMU列表", err)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.records = list
	s.loadErr = ""
	s.mu.Unlock()
	return nil
}

// ────────────────────── Filter / View ──────────────────────

func (s *mmuStore) SetFilter(status, sortOrder string) error {
	if status != "" && !validMmuFilter(status) {
		return fmt.Errorf("%w: status=%s", ErrInvalidFilter, status)
	}
	switch sortOrder {
	case "", SortNone, SortAscend, SortDescend:
	default:
		return fmt.Errorf("%w: sort=%s", ErrInvalidFilter, sortOrder)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if status != "" {
		s.statusFilter = status
	}
	if sortOrder != "" {
		s.sortOrder = sortOrder
	}
	return nil
}

func (s *mmuStore) View() *dto.MmuListResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]model.Mmu, 0, len(s.records))
	for _, m := range s.records {
		if s.statusFilter == FilterAll || string(m.Status) == s.statusFilter {
			filtered = append(filtered, m)
		}
	}

	switch s.sortOrder {
	case SortAscend:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Sort < filtered[j].Sort })
	case SortDescend:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Sort > filtered[j].Sort })
	}

	rows := make([]dto.MmuRow, 0, len(filtered))
	for i := range filtered {
		rows = append(rows, toMmuRow(i+1, &filtered[i]))
	}

	return &dto.MmuListResponse{
		StatusFilter:  s.statusFilter,
		StatusOptions: MmuStatusOptions,
		Sort:          s.sortOrder,
		Rows:          rows,
		Total:         len(rows),
		EmptyText:     "暂无数据",
		Error:         s.loadErr,
	}
}

// ────────────────────── Open ──────────────────────

func (s *mmuStore) Open(ctx context.Context, req *dto.OpenMmuRequest) (*dto.OpenMmuResponse, error) {
	if len(req.Prompts) == 0 {
		return nil, ErrNoPrompts
	}

	body := &model.MmuOpen{
		MmuName:     req.MmuName,
		Strategy:    req.Strategy,
		Description: req.Description,
		Desc:        req.Description,
		Prompts:     make([]model.PromptDraft, 0, len(req.Prompts)),
	}
	if req.Sort != nil {
		body.Sort = *req.Sort
	}
	for _, p := range req.Prompts {
		draft := model.PromptDraft{Name: p.Name, Content: p.Content}
		if p.Rate != nil {
			draft.Rate = *p.Rate
		}
		body.Prompts = append(body.Prompts, draft)
	}

	if err := s.repo.Mmu.Open(ctx, body); err != nil {
		s.logger.Error("开启实验失败", zap.String("mmu_name", req.MmuName), zap.Error(err))
		return nil, err
	}

	s.refreshAfterWrite(ctx)

	return &dto.OpenMmuResponse{
		Navigation: dto.Navigation{Path: "/prompt", SelectedMmu: req.MmuName},
	}, nil
}

// ────────────────────── Update ──────────────────────

func (s *mmuStore) Update(ctx context.Context, id string, req *dto.UpdateMmuRequest) error {
	body := &model.MmuUpdate{
		MmuID:       model.ID(id),
		MmuName:     req.MmuName,
		Strategy:    req.Strategy,
		Status:      model.MmuStatus(req.Status),
		Description: req.Description,
	}
	if req.Sort != nil {
		body.Sort = *req.Sort
	}

	if err := s.repo.Mmu.Update(ctx, body); err != nil {
		s.logger.Error("更新MMU失败", zap.String("mmu_id", id), zap.Error(err))
		return err
	}

	s.refreshAfterWrite(ctx)
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *mmuStore) PrepareDelete(id string) (*dto.ConfirmDialog, error) {
	s.mu.RLock()
	var target *model.Mmu
	for i := range s.records {
		if string(s.records[i].MmuID) == id {
			target = &s.records[i]
			break
		}
	}
	s.mu.RUnlock()

	if target == nil {
		return nil, ErrMmuNotFound
	}

	token, expiresAt := s.confirmer.Issue(Intent{
		Action:  ActionDeleteMmu,
		MmuID:   target.MmuID,
		MmuName: target.MmuName,
	})

	return &dto.ConfirmDialog{
		Title:      "确认删除",
		Content:    fmt.Sprintf("确定要删除 %s 吗？此操作不可恢复。", target.MmuName),
		OkText:     "确认",
		CancelText: "取消",
		Danger:     true,
		Token:      token,
		ExpiresAt:  expiresAt.Format(time.RFC3339),
	}, nil
}

func (s *mmuStore) Delete(ctx context.Context, token string) (*Intent, error) {
	intent, err := s.confirmer.Consume(token, ActionDeleteMmu)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Mmu.Delete(ctx, intent.MmuID); err != nil {
		s.logger.Error("删除MMU失败", zap.String("mmu_id", intent.MmuID.String()), zap.Error(err))
		return nil, err
	}

	s.refreshAfterWrite(ctx)
	return &intent, nil
}

// ────────────────────── EqualSplit ──────────────────────

func (s *mmuStore) EqualSplit(req *dto.EqualSplitRequest) *dto.EqualSplitResponse {
	drafts := make([]model.PromptDraft, 0, len(req.Prompts))
	for _, p := range req.Prompts {
		drafts = append(drafts, model.PromptDraft{Name: p.Name, Content: p.Content})
	}

	out := make([]dto.DraftResponse, 0, len(drafts))
	for _, d := range allocation.EqualSplit(drafts) {
		out = append(out, dto.DraftResponse{
			Name:    d.Name,
			Content: d.Content,
			Rate:    allocation.FormatRate(d.Rate),
		})
	}
	return &dto.EqualSplitResponse{Prompts: out}
}

// ── 内部辅助方法 ──

// refreshAfterWrite 写操作成功后整表刷新；刷新失败只记录，写操作本身已成功
func (s *mmuStore) refreshAfterWrite(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("写操作后刷新MMU列表失败", zap.Error(err))
	}
}

func validMmuFilter(status string) bool {
	for _, o := range MmuStatusOptions {
		if o.Value == status {
			return true
		}
	}
	return false
}

func toMmuRow(index int, m *model.Mmu) dto.MmuRow {
	return dto.MmuRow{
		Index:       index,
		MmuID:       m.MmuID.String(),
		MmuName:     m.MmuName,
		Strategy:    m.Strategy,
		Sort:        m.Sort,
		Status:      dto.Tag{Text: string(m.Status), Color: m.Status.Color()},
		Description: strings.TrimSpace(m.Describe()),
		CreateTime:  m.CreateTime.Display(),
		UpdateTime:  m.UpdateTime.Display(),
	}
}
