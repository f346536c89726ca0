package service

import (
	"context"
	"sync"

	"github.com/inshionfu/gpt-mng-web/internal/model"
	apperrors "github.com/inshionfu/gpt-mng-web/pkg/errors"
)

// ── Mock MmuRepository ──

type mockMmuRepo struct {
	mu      sync.Mutex
	mmus    []model.Mmu
	listErr error
	writErr error

	listCalls int
	updated   []model.MmuUpdate
	deleted   []model.ID
	opened    []model.MmuOpen
}

func newMockMmuRepo(mmus ...model.Mmu) *mockMmuRepo {
	return &mockMmuRepo{mmus: mmus}
}

func (m *mockMmuRepo) List(_ context.Context) ([]model.Mmu, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.Mmu, len(m.mmus))
	copy(out, m.mmus)
	return out, nil
}

func (m *mockMmuRepo) Update(_ context.Context, req *model.MmuUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writErr != nil {
		return m.writErr
	}
	m.updated = append(m.updated, *req)
	for i := range m.mmus {
		if m.mmus[i].MmuID == req.MmuID {
			m.mmus[i].MmuName = req.MmuName
			m.mmus[i].Strategy = req.Strategy
			m.mmus[i].Sort = req.Sort
			m.mmus[i].Status = req.Status
			m.mmus[i].Description = req.Description
		}
	}
	return nil
}

func (m *mockMmuRepo) Delete(_ context.Context, id model.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writErr != nil {
		return m.writErr
	}
	m.deleted = append(m.deleted, id)
	kept := m.mmus[:0]
	for _, x := range m.mmus {
		if x.MmuID != id {
			kept = append(kept, x)
		}
	}
	m.mmus = kept
	return nil
}

func (m *mockMmuRepo) Open(_ context.Context, req *model.MmuOpen) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writErr != nil {
		return m.writErr
	}
	m.opened = append(m.opened, *req)
	m.mmus = append(m.mmus, model.Mmu{
		MmuID:       model.ID("new-" + req.MmuName),
		MmuName:     req.MmuName,
		Strategy:    req.Strategy,
		Sort:        req.Sort,
		Status:      model.MmuStatusExperimenting,
		Description: req.Description,
	})
	return nil
}

func (m *mockMmuRepo) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// ── Mock PromptRepository ──

type mockPromptRepo struct {
	mu      sync.Mutex
	prompts []model.Prompt
	listErr error
	writErr error

	listCalls int
	flowAll   [][2]model.ID
	aborted   []model.ID
}

func newMockPromptRepo(prompts ...model.Prompt) *mockPromptRepo {
	return &mockPromptRepo{prompts: prompts}
}

func (m *mockPromptRepo) List(_ context.Context) ([]model.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.Prompt, len(m.prompts))
	copy(out, m.prompts)
	return out, nil
}

// FlowAll 仅修改目标 Prompt，与后端行为一致
func (m *mockPromptRepo) FlowAll(_ context.Context, mmuID, promptID model.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writErr != nil {
		return m.writErr
	}
	m.flowAll = append(m.flowAll, [2]model.ID{mmuID, promptID})
	m.setStatus(promptID, model.PromptStatusRolledOut)
	return nil
}

func (m *mockPromptRepo) Abort(_ context.Context, promptID model.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writErr != nil {
		return m.writErr
	}
	m.aborted = append(m.aborted, promptID)
	m.setStatus(promptID, model.PromptStatusDiscarded)
	return nil
}

func (m *mockPromptRepo) setStatus(id model.ID, status model.PromptStatus) {
	for i := range m.prompts {
		if m.prompts[i].PromptID == id {
			m.prompts[i].Status = status
		}
	}
}

func (m *mockPromptRepo) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// ── 通用错误 ──

var (
	errBackend   = &apperrors.APIError{Code: "0001", Info: "参数错误"}
	errTransport = apperrors.ErrTransport
)
