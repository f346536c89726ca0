package repository

import (
	"context"
	"net/url"

	"github.com/inshionfu/gpt-mng-web/internal/model"
)

const (
	pathPromptList    = "/prompt/list/mng"
	pathPromptFlowAll = "/prompt/flow/all"
	pathPromptAbort   = "/prompt/flow/abort"
)

// PromptRepository Prompt 后端接口
type PromptRepository interface {
	List(ctx context.Context) ([]model.Prompt, error)
	// FlowAll 推全：目标 Prompt 置为 status=1，后端不联动调整同组其他 Prompt
	FlowAll(ctx context.Context, mmuID, promptID model.ID) error
	// Abort 废弃：目标 Prompt 置为 status=0
	Abort(ctx context.Context, promptID model.ID) error
}

type promptRepo struct {
	caller Caller
}

// NewPromptRepo 创建 PromptRepository 实例
func NewPromptRepo(caller Caller) PromptRepository {
	return &promptRepo{caller: caller}
}

func (r *promptRepo) List(ctx context.Context) ([]model.Prompt, error) {
	var list []model.Prompt
	if err := r.caller.Get(ctx, pathPromptList, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Prompt{}
	}
	return list, nil
}

func (r *promptRepo) FlowAll(ctx context.Context, mmuID, promptID model.ID) error {
	q := url.Values{
		"mmu_id":    {mmuID.String()},
		"prompt_id": {promptID.String()},
	}
	return r.caller.Post(ctx, pathPromptFlowAll, q, nil, nil)
}

func (r *promptRepo) Abort(ctx context.Context, promptID model.ID) error {
	return r.caller.Post(ctx, pathPromptAbort, url.Values{"prompt_id": {promptID.String()}}, nil, nil)
}
