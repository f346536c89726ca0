package repository

import (
	"context"
	"net/url"

	"github.com/inshionfu/gpt-mng-web/internal/model"
)

const (
	pathMmuList   = "/mmu/list/mng"
	pathMmuUpdate = "/mmu/list/update"
	pathMmuDelete = "/mmu/del"
	pathMmuOpen   = "/mmu/open"
)

// MmuRepository MMU 后端接口
type MmuRepository interface {
	List(ctx context.Context) ([]model.Mmu, error)
	Update(ctx context.Context, req *model.MmuUpdate) error
	Delete(ctx context.Context, id model.ID) error
	Open(ctx context.Context, req *model.MmuOpen) error
}

type mmuRepo struct {
	caller Caller
}

// NewMmuRepo 创建 MmuRepository 实例
func NewMmuRepo(caller Caller) MmuRepository {
	return &mmuRepo{caller: caller}
}

func (r *mmuRepo) List(ctx context.Context) ([]model.Mmu, error) {
	var list []model.Mmu
	if err := r.caller.Get(ctx, pathMmuList, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Mmu{}
	}
	return list, nil
}

func (r *mmuRepo) Update(ctx context.Context, req *model.MmuUpdate) error {
	return r.caller.Post(ctx, pathMmuUpdate, nil, req, nil)
}

func (r *mmuRepo) Delete(ctx context.Context, id model.ID) error {
	return r.caller.Post(ctx, pathMmuDelete, url.Values{"id": {id.String()}}, nil, nil)
}

func (r *mmuRepo) Open(ctx context.Context, req *model.MmuOpen) error {
	return r.caller.Post(ctx, pathMmuOpen, nil, req, nil)
}
