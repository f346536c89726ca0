package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inshionfu/gpt-mng-web/internal/model"
)

// ErrConfirmationRequired 确认令牌不存在、已使用、已过期或与操作不匹配
var ErrConfirmationRequired = errors.New("操作需要确认，请重新发起")

// ConfirmAction 需要二次确认的操作
type ConfirmAction string

const (
	ActionDeleteMmu ConfirmAction = "deleteMmu"
	ActionFlowAll   ConfirmAction = "flowAll"
	ActionDiscard   ConfirmAction = "discard"
)

// Intent 待确认的操作意图
type Intent struct {
	Action   ConfirmAction
	MmuID    model.ID
	MmuName  string
	PromptID model.ID
}

type pendingIntent struct {
	intent    Intent
	expiresAt time.Time
}

// Confirmer 两阶段确认：先签发令牌（打开确认框），用户确认后凭令牌执行
// 每个令牌只能使用一次
type Confirmer struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	pending map[string]pendingIntent
}

// NewConfirmer 创建 Confirmer
func NewConfirmer(ttl time.Duration) *Confirmer {
	return &Confirmer{
		ttl:     ttl,
		now:     time.Now,
		pending: make(map[string]pendingIntent),
	}
}

// Issue 登记意图并返回令牌
func (c *Confirmer) Issue(intent Intent) (string, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for token, p := range c.pending {
		if !now.Before(p.expiresAt) {
			delete(c.pending, token)
		}
	}

	token := uuid.NewString()
	expiresAt := now.Add(c.ttl)
	c.pending[token] = pendingIntent{intent: intent, expiresAt: expiresAt}
	return token, expiresAt
}

// Consume 取出令牌对应的意图；操作类型不在 allowed 中时令牌保留
func (c *Confirmer) Consume(token string, allowed ...ConfirmAction) (Intent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.pending[token]
	if !ok {
		return Intent{}, ErrConfirmationRequired
	}
	if !c.now().Before(p.expiresAt) {
		delete(c.pending, token)
		return Intent{}, ErrConfirmationRequired
	}
	if !actionAllowed(p.intent.Action, allowed) {
		return Intent{}, ErrConfirmationRequired
	}

	delete(c.pending, token)
	return p.intent, nil
}

// Pending 未过期的待确认数量
func (c *Confirmer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for _, p := range c.pending {
		if now.Before(p.expiresAt) {
			n++
		}
	}
	return n
}

func actionAllowed(action ConfirmAction, allowed []ConfirmAction) bool {
	for _, a := range allowed {
		if a == action {
			return true
		}
	}
	return false
}
