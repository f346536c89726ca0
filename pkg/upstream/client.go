package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/inshionfu/gpt-mng-web/pkg/errors"
)

// Envelope 后端统一响应信封
type Envelope struct {
	Code string          `json:"code"`
	Info string          `json:"info"`
	Data json.RawMessage `json:"data"`
}

// Config 客户端配置
type Config struct {
	BaseURL string
	Timeout time.Duration // 0 表示不设超时，仅受请求 context 约束
}

// Client GPT 管理后台 REST 客户端
// 不做重试；每次调用都是一次独立的请求/响应
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New 创建 Client
func New(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger.With(zap.String("client", "upstream")),
	}
}

// Get 发起 GET 请求，成功时将 data 解码到 out（out 可为 nil）
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post 发起 POST 请求，body 为 nil 时不携带请求体
func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("编码请求体失败: %w", err)
		}
		reader = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rid := RequestIDFrom(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("后端接口请求出错",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: 读取响应失败: %v", apperrors.ErrTransport, err)
	}

	c.logger.Debug("后端接口响应",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s http %d", apperrors.ErrTransport, method, path, resp.StatusCode)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: 响应解析失败: %v", apperrors.ErrTransport, err)
	}

	if env.Code != apperrors.CodeSuccess {
		c.logger.Warn("后端接口返回业务错误",
			zap.String("path", path),
			zap.String("code", env.Code),
			zap.String("info", env.Info),
		)
		return &apperrors.APIError{Code: env.Code, Info: env.Info}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: data 解析失败: %v", apperrors.ErrTransport, err)
	}
	return nil
}

// ── 请求追踪 ID 透传 ──

type requestIDKey struct{}

// WithRequestID 将控制台请求 ID 写入 context，转发给后端
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom 读取 context 中的请求 ID
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}
