package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inshionfu/gpt-mng-web/internal/service"
	apperrors "github.com/inshionfu/gpt-mng-web/pkg/errors"
	"github.com/inshionfu/gpt-mng-web/pkg/response"
)

// MustGetParam 从路径参数中提取非空值。
// 为空时写入 400 响应并返回 false，调用方应直接 return。
func MustGetParam(c *gin.Context, name string) (string, bool) {
	v := c.Param(name)
	if v == "" {
		response.BadRequest(c, name+" 不能为空")
		return "", false
	}
	return v, true
}

// bindJSON 绑定并校验 JSON 请求体，失败时错误挂到 c.Errors。
// 请求体超限交由 BodyLimit 中间件返回 413，其余绑定失败返回 400。
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	_ = c.Error(err)

	var mbe *http.MaxBytesError
	if !errors.As(err, &mbe) {
		response.BadRequest(c, "参数校验失败")
	}
	return false
}

// respondError 将 Service 错误映射为统一响应。
// action 用于生成后端失败时的提示文案，如 "删除" → "删除失败：xxx"。
func respondError(c *gin.Context, action string, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, service.ErrConfirmationRequired):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrMmuNotFound),
		errors.Is(err, service.ErrPromptNotFound),
		errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, rootMessage(err))
	case errors.Is(err, service.ErrInvalidFilter),
		errors.Is(err, service.ErrNoPrompts),
		errors.Is(err, service.ErrActionNotAllowed):
		response.BadRequest(c, rootMessage(err))
	case apperrors.IsTransport(err):
		response.Upstream(c, action, err)
	default:
		if _, ok := apperrors.AsAPIError(err); ok {
			response.Upstream(c, action, err)
			return
		}
		response.InternalError(c)
	}
}

// rootMessage 取最内层错误的文案，避免把内部上下文透出给前端
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
