package errors

import (
	"errors"
	"fmt"
)

// CodeSuccess 后端约定的成功码
const CodeSuccess = "0000"

// ErrTransport 请求未到达后端或响应无法解析（网络错误、非 2xx、JSON 损坏）
var ErrTransport = errors.New("后端接口请求失败")

// APIError 后端返回 code != "0000" 的业务错误
type APIError struct {
	Code string
	Info string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("后端业务错误 [%s]: %s", e.Code, e.Info)
}

// AsAPIError 提取业务错误
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsTransport 判断是否为传输层错误
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// Toast 生成面向用户的提示文案
//
//   - 业务错误: "<action>失败：<info>"，info 为空时为 "未知错误"
//   - 其他错误: "<action>出错，请稍后重试"
func Toast(action string, err error) string {
	if apiErr, ok := AsAPIError(err); ok {
		info := apiErr.Info
		if info == "" {
			info = "未知错误"
		}
		return action + "失败：" + info
	}
	return action + "出错，请稍后重试"
}
