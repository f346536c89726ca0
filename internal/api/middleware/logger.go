package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/inshionfu/gpt-mng-web/pkg/errors"
)

// Logger 请求日志中间件（基于 Zap 结构化日志）
// Handler 通过 c.Error 挂上的错误会一并输出；后端业务失败额外带上后端返回码
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}

		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			fields = append(fields, zap.String("errors", errs.String()))
			if apiErr, ok := apperrors.AsAPIError(errs.Last().Err); ok {
				fields = append(fields, zap.String("upstream_code", apiErr.Code))
			}
		}

		switch {
		case status == http.StatusBadGateway:
			logger.Warn("后端接口失败", fields...)
		case status >= http.StatusInternalServerError:
			logger.Error("请求处理失败", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("请求未成功", fields...)
		default:
			logger.Info("请求完成", fields...)
		}
	}
}
