package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/inshionfu/gpt-mng-web/internal/service"
	"github.com/inshionfu/gpt-mng-web/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportMmus 导出 MMU 列表
// GET /api/v1/export/mmus
func (h *ExportHandler) ExportMmus(c *gin.Context) {
	h.export(c, "导出MMU列表", h.exportSvc.ExportMmus)
}

// ExportPrompts 导出 Prompt 列表
// GET /api/v1/export/prompts
func (h *ExportHandler) ExportPrompts(c *gin.Context) {
	h.export(c, "导出Prompt列表", h.exportSvc.ExportPrompts)
}

func (h *ExportHandler) export(c *gin.Context, action string, fn func(context.Context) (*bytes.Buffer, string, error)) {
	buf, filename, err := fn(c.Request.Context())
	if err != nil {
		h.handleExportError(c, action, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, service.ErrExportEmpty):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		respondError(c, action, err)
	}
}
