package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inshionfu/gpt-mng-web/internal/dto"
	"github.com/inshionfu/gpt-mng-web/internal/service"
	apperrors "github.com/inshionfu/gpt-mng-web/pkg/errors"
	"github.com/inshionfu/gpt-mng-web/pkg/response"
)

// MmuHandler MMU 模块 HTTP 处理器
type MmuHandler struct {
	mmuStore service.MmuStore
}

// NewMmuHandler 创建 MmuHandler
func NewMmuHandler(mmuStore service.MmuStore) *MmuHandler {
	return &MmuHandler{mmuStore: mmuStore}
}

// ListMmus 拉取并返回 MMU 列表
// GET /api/v1/mmus?status=实验中&sort=ascend
//
// 拉取失败时返回 502，data 中携带旧快照与错误横幅
func (h *MmuHandler) ListMmus(c *gin.Context) {
	var req dto.MmuListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}
	// 进入列表即回到初始筛选：全部状态、服务端顺序
	if req.Status == "" {
		req.Status = service.FilterAll
	}
	if req.Sort == "" {
		req.Sort = service.SortNone
	}
	if err := h.mmuStore.SetFilter(req.Status, req.Sort); err != nil {
		respondError(c, "获取MMU列表", err)
		return
	}

	if err := h.mmuStore.Refresh(c.Request.Context()); err != nil {
		code := response.CodeUpstreamNet
		if _, ok := apperrors.AsAPIError(err); ok {
			code = response.CodeUpstreamApp
		}
		response.ErrorWithData(c, http.StatusBadGateway, code, apperrors.Toast("获取MMU列表", err), h.mmuStore.View())
		return
	}

	response.OK(c, h.mmuStore.View())
}

// SetFilter 修改状态筛选与排序（不重新拉取）
// PUT /api/v1/mmus/filter
func (h *MmuHandler) SetFilter(c *gin.Context) {
	var req dto.MmuFilterRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.mmuStore.SetFilter(req.Status, req.Sort); err != nil {
		respondError(c, "筛选", err)
		return
	}
	response.OK(c, h.mmuStore.View())
}

// OpenMmu 开启实验（MMU 与 Prompt 一并创建）
// POST /api/v1/mmus
func (h *MmuHandler) OpenMmu(c *gin.Context) {
	var req dto.OpenMmuRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.mmuStore.Open(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "创建", err)
		return
	}
	response.Success(c, "创建成功", resp)
}

// UpdateMmu 编辑 MMU
// PUT /api/v1/mmus/:id
func (h *MmuHandler) UpdateMmu(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMmuRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.mmuStore.Update(c.Request.Context(), id, &req); err != nil {
		respondError(c, "更新", err)
		return
	}
	response.Success(c, "更新成功", h.mmuStore.View())
}

// PrepareDelete 打开删除确认框
// POST /api/v1/mmus/:id/delete-confirm
func (h *MmuHandler) PrepareDelete(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	dialog, err := h.mmuStore.PrepareDelete(id)
	if err != nil {
		respondError(c, "删除", err)
		return
	}
	response.OK(c, dialog)
}

// DeleteMmu 凭确认令牌删除
// DELETE /api/v1/mmus/confirmed/:token
func (h *MmuHandler) DeleteMmu(c *gin.Context) {
	token, ok := MustGetParam(c, "token")
	if !ok {
		return
	}

	if _, err := h.mmuStore.Delete(c.Request.Context(), token); err != nil {
		respondError(c, "删除", err)
		return
	}
	response.Success(c, "删除成功", h.mmuStore.View())
}

// EqualSplit 等概率改写草稿（不落库）
// POST /api/v1/mmus/equal-split
func (h *MmuHandler) EqualSplit(c *gin.Context) {
	var req dto.EqualSplitRequest
	if !bindJSON(c, &req) {
		return
	}
	response.OK(c, h.mmuStore.EqualSplit(&req))
}
