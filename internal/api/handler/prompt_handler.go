package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inshionfu/gpt-mng-web/internal/dto"
	"github.com/inshionfu/gpt-mng-web/internal/service"
	apperrors "github.com/inshionfu/gpt-mng-web/pkg/errors"
	"github.com/inshionfu/gpt-mng-web/pkg/response"
)

// PromptHandler Prompt 模块 HTTP 处理器
type PromptHandler struct {
	promptStore service.PromptStore
}

// NewPromptHandler 创建 PromptHandler
func NewPromptHandler(promptStore service.PromptStore) *PromptHandler {
	return &PromptHandler{promptStore: promptStore}
}

// ViewPrompts 进入 Prompt 管理视图
// GET /api/v1/prompts?mmu=新实验
//
// mmu 为开启实验后带来的预选提示；拉取失败时 data 中携带旧快照
func (h *PromptHandler) ViewPrompts(c *gin.Context) {
	var req dto.PromptViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	if err := h.promptStore.Enter(c.Request.Context(), req.Mmu); err != nil {
		code := response.CodeUpstreamNet
		if _, ok := apperrors.AsAPIError(err); ok {
			code = response.CodeUpstreamApp
		}
		response.ErrorWithData(c, http.StatusBadGateway, code, apperrors.Toast("获取Prompt列表", err), h.promptStore.View())
		return
	}

	response.OK(c, h.promptStore.View())
}

// SelectMmu 顶部 MMU 选择器
// PUT /api/v1/prompts/selection
func (h *PromptHandler) SelectMmu(c *gin.Context) {
	var req dto.SelectMmuRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.promptStore.SelectMmu(req.MmuName); err != nil {
		respondError(c, "选择MMU", err)
		return
	}
	response.OK(c, h.promptStore.View())
}

// SetGroupFilter 组内状态筛选
// PUT /api/v1/prompts/filters
func (h *PromptHandler) SetGroupFilter(c *gin.Context) {
	var req dto.GroupFilterRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.promptStore.SetGroupFilter(req.MmuName, req.Status); err != nil {
		respondError(c, "筛选", err)
		return
	}
	response.OK(c, h.promptStore.View())
}

// SetActiveKeys 记录展开的面板
// PUT /api/v1/prompts/panels
func (h *PromptHandler) SetActiveKeys(c *gin.Context) {
	var req dto.ActiveKeysRequest
	if !bindJSON(c, &req) {
		return
	}
	h.promptStore.SetActiveKeys(req.ActiveKeys)
	response.OK(c, h.promptStore.View())
}

// PrepareAction 打开推全/废弃确认框
// POST /api/v1/prompts/:id/confirm
func (h *PromptHandler) PrepareAction(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	var req dto.PromptActionRequest
	if !bindJSON(c, &req) {
		return
	}

	action := service.ConfirmAction(req.Action)
	dialog, err := h.promptStore.PrepareAction(action, id)
	if err != nil {
		respondError(c, actionTitle(action), err)
		return
	}
	response.OK(c, dialog)
}

// ConfirmAction 凭确认令牌执行推全/废弃
// POST /api/v1/prompts/actions/:token
func (h *PromptHandler) ConfirmAction(c *gin.Context) {
	token, ok := MustGetParam(c, "token")
	if !ok {
		return
	}

	action, err := h.promptStore.ConfirmAction(c.Request.Context(), token)
	if err != nil {
		respondError(c, actionTitle(action), err)
		return
	}
	response.Success(c, actionTitle(action)+"成功", h.promptStore.View())
}

// actionTitle 推全/废弃的提示文案前缀
func actionTitle(action service.ConfirmAction) string {
	switch action {
	case service.ActionFlowAll:
		return "流量推全"
	case service.ActionDiscard:
		return "Prompt废弃"
	default:
		return "操作"
	}
}
