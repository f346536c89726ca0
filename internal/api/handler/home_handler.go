package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/inshionfu/gpt-mng-web/internal/service"
	"github.com/inshionfu/gpt-mng-web/pkg/response"
)

// HomeHandler 首页与导航外壳 HTTP 处理器
type HomeHandler struct {
	homeSvc service.HomeService
}

// NewHomeHandler 创建 HomeHandler
func NewHomeHandler(homeSvc service.HomeService) *HomeHandler {
	return &HomeHandler{homeSvc: homeSvc}
}

// Shell 导航外壳
// GET /api/v1/shell?path=/mmu
func (h *HomeHandler) Shell(c *gin.Context) {
	response.OK(c, h.homeSvc.Shell(c.Query("path")))
}

// Overview 首页概览
// GET /api/v1/home
func (h *HomeHandler) Overview(c *gin.Context) {
	home, err := h.homeSvc.Overview(c.Request.Context())
	if err != nil {
		respondError(c, "获取系统概览", err)
		return
	}
	response.OK(c, home)
}
