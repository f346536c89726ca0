package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/inshionfu/gpt-mng-web/internal/allocation"
	"github.com/inshionfu/gpt-mng-web/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmpty        = errors.New("暂无可导出的数据")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出前实时拉取后端列表，不使用视图快照
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - Prompt 导出按 mmu_name 分 Sheet，占比列与页面展示一致
type ExportService interface {
	ExportMmus(ctx context.Context) (*bytes.Buffer, string, error)
	ExportPrompts(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportMmus 导出 MMU 列表
// ═══════════════════════════════════════════════════════════
//
// 单个 Sheet "MMU列表"，列顺序与管理页表格一致

func (s *exportService) ExportMmus(ctx context.Context) (*bytes.Buffer, string, error) {
	list, err := s.repo.Mmu.List(ctx)
	if err != nil {
		s.logger.Error("导出时获取MMU列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(list) == 0 {
		return nil, "", ErrExportEmpty
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "MMU列表"
	if err := s.initSheet(f, sheet, true); err != nil {
		return nil, "", err
	}

	headers := []string{"序号", "MMU ID", "MMU名称", "策略", "排序", "状态", "描述", "创建时间", "更新时间"}
	widths := []float64{8, 14, 20, 12, 8, 10, 32, 20, 20}
	if err := writeHeader(f, sheet, headers, widths); err != nil {
		return nil, "", err
	}

	for i := range list {
		m := &list[i]
		values := []interface{}{
			i + 1, m.MmuID.String(), m.MmuName, m.Strategy, m.Sort,
			string(m.Status), m.Describe(), m.CreateTime.Display(), m.UpdateTime.Display(),
		}
		if err := f.SetSheetRow(sheet, cell("A", i+2), &values); err != nil {
			s.logger.Error("写入MMU行失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	return s.finish(f, "MMU列表")
}

// ═══════════════════════════════════════════════════════════
// ExportPrompts 导出 Prompt 列表
// ═══════════════════════════════════════════════════════════
//
// 每个 mmu_name 一个 Sheet（按首次出现顺序），流量占比按完整分组计算

func (s *exportService) ExportPrompts(ctx context.Context) (*bytes.Buffer, string, error) {
	list, err := s.repo.Prompt.List(ctx)
	if err != nil {
		s.logger.Error("导出时获取Prompt列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(list) == 0 {
		return nil, "", ErrExportEmpty
	}

	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"序号", "Prompt ID", "名称", "内容", "概率", "流量占比", "评分", "状态", "创建时间", "更新时间"}
	widths := []float64{8, 14, 18, 40, 8, 10, 8, 10, 20, 20}

	used := make(map[string]bool)
	for gi, g := range allocation.GroupByMmuName(list) {
		sheet := sheetName(g.MmuName, used)
		if err := s.initSheet(f, sheet, gi == 0); err != nil {
			return nil, "", err
		}
		if err := writeHeader(f, sheet, headers, widths); err != nil {
			return nil, "", err
		}

		for i, p := range g.Prompts {
			score := "-"
			if p.Score != nil {
				score = strconv.FormatFloat(*p.Score, 'f', -1, 64)
			}
			values := []interface{}{
				i + 1, p.PromptID.String(), p.Name, p.Content, p.Rate,
				allocation.Percentage(p, g.Prompts), score, p.Status.Label(),
				p.CreateTime.Display(), p.UpdateTime.Display(),
			}
			if err := f.SetSheetRow(sheet, cell("A", i+2), &values); err != nil {
				s.logger.Error("写入Prompt行失败", zap.String("mmu_name", g.MmuName), zap.Error(err))
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	return s.finish(f, "Prompt列表")
}

// ── 辅助函数 ──

// initSheet 第一个 Sheet 复用默认的 Sheet1 并重命名
func (s *exportService) initSheet(f *excelize.File, name string, first bool) error {
	if first {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			s.logger.Error("重命名 Sheet 失败", zap.String("sheet", name), zap.Error(err))
			return ErrExportGenerateFail
		}
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		s.logger.Error("创建 Sheet 失败", zap.String("sheet", name), zap.Error(err))
		return ErrExportGenerateFail
	}
	return nil
}

func (s *exportService) finish(f *excelize.File, title string) (*bytes.Buffer, string, error) {
	f.SetActiveSheet(0)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s_%s.xlsx", title, s.now().Format("20060102150405"))
	return buf, filename, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, widths []float64) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return ErrExportGenerateFail
	}

	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
		col := colName(i)
		if i < len(widths) {
			_ = f.SetColWidth(sheet, col, col, widths[i])
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return ErrExportGenerateFail
	}
	if err := f.SetCellStyle(sheet, "A1", cell(colName(len(headers)-1), 1), style); err != nil {
		return ErrExportGenerateFail
	}
	return nil
}

// sheetName Sheet 名最长 31 字符且不能含 []:*?/\，重名时追加序号
// Excel 的 Sheet 名不区分大小写，used 以小写形式记录已占用的名称
func sheetName(name string, used map[string]bool) string {
	clean := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			r = '_'
		}
		clean = append(clean, r)
	}
	if len(clean) == 0 {
		clean = []rune("未命名")
	}
	if len(clean) > 26 {
		clean = clean[:26]
	}

	base := string(clean)
	candidate := base
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		candidate = fmt.Sprintf("%s(%d)", base, n)
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
