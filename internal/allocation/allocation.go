// Package allocation 计算 Prompt 流量分配的展示值。
//
// 这里的结果仅用于展示，从不回写后端；组内任一 Prompt 的 status 或 rate
// 变化后（包括变更后的整表刷新）都需要重新计算。
package allocation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/inshionfu/gpt-mng-web/internal/model"
)

// Group 同一 mmu_name 下的 Prompt 集合
type Group struct {
	MmuName string
	Prompts []model.Prompt
}

// GroupByMmuName 按 mmu_name 分组，组顺序为首次出现顺序
// 同名 MMU 的 Prompt 会合并到同一组
func GroupByMmuName(prompts []model.Prompt) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, p := range prompts {
		i, ok := index[p.MmuName]
		if !ok {
			i = len(groups)
			index[p.MmuName] = i
			groups = append(groups, Group{MmuName: p.MmuName})
		}
		groups[i].Prompts = append(groups[i].Prompts, p)
	}
	return groups
}

// ExperimentTotal 组内实验中 Prompt 的 rate 之和
func ExperimentTotal(group []model.Prompt) float64 {
	var total float64
	for _, g := range group {
		if g.Status == model.PromptStatusExperimenting {
			total += g.Rate
		}
	}
	return total
}

// Share 返回 p 在组内的展示百分比（0~100 区间外的 rate 不做截断）
//
//   - 废弃: 0
//   - 推全: 100
//   - 实验中: rate / T * 100，T 为组内实验中 rate 之和；T <= 0 时为 0
//   - 其他状态: 0
func Share(p model.Prompt, group []model.Prompt) float64 {
	switch p.Status {
	case model.PromptStatusDiscarded:
		return 0
	case model.PromptStatusRolledOut:
		return 100
	case model.PromptStatusExperimenting:
		total := ExperimentTotal(group)
		if total > 0 {
			return p.Rate / total * 100
		}
	}
	return 0
}

// Percentage 展示文本：推全为 "100%"，实验中且 T > 0 时保留一位小数，其余为 "0%"
// 一位小数按占比的精确二进制值四舍五入，与控制台前端的 toFixed(1) 一致
func Percentage(p model.Prompt, group []model.Prompt) string {
	switch p.Status {
	case model.PromptStatusRolledOut:
		return "100%"
	case model.PromptStatusExperimenting:
		if ExperimentTotal(group) > 0 {
			return toFixed1(Share(p, group)) + "%"
		}
	}
	return "0%"
}

// EqualRate 等概率取值 round(1/n, 2)；n <= 0 时 ok=false
func EqualRate(n int) (rate float64, ok bool) {
	if n <= 0 {
		return 0, false
	}
	return round(1/float64(n), 2), true
}

// EqualSplit 将所有草稿的 rate 改写为 round(1/N, 2)
// 不校验改写后总和是否为 1；草稿为空时原样返回
func EqualSplit(drafts []model.PromptDraft) []model.PromptDraft {
	rate, ok := EqualRate(len(drafts))
	if !ok {
		return drafts
	}
	out := make([]model.PromptDraft, len(drafts))
	for i, d := range drafts {
		d.Rate = rate
		out[i] = d
	}
	return out
}

// FormatRate 草稿概率的表单文本（两位小数）
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f", rate)
}

// round 四舍五入到 places 位小数（0.5 远离零）
func round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// toFixed1 保留一位小数：取浮点数的精确十进制展开，第二位小数 >= 5 时进位
// 1.15 的二进制值略小于 1.15，结果为 "1.1"；1.25 可精确表示，结果为 "1.3"
func toFixed1(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "0.0"
	}
	sign := ""
	if x < 0 {
		sign, x = "-", -x
	}

	exact := strconv.FormatFloat(x, 'f', 80, 64)
	dot := strings.IndexByte(exact, '.')
	tenths, err := strconv.ParseInt(exact[:dot]+exact[dot+1:dot+2], 10, 64)
	if err != nil {
		return sign + strconv.FormatFloat(x, 'f', 1, 64)
	}
	if exact[dot+2] >= '5' {
		tenths++
	}
	if tenths == 0 {
		sign = ""
	}
	return fmt.Sprintf("%s%d.%d", sign, tenths/10, tenths%10)
}
