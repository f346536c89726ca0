package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inshionfu/gpt-mng-web/internal/model"
)

func prompt(id, mmu string, rate float64, status model.PromptStatus) model.Prompt {
	return model.Prompt{PromptID: model.ID(id), MmuName: mmu, Rate: rate, Status: status}
}

func TestPercentage_FixedStatusesIgnoreRate(t *testing.T) {
	for _, rate := range []float64{0, 0.3, 1, 7, -2} {
		discarded := prompt("d", "g", rate, model.PromptStatusDiscarded)
		rolledOut := prompt("r", "g", rate, model.PromptStatusRolledOut)
		group := []model.Prompt{discarded, rolledOut, prompt("e", "g", 0.4, model.PromptStatusExperimenting)}

		assert.Equal(t, "0%", Percentage(discarded, group), "rate=%v", rate)
		assert.Equal(t, "100%", Percentage(rolledOut, group), "rate=%v", rate)
	}
}

func TestPercentage_EvenSplit(t *testing.T) {
	group := []model.Prompt{
		prompt("a", "g", 0.5, model.PromptStatusExperimenting),
		prompt("b", "g", 0.5, model.PromptStatusExperimenting),
	}
	for _, p := range group {
		assert.Equal(t, "50.0%", Percentage(p, group))
	}
}

func TestPercentage_RolledOutSiblingDoesNotCount(t *testing.T) {
	group := []model.Prompt{
		prompt("a", "g", 0.3, model.PromptStatusExperimenting),
		prompt("b", "g", 0, model.PromptStatusRolledOut),
	}
	assert.Equal(t, "100.0%", Percentage(group[0], group))
	assert.Equal(t, "100%", Percentage(group[1], group))
}

func TestPercentage_RelativeToExperimentingTotal(t *testing.T) {
	group := []model.Prompt{
		prompt("a", "g", 0.2, model.PromptStatusExperimenting),
		prompt("b", "g", 0.6, model.PromptStatusExperimenting),
		prompt("c", "g", 0.9, model.PromptStatusDiscarded),
	}
	assert.Equal(t, "25.0%", Percentage(group[0], group))
	assert.Equal(t, "75.0%", Percentage(group[1], group))

	thirds := []model.Prompt{
		prompt("a", "g", 1, model.PromptStatusExperimenting),
		prompt("b", "g", 1, model.PromptStatusExperimenting),
		prompt("c", "g", 1, model.PromptStatusExperimenting),
	}
	assert.Equal(t, "33.3%", Percentage(thirds[0], thirds))

	twoThirds := []model.Prompt{
		prompt("a", "g", 2, model.PromptStatusExperimenting),
		prompt("b", "g", 1, model.PromptStatusExperimenting),
	}
	assert.Equal(t, "66.7%", Percentage(twoThirds[0], twoThirds))
}

func TestPercentage_ZeroTotal(t *testing.T) {
	only := prompt("a", "g", 0, model.PromptStatusExperimenting)
	assert.Equal(t, "0%", Percentage(only, []model.Prompt{only}))
	assert.Equal(t, "0%", Percentage(only, nil), "空组应显示 0%")

	unknown := prompt("u", "g", 0.5, model.PromptStatus(7))
	assert.Equal(t, "0%", Percentage(unknown, []model.Prompt{unknown}))
}

func TestPercentage_MatchesShare(t *testing.T) {
	group := []model.Prompt{
		prompt("a", "g", 0.13, model.PromptStatusExperimenting),
		prompt("b", "g", 0.29, model.PromptStatusExperimenting),
		prompt("c", "g", 0.58, model.PromptStatusExperimenting),
	}
	for _, p := range group {
		want := toFixed1(p.Rate/ExperimentTotal(group)*100) + "%"
		assert.Equal(t, want, Percentage(p, group))
	}
}

func TestToFixed1(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1.15, "1.1"}, // 二进制值为 1.1499999...
		{1.25, "1.3"}, // 精确的 .x5 向上进位
		{1.35, "1.4"},
		{0.05, "0.1"},
		{33.333333, "33.3"},
		{99.96, "100.0"},
		{100, "100.0"},
		{-0.04, "0.0"},
		{-1.25, "-1.3"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, toFixed1(tc.in), "in=%v", tc.in)
	}
}

func TestEqualSplit(t *testing.T) {
	drafts := []model.PromptDraft{
		{Name: "a", Content: "x", Rate: 0.9},
		{Name: "b", Content: "y", Rate: 0.1},
		{Name: "c", Content: "z"},
	}

	out := EqualSplit(drafts)
	require.Len(t, out, 3)
	for _, d := range out {
		assert.Equal(t, 0.33, d.Rate)
		assert.Equal(t, "0.33", FormatRate(d.Rate))
	}
	assert.Equal(t, "a", out[0].Name, "其他字段应保留")
	assert.Equal(t, 0.9, drafts[0].Rate, "不应修改入参")
}

func TestEqualSplit_Empty(t *testing.T) {
	assert.Empty(t, EqualSplit(nil))
	_, ok := EqualRate(0)
	assert.False(t, ok)
}

func TestEqualRate(t *testing.T) {
	cases := map[int]float64{1: 1, 2: 0.5, 3: 0.33, 4: 0.25, 6: 0.17, 7: 0.14}
	for n, want := range cases {
		got, ok := EqualRate(n)
		require.True(t, ok)
		assert.Equal(t, want, got, "n=%d", n)
	}
}

func TestGroupByMmuName(t *testing.T) {
	prompts := []model.Prompt{
		prompt("1", "beta", 0.5, model.PromptStatusExperimenting),
		prompt("2", "alpha", 0.5, model.PromptStatusExperimenting),
		prompt("3", "beta", 0.5, model.PromptStatusExperimenting),
		prompt("4", "gamma", 1, model.PromptStatusRolledOut),
		prompt("5", "alpha", 0, model.PromptStatusDiscarded),
	}

	groups := GroupByMmuName(prompts)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"beta", "alpha", "gamma"}, []string{groups[0].MmuName, groups[1].MmuName, groups[2].MmuName})

	seen := make(map[model.ID]int)
	total := 0
	for _, g := range groups {
		for _, p := range g.Prompts {
			assert.Equal(t, g.MmuName, p.MmuName)
			seen[p.PromptID]++
			total++
		}
	}
	assert.Equal(t, len(prompts), total)
	for id, n := range seen {
		assert.Equal(t, 1, n, "prompt %s 出现 %d 次", id, n)
	}
	assert.Equal(t, []model.ID{"1", "3"}, []model.ID{groups[0].Prompts[0].PromptID, groups[0].Prompts[1].PromptID})
}

func TestGroupByMmuName_Empty(t *testing.T) {
	assert.Empty(t, GroupByMmuName(nil))
}
