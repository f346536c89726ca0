package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPrompt_UnmarshalJSON_MixedTypes(t *testing.T) {
	raw := `{
		"prompt_id": 101,
		"mmu_id": "m-1",
		"mmu_name": "首页推荐",
		"name": "p1",
		"rate": 0.5,
		"score": null,
		"status": 2,
		"createTime": "2024-03-01 08:30:00",
		"updateTime": 1709281800000
	}`

	var p Prompt
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if p.PromptID != "101" {
		t.Errorf("期望 PromptID=101，实际=%s", p.PromptID)
	}
	if p.MmuID != "m-1" {
		t.Errorf("期望 MmuID=m-1，实际=%s", p.MmuID)
	}
	if p.Score != nil {
		t.Error("期望 Score 为空")
	}
	if got := p.CreateTime.Display(); got != "2024/03/01 08:30:00" {
		t.Errorf("期望展示 2024/03/01 08:30:00，实际=%s", got)
	}
	if p.UpdateTime.IsZero() {
		t.Error("期望毫秒时间戳被解析")
	}
}

func TestTimestamp_Empty(t *testing.T) {
	for _, raw := range []string{`null`, `""`} {
		var ts Timestamp
		if err := json.Unmarshal([]byte(raw), &ts); err != nil {
			t.Fatalf("%s 解析失败: %v", raw, err)
		}
		if ts.Display() != "-" {
			t.Errorf("%s 期望展示 -，实际=%s", raw, ts.Display())
		}
	}
}

func TestTimestamp_RFC3339(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2024-05-06T07:08:09Z"`), &ts); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	want := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("期望 %v，实际 %v", want, ts.Time)
	}
}

func TestTimestamp_Invalid(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Error("期望无法识别的时间格式返回错误")
	}
}

func TestMmu_Describe(t *testing.T) {
	m := Mmu{Desc: "旧字段"}
	if m.Describe() != "旧字段" {
		t.Errorf("期望回退到 desc，实际=%s", m.Describe())
	}
	m.Description = "新字段"
	if m.Describe() != "新字段" {
		t.Errorf("期望优先 description，实际=%s", m.Describe())
	}
}

func TestStatusLabels(t *testing.T) {
	cases := []struct {
		status PromptStatus
		label  string
		color  string
	}{
		{PromptStatusDiscarded, "废弃", ColorRed},
		{PromptStatusRolledOut, "推全", ColorGreen},
		{PromptStatusExperimenting, "实验中", ColorBlue},
		{PromptStatus(9), "未知", ColorBlue},
	}
	for _, tc := range cases {
		if tc.status.Label() != tc.label || tc.status.Color() != tc.color {
			t.Errorf("status=%d 期望 %s/%s，实际 %s/%s", tc.status, tc.label, tc.color, tc.status.Label(), tc.status.Color())
		}
	}

	if MmuStatusClosed.Color() != ColorRed || MmuStatusRolledOut.Color() != ColorGreen || MmuStatusOnline.Color() != ColorBlue {
		t.Error("MMU 状态颜色不符合预期")
	}
}
