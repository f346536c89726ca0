package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ── 不透明 ID ──

// ID 后端分配的标识，JSON 中可能是字符串也可能是数字，统一按字符串携带
type ID string

// UnmarshalJSON 同时接受 "abc" 与 123
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("ID.UnmarshalJSON: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("ID.UnmarshalJSON: unsupported value %s", string(b))
	}
	*id = ID(n.String())
	return nil
}

// String 实现 fmt.Stringer
func (id ID) String() string { return string(id) }

// ── 时间戳 ──

// DisplayLayout 列表中的时间展示格式（24 小时制）
const DisplayLayout = "2006/01/02 15:04:05"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
}

// Timestamp 后端时间字段，兼容 RFC3339、"YYYY-MM-DD HH:MM:SS" 与毫秒时间戳
type Timestamp struct {
	time.Time
}

// UnmarshalJSON 解析多种时间格式，null 或空串视为未设置
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" || string(b) == `""` {
		t.Time = time.Time{}
		return nil
	}
	if b[0] != '"' {
		ms, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return fmt.Errorf("Timestamp.UnmarshalJSON: invalid epoch %s", string(b))
		}
		t.Time = time.UnixMilli(ms)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("Timestamp.UnmarshalJSON: %w", err)
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("Timestamp.UnmarshalJSON: unsupported layout %q", s)
}

// MarshalJSON 未设置时输出 null
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Display 列表展示文本，未设置时为 "-"
func (t Timestamp) Display() string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(DisplayLayout)
}

// ── 标签颜色 ──

const (
	ColorBlue  = "blue"
	ColorGreen = "green"
	ColorRed   = "red"
)
