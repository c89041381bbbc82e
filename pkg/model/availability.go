package model

import (
	"strings"
)

// DaySpan 星期区间（闭区间，周一=0）
type DaySpan struct {
	From  int
	To    int
	Valid bool
}

// Contains 星期序号是否落在区间内
// 跨周区间（如 Sat-Mon）不匹配任何一天
func (d DaySpan) Contains(weekday int) bool {
	return d.Valid && d.From <= weekday && weekday <= d.To
}

// AvailabilitySlot 可用时段条目，如 "Mon-Fri (Morning)"
type AvailabilitySlot struct {
	Raw     string    `json:"raw"`
	Days    DaySpan   `json:"-"`
	Type    ShiftType `json:"type,omitempty"`
	HasType bool      `json:"has_type"` // 括号内为已知班次类型
}

// ParseAvailability 解析逗号分隔的可用时段
// 格式错误的条目保留但不匹配任何日期
func ParseAvailability(raw string) []AvailabilitySlot {
	var slots []AvailabilitySlot
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		slots = append(slots, parseSlot(part))
	}
	return slots
}

func parseSlot(part string) AvailabilitySlot {
	slot := AvailabilitySlot{Raw: part}
	days := part
	if open := strings.Index(part, "("); open >= 0 {
		days = part[:open]
		if closing := strings.Index(part[open:], ")"); closing > 0 {
			t, ok := ParseShiftType(part[open+1 : open+closing])
			slot.Type, slot.HasType = t, ok
		}
	}
	slot.Days = parseDaySpan(days)
	return slot
}

func parseDaySpan(s string) DaySpan {
	s = strings.TrimSpace(s)
	if from, to, found := strings.Cut(s, "-"); found {
		a, okA := ParseWeekday(from)
		b, okB := ParseWeekday(to)
		return DaySpan{From: a, To: b, Valid: okA && okB}
	}
	d, ok := ParseWeekday(s)
	return DaySpan{From: d, To: d, Valid: ok}
}
