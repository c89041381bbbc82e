package model

import (
	"encoding/json"
	"strings"
)

// Nurse 护士
type Nurse struct {
	ID              int64        `json:"nurse_id" db:"nurse_id"`
	Name            string       `json:"name" db:"name"`
	Age             int          `json:"age" db:"age"`
	Availability    string       `json:"availability" db:"availability"` // 原始可用时段，如 "Mon-Fri (Morning)"
	PreferredShifts ShiftTypeSet `json:"preferred_shifts" db:"preferred_shifts"`

	slots    []AvailabilitySlot
	prepared bool
}

// Prepare 预解析可用时段（快照构建时调用一次）
func (n *Nurse) Prepare() {
	n.slots = ParseAvailability(n.Availability)
	n.prepared = true
}

// Slots 可用时段列表
func (n *Nurse) Slots() []AvailabilitySlot {
	if n.prepared {
		return n.slots
	}
	return ParseAvailability(n.Availability)
}

// Prefers 是否偏好该班次类型
func (n *Nurse) Prefers(t ShiftType) bool {
	return n.PreferredShifts.Contains(t)
}

// ShiftTypeSet 班次类型集合（保持声明顺序）
type ShiftTypeSet []ShiftType

// ParseShiftTypeSet 解析逗号分隔的班次类型，未知类型被丢弃
func ParseShiftTypeSet(s string) ShiftTypeSet {
	return NewShiftTypeSet(strings.Split(s, ",")...)
}

// NewShiftTypeSet 由字符串列表构建集合，去重且丢弃未知类型
func NewShiftTypeSet(values ...string) ShiftTypeSet {
	set := make(ShiftTypeSet, 0, len(values))
	for _, v := range values {
		t, ok := ParseShiftType(v)
		if !ok || set.Contains(t) {
			continue
		}
		set = append(set, t)
	}
	return set
}

// Contains 是否包含
func (s ShiftTypeSet) Contains(t ShiftType) bool {
	for _, v := range s {
		if v == t {
			return true
		}
	}
	return false
}

// String 逗号分隔形式，用于数据库存储
func (s ShiftTypeSet) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// UnmarshalJSON 同时接受 "Morning, Night" 与 ["Morning","Night"]
func (s *ShiftTypeSet) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err == nil {
		*s = ParseShiftTypeSet(raw)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*s = NewShiftTypeSet(list...)
	return nil
}

// MarshalJSON 输出为字符串数组
func (s ShiftTypeSet) MarshalJSON() ([]byte, error) {
	list := make([]string, len(s))
	for i, t := range s {
		list[i] = string(t)
	}
	return json.Marshal(list)
}
