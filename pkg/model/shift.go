package model

import (
	"time"
)

// Shift 班次实例（某日某类型）
type Shift struct {
	ID            int64     `json:"shift_id" db:"shift_id"`
	Date          string    `json:"date" db:"date"` // YYYY-MM-DD
	Type          ShiftType `json:"shift_type" db:"shift_type"`
	AssignedNurse *int64    `json:"assigned_nurse,omitempty" db:"assigned_nurse"`
}

// Day 班次日期，格式错误时返回 false
func (s Shift) Day() (time.Time, bool) {
	d, err := ParseDate(s.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Hours 班次时长
func (s Shift) Hours() int {
	return s.Type.Hours()
}

// Start 班次开始时间（按当日零点计）
func (s Shift) Start() (time.Time, bool) {
	return s.Day()
}

// End 班次结束时间
func (s Shift) End() (time.Time, bool) {
	start, ok := s.Start()
	if !ok {
		return time.Time{}, false
	}
	return start.Add(time.Duration(s.Hours()) * time.Hour), true
}

// WithNurse 返回分配给指定护士的副本
func (s Shift) WithNurse(nurseID int64) Shift {
	id := nurseID
	s.AssignedNurse = &id
	return s
}

// Unassigned 返回去除分配信息的副本
func (s Shift) Unassigned() Shift {
	s.AssignedNurse = nil
	return s
}
