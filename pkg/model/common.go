// Package model 定义护士排班优化的核心数据模型
package model

import (
	"strings"
	"time"
)

// DateLayout 班次日期格式
const DateLayout = "2006-01-02"

// ShiftType 班次类型
type ShiftType string

const (
	ShiftMorning   ShiftType = "Morning"   // 早班
	ShiftAfternoon ShiftType = "Afternoon" // 午班
	ShiftNight     ShiftType = "Night"     // 夜班
)

// 各班次时长（小时）
var shiftHours = map[ShiftType]int{
	ShiftMorning:   8,
	ShiftAfternoon: 8,
	ShiftNight:     10,
}

// AllShiftTypes 返回全部已知班次类型
func AllShiftTypes() []ShiftType {
	return []ShiftType{ShiftMorning, ShiftAfternoon, ShiftNight}
}

// ParseShiftType 解析班次类型（忽略大小写与首尾空白）
// 未知类型返回原始文本与 false，其时长为 0 且不匹配任何偏好
func ParseShiftType(s string) (ShiftType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range AllShiftTypes() {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return ShiftType(s), false
}

// Valid 是否为已知班次类型
func (t ShiftType) Valid() bool {
	_, ok := shiftHours[t]
	return ok
}

// Hours 班次时长，未知类型为 0
func (t ShiftType) Hours() int {
	return shiftHours[t]
}

// UnmarshalText 解码时规范化大小写
func (t *ShiftType) UnmarshalText(b []byte) error {
	*t, _ = ParseShiftType(string(b))
	return nil
}

// 星期缩写（周一=0 ... 周日=6）
var weekdayTokens = map[string]int{
	"mon": 0, "monday": 0,
	"tue": 1, "tues": 1, "tuesday": 1,
	"wed": 2, "wednesday": 2,
	"thu": 3, "thur": 3, "thurs": 3, "thursday": 3,
	"fri": 4, "friday": 4,
	"sat": 5, "saturday": 5,
	"sun": 6, "sunday": 6,
}

// ParseWeekday 解析星期名称，返回周一为 0 的序号
func ParseWeekday(token string) (int, bool) {
	d, ok := weekdayTokens[strings.ToLower(strings.TrimSpace(token))]
	return d, ok
}

// WeekdayOrdinal 日期对应的星期序号（周一=0）
func WeekdayOrdinal(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseDate 解析 YYYY-MM-DD 日期
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}
