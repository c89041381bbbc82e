package model

import (
	"testing"
	"time"
)

func TestParseShiftType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ShiftType
		ok    bool
		hours int
	}{
		{name: "标准早班", input: "Morning", want: ShiftMorning, ok: true, hours: 8},
		{name: "小写午班", input: "afternoon", want: ShiftAfternoon, ok: true, hours: 8},
		{name: "带空白夜班", input: "  NIGHT ", want: ShiftNight, ok: true, hours: 10},
		{name: "未知Evening", input: "Evening", want: ShiftType("Evening"), ok: false, hours: 0},
		{name: "Flexible", input: "Flexible", want: ShiftType("Flexible"), ok: false, hours: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseShiftType(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseShiftType(%q) = %v, %v, expected %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
			if got.Hours() != tt.hours {
				t.Errorf("Hours() = %d, expected %d", got.Hours(), tt.hours)
			}
		})
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"Mon", 0, true},
		{"tue", 1, true},
		{" Thursday ", 3, true},
		{"SUN", 6, true},
		{"Funday", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseWeekday(tt.input)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseWeekday(%q) = %d, %v, expected %d, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWeekdayOrdinal(t *testing.T) {
	// 2025-02-19 为周三
	d := time.Date(2025, 2, 19, 0, 0, 0, 0, time.UTC)
	if got := WeekdayOrdinal(d); got != 2 {
		t.Errorf("WeekdayOrdinal() = %d, expected 2", got)
	}
	if got := WeekdayOrdinal(d.AddDate(0, 0, 4)); got != 6 {
		t.Errorf("周日应为 6, got %d", got)
	}
}
