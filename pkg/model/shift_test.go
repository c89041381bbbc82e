package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestShift_EndAndHours(t *testing.T) {
	tests := []struct {
		name     string
		shift    Shift
		hours    int
		end      time.Time
		parsable bool
	}{
		{
			name:     "早班8小时",
			shift:    Shift{ID: 1, Date: "2025-02-19", Type: ShiftMorning},
			hours:    8,
			end:      time.Date(2025, 2, 19, 8, 0, 0, 0, time.UTC),
			parsable: true,
		},
		{
			name:     "夜班10小时",
			shift:    Shift{ID: 2, Date: "2025-02-19", Type: ShiftNight},
			hours:    10,
			end:      time.Date(2025, 2, 19, 10, 0, 0, 0, time.UTC),
			parsable: true,
		},
		{
			name:     "日期格式错误",
			shift:    Shift{ID: 3, Date: "19/02/2025", Type: ShiftNight},
			hours:    10,
			parsable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shift.Hours() != tt.hours {
				t.Errorf("Hours() = %d, expected %d", tt.shift.Hours(), tt.hours)
			}
			end, ok := tt.shift.End()
			if ok != tt.parsable {
				t.Fatalf("End() ok = %v, expected %v", ok, tt.parsable)
			}
			if ok && !end.Equal(tt.end) {
				t.Errorf("End() = %v, expected %v", end, tt.end)
			}
		})
	}
}

func TestShift_JSON(t *testing.T) {
	var sh Shift
	if err := json.Unmarshal([]byte(`{"shift_id":7,"date":"2025-02-20","shift_type":"night","assigned_nurse":3}`), &sh); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sh.Type != ShiftNight {
		t.Errorf("Type = %q, expected Night", sh.Type)
	}
	if sh.AssignedNurse == nil || *sh.AssignedNurse != 3 {
		t.Errorf("AssignedNurse = %v, expected 3", sh.AssignedNurse)
	}
}

func TestNurse_PreferredShiftsJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want ShiftTypeSet
	}{
		{name: "字符串形式", body: `{"nurse_id":1,"preferred_shifts":"Morning, Night"}`, want: ShiftTypeSet{ShiftMorning, ShiftNight}},
		{name: "数组形式", body: `{"nurse_id":1,"preferred_shifts":["Afternoon","afternoon"]}`, want: ShiftTypeSet{ShiftAfternoon}},
		{name: "未知类型丢弃", body: `{"nurse_id":1,"preferred_shifts":"Evening"}`, want: ShiftTypeSet{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Nurse
			if err := json.Unmarshal([]byte(tt.body), &n); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(n.PreferredShifts) != len(tt.want) {
				t.Fatalf("PreferredShifts = %v, expected %v", n.PreferredShifts, tt.want)
			}
			for i := range tt.want {
				if n.PreferredShifts[i] != tt.want[i] {
					t.Errorf("PreferredShifts[%d] = %v, expected %v", i, n.PreferredShifts[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseAvailability(t *testing.T) {
	slots := ParseAvailability("Mon-Fri (Morning), Sat (Evening), sun, Xyz (Night), Fri-Mon")
	if len(slots) != 5 {
		t.Fatalf("len = %d, expected 5", len(slots))
	}

	if !slots[0].Days.Contains(0) || !slots[0].Days.Contains(4) || slots[0].Days.Contains(5) {
		t.Errorf("Mon-Fri 区间错误: %+v", slots[0].Days)
	}
	if !slots[0].HasType || slots[0].Type != ShiftMorning {
		t.Errorf("Mon-Fri 类型错误: %+v", slots[0])
	}
	if slots[1].HasType {
		t.Error("Evening 不应视为班次类型")
	}
	if !slots[2].Days.Contains(6) || slots[2].HasType {
		t.Errorf("sun 解析错误: %+v", slots[2])
	}
	if slots[3].Days.Valid {
		t.Error("无效星期应不匹配")
	}
	for d := 0; d < 7; d++ {
		if slots[4].Days.Contains(d) {
			t.Errorf("跨周区间不应匹配 %d", d)
		}
	}
}
