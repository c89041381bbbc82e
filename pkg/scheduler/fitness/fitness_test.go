package fitness

import (
	"testing"

	"github.com/paiban/nurseplan/pkg/model"
	"github.com/stretchr/testify/assert"
)

func twoNurseSnapshot() (*model.Snapshot, []model.Shift) {
	nurses := []model.Nurse{
		{ID: 1, Name: "Alice", PreferredShifts: model.ShiftTypeSet{model.ShiftMorning}},
		{ID: 2, Name: "Bob", PreferredShifts: model.ShiftTypeSet{model.ShiftNight}},
	}
	shifts := []model.Shift{
		{ID: 1, Date: "2025-02-19", Type: model.ShiftMorning},
		{ID: 2, Date: "2025-02-19", Type: model.ShiftNight},
		{ID: 3, Date: "2025-02-20", Type: model.ShiftAfternoon},
	}
	return model.NewSnapshot(nurses, shifts), shifts
}

func TestScore(t *testing.T) {
	snap, shifts := twoNurseSnapshot()

	tests := []struct {
		name  string
		build func() *model.Candidate
		want  float64
	}{
		{
			name:  "空排班",
			build: func() *model.Candidate { return model.NewCandidate(snap) },
			want:  -90,
		},
		{
			name: "全覆盖且偏好匹配",
			build: func() *model.Candidate {
				c := model.NewCandidate(snap)
				c.Append(1, shifts[0])
				c.Append(2, shifts[1])
				c.Append(1, shifts[2])
				return c
			},
			// 200 覆盖 + 2*15 偏好 + 1.5*26 小时
			want: 200 + 30 + 39,
		},
		{
			name: "重复分配不计入工时但计入偏好",
			build: func() *model.Candidate {
				c := model.NewCandidate(snap)
				c.Append(1, shifts[0])
				c.Append(2, shifts[0])
				return c
			},
			// -60 未分配, 1 偏好, 8 小时
			want: -60 + 15 + 12,
		},
		{
			name: "同日两班违反休息约束",
			build: func() *model.Candidate {
				c := model.NewCandidate(snap)
				c.Append(1, shifts[0])
				c.Append(1, shifts[1])
				return c
			},
			// -30 未分配, -20 休息, 1 偏好, 18 小时
			want: -30 - 20 + 15 + 27,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.build()
			got := Score(c)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.InDelta(t, got, Explain(c).Total(), 1e-9)
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	snap, shifts := twoNurseSnapshot()
	c := model.NewCandidate(snap)
	c.Append(2, shifts[1])
	c.Append(1, shifts[0])

	first := Score(c)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Score(c))
	}
	// Resolve 后的排班同样可评分
	assert.Equal(t, first, Score(c.Resolve()))
}

func TestBreakdown_CustomWeights(t *testing.T) {
	snap, shifts := twoNurseSnapshot()
	c := model.NewCandidate(snap)
	c.Append(1, shifts[0])

	w := DefaultWeights()
	w.HoursFactor = 0
	b := NewScorer(w, nil).Breakdown(c)

	assert.Equal(t, 2, b.UnassignedShifts)
	assert.Equal(t, 1, b.PreferenceHits)
	assert.Equal(t, 8, b.AssignedHours)
	assert.Zero(t, b.WorkloadScore)
	assert.False(t, b.Covered)
}
