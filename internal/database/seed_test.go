package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paiban/nurseplan/pkg/model"
)

func TestSampleShifts(t *testing.T) {
	shifts, err := SampleShifts(SampleStartDate, SampleDays)
	require.NoError(t, err)
	require.Len(t, shifts, 42)

	assert.Equal(t, "2025-02-19", shifts[0].Date)
	assert.Equal(t, model.ShiftMorning, shifts[0].Type)
	assert.Equal(t, model.ShiftNight, shifts[2].Type)
	assert.Equal(t, "2025-03-04", shifts[41].Date)
	assert.Equal(t, int64(42), shifts[41].ID)
	for _, sh := range shifts {
		assert.Nil(t, sh.AssignedNurse)
	}

	_, err = SampleShifts("19/02/2025", 1)
	assert.Error(t, err)
}

func TestSampleNurseModels(t *testing.T) {
	nurses := SampleNurseModels()
	require.Len(t, nurses, 25)

	assert.Equal(t, int64(1), nurses[0].ID)
	assert.Equal(t, "Alice Johnson", nurses[0].Name)
	assert.True(t, nurses[0].Prefers(model.ShiftMorning))

	// David Brown 偏好 Evening，不是有效班次类型
	assert.Empty(t, nurses[3].PreferredShifts)
}

func TestTruncateQuery(t *testing.T) {
	short := "SELECT 1"
	assert.Equal(t, short, truncateQuery(short))

	long := make([]byte, 250)
	for i := range long {
		long[i] = 'x'
	}
	got := truncateQuery(string(long))
	assert.Len(t, got, 203)
}

func TestMissingTables(t *testing.T) {
	tests := []struct {
		name    string
		present []string
		want    []string
	}{
		{"全部存在", []string{"shifts", "optimization_runs", "nurses"}, nil},
		{"未初始化", nil, []string{"nurses", "shifts", "optimization_runs"}},
		{"缺少运行记录表", []string{"nurses", "shifts"}, []string{"optimization_runs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, missingTables(Tables, tt.present))
		})
	}
}
