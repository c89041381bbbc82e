package solver

import (
	"math/rand"
	"testing"

	"github.com/paiban/nurseplan/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekSnapshot() *model.Snapshot {
	nurses := []model.Nurse{
		{ID: 1, Name: "Alice", Availability: "Mon-Fri (Morning)", PreferredShifts: model.ShiftTypeSet{model.ShiftMorning}},
		{ID: 2, Name: "Bob", Availability: "Wed (Night), Thu (Afternoon)",
			PreferredShifts: model.ShiftTypeSet{model.ShiftNight, model.ShiftAfternoon}},
		{ID: 3, Name: "Carol", Availability: "Flexible", PreferredShifts: nil},
	}
	// 2025-02-19 周三，2025-02-22 周六
	shifts := []model.Shift{
		{ID: 1, Date: "2025-02-19", Type: model.ShiftMorning},
		{ID: 2, Date: "2025-02-19", Type: model.ShiftNight},
		{ID: 3, Date: "2025-02-20", Type: model.ShiftAfternoon},
		{ID: 4, Date: "2025-02-22", Type: model.ShiftMorning},
	}
	return model.NewSnapshot(nurses, shifts)
}

func TestSeed(t *testing.T) {
	c := Seed(weekSnapshot())

	// 第一轮
	assert.True(t, c.Has(1, 1), "Alice 周三早班")
	assert.True(t, c.Has(2, 2), "Bob 周三夜班")
	assert.True(t, c.Has(2, 3), "Bob 周四午班")

	// 第二轮：Bob 的可用文本包含 Wed，补充周三早班
	assert.True(t, c.Has(2, 1))
	// Wed、Thu 落在 Alice 的 Mon-Fri 区间内，回填不看班次类型，排在第一轮的早班之后
	assert.Equal(t, []int64{1, 2, 3}, shiftIDs(c.ShiftsOf(1)))
	assert.False(t, c.Has(3, 1))

	// 周六无人可用
	for _, id := range c.NurseIDs() {
		assert.False(t, c.Has(id, 4))
	}

	// 护士顺序保持输入顺序
	assert.Equal(t, []int64{1, 2, 3}, c.NurseIDs())
}

func TestSeed_Deterministic(t *testing.T) {
	snap := weekSnapshot()
	a, b := Seed(snap), Seed(snap)
	for _, id := range a.NurseIDs() {
		assert.Equal(t, a.ShiftsOf(id), b.ShiftsOf(id))
	}
}

func TestRandomSeed(t *testing.T) {
	snap := weekSnapshot()
	rng := rand.New(rand.NewSource(42))
	c := RandomSeed(snap, rng)

	// 每个班次恰好分配一次
	require.Equal(t, snap.ShiftCount(), c.Len())
	r := c.Resolve()
	assert.Empty(t, r.Unassigned())

	// 周三夜班只在粗略可用的 Alice 与 Bob 中选择
	owner, ok := r.NurseOf(2)
	require.True(t, ok)
	assert.Contains(t, []int64{1, 2}, owner)

	// 相同种子结果相同
	again := RandomSeed(snap, rand.New(rand.NewSource(42)))
	for _, id := range c.NurseIDs() {
		assert.Equal(t, c.ShiftsOf(id), again.ShiftsOf(id))
	}
}

func TestRandomSeed_NoNurses(t *testing.T) {
	snap := model.NewSnapshot(nil, []model.Shift{{ID: 1, Date: "2025-02-19", Type: model.ShiftMorning}})
	c := RandomSeed(snap, rand.New(rand.NewSource(1)))
	assert.Zero(t, c.Len())
}

func shiftIDs(shifts []model.Shift) []int64 {
	ids := make([]int64, len(shifts))
	for i, sh := range shifts {
		ids[i] = sh.ID
	}
	return ids
}
