package model

// Snapshot 单次优化的不可变输入：护士与排班周期内的班次
type Snapshot struct {
	nurses   []*Nurse
	shifts   []Shift
	nurseIdx map[int64]*Nurse
	shiftIdx map[int64]int
}

// NewSnapshot 创建快照
// 输入被复制，重复 ID 以首次出现为准
func NewSnapshot(nurses []Nurse, shifts []Shift) *Snapshot {
	s := &Snapshot{
		nurses:   make([]*Nurse, 0, len(nurses)),
		shifts:   make([]Shift, 0, len(shifts)),
		nurseIdx: make(map[int64]*Nurse, len(nurses)),
		shiftIdx: make(map[int64]int, len(shifts)),
	}
	for i := range nurses {
		if _, dup := s.nurseIdx[nurses[i].ID]; dup {
			continue
		}
		n := nurses[i]
		n.PreferredShifts = append(ShiftTypeSet(nil), n.PreferredShifts...)
		n.Prepare()
		s.nurses = append(s.nurses, &n)
		s.nurseIdx[n.ID] = &n
	}
	for _, sh := range shifts {
		if _, dup := s.shiftIdx[sh.ID]; dup {
			continue
		}
		s.shiftIdx[sh.ID] = len(s.shifts)
		s.shifts = append(s.shifts, sh)
	}
	return s
}

// Nurses 护士列表（输入顺序）
func (s *Snapshot) Nurses() []*Nurse {
	return append([]*Nurse(nil), s.nurses...)
}

// Horizon 排班周期内全部班次（输入顺序）
func (s *Snapshot) Horizon() []Shift {
	return append([]Shift(nil), s.shifts...)
}

// Nurse 按 ID 查找护士
func (s *Snapshot) Nurse(id int64) (*Nurse, bool) {
	n, ok := s.nurseIdx[id]
	return n, ok
}

// Shift 按 ID 查找班次
func (s *Snapshot) Shift(id int64) (Shift, bool) {
	i, ok := s.shiftIdx[id]
	if !ok {
		return Shift{}, false
	}
	return s.shifts[i], true
}

// NurseCount 护士数
func (s *Snapshot) NurseCount() int { return len(s.nurses) }

// ShiftCount 班次数
func (s *Snapshot) ShiftCount() int { return len(s.shifts) }

// Empty 护士或班次为空
func (s *Snapshot) Empty() bool {
	return len(s.nurses) == 0 || len(s.shifts) == 0
}
