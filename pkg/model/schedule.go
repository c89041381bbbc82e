package model

import (
	"sort"
)

// Schedule 排班的只读视图，Candidate 与 Roster 均实现
type Schedule interface {
	// Snapshot 所属快照
	Snapshot() *Snapshot
	// NurseIDs 有条目的护士 ID（确定顺序）
	NurseIDs() []int64
	// ShiftsOf 护士的班次列表，调用方不得修改
	ShiftsOf(nurseID int64) []Shift
	// Horizon 排班周期内的班次
	Horizon() []Shift
	// Nurses 快照中的护士
	Nurses() []*Nurse
	// AssignedIDs 已出现的班次 ID 集合
	AssignedIDs() map[int64]struct{}
}

// assignment 护士到班次列表的有序映射
type assignment struct {
	snap  *Snapshot
	order []int64
	lists map[int64][]Shift
}

func newAssignment(snap *Snapshot) assignment {
	return assignment{snap: snap, lists: make(map[int64][]Shift)}
}

func (a *assignment) Snapshot() *Snapshot { return a.snap }

func (a *assignment) NurseIDs() []int64 {
	return append([]int64(nil), a.order...)
}

func (a *assignment) ShiftsOf(nurseID int64) []Shift {
	return a.lists[nurseID]
}

// Horizon 排班周期内的班次
func (a *assignment) Horizon() []Shift { return a.snap.Horizon() }

// Nurses 快照中的护士
func (a *assignment) Nurses() []*Nurse { return a.snap.Nurses() }

// AssignedIDs 已出现的班次 ID 集合
func (a *assignment) AssignedIDs() map[int64]struct{} {
	ids := make(map[int64]struct{})
	for _, id := range a.order {
		for _, sh := range a.lists[id] {
			ids[sh.ID] = struct{}{}
		}
	}
	return ids
}

// Len 条目总数（含重复）
func (a *assignment) Len() int {
	total := 0
	for _, l := range a.lists {
		total += len(l)
	}
	return total
}

func (a *assignment) ensure(nurseID int64) {
	if _, ok := a.lists[nurseID]; !ok {
		a.order = append(a.order, nurseID)
		a.lists[nurseID] = nil
	}
}

// Candidate 优化过程中的暂定排班，允许重复与遗漏
type Candidate struct {
	assignment
}

// NewCandidate 为快照中每位护士建立空列表
func NewCandidate(snap *Snapshot) *Candidate {
	c := &Candidate{assignment: newAssignment(snap)}
	for _, n := range snap.nurses {
		c.ensure(n.ID)
	}
	return c
}

// NewEmptyCandidate 不含任何护士条目的候选
func NewEmptyCandidate(snap *Snapshot) *Candidate {
	return &Candidate{assignment: newAssignment(snap)}
}

// CandidateFromAssigned 依据班次上的 AssignedNurse 构建候选
// 未知护士的分配被忽略
func CandidateFromAssigned(snap *Snapshot, shifts []Shift) *Candidate {
	c := NewCandidate(snap)
	for _, sh := range shifts {
		if sh.AssignedNurse == nil {
			continue
		}
		if _, ok := snap.Nurse(*sh.AssignedNurse); !ok {
			continue
		}
		c.Append(*sh.AssignedNurse, sh)
	}
	return c
}

// EnsureNurse 确保护士存在条目
func (c *Candidate) EnsureNurse(nurseID int64) {
	c.ensure(nurseID)
}

// Append 追加班次到护士列表末尾
func (c *Candidate) Append(nurseID int64, sh Shift) {
	c.ensure(nurseID)
	c.lists[nurseID] = append(c.lists[nurseID], sh.Unassigned())
}

// Has 护士列表中是否已有该班次
func (c *Candidate) Has(nurseID, shiftID int64) bool {
	for _, sh := range c.lists[nurseID] {
		if sh.ID == shiftID {
			return true
		}
	}
	return false
}

// RemoveAt 移除并返回护士列表中第 i 个班次
func (c *Candidate) RemoveAt(nurseID int64, i int) Shift {
	l := c.lists[nurseID]
	sh := l[i]
	next := make([]Shift, 0, len(l)-1)
	next = append(next, l[:i]...)
	next = append(next, l[i+1:]...)
	c.lists[nurseID] = next
	return sh
}

// Clone 深拷贝
func (c *Candidate) Clone() *Candidate {
	out := &Candidate{assignment: assignment{
		snap:  c.snap,
		order: append([]int64(nil), c.order...),
		lists: make(map[int64][]Shift, len(c.lists)),
	}}
	for id, l := range c.lists {
		if l == nil {
			out.lists[id] = nil
			continue
		}
		out.lists[id] = append([]Shift(nil), l...)
	}
	return out
}

// Resolve 去重得到最终排班，按护士顺序再按班次顺序首次出现者保留
func (c *Candidate) Resolve() *Roster {
	r := &Roster{assignment: newAssignment(c.snap), owner: make(map[int64]int64)}
	for _, id := range c.order {
		r.ensure(id)
		for _, sh := range c.lists[id] {
			if _, taken := r.owner[sh.ID]; taken {
				continue
			}
			r.owner[sh.ID] = id
			r.lists[id] = append(r.lists[id], sh)
		}
	}
	return r
}

// Roster 去重后的最终排班，每个班次至多分配一次
type Roster struct {
	assignment
	owner map[int64]int64
}

// NurseOf 班次的负责护士
func (r *Roster) NurseOf(shiftID int64) (int64, bool) {
	id, ok := r.owner[shiftID]
	return id, ok
}

// Assignments 按班次 ID 升序的分配结果，AssignedNurse 已填充
// 包含快照外的班次，不包含未分配的周期班次
func (r *Roster) Assignments() []Shift {
	out := make([]Shift, 0, len(r.owner))
	for _, id := range r.order {
		for _, sh := range r.lists[id] {
			out = append(out, sh.WithNurse(id))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Unassigned 周期内未分配的班次（周期顺序）
func (r *Roster) Unassigned() []Shift {
	var out []Shift
	for _, sh := range r.snap.shifts {
		if _, ok := r.owner[sh.ID]; !ok {
			out = append(out, sh)
		}
	}
	return out
}

// Table 周期内全部班次按 ID 升序，已分配者填充 AssignedNurse
func (r *Roster) Table() []Shift {
	out := make([]Shift, 0, len(r.snap.shifts))
	for _, sh := range r.snap.shifts {
		if id, ok := r.owner[sh.ID]; ok {
			out = append(out, sh.WithNurse(id))
		} else {
			out = append(out, sh.Unassigned())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
