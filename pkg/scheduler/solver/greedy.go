// Package solver 提供初始排班的构造方法
package solver

import (
	"sort"

	"github.com/paiban/nurseplan/pkg/model"
	"github.com/paiban/nurseplan/pkg/scheduler/constraint"
)

// Seed 贪心构造初始排班
//
// 第一轮：护士按偏好班次数降序（稳定），逐个分配当日可用且偏好的班次；
// 第二轮：对每个护士尚未持有的班次，只要粗略可用即分配。
// 同一班次可能分配给多位护士，由后续优化和 Resolve 去重。
func Seed(snap *model.Snapshot) *model.Candidate {
	c := model.NewCandidate(snap)
	nurses := snap.Nurses()
	horizon := snap.Horizon()

	byPreference := make([]*model.Nurse, len(nurses))
	copy(byPreference, nurses)
	sort.SliceStable(byPreference, func(i, j int) bool {
		return len(byPreference[i].PreferredShifts) > len(byPreference[j].PreferredShifts)
	})

	for _, n := range byPreference {
		for _, sh := range horizon {
			if constraint.OffersShift(n, sh) {
				c.Append(n.ID, sh)
			}
		}
	}

	// 回填
	for _, n := range nurses {
		for _, sh := range horizon {
			if c.Has(n.ID, sh.ID) {
				continue
			}
			if constraint.LooselyAvailable(n, sh) {
				c.Append(n.ID, sh)
			}
		}
	}

	return c
}
