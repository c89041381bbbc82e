package solver

import (
	"math/rand"

	"github.com/paiban/nurseplan/pkg/model"
	"github.com/paiban/nurseplan/pkg/scheduler/constraint"
)

// RandomSeed 随机构造排班：每个班次在粗略可用的护士中均匀选择，
// 无人可用时在全部护士中均匀选择
func RandomSeed(snap *model.Snapshot, rng *rand.Rand) *model.Candidate {
	c := model.NewCandidate(snap)
	nurses := snap.Nurses()
	if len(nurses) == 0 {
		return c
	}

	for _, sh := range snap.Horizon() {
		var eligible []*model.Nurse
		for _, n := range nurses {
			if constraint.LooselyAvailable(n, sh) {
				eligible = append(eligible, n)
			}
		}
		if len(eligible) == 0 {
			eligible = nurses
		}
		pick := eligible[rng.Intn(len(eligible))]
		c.Append(pick.ID, sh)
	}
	return c
}
