package optimizer

import (
	"math"
	"math/rand"

	"github.com/paiban/nurseplan/pkg/model"
)

// member 种群成员，分数在进入种群时计算一次
type member struct {
	candidate *model.Candidate
	score     float64
}

// tournament 锦标赛选择：不放回抽取 size 个成员，返回分数最高者（并列取先抽中者）
func tournament(members []member, size int, rng *rand.Rand) member {
	k := size
	if k > len(members) {
		k = len(members)
	}
	idx := rng.Perm(len(members))[:k]
	best := members[idx[0]]
	for _, i := range idx[1:] {
		if members[i].score > best.score {
			best = members[i]
		}
	}
	return best
}

// crossover 先取父代一再取父代二的班次，按班次 ID 首次出现保留；
// 仍缺失的周期班次按周期顺序随机交给子代中的护士
func crossover(p1, p2 *model.Candidate, rng *rand.Rand) *model.Candidate {
	snap := p1.Snapshot()
	child := model.NewEmptyCandidate(snap)
	for _, id := range p1.NurseIDs() {
		child.EnsureNurse(id)
	}

	seen := make(map[int64]struct{})
	inherit := func(parent *model.Candidate) {
		for _, id := range parent.NurseIDs() {
			child.EnsureNurse(id)
			for _, sh := range parent.ShiftsOf(id) {
				if _, ok := seen[sh.ID]; ok {
					continue
				}
				seen[sh.ID] = struct{}{}
				child.Append(id, sh)
			}
		}
	}
	inherit(p1)
	inherit(p2)

	ids := child.NurseIDs()
	if len(ids) == 0 {
		return child
	}
	for _, sh := range snap.Horizon() {
		if _, ok := seen[sh.ID]; ok {
			continue
		}
		seen[sh.ID] = struct{}{}
		child.Append(ids[rng.Intn(len(ids))], sh)
	}
	return child
}

// mutate 在两位不同护士间随机交换班次
// 尝试次数为 ⌊有班次的护士数 × rate⌋，任一方无班次时跳过
func mutate(c *model.Candidate, rate float64, rng *rand.Rand) {
	ids := c.NurseIDs()
	busy := 0
	for _, id := range ids {
		if len(c.ShiftsOf(id)) > 0 {
			busy++
		}
	}
	if busy < 2 {
		return
	}

	attempts := int(math.Floor(float64(busy) * rate))
	for i := 0; i < attempts; i++ {
		a := rng.Intn(len(ids))
		b := rng.Intn(len(ids) - 1)
		if b >= a {
			b++
		}
		n1, n2 := ids[a], ids[b]
		l1, l2 := c.ShiftsOf(n1), c.ShiftsOf(n2)
		if len(l1) == 0 || len(l2) == 0 {
			continue
		}
		i1, i2 := rng.Intn(len(l1)), rng.Intn(len(l2))
		s1 := c.RemoveAt(n1, i1)
		s2 := c.RemoveAt(n2, i2)
		c.Append(n1, s2)
		c.Append(n2, s1)
	}
}

// bestOf 分数最高的成员（并列取靠前者）
func bestOf(members []member) member {
	best := members[0]
	for _, m := range members[1:] {
		if m.score > best.score {
			best = m
		}
	}
	return best
}
