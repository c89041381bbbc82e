// Package fitness 计算排班方案的适应度分数
package fitness

import (
	"github.com/paiban/nurseplan/pkg/model"
	"github.com/paiban/nurseplan/pkg/scheduler/constraint"
)

// Weights 适应度各项权重
type Weights struct {
	Unassigned      float64 `json:"unassigned"`       // 每个未分配班次
	MaxHours        float64 `json:"max_hours"`        // 每位超出周工时的护士
	Consecutive     float64 `json:"consecutive"`      // 每位连续天数超限的护士
	Rest            float64 `json:"rest"`             // 每位休息不足的护士
	Coverage        float64 `json:"coverage"`         // 全覆盖奖励
	PreferenceMatch float64 `json:"preference_match"` // 每个偏好匹配
	HoursFactor     float64 `json:"hours_factor"`     // 每小时工作量
}

// DefaultWeights 返回默认权重
func DefaultWeights() Weights {
	return Weights{
		Unassigned:      -30,
		MaxHours:        -25,
		Consecutive:     -20,
		Rest:            -20,
		Coverage:        200,
		PreferenceMatch: 15,
		HoursFactor:     1.5,
	}
}

// Breakdown 各项得分明细
type Breakdown struct {
	UnassignedShifts int  `json:"unassigned_shifts"`
	MaxHoursFailures int  `json:"max_hours_failures"`
	ConsecutiveFails int  `json:"consecutive_failures"`
	RestFailures     int  `json:"rest_failures"`
	Covered          bool `json:"covered"`
	PreferenceHits   int  `json:"preference_hits"`
	AssignedHours    int  `json:"assigned_hours"`

	UnassignedScore float64 `json:"unassigned_score"`
	ConstraintScore float64 `json:"constraint_score"`
	CoverageScore   float64 `json:"coverage_score"`
	PreferenceScore float64 `json:"preference_score"`
	WorkloadScore   float64 `json:"workload_score"`
}

// Total 总分
func (b Breakdown) Total() float64 {
	return b.UnassignedScore + b.ConstraintScore + b.CoverageScore + b.PreferenceScore + b.WorkloadScore
}

// Scorer 适应度计算器，无状态，可并发使用
type Scorer struct {
	weights Weights
	eval    *constraint.Evaluator
}

// NewScorer 创建适应度计算器
func NewScorer(w Weights, eval *constraint.Evaluator) *Scorer {
	if eval == nil {
		eval = constraint.NewEvaluator(constraint.DefaultLimits())
	}
	return &Scorer{weights: w, eval: eval}
}

var defaultScorer = NewScorer(DefaultWeights(), nil)

// Score 使用默认权重计算适应度
func Score(s model.Schedule) float64 { return defaultScorer.Score(s) }

// Explain 使用默认权重返回得分明细
func Explain(s model.Schedule) Breakdown { return defaultScorer.Breakdown(s) }

// Score 计算适应度，越高越好
func (sc *Scorer) Score(s model.Schedule) float64 {
	return sc.Breakdown(s).Total()
}

// Breakdown 逐项计算适应度
func (sc *Scorer) Breakdown(s model.Schedule) Breakdown {
	var b Breakdown
	w := sc.weights

	horizon := s.Horizon()
	assigned := s.AssignedIDs()

	// 未分配 = 周期班次数 - 去重后已分配数，可能为负
	b.UnassignedShifts = len(horizon) - len(assigned)
	b.UnassignedScore = w.Unassigned * float64(b.UnassignedShifts)

	nurses := s.Nurses()
	for _, n := range nurses {
		if !sc.eval.MaxHoursOK(n, s) {
			b.MaxHoursFailures++
		}
		if !sc.eval.ConsecutiveOK(n, s) {
			b.ConsecutiveFails++
		}
		if !sc.eval.RestOK(n, s) {
			b.RestFailures++
		}
	}
	b.ConstraintScore = w.MaxHours*float64(b.MaxHoursFailures) +
		w.Consecutive*float64(b.ConsecutiveFails) +
		w.Rest*float64(b.RestFailures)

	b.Covered = sc.eval.CoverageOK(s)
	if b.Covered {
		b.CoverageScore = w.Coverage
	}

	for _, n := range nurses {
		shifts := s.ShiftsOf(n.ID)
		for i := range shifts {
			if sc.eval.PreferenceMatch(n, &shifts[i]) {
				b.PreferenceHits++
			}
		}
	}
	b.PreferenceScore = w.PreferenceMatch * float64(b.PreferenceHits)

	// 工作量奖励只统计周期内去重后的班次
	for _, sh := range horizon {
		if _, ok := assigned[sh.ID]; ok {
			b.AssignedHours += sh.Hours()
		}
	}
	b.WorkloadScore = w.HoursFactor * float64(b.AssignedHours)

	return b
}
