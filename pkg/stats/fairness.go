// Package stats 提供排班统计分析功能
package stats

import (
	"math"
	"sort"

	"github.com/paiban/nurseplan/pkg/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WorkloadMetrics 工作量与公平性指标
type WorkloadMetrics struct {
	// 工时公平性
	WorkloadGini     float64 `json:"workload_gini"`     // 工时基尼系数 (0=完全公平, 1=完全不公平)
	WorkloadVariance float64 `json:"workload_variance"` // 工时总体方差
	WorkloadStdDev   float64 `json:"workload_std_dev"`  // 工时标准差
	AvgHoursPerNurse float64 `json:"avg_hours_per_nurse"`
	MaxHours         float64 `json:"max_hours"`
	MinHours         float64 `json:"min_hours"`
	TotalHours       float64 `json:"total_hours"`

	// 班次类型分布（百分比）
	ShiftTypeDistribution map[model.ShiftType]float64 `json:"shift_type_distribution"`
	NightShiftGini        float64                     `json:"night_shift_gini"`

	NurseStats []NurseStat `json:"nurse_stats"`

	// 总工时超过上限的护士
	Overworked []NurseStat `json:"overworked"`

	OverallFairnessScore float64 `json:"overall_fairness_score"` // 0-100
}

// NurseStat 护士统计
type NurseStat struct {
	NurseID        int64   `json:"nurse_id"`
	NurseName      string  `json:"nurse_name"`
	TotalHours     float64 `json:"total_hours"`
	ShiftCount     int     `json:"shift_count"`
	NightShifts    int     `json:"night_shifts"`
	WeekendShifts  int     `json:"weekend_shifts"`
	PreferenceHits int     `json:"preference_hits"`
	Deviation      float64 `json:"deviation"` // 与平均值的偏差百分比
}

// WorkloadAnalyzer 工作量分析器
type WorkloadAnalyzer struct {
	overtimeHours float64
}

// NewWorkloadAnalyzer 创建工作量分析器，总工时超过 overtimeHours 视为超负荷
func NewWorkloadAnalyzer(overtimeHours float64) *WorkloadAnalyzer {
	if overtimeHours <= 0 {
		overtimeHours = 48
	}
	return &WorkloadAnalyzer{overtimeHours: overtimeHours}
}

// Analyze 分析排班的工作量分布
// 快照中所有护士都参与统计，包括没有班次的护士
func (w *WorkloadAnalyzer) Analyze(s model.Schedule) *WorkloadMetrics {
	metrics := &WorkloadMetrics{
		ShiftTypeDistribution: make(map[model.ShiftType]float64),
		NurseStats:            make([]NurseStat, 0),
		Overworked:            make([]NurseStat, 0),
		OverallFairnessScore:  100,
	}
	nurses := s.Nurses()
	if len(nurses) == 0 {
		return metrics
	}

	typeCounts := make(map[model.ShiftType]int)
	totalShifts := 0
	for _, n := range nurses {
		st := NurseStat{NurseID: n.ID, NurseName: n.Name}
		for _, sh := range s.ShiftsOf(n.ID) {
			st.TotalHours += float64(sh.Hours())
			st.ShiftCount++
			if sh.Type == model.ShiftNight {
				st.NightShifts++
			}
			if isWeekend(sh) {
				st.WeekendShifts++
			}
			if n.Prefers(sh.Type) {
				st.PreferenceHits++
			}
			typeCounts[sh.Type]++
			totalShifts++
		}
		metrics.NurseStats = append(metrics.NurseStats, st)
	}

	hours := make([]float64, len(metrics.NurseStats))
	nights := make([]float64, len(metrics.NurseStats))
	for i, st := range metrics.NurseStats {
		hours[i] = st.TotalHours
		nights[i] = float64(st.NightShifts)
	}

	mean, variance := stat.PopMeanVariance(hours, nil)
	metrics.AvgHoursPerNurse = mean
	metrics.WorkloadVariance = variance
	metrics.WorkloadStdDev = math.Sqrt(variance)
	metrics.MaxHours = floats.Max(hours)
	metrics.MinHours = floats.Min(hours)
	metrics.TotalHours = floats.Sum(hours)
	metrics.WorkloadGini = gini(hours)
	metrics.NightShiftGini = gini(nights)

	for i := range metrics.NurseStats {
		if mean > 0 {
			metrics.NurseStats[i].Deviation = (metrics.NurseStats[i].TotalHours - mean) / mean * 100
		}
		if metrics.NurseStats[i].TotalHours > w.overtimeHours {
			metrics.Overworked = append(metrics.Overworked, metrics.NurseStats[i])
		}
	}

	if totalShifts > 0 {
		for t, c := range typeCounts {
			metrics.ShiftTypeDistribution[t] = float64(c) / float64(totalShifts) * 100
		}
	}

	// 按工时降序
	sort.SliceStable(metrics.NurseStats, func(i, j int) bool {
		return metrics.NurseStats[i].TotalHours > metrics.NurseStats[j].TotalHours
	})

	metrics.OverallFairnessScore = overallScore(metrics.WorkloadGini, metrics.NightShiftGini, metrics.WorkloadStdDev, mean)
	return metrics
}

// ShiftDistribution 每位护士的班次数（仅含有班次的护士）
func ShiftDistribution(s model.Schedule) map[int64]int {
	counts := make(map[int64]int)
	for _, id := range s.NurseIDs() {
		if n := len(s.ShiftsOf(id)); n > 0 {
			counts[id] = n
		}
	}
	return counts
}

func isWeekend(sh model.Shift) bool {
	d, ok := sh.Day()
	if !ok {
		return false
	}
	return model.WeekdayOrdinal(d) >= 5
}

// gini 计算基尼系数
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := floats.Sum(sorted)
	if sum == 0 {
		return 0
	}

	g := 0.0
	for i, v := range sorted {
		g += (2*float64(i+1) - float64(n) - 1) * v
	}
	g = g / (float64(n) * sum)
	return math.Max(0, math.Min(1, g))
}

// overallScore 综合公平性评分
func overallScore(workloadGini, nightGini, stdDev, avgHours float64) float64 {
	const (
		workloadWeight = 0.5
		nightWeight    = 0.3
		stdDevWeight   = 0.2
	)

	workloadScore := (1 - workloadGini) * 100
	nightScore := (1 - nightGini) * 100

	// 变异系数越低分数越高
	cvScore := 100.0
	if avgHours > 0 {
		cv := stdDev / avgHours
		cvScore = math.Max(0, 100-cv*200)
	}

	score := workloadWeight*workloadScore + nightWeight*nightScore + stdDevWeight*cvScore
	return math.Max(0, math.Min(100, score))
}
