package stats

import (
	"sort"

	"github.com/paiban/nurseplan/pkg/model"
)

// CoverageMetrics 覆盖率指标
type CoverageMetrics struct {
	TotalShifts     int     `json:"total_shifts"`     // 周期内班次数
	AssignedShifts  int     `json:"assigned_shifts"`  // 已分配班次数
	OverallCoverage float64 `json:"overall_coverage"` // 整体覆盖率 (%)

	DailyCoverage     []DayCoverage               `json:"daily_coverage"`      // 按日期升序
	ShiftTypeCoverage map[model.ShiftType]float64 `json:"shift_type_coverage"` // 按班次类型覆盖率

	UncoveredShifts []model.Shift `json:"uncovered_shifts"`
}

// DayCoverage 每日覆盖情况
type DayCoverage struct {
	Date         string  `json:"date"`
	TotalShifts  int     `json:"total_shifts"`
	Assigned     int     `json:"assigned"`
	CoverageRate float64 `json:"coverage_rate"`
	TotalHours   float64 `json:"total_hours"`
}

// AnalyzeCoverage 统计周期班次的覆盖情况
func AnalyzeCoverage(s model.Schedule) *CoverageMetrics {
	horizon := s.Horizon()
	metrics := &CoverageMetrics{
		DailyCoverage:     make([]DayCoverage, 0),
		ShiftTypeCoverage: make(map[model.ShiftType]float64),
		UncoveredShifts:   make([]model.Shift, 0),
		OverallCoverage:   100,
	}
	if len(horizon) == 0 {
		return metrics
	}

	assigned := make(map[int64]bool)
	for _, id := range s.NurseIDs() {
		for _, sh := range s.ShiftsOf(id) {
			assigned[sh.ID] = true
		}
	}

	daily := make(map[string]*DayCoverage)
	typeTotals := make(map[model.ShiftType]int)
	typeAssigned := make(map[model.ShiftType]int)

	for _, sh := range horizon {
		ok := assigned[sh.ID]
		day, exists := daily[sh.Date]
		if !exists {
			day = &DayCoverage{Date: sh.Date}
			daily[sh.Date] = day
		}
		day.TotalShifts++
		typeTotals[sh.Type]++

		if ok {
			metrics.AssignedShifts++
			day.Assigned++
			day.TotalHours += float64(sh.Hours())
			typeAssigned[sh.Type]++
		} else {
			metrics.UncoveredShifts = append(metrics.UncoveredShifts, sh)
		}
	}

	metrics.TotalShifts = len(horizon)
	metrics.OverallCoverage = float64(metrics.AssignedShifts) / float64(metrics.TotalShifts) * 100

	for _, day := range daily {
		day.CoverageRate = float64(day.Assigned) / float64(day.TotalShifts) * 100
		metrics.DailyCoverage = append(metrics.DailyCoverage, *day)
	}
	sort.Slice(metrics.DailyCoverage, func(i, j int) bool {
		return metrics.DailyCoverage[i].Date < metrics.DailyCoverage[j].Date
	})

	for t, total := range typeTotals {
		metrics.ShiftTypeCoverage[t] = float64(typeAssigned[t]) / float64(total) * 100
	}
	return metrics
}
