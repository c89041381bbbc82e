package constraint

import (
	"fmt"
	"sort"
	"time"

	"github.com/paiban/nurseplan/pkg/model"
)

type timedShift struct {
	shift model.Shift
	start time.Time
}

// byStart 按日期稳定排序，同日班次保持原有顺序
func byStart(shifts []model.Shift) []timedShift {
	out := make([]timedShift, 0, len(shifts))
	for _, sh := range shifts {
		if start, ok := sh.Start(); ok {
			out = append(out, timedShift{shift: sh, start: start})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].start.Before(out[j].start) })
	return out
}

// RestOK 相邻班次：后一班开始时间减前一班结束时间不少于最少休息时长
// 班次开始时间按当日零点计
func (e *Evaluator) RestOK(n *model.Nurse, s model.Schedule) bool {
	if n == nil {
		return true
	}
	sorted := byStart(s.ShiftsOf(n.ID))
	minRest := time.Duration(e.limits.MinRestHours) * time.Hour
	for i := 1; i < len(sorted); i++ {
		if restBetween(sorted[i-1], sorted[i]) < minRest {
			return false
		}
	}
	return true
}

func restBetween(prev, cur timedShift) time.Duration {
	prevEnd := prev.start.Add(time.Duration(prev.shift.Hours()) * time.Hour)
	return cur.start.Sub(prevEnd)
}

func (e *Evaluator) restViolations(n *model.Nurse, s model.Schedule) []ViolationDetail {
	sorted := byStart(s.ShiftsOf(n.ID))
	minRest := time.Duration(e.limits.MinRestHours) * time.Hour
	var out []ViolationDetail
	for i := 1; i < len(sorted); i++ {
		rest := restBetween(sorted[i-1], sorted[i])
		if rest >= minRest {
			continue
		}
		out = append(out, ViolationDetail{
			ConstraintType: TypeMinRestBetweenShifts,
			NurseID:        n.ID,
			ShiftID:        sorted[i].shift.ID,
			Date:           sorted[i].shift.Date,
			Message: fmt.Sprintf("护士 %s 班次 %d 与 %d 间隔仅 %.1f 小时，少于要求的 %d 小时",
				n.Name, sorted[i-1].shift.ID, sorted[i].shift.ID, rest.Hours(), e.limits.MinRestHours),
			Severity: "error",
		})
	}
	return out
}

// CoverageOK 周期内全部班次 ID 都出现在排班中
func (e *Evaluator) CoverageOK(s model.Schedule) bool {
	return len(uncovered(s)) == 0
}

func uncovered(s model.Schedule) []model.Shift {
	assigned := s.AssignedIDs()
	var out []model.Shift
	for _, sh := range s.Horizon() {
		if _, ok := assigned[sh.ID]; !ok {
			out = append(out, sh)
		}
	}
	return out
}

func (e *Evaluator) coverageViolations(s model.Schedule) []ViolationDetail {
	var out []ViolationDetail
	for _, sh := range uncovered(s) {
		out = append(out, ViolationDetail{
			ConstraintType: TypeShiftCoverage,
			ShiftID:        sh.ID,
			Date:           sh.Date,
			Message:        fmt.Sprintf("班次 %d（%s %s）未分配", sh.ID, sh.Date, sh.Type),
			Severity:       "error",
		})
	}
	return out
}
