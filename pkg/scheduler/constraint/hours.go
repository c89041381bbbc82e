package constraint

import (
	"fmt"
	"sort"
	"time"

	"github.com/paiban/nurseplan/pkg/model"
)

type isoWeek struct {
	year int
	week int
}

func (w isoWeek) String() string {
	return fmt.Sprintf("%d-W%02d", w.year, w.week)
}

// weeklyHours 按 ISO 周汇总工时，日期无法解析的班次被忽略
func weeklyHours(shifts []model.Shift) (map[isoWeek]int, []isoWeek) {
	hours := make(map[isoWeek]int)
	var order []isoWeek
	for _, sh := range shifts {
		d, ok := sh.Day()
		if !ok {
			continue
		}
		y, w := d.ISOWeek()
		key := isoWeek{y, w}
		if _, seen := hours[key]; !seen {
			order = append(order, key)
		}
		hours[key] += sh.Hours()
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].year != order[j].year {
			return order[i].year < order[j].year
		}
		return order[i].week < order[j].week
	})
	return hours, order
}

// MaxHoursOK 每 ISO 周工时不超过上限
func (e *Evaluator) MaxHoursOK(n *model.Nurse, s model.Schedule) bool {
	if n == nil {
		return true
	}
	hours, _ := weeklyHours(s.ShiftsOf(n.ID))
	for _, h := range hours {
		if h > e.limits.MaxHoursPerWeek {
			return false
		}
	}
	return true
}

func (e *Evaluator) maxHoursViolations(n *model.Nurse, s model.Schedule) []ViolationDetail {
	hours, order := weeklyHours(s.ShiftsOf(n.ID))
	var out []ViolationDetail
	for _, w := range order {
		if hours[w] <= e.limits.MaxHoursPerWeek {
			continue
		}
		out = append(out, ViolationDetail{
			ConstraintType: TypeMaxHoursPerWeek,
			NurseID:        n.ID,
			Message: fmt.Sprintf("护士 %s 在 %s 周工作 %d 小时，超过上限 %d 小时",
				n.Name, w, hours[w], e.limits.MaxHoursPerWeek),
			Severity: "error",
		})
	}
	return out
}

// sortedDays 护士班次日期升序
func sortedDays(shifts []model.Shift) []time.Time {
	days := make([]time.Time, 0, len(shifts))
	for _, sh := range shifts {
		if d, ok := sh.Day(); ok {
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func isNextDay(prev, cur time.Time) bool {
	return prev.AddDate(0, 0, 1).Equal(cur)
}

// ConsecutiveOK 连续日期（相差恰好一天）的最长序列不超过上限
// 同一天重复出现时计数重置为 1
func (e *Evaluator) ConsecutiveOK(n *model.Nurse, s model.Schedule) bool {
	if n == nil {
		return true
	}
	return len(e.consecutiveViolations(n, s)) == 0
}

func (e *Evaluator) consecutiveViolations(n *model.Nurse, s model.Schedule) []ViolationDetail {
	days := sortedDays(s.ShiftsOf(n.ID))
	var out []ViolationDetail
	run := 1
	for i := 1; i < len(days); i++ {
		if !isNextDay(days[i-1], days[i]) {
			run = 1
			continue
		}
		run++
		// 每段超限序列只报告一次
		if run == e.limits.MaxConsecutiveDays+1 {
			out = append(out, ViolationDetail{
				ConstraintType: TypeMaxConsecutiveDays,
				NurseID:        n.ID,
				Date:           days[i].Format(model.DateLayout),
				Message: fmt.Sprintf("护士 %s 截至 %s 连续工作超过 %d 天",
					n.Name, days[i].Format(model.DateLayout), e.limits.MaxConsecutiveDays),
				Severity: "error",
			})
		}
	}
	return out
}
