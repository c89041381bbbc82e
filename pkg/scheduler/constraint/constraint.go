// Package constraint 定义护士排班的硬约束检查与可用性判断
package constraint

import (
	"github.com/paiban/nurseplan/pkg/logger"
	"github.com/paiban/nurseplan/pkg/model"
)

// Type 约束类型标识
type Type string

const (
	TypeMaxHoursPerWeek      Type = "max_hours_per_week"
	TypeMaxConsecutiveDays   Type = "max_consecutive_days"
	TypeMinRestBetweenShifts Type = "min_rest_between_shifts"
	TypeShiftCoverage        Type = "shift_coverage"
)

const (
	MaxHoursPerWeek    = 48 // 每 ISO 周最多工时
	MaxConsecutiveDays = 6  // 最多连续工作天数
	MinRestHours       = 11 // 班次间最少休息小时数
)

// Limits 约束阈值
type Limits struct {
	MaxHoursPerWeek    int `json:"max_hours_per_week"`
	MaxConsecutiveDays int `json:"max_consecutive_days"`
	MinRestHours       int `json:"min_rest_hours"`
}

// DefaultLimits 返回默认阈值
func DefaultLimits() Limits {
	return Limits{
		MaxHoursPerWeek:    MaxHoursPerWeek,
		MaxConsecutiveDays: MaxConsecutiveDays,
		MinRestHours:       MinRestHours,
	}
}

// withDefaults 非正值回退为默认值
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxHoursPerWeek <= 0 {
		l.MaxHoursPerWeek = d.MaxHoursPerWeek
	}
	if l.MaxConsecutiveDays <= 0 {
		l.MaxConsecutiveDays = d.MaxConsecutiveDays
	}
	if l.MinRestHours <= 0 {
		l.MinRestHours = d.MinRestHours
	}
	return l
}

// ViolationDetail 约束违反详情
type ViolationDetail struct {
	ConstraintType Type   `json:"constraint_type"`
	NurseID        int64  `json:"nurse_id,omitempty"`
	ShiftID        int64  `json:"shift_id,omitempty"`
	Date           string `json:"date,omitempty"`
	Message        string `json:"message"`
	Severity       string `json:"severity"` // error/warning
}

// Report 约束检查结果
type Report struct {
	Valid      bool              `json:"valid"`
	Violations []ViolationDetail `json:"violations"`
	ByType     map[Type]int      `json:"by_type"`
}

// Evaluator 约束评估器，只读，可并发使用
type Evaluator struct {
	limits Limits
}

// NewEvaluator 创建约束评估器
func NewEvaluator(limits Limits) *Evaluator {
	return &Evaluator{limits: limits.withDefaults()}
}

// Limits 当前阈值
func (e *Evaluator) Limits() Limits {
	return e.limits
}

func (e *Evaluator) logger() *logger.OptimizerLogger {
	return logger.NewOptimizerLogger()
}

var defaultEvaluator = NewEvaluator(DefaultLimits())

// MaxHoursOK 每 ISO 周工时不超过上限
func MaxHoursOK(n *model.Nurse, s model.Schedule) bool { return defaultEvaluator.MaxHoursOK(n, s) }

// ConsecutiveOK 连续工作天数不超过上限
func ConsecutiveOK(n *model.Nurse, s model.Schedule) bool {
	return defaultEvaluator.ConsecutiveOK(n, s)
}

// RestOK 相邻班次间休息时间足够
func RestOK(n *model.Nurse, s model.Schedule) bool { return defaultEvaluator.RestOK(n, s) }

// CoverageOK 周期内每个班次至少分配一次
func CoverageOK(s model.Schedule) bool { return defaultEvaluator.CoverageOK(s) }

// PreferenceMatch 班次类型是否为护士偏好
func PreferenceMatch(n *model.Nurse, sh *model.Shift) bool {
	return defaultEvaluator.PreferenceMatch(n, sh)
}

// Validate 依次检查全部硬约束
func Validate(s model.Schedule) bool { return defaultEvaluator.Validate(s) }

// Validate 对快照中每位护士检查工时、连续天数、休息与覆盖，任一失败即返回 false
func (e *Evaluator) Validate(s model.Schedule) bool {
	for _, n := range s.Nurses() {
		if !e.MaxHoursOK(n, s) ||
			!e.ConsecutiveOK(n, s) ||
			!e.RestOK(n, s) ||
			!e.CoverageOK(s) {
			return false
		}
	}
	return true
}

// Inspect 使用默认阈值返回全部违反
func Inspect(s model.Schedule) Report { return defaultEvaluator.Inspect(s) }

// Inspect 使用内置约束返回全部违反
func (e *Evaluator) Inspect(s model.Schedule) Report {
	return NewManager(e).Inspect(s)
}
