package constraint

import (
	"sync"

	"github.com/paiban/nurseplan/pkg/logger"
	"github.com/paiban/nurseplan/pkg/model"
)

// Check 可注册的约束检查
type Check interface {
	// Name 返回约束名称
	Name() string

	// Type 返回约束类型
	Type() Type

	// Evaluate 返回整个排班中的全部违反
	Evaluate(s model.Schedule) []ViolationDetail
}

// perNurseCheck 逐护士检查
type perNurseCheck struct {
	name string
	typ  Type
	fn   func(*model.Nurse, model.Schedule) []ViolationDetail
}

func (c perNurseCheck) Name() string { return c.name }
func (c perNurseCheck) Type() Type   { return c.typ }

func (c perNurseCheck) Evaluate(s model.Schedule) []ViolationDetail {
	var out []ViolationDetail
	for _, n := range s.Nurses() {
		out = append(out, c.fn(n, s)...)
	}
	return out
}

type coverageCheck struct{ e *Evaluator }

func (c coverageCheck) Name() string { return "班次覆盖" }
func (c coverageCheck) Type() Type   { return TypeShiftCoverage }
func (c coverageCheck) Evaluate(s model.Schedule) []ViolationDetail {
	return c.e.coverageViolations(s)
}

// BuiltinChecks 内置的四项硬约束
func (e *Evaluator) BuiltinChecks() []Check {
	return []Check{
		perNurseCheck{name: "每周最大工时", typ: TypeMaxHoursPerWeek, fn: e.maxHoursViolations},
		perNurseCheck{name: "最大连续工作天数", typ: TypeMaxConsecutiveDays, fn: e.consecutiveViolations},
		perNurseCheck{name: "班次间最小休息", typ: TypeMinRestBetweenShifts, fn: e.restViolations},
		coverageCheck{e: e},
	}
}

// Manager 约束管理器
type Manager struct {
	checks []Check
	mu     sync.RWMutex
	logger *logger.OptimizerLogger
}

// NewManager 创建约束管理器并注册内置约束
func NewManager(e *Evaluator) *Manager {
	m := &Manager{logger: logger.NewOptimizerLogger()}
	for _, c := range e.BuiltinChecks() {
		m.Register(c)
	}
	return m
}

// Register 注册约束，同类型约束被替换
func (m *Manager) Register(c Check) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.checks {
		if existing.Type() == c.Type() {
			m.checks[i] = c
			return
		}
	}
	m.checks = append(m.checks, c)
}

// Unregister 注销约束
func (m *Manager) Unregister(t Type) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.checks {
		if c.Type() == t {
			m.checks = append(m.checks[:i], m.checks[i+1:]...)
			return
		}
	}
}

// Count 返回约束数量
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.checks)
}

// Inspect 评估全部约束并返回每一项违反
func (m *Manager) Inspect(s model.Schedule) Report {
	m.mu.RLock()
	checks := make([]Check, len(m.checks))
	copy(checks, m.checks)
	m.mu.RUnlock()

	report := Report{
		Valid:      true,
		Violations: make([]ViolationDetail, 0),
		ByType:     make(map[Type]int),
	}
	for _, c := range checks {
		for _, d := range c.Evaluate(s) {
			report.Valid = false
			report.Violations = append(report.Violations, d)
			report.ByType[c.Type()]++
			m.logger.ConstraintViolation(c.Name(), d.Message)
		}
	}
	return report
}
