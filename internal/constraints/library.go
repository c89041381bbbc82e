// Package constraints 描述当前生效的约束与适应度项，供 API 展示
package constraints

import (
	"strconv"

	"github.com/paiban/nurseplan/pkg/scheduler/constraint"
	"github.com/paiban/nurseplan/pkg/scheduler/fitness"
)

// ConstraintParam 约束参数
type ConstraintParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // int, float
	Description string `json:"description"`
	Value       string `json:"value"`
	Default     string `json:"default"`
}

// ConstraintDefinition 约束或适应度项定义
type ConstraintDefinition struct {
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Type        string            `json:"type"` // hard 硬约束（违反即扣分并判定无效）, soft 软约束（仅影响得分）
	Description string            `json:"description"`
	Params      []ConstraintParam `json:"params"`
}

// LibraryResponse 约束库响应
type LibraryResponse struct {
	Library []ConstraintDefinition `json:"library"`
}

func intParam(name, desc string, value, def int) ConstraintParam {
	return ConstraintParam{Name: name, Type: "int", Description: desc, Value: strconv.Itoa(value), Default: strconv.Itoa(def)}
}

func floatParam(name, desc string, value, def float64) ConstraintParam {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return ConstraintParam{Name: name, Type: "float", Description: desc, Value: f(value), Default: f(def)}
}

// GetLibrary 按当前阈值与权重生成约束库
func GetLibrary(limits constraint.Limits, w fitness.Weights) []ConstraintDefinition {
	dl, dw := constraint.DefaultLimits(), fitness.DefaultWeights()
	return []ConstraintDefinition{
		{
			Name:        string(constraint.TypeMaxHoursPerWeek),
			DisplayName: "每周最大工时",
			Type:        "hard",
			Description: "同一 ISO 周内护士的累计工时不得超过上限。",
			Params: []ConstraintParam{
				intParam("max_hours", "最大工时(小时)", limits.MaxHoursPerWeek, dl.MaxHoursPerWeek),
				floatParam("penalty", "每位违反护士的扣分", w.MaxHours, dw.MaxHours),
			},
		},
		{
			Name:        string(constraint.TypeMaxConsecutiveDays),
			DisplayName: "最大连续工作天数",
			Type:        "hard",
			Description: "按日历日连续工作的天数不得超过上限。",
			Params: []ConstraintParam{
				intParam("max_days", "最大连续天数", limits.MaxConsecutiveDays, dl.MaxConsecutiveDays),
				floatParam("penalty", "每位违反护士的扣分", w.Consecutive, dw.Consecutive),
			},
		},
		{
			Name:        string(constraint.TypeMinRestBetweenShifts),
			DisplayName: "班次间最少休息",
			Type:        "hard",
			Description: "相邻两个班次之间的休息时长不得少于下限。",
			Params: []ConstraintParam{
				intParam("min_rest_hours", "最少休息(小时)", limits.MinRestHours, dl.MinRestHours),
				floatParam("penalty", "每位违反护士的扣分", w.Rest, dw.Rest),
			},
		},
		{
			Name:        string(constraint.TypeShiftCoverage),
			DisplayName: "班次覆盖",
			Type:        "hard",
			Description: "周期内每个班次至少由一名护士承担，全部覆盖时获得奖励。",
			Params: []ConstraintParam{
				floatParam("unassigned_penalty", "每个未分配班次的扣分", w.Unassigned, dw.Unassigned),
				floatParam("coverage_bonus", "全覆盖奖励", w.Coverage, dw.Coverage),
			},
		},
		{
			Name:        "preference_match",
			DisplayName: "班次偏好",
			Type:        "soft",
			Description: "分配的班次类型属于护士偏好时加分。",
			Params: []ConstraintParam{
				floatParam("bonus", "每个偏好匹配的加分", w.PreferenceMatch, dw.PreferenceMatch),
			},
		},
		{
			Name:        "workload",
			DisplayName: "工作量",
			Type:        "soft",
			Description: "按已分配班次的总工时加分。",
			Params: []ConstraintParam{
				floatParam("hours_factor", "每小时加分", w.HoursFactor, dw.HoursFactor),
			},
		},
	}
}
