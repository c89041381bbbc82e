package constraint

import (
	"strings"
	"time"

	"github.com/paiban/nurseplan/pkg/model"
)

// PreferenceMatch 班次类型属于护士偏好；参数为空时记录警告并视为不匹配
func (e *Evaluator) PreferenceMatch(n *model.Nurse, sh *model.Shift) bool {
	if n == nil || sh == nil {
		e.logger().ConstraintViolation("preference", "护士或班次为空，视为不匹配")
		return false
	}
	return n.Prefers(sh.Type)
}

// IsAvailable 班次所在星期落在任一可用时段内，且班次类型为护士偏好
func IsAvailable(n *model.Nurse, sh model.Shift) bool {
	if n == nil || !n.Prefers(sh.Type) {
		return false
	}
	d, ok := sh.Day()
	if !ok {
		return false
	}
	w := model.WeekdayOrdinal(d)
	for _, slot := range n.Slots() {
		if slot.Days.Contains(w) {
			return true
		}
	}
	return false
}

// AvailableTypesOn 当日可用且为偏好的班次类型
// 仅统计括号中标注了班次类型的时段
func AvailableTypesOn(n *model.Nurse, day time.Time) []model.ShiftType {
	if n == nil {
		return nil
	}
	w := model.WeekdayOrdinal(day)
	var types []model.ShiftType
	for _, slot := range n.Slots() {
		if !slot.HasType || !slot.Days.Contains(w) || !n.Prefers(slot.Type) {
			continue
		}
		types = append(types, slot.Type)
	}
	return types
}

// LooselyAvailable 粗略可用性：原始可用时段文本包含班次星期缩写（忽略大小写），
// 或班次星期落在任一解析出的时段内。不看班次类型与偏好，因此包含 OffersShift 的全部结果
func LooselyAvailable(n *model.Nurse, sh model.Shift) bool {
	if n == nil {
		return false
	}
	d, ok := sh.Day()
	if !ok {
		return false
	}
	if strings.Contains(strings.ToLower(n.Availability), strings.ToLower(d.Format("Mon"))) {
		return true
	}
	w := model.WeekdayOrdinal(d)
	for _, slot := range n.Slots() {
		if slot.Days.Contains(w) {
			return true
		}
	}
	return false
}

func containsType(types []model.ShiftType, t model.ShiftType) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

// OffersShift 护士在该班次日期的可用类型中包含该班次类型
func OffersShift(n *model.Nurse, sh model.Shift) bool {
	d, ok := sh.Day()
	if !ok {
		return false
	}
	return containsType(AvailableTypesOn(n, d), sh.Type)
}
