package handler

import (
	"fmt"
	"net/http"

	"github.com/paiban/nurseplan/internal/planner"
	"github.com/paiban/nurseplan/pkg/errors"
	"github.com/paiban/nurseplan/pkg/model"
)

// ScheduleRequest 优化请求
type ScheduleRequest struct {
	Nurses  []model.Nurse   `json:"nurses" validate:"required,min=1"`
	Shifts  []model.Shift   `json:"shifts" validate:"required,min=1"`
	Options planner.Options `json:"options"`
}

// AssignmentInput 单个分配
type AssignmentInput struct {
	ShiftID int64 `json:"shift_id" validate:"required"`
	NurseID int64 `json:"nurse_id" validate:"required"`
}

// AssignmentRequest 校验与统计请求
// Assignments 为空时使用班次自带的 assigned_nurse
type AssignmentRequest struct {
	Nurses      []model.Nurse     `json:"nurses" validate:"required,min=1"`
	Shifts      []model.Shift     `json:"shifts" validate:"required,min=1"`
	Assignments []AssignmentInput `json:"assignments" validate:"omitempty,dive"`
}

// OptimizeResponse 优化响应
type OptimizeResponse struct {
	Success bool   `json:"success"`
	Partial bool   `json:"partial,omitempty"` // 超时或取消时返回的当前最优解
	Message string `json:"message,omitempty"`
	*planner.Outcome
}

// Optimize 对请求中的护士与班次运行优化
func (h *Handler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := h.readJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	out, err := h.svc.Optimize(ctx, model.NewSnapshot(req.Nurses, req.Shifts), req.Options)
	respondOutcome(w, r, out, err)
}

// respondOutcome 中断的运行若已有结果则作为部分解返回
func respondOutcome(w http.ResponseWriter, r *http.Request, out *planner.Outcome, err error) {
	if err != nil {
		if out == nil || !(errors.Is(err, errors.CodeTimeout) || errors.Is(err, errors.CodeCancelled)) {
			respondError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, OptimizeResponse{
			Success: true,
			Partial: true,
			Message: err.Error(),
			Outcome: out,
		})
		return
	}
	respondJSON(w, r, http.StatusOK, OptimizeResponse{Success: true, Outcome: out})
}

// Validate 校验给定分配的约束与适应度
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req AssignmentRequest
	if err := h.readJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	snap, assigned, err := req.resolve()
	if err != nil {
		respondError(w, r, err)
		return
	}
	v, err := h.svc.Validate(snap, assigned)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, v)
}

// resolve 构建快照与分配列表，引用未知班次或护士时报错
func (req *AssignmentRequest) resolve() (*model.Snapshot, []model.Shift, error) {
	snap := model.NewSnapshot(req.Nurses, req.Shifts)
	if len(req.Assignments) == 0 {
		return snap, snap.Horizon(), nil
	}

	ve := &errors.ValidationErrors{}
	assigned := make([]model.Shift, 0, len(req.Assignments))
	for i, a := range req.Assignments {
		sh, ok := snap.Shift(a.ShiftID)
		if !ok {
			ve.Add(fmt.Sprintf("assignments[%d].shift_id", i), fmt.Sprintf("班次 %d 不存在", a.ShiftID))
			continue
		}
		if _, ok := snap.Nurse(a.NurseID); !ok {
			ve.Add(fmt.Sprintf("assignments[%d].nurse_id", i), fmt.Sprintf("护士 %d 不存在", a.NurseID))
			continue
		}
		assigned = append(assigned, sh.WithNurse(a.NurseID))
	}
	if ve.HasErrors() {
		return nil, nil, ve.ToAppError()
	}
	return snap, assigned, nil
}
