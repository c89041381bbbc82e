package handler

import (
	"net/http"

	"github.com/paiban/nurseplan/internal/planner"
)

// RunRequest 基于数据库数据的优化请求
type RunRequest struct {
	Options planner.Options `json:"options"`
	DryRun  bool            `json:"dry_run"` // 为真时不写回分配
}

// CreateRun 优化数据库中的排班并保存结果
func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if r.ContentLength != 0 {
		if err := h.readJSON(w, r, &req); err != nil {
			respondError(w, r, err)
			return
		}
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	out, err := h.svc.RunStored(ctx, req.Options, !req.DryRun)
	respondOutcome(w, r, out, err)
}

// LatestRun 返回最近一次保存的排班
func (h *Handler) LatestRun(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Latest(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, v)
}
