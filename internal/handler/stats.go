package handler

import (
	"net/http"

	"github.com/paiban/nurseplan/internal/constraints"
)

// Workload 统计给定分配的工作量分布与超时护士
func (h *Handler) Workload(w http.ResponseWriter, r *http.Request) {
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
	m, err := h.svc.Workload(snap, assigned)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, m)
}

// Constraints 当前生效的约束库
func (h *Handler) Constraints(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, constraints.LibraryResponse{Library: h.svc.Catalogue()})
}
