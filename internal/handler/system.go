package handler

import (
	"context"
	"net/http"
	"sort"
	"time"
)

// Health 健康检查，任一依赖不可用时返回 503
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.cfg.Checks))
	for name := range h.cfg.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	checks := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.cfg.Checks[name](ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "degraded"
	}
	respondJSON(w, r, status, map[string]interface{}{
		"status":  overall,
		"version": h.cfg.Build.Version,
		"checks":  checks,
	})
}

// Version 版本信息
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.cfg.Build)
}

// Index API 目录
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"name":    "nurseplan",
		"version": h.cfg.Build.Version,
		"endpoints": map[string]string{
			"optimize":    "POST /api/v1/schedule/optimize",
			"validate":    "POST /api/v1/schedule/validate",
			"workload":    "POST /api/v1/stats/workload",
			"create_run":  "POST /api/v1/runs",
			"latest_run":  "GET /api/v1/runs/latest",
			"constraints": "GET /api/v1/constraints",
			"health":      "GET /health",
			"version":     "GET /version",
			"metrics":     "GET /metrics",
		},
	})
}
