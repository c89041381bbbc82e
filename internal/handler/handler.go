// Package handler 提供HTTP请求处理器
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"

	"github.com/paiban/nurseplan/internal/planner"
)

// BuildInfo 版本信息
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
}

// RequestRecorder HTTP 请求指标
type RequestRecorder interface {
	RecordRequest(method, path string, status int, duration time.Duration)
}

// HealthCheck 依赖健康检查
type HealthCheck func(ctx context.Context) error

// Config 处理器配置
type Config struct {
	RequestTimeout time.Duration
	RateLimit      int // 每秒请求数，0 表示不限
	CORSOrigins    []string
	Build          BuildInfo
	Metrics        http.Handler // 为空时不暴露 /metrics
	Recorder       RequestRecorder
	Checks         map[string]HealthCheck
}

// Handler 排班 API
type Handler struct {
	svc        *planner.Service
	cfg        Config
	validate   *validator.Validate
	translator ut.Translator
	limiter    *RateLimiter

	Mux *chi.Mux
}

// NewHandler 创建处理器并注册路由
func NewHandler(svc *planner.Service, cfg Config) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zhLocale := zh.New()
	uni := ut.New(zhLocale, zhLocale)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	h := &Handler{
		svc:        svc,
		cfg:        cfg,
		validate:   validate,
		translator: trans,
		Mux:        chi.NewRouter(),
	}
	if cfg.RateLimit > 0 {
		h.limiter = NewRateLimiter(cfg.RateLimit)
	}
	h.registerRoutes()
	return h, nil
}

// ServeHTTP 实现 http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Mux.ServeHTTP(w, r)
}

// 中间件执行顺序：requestID -> recoverer -> logging -> securityHeaders -> rateLimit -> cors -> handler
func (h *Handler) registerRoutes() {
	h.Mux.Use(h.requestID)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(h.logging)
	h.Mux.Use(securityHeaders)
	h.Mux.Use(h.rateLimit)
	h.Mux.Use(h.cors)

	h.Mux.Get("/health", h.Health)
	h.Mux.Get("/version", h.Version)
	if h.cfg.Metrics != nil {
		h.Mux.Handle("/metrics", h.cfg.Metrics)
	}

	h.Mux.Route("/api/v1", func(r chi.Router) {
		r.Get("/", h.Index)
		r.Get("/constraints", h.Constraints)
		r.Route("/schedule", func(r chi.Router) {
			r.Post("/optimize", h.Optimize)
			r.Post("/validate", h.Validate)
		})
		r.Route("/stats", func(r chi.Router) {
			r.Post("/workload", h.Workload)
		})
		r.Route("/runs", func(r chi.Router) {
			r.Post("/", h.CreateRun)
			r.Get("/latest", h.LatestRun)
		})
	})
}

// withTimeout 为耗时请求附加超时
func (h *Handler) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	if h.cfg.RequestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
}
