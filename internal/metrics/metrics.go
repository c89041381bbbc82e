// Package metrics 提供Prometheus监控指标
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paiban/nurseplan/pkg/scheduler/constraint"
	"github.com/paiban/nurseplan/pkg/scheduler/optimizer"
)

// Collector 排班服务指标
type Collector struct {
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	runs        *prometheus.CounterVec
	runDuration prometheus.Histogram
	generations prometheus.Counter
	bestFitness prometheus.Gauge
	violations  *prometheus.GaugeVec
	coverage    prometheus.Gauge
	gini        prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New 在 reg 上注册指标，reg 为空时使用默认注册表
// 已注册的同名指标会被复用
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nurseplan_http_requests_total",
			Help: "HTTP请求总数",
		}, []string{"method", "path", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nurseplan_http_request_duration_seconds",
			Help:    "HTTP请求延迟",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}, []string{"method", "path"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nurseplan_runs_total",
			Help: "优化运行次数（按终止原因或失败状态）",
		}, []string{"status"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nurseplan_run_duration_seconds",
			Help:    "单次优化耗时",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		}),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nurseplan_generations_total",
			Help: "已执行的迭代代数",
		}),
		bestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nurseplan_best_fitness",
			Help: "最近一次运行的最优适应度",
		}),
		violations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nurseplan_constraint_violations",
			Help: "最近一次排班的约束违反数",
		}, []string{"constraint_type"}),
		coverage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nurseplan_coverage_rate",
			Help: "最近一次排班的班次覆盖率（%）",
		}),
		gini: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nurseplan_workload_gini",
			Help: "最近一次排班工时的基尼系数",
		}),
	}

	var err error
	if c.requests, err = register(reg, c.requests); err != nil {
		return nil, err
	}
	if c.latency, err = register(reg, c.latency); err != nil {
		return nil, err
	}
	if c.runs, err = register(reg, c.runs); err != nil {
		return nil, err
	}
	if c.runDuration, err = register(reg, c.runDuration); err != nil {
		return nil, err
	}
	if c.generations, err = register(reg, c.generations); err != nil {
		return nil, err
	}
	if c.bestFitness, err = register(reg, c.bestFitness); err != nil {
		return nil, err
	}
	if c.violations, err = register(reg, c.violations); err != nil {
		return nil, err
	}
	if c.coverage, err = register(reg, c.coverage); err != nil {
		return nil, err
	}
	if c.gini, err = register(reg, c.gini); err != nil {
		return nil, err
	}

	if g, ok := reg.(prometheus.Gatherer); ok {
		c.gatherer = g
	} else {
		c.gatherer = prometheus.DefaultGatherer
	}
	return c, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	if err := reg.Register(col); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return col, err
	}
	return col, nil
}

// Handler 暴露指标的 HTTP 处理器
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// RecordRequest 记录请求指标
func (c *Collector) RecordRequest(method, path string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordRunFailure 记录失败的运行
func (c *Collector) RecordRunFailure(status string) {
	c.runs.WithLabelValues(status).Inc()
}

// OnGeneration 实现 optimizer.Observer
func (c *Collector) OnGeneration(stats optimizer.GenerationStats) {
	c.generations.Inc()
	c.bestFitness.Set(stats.Best)
}

// OnComplete 实现 optimizer.Observer
func (c *Collector) OnComplete(result *optimizer.Result) {
	c.runs.WithLabelValues(string(result.StopReason)).Inc()
	c.runDuration.Observe(result.Duration.Seconds())
	c.bestFitness.Set(result.Fitness)
}

// SetViolations 按约束类型记录违反数
func (c *Collector) SetViolations(report *constraint.Report) {
	c.violations.Reset()
	for t, n := range report.ByType {
		c.violations.WithLabelValues(string(t)).Set(float64(n))
	}
}

// SetCoverage 记录覆盖率
func (c *Collector) SetCoverage(rate float64) {
	c.coverage.Set(rate)
}

// SetWorkloadGini 记录工时基尼系数
func (c *Collector) SetWorkloadGini(gini float64) {
	c.gini.Set(gini)
}

var _ optimizer.Observer = (*Collector)(nil)
