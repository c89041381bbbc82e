package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paiban/nurseplan/pkg/scheduler/constraint"
	"github.com/paiban/nurseplan/pkg/scheduler/optimizer"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	c, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	return c
}

func TestCollector_Observer(t *testing.T) {
	c := newTestCollector(t)

	c.OnGeneration(optimizer.GenerationStats{Generation: 1, Best: 100})
	c.OnGeneration(optimizer.GenerationStats{Generation: 2, Best: 120})
	c.OnComplete(&optimizer.Result{Fitness: 130, StopReason: optimizer.StopStagnation, Duration: 50 * time.Millisecond})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.generations))
	assert.Equal(t, 130.0, testutil.ToFloat64(c.bestFitness))

	expected := `
# HELP nurseplan_runs_total 优化运行次数（按终止原因或失败状态）
# TYPE nurseplan_runs_total counter
nurseplan_runs_total{status="stagnation"} 1
`
	assert.NoError(t, testutil.CollectAndCompare(c.runs, strings.NewReader(expected)))
	assert.Equal(t, 1, testutil.CollectAndCount(c.runDuration))
}

func TestCollector_RecordRequest(t *testing.T) {
	c := newTestCollector(t)
	c.RecordRequest("POST", "/api/v1/schedule/optimize", 200, 30*time.Millisecond)
	c.RecordRequest("POST", "/api/v1/schedule/optimize", 400, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("POST", "/api/v1/schedule/optimize", "200")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.requests))
}

func TestCollector_Violations(t *testing.T) {
	c := newTestCollector(t)
	c.SetViolations(&constraint.Report{ByType: map[constraint.Type]int{
		constraint.TypeMaxHoursPerWeek: 2,
		constraint.TypeShiftCoverage:   5,
	}})
	assert.Equal(t, 5.0, testutil.ToFloat64(c.violations.WithLabelValues(string(constraint.TypeShiftCoverage))))

	c.SetViolations(&constraint.Report{ByType: map[constraint.Type]int{}})
	assert.Equal(t, 0, testutil.CollectAndCount(c.violations), "新报告应清空旧值")

	c.SetCoverage(92.5)
	c.SetWorkloadGini(0.12)
	assert.Equal(t, 92.5, testutil.ToFloat64(c.coverage))
	assert.Equal(t, 0.12, testutil.ToFloat64(c.gini))
}

func TestNew_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg)
	require.NoError(t, err)
	second, err := New(reg)
	require.NoError(t, err)

	first.RecordRunFailure("error")
	assert.Equal(t, 1.0, testutil.ToFloat64(second.runs.WithLabelValues("error")))
}

func TestCollector_Handler(t *testing.T) {
	c := newTestCollector(t)
	c.RecordRunFailure("error")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `nurseplan_runs_total{status="error"} 1`)
}
