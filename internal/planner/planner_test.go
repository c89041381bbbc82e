package planner

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paiban/nurseplan/internal/database"
	"github.com/paiban/nurseplan/internal/repository"
	"github.com/paiban/nurseplan/pkg/errors"
	"github.com/paiban/nurseplan/pkg/model"
	"github.com/paiban/nurseplan/pkg/report"
	"github.com/paiban/nurseplan/pkg/scheduler/constraint"
	"github.com/paiban/nurseplan/pkg/scheduler/optimizer"
)

func sampleSnapshot(t *testing.T) *model.Snapshot {
	t.Helper()
	shifts, err := database.SampleShifts(database.SampleStartDate, 7)
	require.NoError(t, err)
	return model.NewSnapshot(database.SampleNurseModels(), shifts)
}

func testConfig() optimizer.Config {
	cfg := *optimizer.DefaultConfig()
	cfg.Seed = 42
	cfg.Generations = 20
	return cfg
}

type fakeStore struct {
	snap    *model.Snapshot
	loadErr error
	saved   *model.Roster
	run     *repository.RunRecord
	saveErr error
}

func (f *fakeStore) LoadSnapshot(context.Context) (*model.Snapshot, error) {
	return f.snap, f.loadErr
}

func (f *fakeStore) SaveRun(_ context.Context, r *model.Roster, rec *repository.RunRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved, f.run = r, rec
	return nil
}

func (f *fakeStore) LatestRoster(context.Context) (*model.Roster, error) {
	return f.saved, nil
}

func (f *fakeStore) LatestRun(context.Context) (*repository.RunRecord, error) {
	return f.run, nil
}

type fakeCache struct {
	view *report.View
	sets int
}

func (f *fakeCache) GetLatest(context.Context) (*report.View, error) { return f.view, nil }

func (f *fakeCache) SetLatest(_ context.Context, v *report.View) error {
	f.view = v
	f.sets++
	return nil
}

type fakeRecorder struct {
	generations int
	completed   int
	failures    []string
	coverage    float64
}

func (f *fakeRecorder) OnGeneration(optimizer.GenerationStats) { f.generations++ }
func (f *fakeRecorder) OnComplete(*optimizer.Result)           { f.completed++ }
func (f *fakeRecorder) RecordRunFailure(status string)         { f.failures = append(f.failures, status) }
func (f *fakeRecorder) SetViolations(*constraint.Report)       {}
func (f *fakeRecorder) SetCoverage(rate float64)               { f.coverage = rate }
func (f *fakeRecorder) SetWorkloadGini(float64)                {}

func TestService_Optimize(t *testing.T) {
	rec := &fakeRecorder{}
	svc := New(testConfig(), constraint.DefaultLimits(), WithRecorder(rec))

	out, err := svc.Optimize(context.Background(), sampleSnapshot(t), Options{})
	require.NoError(t, err)
	require.NotNil(t, out.Result)

	assert.Equal(t, 21, out.View.TotalShifts)
	assert.Len(t, out.View.Rows, 21)
	assert.Equal(t, out.Result.RunID.String(), out.View.RunID)
	assert.Equal(t, out.Result.Generations, rec.generations)
	assert.Equal(t, 1, rec.completed)
	assert.Equal(t, out.Coverage.OverallCoverage, rec.coverage)
	assert.LessOrEqual(t, out.Result.Generations, 20)
}

func TestService_OptimizeOptions(t *testing.T) {
	svc := New(testConfig(), constraint.DefaultLimits())
	rate := 0.5
	cfg := svc.configFor(Options{PopulationSize: 10, MutationRate: &rate, Generations: 5, Seed: 7, MaxTimeMs: 1500})

	assert.Equal(t, 10, cfg.PopulationSize)
	assert.Equal(t, 0.5, cfg.MutationRate)
	assert.Equal(t, 5, cfg.Generations)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "1.5s", cfg.MaxTime.String())

	unchanged := svc.configFor(Options{})
	assert.Equal(t, testConfig(), unchanged)
}

func TestService_OptimizeEmpty(t *testing.T) {
	rec := &fakeRecorder{}
	svc := New(testConfig(), constraint.DefaultLimits(), WithRecorder(rec))

	_, err := svc.Optimize(context.Background(), model.NewSnapshot(nil, nil), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeNoFeasibleSolution))
	assert.Equal(t, []string{string(errors.CodeNoFeasibleSolution)}, rec.failures)
}

func TestService_OptimizeCancelled(t *testing.T) {
	svc := New(testConfig(), constraint.DefaultLimits())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := svc.Optimize(ctx, sampleSnapshot(t), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeCancelled))
	if out != nil {
		assert.Equal(t, optimizer.StopCancelled, out.Result.StopReason)
	}
}

func TestService_Validate(t *testing.T) {
	svc := New(testConfig(), constraint.DefaultLimits())
	snap := sampleSnapshot(t)

	// 护士 2 连续承担同一天的午班与夜班
	aft := snap.Horizon()[1].WithNurse(2)
	night := snap.Horizon()[2].WithNurse(2)
	v, err := svc.Validate(snap, []model.Shift{aft, night})
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.Positive(t, v.Violations.ByType[constraint.TypeShiftCoverage])
	assert.Equal(t, v.Breakdown.Total(), v.Fitness)

	_, err = svc.Validate(model.NewSnapshot(nil, nil), nil)
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))
}

func TestService_Workload(t *testing.T) {
	svc := New(testConfig(), constraint.DefaultLimits())
	snap := sampleSnapshot(t)

	m, err := svc.Workload(snap, []model.Shift{snap.Horizon()[2].WithNurse(2)})
	require.NoError(t, err)
	assert.Equal(t, 10.0, m.TotalHours)
	assert.Len(t, m.NurseStats, 25)

	_, err = svc.Workload(model.NewSnapshot(nil, nil), nil)
	assert.Error(t, err)
}

func TestService_RunStoredAndLatest(t *testing.T) {
	store := &fakeStore{snap: sampleSnapshot(t)}
	cache := &fakeCache{}
	svc := New(testConfig(), constraint.DefaultLimits(), WithStore(store), WithCache(cache))
	ctx := context.Background()

	out, err := svc.RunStored(ctx, Options{}, true)
	require.NoError(t, err)
	require.NotNil(t, store.run)
	assert.Equal(t, out.Result.RunID, store.run.RunID)
	assert.Equal(t, out.View.Assigned, store.run.Assigned)
	assert.Equal(t, 1, cache.sets)

	v, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, out.View.RunID, v.RunID)

	// 缓存未命中时从存储重建并回填
	cache.view = nil
	v, err = svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.run.RunID.String(), v.RunID)
	assert.Equal(t, out.View.Assigned, v.Assigned)
	assert.Equal(t, 2, cache.sets)
}

func TestService_RunStoredErrors(t *testing.T) {
	ctx := context.Background()

	_, err := New(testConfig(), constraint.DefaultLimits()).RunStored(ctx, Options{}, false)
	assert.True(t, errors.Is(err, errors.CodeInternal))

	store := &fakeStore{loadErr: stderrors.New("connection refused")}
	_, err = New(testConfig(), constraint.DefaultLimits(), WithStore(store)).RunStored(ctx, Options{}, false)
	assert.True(t, errors.Is(err, errors.CodeDatabaseError))

	store = &fakeStore{snap: sampleSnapshot(t), saveErr: stderrors.New("deadlock")}
	out, err := New(testConfig(), constraint.DefaultLimits(), WithStore(store)).RunStored(ctx, Options{}, true)
	assert.True(t, errors.Is(err, errors.CodeDatabaseError))
	assert.NotNil(t, out)
}

func TestService_LatestNotFound(t *testing.T) {
	svc := New(testConfig(), constraint.DefaultLimits(), WithStore(&fakeStore{}))
	_, err := svc.Latest(context.Background())
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	_, err = New(testConfig(), constraint.DefaultLimits()).Latest(context.Background())
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}
