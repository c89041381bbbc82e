// Package planner 编排一次排班优化：读取数据、优化、校验、落库、缓存与指标
package planner

import (
	"context"
	"time"

	"github.com/paiban/nurseplan/internal/constraints"
	"github.com/paiban/nurseplan/internal/repository"
	"github.com/paiban/nurseplan/pkg/errors"
	"github.com/paiban/nurseplan/pkg/logger"
	"github.com/paiban/nurseplan/pkg/model"
	"github.com/paiban/nurseplan/pkg/report"
	"github.com/paiban/nurseplan/pkg/scheduler/constraint"
	"github.com/paiban/nurseplan/pkg/scheduler/fitness"
	"github.com/paiban/nurseplan/pkg/scheduler/optimizer"
	"github.com/paiban/nurseplan/pkg/stats"
)

// Store 排班数据存储
type Store interface {
	LoadSnapshot(ctx context.Context) (*model.Snapshot, error)
	SaveRun(ctx context.Context, roster *model.Roster, rec *repository.RunRecord) error
	LatestRoster(ctx context.Context) (*model.Roster, error)
	LatestRun(ctx context.Context) (*repository.RunRecord, error)
}

// Cache 最新排班缓存
type Cache interface {
	GetLatest(ctx context.Context) (*report.View, error)
	SetLatest(ctx context.Context, v *report.View) error
}

// Recorder 运行指标记录
type Recorder interface {
	optimizer.Observer
	RecordRunFailure(status string)
	SetViolations(r *constraint.Report)
	SetCoverage(rate float64)
	SetWorkloadGini(gini float64)
}

// Options 单次运行对默认优化参数的覆盖，零值表示沿用默认
type Options struct {
	PopulationSize int      `json:"population_size,omitempty" validate:"omitempty,min=2,max=1000"`
	MutationRate   *float64 `json:"mutation_rate,omitempty" validate:"omitempty,min=0,max=1"`
	Generations    int      `json:"generations,omitempty" validate:"omitempty,min=1,max=100000"`
	Seed           int64    `json:"seed,omitempty"`
	MaxTimeMs      int64    `json:"max_time_ms,omitempty" validate:"omitempty,min=0"` // 最长运行毫秒数
}

// Outcome 一次优化的完整结果
type Outcome struct {
	Result     *optimizer.Result      `json:"result"`
	Roster     *model.Roster          `json:"-"`
	View       *report.View           `json:"roster"`
	Violations constraint.Report      `json:"violations"`
	Workload   *stats.WorkloadMetrics `json:"workload"`
	Coverage   *stats.CoverageMetrics `json:"coverage"`
}

// Validation 对给定分配的校验结果
type Validation struct {
	Valid      bool              `json:"valid"`
	Fitness    float64           `json:"fitness"`
	Breakdown  fitness.Breakdown `json:"breakdown"`
	Violations constraint.Report `json:"violations"`
}

// Service 排班服务
type Service struct {
	config  optimizer.Config
	limits  constraint.Limits
	weights fitness.Weights

	store    Store
	cache    Cache
	recorder Recorder
}

// Option 服务选项
type Option func(*Service)

// WithStore 启用持久化
func WithStore(s Store) Option { return func(svc *Service) { svc.store = s } }

// WithCache 启用最新排班缓存
func WithCache(c Cache) Option { return func(svc *Service) { svc.cache = c } }

// WithRecorder 启用指标
func WithRecorder(r Recorder) Option { return func(svc *Service) { svc.recorder = r } }

// WithWeights 替换适应度权重
func WithWeights(w fitness.Weights) Option { return func(svc *Service) { svc.weights = w } }

// New 创建服务
func New(cfg optimizer.Config, limits constraint.Limits, opts ...Option) *Service {
	svc := &Service{
		config:  cfg,
		limits:  limits,
		weights: fitness.DefaultWeights(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Catalogue 当前生效的约束与适应度项
func (s *Service) Catalogue() []constraints.ConstraintDefinition {
	return constraints.GetLibrary(s.limits, s.weights)
}

func (s *Service) evaluator() *constraint.Evaluator {
	return constraint.NewEvaluator(s.limits)
}

func (s *Service) configFor(opts Options) optimizer.Config {
	cfg := s.config
	if opts.PopulationSize > 0 {
		cfg.PopulationSize = opts.PopulationSize
	}
	if opts.MutationRate != nil {
		cfg.MutationRate = *opts.MutationRate
	}
	if opts.Generations > 0 {
		cfg.Generations = opts.Generations
	}
	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}
	if opts.MaxTimeMs > 0 {
		cfg.MaxTime = time.Duration(opts.MaxTimeMs) * time.Millisecond
	}
	return cfg
}

// Optimize 对快照运行优化并分析结果
// 运行被取消时同时返回已得到的最优结果与错误
func (s *Service) Optimize(ctx context.Context, snap *model.Snapshot, opts Options) (*Outcome, error) {
	cfg := s.configFor(opts)
	eval := s.evaluator()
	opt := optimizer.New(&cfg, fitness.NewScorer(s.weights, eval))
	if s.recorder != nil {
		opt.AddObserver(s.recorder)
	}

	result, err := opt.Run(ctx, snap)
	if result == nil {
		s.recordFailure(err)
		return nil, err
	}

	out := s.analyze(eval, result)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).
			Str("run_id", result.RunID.String()).
			Msg("优化被中断，返回当前最优结果")
	}
	return out, err
}

func (s *Service) analyze(eval *constraint.Evaluator, result *optimizer.Result) *Outcome {
	roster := result.Roster
	view := report.NewView(roster)
	view.RunID = result.RunID.String()
	view.Fitness = result.Fitness
	view.RosterFitness = result.RosterFitness
	view.StopReason = string(result.StopReason)
	view.Generations = result.Generations

	out := &Outcome{
		Result:     result,
		Roster:     roster,
		View:       view,
		Violations: eval.Inspect(roster),
		Workload:   stats.NewWorkloadAnalyzer(float64(s.limits.MaxHoursPerWeek)).Analyze(roster),
		Coverage:   stats.AnalyzeCoverage(roster),
	}
	if s.recorder != nil {
		s.recorder.SetViolations(&out.Violations)
		s.recorder.SetCoverage(out.Coverage.OverallCoverage)
		s.recorder.SetWorkloadGini(out.Workload.WorkloadGini)
	}
	return out
}

func (s *Service) recordFailure(err error) {
	if s.recorder == nil || err == nil {
		return
	}
	s.recorder.RecordRunFailure(string(errors.GetCode(err)))
}

// Validate 校验给定的分配（AssignedNurse 非空的班次）
func (s *Service) Validate(snap *model.Snapshot, assigned []model.Shift) (*Validation, error) {
	if snap == nil {
		return nil, errors.EmptySnapshot(0, 0)
	}
	if snap.Empty() {
		return nil, errors.EmptySnapshot(snap.NurseCount(), snap.ShiftCount())
	}
	roster := model.CandidateFromAssigned(snap, assigned).Resolve()
	eval := s.evaluator()
	scorer := fitness.NewScorer(s.weights, eval)
	b := scorer.Breakdown(roster)
	return &Validation{
		Valid:      eval.Validate(roster),
		Fitness:    b.Total(),
		Breakdown:  b,
		Violations: eval.Inspect(roster),
	}, nil
}

// Workload 统计给定分配的工作量
func (s *Service) Workload(snap *model.Snapshot, assigned []model.Shift) (*stats.WorkloadMetrics, error) {
	if snap == nil || snap.NurseCount() == 0 {
		return nil, errors.InvalidInput("nurses", "护士不能为空")
	}
	roster := model.CandidateFromAssigned(snap, assigned).Resolve()
	return stats.NewWorkloadAnalyzer(float64(s.limits.MaxHoursPerWeek)).Analyze(roster), nil
}

// RunStored 优化数据库中的护士与班次，save 为真时写回分配并刷新缓存
func (s *Service) RunStored(ctx context.Context, opts Options, save bool) (*Outcome, error) {
	if s.store == nil {
		return nil, errors.StoreUnavailable()
	}
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		appErr := errors.Database(err, "load_snapshot")
		s.recordFailure(appErr)
		return nil, appErr
	}

	out, err := s.Optimize(ctx, snap, opts)
	if err != nil {
		return out, err
	}
	if !save {
		return out, nil
	}

	rec := &repository.RunRecord{
		RunID:         out.Result.RunID,
		Fitness:       out.Result.Fitness,
		RosterFitness: out.Result.RosterFitness,
		Generations:   out.Result.Generations,
		StopReason:    string(out.Result.StopReason),
		Assigned:      out.View.Assigned,
		TotalShifts:   out.View.TotalShifts,
		Duration:      out.Result.Duration,
	}
	if err := s.store.SaveRun(ctx, out.Roster, rec); err != nil {
		return out, errors.Database(err, "save_run")
	}
	out.View.GeneratedAt = rec.CreatedAt
	s.cacheView(ctx, out.View)

	logger.WithContext(ctx).Info().
		Str("run_id", rec.RunID.String()).
		Int("assigned", rec.Assigned).
		Int("total", rec.TotalShifts).
		Msg("排班结果已保存")
	return out, nil
}

// Latest 最近一次保存的排班，优先读取缓存
func (s *Service) Latest(ctx context.Context) (*report.View, error) {
	if s.cache != nil {
		v, err := s.cache.GetLatest(ctx)
		if err != nil {
			logger.WithContext(ctx).Warn().Err(err).Msg("读取排班缓存失败，回退到数据库")
		} else if v != nil {
			return v, nil
		}
	}
	if s.store == nil {
		return nil, errors.NotFound("roster", "latest")
	}

	run, err := s.store.LatestRun(ctx)
	if err != nil {
		return nil, errors.Database(err, "latest_run")
	}
	if run == nil {
		return nil, errors.NotFound("roster", "latest")
	}
	roster, err := s.store.LatestRoster(ctx)
	if err != nil {
		return nil, errors.Database(err, "latest_roster")
	}

	v := report.NewView(roster)
	v.RunID = run.RunID.String()
	v.Fitness = run.Fitness
	v.RosterFitness = run.RosterFitness
	v.StopReason = run.StopReason
	v.Generations = run.Generations
	v.GeneratedAt = run.CreatedAt
	s.cacheView(ctx, v)
	return v, nil
}

func (s *Service) cacheView(ctx context.Context, v *report.View) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetLatest(ctx, v); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Msg("写入排班缓存失败")
	}
}
