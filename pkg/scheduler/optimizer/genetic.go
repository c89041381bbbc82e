package optimizer

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/paiban/nurseplan/pkg/errors"
	"github.com/paiban/nurseplan/pkg/logger"
	"github.com/paiban/nurseplan/pkg/model"
	"github.com/paiban/nurseplan/pkg/scheduler/fitness"
	"github.com/paiban/nurseplan/pkg/scheduler/solver"
)

// StopReason 终止原因
type StopReason string

const (
	StopGenerations StopReason = "generations_exhausted" // 达到最大代数
	StopStagnation  StopReason = "stagnation"            // 连续无改进
	StopThreshold   StopReason = "threshold_reached"     // 达到目标分数
	StopCancelled   StopReason = "cancelled"             // context 取消
	StopTimeLimit   StopReason = "time_limit"            // 超过最长运行时间
)

// Result 优化结果
type Result struct {
	RunID         uuid.UUID         `json:"run_id"`
	Roster        *model.Roster     `json:"-"`
	Fitness       float64           `json:"fitness"`        // 最优候选的适应度
	Breakdown     fitness.Breakdown `json:"breakdown"`      // 最优候选的得分明细
	RosterFitness float64           `json:"roster_fitness"` // 去重后排班的适应度
	Generations   int               `json:"generations"`
	StopReason    StopReason        `json:"stop_reason"`
	History       []float64         `json:"history"` // 每代历史最优，单调不减
	Duration      time.Duration     `json:"duration"`
}

// GenerationStats 单代统计
type GenerationStats struct {
	RunID        uuid.UUID
	Generation   int
	Best         float64
	ChildFitness float64
	Stagnant     int
}

// Observer 优化过程观察者
type Observer interface {
	OnGeneration(stats GenerationStats)
	OnComplete(result *Result)
}

// Optimizer 种群优化器
type Optimizer struct {
	config    Config
	scorer    *fitness.Scorer
	evaluator *ParallelEvaluator
	observers []Observer
	logger    *logger.OptimizerLogger
}

// New 创建优化器，scorer 为空时使用默认权重
func New(cfg *Config, scorer *fitness.Scorer) *Optimizer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if scorer == nil {
		scorer = fitness.NewScorer(fitness.DefaultWeights(), nil)
	}
	c := cfg.normalized()
	return &Optimizer{
		config:    c,
		scorer:    scorer,
		evaluator: NewParallelEvaluator(c.Workers, scorer),
		logger:    logger.NewOptimizerLogger(),
	}
}

// AddObserver 注册观察者
func (o *Optimizer) AddObserver(obs Observer) {
	o.observers = append(o.observers, obs)
}

// SetLogger 替换日志器
func (o *Optimizer) SetLogger(l *logger.OptimizerLogger) {
	o.logger = l
}

// Config 当前配置
func (o *Optimizer) Config() Config {
	return o.config
}

// Run 使用默认配置优化
func Run(ctx context.Context, snap *model.Snapshot) (*Result, error) {
	return New(DefaultConfig(), nil).Run(ctx, snap)
}

func (o *Optimizer) newRand() *rand.Rand {
	seed := o.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// initialPopulation 一半贪心构造（同一结果的副本），其余随机构造
func (o *Optimizer) initialPopulation(snap *model.Snapshot, rng *rand.Rand) []*model.Candidate {
	n := o.config.PopulationSize
	greedyCount := n / 2
	pop := make([]*model.Candidate, 0, n)

	if greedyCount > 0 {
		seed := solver.Seed(snap)
		for i := 0; i < greedyCount; i++ {
			pop = append(pop, seed.Clone())
		}
	}
	for len(pop) < n {
		pop = append(pop, solver.RandomSeed(snap, rng))
	}
	return pop
}

// Run 执行优化
//
// 每代：两次锦标赛选出父代，交叉并变异生成一个子代，替换当前最差成员。
// 达到最大代数、连续无改进、达到目标分数（不早于阈值起始代）或 context 取消时终止。
func (o *Optimizer) Run(ctx context.Context, snap *model.Snapshot) (*Result, error) {
	start := time.Now()
	if snap == nil || snap.Empty() {
		return nil, errors.NoFeasibleSolution("没有护士或班次，无法生成排班")
	}

	cfg := o.config
	runID := uuid.New()
	rng := o.newRand()
	o.logger.StartRun(runID.String(), snap.NurseCount(), snap.ShiftCount(), cfg.PopulationSize)

	pop := o.initialPopulation(snap, rng)
	scores, err := o.evaluator.EvaluateBatch(ctx, pop)
	if err != nil {
		return nil, errors.FromContext(err)
	}
	members := make([]member, len(pop))
	for i := range pop {
		members[i] = member{candidate: pop[i], score: scores[i]}
	}

	var (
		best     member
		hasBest  bool
		bestFit  = math.Inf(-1)
		stagnant int
		gens     int
		history  = make([]float64, 0, cfg.Generations)
		reason   = StopGenerations
		runErr   error
	)

	for gen := 0; gen < cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			reason, runErr = StopCancelled, err
			break
		}
		if cfg.MaxTime > 0 && time.Since(start) > cfg.MaxTime {
			reason = StopTimeLimit
			break
		}

		p1 := tournament(members, cfg.TournamentSize, rng)
		p2 := tournament(members, cfg.TournamentSize, rng)
		child := crossover(p1.candidate, p2.candidate, rng)
		mutate(child, cfg.MutationRate, rng)
		childScore := o.scorer.Score(child)

		sort.SliceStable(members, func(i, j int) bool { return members[i].score > members[j].score })
		members[len(members)-1] = member{candidate: child, score: childScore}
		gens++

		current := bestOf(members)
		if current.score > bestFit {
			best, hasBest, bestFit = current, true, current.score
			stagnant = 0
		} else {
			stagnant++
		}
		history = append(history, bestFit)

		stats := GenerationStats{RunID: runID, Generation: gen, Best: bestFit, ChildFitness: childScore, Stagnant: stagnant}
		for _, obs := range o.observers {
			obs.OnGeneration(stats)
		}
		o.logger.Generation(runID.String(), gen, bestFit, stagnant)

		if stagnant >= cfg.StagnantLimit {
			reason = StopStagnation
			break
		}
		if bestFit >= cfg.FitnessThreshold && gen >= cfg.ThresholdMinGeneration {
			reason = StopThreshold
			break
		}
	}

	// 未进行任何迭代时取初始种群最优
	if !hasBest {
		best = bestOf(members)
	}
	if reason != StopGenerations {
		o.logger.EarlyStop(runID.String(), gens, string(reason), best.score)
	}

	roster := best.candidate.Resolve()
	result := &Result{
		RunID:         runID,
		Roster:        roster,
		Fitness:       best.score,
		Breakdown:     o.scorer.Breakdown(best.candidate),
		RosterFitness: o.scorer.Score(roster),
		Generations:   gens,
		StopReason:    reason,
		History:       history,
		Duration:      time.Since(start),
	}

	for _, obs := range o.observers {
		obs.OnComplete(result)
	}
	o.logger.RunComplete(runID.String(), result.Duration, result.Fitness, gens)

	if runErr != nil {
		return result, errors.FromContext(runErr)
	}
	return result, nil
}
