package optimizer

import (
	"context"
	"sync"

	"github.com/paiban/nurseplan/pkg/model"
	"github.com/paiban/nurseplan/pkg/scheduler/fitness"
)

// ParallelEvaluator 并行评估器，结果按下标写回，顺序与输入一致
type ParallelEvaluator struct {
	workers int
	scorer  *fitness.Scorer
}

// NewParallelEvaluator 创建并行评估器
func NewParallelEvaluator(workers int, scorer *fitness.Scorer) *ParallelEvaluator {
	if workers <= 0 {
		workers = 1
	}
	return &ParallelEvaluator{
		workers: workers,
		scorer:  scorer,
	}
}

type evalJob struct {
	index     int
	candidate *model.Candidate
}

type evalResult struct {
	index int
	score float64
}

// EvaluateBatch 并行评估一批候选排班
func (p *ParallelEvaluator) EvaluateBatch(ctx context.Context, candidates []*model.Candidate) ([]float64, error) {
	scores := make([]float64, len(candidates))
	if len(candidates) == 0 {
		return scores, nil
	}

	if p.workers == 1 {
		for i, c := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			scores[i] = p.scorer.Score(c)
		}
		return scores, nil
	}

	jobChan := make(chan evalJob, len(candidates))
	resultChan := make(chan evalResult, len(candidates))

	// 启动工作协程
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				select {
				case <-ctx.Done():
					return
				default:
					resultChan <- evalResult{index: job.index, score: p.scorer.Score(job.candidate)}
				}
			}
		}()
	}

	for i, c := range candidates {
		jobChan <- evalJob{index: i, candidate: c}
	}
	close(jobChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// 收集结果
	done := 0
	for r := range resultChan {
		scores[r.index] = r.score
		done++
	}
	if done < len(candidates) {
		return nil, ctx.Err()
	}
	return scores, nil
}
