package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunRecord 一次优化运行的持久化摘要
type RunRecord struct {
	RunID         uuid.UUID     `json:"run_id"`
	Fitness       float64       `json:"fitness"`
	RosterFitness float64       `json:"roster_fitness"`
	Generations   int           `json:"generations"`
	StopReason    string        `json:"stop_reason"`
	Assigned      int           `json:"assigned"`
	TotalShifts   int           `json:"total_shifts"`
	Duration      time.Duration `json:"duration"`
	CreatedAt     time.Time     `json:"created_at"`
}

// RunRepository 运行记录仓储
type RunRepository struct {
	db DB
}

// NewRunRepository 创建运行记录仓储
func NewRunRepository(db DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create 写入运行记录
func (r *RunRepository) Create(ctx context.Context, rec *RunRecord) error {
	if rec.RunID == uuid.Nil {
		rec.RunID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO optimization_runs (
			run_id, fitness, roster_fitness, generations, stop_reason,
			assigned, total_shifts, duration_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.RunID, rec.Fitness, rec.RosterFitness, rec.Generations, rec.StopReason,
		rec.Assigned, rec.TotalShifts, rec.Duration.Milliseconds(), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("写入运行记录失败: %w", err)
	}
	return nil
}

// Latest 最近一次运行，没有记录时返回 nil
func (r *RunRepository) Latest(ctx context.Context) (*RunRecord, error) {
	query := `
		SELECT run_id, fitness, roster_fitness, generations, stop_reason,
			assigned, total_shifts, duration_ms, created_at
		FROM optimization_runs
		ORDER BY created_at DESC
		LIMIT 1
	`
	rec, err := scanRun(r.db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func scanRun(s Scanner) (*RunRecord, error) {
	var (
		rec RunRecord
		ms  int64
	)
	err := s.Scan(
		&rec.RunID, &rec.Fitness, &rec.RosterFitness, &rec.Generations, &rec.StopReason,
		&rec.Assigned, &rec.TotalShifts, &ms, &rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("扫描运行记录失败: %w", err)
	}
	rec.Duration = time.Duration(ms) * time.Millisecond
	return &rec, nil
}
