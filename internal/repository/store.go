package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/paiban/nurseplan/pkg/model"
)

// Store 组合各仓储，提供排班快照的读取与结果落库
type Store struct {
	db     Transactor
	Nurses *NurseRepository
	Shifts *ShiftRepository
	Runs   *RunRepository
}

// NewStore 创建存储
func NewStore(db Transactor) *Store {
	return &Store{
		db:     db,
		Nurses: NewNurseRepository(db),
		Shifts: NewShiftRepository(db),
		Runs:   NewRunRepository(db),
	}
}

// LoadSnapshot 读取全部护士与班次构建快照
func (s *Store) LoadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	nurses, err := s.Nurses.List(ctx)
	if err != nil {
		return nil, err
	}
	shifts, err := s.Shifts.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.NewSnapshot(nurses, shifts), nil
}

// SaveRun 在同一事务中覆盖班次分配并写入运行记录
// 排班之外的班次被置为未分配
func (s *Store) SaveRun(ctx context.Context, roster *model.Roster, rec *RunRecord) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		shifts := NewShiftRepository(tx)
		if err := shifts.ClearAssignments(ctx); err != nil {
			return err
		}
		for _, sh := range roster.Assignments() {
			if err := shifts.Assign(ctx, sh.ID, *sh.AssignedNurse); err != nil {
				return err
			}
		}
		if rec != nil {
			if err := NewRunRepository(tx).Create(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// LatestRoster 由已落库的分配重建排班
func (s *Store) LatestRoster(ctx context.Context) (*model.Roster, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	assigned, err := s.Shifts.ListAssigned(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取已分配班次失败: %w", err)
	}
	return model.CandidateFromAssigned(snap, assigned).Resolve(), nil
}

// LatestRun 最近一次运行记录
func (s *Store) LatestRun(ctx context.Context) (*RunRecord, error) {
	return s.Runs.Latest(ctx)
}
