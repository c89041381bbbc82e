package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/paiban/nurseplan/pkg/model"
)

// ShiftRepository 班次仓储
type ShiftRepository struct {
	db DB
}

// NewShiftRepository 创建班次仓储
func NewShiftRepository(db DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

const shiftColumns = `shift_id, to_char(date, 'YYYY-MM-DD'), shift_type, assigned_nurse`

// List 按 ID 升序列出全部班次
func (r *ShiftRepository) List(ctx context.Context) ([]model.Shift, error) {
	return r.query(ctx, `SELECT `+shiftColumns+` FROM shifts ORDER BY shift_id`)
}

// ListAssigned 已分配的班次
func (r *ShiftRepository) ListAssigned(ctx context.Context) ([]model.Shift, error) {
	return r.query(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE assigned_nurse IS NOT NULL ORDER BY shift_id`)
}

func (r *ShiftRepository) query(ctx context.Context, q string, args ...interface{}) ([]model.Shift, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("查询班次失败: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历班次失败: %w", err)
	}
	return shifts, nil
}

// ClearAssignments 清空全部分配
func (r *ShiftRepository) ClearAssignments(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE shifts SET assigned_nurse = NULL WHERE assigned_nurse IS NOT NULL`); err != nil {
		return fmt.Errorf("清空班次分配失败: %w", err)
	}
	return nil
}

// Assign 写入单个班次的分配
func (r *ShiftRepository) Assign(ctx context.Context, shiftID, nurseID int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE shifts SET assigned_nurse = $2 WHERE shift_id = $1`, shiftID, nurseID)
	if err != nil {
		return fmt.Errorf("更新班次 %d 失败: %w", shiftID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("班次 %d 不存在", shiftID)
	}
	return nil
}

func scanShift(s Scanner) (model.Shift, error) {
	var (
		sh       model.Shift
		typ      string
		assigned sql.NullInt64
	)
	if err := s.Scan(&sh.ID, &sh.Date, &typ, &assigned); err != nil {
		return sh, fmt.Errorf("扫描班次失败: %w", err)
	}
	sh.Type, _ = model.ParseShiftType(typ)
	if assigned.Valid {
		id := assigned.Int64
		sh.AssignedNurse = &id
	}
	return sh, nil
}
