package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/paiban/nurseplan/pkg/model"
)

// NurseRepository 护士仓储
type NurseRepository struct {
	db DB
}

// NewNurseRepository 创建护士仓储
func NewNurseRepository(db DB) *NurseRepository {
	return &NurseRepository{db: db}
}

const nurseColumns = `nurse_id, name, age, availability, preferred_shifts`

// List 按 ID 升序列出全部护士
func (r *NurseRepository) List(ctx context.Context) ([]model.Nurse, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+nurseColumns+` FROM nurses ORDER BY nurse_id`)
	if err != nil {
		return nil, fmt.Errorf("查询护士列表失败: %w", err)
	}
	defer rows.Close()

	var nurses []model.Nurse
	for rows.Next() {
		n, err := scanNurse(rows)
		if err != nil {
			return nil, err
		}
		nurses = append(nurses, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历护士失败: %w", err)
	}
	return nurses, nil
}

// GetByID 根据ID获取护士，不存在时返回 nil
func (r *NurseRepository) GetByID(ctx context.Context, id int64) (*model.Nurse, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+nurseColumns+` FROM nurses WHERE nurse_id = $1`, id)
	n, err := scanNurse(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// scanNurse 偏好以逗号分隔文本存储，未知类型在此丢弃
func scanNurse(s Scanner) (model.Nurse, error) {
	var (
		n         model.Nurse
		preferred string
	)
	if err := s.Scan(&n.ID, &n.Name, &n.Age, &n.Availability, &preferred); err != nil {
		if err == sql.ErrNoRows {
			return n, err
		}
		return n, fmt.Errorf("扫描护士失败: %w", err)
	}
	n.PreferredShifts = model.ParseShiftTypeSet(preferred)
	return n, nil
}
