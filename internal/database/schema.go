package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Tables 排班服务依赖的表
var Tables = []string{"nurses", "shifts", "optimization_runs"}

// schema 护士、班次与优化运行记录
var schema = []string{
	`CREATE TABLE IF NOT EXISTS nurses (
		nurse_id         BIGSERIAL PRIMARY KEY,
		name             TEXT NOT NULL,
		age              INTEGER NOT NULL,
		availability     TEXT NOT NULL,
		preferred_shifts TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS shifts (
		shift_id       BIGSERIAL PRIMARY KEY,
		date           DATE NOT NULL,
		shift_type     TEXT NOT NULL CHECK (shift_type IN ('Morning', 'Afternoon', 'Night')),
		assigned_nurse BIGINT REFERENCES nurses(nurse_id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS optimization_runs (
		run_id         UUID PRIMARY KEY,
		fitness        DOUBLE PRECISION NOT NULL,
		roster_fitness DOUBLE PRECISION NOT NULL,
		generations    INTEGER NOT NULL,
		stop_reason    TEXT NOT NULL,
		assigned       INTEGER NOT NULL,
		total_shifts   INTEGER NOT NULL,
		duration_ms    BIGINT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shifts_date ON shifts (date)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON optimization_runs (created_at DESC)`,
}

// Migrate 创建表结构（幂等）
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("创建表结构失败: %w", err)
		}
	}
	return nil
}

// Reset 删除全部表
func (db *DB) Reset(ctx context.Context) error {
	_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS optimization_runs, shifts, nurses`)
	if err != nil {
		return fmt.Errorf("删除表失败: %w", err)
	}
	return nil
}

// CheckSchema 确认当前 schema 中存在全部依赖表
func (db *DB) CheckSchema(ctx context.Context) error {
	rows, err := db.QueryContext(ctx,
		`SELECT table_name FROM information_schema.tables
		 WHERE table_schema = current_schema() AND table_name = ANY($1)`,
		pq.Array(Tables))
	if err != nil {
		return fmt.Errorf("查询表结构失败: %w", err)
	}
	defer rows.Close()

	var present []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("读取表名失败: %w", err)
		}
		present = append(present, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("读取表名失败: %w", err)
	}

	if missing := missingTables(Tables, present); len(missing) > 0 {
		return fmt.Errorf("缺少数据表 %s，请先执行 seed", strings.Join(missing, ", "))
	}
	return nil
}

// missingTables required 中未出现在 present 里的表，保持 required 顺序
func missingTables(required, present []string) []string {
	seen := make(map[string]struct{}, len(present))
	for _, name := range present {
		seen[name] = struct{}{}
	}
	var missing []string
	for _, name := range required {
		if _, ok := seen[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
