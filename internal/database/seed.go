package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/paiban/nurseplan/pkg/logger"
	"github.com/paiban/nurseplan/pkg/model"
)

// SampleNurse 示例护士（偏好保持原始文本，未知类型在加载时丢弃）
type SampleNurse struct {
	Name            string
	Age             int
	Availability    string
	PreferredShifts string
}

// SampleNurses 示例护士数据
var SampleNurses = []SampleNurse{
	{"Alice Johnson", 34, "Mon-Fri (Morning), Sat (Evening)", "Morning"},
	{"Bob Smith", 45, "Mon-Sun (Flexible)", "Night"},
	{"Claire Williams", 29, "Mon, Wed, Fri (Morning), Sun (Night)", "Morning"},
	{"David Brown", 52, "Tue, Thu, Sat (Evening), Sun (Morning)", "Evening"},
	{"Emily Davis", 27, "Mon-Wed (Afternoon), Fri (Morning)", "Afternoon"},
	{"Frank Miller", 38, "Mon, Tue, Thu (Night), Sat (Morning)", "Night"},
	{"Grace Taylor", 31, "Mon-Fri (Morning), Sat-Sun (Flexible)", "Morning"},
	{"Henry Wilson", 43, "Mon-Fri (Night), Sat (Afternoon)", "Night"},
	{"Isabella Moore", 26, "Mon-Wed (Morning), Thu-Sun (Flexible)", "Morning"},
	{"Jack Thompson", 49, "Mon-Fri (Evening), Sat (Morning)", "Evening"},
	{"Kelly Anderson", 35, "Tue, Thu, Sat (Afternoon), Sun (Morning)", "Afternoon"},
	{"Luke Harris", 41, "Mon-Fri (Morning), Sat-Sun (Flexible)", "Morning"},
	{"Maria Clark", 33, "Mon-Wed (Afternoon), Fri-Sun (Morning)", "Morning"},
	{"Nathan Lewis", 30, "Mon, Wed, Fri (Morning), Sun (Night)", "Morning"},
	{"Olivia Scott", 28, "Mon-Fri (Evening), Sat (Afternoon)", "Evening"},
	{"Peter Young", 54, "Mon-Wed (Night), Thu-Sun (Morning)", "Night"},
	{"Rachel King", 39, "Mon-Fri (Morning), Sat-Sun (Flexible)", "Morning"},
	{"Simon Wright", 42, "Mon-Wed (Afternoon), Thu-Sun (Morning)", "Afternoon"},
	{"Theresa Walker", 37, "Mon-Fri (Morning), Sat-Sun (Night)", "Night"},
	{"Victor Hall", 36, "Mon-Wed (Night), Thu-Sun (Afternoon)", "Night"},
	{"Wendy Allen", 32, "Mon-Fri (Evening), Sat (Morning)", "Evening"},
	{"Xavier Wright", 40, "Mon-Fri (Morning), Sat (Afternoon)", "Morning"},
	{"Yvonne Evans", 29, "Mon-Wed (Afternoon), Fri-Sun (Morning)", "Afternoon"},
	{"Zachary Adams", 44, "Mon-Fri (Night), Sat (Morning)", "Night"},
	{"Abigail Phillips", 25, "Mon-Wed (Morning), Thu-Sun (Flexible)", "Morning"},
}

// 示例排班周期
const (
	SampleStartDate = "2025-02-19"
	SampleDays      = 14
)

// SampleNurseModels 转换为模型（ID 按插入顺序从 1 开始）
func SampleNurseModels() []model.Nurse {
	nurses := make([]model.Nurse, len(SampleNurses))
	for i, s := range SampleNurses {
		nurses[i] = model.Nurse{
			ID:              int64(i + 1),
			Name:            s.Name,
			Age:             s.Age,
			Availability:    s.Availability,
			PreferredShifts: model.ParseShiftTypeSet(s.PreferredShifts),
		}
	}
	return nurses
}

// SampleShifts 生成自 start 起 days 天、每天早午夜三个未分配班次
func SampleShifts(start string, days int) ([]model.Shift, error) {
	first, err := model.ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("无效的起始日期 %q: %w", start, err)
	}
	shifts := make([]model.Shift, 0, days*len(model.AllShiftTypes()))
	for d := 0; d < days; d++ {
		date := first.AddDate(0, 0, d).Format(model.DateLayout)
		for _, t := range model.AllShiftTypes() {
			shifts = append(shifts, model.Shift{
				ID:   int64(len(shifts) + 1),
				Date: date,
				Type: t,
			})
		}
	}
	return shifts, nil
}

// Seed 重建表结构并写入示例护士与两周未分配班次
func (db *DB) Seed(ctx context.Context) error {
	start := time.Now()
	if err := db.Reset(ctx); err != nil {
		return err
	}
	if err := db.Migrate(ctx); err != nil {
		return err
	}

	shifts, err := SampleShifts(SampleStartDate, SampleDays)
	if err != nil {
		return err
	}

	err = db.Transaction(ctx, func(tx *sql.Tx) error {
		for _, n := range SampleNurses {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO nurses (name, age, availability, preferred_shifts) VALUES ($1, $2, $3, $4)`,
				n.Name, n.Age, n.Availability, n.PreferredShifts,
			)
			if err != nil {
				return fmt.Errorf("写入护士 %s 失败: %w", n.Name, err)
			}
		}
		for _, sh := range shifts {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO shifts (date, shift_type, assigned_nurse) VALUES ($1, $2, NULL)`,
				sh.Date, string(sh.Type),
			)
			if err != nil {
				return fmt.Errorf("写入班次失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info().
		Int("nurses", len(SampleNurses)).
		Int("shifts", len(shifts)).
		Dur("duration", time.Since(start)).
		Msg("示例数据写入完成")
	return nil
}
