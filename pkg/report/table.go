// Package report 将最终排班渲染为文本表格
package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/paiban/nurseplan/pkg/model"
)

// Unassigned 未分配班次的显示名称
const Unassigned = "Unassigned"

// Row 表格行
type Row struct {
	ShiftID   int64           `json:"shift_id"`
	Date      string          `json:"date"`
	ShiftType model.ShiftType `json:"shift_type"`
	NurseID   *int64          `json:"nurse_id,omitempty"`
	NurseName string          `json:"nurse_name"`
}

// Rows 周期内全部班次按 ID 升序，未分配者显示为 Unassigned
func Rows(r *model.Roster) []Row {
	snap := r.Snapshot()
	table := r.Table()
	rows := make([]Row, 0, len(table))
	for _, sh := range table {
		row := Row{ShiftID: sh.ID, Date: sh.Date, ShiftType: sh.Type, NurseName: Unassigned}
		if sh.AssignedNurse != nil {
			row.NurseID = sh.AssignedNurse
			if n, ok := snap.Nurse(*sh.AssignedNurse); ok {
				row.NurseName = n.Name
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteTable 输出对齐的排班表
func WriteTable(w io.Writer, r *model.Roster) error {
	return writeRows(w, Rows(r))
}

func writeRows(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SHIFT ID\tDATE\tTYPE\tNURSE\tNURSE ID")
	for _, row := range rows {
		id := "-"
		if row.NurseID != nil {
			id = strconv.FormatInt(*row.NurseID, 10)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", row.ShiftID, row.Date, row.ShiftType, row.NurseName, id)
	}
	return tw.Flush()
}

// WriteSummary 输出适应度与覆盖摘要
func WriteSummary(w io.Writer, fitness float64, assigned, total int, stopReason string, generations int) error {
	_, err := fmt.Fprintf(w, "fitness: %.1f  assigned: %d/%d  generations: %d  stop: %s\n",
		fitness, assigned, total, generations, stopReason)
	return err
}

// View 可序列化的排班视图，供 HTTP 响应与缓存使用
type View struct {
	RunID         string    `json:"run_id,omitempty"`
	Fitness       float64   `json:"fitness"`
	RosterFitness float64   `json:"roster_fitness"`
	StopReason    string    `json:"stop_reason,omitempty"`
	Generations   int       `json:"generations"`
	Assigned      int       `json:"assigned"`
	TotalShifts   int       `json:"total_shifts"`
	Rows          []Row     `json:"rows"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// NewView 由排班构建视图，运行信息由调用方补充
func NewView(r *model.Roster) *View {
	return &View{
		Assigned:    len(r.Assignments()),
		TotalShifts: len(r.Horizon()),
		Rows:        Rows(r),
		GeneratedAt: time.Now().UTC(),
	}
}

// WriteView 输出视图的表格与摘要
func WriteView(w io.Writer, v *View) error {
	if err := writeRows(w, v.Rows); err != nil {
		return err
	}
	return WriteSummary(w, v.Fitness, v.Assigned, v.TotalShifts, v.StopReason, v.Generations)
}
