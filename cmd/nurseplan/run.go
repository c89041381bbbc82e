package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/paiban/nurseplan/internal/planner"
	"github.com/paiban/nurseplan/pkg/errors"
	"github.com/paiban/nurseplan/pkg/model"
	"github.com/paiban/nurseplan/pkg/report"
	"github.com/paiban/nurseplan/pkg/scheduler/constraint"
)

var (
	runInput       string
	runSeed        int64
	runSave        bool
	runGenerations int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "运行一次排班优化并输出排班表",
	Long: `运行一次排班优化。
指定 --input 时从 JSON 文件读取 {"nurses": [...], "shifts": [...]}，否则读取数据库。
--save 将结果写回数据库（仅数据库模式）。`,
	RunE: runOnce,
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "JSON 输入文件")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "随机种子（0 表示按时间）")
	runCmd.Flags().BoolVar(&runSave, "save", false, "将结果写回数据库")
	runCmd.Flags().IntVar(&runGenerations, "generations", 0, "最大迭代代数（0 表示使用配置）")
	rootCmd.AddCommand(runCmd)
}

// inputFile JSON 输入格式
type inputFile struct {
	Nurses []model.Nurse `json:"nurses"`
	Shifts []model.Shift `json:"shifts"`
}

func readInput(path string) (*model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取输入文件失败: %w", err)
	}
	var in inputFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "解析输入文件失败")
	}
	return model.NewSnapshot(in.Nurses, in.Shifts), nil
}

func runOnce(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runInput != "" && runSave {
		return errors.InvalidInput("save", "--save 只能用于数据库模式")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(ctx, cfg, runInput == "")
	if err != nil {
		return err
	}
	defer a.Close()

	opts := planner.Options{Seed: runSeed, Generations: runGenerations}

	var (
		out    *planner.Outcome
		runErr error
	)
	if runInput != "" {
		snap, err := readInput(runInput)
		if err != nil {
			return err
		}
		out, runErr = a.svc.Optimize(ctx, snap, opts)
	} else {
		out, runErr = a.svc.RunStored(ctx, opts, runSave)
	}
	if out == nil {
		return runErr
	}

	if err := printOutcome(cmd.OutOrStdout(), out); err != nil {
		return err
	}
	return runErr
}

// printOutcome 输出排班表、摘要、约束违反与超负荷护士
func printOutcome(w io.Writer, out *planner.Outcome) error {
	if err := report.WriteView(w, out.View); err != nil {
		return err
	}
	fmt.Fprintf(w, "constraint violations: %d\n", len(out.Violations.Violations))
	types := make([]string, 0, len(out.Violations.ByType))
	for t := range out.Violations.ByType {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(w, "  %s: %d\n", t, out.Violations.ByType[constraint.Type(t)])
	}
	if len(out.Workload.Overworked) > 0 {
		fmt.Fprintln(w, "overworked nurses:")
		for _, st := range out.Workload.Overworked {
			fmt.Fprintf(w, "  %s (id %d): %.0fh\n", st.NurseName, st.NurseID, st.TotalHours)
		}
	}
	return nil
}
