package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paiban/nurseplan/internal/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "重建表结构并写入示例护士与两周未分配班次",
	RunE:  seed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()
	db, err := database.New(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Seed(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d nurses and %d days of shifts from %s\n",
		len(database.SampleNurses), database.SampleDays, database.SampleStartDate)
	return nil
}
