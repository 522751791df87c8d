package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mrbench/internal/config"
	"mrbench/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded sweeps from the history database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromViper()
		limit, _ := cmd.Flags().GetInt("limit")

		history, err := store.OpenHistory(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer history.Close()

		sweeps, err := history.ListSweeps(limit)
		if err != nil {
			return err
		}
		if len(sweeps) == 0 {
			fmt.Println("No sweeps recorded yet.")
			return nil
		}

		for _, s := range sweeps {
			fmt.Printf("#%d  %s  (%d runs per benchmark)\n",
				s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.RunsRequested)
			for _, r := range s.Results {
				fmt.Printf("    %-40s %12.0f msg/s  %10.2f ms  (%d records)\n",
					r.Benchmark, r.MeanThroughput, r.MeanDurationMs, r.RunCount)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Maximum number of sweeps to list")
	rootCmd.AddCommand(historyCmd)
}
