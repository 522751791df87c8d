package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mrbench/internal/config"
	"mrbench/internal/record"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Re-run statistics and plots over an existing results directory",
	Long: `analyze skips building and running benchmarks entirely. It parses the
individual result records already present in the results directory and
regenerates statistics, plots and the textual report from them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ValidateConfig(); err != nil {
			return err
		}
		cfg := config.FromViper()

		records, err := record.LoadDir(cfg.ResultsDir)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return fmt.Errorf("no parsable result records in %s", cfg.ResultsDir)
		}

		// Run count is unknown when re-analyzing; report the record total
		// per benchmark as stored in the summaries instead.
		return analyze(cfg, records, 0)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
