package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mrbench/internal/config"
	"mrbench/internal/store"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the two most recent sweeps from the history database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromViper()

		history, err := store.OpenHistory(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer history.Close()

		prev, curr, err := history.LatestTwo()
		if err != nil {
			return err
		}
		if prev == nil || curr == nil {
			return fmt.Errorf("need at least two recorded sweeps to compare")
		}

		comparisons := store.Compare(*prev, *curr)
		if len(comparisons) == 0 {
			fmt.Println("No benchmarks present in both sweeps.")
			return nil
		}

		fmt.Printf("Sweep #%d (%s) vs #%d (%s):\n",
			prev.ID, prev.CreatedAt.Format("2006-01-02 15:04"),
			curr.ID, curr.CreatedAt.Format("2006-01-02 15:04"))
		for _, c := range comparisons {
			fmt.Printf("  %s\n", c)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
