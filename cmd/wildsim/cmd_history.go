package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"wildsim/internal/results"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded in a results database",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("db")
			limit, _ := cmd.Flags().GetInt("limit")
			if path == "" {
				return fmt.Errorf("--db is required")
			}

			store, err := results.Open(path)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.RecentRuns(context.Background(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}

			fmt.Fprintf(out, "%-5s %-20s %-9s %-6s %-6s %-6s %8s %10s %12s\n",
				"id", "created", "grid", "prob", "sims", "seed", "died%", "unsettled%", "stabilized%")
			for _, r := range runs {
				fmt.Fprintf(out, "%-5d %-20s %-9s %-6.2f %-6d %-6d %8.1f %10.1f %12.1f\n",
					r.ID, r.CreatedAt.Format(time.DateTime),
					fmt.Sprintf("%dx%d", r.NX, r.NY), r.Probability, r.Sims, r.Seed0,
					r.Stats.PercentDied, r.Stats.PercentUnsettled, r.Stats.PercentStabilized)
			}
			return nil
		},
	}
	cmd.Flags().String("db", "", "SQLite results database to read")
	cmd.Flags().Int("limit", 10, "Maximum number of runs to list")
	return cmd
}
