// Command wildsim runs Monte-Carlo batches of the wilderness vegetation
// simulation and reports how often populations die out, never settle, or
// stabilize.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "wildsim",
		Short: "Monte-Carlo runner for the wilderness vegetation simulation",
		Long: `wildsim runs many independent trials of a toroidal vegetation
cellular automaton in parallel and aggregates population statistics:
the fraction of runs that died out, stabilized, or never settled, and
the average steps and vegetation of the stable runs.

Trials are fully deterministic: the same dimensions, probability, seed,
trial count, and worker count always reproduce the same results.`,
	}

	rootCmd.PersistentFlags().String("log-level", "info", "Log verbosity: debug, info, warn, or error")

	rootCmd.AddCommand(
		newRunCmd(),
		newSweepCmd(),
		newHistoryCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wildsim version %s\n", version)
		},
	}
}
