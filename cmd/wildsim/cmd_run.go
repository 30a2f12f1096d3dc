package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"wildsim/internal/config"
	"wildsim/internal/logging"
	"wildsim/internal/montecarlo"
	"wildsim/internal/results"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a Monte-Carlo batch of wilderness trials",
		Long: `Run launches 2^procs workers, splits the trial budget evenly across
them, and aggregates the outcome statistics once every worker finished.
Trials that do not fit the even split are dropped; percentages are still
taken over the requested trial count.

Examples:
  wildsim run --nx 100 --ny 100 --prob 0.5 --sims 1000 --seed 42 --procs 3
  wildsim run --config experiment.yaml --db results.db --each`,
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := experimentFromFlags(cmd)
			if err != nil {
				return err
			}
			log := loggerFromFlags(cmd, exp)
			return runExperiment(cmd, exp, log)
		},
	}
	addExperimentFlags(cmd)
	cmd.Flags().String("db", "", "SQLite results database; empty disables persistence")
	cmd.Flags().String("trace", "", "zstd JSONL per-trial trace file; empty disables it")
	cmd.Flags().Bool("each", false, "Print every trial result as it is recorded")
	return cmd
}

// addExperimentFlags registers the flags shared by run and sweep.
func addExperimentFlags(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().String("config", "", "YAML experiment file; flags override its values")
	cmd.Flags().Int("nx", def.NX, "X dimension of the wilderness grid")
	cmd.Flags().Int("ny", def.NY, "Y dimension of the wilderness grid")
	cmd.Flags().Float64("prob", def.Probability, "Probability of vegetation per initial cell")
	cmd.Flags().Int("sims", def.Sims, "Total number of independent trials")
	cmd.Flags().Int64("seed", def.Seed, "Base random number seed")
	cmd.Flags().Int("procs", def.Procs, "Worker-count exponent: 2^procs workers")
	cmd.Flags().Int("max-steps", def.MaxSteps, "Step cap per trial")
	cmd.Flags().Int("max-unchanged", def.MaxUnchanged, "Unchanged-total streak that counts as stable")
}

// experimentFromFlags loads the optional config file and lays explicitly
// set flags over it, then validates the result.
func experimentFromFlags(cmd *cobra.Command) (config.Experiment, error) {
	exp := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if exp, err = config.Load(path); err != nil {
			return exp, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("nx") {
		exp.NX, _ = flags.GetInt("nx")
	}
	if flags.Changed("ny") {
		exp.NY, _ = flags.GetInt("ny")
	}
	if flags.Changed("prob") {
		exp.Probability, _ = flags.GetFloat64("prob")
	}
	if flags.Changed("sims") {
		exp.Sims, _ = flags.GetInt("sims")
	}
	if flags.Changed("seed") {
		exp.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("procs") {
		exp.Procs, _ = flags.GetInt("procs")
	}
	if flags.Changed("max-steps") {
		exp.MaxSteps, _ = flags.GetInt("max-steps")
	}
	if flags.Changed("max-unchanged") {
		exp.MaxUnchanged, _ = flags.GetInt("max-unchanged")
	}
	if flags.Changed("db") {
		exp.Output.Database, _ = flags.GetString("db")
	}
	if flags.Changed("trace") {
		exp.Output.Trace, _ = flags.GetString("trace")
	}
	if level, _ := cmd.Flags().GetString("log-level"); cmd.Flags().Changed("log-level") || exp.Logging.Level == "" {
		exp.Logging.Level = level
	}

	return exp, exp.Validate()
}

func loggerFromFlags(cmd *cobra.Command, exp config.Experiment) *slog.Logger {
	return logging.NewLogger(exp.Logging.Level, cmd.ErrOrStderr())
}

func runExperiment(cmd *cobra.Command, exp config.Experiment, log *slog.Logger) error {
	p := montecarlo.Params{
		Sim:     exp.SimConfig(),
		Sims:    exp.Sims,
		Workers: exp.Workers(),
		Seed0:   exp.Seed,
		Log:     log,
	}
	trialsPerWorker := p.Sims / p.Workers

	var store *results.Store
	if exp.Output.Database != "" {
		var err error
		if store, err = results.Open(exp.Output.Database); err != nil {
			return err
		}
		defer store.Close()
	}

	var trace *results.TraceWriter
	if exp.Output.Trace != "" {
		var err error
		if trace, err = results.NewTraceWriter(exp.Output.Trace); err != nil {
			return err
		}
		defer trace.Close()
	}

	each, _ := cmd.Flags().GetBool("each")
	out := cmd.OutOrStdout()

	var records []results.TrialRecord
	obs := func(worker, trial int, r montecarlo.TrialResult, outcome montecarlo.Outcome) {
		seed := montecarlo.TrialSeed(p.Seed0, worker, trialsPerWorker, trial)
		if each {
			fmt.Fprintf(out, "Number of steps = %d, Vegetation total = %d\n", r.Steps, r.Vegetation)
		}
		if trace != nil {
			err := trace.Write(results.TrialTrace{
				Worker:     worker,
				Trial:      trial,
				Seed:       seed,
				Steps:      r.Steps,
				Vegetation: r.Vegetation,
				Outcome:    outcome.String(),
			})
			if err != nil {
				log.Warn("trace write failed", "error", err)
			}
		}
		if store != nil {
			records = append(records, results.TrialRecord{
				Worker:  worker,
				Trial:   trial,
				Seed:    seed,
				Result:  r,
				Outcome: outcome,
			})
		}
	}

	log.Info("starting experiment",
		"nx", exp.NX, "ny", exp.NY, "probability", exp.Probability,
		"sims", exp.Sims, "workers", p.Workers, "seed", exp.Seed)

	stats, err := montecarlo.Run(p, obs)
	if err != nil {
		return err
	}

	if store != nil {
		runID, err := store.SaveRun(context.Background(), p, stats, records)
		if err != nil {
			return fmt.Errorf("persist run: %w", err)
		}
		log.Info("run persisted", "id", runID, "database", exp.Output.Database)
	}

	printStats(out, stats)
	return nil
}

func printStats(w io.Writer, s montecarlo.Stats) {
	fmt.Fprintf(w, "\nPercentage which died out: %g%%\n", s.PercentDied)
	fmt.Fprintf(w, "Percentage unsettled:      %g%%\n", s.PercentUnsettled)
	fmt.Fprintf(w, "Percentage stabilized:     %g%%\n", s.PercentStabilized)
	fmt.Fprintln(w, "  Of which:")
	fmt.Fprintf(w, "  Average steps:           %g\n", s.AvgStepsStable)
	fmt.Fprintf(w, "  Average vegetation:      %g\n", s.AvgVegetationStable)
}
