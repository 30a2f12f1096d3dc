// Package montecarlo runs many independent wilderness trials in parallel
// and aggregates population-level statistics over their outcomes.
package montecarlo

import (
	"fmt"
	"log/slog"
	"sync"

	"wildsim/internal/sims/wilderness"
)

// TrialResult is the outcome of one independent simulation trial.
type TrialResult struct {
	Steps      int
	Vegetation int
}

// Outcome classifies a finished trial.
type Outcome int

const (
	// OutcomeDied marks trials whose vegetation reached zero.
	OutcomeDied Outcome = iota
	// OutcomeUnsettled marks trials that hit the step cap.
	OutcomeUnsettled
	// OutcomeStabilized marks trials whose vegetation total converged.
	OutcomeStabilized
)

// String returns the lower-case outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeDied:
		return "died"
	case OutcomeUnsettled:
		return "unsettled"
	case OutcomeStabilized:
		return "stabilized"
	}
	return "unknown"
}

// Classify maps a trial result onto an outcome. Extinction wins over the
// step cap: a population that is gone counts as died no matter how long it
// took to get there.
func Classify(r TrialResult, maxSteps int) Outcome {
	if r.Vegetation == 0 {
		return OutcomeDied
	}
	if r.Steps >= maxSteps {
		return OutcomeUnsettled
	}
	return OutcomeStabilized
}

// Params configures a Monte-Carlo experiment.
type Params struct {
	// Sim is the per-trial simulation configuration, shared read-only by
	// every worker.
	Sim wilderness.Config
	// Sims is the requested number of trials. When it does not divide
	// evenly across workers, the remainder is dropped (the reference
	// behaviour); percentages are still normalized over Sims.
	Sims int
	// Workers is the number of concurrent trial runners.
	Workers int
	// Seed0 is the base seed every trial seed derives from.
	Seed0 int64

	// Log receives progress and warnings. Nil falls back to slog.Default.
	Log *slog.Logger
}

// Stats aggregates classified trial results.
type Stats struct {
	Sims       int
	Dispatched int
	Died       int
	Unsettled  int
	Stabilized int

	PercentDied       float64
	PercentUnsettled  float64
	PercentStabilized float64

	// Averages over stabilized trials only; zero when none stabilized.
	AvgStepsStable      float64
	AvgVegetationStable float64

	totalStepsStable      float64
	totalVegetationStable float64
}

func (s *Stats) add(r TrialResult, maxSteps int) Outcome {
	s.Dispatched++
	outcome := Classify(r, maxSteps)
	switch outcome {
	case OutcomeDied:
		s.Died++
	case OutcomeUnsettled:
		s.Unsettled++
	case OutcomeStabilized:
		s.Stabilized++
		s.totalStepsStable += float64(r.Steps)
		s.totalVegetationStable += float64(r.Vegetation)
	}
	return outcome
}

// finalize turns the running counts into percentages and averages.
// Percentages are taken over the requested trial count, not the possibly
// smaller dispatched count.
func (s *Stats) finalize() {
	if s.Sims > 0 {
		s.PercentDied = 100 * float64(s.Died) / float64(s.Sims)
		s.PercentUnsettled = 100 * float64(s.Unsettled) / float64(s.Sims)
		s.PercentStabilized = 100 * float64(s.Stabilized) / float64(s.Sims)
	}
	if s.Stabilized > 0 {
		s.AvgStepsStable = s.totalStepsStable / float64(s.Stabilized)
		s.AvgVegetationStable = s.totalVegetationStable / float64(s.Stabilized)
	}
}

// TrialSeed derives the deterministic seed for a worker's local trial.
// Workers are numbered from 1.
func TrialSeed(seed0 int64, worker, trialsPerWorker, trial int) int64 {
	return seed0 * (int64(worker)*int64(trialsPerWorker) - int64(trial))
}

// Observer receives every trial result during the single-threaded drain,
// in worker order. Worker numbering starts at 1, trial numbering at 0.
type Observer func(worker, trial int, r TrialResult, outcome Outcome)

// Run executes the experiment: it fans the trial budget out across
// Workers goroutines, joins them all, then drains the per-worker result
// channels in worker order and aggregates. Workers share nothing mutable;
// each owns one grid pair reused across its trials, and its result channel
// is buffered for the full batch so a worker never blocks on the drain.
func Run(p Params, obs Observer) (Stats, error) {
	log := p.Log
	if log == nil {
		log = slog.Default()
	}
	if err := p.Sim.Validate(); err != nil {
		return Stats{}, fmt.Errorf("invalid simulation config: %w", err)
	}
	if p.Sims < 1 {
		return Stats{}, fmt.Errorf("sims %d must be positive", p.Sims)
	}
	if p.Workers < 1 {
		return Stats{}, fmt.Errorf("workers %d must be positive", p.Workers)
	}

	trialsPerWorker := p.Sims / p.Workers
	if dropped := p.Sims % p.Workers; dropped > 0 {
		log.Warn("trial count does not divide evenly across workers",
			"sims", p.Sims, "workers", p.Workers, "dropped", dropped)
	}

	channels := make([]chan TrialResult, p.Workers)
	var wg sync.WaitGroup
	for w := 1; w <= p.Workers; w++ {
		out := make(chan TrialResult, trialsPerWorker)
		channels[w-1] = out
		wg.Add(1)
		go func(worker int, out chan<- TrialResult) {
			defer wg.Done()
			defer close(out)
			world := wilderness.NewWithConfig(p.Sim)
			for t := 0; t < trialsPerWorker; t++ {
				world.Reset(TrialSeed(p.Seed0, worker, trialsPerWorker, t))
				steps, vegetation := world.Run()
				out <- TrialResult{Steps: steps, Vegetation: vegetation}
			}
			log.Debug("worker finished", "worker", worker, "trials", trialsPerWorker)
		}(w, out)
	}

	wg.Wait()

	stats := Stats{Sims: p.Sims}
	for i, out := range channels {
		trial := 0
		for r := range out {
			outcome := stats.add(r, p.Sim.Params.MaxSteps)
			if obs != nil {
				obs(i+1, trial, r, outcome)
			}
			trial++
		}
	}
	stats.finalize()
	return stats, nil
}
