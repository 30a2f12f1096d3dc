package results

import (
	"context"
	"path/filepath"
	"testing"

	"wildsim/internal/montecarlo"
	"wildsim/internal/sims/wilderness"
)

func testRunParams() montecarlo.Params {
	cfg := wilderness.DefaultConfig()
	cfg.NX = 20
	cfg.NY = 30
	cfg.Params.Probability = 0.4
	return montecarlo.Params{Sim: cfg, Sims: 10, Workers: 2, Seed0: 99}
}

func TestSaveRunRoundTrip(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	stats := montecarlo.Stats{
		Sims: 10, Dispatched: 10,
		Died: 3, Unsettled: 2, Stabilized: 5,
		PercentDied: 30, PercentUnsettled: 20, PercentStabilized: 50,
		AvgStepsStable: 42.5, AvgVegetationStable: 1234,
	}
	trials := []TrialRecord{
		{Worker: 1, Trial: 0, Seed: 495, Result: montecarlo.TrialResult{Steps: 1, Vegetation: 0}, Outcome: montecarlo.OutcomeDied},
		{Worker: 1, Trial: 1, Seed: 396, Result: montecarlo.TrialResult{Steps: 200, Vegetation: 80}, Outcome: montecarlo.OutcomeUnsettled},
		{Worker: 2, Trial: 0, Seed: 990, Result: montecarlo.TrialResult{Steps: 40, Vegetation: 1200}, Outcome: montecarlo.OutcomeStabilized},
	}

	ctx := context.Background()
	runID, err := store.SaveRun(ctx, testRunParams(), stats, trials)
	if err != nil {
		t.Fatal(err)
	}
	if runID < 1 {
		t.Fatalf("run id = %d, want >= 1", runID)
	}

	runs, err := store.RecentRuns(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	got := runs[0]
	if got.ID != runID || got.NX != 20 || got.NY != 30 || got.Probability != 0.4 || got.Seed0 != 99 {
		t.Fatalf("run summary mismatch: %+v", got)
	}
	if got.Stats.Died != 3 || got.Stats.PercentStabilized != 50 || got.Stats.AvgStepsStable != 42.5 {
		t.Fatalf("stats mismatch: %+v", got.Stats)
	}

	back, err := store.Trials(ctx, runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != len(trials) {
		t.Fatalf("got %d trials, want %d", len(back), len(trials))
	}
	for i := range trials {
		if back[i] != trials[i] {
			t.Fatalf("trial %d mismatch: %+v vs %+v", i, back[i], trials[i])
		}
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	p := testRunParams()
	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := store.SaveRun(ctx, p, montecarlo.Stats{Sims: p.Sims}, nil)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Fatalf("runs not newest first: %d, %d", runs[0].ID, runs[1].ID)
	}
}
