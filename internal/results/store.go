// Package results persists finished experiments: a SQLite store for run
// parameters, per-trial results, and final aggregates, plus an optional
// compressed trace log. Intermediate grids are never stored.
package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"wildsim/internal/montecarlo"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	nx INTEGER NOT NULL,
	ny INTEGER NOT NULL,
	probability REAL NOT NULL,
	seed0 INTEGER NOT NULL,
	sims INTEGER NOT NULL,
	workers INTEGER NOT NULL,
	max_steps INTEGER NOT NULL,
	max_unchanged INTEGER NOT NULL,
	dispatched INTEGER NOT NULL,
	died INTEGER NOT NULL,
	unsettled INTEGER NOT NULL,
	stabilized INTEGER NOT NULL,
	percent_died REAL NOT NULL,
	percent_unsettled REAL NOT NULL,
	percent_stabilized REAL NOT NULL,
	avg_steps_stable REAL NOT NULL,
	avg_vegetation_stable REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS trials (
	run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	worker INTEGER NOT NULL,
	trial INTEGER NOT NULL,
	seed INTEGER NOT NULL,
	steps INTEGER NOT NULL,
	vegetation INTEGER NOT NULL,
	outcome TEXT NOT NULL,
	PRIMARY KEY (run_id, worker, trial)
);
`

// Store records experiment runs and their per-trial results in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the results database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open results database: %w", err)
	}
	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize results schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// TrialRecord is one persisted trial row.
type TrialRecord struct {
	Worker  int
	Trial   int
	Seed    int64
	Result  montecarlo.TrialResult
	Outcome montecarlo.Outcome
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID        int64
	CreatedAt time.Time

	NX, NY      int
	Probability float64
	Seed0       int64
	Sims        int
	Workers     int

	Stats montecarlo.Stats
}

// SaveRun persists one experiment with all of its trial rows in a single
// transaction and returns the new run id.
func (s *Store) SaveRun(ctx context.Context, p montecarlo.Params, stats montecarlo.Stats, trials []TrialRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin run transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (
			created_at, nx, ny, probability, seed0, sims, workers,
			max_steps, max_unchanged, dispatched, died, unsettled, stabilized,
			percent_died, percent_unsettled, percent_stabilized,
			avg_steps_stable, avg_vegetation_stable
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano),
		p.Sim.NX, p.Sim.NY, p.Sim.Params.Probability, p.Seed0, p.Sims, p.Workers,
		p.Sim.Params.MaxSteps, p.Sim.Params.MaxUnchanged,
		stats.Dispatched, stats.Died, stats.Unsettled, stats.Stabilized,
		stats.PercentDied, stats.PercentUnsettled, stats.PercentStabilized,
		stats.AvgStepsStable, stats.AvgVegetationStable,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trials (run_id, worker, trial, seed, steps, vegetation, outcome)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare trial insert: %w", err)
	}
	defer stmt.Close()

	for _, tr := range trials {
		if _, err := stmt.ExecContext(ctx, runID, tr.Worker, tr.Trial, tr.Seed,
			tr.Result.Steps, tr.Result.Vegetation, tr.Outcome.String()); err != nil {
			return 0, fmt.Errorf("insert trial worker=%d trial=%d: %w", tr.Worker, tr.Trial, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, nx, ny, probability, seed0, sims, workers,
			dispatched, died, unsettled, stabilized,
			percent_died, percent_unsettled, percent_stabilized,
			avg_steps_stable, avg_vegetation_stable
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var created string
		if err := rows.Scan(&r.ID, &created, &r.NX, &r.NY, &r.Probability, &r.Seed0,
			&r.Sims, &r.Workers,
			&r.Stats.Dispatched, &r.Stats.Died, &r.Stats.Unsettled, &r.Stats.Stabilized,
			&r.Stats.PercentDied, &r.Stats.PercentUnsettled, &r.Stats.PercentStabilized,
			&r.Stats.AvgStepsStable, &r.Stats.AvgVegetationStable); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Stats.Sims = r.Sims
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			r.CreatedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Trials returns the persisted trial rows for one run, in drain order.
func (s *Store) Trials(ctx context.Context, runID int64) ([]TrialRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT worker, trial, seed, steps, vegetation, outcome
		FROM trials WHERE run_id = ? ORDER BY worker, trial`, runID)
	if err != nil {
		return nil, fmt.Errorf("query trials: %w", err)
	}
	defer rows.Close()

	var out []TrialRecord
	for rows.Next() {
		var tr TrialRecord
		var outcome string
		if err := rows.Scan(&tr.Worker, &tr.Trial, &tr.Seed,
			&tr.Result.Steps, &tr.Result.Vegetation, &outcome); err != nil {
			return nil, fmt.Errorf("scan trial: %w", err)
		}
		switch outcome {
		case "died":
			tr.Outcome = montecarlo.OutcomeDied
		case "unsettled":
			tr.Outcome = montecarlo.OutcomeUnsettled
		default:
			tr.Outcome = montecarlo.OutcomeStabilized
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}
