// Package wilderness implements a stochastic vegetation-growth variant of
// the classic grid life simulation. Cells carry a vegetation intensity in
// [0, 10] on a toroidal grid; each step the neighbourhood total decides
// whether a cell decays, grows, or holds.
package wilderness

import (
	"wildsim/internal/core"
	"wildsim/pkg/lehmer"
)

// Neighbourhood thresholds of the update rule. A cell decays when its
// eight neighbours total crowdedHigh or more, or sparseLow or fewer, and
// grows when the total is at most growHigh.
const (
	crowdedHigh = 25
	sparseLow   = 3
	growHigh    = 15
)

// cellMax caps the vegetation intensity a single cell can hold.
const cellMax = 10

// World owns the state for one simulation trial. A World is reused across
// trials by calling Reset with a fresh seed; it is never shared between
// goroutines.
type World struct {
	cfg Config

	cur *core.Grid
	nxt *core.Grid
}

// New returns a wilderness simulation with the provided dimensions using
// defaults for the remaining tunables.
func New(nx, ny int) *World {
	cfg := DefaultConfig()
	cfg.NX = nx
	cfg.NY = ny
	return NewWithConfig(cfg)
}

// NewWithConfig returns a wilderness world configured from the provided
// options.
func NewWithConfig(cfg Config) *World {
	return &World{
		cfg: cfg,
		cur: core.NewGrid(cfg.NX, cfg.NY),
		nxt: core.NewGrid(cfg.NX, cfg.NY),
	}
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "wilderness" }

// Size reports the interior grid dimensions.
func (w *World) Size() (nx, ny int) { return w.cfg.NX, w.cfg.NY }

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Grid exposes the live grid for inspection.
func (w *World) Grid() *core.Grid { return w.cur }

// Vegetation totals the interior cell values.
func (w *World) Vegetation() int { return w.cur.InteriorSum() }

// Reset seeds the initial grid deterministically. Each interior cell (i, j)
// draws from the Lehmer generator with seed + ny*i + j and becomes
// vegetated when the draw does not exceed the configured probability.
// Ghost cells are left for Step to populate via the wrap copy.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.cur.Clear()
	w.nxt.Clear()
	prob := w.cfg.Params.Probability
	ny := w.cfg.NY
	for i := 1; i <= w.cfg.NX; i++ {
		for j := 1; j <= ny; j++ {
			cellSeed := seed + int64(ny*i+j)
			if lehmer.Rand(cellSeed) <= prob {
				w.cur.Set(i, j, 1)
			}
		}
	}
}

// Step refreshes the toroidal borders and applies the update rule once.
// The next state is computed into a scratch grid and swapped in, so reads
// never observe a partially updated neighbourhood.
func (w *World) Step() {
	w.cur.WrapBorders()

	cells := w.cur.Cells()
	next := w.nxt.Cells()
	stride := w.cur.Index(1, 0)
	for i := 1; i <= w.cfg.NX; i++ {
		for j := 1; j <= w.cfg.NY; j++ {
			idx := i*stride + j
			neighbors := int(cells[idx-stride-1]) + int(cells[idx-stride]) + int(cells[idx-stride+1]) +
				int(cells[idx-1]) + int(cells[idx+1]) +
				int(cells[idx+stride-1]) + int(cells[idx+stride]) + int(cells[idx+stride+1])

			v := cells[idx]
			if neighbors >= crowdedHigh || neighbors <= sparseLow {
				// Too crowded or too sparse, lose vegetation.
				if v > 0 {
					v--
				}
			} else if neighbors <= growHigh {
				// Moderate neighbour density, gain vegetation.
				if v < cellMax {
					v++
				}
			}
			next[idx] = v
		}
	}

	w.cur, w.nxt = w.nxt, w.cur
}

// Run advances the world until the vegetation total stabilizes, dies out,
// or the step cap is reached, and returns the step count with the final
// vegetation total. Callers classify the outcome from those two values:
// zero vegetation means the population died, steps at the cap means it
// never settled, anything else stabilized.
func (w *World) Run() (steps, vegetation int) {
	steps = 1
	converged := false
	unchanged := 0
	old1, old2, old3 := -1, -1, -1
	vegetation = 1

	for !converged && vegetation > 0 && steps < w.cfg.Params.MaxSteps {
		vegetation = w.cur.InteriorSum()
		if vegetation == 0 {
			// Extinct; report immediately rather than running one
			// more step over an empty grid.
			break
		}

		if vegetation == old1 || vegetation == old2 || vegetation == old3 {
			unchanged++
			if unchanged >= w.cfg.Params.MaxUnchanged {
				converged = true
			}
		} else {
			unchanged = 0
		}

		old3, old2, old1 = old2, old1, vegetation

		if !converged {
			w.Step()
			steps++
		}
	}

	return steps, vegetation
}
