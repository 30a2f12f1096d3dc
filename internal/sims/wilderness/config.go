package wilderness

import (
	"fmt"
	"strconv"
)

// MaxDim bounds each grid dimension.
const MaxDim = 500

// Params holds the tunable thresholds for a wilderness trial.
type Params struct {
	// MaxSteps caps the number of time steps a trial may run.
	MaxSteps int
	// MaxUnchanged is the streak length of repeated vegetation totals
	// after which a trial counts as stabilized.
	MaxUnchanged int
	// Probability is the chance of vegetation in any given cell of the
	// initial grid.
	Probability float64
}

// Config controls the wilderness simulation dimensions and tunables.
type Config struct {
	NX int
	NY int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		NX:   100,
		NY:   100,
		Seed: 1,
		Params: Params{
			MaxSteps:     200,
			MaxUnchanged: 10,
			Probability:  0.5,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["nx"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.NX = parsed
		}
	}
	if v, ok := cfg["ny"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.NY = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["max_steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.MaxSteps = parsed
		}
	}
	if v, ok := cfg["max_unchanged"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.MaxUnchanged = parsed
		}
	}
	if v, ok := cfg["probability"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.Probability = parsed
		}
	}
	return c
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	if c.NX < 1 || c.NX > MaxDim {
		return fmt.Errorf("nx %d out of range [1, %d]", c.NX, MaxDim)
	}
	if c.NY < 1 || c.NY > MaxDim {
		return fmt.Errorf("ny %d out of range [1, %d]", c.NY, MaxDim)
	}
	if c.Params.Probability < 0 || c.Params.Probability > 1 {
		return fmt.Errorf("probability %v out of range [0, 1]", c.Params.Probability)
	}
	if c.Params.MaxSteps < 1 {
		return fmt.Errorf("max steps %d must be positive", c.Params.MaxSteps)
	}
	if c.Params.MaxUnchanged < 1 {
		return fmt.Errorf("max unchanged %d must be positive", c.Params.MaxUnchanged)
	}
	return nil
}
