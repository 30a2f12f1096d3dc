// Package config loads experiment configuration for the wildsim CLI from
// YAML files, validated before any worker is launched.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wildsim/internal/sims/wilderness"
)

// maxProcsExponent caps the worker-count exponent; 2^14 goroutines is
// already far past any useful parallelism for this workload.
const maxProcsExponent = 14

// Experiment is the on-disk configuration for a Monte-Carlo run.
type Experiment struct {
	// NX and NY are the wilderness grid dimensions.
	NX int `yaml:"nx"`
	NY int `yaml:"ny"`

	// Probability is the chance of vegetation per initial cell.
	Probability float64 `yaml:"probability"`

	// Sims is the total number of independent trials.
	Sims int `yaml:"sims"`

	// Seed is the base random number seed.
	Seed int64 `yaml:"seed"`

	// Procs is the worker-count exponent: the run uses 2^procs workers.
	Procs int `yaml:"procs"`

	// MaxSteps and MaxUnchanged bound the per-trial step loop.
	MaxSteps     int `yaml:"max_steps"`
	MaxUnchanged int `yaml:"max_unchanged"`

	Output  Output  `yaml:"output"`
	Logging Logging `yaml:"logging"`
}

// Output configures optional result sinks.
type Output struct {
	// Database is the path of the SQLite results store; empty disables it.
	Database string `yaml:"database"`
	// Trace is the path of the zstd JSONL per-trial trace; empty disables it.
	Trace string `yaml:"trace"`
}

// Logging configures the stderr logger.
type Logging struct {
	// Level is "debug", "info", "warn", or "error".
	Level string `yaml:"level"`
}

// Default returns the standard experiment configuration.
func Default() Experiment {
	sim := wilderness.DefaultConfig()
	return Experiment{
		NX:           sim.NX,
		NY:           sim.NY,
		Probability:  sim.Params.Probability,
		Sims:         100,
		Seed:         sim.Seed,
		Procs:        2,
		MaxSteps:     sim.Params.MaxSteps,
		MaxUnchanged: sim.Params.MaxUnchanged,
		Logging:      Logging{Level: "info"},
	}
}

// Load reads a YAML experiment file over the defaults.
func Load(path string) (Experiment, error) {
	e := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return e, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &e); err != nil {
		return e, fmt.Errorf("parse config %s: %w", path, err)
	}
	return e, nil
}

// Workers returns the worker count implied by the procs exponent.
func (e Experiment) Workers() int { return 1 << e.Procs }

// SimConfig maps the experiment onto a per-trial simulation config.
func (e Experiment) SimConfig() wilderness.Config {
	cfg := wilderness.DefaultConfig()
	cfg.NX = e.NX
	cfg.NY = e.NY
	cfg.Seed = e.Seed
	cfg.Params.MaxSteps = e.MaxSteps
	cfg.Params.MaxUnchanged = e.MaxUnchanged
	cfg.Params.Probability = e.Probability
	return cfg
}

// Validate reports the first out-of-range setting.
func (e Experiment) Validate() error {
	if err := e.SimConfig().Validate(); err != nil {
		return err
	}
	if e.Sims < 1 {
		return fmt.Errorf("sims %d must be positive", e.Sims)
	}
	if e.Procs < 0 || e.Procs > maxProcsExponent {
		return fmt.Errorf("procs exponent %d out of range [0, %d]", e.Procs, maxProcsExponent)
	}
	return nil
}
