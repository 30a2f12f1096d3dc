package wilderness

import "testing"

func TestFromMapOverrides(t *testing.T) {
	cfg := FromMap(map[string]string{
		"nx":            "40",
		"ny":            "30",
		"seed":          "1234",
		"max_steps":     "50",
		"max_unchanged": "4",
		"probability":   "0.25",
	})
	if cfg.NX != 40 || cfg.NY != 30 {
		t.Fatalf("dims = %dx%d, want 40x30", cfg.NX, cfg.NY)
	}
	if cfg.Seed != 1234 {
		t.Fatalf("seed = %d, want 1234", cfg.Seed)
	}
	if cfg.Params.MaxSteps != 50 || cfg.Params.MaxUnchanged != 4 {
		t.Fatalf("limits = (%d,%d), want (50,4)", cfg.Params.MaxSteps, cfg.Params.MaxUnchanged)
	}
	if cfg.Params.Probability != 0.25 {
		t.Fatalf("probability = %v, want 0.25", cfg.Params.Probability)
	}
}

func TestFromMapIgnoresInvalidValues(t *testing.T) {
	def := DefaultConfig()
	cfg := FromMap(map[string]string{
		"nx":          "zero",
		"ny":          "-4",
		"probability": "1.5",
	})
	if cfg.NX != def.NX || cfg.NY != def.NY || cfg.Params.Probability != def.Params.Probability {
		t.Fatal("invalid values must fall back to defaults")
	}
	if got := FromMap(nil); got != def {
		t.Fatal("nil map must return defaults")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"max dims", func(c *Config) { c.NX = MaxDim; c.NY = MaxDim }, true},
		{"nx zero", func(c *Config) { c.NX = 0 }, false},
		{"ny too large", func(c *Config) { c.NY = MaxDim + 1 }, false},
		{"probability negative", func(c *Config) { c.Params.Probability = -0.1 }, false},
		{"probability above one", func(c *Config) { c.Params.Probability = 1.01 }, false},
		{"max steps zero", func(c *Config) { c.Params.MaxSteps = 0 }, false},
		{"max unchanged zero", func(c *Config) { c.Params.MaxUnchanged = 0 }, false},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}
