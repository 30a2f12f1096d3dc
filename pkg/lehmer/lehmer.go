// Package lehmer implements the multiplicative congruential generator used
// to seed wilderness grids. It is a pure function of its seed so that every
// trial is reproducible from the experiment parameters alone.
package lehmer

// Park-Miller minimal standard constants. Held as floats because the
// generator is defined over float64 arithmetic.
const (
	multiplier = 16807.0
	modulus    = 2147483647.0
)

// iterations is the number of generator rounds applied per draw.
const iterations = 5

// Rand derives a reproducible pseudo-random float in [0, 1) from seed.
// Intermediate quotients are truncated toward zero, not floored; for
// negative seeds the two differ, and truncation is what keeps the output
// bit-for-bit identical across ports.
func Rand(seed int64) float64 {
	s := 0.0
	for i := 0; i < iterations; i++ {
		s = float64(seed)
		q := int64(multiplier * s / modulus)
		s = multiplier*s - modulus*float64(q)
		seed = int64(s)
	}
	return s / modulus
}
