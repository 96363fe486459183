package core

import "math/rand/v2"

// RNG draws reproducible random rule tables for sampling and property tests.
type RNG struct {
	r *rand.Rand
}

// NewRNG seeds a PCG generator; equal seeds give equal table sequences.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// IntN returns a random index in [0, n). n must be positive.
func (r *RNG) IntN(n int) int {
	return r.r.IntN(n)
}
