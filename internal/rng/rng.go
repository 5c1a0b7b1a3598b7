// Package rng supplies the injectable randomness used by every stochastic
// subsystem. Generators take a Source parameter instead of reaching for a
// global so tests can script exact draw sequences.
package rng

import (
	"math"
	"math/rand"
)

// Source yields uniform draws in [0,1). Implemented by *rand.Rand via the
// seeded constructor below and by scripted fakes in tests.
type Source interface {
	Float64() float64
}

// New returns a seeded uniform source.
func New(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Normal draws one standard-normal sample via the Box–Muller transform.
// Uniform draws of exactly 0 are rejected and redrawn so log(u) stays
// defined.
func Normal(src Source) float64 {
	var u, v float64
	for u == 0 {
		u = src.Float64()
	}
	for v == 0 {
		v = src.Float64()
	}
	return math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
}

// IntBelow returns a uniform integer in [0, n) consuming one draw.
func IntBelow(src Source, n int) int {
	return int(src.Float64() * float64(n))
}
