// SPDX-License-Identifier: MIT

// options.go - functional options for Build.
//
// Contract:
//   - Option constructors validate and panic on meaningless inputs.
//   - Randomness is explicit: stochastic constructors need WithSeed or WithSource.
//   - Later options override earlier ones.

package builder

import (
	"math/rand/v2"

	"github.com/katalvlaran/csrkit/tensor"
)

// Option customizes Build by mutating the config before any constructor runs.
type Option func(*config)

// WithSeed attaches a PCG stream seeded from seed. Use it to lock outcomes in
// tests and examples.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewPCG(seed, seed^seedStream))
	}
}

// WithSource attaches an explicit random source. Panics on nil.
func WithSource(src rand.Source) Option {
	if src == nil {
		panic("builder: WithSource(nil)")
	}

	return func(c *config) { c.rng = rand.New(src) }
}

// WithDType selects the index dtype of the built matrix. Panics on an unknown dtype.
func WithDType(dt tensor.DType) Option {
	if !dt.Valid() {
		panic("builder: WithDType(invalid)")
	}

	return func(c *config) { c.dtype = dt }
}

// WithUndirected mirrors every emitted edge (u,v) with (v,u); self-loops are
// emitted once.
func WithUndirected(on bool) Option {
	return func(c *config) { c.undirected = on }
}

// WithSelfLoops lets RandomSparse and RandomFanout emit (v,v).
func WithSelfLoops(on bool) Option {
	return func(c *config) { c.loops = on }
}
