// SPDX-License-Identifier: MIT

// Package csr: random stream utilities shared by the sampling engine.
//
// Goals:
//   - Determinism: same source state ⇒ identical samples for any worker count.
//   - Encapsulation: one place derives per-block streams; no time-based seeds.
//
// Concurrency:
//   - rand.Source is NOT goroutine-safe. Block seeds are drawn from the caller's
//     source sequentially, before fan-out; each block then owns its own PCG.
package csr

import "math/rand/v2"

// defaultRNGSeed is the fixed seed used when callers pass a nil source.
const defaultRNGSeed uint64 = 1

// sourceOrDefault returns src, or a deterministic default PCG when src is nil.
func sourceOrDefault(src rand.Source) rand.Source {
	if src == nil {
		return rand.NewPCG(defaultRNGSeed, deriveSeed(defaultRNGSeed, 0))
	}

	return src
}

// deriveSeed mixes a parent seed and a stream identifier (SplitMix64 finalizer).
// Complexity: O(1).
func deriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return x
}

// blockSeeds consumes one value of src per block, in block order.
func blockSeeds(src rand.Source, blocks int) []uint64 {
	src = sourceOrDefault(src)
	seeds := make([]uint64, blocks)
	for b := range seeds {
		seeds[b] = src.Uint64()
	}

	return seeds
}

// blockRNG returns the independent stream owned by block b.
func blockRNG(seed uint64, b int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, deriveSeed(seed, uint64(b))))
}
