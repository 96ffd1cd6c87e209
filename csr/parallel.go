// SPDX-License-Identifier: MIT

// Package csr: bounded fan-out over contiguous row blocks.
package csr

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// blockCount returns ceil(n / size) for n >= 0.
func blockCount(n int64, size int) int {
	if n <= 0 {
		return 0
	}

	return int((n + int64(size) - 1) / int64(size))
}

// blockBounds returns the half-open item range [lo, hi) of block b.
func blockBounds(b int, n int64, size int) (lo, hi int64) {
	lo = int64(b) * int64(size)
	hi = min(lo+int64(size), n)

	return lo, hi
}

// runBlocks invokes fn for every block in [0, blocks) with at most workers
// calls in flight (0 ⇒ GOMAXPROCS) and returns the first error.
// fn must only write state owned by its block.
func runBlocks(workers, blocks int, fn func(b int) error) error {
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if blocks <= 1 || workers == 1 {
		for b := 0; b < blocks; b++ {
			if err := fn(b); err != nil {
				return err
			}
		}

		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for b := 0; b < blocks; b++ {
		g.Go(func() error { return fn(b) })
	}

	return g.Wait()
}
