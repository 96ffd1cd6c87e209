// SPDX-License-Identifier: MIT

// api.go - the Build orchestrator and the edge sink shared by constructors.

package builder

import (
	"github.com/katalvlaran/csrkit/coo"
	"github.com/katalvlaran/csrkit/csr"
	"github.com/katalvlaran/csrkit/tensor"
)

const (
	methodBuild = "Build"
	minVertices = 1
)

// Constructor emits edges into the sink using the resolved config.
// Constructors validate their parameters first and never panic.
type Constructor func(s *sink, cfg config) error

// sink accumulates directed edges in emission order.
type sink struct {
	n          int64
	undirected bool
	rows, cols []int64
}

// add records (u,v) and, in undirected mode, its mirror.
func (s *sink) add(u, v int64) {
	s.rows = append(s.rows, u)
	s.cols = append(s.cols, v)
	if s.undirected && u != v {
		s.rows = append(s.rows, v)
		s.cols = append(s.cols, u)
	}
}

// Build creates an n×n adjacency matrix by applying cons in order.
//
// The result is flagged sorted; data holds each edge's emission index, so
// parallel edges stay distinguishable after sorting.
//
// Errors:
//   - ErrTooFewVertices if n < 1.
//   - csr.ErrOverflow if n or the edge count does not fit the dtype.
//   - any constructor error, wrapped with "Build".
//
// Complexity: Σ constructor cost + O(n + E log E) for compression.
func Build(n int64, opts []Option, cons ...Constructor) (*csr.Matrix, error) {
	if n < minVertices {
		return nil, builderErrorf(methodBuild, ErrTooFewVertices)
	}
	cfg := newConfig(opts)
	if !cfg.dtype.Fits(n) {
		return nil, builderErrorf(methodBuild, csr.ErrOverflow)
	}

	s := &sink{n: n, undirected: cfg.undirected}
	for _, con := range cons {
		if err := con(s, cfg); err != nil {
			return nil, builderErrorf(methodBuild, err)
		}
	}
	if !cfg.dtype.Fits(int64(len(s.rows))) {
		return nil, builderErrorf(methodBuild, csr.ErrOverflow)
	}

	// Every id lies in [0,n) and n fits dtype, so the unchecked wrap is safe.
	list, err := coo.New(n, n,
		tensor.OwnUnchecked(cfg.dtype, tensor.Host, s.rows),
		tensor.OwnUnchecked(cfg.dtype, tensor.Host, s.cols))
	if err != nil {
		return nil, builderErrorf(methodBuild, err)
	}
	m, err := csr.FromCOO(list)
	if err != nil {
		return nil, builderErrorf(methodBuild, err)
	}
	m.SortInPlace()

	return m, nil
}
