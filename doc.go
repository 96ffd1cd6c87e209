// SPDX-License-Identifier: MIT

// Package csrkit is a sparse-matrix engine for graph-learning batching: a
// (possibly multi-edge) graph stored in compressed sparse row form, with
// structural, query, sampling and set operations.
//
// What is inside:
//
//	tensor/  - dtype-tagged index arrays with device placement, views and pinning
//	stream/  - little-endian binary framing for scalars and arrays
//	coo/     - the coordinate-list sibling format
//	csr/     - the CSR store and every operation on it
//	builder/ - deterministic and seeded synthetic graphs as CSR matrices
//	cmd/csrtool - command-line front end (build, generate, inspect, sample, ...)
//
// Quick start:
//
//	m, _ := builder.Build(1024, []builder.Option{builder.WithSeed(7)}, builder.RandomFanout(16))
//	picks, _ := m.RowWiseSampling([]int64{0, 1, 2}, 5, nil, false, rand.NewPCG(1, 2))
//	for _, tr := range picks.Triples() {
//		fmt.Println(tr.Row, tr.Col, tr.Data)
//	}
//
// Guarantees:
//
//   - Determinism: sampling results depend only on the injected source, never
//     on the worker count.
//   - Matrices are logically immutable; SortInPlace, PinMemory and UnpinMemory
//     are the only mutators.
//   - Errors are package sentinels matched with errors.Is; option constructors
//     panic on meaningless values, algorithms never do.
package csrkit
