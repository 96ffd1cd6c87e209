// SPDX-License-Identifier: MIT

// Package builder generates CSR adjacency matrices for fixtures, benchmarks
// and the csrtool "generate" command.
//
// One orchestrator, Build(n, opts, cons...), resolves the options, runs each
// Constructor against a shared edge sink in order and compresses the result
// into a sorted *csr.Matrix of shape n×n. Constructors compose: Build(9, nil,
// Grid(3, 3), RandomFanout(2)) yields a grid with two random extra out-edges
// per vertex. Parallel edges are kept, so fan-out constructors produce
// multigraphs suitable for csr.Matrix.ToSimple.
//
// Options:
//   - WithSeed / WithSource: randomness for RandomSparse and RandomFanout.
//   - WithDType: index dtype of the result (default Int64).
//   - WithUndirected: mirror every emitted edge (u,v) as (v,u).
//   - WithSelfLoops: allow (v,v) in the random constructors.
//
// Guarantees:
//   - Determinism: same n, options, seed and constructor order ⇒ identical matrix.
//   - Option constructors panic on meaningless values; constructors return
//     sentinel errors (ErrTooFewVertices, ErrInvalidProbability, ...) and never panic.
package builder
