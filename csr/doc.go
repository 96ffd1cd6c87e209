// SPDX-License-Identifier: MIT

// Package csr implements a Compressed-Sparse-Row engine for (multi-)graphs.
//
// What & Why:
//
//	A Matrix stores num_rows+1 row pointers (indptr), one column id per stored
//	entry (indices) and an optional entry id per stored entry (data). Duplicate
//	(row, col) pairs are parallel edges and are never collapsed implicitly; use
//	ToSimple for that. The package provides the operations a graph-learning
//	batching pipeline needs:
//
//	  • Store      : New (eager validation), CopyTo, PinMemory/UnpinMemory, Save/Load.
//	  • Query      : IsNonZero, RowNNZ, row views, HasDuplicate, GetData*, IsSorted.
//	  • Transform  : Transpose, ToCOO/FromCOO, SliceRows, SliceMatrix, Sort, Reorder, Remove.
//	  • Sampling   : uniform/weighted, per-edge-type, top-k, tag-biased, negative sampling.
//	  • Tags       : SortByTag producing per-row tag boundaries.
//	  • Combinators: Union, DisjointUnion, ToSimple, DisjointPartitionBySizes, SliceContiguousChunk.
//
// Value semantics:
//
//	Operations return new matrices. Those that do not need to rewrite indices or
//	data return views sharing the source buffers (tensor.Array.SharesStorage).
//	Only SortInPlace, PinMemory and UnpinMemory mutate shared storage; do not run
//	them concurrently with readers of any matrix sharing those buffers.
//
// The sorted flag:
//
//	Sorted() is a cached hint. Lookups binary-search a row only when the caller
//	opts in with WithTrustSorted; IsSorted is the authoritative full scan.
//
// Randomness:
//
//	Every sampling call receives its math/rand/v2 Source explicitly. Rows are
//	processed in fixed blocks, each with a stream derived from that source
//	before fan-out, so results do not depend on the worker count.
package csr
