// SPDX-License-Identifier: MIT
// Package csr: canonical validation checks.
//
// Purpose:
//   - Single source of truth for invariant checks shared by New, Load and the
//     operations that accept id arrays.
//   - Return plain sentinels; call sites wrap them with csrErrorf.
//
// Note:
//   - checkHeader is O(1) and mirrors the constructor contract
//     (shape → dtype → device → overflow).
//   - checkContent is O(numRows + nnz) and runs only for externally supplied arrays.

package csr

import "github.com/katalvlaran/csrkit/tensor"

// checkHeader validates the cheap, array-level invariants.
func checkHeader(numRows, numCols int64, indptr, indices tensor.Array, data DataField) error {
	if numRows < 0 || numCols < 0 {
		return ErrInvalidShape
	}
	if indptr.IsNull() || indices.IsNull() || int64(indptr.Len()) != numRows+1 {
		return ErrInvalidShape
	}
	dt := indptr.DType()
	if indices.DType() != dt || (data.Present() && data.Array().DType() != dt) {
		return ErrDtypeMismatch
	}
	if !indptr.SameContext(indices) || (data.Present() && !indptr.SameContext(data.Array())) {
		return ErrDeviceMismatch
	}
	if !dt.Fits(numRows) || !dt.Fits(numCols) {
		return ErrOverflow
	}

	return nil
}

// checkContent validates indptr monotonicity, nnz agreement and id ranges.
func checkContent(numCols int64, indptr, indices tensor.Array, data DataField) error {
	ptr := indptr.Values()
	if ptr[0] != 0 {
		return ErrInvalidShape
	}
	for i := 1; i < len(ptr); i++ {
		if ptr[i] < ptr[i-1] {
			return ErrInvalidShape
		}
	}
	nnz := int64(indices.Len())
	if ptr[len(ptr)-1] != nnz {
		return ErrInvalidShape
	}
	if data.Present() && int64(data.Array().Len()) != nnz {
		return ErrInvalidShape
	}
	for _, c := range indices.Values() {
		if c < 0 || c >= numCols {
			return ErrOutOfRange
		}
	}
	for _, id := range data.values() {
		if id < 0 {
			return ErrOutOfRange
		}
	}

	return nil
}

// checkIDs verifies that every id lies in [0, bound).
func checkIDs(ids []int64, bound int64) error {
	for _, v := range ids {
		if v < 0 || v >= bound {
			return ErrOutOfRange
		}
	}

	return nil
}

// broadcastLen resolves the pair count of a (rows, cols) query where either
// side may have length 1. Returns the strides to apply to each side.
func broadcastLen(nr, nc int) (n, rs, cs int, err error) {
	switch {
	case nr == nc:
		return nr, 1, 1, nil
	case nr == 1:
		return nc, 0, 1, nil
	case nc == 1:
		return nr, 1, 0, nil
	}

	return 0, 0, 0, ErrDimensionMismatch
}

// checkUnique verifies that ids are pairwise distinct and lie in [0, bound).
func checkUnique(ids []int64, bound int64) error {
	seen := make([]bool, bound)
	for _, v := range ids {
		if v < 0 || v >= bound {
			return ErrOutOfRange
		}
		if seen[v] {
			return ErrPreconditionViolated
		}
		seen[v] = true
	}

	return nil
}
