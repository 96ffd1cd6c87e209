// SPDX-License-Identifier: MIT

// Package csr: domain types.
// This file contains ONLY the Matrix value type, the tagged data container and
// the tag offset table. Constructors live in matrix.go, options in options.go.
package csr

import "github.com/katalvlaran/csrkit/tensor"

// DataField holds the per-entry ids of a Matrix. It is either the identity
// mapping (entry at storage position p has id p) or an explicit id array.
// Every consumer branches on Present; there is no nullable pointer.
type DataField struct {
	ids tensor.Array // null ⇒ identity
}

// IdentityData returns the implicit 0..nnz-1 mapping.
func IdentityData() DataField { return DataField{} }

// ExplicitData wraps an explicit id array. A null array yields IdentityData.
func ExplicitData(ids tensor.Array) DataField { return DataField{ids: ids} }

// Present reports whether an explicit id array is attached.
func (d DataField) Present() bool { return !d.ids.IsNull() }

// Array returns the explicit id array, or the null array for the identity mapping.
func (d DataField) Array() tensor.Array { return d.ids }

// ID returns the id of the entry stored at position pos.
// Complexity: O(1). pos must lie in [0, nnz).
func (d DataField) ID(pos int64) int64 {
	if d.ids.IsNull() {
		return pos
	}

	return d.ids.Values()[pos]
}

// values returns the explicit ids or nil for identity (hot-loop helper).
func (d DataField) values() []int64 { return d.ids.Values() }

// idAt resolves an entry id from a values() slice.
func idAt(ids []int64, pos int64) int64 {
	if ids == nil {
		return pos
	}

	return ids[pos]
}

// Matrix is a CSR sparse matrix.
//
// Invariants (re-established by every constructor and transform):
//   - indptr has numRows+1 entries, starts at 0, never decreases and ends at nnz;
//   - every indices value lies in [0, numCols);
//   - indptr, indices and explicit data share dtype and device;
//   - the dtype can represent numRows and numCols.
//
// sorted is a cached hint: true only if every row's column slice is ascending.
type Matrix struct {
	numRows int64
	numCols int64
	indptr  tensor.Array
	indices tensor.Array
	data    DataField
	sorted  bool
}

// TagOffsets is the (numRows, numTags+1) boundary table produced by SortByTag.
// Row r's entries with tag t occupy positions
// [indptr[r]+Row(r)[t], indptr[r]+Row(r)[t+1]).
type TagOffsets struct {
	numRows int64
	numTags int64
	vals    []int64 // row-major
}

// NewTagOffsets wraps a row-major boundary table (copied).
// Errors: ErrDimensionMismatch if len(vals) != numRows*(numTags+1);
// ErrInvalidShape for negative sizes.
func NewTagOffsets(numRows, numTags int64, vals []int64) (*TagOffsets, error) {
	if numRows < 0 || numTags < 0 {
		return nil, csrErrorf("NewTagOffsets", ErrInvalidShape)
	}
	if int64(len(vals)) != numRows*(numTags+1) {
		return nil, csrErrorf("NewTagOffsets", ErrDimensionMismatch)
	}

	return &TagOffsets{numRows: numRows, numTags: numTags, vals: append([]int64(nil), vals...)}, nil
}

// NumRows returns the number of table rows.
func (o *TagOffsets) NumRows() int64 { return o.numRows }

// NumTags returns the number of tags (the table has NumTags()+1 columns).
func (o *TagOffsets) NumTags() int64 { return o.numTags }

// Row returns the numTags+1 boundaries of row r (a read-only window).
func (o *TagOffsets) Row(r int64) []int64 {
	w := o.numTags + 1

	return o.vals[r*w : (r+1)*w : (r+1)*w]
}

// Values returns the whole row-major table (read-only window).
func (o *TagOffsets) Values() []int64 { return o.vals }
