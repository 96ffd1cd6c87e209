// SPDX-License-Identifier: MIT

// Package csr: the Query Engine.
//
// Determinism & Policy:
//   - Rows are scanned linearly unless the caller passes WithTrustSorted and the
//     cached sorted flag is set; then rows are binary-searched.
//   - Batched forms broadcast: either side may have length 1.
//   - Ids outside the shape are ErrOutOfRange; lookups never panic.
package csr

import (
	"slices"

	"github.com/katalvlaran/csrkit/tensor"
)

// rowRange returns [lo, hi) storage positions of row r (r must be valid).
func (m *Matrix) rowRange(r int64) (lo, hi int64) {
	ptr := m.indptr.Values()

	return ptr[r], ptr[r+1]
}

func (m *Matrix) checkRow(r int64) error {
	if r < 0 || r >= m.numRows {
		return ErrOutOfRange
	}

	return nil
}

func (m *Matrix) checkCell(r, c int64) error {
	if r < 0 || r >= m.numRows || c < 0 || c >= m.numCols {
		return ErrOutOfRange
	}

	return nil
}

// searcher resolves positions of (row, col) according to the query policy.
type searcher struct {
	m      *Matrix
	ptr    []int64
	idx    []int64
	binary bool
}

func (m *Matrix) newSearcher(cfg queryConfig) searcher {
	return searcher{
		m:      m,
		ptr:    m.indptr.Values(),
		idx:    m.indices.Values(),
		binary: cfg.trustSorted && m.sorted,
	}
}

// first returns the first position of col in row r, or -1.
func (s searcher) first(r, c int64) int64 {
	lo, hi := s.ptr[r], s.ptr[r+1]
	if s.binary {
		i, found := slices.BinarySearch(s.idx[lo:hi], c)
		if !found {
			return -1
		}

		return lo + int64(i)
	}
	for p := lo; p < hi; p++ {
		if s.idx[p] == c {
			return p
		}
	}

	return -1
}

// each calls fn for every position of col in row r, in storage order.
func (s searcher) each(r, c int64, fn func(pos int64)) {
	lo, hi := s.ptr[r], s.ptr[r+1]
	if s.binary {
		i, _ := slices.BinarySearch(s.idx[lo:hi], c)
		for p := lo + int64(i); p < hi && s.idx[p] == c; p++ {
			fn(p)
		}

		return
	}
	for p := lo; p < hi; p++ {
		if s.idx[p] == c {
			fn(p)
		}
	}
}

// IsNonZero reports whether (row, col) holds at least one entry.
// Errors: ErrOutOfRange. Complexity: O(deg) or O(log deg) with WithTrustSorted.
func (m *Matrix) IsNonZero(row, col int64, opts ...QueryOption) (bool, error) {
	if err := m.checkCell(row, col); err != nil {
		return false, csrErrorf("IsNonZero", err)
	}

	return m.newSearcher(gatherQuery(opts)).first(row, col) >= 0, nil
}

// IsNonZeroBatch is the broadcasting form of IsNonZero.
// Errors: ErrDimensionMismatch for non-broadcastable lengths, ErrOutOfRange.
func (m *Matrix) IsNonZeroBatch(rows, cols []int64, opts ...QueryOption) ([]bool, error) {
	n, rs, cs, err := broadcastLen(len(rows), len(cols))
	if err != nil {
		return nil, csrErrorf("IsNonZeroBatch", err)
	}
	s := m.newSearcher(gatherQuery(opts))
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		r, c := rows[i*rs], cols[i*cs]
		if err = m.checkCell(r, c); err != nil {
			return nil, csrErrorf("IsNonZeroBatch", err)
		}
		out[i] = s.first(r, c) >= 0
	}

	return out, nil
}

// RowNNZ returns indptr[row+1] - indptr[row].
func (m *Matrix) RowNNZ(row int64) (int64, error) {
	if err := m.checkRow(row); err != nil {
		return 0, csrErrorf("RowNNZ", err)
	}
	lo, hi := m.rowRange(row)

	return hi - lo, nil
}

// RowNNZBatch returns the degree of every listed row.
func (m *Matrix) RowNNZBatch(rows []int64) ([]int64, error) {
	if err := checkIDs(rows, m.numRows); err != nil {
		return nil, csrErrorf("RowNNZBatch", err)
	}
	out := make([]int64, len(rows))
	for i, r := range rows {
		lo, hi := m.rowRange(r)
		out[i] = hi - lo
	}

	return out, nil
}

// RowColumnIndices returns a view (sharing storage) of row's column ids in stored order.
func (m *Matrix) RowColumnIndices(row int64) (tensor.Array, error) {
	if err := m.checkRow(row); err != nil {
		return tensor.Array{}, csrErrorf("RowColumnIndices", err)
	}
	lo, hi := m.rowRange(row)

	return m.indices.Slice(int(lo), int(hi))
}

// RowData returns row's entry ids in stored order: a view of data when present,
// otherwise a fresh position range.
func (m *Matrix) RowData(row int64) (tensor.Array, error) {
	if err := m.checkRow(row); err != nil {
		return tensor.Array{}, csrErrorf("RowData", err)
	}
	lo, hi := m.rowRange(row)
	if m.data.Present() {
		return m.data.Array().Slice(int(lo), int(hi))
	}

	return tensor.Range(m.DType(), m.Device(), lo, hi)
}

// IsSorted scans every row and reports whether all column slices are
// ascending (duplicates allowed). It ignores the cached flag.
// Complexity: O(nnz).
func (m *Matrix) IsSorted() bool {
	ptr, idx := m.indptr.Values(), m.indices.Values()
	for r := int64(0); r < m.numRows; r++ {
		if !slices.IsSorted(idx[ptr[r]:ptr[r+1]]) {
			return false
		}
	}

	return true
}

// HasDuplicate reports whether any row holds the same column twice.
// Rows that are already ascending are checked in place; others are checked on
// a sorted scratch copy.
// Complexity: O(nnz log maxdeg) time, O(maxdeg) extra space.
func (m *Matrix) HasDuplicate() bool {
	ptr, idx := m.indptr.Values(), m.indices.Values()
	var scratch []int64
	for r := int64(0); r < m.numRows; r++ {
		row := idx[ptr[r]:ptr[r+1]]
		if len(row) < 2 {
			continue
		}
		if !slices.IsSorted(row) {
			scratch = append(scratch[:0], row...)
			slices.Sort(scratch)
			row = scratch
		}
		for i := 1; i < len(row); i++ {
			if row[i] == row[i-1] {
				return true
			}
		}
	}

	return false
}

// GetDataAndIndices returns every entry matching each (rows[i], cols[i]) pair
// as three parallel arrays (matched rows, matched cols, matched data ids).
// Pairs without a match are omitted. The query must not repeat a pair;
// the result for repeated pairs is unspecified (no duplicate scan is run).
// Errors: ErrDimensionMismatch, ErrOutOfRange.
func (m *Matrix) GetDataAndIndices(rows, cols []int64, opts ...QueryOption) (outRows, outCols, outData []int64, err error) {
	n, rs, cs, err := broadcastLen(len(rows), len(cols))
	if err != nil {
		return nil, nil, nil, csrErrorf("GetDataAndIndices", err)
	}
	s := m.newSearcher(gatherQuery(opts))
	ids := m.data.values()
	for i := 0; i < n; i++ {
		r, c := rows[i*rs], cols[i*cs]
		if err = m.checkCell(r, c); err != nil {
			return nil, nil, nil, csrErrorf("GetDataAndIndices", err)
		}
		s.each(r, c, func(pos int64) {
			outRows = append(outRows, r)
			outCols = append(outCols, c)
			outData = append(outData, idAt(ids, pos))
		})
	}

	return outRows, outCols, outData, nil
}

// GetAllData returns the ids of every entry stored at (row, col); multi-edges
// yield several ids, an empty cell yields none.
func (m *Matrix) GetAllData(row, col int64, opts ...QueryOption) ([]int64, error) {
	_, _, data, err := m.GetDataAndIndices([]int64{row}, []int64{col}, opts...)
	if err != nil {
		return nil, csrErrorf("GetAllData", err)
	}

	return data, nil
}

// GetData returns exactly one id per query pair: the first matching entry,
// or -1 when the cell is empty. Repeated query pairs are allowed.
func (m *Matrix) GetData(rows, cols []int64, opts ...QueryOption) ([]int64, error) {
	n, rs, cs, err := broadcastLen(len(rows), len(cols))
	if err != nil {
		return nil, csrErrorf("GetData", err)
	}
	s := m.newSearcher(gatherQuery(opts))
	ids := m.data.values()
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		r, c := rows[i*rs], cols[i*cs]
		if err = m.checkCell(r, c); err != nil {
			return nil, csrErrorf("GetData", err)
		}
		out[i] = -1
		if p := s.first(r, c); p >= 0 {
			out[i] = idAt(ids, p)
		}
	}

	return out, nil
}

// GetDataValues resolves every query pair like GetData and then indexes weights
// with the matched entry id; empty cells yield filler.
// Errors: ErrDimensionMismatch, ErrOutOfRange (query ids or an entry id beyond len(weights)).
func GetDataValues[T any](m *Matrix, rows, cols []int64, weights []T, filler T, opts ...QueryOption) ([]T, error) {
	ids, err := m.GetData(rows, cols, opts...)
	if err != nil {
		return nil, csrErrorf("GetDataValues", err)
	}
	out := make([]T, len(ids))
	for i, id := range ids {
		if id < 0 {
			out[i] = filler
			continue
		}
		if id >= int64(len(weights)) {
			return nil, csrErrorf("GetDataValues", ErrOutOfRange)
		}
		out[i] = weights[id]
	}

	return out, nil
}
