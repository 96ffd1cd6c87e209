// SPDX-License-Identifier: MIT

// Package csr: structural transforms (transpose, slicing, sorting, relabeling
// and entry removal). Every result re-establishes the Matrix invariants.
package csr

import (
	"sort"

	"github.com/katalvlaran/csrkit/tensor"
)

// Transpose returns mᵀ using a counting-sort bucket pass. Entry ids travel
// with their entries; the result is sorted because rows are visited in order.
// Complexity: O(nnz + numRows + numCols).
func (m *Matrix) Transpose() *Matrix {
	nnz := m.NNZ()
	ptr, idx, ids := m.indptr.Values(), m.indices.Values(), m.data.values()

	outPtr := make([]int64, m.numCols+1)
	for _, c := range idx {
		outPtr[c+1]++
	}
	for c := int64(0); c < m.numCols; c++ {
		outPtr[c+1] += outPtr[c]
	}
	cursor := append([]int64(nil), outPtr[:m.numCols]...)

	outIdx := make([]int64, nnz)
	outData := make([]int64, nnz)
	for r := int64(0); r < m.numRows; r++ {
		for p := ptr[r]; p < ptr[r+1]; p++ {
			c := idx[p]
			q := cursor[c]
			cursor[c]++
			outIdx[q] = r
			outData[q] = idAt(ids, p)
		}
	}

	return newTrusted(m.numCols, m.numRows, m.own(outPtr), m.own(outIdx), ExplicitData(m.own(outData)), true)
}

// SliceRows returns rows [start, end) relabeled to 0..end-start. The column
// space is unchanged. indices (and data, when present) are views of m's
// buffers; with identity data the result carries the explicit position range
// so entry ids keep referring to m.
// Errors: ErrOutOfRange unless 0 <= start <= end <= NumRows().
// Complexity: O(end-start) (no entry copy).
func (m *Matrix) SliceRows(start, end int64) (*Matrix, error) {
	if start < 0 || end < start || end > m.numRows {
		return nil, csrErrorf("SliceRows", ErrOutOfRange)
	}
	ptr := m.indptr.Values()
	st, ed := ptr[start], ptr[end]

	newPtr := make([]int64, end-start+1)
	for i := range newPtr {
		newPtr[i] = ptr[start+int64(i)] - st
	}
	indices, err := m.indices.Slice(int(st), int(ed))
	if err != nil {
		return nil, csrErrorf("SliceRows", err)
	}
	var data tensor.Array
	if m.data.Present() {
		data, err = m.data.Array().Slice(int(st), int(ed))
	} else {
		data, err = tensor.Range(m.DType(), m.Device(), st, ed)
	}
	if err != nil {
		return nil, csrErrorf("SliceRows", err)
	}

	return newTrusted(end-start, m.numCols, m.own(newPtr), indices, ExplicitData(data), m.sorted), nil
}

// SliceRowsByIDs gathers the listed rows (in the given order, repeats allowed)
// into a new matrix with rows relabeled 0..len(rows)-1.
// Errors: ErrOutOfRange; ErrOverflow when the row count or the gathered nnz
// does not fit the index dtype.
// Complexity: O(len(rows) + selected nnz).
func (m *Matrix) SliceRowsByIDs(rows []int64) (*Matrix, error) {
	if err := checkIDs(rows, m.numRows); err != nil {
		return nil, csrErrorf("SliceRowsByIDs", err)
	}
	ptr, idx, ids := m.indptr.Values(), m.indices.Values(), m.data.values()

	newPtr := make([]int64, len(rows)+1)
	for i, r := range rows {
		newPtr[i+1] = newPtr[i] + ptr[r+1] - ptr[r]
	}
	total := newPtr[len(rows)]
	if dt := m.DType(); !dt.Fits(int64(len(rows))) || !dt.Fits(total) {
		return nil, csrErrorf("SliceRowsByIDs", ErrOverflow)
	}
	outIdx := make([]int64, 0, total)
	outData := make([]int64, 0, total)
	for _, r := range rows {
		outIdx = append(outIdx, idx[ptr[r]:ptr[r+1]]...)
		for p := ptr[r]; p < ptr[r+1]; p++ {
			outData = append(outData, idAt(ids, p))
		}
	}

	return newTrusted(int64(len(rows)), m.numCols, m.own(newPtr), m.own(outIdx), ExplicitData(m.own(outData)), m.sorted), nil
}

// SliceMatrix returns the submatrix M[rows, cols] with both axes relabeled to
// the positions in rows and cols. M may hold duplicate entries; a column listed
// several times in cols yields one output column per listing.
// Errors: ErrOutOfRange; ErrOverflow when an output dimension or the output
// nnz does not fit the index dtype.
// Complexity: O(len(rows) + len(cols) + selected nnz).
func (m *Matrix) SliceMatrix(rows, cols []int64) (*Matrix, error) {
	if err := checkIDs(rows, m.numRows); err != nil {
		return nil, csrErrorf("SliceMatrix: rows", err)
	}
	if err := checkIDs(cols, m.numCols); err != nil {
		return nil, csrErrorf("SliceMatrix: cols", err)
	}
	dt := m.DType()
	if !dt.Fits(int64(len(rows))) || !dt.Fits(int64(len(cols))) {
		return nil, csrErrorf("SliceMatrix", ErrOverflow)
	}
	slot := make(map[int64][]int64, len(cols))
	for j, c := range cols {
		slot[c] = append(slot[c], int64(j))
	}

	ptr, idx, ids := m.indptr.Values(), m.indices.Values(), m.data.values()
	var total int64
	for _, r := range rows {
		for p := ptr[r]; p < ptr[r+1]; p++ {
			total += int64(len(slot[idx[p]]))
		}
	}
	if !dt.Fits(total) {
		return nil, csrErrorf("SliceMatrix", ErrOverflow)
	}
	newPtr := make([]int64, len(rows)+1)
	outIdx := make([]int64, 0, total)
	outData := make([]int64, 0, total)
	for i, r := range rows {
		for p := ptr[r]; p < ptr[r+1]; p++ {
			for _, j := range slot[idx[p]] {
				outIdx = append(outIdx, j)
				outData = append(outData, idAt(ids, p))
			}
		}
		newPtr[i+1] = int64(len(outIdx))
	}

	return newTrusted(int64(len(rows)), int64(len(cols)), m.own(newPtr), m.own(outIdx), ExplicitData(m.own(outData)), false), nil
}

// rowPairs sorts one row's (col, id) pairs by col in lockstep.
type rowPairs struct {
	cols []int64
	ids  []int64
}

func (p rowPairs) Len() int           { return len(p.cols) }
func (p rowPairs) Less(i, j int) bool { return p.cols[i] < p.cols[j] }
func (p rowPairs) Swap(i, j int) {
	p.cols[i], p.cols[j] = p.cols[j], p.cols[i]
	p.ids[i], p.ids[j] = p.ids[j], p.ids[i]
}

// SortInPlace sorts every row's columns ascending (stable for equal columns),
// permuting entry ids in lockstep; indptr never changes. Identity data is
// materialized first so ids keep naming the original entries. No-op when the
// cached flag is already set.
//
// SortInPlace writes to the indices buffer, which is visible through every
// view sharing it.
// Complexity: O(nnz log maxdeg).
func (m *Matrix) SortInPlace() {
	if m.sorted {
		return
	}
	if !m.data.Present() {
		m.data = ExplicitData(m.dataArray())
	}
	ptr := m.indptr.Values()
	idx, ids := m.indices.Mutable(), m.data.Array().Mutable()

	// rows write disjoint windows; errors are impossible here
	_ = runBlocks(DefaultWorkers, blockCount(m.numRows, DefaultBlockRows), func(b int) error {
		lo, hi := blockBounds(b, m.numRows, DefaultBlockRows)
		for r := lo; r < hi; r++ {
			s, e := ptr[r], ptr[r+1]
			if e-s > 1 {
				sort.Stable(rowPairs{cols: idx[s:e], ids: ids[s:e]})
			}
		}

		return nil
	})
	m.sorted = true
}

// Sort returns a sorted matrix. When the cached flag is set, m itself is
// returned; otherwise indices and data are cloned and sorted while indptr is
// shared with m.
func (m *Matrix) Sort() *Matrix {
	if m.sorted {
		return m
	}
	out := newTrusted(m.numRows, m.numCols, m.indptr, m.indices.Clone(), ExplicitData(m.dataArray().Clone()), false)
	out.SortInPlace()

	return out
}

// Reorder relabels rows and columns: old row r becomes newRowIDs[r], old
// column c becomes newColIDs[c]. Both arrays must be permutations. Entry ids
// are preserved; nnz is unchanged.
// Errors: ErrDimensionMismatch (lengths), ErrOutOfRange, ErrPreconditionViolated (not a permutation).
// Complexity: O(numRows + numCols + nnz).
func (m *Matrix) Reorder(newRowIDs, newColIDs []int64) (*Matrix, error) {
	if int64(len(newRowIDs)) != m.numRows || int64(len(newColIDs)) != m.numCols {
		return nil, csrErrorf("Reorder", ErrDimensionMismatch)
	}
	if err := checkUnique(newRowIDs, m.numRows); err != nil {
		return nil, csrErrorf("Reorder: rows", err)
	}
	if err := checkUnique(newColIDs, m.numCols); err != nil {
		return nil, csrErrorf("Reorder: cols", err)
	}
	ptr, idx, ids := m.indptr.Values(), m.indices.Values(), m.data.values()

	newPtr := make([]int64, m.numRows+1)
	for r := int64(0); r < m.numRows; r++ {
		newPtr[newRowIDs[r]+1] = ptr[r+1] - ptr[r]
	}
	for r := int64(0); r < m.numRows; r++ {
		newPtr[r+1] += newPtr[r]
	}
	outIdx := make([]int64, m.NNZ())
	outData := make([]int64, m.NNZ())
	for r := int64(0); r < m.numRows; r++ {
		q := newPtr[newRowIDs[r]]
		for p := ptr[r]; p < ptr[r+1]; p++ {
			outIdx[q] = newColIDs[idx[p]]
			outData[q] = idAt(ids, p)
			q++
		}
	}

	return newTrusted(m.numRows, m.numCols, m.own(newPtr), m.own(outIdx), ExplicitData(m.own(outData)), false), nil
}

// Remove drops every entry whose id is listed in entryIDs and returns the
// reduced matrix. Surviving entries keep their original ids in data, so no
// separate old→new map is needed. Ids that match nothing are ignored.
// Complexity: O(numRows + nnz + len(entryIDs)).
func (m *Matrix) Remove(entryIDs []int64) *Matrix {
	drop := make(map[int64]struct{}, len(entryIDs))
	for _, id := range entryIDs {
		drop[id] = struct{}{}
	}
	ptr, idx, ids := m.indptr.Values(), m.indices.Values(), m.data.values()

	newPtr := make([]int64, m.numRows+1)
	outIdx := make([]int64, 0, m.NNZ())
	outData := make([]int64, 0, m.NNZ())
	for r := int64(0); r < m.numRows; r++ {
		for p := ptr[r]; p < ptr[r+1]; p++ {
			id := idAt(ids, p)
			if _, gone := drop[id]; gone {
				continue
			}
			outIdx = append(outIdx, idx[p])
			outData = append(outData, id)
		}
		newPtr[r+1] = int64(len(outIdx))
	}

	return newTrusted(m.numRows, m.numCols, m.own(newPtr), m.own(outIdx), ExplicitData(m.own(outData)), m.sorted)
}
