// SPDX-License-Identifier: MIT

// Package csr: conversions between CSR and the COO sibling format.
package csr

import (
	"github.com/katalvlaran/csrkit/coo"
	"github.com/katalvlaran/csrkit/tensor"
)

// ToCOO expands m into coordinate form.
//
// With dataAsOrder == false the COO cols array is a view of m.Indices(), the
// data array (if any) is shared, the result is row-sorted and col-sorted iff m
// is flagged sorted.
//
// With dataAsOrder == true and explicit data, entry p is placed at position
// data[p] and the result carries no data. This requires data to be a
// permutation of [0, nnz); otherwise ErrPreconditionViolated. Without explicit
// data the two modes coincide.
// Complexity: O(numRows + nnz).
func (m *Matrix) ToCOO(dataAsOrder bool) (*coo.Matrix, error) {
	ptr := m.indptr.Values()
	nnz := m.NNZ()
	rows := make([]int64, nnz)
	for r := int64(0); r < m.numRows; r++ {
		for p := ptr[r]; p < ptr[r+1]; p++ {
			rows[p] = r
		}
	}

	if !dataAsOrder || !m.data.Present() {
		opts := []coo.Option{coo.WithRowSorted(true), coo.WithColSorted(m.sorted)}
		if m.data.Present() {
			opts = append(opts, coo.WithData(m.data.Array()))
		}
		c, err := coo.New(m.numRows, m.numCols, m.own(rows), m.indices, opts...)
		if err != nil {
			return nil, csrErrorf("ToCOO", err)
		}

		return c, nil
	}

	ids := m.data.values()
	if err := checkUnique(ids, nnz); err != nil {
		return nil, csrErrorf("ToCOO: data is not a permutation", ErrPreconditionViolated)
	}
	idx := m.indices.Values()
	outRows := make([]int64, nnz)
	outCols := make([]int64, nnz)
	for p, id := range ids {
		outRows[id] = rows[p]
		outCols[id] = idx[p]
	}
	c, err := coo.New(m.numRows, m.numCols, m.own(outRows), m.own(outCols))
	if err != nil {
		return nil, csrErrorf("ToCOO", err)
	}

	return c, nil
}

// FromCOO builds a CSR matrix from coordinate form.
//
// Input flagged row-sorted whose rows are confirmed non-decreasing is
// compressed directly: the indices are a view of c.Cols() and data is shared.
// Otherwise entries are bucketed by row with a stable counting sort, and data
// records each entry's COO position (or the permuted COO data) so ids keep
// naming the original entries. The result is flagged sorted iff c claims both
// orders and the scan confirms them.
//
// Errors: ErrOverflow when dimensions or nnz do not fit the index dtype.
// Complexity: O(numRows + nnz).
func FromCOO(c *coo.Matrix) (*Matrix, error) {
	if c == nil {
		return nil, csrErrorf("FromCOO", ErrNilMatrix)
	}
	dt, dev := c.Rows().DType(), c.Rows().Device()
	nnz := int64(c.NNZ())
	if !dt.Fits(c.NumRows()) || !dt.Fits(c.NumCols()) || !dt.Fits(nnz) {
		return nil, csrErrorf("FromCOO", ErrOverflow)
	}
	rv, cv := c.Rows().Values(), c.Cols().Values()

	ptr := make([]int64, c.NumRows()+1)
	for _, r := range rv {
		ptr[r+1]++
	}
	for r := int64(0); r < c.NumRows(); r++ {
		ptr[r+1] += ptr[r]
	}
	rowOrdered, colOrdered := scanOrder(rv, cv)
	rowSorted := c.RowSorted() && rowOrdered
	sorted := rowSorted && c.ColSorted() && colOrdered

	if rowSorted {
		data := IdentityData()
		if c.HasData() {
			data = ExplicitData(c.Data())
		}

		return newTrusted(c.NumRows(), c.NumCols(), tensor.OwnUnchecked(dt, dev, ptr), c.Cols(), data, sorted), nil
	}

	cursor := append([]int64(nil), ptr[:c.NumRows()]...)
	idx := make([]int64, nnz)
	ids := make([]int64, nnz)
	for i, r := range rv {
		q := cursor[r]
		cursor[r]++
		idx[q] = cv[i]
		ids[q] = c.EntryID(i)
	}

	return newTrusted(c.NumRows(), c.NumCols(),
		tensor.OwnUnchecked(dt, dev, ptr),
		tensor.OwnUnchecked(dt, dev, idx),
		ExplicitData(tensor.OwnUnchecked(dt, dev, ids)),
		sorted), nil
}

// scanOrder reports whether rows never decrease and, given that, whether
// cols never decrease within a row.
func scanOrder(rv, cv []int64) (rowOrdered, colOrdered bool) {
	colOrdered = true
	for i := 1; i < len(rv); i++ {
		switch {
		case rv[i] < rv[i-1]:
			return false, false
		case rv[i] == rv[i-1] && cv[i] < cv[i-1]:
			colOrdered = false
		}
	}

	return true, colOrdered
}
