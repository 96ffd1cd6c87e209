// SPDX-License-Identifier: MIT

// Package csr: dense debugging view.
package csr

import "gonum.org/v1/gonum/mat"

// ToDense returns the multiplicity matrix: cell (r, c) counts the entries
// stored at (r, c). Intended for inspection and tests on small matrices.
// Errors: ErrInvalidShape when either dimension is zero (no dense form).
// Complexity: O(numRows·numCols + nnz) memory and time.
func (m *Matrix) ToDense() (*mat.Dense, error) {
	if m.numRows == 0 || m.numCols == 0 {
		return nil, csrErrorf("ToDense", ErrInvalidShape)
	}
	d := mat.NewDense(int(m.numRows), int(m.numCols), nil)
	ptr, idx := m.indptr.Values(), m.indices.Values()
	for r := int64(0); r < m.numRows; r++ {
		for p := ptr[r]; p < ptr[r+1]; p++ {
			i, j := int(r), int(idx[p])
			d.Set(i, j, d.At(i, j)+1)
		}
	}

	return d, nil
}
