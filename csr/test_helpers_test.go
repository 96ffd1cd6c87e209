// SPDX-License-Identifier: MIT

package csr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/csrkit/coo"
	"github.com/katalvlaran/csrkit/csr"
	"github.com/katalvlaran/csrkit/tensor"
)

// mustCSR builds an Int64 host matrix or fails the test.
func mustCSR(t testing.TB, numRows, numCols int64, indptr, indices, data []int64, sorted bool) *csr.Matrix {
	t.Helper()
	m, err := csr.FromSlices(tensor.Int64, numRows, numCols, indptr, indices, data, sorted)
	require.NoError(t, err)

	return m
}

// sample4x4 is the 4×4 fixture used across the suite:
//
//	row 0: cols [1 0]
//	row 1: cols [2]
//	row 2: (empty)
//	row 3: cols [3 1]
func sample4x4(t testing.TB) *csr.Matrix {
	t.Helper()

	return mustCSR(t, 4, 4, []int64{0, 2, 3, 3, 5}, []int64{1, 0, 2, 3, 1}, nil, false)
}

// toSimpleFixture has dense multiplicities
//
//	[[0 0 0] [3 0 2] [1 1 0] [0 0 4]]
func toSimpleFixture(t testing.TB) *csr.Matrix {
	t.Helper()

	return mustCSR(t, 4, 3,
		[]int64{0, 0, 5, 7, 11},
		[]int64{0, 0, 0, 2, 2, 0, 1, 2, 2, 2, 2},
		nil, false)
}

// denseRows returns the multiplicity rows of m.
func denseRows(t testing.TB, m *csr.Matrix) [][]float64 {
	t.Helper()
	d, err := m.ToDense()
	require.NoError(t, err)
	r, _ := d.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = append([]float64(nil), d.RawRowView(i)...)
	}

	return out
}

// entrySet indexes the (row, col, id) triples of m.
func entrySet(t testing.TB, m *csr.Matrix) map[coo.Triple]bool {
	t.Helper()
	c, err := m.ToCOO(false)
	require.NoError(t, err)
	set := make(map[coo.Triple]bool, c.NNZ())
	for _, tr := range c.Triples() {
		set[tr] = true
	}

	return set
}

// requireValid asserts the structural invariants of m.
func requireValid(t testing.TB, m *csr.Matrix) {
	t.Helper()
	ptr := m.Indptr().Values()
	require.Len(t, ptr, int(m.NumRows())+1)
	require.Equal(t, int64(0), ptr[0])
	for i := 1; i < len(ptr); i++ {
		require.LessOrEqual(t, ptr[i-1], ptr[i])
	}
	require.Equal(t, m.NNZ(), ptr[len(ptr)-1])
	if m.HasData() {
		require.Equal(t, int(m.NNZ()), m.Data().Array().Len())
	}
	for _, c := range m.Indices().Values() {
		require.GreaterOrEqual(t, c, int64(0))
		require.Less(t, c, m.NumCols())
	}
}
