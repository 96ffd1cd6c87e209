// SPDX-License-Identifier: MIT

package csr_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/csrkit/coo"
	"github.com/katalvlaran/csrkit/csr"
)

func seeded(a, b uint64) rand.Source { return rand.NewPCG(a, b) }

// requirePicksFrom asserts every pick is an entry of m.
func requirePicksFrom(t *testing.T, m *csr.Matrix, c *coo.Matrix) {
	t.Helper()
	set := entrySet(t, m)
	for _, tr := range c.Triples() {
		require.True(t, set[tr], "pick %+v is not an entry", tr)
	}
	require.Equal(t, m.NumRows(), c.NumRows())
	require.Equal(t, m.NumCols(), c.NumCols())
}

func rowCounts(c *coo.Matrix) map[int64]int {
	out := map[int64]int{}
	for _, r := range c.Rows().Values() {
		out[r]++
	}

	return out
}

func TestRowWiseSampling_Uniform(t *testing.T) {
	t.Parallel()

	m := sample4x4(t)
	tests := []struct {
		name    string
		rows    []int64
		k       int
		replace bool
		want    map[int64]int
	}{
		{"replace exact k", []int64{0, 1, 3}, 3, true, map[int64]int{0: 3, 1: 3, 3: 3}},
		{"replace empty row", []int64{2}, 3, true, map[int64]int{}},
		{"no replace k=1", []int64{0, 1, 3}, 1, false, map[int64]int{0: 1, 1: 1, 3: 1}},
		{"no replace short rows", []int64{0, 1, 2, 3}, 5, false, map[int64]int{0: 2, 1: 1, 3: 2}},
		{"all entries", []int64{0, 3}, -1, false, map[int64]int{0: 2, 3: 2}},
		{"k zero", []int64{0, 3}, 0, true, map[int64]int{}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c, err := m.RowWiseSampling(tc.rows, tc.k, nil, tc.replace, seeded(1, 2))
			require.NoError(t, err)
			requirePicksFrom(t, m, c)
			require.Equal(t, tc.want, rowCounts(c))
			if !tc.replace {
				seen := map[int64]bool{}
				for _, id := range c.Data().Values() {
					require.False(t, seen[id], "id %d picked twice", id)
					seen[id] = true
				}
			}
		})
	}
}

func TestRowWiseSampling_Weighted(t *testing.T) {
	t.Parallel()

	m := sample4x4(t)
	prob := []float64{0, 1, 0, 1, 0}

	c, err := m.RowWiseSampling([]int64{0, 1, 3}, 2, prob, false, seeded(3, 4))
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{1, 3}, c.Data().Values())

	c, err = m.RowWiseSampling([]int64{0, 1, 3}, 4, prob, true, seeded(3, 4))
	require.NoError(t, err)
	require.Equal(t, map[int64]int{0: 4, 3: 4}, rowCounts(c))
	for _, id := range c.Data().Values() {
		require.Contains(t, []int64{1, 3}, id)
	}

	_, err = m.RowWiseSampling([]int64{0}, 1, prob[:3], false, nil)
	require.ErrorIs(t, err, csr.ErrDimensionMismatch)
	_, err = m.RowWiseSampling([]int64{0}, 1, []float64{0, -1, 0, 0, 0}, false, nil)
	require.ErrorIs(t, err, csr.ErrPreconditionViolated)
	_, err = m.RowWiseSampling([]int64{4}, 1, nil, false, nil)
	require.ErrorIs(t, err, csr.ErrOutOfRange)
}

// bandMatrix has row r holding r%7 entries at columns (3r+j)%20.
func bandMatrix(t *testing.T, numRows int64) *csr.Matrix {
	t.Helper()
	indptr := []int64{0}
	var indices []int64
	for r := int64(0); r < numRows; r++ {
		for j := int64(0); j < r%7; j++ {
			indices = append(indices, (3*r+j)%20)
		}
		indptr = append(indptr, int64(len(indices)))
	}

	return mustCSR(t, numRows, 20, indptr, indices, nil, false)
}

func TestRowWiseSampling_WorkerIndependent(t *testing.T) {
	t.Parallel()

	m := bandMatrix(t, 200)
	rows := make([]int64, m.NumRows())
	for i := range rows {
		rows[i] = int64(i)
	}

	run := func(workers int) []coo.Triple {
		c, err := m.RowWiseSampling(rows, 3, nil, false, seeded(7, 9), csr.WithWorkers(workers), csr.WithBlockRows(16))
		require.NoError(t, err)
		requirePicksFrom(t, m, c)

		return c.Triples()
	}
	serial := run(1)
	require.Equal(t, serial, run(4))
	require.Equal(t, serial, run(0))
	require.Equal(t, serial, run(32))
}

func TestSampleOptions_Panic(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { csr.WithWorkers(-1) })
	require.Panics(t, func() { csr.WithBlockRows(0) })
}

func TestRowWisePerEtypeSampling(t *testing.T) {
	t.Parallel()

	m := sample4x4(t)
	etypes := []int64{0, 1, 0, 1, 1}

	for _, sorted := range []bool{false, true} {
		c, err := m.RowWisePerEtypeSampling([]int64{0, 1, 3}, etypes, []int{1, 1}, nil, false, sorted, seeded(5, 6))
		require.NoError(t, err)
		requirePicksFrom(t, m, c)
		require.Equal(t, map[int64]int{0: 2, 1: 1, 3: 1}, rowCounts(c))
		require.Subset(t, c.Data().Values(), []int64{0, 1, 2})
	}

	c, err := m.RowWisePerEtypeSampling([]int64{3}, etypes, []int{0, 3}, nil, true, false, seeded(5, 6))
	require.NoError(t, err)
	require.Equal(t, map[int64]int{3: 3}, rowCounts(c))

	_, err = m.RowWisePerEtypeSampling([]int64{0}, []int64{1, 0, 0, 1, 1}, []int{1, 1}, nil, false, true, nil)
	require.ErrorIs(t, err, csr.ErrPreconditionViolated)
	_, err = m.RowWisePerEtypeSampling([]int64{0}, []int64{0, 2, 0, 1, 1}, []int{1, 1}, nil, false, false, nil)
	require.ErrorIs(t, err, csr.ErrOutOfRange)
	_, err = m.RowWisePerEtypeSampling([]int64{0}, []int64{0, 1}, []int{1, 1}, nil, false, false, nil)
	require.ErrorIs(t, err, csr.ErrDimensionMismatch)
}

func TestRowWiseTopk(t *testing.T) {
	t.Parallel()

	m := sample4x4(t)
	weight := []float64{0.5, 0.9, 0.1, 0.3, 0.3}

	c, err := m.RowWiseTopk([]int64{0, 3}, 1, weight, false)
	require.NoError(t, err)
	require.Equal(t, []coo.Triple{{Row: 0, Col: 0, Data: 1}, {Row: 3, Col: 3, Data: 3}}, c.Triples())

	c, err = m.RowWiseTopk([]int64{0, 3}, 1, weight, true)
	require.NoError(t, err)
	require.Equal(t, []coo.Triple{{Row: 0, Col: 1, Data: 0}, {Row: 3, Col: 3, Data: 3}}, c.Triples())

	c, err = m.RowWiseTopk([]int64{0, 2}, -1, weight, true)
	require.NoError(t, err)
	require.Equal(t, []int64{0, 1}, c.Data().Values())

	c, err = m.RowWiseTopk([]int64{1}, 5, weight, false)
	require.NoError(t, err)
	require.Equal(t, []int64{2}, c.Data().Values())

	_, err = m.RowWiseTopk([]int64{0}, 1, weight[:4], false)
	require.ErrorIs(t, err, csr.ErrDimensionMismatch)
}

// tagSorted returns the SortByTag fixture: two rows over five columns with
// column tags [1 1 0 2 0].
func tagSorted(t *testing.T) (*csr.Matrix, *csr.TagOffsets) {
	t.Helper()
	m := mustCSR(t, 2, 5, []int64{0, 5, 8}, []int64{0, 1, 2, 3, 4, 0, 1, 2}, nil, true)
	s, off, err := m.SortByTag([]int64{1, 1, 0, 2, 0}, 3)
	require.NoError(t, err)

	return s, off
}

func TestRowWiseSamplingBiased(t *testing.T) {
	t.Parallel()

	m, off := tagSorted(t)
	bias := []float64{0, 1, 1}

	c, err := m.RowWiseSamplingBiased([]int64{0, 1}, 2, off, bias, false, seeded(11, 12))
	require.NoError(t, err)
	requirePicksFrom(t, m, c)
	require.Equal(t, map[int64]int{0: 2, 1: 2}, rowCounts(c))
	seen := map[int64]bool{}
	for _, tr := range c.Triples() {
		require.NotContains(t, []int64{2, 4}, tr.Col, "bias 0 tag picked")
		require.False(t, seen[tr.Data])
		seen[tr.Data] = true
	}

	c, err = m.RowWiseSamplingBiased([]int64{0}, 5, off, bias, true, seeded(11, 12))
	require.NoError(t, err)
	require.Equal(t, 5, c.NNZ())
	for _, col := range c.Cols().Values() {
		require.NotContains(t, []int64{2, 4}, col)
	}

	c, err = m.RowWiseSamplingBiased([]int64{0, 1}, -1, off, bias, false, nil)
	require.NoError(t, err)
	require.Equal(t, map[int64]int{0: 3, 1: 2}, rowCounts(c))

	c, err = m.RowWiseSamplingBiased([]int64{0}, 3, off, []float64{0, 0, 0}, true, nil)
	require.NoError(t, err)
	require.Zero(t, c.NNZ())
}

func TestRowWiseSamplingBiased_Errors(t *testing.T) {
	t.Parallel()

	m, off := tagSorted(t)
	_, err := m.RowWiseSamplingBiased([]int64{0}, 1, off, []float64{1, 1}, false, nil)
	require.ErrorIs(t, err, csr.ErrDimensionMismatch)
	_, err = m.RowWiseSamplingBiased([]int64{0}, 1, nil, []float64{1, 1, 1}, false, nil)
	require.ErrorIs(t, err, csr.ErrDimensionMismatch)
	_, err = m.RowWiseSamplingBiased([]int64{0}, 1, off, []float64{1, -1, 1}, false, nil)
	require.ErrorIs(t, err, csr.ErrPreconditionViolated)

	stale, err := csr.NewTagOffsets(2, 3, []int64{0, 2, 4, 4, 0, 1, 3, 3})
	require.NoError(t, err)
	_, err = m.RowWiseSamplingBiased([]int64{0}, 1, stale, []float64{1, 1, 1}, false, nil)
	require.ErrorIs(t, err, csr.ErrPreconditionViolated)
	// row 1 of the stale table is consistent
	_, err = m.RowWiseSamplingBiased([]int64{1}, 1, stale, []float64{1, 1, 1}, false, nil)
	require.NoError(t, err)
}

func TestGlobalUniformNegativeSampling(t *testing.T) {
	t.Parallel()

	for _, m := range []*csr.Matrix{sample4x4(t), sample4x4(t).Sort()} {
		entries := map[[2]int64]bool{}
		c, err := m.ToCOO(false)
		require.NoError(t, err)
		for _, tr := range c.Triples() {
			entries[[2]int64{tr.Row, tr.Col}] = true
		}

		rows, cols, err := m.GlobalUniformNegativeSampling(100, 20, true, false, csr.DefaultRedundancy, seeded(21, 22))
		require.NoError(t, err)
		require.Len(t, cols, len(rows))
		// 16 cells - 5 entries - 2 free diagonal cells
		require.LessOrEqual(t, len(rows), 9)
		seen := map[[2]int64]bool{}
		for i := range rows {
			p := [2]int64{rows[i], cols[i]}
			require.NotEqual(t, p[0], p[1], "self loop")
			require.False(t, entries[p], "existing entry %v", p)
			require.False(t, seen[p], "duplicate %v", p)
			seen[p] = true
		}

		rows, _, err = m.GlobalUniformNegativeSampling(6, 5, false, true, 1, seeded(1, 1))
		require.NoError(t, err)
		require.LessOrEqual(t, len(rows), 6)
	}
}

func TestGlobalUniformNegativeSampling_EdgeCases(t *testing.T) {
	t.Parallel()

	full := mustCSR(t, 2, 2, []int64{0, 2, 4}, []int64{0, 1, 0, 1}, nil, true)
	rows, cols, err := full.GlobalUniformNegativeSampling(3, 4, false, false, 0.5, nil)
	require.NoError(t, err)
	require.Empty(t, rows)
	require.Empty(t, cols)

	empty := mustCSR(t, 0, 0, []int64{0}, nil, nil, false)
	rows, _, err = empty.GlobalUniformNegativeSampling(3, 4, false, false, 0.5, nil)
	require.NoError(t, err)
	require.Empty(t, rows)

	rows, _, err = sample4x4(t).GlobalUniformNegativeSampling(3, 0, false, false, 0.5, nil)
	require.NoError(t, err)
	require.Empty(t, rows)

	_, _, err = full.GlobalUniformNegativeSampling(-1, 4, false, false, 0.5, nil)
	require.ErrorIs(t, err, csr.ErrPreconditionViolated)
	_, _, err = full.GlobalUniformNegativeSampling(1, 4, false, false, -0.5, nil)
	require.ErrorIs(t, err, csr.ErrPreconditionViolated)
}
