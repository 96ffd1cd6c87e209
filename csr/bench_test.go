// SPDX-License-Identifier: MIT

// Benchmarks for the sampling engine and structural transforms on a
// deterministic random multigraph from the builder package.
package csr_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/csrkit/builder"
	"github.com/katalvlaran/csrkit/coo"
	"github.com/katalvlaran/csrkit/csr"
)

var benchRows = []int64{1 << 10, 1 << 14}

// sinks to defeat dead-code elimination
var (
	sinkCOO *coo.Matrix
	sinkCSR *csr.Matrix
)

// randomGraph builds numRows rows of out-degree 16 over numRows columns.
func randomGraph(b *testing.B, numRows int64) *csr.Matrix {
	b.Helper()
	m, err := builder.Build(numRows,
		[]builder.Option{builder.WithSeed(uint64(1337 + numRows)), builder.WithSelfLoops(true)},
		builder.RandomFanout(16))
	if err != nil {
		b.Fatal(err)
	}

	return m
}

// shuffledColumns relabels the columns of m by a seeded permutation, leaving
// rows unsorted.
func shuffledColumns(b *testing.B, m *csr.Matrix) *csr.Matrix {
	b.Helper()
	rowIDs := make([]int64, m.NumRows())
	for i := range rowIDs {
		rowIDs[i] = int64(i)
	}
	colIDs := make([]int64, m.NumCols())
	for i := range colIDs {
		colIDs[i] = int64(i)
	}
	rng := rand.New(rand.NewPCG(7, 7))
	rng.Shuffle(len(colIDs), func(i, j int) { colIDs[i], colIDs[j] = colIDs[j], colIDs[i] })
	out, err := m.Reorder(rowIDs, colIDs)
	if err != nil {
		b.Fatal(err)
	}

	return out
}

func BenchmarkRowWiseSampling(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchRows {
		b.Run(fmt.Sprintf("rows=%d", n), func(b *testing.B) {
			m := randomGraph(b, n)
			rows := make([]int64, n)
			for i := range rows {
				rows[i] = int64(i)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				c, err := m.RowWiseSampling(rows, 5, nil, false, rand.NewPCG(1, uint64(i)))
				if err != nil {
					b.Fatal(err)
				}
				sinkCOO = c
			}
		})
	}
}

func BenchmarkTranspose(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchRows {
		b.Run(fmt.Sprintf("rows=%d", n), func(b *testing.B) {
			m := randomGraph(b, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sinkCSR = m.Transpose()
			}
		})
	}
}

func BenchmarkSort(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchRows {
		b.Run(fmt.Sprintf("rows=%d", n), func(b *testing.B) {
			m := shuffledColumns(b, randomGraph(b, n))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sinkCSR = m.Sort()
			}
		})
	}
}
