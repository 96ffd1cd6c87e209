// SPDX-License-Identifier: MIT

// Package csr: set combinators. Union, block-diagonal union, multi-edge
// collapse and the batch partition/slice inverse of DisjointUnion.
package csr

import (
	"fmt"
	"slices"
)

// checkOperands verifies that ms is non-empty, nil-free and shares one dtype
// and device.
func checkOperands(ms []*Matrix) error {
	if len(ms) == 0 {
		return ErrDimensionMismatch
	}
	for i, m := range ms {
		if m == nil {
			return fmt.Errorf("operand %d: %w", i, ErrNilMatrix)
		}
		if m.DType() != ms[0].DType() {
			return fmt.Errorf("operand %d: %w", i, ErrDtypeMismatch)
		}
		if m.Device() != ms[0].Device() {
			return fmt.Errorf("operand %d: %w", i, ErrDeviceMismatch)
		}
	}

	return nil
}

// Union sums same-shape matrices: row r of the result holds the entries of
// row r of every input, inputs in argument order (parallel edges
// concatenate). When every input is flagged sorted each row is merged stably
// and the result is flagged sorted. The result carries identity data; input
// ids are not preserved.
//
// Errors: ErrDimensionMismatch (no operands or shapes differ), ErrNilMatrix,
// ErrDtypeMismatch, ErrDeviceMismatch, ErrOverflow (total nnz).
// Complexity: O(numRows·len(ms) + nnz) plus per-row sort when merging.
func Union(ms ...*Matrix) (*Matrix, error) {
	if err := checkOperands(ms); err != nil {
		return nil, csrErrorf("Union", err)
	}
	base := ms[0]
	allSorted := true
	var total int64
	for _, m := range ms {
		if m.numRows != base.numRows || m.numCols != base.numCols {
			return nil, csrErrorf("Union", ErrDimensionMismatch)
		}
		allSorted = allSorted && m.sorted
		total += m.NNZ()
	}
	if !base.DType().Fits(total) {
		return nil, csrErrorf("Union", ErrOverflow)
	}

	ptr := make([]int64, base.numRows+1)
	idx := make([]int64, 0, total)
	for r := int64(0); r < base.numRows; r++ {
		start := len(idx)
		for _, m := range ms {
			lo, hi := m.rowRange(r)
			idx = append(idx, m.indices.Values()[lo:hi]...)
		}
		if allSorted {
			slices.Sort(idx[start:])
		}
		ptr[r+1] = int64(len(idx))
	}

	return newTrusted(base.numRows, base.numCols, base.own(ptr), base.own(idx), IdentityData(), allSorted), nil
}

// DisjointUnion stacks matrices block-diagonally: input i's rows and columns
// are offset by the row and column counts of inputs 0..i-1. Entry ids are
// offset by the running nnz, so with identity data everywhere the result also
// carries identity data.
//
// Errors: ErrNilMatrix, ErrDtypeMismatch, ErrDeviceMismatch, ErrOverflow,
// ErrDimensionMismatch (no operands).
// Complexity: O(Σ numRows + nnz).
func DisjointUnion(ms ...*Matrix) (*Matrix, error) {
	if err := checkOperands(ms); err != nil {
		return nil, csrErrorf("DisjointUnion", err)
	}
	dt := ms[0].DType()
	var rows, cols, total int64
	anyData, allSorted := false, true
	for _, m := range ms {
		rows += m.numRows
		cols += m.numCols
		total += m.NNZ()
		anyData = anyData || m.data.Present()
		allSorted = allSorted && m.sorted
	}
	if !dt.Fits(rows) || !dt.Fits(cols) || !dt.Fits(total) {
		return nil, csrErrorf("DisjointUnion", ErrOverflow)
	}

	ptr := make([]int64, 1, rows+1)
	idx := make([]int64, 0, total)
	var data []int64
	if anyData {
		data = make([]int64, 0, total)
	}
	var colOff, nnzOff int64
	for _, m := range ms {
		for _, v := range m.indptr.Values()[1:] {
			ptr = append(ptr, v+nnzOff)
		}
		for _, c := range m.indices.Values() {
			idx = append(idx, c+colOff)
		}
		if anyData {
			ids := m.data.values()
			for p := int64(0); p < m.NNZ(); p++ {
				data = append(data, idAt(ids, p)+nnzOff)
			}
		}
		colOff += m.numCols
		nnzOff += m.NNZ()
	}

	field := IdentityData()
	if anyData {
		field = ExplicitData(ms[0].own(data))
	}

	return newTrusted(rows, cols, ms[0].own(ptr), ms[0].own(idx), field, allSorted), nil
}

// ToSimple collapses parallel edges. It returns the simplified matrix (sorted,
// identity data, one entry per distinct (row, col)), count[i] = multiplicity
// of simplified entry i, and edgeMap[id] = simplified entry of the original
// entry with id id. edgeMap has length nnz, so explicit data must be a
// permutation of [0, nnz); otherwise ErrPreconditionViolated.
// Complexity: O(nnz log maxdeg) (sorting) + O(nnz).
func (m *Matrix) ToSimple() (*Matrix, []int64, []int64, error) {
	if m.data.Present() {
		if err := checkUnique(m.data.values(), m.NNZ()); err != nil {
			return nil, nil, nil, csrErrorf("ToSimple: data is not a permutation", ErrPreconditionViolated)
		}
	}
	s := m.Sort()
	ptr, idx, ids := s.indptr.Values(), s.indices.Values(), s.data.values()

	edgeMap := make([]int64, m.NNZ())
	newPtr := make([]int64, m.numRows+1)
	var newIdx, count []int64
	for r := int64(0); r < m.numRows; r++ {
		for p := ptr[r]; p < ptr[r+1]; p++ {
			if p == ptr[r] || idx[p] != idx[p-1] {
				newIdx = append(newIdx, idx[p])
				count = append(count, 0)
			}
			last := int64(len(count) - 1)
			count[last]++
			edgeMap[idAt(ids, p)] = last
		}
		newPtr[r+1] = int64(len(newIdx))
	}
	if count == nil {
		count = []int64{}
	}

	return newTrusted(m.numRows, m.numCols, m.own(newPtr), m.own(newIdx), IdentityData(), true), count, edgeMap, nil
}

// DisjointPartitionBySizes splits a block-diagonal matrix into batchSize
// components; component i owns rows [srcCumsum[i], srcCumsum[i+1]), columns
// [dstCumsum[i], dstCumsum[i+1]) and entries [edgeCumsum[i], edgeCumsum[i+1]),
// relabeled to local spaces (see SliceContiguousChunk).
//
// Errors: ErrDimensionMismatch when a cumsum array does not have batchSize+1
// values; otherwise those of SliceContiguousChunk.
func (m *Matrix) DisjointPartitionBySizes(batchSize int, edgeCumsum, srcCumsum, dstCumsum []int64) ([]*Matrix, error) {
	if batchSize < 0 || len(edgeCumsum) != batchSize+1 || len(srcCumsum) != batchSize+1 || len(dstCumsum) != batchSize+1 {
		return nil, csrErrorf("DisjointPartitionBySizes", ErrDimensionMismatch)
	}
	out := make([]*Matrix, batchSize)
	for i := range out {
		part, err := m.SliceContiguousChunk(
			[2]int64{edgeCumsum[i], edgeCumsum[i+1]},
			[2]int64{srcCumsum[i], srcCumsum[i+1]},
			[2]int64{dstCumsum[i], dstCumsum[i+1]},
		)
		if err != nil {
			return nil, csrErrorf(fmt.Sprintf("DisjointPartitionBySizes: component %d", i), err)
		}
		out[i] = part
	}

	return out, nil
}

// SliceContiguousChunk extracts rows [src[0], src[1]), columns
// [dst[0], dst[1]) and entries [edge[0], edge[1]); rows and columns are
// relabeled from 0 and explicit ids are shifted down by edge[0].
//
// Errors: ErrOutOfRange for a range outside the matrix; ErrPreconditionViolated
// when the row range does not span exactly the entry range, an entry falls
// outside the column range or an explicit id lies below edge[0].
// Complexity: O(rows + entries in the chunk).
func (m *Matrix) SliceContiguousChunk(edge, src, dst [2]int64) (*Matrix, error) {
	if !inRange(edge, m.NNZ()) || !inRange(src, m.numRows) || !inRange(dst, m.numCols) {
		return nil, csrErrorf("SliceContiguousChunk", ErrOutOfRange)
	}
	ptr := m.indptr.Values()
	if ptr[src[0]] != edge[0] || ptr[src[1]] != edge[1] {
		return nil, csrErrorf("SliceContiguousChunk: row range does not span entry range", ErrPreconditionViolated)
	}

	newPtr := make([]int64, src[1]-src[0]+1)
	for i := range newPtr {
		newPtr[i] = ptr[src[0]+int64(i)] - edge[0]
	}
	width := dst[1] - dst[0]
	newIdx := make([]int64, edge[1]-edge[0])
	for i, c := range m.indices.Values()[edge[0]:edge[1]] {
		if c < dst[0] || c-dst[0] >= width {
			return nil, csrErrorf("SliceContiguousChunk: entry outside column range", ErrPreconditionViolated)
		}
		newIdx[i] = c - dst[0]
	}
	data := IdentityData()
	if m.data.Present() {
		ids := make([]int64, len(newIdx))
		for i, id := range m.data.values()[edge[0]:edge[1]] {
			if id < edge[0] {
				return nil, csrErrorf("SliceContiguousChunk: entry id below chunk start", ErrPreconditionViolated)
			}
			ids[i] = id - edge[0]
		}
		data = ExplicitData(m.own(ids))
	}

	return newTrusted(src[1]-src[0], width, m.own(newPtr), m.own(newIdx), data, m.sorted), nil
}

// inRange reports 0 <= r[0] <= r[1] <= bound.
func inRange(r [2]int64, bound int64) bool {
	return r[0] >= 0 && r[0] <= r[1] && r[1] <= bound
}
