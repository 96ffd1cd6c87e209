// SPDX-License-Identifier: MIT

// Package csr: Tag Partitioner.
package csr

import "slices"

// SortByTag regroups every row so that entries whose column carries the same
// tag are contiguous, tags ascending; entries keep their relative order inside
// a tag bucket and ids travel with them. tags[c] is the tag of column c.
//
// The returned TagOffsets holds, for each row, the numTags+1 bucket boundaries
// relative to the row start; the last boundary equals the row degree. The
// result is flagged unsorted.
//
// Errors: ErrDimensionMismatch if len(tags) != NumCols(); ErrOutOfRange for a
// negative tag; ErrPreconditionViolated if numTags != max(tags)+1.
// Complexity: O(nnz + numRows·numTags).
func (m *Matrix) SortByTag(tags []int64, numTags int64) (*Matrix, *TagOffsets, error) {
	if int64(len(tags)) != m.numCols {
		return nil, nil, csrErrorf("SortByTag", ErrDimensionMismatch)
	}
	if slices.ContainsFunc(tags, func(t int64) bool { return t < 0 }) {
		return nil, nil, csrErrorf("SortByTag", ErrOutOfRange)
	}
	if numTags < 0 || (len(tags) > 0 && slices.Max(tags)+1 != numTags) {
		return nil, nil, csrErrorf("SortByTag", ErrPreconditionViolated)
	}

	ptr, idx, ids := m.indptr.Values(), m.indices.Values(), m.data.values()
	w := numTags + 1
	table := make([]int64, m.numRows*w)
	outIdx := make([]int64, m.NNZ())
	outData := make([]int64, m.NNZ())

	// rows own disjoint windows of every output
	_ = runBlocks(DefaultWorkers, blockCount(m.numRows, DefaultBlockRows), func(b int) error {
		lo, hi := blockBounds(b, m.numRows, DefaultBlockRows)
		for r := lo; r < hi; r++ {
			off := table[r*w : (r+1)*w]
			for p := ptr[r]; p < ptr[r+1]; p++ {
				off[tags[idx[p]]+1]++
			}
			for t := int64(0); t < numTags; t++ {
				off[t+1] += off[t]
			}
			cursor := slices.Clone(off[:numTags])
			for p := ptr[r]; p < ptr[r+1]; p++ {
				t := tags[idx[p]]
				q := ptr[r] + cursor[t]
				cursor[t]++
				outIdx[q] = idx[p]
				outData[q] = idAt(ids, p)
			}
		}

		return nil
	})

	out := newTrusted(m.numRows, m.numCols, m.indptr, m.own(outIdx), ExplicitData(m.own(outData)), false)

	return out, &TagOffsets{numRows: m.numRows, numTags: numTags, vals: table}, nil
}
