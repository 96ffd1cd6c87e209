// SPDX-License-Identifier: MIT

// Package csr: Sampling Engine.
//
// Every row-wise sampler shares one engine (sampleRows):
//   - the requested rows are split into fixed blocks of WithBlockRows rows;
//   - one seed per block is drawn from the caller's source, in block order,
//     before any goroutine starts;
//   - blocks run through runBlocks (errgroup, bounded by WithWorkers) and
//     write only their own pick buffers;
//   - buffers are concatenated in block order.
//
// Results therefore depend on the source state and block size, never on the
// worker count. Per-entry arrays (prob, etypes, weight) are indexed by entry
// id, i.e. by Data().ID(pos), which is the storage position when data is the
// identity. Picks are returned as a COO matrix of m's shape whose data holds
// the picked entry ids.
package csr

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/tidwall/btree"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/katalvlaran/csrkit/coo"
)

// picks accumulates one block's output.
type picks struct {
	rows, cols, ids []int64
}

// rowKernel selects positions within row r (storage range [lo, hi)) and
// reports each through emit.
type rowKernel func(rng *rand.Rand, r, lo, hi int64, emit func(pos int64)) error

// sampleRows runs kernel over rows and assembles the COO result.
func (m *Matrix) sampleRows(tag string, rows []int64, src rand.Source, cfg sampleConfig, kernel rowKernel) (*coo.Matrix, error) {
	if err := checkIDs(rows, m.numRows); err != nil {
		return nil, csrErrorf(tag, err)
	}
	n := int64(len(rows))
	blocks := blockCount(n, cfg.blockRows)
	seeds := blockSeeds(src, blocks)
	out := make([]picks, blocks)
	ptr, idx, ids := m.indptr.Values(), m.indices.Values(), m.data.values()

	err := runBlocks(cfg.workers, blocks, func(b int) error {
		rng := blockRNG(seeds[b], b)
		lo, hi := blockBounds(b, n, cfg.blockRows)
		buf := &out[b]
		for i := lo; i < hi; i++ {
			r := rows[i]
			emit := func(pos int64) {
				buf.rows = append(buf.rows, r)
				buf.cols = append(buf.cols, idx[pos])
				buf.ids = append(buf.ids, idAt(ids, pos))
			}
			if err := kernel(rng, r, ptr[r], ptr[r+1], emit); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, csrErrorf(tag, err)
	}

	var all picks
	for _, p := range out {
		all.rows = append(all.rows, p.rows...)
		all.cols = append(all.cols, p.cols...)
		all.ids = append(all.ids, p.ids...)
	}
	c, err := coo.New(m.numRows, m.numCols, m.own(all.rows), m.own(all.cols), coo.WithData(m.own(all.ids)))
	if err != nil {
		return nil, csrErrorf(tag, err)
	}

	return c, nil
}

// checkWeights validates a per-entry weight array: one value per entry id,
// no NaN, no negative value.
func (m *Matrix) checkWeights(w []float64) error {
	if int64(len(w)) < m.idBound() {
		return ErrDimensionMismatch
	}
	if len(w) > 0 && (floats.HasNaN(w) || floats.Min(w) < 0) {
		return ErrPreconditionViolated
	}

	return nil
}

// idBound returns one past the largest entry id (nnz for identity data).
func (m *Matrix) idBound() int64 {
	if !m.data.Present() {
		return m.NNZ()
	}
	var hi int64
	for _, id := range m.data.values() {
		hi = max(hi, id+1)
	}

	return hi
}

// pickFrom draws k positions from cand (k < 0 ⇒ all of them).
// weights, when non-nil, is aligned with cand.
func pickFrom(rng *rand.Rand, cand []int64, weights []float64, k int, replace bool, emit func(pos int64)) {
	if weights != nil && !replace {
		// zero-probability entries are never eligible
		kept, kw := cand[:0:0], weights[:0:0]
		for i, w := range weights {
			if w > 0 {
				kept = append(kept, cand[i])
				kw = append(kw, w)
			}
		}
		cand, weights = kept, kw
	}
	if k < 0 || (!replace && len(cand) <= k) {
		for _, p := range cand {
			emit(p)
		}

		return
	}
	if len(cand) == 0 || k == 0 {
		return
	}

	switch {
	case weights == nil && replace:
		for range k {
			emit(cand[rng.IntN(len(cand))])
		}
	case weights == nil:
		sel := make([]int, k)
		sampleuv.WithoutReplacement(sel, len(cand), rng)
		slices.Sort(sel)
		for _, i := range sel {
			emit(cand[i])
		}
	case replace:
		if floats.Sum(weights) <= 0 {
			return
		}
		ws := sampleuv.NewWeighted(weights, rng)
		for range k {
			i, _ := ws.Take()
			ws.Reweight(i, weights[i])
			emit(cand[i])
		}
	default:
		ws := sampleuv.NewWeighted(weights, rng)
		for range k {
			i, ok := ws.Take()
			if !ok {
				return
			}
			emit(cand[i])
		}
	}
}

// positions returns [lo, hi) as an explicit slice.
func positions(lo, hi int64) []int64 {
	out := make([]int64, hi-lo)
	for i := range out {
		out[i] = lo + int64(i)
	}

	return out
}

// weightsOf gathers prob[id(pos)] for every candidate position; nil prob ⇒ nil.
func (m *Matrix) weightsOf(prob []float64, cand []int64) []float64 {
	if prob == nil {
		return nil
	}
	ids := m.data.values()
	w := make([]float64, len(cand))
	for i, p := range cand {
		w[i] = prob[idAt(ids, p)]
	}

	return w
}

// RowWiseSampling picks k entries from each listed row (k < 0 ⇒ every entry).
//
// prob == nil samples uniformly; otherwise prob[id] weights the entry with id
// id. With replace every non-empty row yields exactly k picks (none when all
// its weights are zero). Without replace a row with fewer than k eligible
// entries yields all of them; zero-weight entries are never picked.
//
// Errors: ErrOutOfRange (rows), ErrDimensionMismatch (short prob),
// ErrPreconditionViolated (NaN or negative prob).
// Complexity: O(Σ deg(r) · log deg(r)) for weighted draws.
func (m *Matrix) RowWiseSampling(rows []int64, k int, prob []float64, replace bool, src rand.Source, opts ...SampleOption) (*coo.Matrix, error) {
	if prob != nil {
		if err := m.checkWeights(prob); err != nil {
			return nil, csrErrorf("RowWiseSampling: prob", err)
		}
	}

	return m.sampleRows("RowWiseSampling", rows, src, gatherSample(opts),
		func(rng *rand.Rand, _, lo, hi int64, emit func(int64)) error {
			cand := positions(lo, hi)
			pickFrom(rng, cand, m.weightsOf(prob, cand), k, replace, emit)

			return nil
		})
}

// RowWisePerEtypeSampling draws kPerType[t] entries of each edge type t from
// every listed row, types visited in ascending order. etypes[id] is the type
// of the entry with id id. When etypeSorted is set, each row must already
// store its entries grouped by non-decreasing type (see SortByTag); otherwise
// entries are bucketed internally with a stable pass.
//
// Errors: ErrOutOfRange (rows, or a type outside [0, len(kPerType))),
// ErrDimensionMismatch (short etypes/prob), ErrPreconditionViolated (NaN or
// negative prob, or types decreasing within a row while etypeSorted is set).
func (m *Matrix) RowWisePerEtypeSampling(rows, etypes []int64, kPerType []int, prob []float64, replace, etypeSorted bool, src rand.Source, opts ...SampleOption) (*coo.Matrix, error) {
	bound := m.idBound()
	if int64(len(etypes)) < bound {
		return nil, csrErrorf("RowWisePerEtypeSampling: etypes", ErrDimensionMismatch)
	}
	if err := checkIDs(etypes[:bound], int64(len(kPerType))); err != nil {
		return nil, csrErrorf("RowWisePerEtypeSampling: etypes", err)
	}
	if prob != nil {
		if err := m.checkWeights(prob); err != nil {
			return nil, csrErrorf("RowWisePerEtypeSampling: prob", err)
		}
	}
	ids := m.data.values()
	numTypes := len(kPerType)

	return m.sampleRows("RowWisePerEtypeSampling", rows, src, gatherSample(opts),
		func(rng *rand.Rand, _, lo, hi int64, emit func(int64)) error {
			buckets := make([][]int64, numTypes)
			prev := int64(-1)
			for p := lo; p < hi; p++ {
				t := etypes[idAt(ids, p)]
				if etypeSorted && t < prev {
					return ErrPreconditionViolated
				}
				prev = t
				buckets[t] = append(buckets[t], p)
			}
			for t, cand := range buckets {
				pickFrom(rng, cand, m.weightsOf(prob, cand), kPerType[t], replace, emit)
			}

			return nil
		})
}

// RowWiseTopk keeps, per listed row, the k entries with the largest weight
// (smallest when ascending); ties keep storage order, k < 0 keeps every entry.
// weight[id] is the weight of the entry with id id.
//
// Errors: ErrOutOfRange (rows), ErrDimensionMismatch (short weight).
// Complexity: O(Σ deg(r) · log deg(r)).
func (m *Matrix) RowWiseTopk(rows []int64, k int, weight []float64, ascending bool, opts ...SampleOption) (*coo.Matrix, error) {
	if int64(len(weight)) < m.idBound() {
		return nil, csrErrorf("RowWiseTopk: weight", ErrDimensionMismatch)
	}
	ids := m.data.values()
	order := func(a, b int64) int {
		c := cmp.Compare(weight[idAt(ids, a)], weight[idAt(ids, b)])
		if ascending {
			return c
		}

		return -c
	}

	// top-k is deterministic; the default stream only feeds the block seeds
	return m.sampleRows("RowWiseTopk", rows, nil, gatherSample(opts),
		func(_ *rand.Rand, _, lo, hi int64, emit func(int64)) error {
			cand := positions(lo, hi)
			slices.SortStableFunc(cand, order)
			if k >= 0 && len(cand) > k {
				cand = cand[:k]
			}
			for _, p := range cand {
				emit(p)
			}

			return nil
		})
}

// RowWiseSamplingBiased samples a tag-sorted matrix (see SortByTag). For each
// listed row a tag bucket is chosen with weight bias[t] · |remaining bucket|
// and one entry is drawn uniformly inside it; a tag with bias 0 is never
// chosen. k < 0 takes every entry of every positively biased bucket.
//
// Errors: ErrOutOfRange (rows), ErrDimensionMismatch (offsets row count or
// len(bias) ≠ NumTags), ErrPreconditionViolated (NaN or negative bias, or a
// sampled row whose offsets do not start at 0, decrease, or end at its degree).
func (m *Matrix) RowWiseSamplingBiased(rows []int64, k int, offsets *TagOffsets, bias []float64, replace bool, src rand.Source, opts ...SampleOption) (*coo.Matrix, error) {
	if offsets == nil || offsets.NumRows() != m.numRows || int64(len(bias)) != offsets.NumTags() {
		return nil, csrErrorf("RowWiseSamplingBiased", ErrDimensionMismatch)
	}
	if len(bias) > 0 && (floats.HasNaN(bias) || floats.Min(bias) < 0) {
		return nil, csrErrorf("RowWiseSamplingBiased: bias", ErrPreconditionViolated)
	}
	numTags := len(bias)

	return m.sampleRows("RowWiseSamplingBiased", rows, src, gatherSample(opts),
		func(rng *rand.Rand, r, lo, hi int64, emit func(int64)) error {
			off := offsets.Row(r)
			if off[0] != 0 || off[numTags] != hi-lo {
				return ErrPreconditionViolated
			}
			size := make([]float64, numTags)
			for t := range numTags {
				if off[t+1] < off[t] {
					return ErrPreconditionViolated
				}
				size[t] = float64(off[t+1] - off[t])
			}
			w := make([]float64, numTags)
			floats.MulTo(w, bias, size)
			if floats.Sum(w) <= 0 {
				return nil
			}

			if k < 0 || (!replace && eligible(bias, size) <= k) {
				for t := range numTags {
					if bias[t] > 0 {
						for p := lo + off[t]; p < lo+off[t+1]; p++ {
							emit(p)
						}
					}
				}

				return nil
			}

			ws := sampleuv.NewWeighted(w, rng)
			if replace {
				for range k {
					t, _ := ws.Take()
					ws.Reweight(t, w[t])
					emit(lo + off[t] + rng.Int64N(off[t+1]-off[t]))
				}

				return nil
			}

			// partial Fisher–Yates inside each bucket: the first taken[t]
			// slots of pool[t] hold the picks so far
			pool := make([][]int64, numTags)
			taken := make([]int64, numTags)
			for range k {
				t, ok := ws.Take()
				if !ok {
					return nil
				}
				if pool[t] == nil {
					pool[t] = positions(lo+off[t], lo+off[t+1])
				}
				b, j := pool[t], taken[t]
				s := j + rng.Int64N(int64(len(b))-j)
				b[j], b[s] = b[s], b[j]
				taken[t]++
				emit(b[j])
				ws.Reweight(t, bias[t]*float64(int64(len(b))-taken[t]))
			}

			return nil
		})
}

// eligible counts the entries of positively biased buckets.
func eligible(bias, size []float64) int {
	var n float64
	for t, b := range bias {
		if b > 0 {
			n += size[t]
		}
	}

	return int(n)
}

// cell is one (row, col) coordinate in the negative sampler's ordered set.
type cell struct{ row, col int64 }

func cellLess(a, b cell) bool {
	if a.row != b.row {
		return a.row < b.row
	}

	return a.col < b.col
}

// GlobalUniformNegativeSampling draws (row, col) pairs uniformly over the
// dense shape and rejects pairs stored in m (and, with excludeSelfLoops, pairs
// with row == col). Sampling runs in at most numTrials rounds; each round draws
// ceil(missing · (1 + redundancy)) candidates. Without replace the result has
// no repeated pair. Fewer than numSamples pairs is a normal outcome.
//
// Membership is answered by binary search when IsSorted() confirms row order,
// by a linear scan otherwise.
//
// Errors: ErrPreconditionViolated for negative numSamples, numTrials or
// redundancy.
func (m *Matrix) GlobalUniformNegativeSampling(numSamples, numTrials int, excludeSelfLoops, replace bool, redundancy float64, src rand.Source) (rows, cols []int64, err error) {
	if numSamples < 0 || numTrials < 0 || redundancy < 0 || math.IsNaN(redundancy) {
		return nil, nil, csrErrorf("GlobalUniformNegativeSampling", ErrPreconditionViolated)
	}
	rows, cols = make([]int64, 0, numSamples), make([]int64, 0, numSamples)
	if m.numRows == 0 || m.numCols == 0 {
		return rows, cols, nil
	}

	rng := rand.New(sourceOrDefault(src))
	s := m.newSearcher(queryConfig{})
	s.binary = m.IsSorted()
	seen := btree.NewBTreeG[cell](cellLess)

	for trial := 0; trial < numTrials && len(rows) < numSamples; trial++ {
		draws := int(math.Ceil(float64(numSamples-len(rows)) * (1 + redundancy)))
		for range draws {
			r, c := rng.Int64N(m.numRows), rng.Int64N(m.numCols)
			if excludeSelfLoops && r == c {
				continue
			}
			if s.first(r, c) >= 0 {
				continue
			}
			if !replace {
				if _, dup := seen.Get(cell{r, c}); dup {
					continue
				}
				seen.Set(cell{r, c})
			}
			rows, cols = append(rows, r), append(cols, c)
			if len(rows) == numSamples {
				break
			}
		}
	}

	return rows, cols, nil
}
