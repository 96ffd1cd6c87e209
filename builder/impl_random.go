// SPDX-License-Identifier: MIT

// impl_random.go - stochastic constructors.
//
// Determinism: trial order is fixed (i asc, then j asc), so a fixed seed gives
// a fixed edge set.

package builder

const (
	methodRandomSparse = "RandomSparse"
	methodRandomFanout = "RandomFanout"
	probMin            = 0.0
	probMax            = 1.0
)

// RandomSparse includes each admissible pair independently with probability p
// (Erdős–Rényi). Undirected builds trial i<j; directed builds trial every
// ordered pair. Self-loops are trialled only under WithSelfLoops.
//
// Errors: ErrInvalidProbability if p ∉ [0,1]; ErrNeedRandSource when 0<p<1
// and no source is configured.
// Complexity: O(n²) trials.
func RandomSparse(p float64) Constructor {
	return func(s *sink, cfg config) error {
		if p < probMin || p > probMax {
			return builderErrorf(methodRandomSparse, ErrInvalidProbability)
		}
		if p == probMin {
			return nil
		}
		if cfg.rng == nil && p < probMax {
			return builderErrorf(methodRandomSparse, ErrNeedRandSource)
		}
		for i := int64(0); i < s.n; i++ {
			j := int64(0)
			if s.undirected {
				j = i
			}
			for ; j < s.n; j++ {
				if i == j && !cfg.loops {
					continue
				}
				if p == probMax || cfg.rng.Float64() < p {
					s.add(i, j)
				}
			}
		}

		return nil
	}
}

// RandomFanout draws k uniform out-neighbours per vertex with replacement, so
// repeated draws become parallel edges. Without WithSelfLoops the vertex itself
// is excluded from its own draws.
//
// Errors: ErrTooFewVertices if k < 0, or if k > 0, n = 1 and loops are off;
// ErrNeedRandSource without a source.
// Complexity: O(n·k).
func RandomFanout(k int) Constructor {
	return func(s *sink, cfg config) error {
		if k < 0 {
			return builderErrorf(methodRandomFanout, ErrTooFewVertices)
		}
		if k == 0 {
			return nil
		}
		if s.n == 1 && !cfg.loops {
			return builderErrorf(methodRandomFanout, ErrTooFewVertices)
		}
		if cfg.rng == nil {
			return builderErrorf(methodRandomFanout, ErrNeedRandSource)
		}
		span := s.n
		if !cfg.loops {
			span--
		}
		for u := int64(0); u < s.n; u++ {
			for range k {
				v := cfg.rng.Int64N(span)
				if !cfg.loops && v >= u {
					v++
				}
				s.add(u, v)
			}
		}

		return nil
	}
}
