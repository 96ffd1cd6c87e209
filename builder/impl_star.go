// SPDX-License-Identifier: MIT

package builder

import "github.com/katalvlaran/csrkit/csr"

const (
	methodStar   = "Star"
	minStarNodes = 2
)

// Star emits center→v for every other vertex v, in ascending v.
// Errors: ErrTooFewVertices if n < 2; csr.ErrOutOfRange if center ∉ [0,n).
// Complexity: O(n).
func Star(center int64) Constructor {
	return func(s *sink, _ config) error {
		if s.n < minStarNodes {
			return builderErrorf(methodStar, ErrTooFewVertices)
		}
		if center < 0 || center >= s.n {
			return builderErrorf(methodStar, csr.ErrOutOfRange)
		}
		for v := int64(0); v < s.n; v++ {
			if v != center {
				s.add(center, v)
			}
		}

		return nil
	}
}
