// SPDX-License-Identifier: MIT

// impl_path.go - Path and Cycle.
//
// Emission order: i asc, edge i→i+1; Cycle appends n-1→0.

package builder

const (
	methodPath    = "Path"
	methodCycle   = "Cycle"
	minPathNodes  = 2
	minCycleNodes = 3
)

// Path emits 0→1→…→n-1.
// Errors: ErrTooFewVertices if n < 2.
// Complexity: O(n).
func Path() Constructor {
	return func(s *sink, _ config) error {
		if s.n < minPathNodes {
			return builderErrorf(methodPath, ErrTooFewVertices)
		}
		for i := int64(0); i+1 < s.n; i++ {
			s.add(i, i+1)
		}

		return nil
	}
}

// Cycle emits the path plus the closing edge n-1→0.
// Errors: ErrTooFewVertices if n < 3.
// Complexity: O(n).
func Cycle() Constructor {
	return func(s *sink, _ config) error {
		if s.n < minCycleNodes {
			return builderErrorf(methodCycle, ErrTooFewVertices)
		}
		for i := int64(0); i < s.n; i++ {
			s.add(i, (i+1)%s.n)
		}

		return nil
	}
}
