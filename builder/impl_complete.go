// SPDX-License-Identifier: MIT

package builder

const methodComplete = "Complete"

// Complete emits every pair without self-loops. Undirected builds emit i<j and
// rely on mirroring; directed builds emit every ordered pair i≠j.
// Complexity: O(n²).
func Complete() Constructor {
	return func(s *sink, _ config) error {
		for i := int64(0); i < s.n; i++ {
			j := int64(0)
			if s.undirected {
				j = i + 1
			}
			for ; j < s.n; j++ {
				if i != j {
					s.add(i, j)
				}
			}
		}

		return nil
	}
}
