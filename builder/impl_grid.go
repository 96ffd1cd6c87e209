// SPDX-License-Identifier: MIT

// impl_grid.go - rows×cols orthogonal lattice.
//
// Vertex (r,c) has id r·cols + c. For each cell in row-major order the right
// neighbour is emitted before the bottom one.

package builder

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid emits the 4-neighbour lattice edges (r,c)→(r,c+1) and (r,c)→(r+1,c).
// Errors: ErrTooFewVertices if a side is < 1; ErrSizeMismatch if rows·cols ≠ n.
// Complexity: O(rows·cols).
func Grid(rows, cols int64) Constructor {
	return func(s *sink, _ config) error {
		if rows < minGridDim || cols < minGridDim {
			return builderErrorf(methodGrid, ErrTooFewVertices)
		}
		if rows*cols != s.n {
			return builderErrorf(methodGrid, ErrSizeMismatch)
		}
		for r := int64(0); r < rows; r++ {
			for c := int64(0); c < cols; c++ {
				u := r*cols + c
				if c+1 < cols {
					s.add(u, u+1)
				}
				if r+1 < rows {
					s.add(u, u+cols)
				}
			}
		}

		return nil
	}
}
