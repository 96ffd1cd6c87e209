// SPDX-License-Identifier: MIT

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewVertices indicates a size parameter below the constructor's minimum.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor ran without WithSeed/WithSource.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrSizeMismatch indicates a constructor whose vertex layout does not cover
// exactly the n vertices passed to Build (e.g. Grid(r, c) with r·c ≠ n).
var ErrSizeMismatch = errors.New("builder: size mismatch")

// builderErrorf wraps err with the constructor tag.
func builderErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
