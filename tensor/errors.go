// SPDX-License-Identifier: MIT
// Package tensor: sentinel error set.
// All functions return these sentinels (optionally wrapped with call-site tags);
// callers match them via errors.Is.

package tensor

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownDType is returned for a dtype tag other than Int32/Int64.
	ErrUnknownDType = errors.New("tensor: unknown dtype")

	// ErrOverflow indicates a value that the array's dtype cannot represent.
	ErrOverflow = errors.New("tensor: value overflows dtype")

	// ErrInvalidDevice indicates an operation unsupported on the array's device
	// (e.g. pinning accelerator memory).
	ErrInvalidDevice = errors.New("tensor: invalid device for operation")

	// ErrOutOfRange indicates a slice bound or element index outside the view.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrNullArray indicates that a null (zero-value) Array was used where a
	// materialized one is required.
	ErrNullArray = errors.New("tensor: null array")
)

// tensorErrorf tags err with the operation name, keeping errors.Is intact.
func tensorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
