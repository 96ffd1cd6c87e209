// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"math"
)

// DType tags the index bit-width of an Array.
type DType uint8

const (
	// Int32 restricts values to the signed 32-bit range.
	Int32 DType = 32
	// Int64 allows the full signed 64-bit range.
	Int64 DType = 64
)

// Bits returns the bit-width of the dtype.
func (d DType) Bits() int { return int(d) }

// Bytes returns the per-element storage width used by binary framing.
func (d DType) Bytes() int { return int(d) / 8 }

// Valid reports whether d is a known dtype tag.
func (d DType) Valid() bool { return d == Int32 || d == Int64 }

// MaxValue returns the largest value representable by d.
func (d DType) MaxValue() int64 {
	if d == Int32 {
		return math.MaxInt32
	}

	return math.MaxInt64
}

// MinValue returns the smallest value representable by d.
func (d DType) MinValue() int64 {
	if d == Int32 {
		return math.MinInt32
	}

	return math.MinInt64
}

// Fits reports whether v is representable by d.
func (d DType) Fits(v int64) bool { return v >= d.MinValue() && v <= d.MaxValue() }

// String implements fmt.Stringer.
func (d DType) String() string {
	switch d {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	default:
		return fmt.Sprintf("dtype(%d)", uint8(d))
	}
}

// ParseDType maps "int32"/"int64" (or "32"/"64") to a DType.
func ParseDType(s string) (DType, error) {
	switch s {
	case "int32", "32":
		return Int32, nil
	case "int64", "64":
		return Int64, nil
	}

	return 0, tensorErrorf("ParseDType", ErrUnknownDType)
}
