// SPDX-License-Identifier: MIT
// Package csr: sentinel error set.
// All operations return these sentinels (wrapped with a call-site tag) and
// tests match them via errors.Is. No operation panics on user input; panics are
// reserved for option constructors receiving nonsensical values.

package csr

import (
	"errors"
	"fmt"
)

// ERROR PRIORITY (documented, enforced in tests):
// shape -> dtype -> device -> overflow -> structural content (range, order)
// -> preconditions of the specific operation.

var (
	// ErrInvalidShape reports a bad indptr length, negative dimensions or a
	// structurally invalid indptr (non-zero start, decreasing, wrong total).
	ErrInvalidShape = errors.New("csr: invalid shape")

	// ErrDtypeMismatch reports component arrays (or operands) of different index widths.
	ErrDtypeMismatch = errors.New("csr: dtype mismatch")

	// ErrDeviceMismatch reports component arrays (or operands) on different devices.
	ErrDeviceMismatch = errors.New("csr: device mismatch")

	// ErrOverflow reports dimensions or totals the index width cannot represent.
	ErrOverflow = errors.New("csr: index width overflow")

	// ErrInvalidDevice reports a pin request on accelerator-resident storage.
	ErrInvalidDevice = errors.New("csr: invalid device")

	// ErrCorruptData reports a persistence framing violation on Load.
	ErrCorruptData = errors.New("csr: corrupt data")

	// ErrPreconditionViolated reports an input that breaks an operation's
	// documented precondition (e.g. unsorted tag offsets, non-permutation ids).
	ErrPreconditionViolated = errors.New("csr: precondition violated")

	// ErrOutOfRange reports a row, column, entry or tag id outside its domain.
	ErrOutOfRange = errors.New("csr: index out of range")

	// ErrDimensionMismatch reports argument arrays of incompatible lengths
	// (non-broadcastable query pairs, per-entry arrays, tag tables).
	ErrDimensionMismatch = errors.New("csr: dimension mismatch")

	// ErrNilMatrix reports a nil *Matrix operand.
	ErrNilMatrix = errors.New("csr: nil matrix")
)

// csrErrorf wraps err with an operation tag; errors.Is keeps matching.
func csrErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
