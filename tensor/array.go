// SPDX-License-Identifier: MIT
// Package tensor: the Array view handle.
//
// Purpose:
//   - Give the CSR engine a fixed contract over index arrays: dtype, device,
//     shape, clone, copy-to-device, pin/unpin and context equality.
//   - Make storage sharing explicit (views vs. fresh buffers).
//
// Determinism & Performance:
//   - All constructors are O(n); views are O(1) and never copy.
//   - Values exposes the live window without copying; ToSlice copies.

package tensor

import (
	"slices"

	"github.com/google/uuid"
)

// Array is a one-dimensional index array view. The zero value is the null
// array (no buffer); use IsNull to detect it.
type Array struct {
	buf   *buffer
	off   int
	n     int
	dtype DType
}

// New copies vals into a fresh host-or-device buffer of the given dtype.
//
// Errors:
//   - ErrUnknownDType for an invalid dtype tag.
//   - ErrOverflow if any value is not representable by dt.
//
// Complexity: O(n) time and space.
func New(dt DType, dev Device, vals []int64) (Array, error) {
	return Own(dt, dev, slices.Clone(vals))
}

// Own wraps vals (taking ownership, no copy) after validating every value fits dt.
// Complexity: O(n) time, O(1) extra space.
func Own(dt DType, dev Device, vals []int64) (Array, error) {
	if !dt.Valid() {
		return Array{}, tensorErrorf("Own", ErrUnknownDType)
	}
	if dt != Int64 {
		for _, v := range vals {
			if !dt.Fits(v) {
				return Array{}, tensorErrorf("Own", ErrOverflow)
			}
		}
	}

	return OwnUnchecked(dt, dev, vals), nil
}

// OwnUnchecked wraps vals without validation. The caller guarantees that dt is
// valid and that every value fits it; producers that derive values from an
// already validated array (positions, column ids, offsets) use this to avoid a
// second O(n) pass.
func OwnUnchecked(dt DType, dev Device, vals []int64) Array {
	if vals == nil {
		vals = []int64{}
	}

	return Array{buf: newBuffer(vals, dev), n: len(vals), dtype: dt}
}

// Range returns the array [start, start+1, ..., end-1].
// Errors: ErrOutOfRange if end < start, ErrOverflow if end-1 does not fit dt.
func Range(dt DType, dev Device, start, end int64) (Array, error) {
	if end < start {
		return Array{}, tensorErrorf("Range", ErrOutOfRange)
	}
	if !dt.Valid() {
		return Array{}, tensorErrorf("Range", ErrUnknownDType)
	}
	if end > start && (!dt.Fits(start) || !dt.Fits(end-1)) {
		return Array{}, tensorErrorf("Range", ErrOverflow)
	}
	vals := make([]int64, end-start)
	for i := range vals {
		vals[i] = start + int64(i)
	}

	return OwnUnchecked(dt, dev, vals), nil
}

// Full returns an array of n copies of v.
func Full(dt DType, dev Device, n int, v int64) (Array, error) {
	if n < 0 {
		return Array{}, tensorErrorf("Full", ErrOutOfRange)
	}
	if !dt.Valid() {
		return Array{}, tensorErrorf("Full", ErrUnknownDType)
	}
	if !dt.Fits(v) {
		return Array{}, tensorErrorf("Full", ErrOverflow)
	}
	vals := make([]int64, n)
	for i := range vals {
		vals[i] = v
	}

	return OwnUnchecked(dt, dev, vals), nil
}

// IsNull reports whether a is the zero-value (absent) array.
func (a Array) IsNull() bool { return a.buf == nil }

// Len returns the number of elements in the view (0 for null).
func (a Array) Len() int { return a.n }

// Shape returns the one-dimensional shape of the view.
func (a Array) Shape() []int { return []int{a.n} }

// DType returns the dtype tag (0 for null).
func (a Array) DType() DType { return a.dtype }

// Device returns the buffer placement. Null arrays report Host.
func (a Array) Device() Device {
	if a.buf == nil {
		return Host
	}

	return a.buf.device
}

// SameContext reports whether a and b reside on the same device.
func (a Array) SameContext(b Array) bool { return a.Device() == b.Device() }

// IsPinned reports whether the backing buffer is page-locked.
func (a Array) IsPinned() bool { return a.buf != nil && a.buf.pinned.Load() }

// StorageID returns the identity of the backing buffer (uuid.Nil for null).
func (a Array) StorageID() uuid.UUID {
	if a.buf == nil {
		return uuid.Nil
	}

	return a.buf.id
}

// SharesStorage reports whether a and b are views of the same buffer.
func (a Array) SharesStorage(b Array) bool { return a.buf != nil && a.buf == b.buf }

// Exclusive reports whether no other view was ever derived from a's buffer.
// In-place kernels use it to decide whether a write is visible elsewhere.
func (a Array) Exclusive() bool { return a.buf != nil && a.buf.views.Load() == 1 }

// Values returns the live window of the view. The slice aliases the buffer:
// callers MUST treat it as read-only; use Mutable for sanctioned writes.
func (a Array) Values() []int64 {
	if a.buf == nil {
		return nil
	}

	return a.buf.vals[a.off : a.off+a.n : a.off+a.n]
}

// Mutable returns the live window for an in-place kernel. Writes are visible
// through every view sharing the buffer.
func (a Array) Mutable() []int64 { return a.Values() }

// ToSlice returns a copy of the view's values.
func (a Array) ToSlice() []int64 { return slices.Clone(a.Values()) }

// At returns element i of the view.
// Errors: ErrOutOfRange if i is outside [0, Len()).
func (a Array) At(i int) (int64, error) {
	if i < 0 || i >= a.n {
		return 0, tensorErrorf("At", ErrOutOfRange)
	}

	return a.buf.vals[a.off+i], nil
}

// Slice returns the view [start, end) sharing a's buffer.
// Errors: ErrOutOfRange on invalid bounds, ErrNullArray on a null array.
// Complexity: O(1).
func (a Array) Slice(start, end int) (Array, error) {
	if a.buf == nil {
		return Array{}, tensorErrorf("Slice", ErrNullArray)
	}
	if start < 0 || end < start || end > a.n {
		return Array{}, tensorErrorf("Slice", ErrOutOfRange)
	}
	a.buf.views.Add(1)

	return Array{buf: a.buf, off: a.off + start, n: end - start, dtype: a.dtype}, nil
}

// Clone returns a copy of the view in a fresh, unpinned buffer on the same device.
// A null array clones to a null array.
func (a Array) Clone() Array {
	if a.buf == nil {
		return Array{}
	}

	return OwnUnchecked(a.dtype, a.buf.device, a.ToSlice())
}

// CopyTo returns a copy of the view in a fresh buffer on dev. The result is
// never pinned and never aliases a. A null array copies to a null array.
func (a Array) CopyTo(dev Device) Array {
	if a.buf == nil {
		return Array{}
	}

	return OwnUnchecked(a.dtype, dev, a.ToSlice())
}

// AsType returns a copy converted to dt.
// Errors: ErrUnknownDType, ErrOverflow when a value does not fit dt.
func (a Array) AsType(dt DType) (Array, error) {
	if a.buf == nil {
		return Array{}, nil
	}
	if dt == a.dtype {
		return a.Clone(), nil
	}

	return Own(dt, a.buf.device, a.ToSlice())
}

// Pin page-locks the backing buffer in place.
//
// Outcomes:
//   - PinPerformed when a host buffer becomes pinned.
//   - PinAlreadySatisfied when it already was (or the array is null).
//   - ErrInvalidDevice for accelerator-resident buffers.
func (a Array) Pin() (PinOutcome, error) {
	if a.buf == nil {
		return PinAlreadySatisfied, nil
	}
	if !a.buf.device.IsHost() {
		return 0, tensorErrorf("Pin", ErrInvalidDevice)
	}
	if a.buf.pinned.CompareAndSwap(false, true) {
		return PinPerformed, nil
	}

	return PinAlreadySatisfied, nil
}

// Unpin releases the page lock. Unpinning a non-pinned buffer (including any
// accelerator buffer) is a no-op reported as PinAlreadySatisfied.
func (a Array) Unpin() PinOutcome {
	if a.buf == nil {
		return PinAlreadySatisfied
	}
	if a.buf.pinned.CompareAndSwap(true, false) {
		return PinPerformed
	}

	return PinAlreadySatisfied
}

// Equal reports whether a and b have the same dtype and values. Device and
// storage identity are ignored. Two null arrays are equal.
func (a Array) Equal(b Array) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() == b.IsNull()
	}

	return a.dtype == b.dtype && slices.Equal(a.Values(), b.Values())
}
