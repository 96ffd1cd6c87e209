// SPDX-License-Identifier: MIT

// Package csr: the store, covering construction, accessors and device placement.
package csr

import (
	"errors"

	"github.com/katalvlaran/csrkit/tensor"
)

// New builds a Matrix from raw index arrays and validates it eagerly.
//
// Implementation:
//   - Stage 1: resolve options (data, sorted hint).
//   - Stage 2: header checks in contract order: shape → dtype → device → overflow.
//   - Stage 3: content checks: indptr starts at 0, never decreases, ends at nnz;
//     data length equals nnz; every column lies in [0, numCols).
//
// Errors:
//   - ErrInvalidShape, ErrDtypeMismatch, ErrDeviceMismatch, ErrOverflow, ErrOutOfRange.
//
// Complexity:
//   - Time O(numRows + nnz), Space O(1). Arrays are referenced, not copied.
func New(numRows, numCols int64, indptr, indices tensor.Array, opts ...Option) (*Matrix, error) {
	cfg := gatherBuild(opts)
	if err := checkHeader(numRows, numCols, indptr, indices, cfg.data); err != nil {
		return nil, csrErrorf("New", err)
	}
	if err := checkContent(numCols, indptr, indices, cfg.data); err != nil {
		return nil, csrErrorf("New", err)
	}

	return newTrusted(numRows, numCols, indptr, indices, cfg.data, cfg.sorted), nil
}

// FromSlices is a convenience constructor copying plain slices into fresh
// host arrays of the given dtype. A nil data slice means identity ids.
func FromSlices(dt tensor.DType, numRows, numCols int64, indptr, indices, data []int64, sorted bool) (*Matrix, error) {
	p, err := tensor.New(dt, tensor.Host, indptr)
	if err != nil {
		return nil, csrErrorf("FromSlices: indptr", mapTensorErr(err))
	}
	i, err := tensor.New(dt, tensor.Host, indices)
	if err != nil {
		return nil, csrErrorf("FromSlices: indices", mapTensorErr(err))
	}
	opts := []Option{WithSorted(sorted)}
	if data != nil {
		d, derr := tensor.New(dt, tensor.Host, data)
		if derr != nil {
			return nil, csrErrorf("FromSlices: data", mapTensorErr(derr))
		}
		opts = append(opts, WithData(d))
	}

	return New(numRows, numCols, p, i, opts...)
}

// newTrusted assembles a Matrix whose invariants the caller already established.
func newTrusted(numRows, numCols int64, indptr, indices tensor.Array, data DataField, sorted bool) *Matrix {
	return &Matrix{
		numRows: numRows,
		numCols: numCols,
		indptr:  indptr,
		indices: indices,
		data:    data,
		sorted:  sorted,
	}
}

// mapTensorErr translates tensor sentinels into csr sentinels (both stay matchable).
func mapTensorErr(err error) error {
	switch {
	case errors.Is(err, tensor.ErrOverflow):
		return errors.Join(ErrOverflow, err)
	case errors.Is(err, tensor.ErrInvalidDevice):
		return errors.Join(ErrInvalidDevice, err)
	case errors.Is(err, tensor.ErrUnknownDType):
		return errors.Join(ErrDtypeMismatch, err)
	}

	return err
}

// own wraps freshly computed values in an array matching m's dtype and device.
// Values derived from m (positions, ids, column ids) always fit m's dtype.
func (m *Matrix) own(vals []int64) tensor.Array {
	return tensor.OwnUnchecked(m.DType(), m.Device(), vals)
}

// NumRows returns the dense row count.
func (m *Matrix) NumRows() int64 { return m.numRows }

// NumCols returns the dense column count.
func (m *Matrix) NumCols() int64 { return m.numCols }

// NNZ returns the number of stored entries (indptr[numRows]).
func (m *Matrix) NNZ() int64 { return int64(m.indices.Len()) }

// Indptr returns the row pointer array.
func (m *Matrix) Indptr() tensor.Array { return m.indptr }

// Indices returns the column id array.
func (m *Matrix) Indices() tensor.Array { return m.indices }

// Data returns the tagged entry id container.
func (m *Matrix) Data() DataField { return m.data }

// HasData reports whether explicit entry ids are attached.
func (m *Matrix) HasData() bool { return m.data.Present() }

// Sorted returns the cached sorted hint (see IsSorted for the authoritative check).
func (m *Matrix) Sorted() bool { return m.sorted }

// DType returns the shared index width.
func (m *Matrix) DType() tensor.DType { return m.indptr.DType() }

// Device returns the shared placement.
func (m *Matrix) Device() tensor.Device { return m.indptr.Device() }

// IsPinned reports whether the row pointer buffer is page-locked.
func (m *Matrix) IsPinned() bool { return m.indptr.IsPinned() }

// dataArray returns the explicit ids, materializing the identity mapping.
func (m *Matrix) dataArray() tensor.Array {
	if m.data.Present() {
		return m.data.Array()
	}
	vals := make([]int64, m.NNZ())
	for i := range vals {
		vals[i] = int64(i)
	}

	return m.own(vals)
}

// CopyTo returns m placed on dev. If m already resides there the receiver is
// returned unchanged; otherwise every array is copied into a fresh buffer.
// Complexity: O(1) or O(numRows + nnz).
func (m *Matrix) CopyTo(dev tensor.Device) *Matrix {
	if m.Device() == dev {
		return m
	}
	data := m.data
	if data.Present() {
		data = ExplicitData(data.Array().CopyTo(dev))
	}

	return newTrusted(m.numRows, m.numCols, m.indptr.CopyTo(dev), m.indices.CopyTo(dev), data, m.sorted)
}

// Clone returns a deep copy in fresh buffers on the same device.
func (m *Matrix) Clone() *Matrix {
	data := m.data
	if data.Present() {
		data = ExplicitData(data.Array().Clone())
	}

	return newTrusted(m.numRows, m.numCols, m.indptr.Clone(), m.indices.Clone(), data, m.sorted)
}

// PinMemory page-locks indptr, indices and data in place.
//
// Outcomes:
//   - tensor.PinPerformed if at least one buffer changed state.
//   - tensor.PinAlreadySatisfied if everything was already pinned.
//   - ErrInvalidDevice (joined with tensor.ErrInvalidDevice) for accelerator storage;
//     nothing is modified in that case.
func (m *Matrix) PinMemory() (tensor.PinOutcome, error) {
	if !m.Device().IsHost() {
		return 0, csrErrorf("PinMemory", errors.Join(ErrInvalidDevice, tensor.ErrInvalidDevice))
	}
	outcome := tensor.PinAlreadySatisfied
	for _, a := range m.arrays() {
		o, err := a.Pin()
		if err != nil {
			return 0, csrErrorf("PinMemory", mapTensorErr(err))
		}
		if o == tensor.PinPerformed {
			outcome = tensor.PinPerformed
		}
	}

	return outcome, nil
}

// UnpinMemory releases page locks in place. Unpinning a matrix that is not
// pinned (including accelerator matrices) is a no-op reported as PinAlreadySatisfied.
func (m *Matrix) UnpinMemory() tensor.PinOutcome {
	outcome := tensor.PinAlreadySatisfied
	for _, a := range m.arrays() {
		if a.Unpin() == tensor.PinPerformed {
			outcome = tensor.PinPerformed
		}
	}

	return outcome
}

func (m *Matrix) arrays() []tensor.Array {
	out := []tensor.Array{m.indptr, m.indices}
	if m.data.Present() {
		out = append(out, m.data.Array())
	}

	return out
}

// Equal reports structural equality: shape, sorted flag, indptr, indices, and
// data (presence and values). Devices and storage identity are ignored.
func Equal(a, b *Matrix) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.numRows != b.numRows || a.numCols != b.numCols || a.sorted != b.sorted {
		return false
	}
	if a.data.Present() != b.data.Present() {
		return false
	}

	return a.indptr.Equal(b.indptr) && a.indices.Equal(b.indices) && a.data.Array().Equal(b.data.Array())
}
