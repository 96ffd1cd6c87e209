// SPDX-License-Identifier: MIT

// Package coo provides the coordinate-list sibling format of the CSR engine:
// parallel row/col arrays, an optional data array and independent row-sorted /
// col-sorted flags. Duplicate (row, col) pairs are parallel edges and are kept.
package coo

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/csrkit/tensor"
)

var (
	// ErrInvalidShape is returned for negative dimensions or rows/cols/data of unequal length.
	ErrInvalidShape = errors.New("coo: invalid shape")

	// ErrDtypeMismatch is returned when component arrays disagree in dtype.
	ErrDtypeMismatch = errors.New("coo: dtype mismatch")

	// ErrDeviceMismatch is returned when component arrays reside on different devices.
	ErrDeviceMismatch = errors.New("coo: device mismatch")

	// ErrOutOfRange is returned for a row or col id outside the declared shape,
	// or a negative data id.
	ErrOutOfRange = errors.New("coo: index out of range")
)

// Matrix is a COO sparse matrix. Fields are read-only after New.
type Matrix struct {
	numRows, numCols int64
	rows, cols       tensor.Array
	data             tensor.Array // null ⇒ identity 0..nnz-1
	rowSorted        bool
	colSorted        bool
}

// Option configures New.
type Option func(*Matrix)

// WithData attaches an explicit data (entry id) array.
func WithData(data tensor.Array) Option { return func(m *Matrix) { m.data = data } }

// WithRowSorted marks the entries as sorted by row.
func WithRowSorted(v bool) Option { return func(m *Matrix) { m.rowSorted = v } }

// WithColSorted marks the entries as sorted by column within each row.
func WithColSorted(v bool) Option { return func(m *Matrix) { m.colSorted = v } }

// New builds and validates a COO matrix.
//
// Errors (in order): ErrInvalidShape, ErrDtypeMismatch, ErrDeviceMismatch, ErrOutOfRange.
// Complexity: O(nnz).
func New(numRows, numCols int64, rows, cols tensor.Array, opts ...Option) (*Matrix, error) {
	m := &Matrix{numRows: numRows, numCols: numCols, rows: rows, cols: cols}
	for _, opt := range opts {
		opt(m)
	}
	if numRows < 0 || numCols < 0 || rows.Len() != cols.Len() {
		return nil, fmt.Errorf("coo.New: %w", ErrInvalidShape)
	}
	if !m.data.IsNull() && m.data.Len() != rows.Len() {
		return nil, fmt.Errorf("coo.New: data: %w", ErrInvalidShape)
	}
	if rows.DType() != cols.DType() || (!m.data.IsNull() && m.data.DType() != rows.DType()) {
		return nil, fmt.Errorf("coo.New: %w", ErrDtypeMismatch)
	}
	if !rows.SameContext(cols) || (!m.data.IsNull() && !m.data.SameContext(rows)) {
		return nil, fmt.Errorf("coo.New: %w", ErrDeviceMismatch)
	}
	rv, cv := rows.Values(), cols.Values()
	for i := range rv {
		if rv[i] < 0 || rv[i] >= numRows || cv[i] < 0 || cv[i] >= numCols {
			return nil, fmt.Errorf("coo.New: entry %d: %w", i, ErrOutOfRange)
		}
	}
	if !m.data.IsNull() {
		for i, id := range m.data.Values() {
			if id < 0 {
				return nil, fmt.Errorf("coo.New: data %d: %w", i, ErrOutOfRange)
			}
		}
	}

	return m, nil
}

// NumRows returns the dense row count.
func (m *Matrix) NumRows() int64 { return m.numRows }

// NumCols returns the dense column count.
func (m *Matrix) NumCols() int64 { return m.numCols }

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int { return m.rows.Len() }

// Rows returns the row id array.
func (m *Matrix) Rows() tensor.Array { return m.rows }

// Cols returns the column id array.
func (m *Matrix) Cols() tensor.Array { return m.cols }

// Data returns the entry id array; null when the identity mapping applies.
func (m *Matrix) Data() tensor.Array { return m.data }

// HasData reports whether an explicit data array is attached.
func (m *Matrix) HasData() bool { return !m.data.IsNull() }

// RowSorted reports the row-sorted flag.
func (m *Matrix) RowSorted() bool { return m.rowSorted }

// ColSorted reports the col-sorted flag.
func (m *Matrix) ColSorted() bool { return m.colSorted }

// EntryID returns the data id of entry i (i itself when data is absent).
func (m *Matrix) EntryID(i int) int64 {
	if m.data.IsNull() {
		return int64(i)
	}

	return m.data.Values()[i]
}

// Triple is one (row, col, data) entry.
type Triple struct{ Row, Col, Data int64 }

// Triples materializes the entries in storage order.
func (m *Matrix) Triples() []Triple {
	rv, cv := m.rows.Values(), m.cols.Values()
	out := make([]Triple, len(rv))
	for i := range rv {
		out[i] = Triple{Row: rv[i], Col: cv[i], Data: m.EntryID(i)}
	}

	return out
}
