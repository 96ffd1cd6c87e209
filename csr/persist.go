// SPDX-License-Identifier: MIT

// Package csr: binary persistence.
//
// Layout (every scalar little-endian, arrays in stream tensor framing):
//
//	magic    uint64  SerializeMagic
//	numCols  int64
//	numRows  int64
//	indptr   tensor
//	indices  tensor
//	data     tensor  (absent sentinel when the identity mapping applies)
//	sorted   1 byte
package csr

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/csrkit/stream"
	"github.com/katalvlaran/csrkit/tensor"
)

// SerializeMagic identifies a serialized CSR record.
const SerializeMagic uint64 = 0xDD6cd31205dff127

// Save writes m to w. Only I/O errors of w are returned.
// Complexity: O(numRows + nnz).
func (m *Matrix) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	sw := stream.NewWriter(bw)

	if err := sw.WriteUint64(SerializeMagic); err != nil {
		return csrErrorf("Save", err)
	}
	if err := sw.WriteInt64(m.numCols); err != nil {
		return csrErrorf("Save", err)
	}
	if err := sw.WriteInt64(m.numRows); err != nil {
		return csrErrorf("Save", err)
	}
	if err := sw.WriteArray(m.indptr); err != nil {
		return csrErrorf("Save", err)
	}
	if err := sw.WriteArray(m.indices); err != nil {
		return csrErrorf("Save", err)
	}
	var err error
	if m.data.Present() {
		err = sw.WriteArray(m.data.Array())
	} else {
		err = sw.WriteNullArray(m.DType())
	}
	if err != nil {
		return csrErrorf("Save", err)
	}
	if err = sw.WriteBool(m.sorted); err != nil {
		return csrErrorf("Save", err)
	}

	if err = bw.Flush(); err != nil {
		return csrErrorf("Save", err)
	}

	return nil
}

// Load reads one record written by Save onto host memory and re-validates it.
// Every failure (magic mismatch, short read, malformed frame, invariant
// violation) is reported as ErrCorruptData joined with its cause.
func Load(r io.Reader) (*Matrix, error) {
	sr := stream.NewReader(r)

	magic, err := sr.ReadUint64()
	if err != nil {
		return nil, corrupt("magic", err)
	}
	if magic != SerializeMagic {
		return nil, corrupt("magic", fmt.Errorf("got %#x", magic))
	}
	numCols, err := sr.ReadInt64()
	if err != nil {
		return nil, corrupt("num_cols", err)
	}
	numRows, err := sr.ReadInt64()
	if err != nil {
		return nil, corrupt("num_rows", err)
	}
	indptr, err := sr.ReadArray(tensor.Host)
	if err != nil {
		return nil, corrupt("indptr", err)
	}
	indices, err := sr.ReadArray(tensor.Host)
	if err != nil {
		return nil, corrupt("indices", err)
	}
	data, err := sr.ReadArray(tensor.Host)
	if err != nil {
		return nil, corrupt("data", err)
	}
	sorted, err := sr.ReadBool()
	if err != nil {
		return nil, corrupt("sorted", err)
	}

	opts := []Option{WithSorted(sorted)}
	if !data.IsNull() {
		opts = append(opts, WithData(data))
	}
	m, err := New(numRows, numCols, indptr, indices, opts...)
	if err != nil {
		return nil, corrupt("validity", err)
	}

	return m, nil
}

func corrupt(field string, cause error) error {
	return fmt.Errorf("Load: %s: %w", field, errors.Join(ErrCorruptData, cause))
}
