// SPDX-License-Identifier: MIT

// Package stream implements the binary stream primitive used for persistence:
// little-endian scalar framing and a tensor framing of
//
//	[dtype bits (1 byte)][ndim (1 byte)][len (8 bytes, only when ndim=1)][raw elements]
//
// An ndim of 0 is the absent-array sentinel. Element width follows the dtype
// (4 bytes for int32, 8 for int64).
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/csrkit/tensor"
)

// MaxArrayLen bounds the element count accepted by ReadArray.
const MaxArrayLen = 1 << 31

// chunkBytes is the payload read granularity of ReadArray. Memory grows with
// the bytes actually present, never with the declared length alone.
const chunkBytes = 1 << 20

var (
	// ErrShortRead indicates the stream ended inside a field.
	ErrShortRead = errors.New("stream: unexpected end of stream")

	// ErrBadFrame indicates a tensor frame with an invalid dtype, ndim or length.
	ErrBadFrame = errors.New("stream: malformed tensor frame")
)

// Writer encodes scalars and arrays onto an io.Writer.
type Writer struct {
	w   io.Writer
	buf [8]byte
}

// NewWriter wraps w. Callers wanting fewer syscalls should pass a *bufio.Writer.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// WriteUint64 writes v as 8 little-endian bytes.
func (sw *Writer) WriteUint64(v uint64) error {
	binary.LittleEndian.PutUint64(sw.buf[:], v)
	_, err := sw.w.Write(sw.buf[:8])

	return err
}

// WriteInt64 writes v as 8 little-endian bytes.
func (sw *Writer) WriteInt64(v int64) error { return sw.WriteUint64(uint64(v)) }

// WriteBool writes v as a single byte (0 or 1).
func (sw *Writer) WriteBool(v bool) error {
	sw.buf[0] = 0
	if v {
		sw.buf[0] = 1
	}
	_, err := sw.w.Write(sw.buf[:1])

	return err
}

// WriteArray writes the tensor frame of a.
func (sw *Writer) WriteArray(a tensor.Array) error {
	if a.IsNull() {
		return sw.WriteNullArray(tensor.Int64)
	}
	dt := a.DType()
	hdr := []byte{byte(dt.Bits()), 1}
	if _, err := sw.w.Write(hdr); err != nil {
		return err
	}
	if err := sw.WriteInt64(int64(a.Len())); err != nil {
		return err
	}

	vals := a.Values()
	width := dt.Bytes()
	raw := make([]byte, len(vals)*width)
	for i, v := range vals {
		if width == 4 {
			binary.LittleEndian.PutUint32(raw[i*4:], uint32(int32(v)))
		} else {
			binary.LittleEndian.PutUint64(raw[i*8:], uint64(v))
		}
	}
	_, err := sw.w.Write(raw)

	return err
}

// WriteNullArray writes the absent-array sentinel tagged with dt.
func (sw *Writer) WriteNullArray(dt tensor.DType) error {
	_, err := sw.w.Write([]byte{byte(dt.Bits()), 0})

	return err
}

// Reader decodes scalars and arrays from an io.Reader.
type Reader struct {
	r   io.Reader
	buf [8]byte
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

func (sr *Reader) fill(n int) error {
	if _, err := io.ReadFull(sr.r, sr.buf[:n]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrShortRead
		}

		return err
	}

	return nil
}

// ReadUint64 reads 8 little-endian bytes.
func (sr *Reader) ReadUint64() (uint64, error) {
	if err := sr.fill(8); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(sr.buf[:8]), nil
}

// ReadInt64 reads 8 little-endian bytes as a signed value.
func (sr *Reader) ReadInt64() (int64, error) {
	v, err := sr.ReadUint64()

	return int64(v), err
}

// ReadBool reads one byte; any value other than 0 or 1 is ErrBadFrame.
func (sr *Reader) ReadBool() (bool, error) {
	if err := sr.fill(1); err != nil {
		return false, err
	}
	switch sr.buf[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}

	return false, fmt.Errorf("ReadBool: %w", ErrBadFrame)
}

// ReadArray reads one tensor frame and places it on dev. The absent sentinel
// decodes to the null Array.
func (sr *Reader) ReadArray(dev tensor.Device) (tensor.Array, error) {
	if err := sr.fill(2); err != nil {
		return tensor.Array{}, err
	}
	dt, ndim := tensor.DType(sr.buf[0]), sr.buf[1]
	if !dt.Valid() {
		return tensor.Array{}, fmt.Errorf("ReadArray: dtype: %w", ErrBadFrame)
	}
	switch ndim {
	case 0:
		return tensor.Array{}, nil
	case 1:
	default:
		return tensor.Array{}, fmt.Errorf("ReadArray: ndim: %w", ErrBadFrame)
	}

	n, err := sr.ReadInt64()
	if err != nil {
		return tensor.Array{}, err
	}
	if n < 0 || n > MaxArrayLen {
		return tensor.Array{}, fmt.Errorf("ReadArray: length: %w", ErrBadFrame)
	}

	width := dt.Bytes()
	vals := make([]int64, 0, min(n, int64(chunkBytes/width)))
	raw := make([]byte, chunkBytes)
	for remaining := n; remaining > 0; {
		step := min(remaining, int64(chunkBytes/width))
		chunk := raw[:int(step)*width]
		if _, err = io.ReadFull(sr.r, chunk); err != nil {
			return tensor.Array{}, ErrShortRead
		}
		for i := 0; i < int(step); i++ {
			if width == 4 {
				vals = append(vals, int64(int32(binary.LittleEndian.Uint32(chunk[i*4:]))))
			} else {
				vals = append(vals, int64(binary.LittleEndian.Uint64(chunk[i*8:])))
			}
		}
		remaining -= step
	}

	// int32 payloads always fit their dtype by construction.
	return tensor.OwnUnchecked(dt, dev, vals), nil
}
