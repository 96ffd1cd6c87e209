// SPDX-License-Identifier: MIT

package stream_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/csrkit/stream"
	"github.com/katalvlaran/csrkit/tensor"
)

func TestScalarsAndArrays(t *testing.T) {
	t.Parallel()

	a32, err := tensor.New(tensor.Int32, tensor.Host, []int64{-1, 0, 7})
	require.NoError(t, err)
	a64, err := tensor.New(tensor.Int64, tensor.Host, []int64{1 << 40})
	require.NoError(t, err)

	var buf bytes.Buffer
	w := stream.NewWriter(&buf)
	require.NoError(t, w.WriteUint64(0xDD6cd31205dff127))
	require.NoError(t, w.WriteInt64(-3))
	require.NoError(t, w.WriteArray(a32))
	require.NoError(t, w.WriteArray(a64))
	require.NoError(t, w.WriteNullArray(tensor.Int32))
	require.NoError(t, w.WriteBool(true))

	// 8 + 8 + (2+8+12) + (2+8+8) + 2 + 1
	require.Equal(t, 59, buf.Len())

	r := stream.NewReader(&buf)
	u, err := r.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0xDD6cd31205dff127), u)
	i, err := r.ReadInt64()
	require.NoError(t, err)
	require.Equal(t, int64(-3), i)

	got32, err := r.ReadArray(tensor.Host)
	require.NoError(t, err)
	require.True(t, got32.Equal(a32))
	got64, err := r.ReadArray(tensor.Host)
	require.NoError(t, err)
	require.True(t, got64.Equal(a64))
	null, err := r.ReadArray(tensor.Host)
	require.NoError(t, err)
	require.True(t, null.IsNull())
	b, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, b)

	_, err = r.ReadBool()
	require.ErrorIs(t, err, stream.ErrShortRead)
}

func TestReadArray_SpansChunks(t *testing.T) {
	t.Parallel()

	for _, dt := range []tensor.DType{tensor.Int32, tensor.Int64} {
		a, err := tensor.Range(dt, tensor.Host, -5, 300_000)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, stream.NewWriter(&buf).WriteArray(a))
		got, err := stream.NewReader(&buf).ReadArray(tensor.Host)
		require.NoError(t, err)
		require.True(t, got.Equal(a), dt.String())
		require.Zero(t, buf.Len())
	}
}

func TestReadArray_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  []byte
		want error
	}{
		{"bad dtype", []byte{16, 1}, stream.ErrBadFrame},
		{"bad ndim", []byte{64, 2}, stream.ErrBadFrame},
		{"negative length", []byte{64, 1, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, stream.ErrBadFrame},
		{"truncated payload", []byte{32, 1, 2, 0, 0, 0, 0, 0, 0, 0, 1, 0}, stream.ErrShortRead},
		{"empty", nil, stream.ErrShortRead},
		{"length beyond payload", []byte{64, 1, 0, 0, 0, 0x40, 0, 0, 0, 0, 7, 0, 0, 0, 0, 0, 0, 0}, stream.ErrShortRead},
		{"length beyond limit", []byte{64, 1, 0, 0, 0, 0, 0x10, 0, 0, 0}, stream.ErrBadFrame},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := stream.NewReader(bytes.NewReader(tc.raw)).ReadArray(tensor.Host)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestReadBool_RejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := stream.NewReader(bytes.NewReader([]byte{7})).ReadBool()
	require.ErrorIs(t, err, stream.ErrBadFrame)
}
