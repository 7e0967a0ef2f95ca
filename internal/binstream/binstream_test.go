// SPDX-License-Identifier: MIT

package binstream_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/katalvlaran/lvsparse/internal/binstream"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := binstream.NewWriter(&buf)
	w.PutMarker(binstream.BeginSection, "BMAT")
	w.PutUint64(8)
	w.PutString("grad")
	w.PutInt32(-7)
	binstream.PutSlice(w, []float64{1.5, -2})
	binstream.PutSlice(w, []int32{3, 4, 5})
	w.PutMarker(binstream.EndSection, "EMAT")
	require.NoError(t, w.Err())
	require.Equal(t, int64(buf.Len()), w.Count())

	r := binstream.NewReader(bytes.NewReader(buf.Bytes()))
	r.Marker(binstream.BeginSection, "BMAT")
	require.Equal(t, uint64(8), r.Uint64())
	require.Equal(t, "grad", r.Text())
	require.Equal(t, int32(-7), r.Int32())
	vals := make([]float64, 2)
	binstream.GetSlice(r, vals)
	idx := make([]int32, 3)
	binstream.GetSlice(r, idx)
	r.Marker(binstream.EndSection, "EMAT")
	require.NoError(t, r.Err())
	require.Equal(t, []float64{1.5, -2}, vals)
	require.Equal(t, []int32{3, 4, 5}, idx)
	require.Equal(t, w.Count(), r.Count())
}

func TestMarkerMismatch(t *testing.T) {
	var buf bytes.Buffer
	w := binstream.NewWriter(&buf)
	w.PutMarker(binstream.BeginSection, "BVEC")
	require.NoError(t, w.Err())

	r := binstream.NewReader(&buf)
	r.Marker(binstream.BeginSection, "BMAT")
	require.ErrorIs(t, r.Err(), binstream.ErrMarker)
}

func TestReaderStickyEOF(t *testing.T) {
	r := binstream.NewReader(bytes.NewReader([]byte{1, 2}))
	require.Zero(t, r.Uint64())
	require.ErrorIs(t, r.Err(), io.ErrUnexpectedEOF)
	require.Zero(t, r.Int32()) // no-op after failure
	require.ErrorIs(t, r.Err(), io.ErrUnexpectedEOF)
}

func TestStringTooLong(t *testing.T) {
	var buf bytes.Buffer
	w := binstream.NewWriter(&buf)
	w.PutUint64(binstream.MaxStringLen + 1)
	r := binstream.NewReader(&buf)
	require.Empty(t, r.Text())
	require.ErrorIs(t, r.Err(), binstream.ErrStringTooLong)
}

type failWriter struct{}

var errDisk = errors.New("disk full")

func (failWriter) Write([]byte) (int, error) { return 0, errDisk }

func TestWriterSticky(t *testing.T) {
	w := binstream.NewWriter(failWriter{})
	w.PutUint64(1)
	w.PutString("x")
	binstream.PutSlice(w, []float32{1})
	require.ErrorIs(t, w.Err(), errDisk)
	require.Zero(t, w.Count())
}

func TestReaderEOFAfterConsumedBytes(t *testing.T) {
	var buf bytes.Buffer
	w := binstream.NewWriter(&buf)
	w.PutUint64(3)
	require.NoError(t, w.Err())

	r := binstream.NewReader(&buf)
	require.Equal(t, uint64(3), r.Uint64())
	got := make([]float64, 2)
	binstream.GetSlice(r, got)
	require.ErrorIs(t, r.Err(), io.ErrUnexpectedEOF)

	r = binstream.NewReader(bytes.NewReader(nil))
	r.Uint8()
	require.ErrorIs(t, r.Err(), io.EOF)
}

func TestReadSlice(t *testing.T) {
	want := make([]int32, binstream.ReadChunk)
	for i := range want {
		want[i] = int32(i * 3)
	}
	var buf bytes.Buffer
	w := binstream.NewWriter(&buf)
	binstream.PutSlice(w, want)
	require.NoError(t, w.Err())

	r := binstream.NewReader(bytes.NewReader(buf.Bytes()))
	require.Equal(t, want, binstream.ReadSlice[int32](r, len(want)))
	require.NoError(t, r.Err())
	require.Equal(t, int64(buf.Len()), r.Count())

	r = binstream.NewReader(bytes.NewReader(buf.Bytes()))
	require.Nil(t, binstream.ReadSlice[int32](r, 1<<30))
	require.ErrorIs(t, r.Err(), io.ErrUnexpectedEOF)
	require.Equal(t, int64(buf.Len()), r.Count())

	r = binstream.NewReader(bytes.NewReader(buf.Bytes()))
	require.Empty(t, binstream.ReadSlice[int32](r, 0))
	require.NoError(t, r.Err())
}
