// SPDX-License-Identifier: MIT

// Package binstream is the sequential binary stream used by sparse
// serialization: typed little-endian put/get plus named section markers.
//
// Both Writer and Reader keep a sticky error. After the first failure every
// further call is a no-op and Err reports the original cause, so a record can
// be written or read as a straight sequence of calls followed by one check.
//
// Wire forms:
//
//	marker  = u8 kind, string tag
//	string  = u64 byte length, UTF-8 bytes
//	u64/i32 = fixed width, little-endian
//	slices  = elements back to back, no length prefix (lengths come from the header)
package binstream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Marker kinds.
const (
	BeginSection uint8 = 1
	EndSection   uint8 = 2
)

// MaxStringLen bounds string lengths accepted by the reader.
const MaxStringLen = 1 << 20

var (
	// ErrMarker is returned when the expected section marker is not found.
	ErrMarker = errors.New("binstream: section marker mismatch")

	// ErrStringTooLong is returned when a string header exceeds MaxStringLen.
	ErrStringTooLong = errors.New("binstream: string too long")
)

var order = binary.LittleEndian

// Writer writes typed values to an io.Writer.
type Writer struct {
	w   io.Writer
	n   int64
	err error
	buf [8]byte
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// Err returns the first error encountered.
func (w *Writer) Err() error { return w.err }

// Count returns the number of bytes written so far.
func (w *Writer) Count() int64 { return w.n }

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(p)
	w.n += int64(n)
	if err != nil {
		w.err = err
	}
}

// PutUint8 writes one byte.
func (w *Writer) PutUint8(v uint8) {
	w.buf[0] = v
	w.write(w.buf[:1])
}

// PutUint64 writes a u64.
func (w *Writer) PutUint64(v uint64) {
	order.PutUint64(w.buf[:], v)
	w.write(w.buf[:8])
}

// PutInt32 writes an i32.
func (w *Writer) PutInt32(v int32) {
	order.PutUint32(w.buf[:4], uint32(v))
	w.write(w.buf[:4])
}

// PutString writes a length-prefixed UTF-8 string.
func (w *Writer) PutString(s string) {
	w.PutUint64(uint64(len(s)))
	w.write([]byte(s))
}

// PutMarker writes a section marker.
func (w *Writer) PutMarker(kind uint8, tag string) {
	w.PutUint8(kind)
	w.PutString(tag)
}

// PutSlice writes a slice of fixed-size values (float32, float64, int32, ...).
func PutSlice[E any](w *Writer, s []E) {
	if w.err != nil || len(s) == 0 {
		return
	}
	cw := countingWriter{w: w.w}
	err := binary.Write(&cw, order, s)
	w.n += cw.n
	if err != nil {
		w.err = err
	}
}

// Reader reads typed values from an io.Reader.
type Reader struct {
	r   io.Reader
	n   int64
	err error
	buf [8]byte
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

// Err returns the first error encountered.
func (r *Reader) Err() error { return r.err }

// Count returns the number of bytes consumed so far.
func (r *Reader) Count() int64 { return r.n }

// Fail records err as the sticky error unless one is already set.
func (r *Reader) Fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) read(p []byte) bool {
	if r.err != nil {
		return false
	}
	n, err := io.ReadFull(r.r, p)
	r.n += int64(n)
	if err != nil {
		r.fail(err)
		return false
	}

	return true
}

// fail records a read error. io.EOF after the first byte means the record
// was cut short and is reported as io.ErrUnexpectedEOF; io.EOF is kept only
// for a stream that ended before anything was read.
func (r *Reader) fail(err error) {
	if errors.Is(err, io.EOF) && r.n > 0 {
		err = io.ErrUnexpectedEOF
	}
	r.Fail(err)
}

// Uint8 reads one byte.
func (r *Reader) Uint8() uint8 {
	if !r.read(r.buf[:1]) {
		return 0
	}

	return r.buf[0]
}

// Uint64 reads a u64.
func (r *Reader) Uint64() uint64 {
	if !r.read(r.buf[:8]) {
		return 0
	}

	return order.Uint64(r.buf[:8])
}

// Int32 reads an i32.
func (r *Reader) Int32() int32 {
	if !r.read(r.buf[:4]) {
		return 0
	}

	return int32(order.Uint32(r.buf[:4]))
}

// Text reads a length-prefixed string.
func (r *Reader) Text() string {
	n := r.Uint64()
	if r.err != nil {
		return ""
	}
	if n > MaxStringLen {
		r.Fail(fmt.Errorf("length %d: %w", n, ErrStringTooLong))
		return ""
	}
	p := make([]byte, n)
	if !r.read(p) {
		return ""
	}

	return string(p)
}

// Marker reads a section marker and checks it against (kind, tag).
func (r *Reader) Marker(kind uint8, tag string) {
	k := r.Uint8()
	s := r.Text()
	if r.err != nil {
		return
	}
	if k != kind || s != tag {
		r.Fail(fmt.Errorf("want (%d,%q), got (%d,%q): %w", kind, tag, k, s, ErrMarker))
	}
}

// GetSlice fills s with fixed-size values.
func GetSlice[E any](r *Reader, s []E) {
	if r.err != nil || len(s) == 0 {
		return
	}
	cr := countingReader{r: r.r}
	err := binary.Read(&cr, order, s)
	r.n += cr.n
	if err != nil {
		r.fail(err)
	}
}

// ReadChunk bounds the bytes ReadSlice requests from the stream per step.
const ReadChunk = 1 << 16

// ReadSlice reads n fixed-size values. The result grows chunk by chunk as
// bytes arrive, so a length taken from an untrusted header never allocates
// much more than the stream actually holds.
func ReadSlice[E any](r *Reader, n int) []E {
	if r.err != nil || n <= 0 {
		return nil
	}
	var zero E
	size := binary.Size(zero)
	if size <= 0 {
		r.Fail(fmt.Errorf("binstream: %T is not fixed-size", zero))
		return nil
	}
	step := max(1, ReadChunk/size)
	out := make([]E, 0, min(n, step))
	for len(out) < n && r.err == nil {
		k := min(step, n-len(out))
		out = append(out, make([]E, k)...)
		GetSlice(r, out[len(out)-k:])
	}
	if r.err != nil {
		return nil
	}

	return out
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
