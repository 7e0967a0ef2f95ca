// SPDX-License-Identifier: MIT

// Package sparse - binary stream format.
//
// Record layout (little-endian):
//
//	marker  u8 1, string "BMAT"
//	u64     element size (4 or 8)
//	string  name ("nnmatrix" when unnamed)
//	i32     format tag (CSC=1, CSR=2)
//	u64     nz, u64 cols, u64 rows
//	if nz > 0:
//	  nz × T       values
//	  nz × i32     major index
//	  (lanes+1) × i32 secondary index (lanes = cols for CSC, rows for CSR)
//	marker  u8 2, string "EMAT"
//
// Only compressed layouts are serializable. A decoded record is validated as a
// compressed layout before it replaces the receiver's contents.

package sparse

import (
	"fmt"
	"io"
	"math"

	"github.com/katalvlaran/lvsparse/internal/binstream"
)

// Section tags.
const (
	BeginTag = "BMAT"
	EndTag   = "EMAT"
)

// MaxStreamDim is the largest row or column count a stream may declare.
// Larger headers are rejected before anything is allocated.
const MaxStreamDim = 1 << 24

const (
	opWriteTo  = "WriteTo"
	opReadFrom = "ReadFrom"
	opDecode   = "Decode"
)

var (
	_ io.WriterTo   = (*SparseMatrix[float64])(nil)
	_ io.ReaderFrom = (*SparseMatrix[float64])(nil)
)

// elemSize is the stream width of T.
func elemSize[T Float]() uint64 {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return 4
	}

	return 8
}

// WriteTo encodes m to w.
//
// Errors:
//   - ErrNotImplemented for block formats.
//   - Any error of w.
func (m *SparseMatrix[T]) WriteTo(w io.Writer) (int64, error) {
	if m.csx == nil {
		return 0, sparseErrorf(opWriteTo, fmt.Errorf("%s: %w", m.format, ErrNotImplemented))
	}
	name := m.name
	if name == "" {
		name = DefaultName
	}

	bw := binstream.NewWriter(w)
	bw.PutMarker(binstream.BeginSection, BeginTag)
	bw.PutUint64(elemSize[T]())
	bw.PutString(name)
	bw.PutInt32(int32(m.format))
	bw.PutUint64(uint64(m.nz))
	bw.PutUint64(uint64(m.cols))
	bw.PutUint64(uint64(m.rows))
	if m.nz > 0 {
		binstream.PutSlice(bw, m.values[:m.nz])
		binstream.PutSlice(bw, m.csx.major[:m.nz])
		binstream.PutSlice(bw, m.SecondaryIndex())
	}
	bw.PutMarker(binstream.EndSection, EndTag)

	if err := bw.Err(); err != nil {
		return bw.Count(), sparseErrorf(opWriteTo, err)
	}

	return bw.Count(), nil
}

// record is one decoded, not yet validated, stream record.
type record[T Float] struct {
	name       string
	format     Format
	nz         int
	rows, cols int
	values     []T
	major      []Index
	secondary  []Index
}

// readRecord decodes one record from br.
func readRecord[T Float](br *binstream.Reader) (*record[T], error) {
	br.Marker(binstream.BeginSection, BeginTag)
	size := br.Uint64()
	if br.Err() == nil && size != elemSize[T]() {
		br.Fail(fmt.Errorf("stream %d bytes, want %d: %w", size, elemSize[T](), ErrElementSize))
	}
	rec := &record[T]{name: br.Text(), format: Format(br.Int32())}
	nz, cols, rows := br.Uint64(), br.Uint64(), br.Uint64()
	if err := br.Err(); err != nil {
		return nil, err
	}

	switch {
	case rec.format.IsBlock():
		return nil, fmt.Errorf("%s: %w", rec.format, ErrNotImplemented)
	case !rec.format.IsCompressed():
		return nil, fmt.Errorf("format tag %d: %w", int32(rec.format), ErrUnsupportedFormat)
	}
	switch {
	case nz > math.MaxInt32:
		return nil, fmt.Errorf("nz=%d exceeds %d: %w", nz, math.MaxInt32, ErrInvalidLayout)
	case rows > MaxStreamDim || cols > MaxStreamDim:
		return nil, fmt.Errorf("%dx%d exceeds %d: %w", rows, cols, MaxStreamDim, ErrInvalidLayout)
	case nz > rows*cols:
		return nil, fmt.Errorf("nz=%d %dx%d: %w", nz, rows, cols, ErrInvalidLayout)
	}
	rec.nz, rec.rows, rec.cols = int(nz), int(rows), int(cols)

	lanes := rec.cols
	if rec.format == CSR {
		lanes = rec.rows
	}
	if rec.nz > 0 {
		rec.values = binstream.ReadSlice[T](br, rec.nz)
		rec.major = binstream.ReadSlice[Index](br, rec.nz)
		rec.secondary = binstream.ReadSlice[Index](br, lanes+1)
	} else {
		rec.secondary = make([]Index, lanes+1)
	}
	br.Marker(binstream.EndSection, EndTag)
	if err := br.Err(); err != nil {
		return nil, err
	}

	limit := rec.rows
	if rec.format == CSR {
		limit = rec.cols
	}
	if err := validateCompressed(rec.secondary, rec.major, rec.nz, lanes, limit); err != nil {
		return nil, err
	}

	return rec, nil
}

// install replaces m's contents with a validated record.
func (m *SparseMatrix[T]) install(rec *record[T]) error {
	if err := m.Resize(rec.rows, rec.cols, rec.nz, true, false); err != nil {
		return err
	}
	m.adopt(rec.secondary, rec.major, rec.values, rec.nz)
	m.name = rec.name

	return nil
}

// ReadFrom decodes one record from r into m, replacing its contents.
// The stream format must equal m's format; formats are never converted.
//
// Errors:
//   - ErrNotImplemented for block formats (receiver or stream).
//   - ErrElementSize, ErrUnsupportedFormat, binstream.ErrMarker.
//   - ErrInvalidLayout for nz above MaxInt32 or rows*cols, dimensions above
//     MaxStreamDim, or offsets that do not describe a valid layout.
//   - io.EOF on an empty stream, io.ErrUnexpectedEOF on a truncated one.
func (m *SparseMatrix[T]) ReadFrom(r io.Reader) (int64, error) {
	if m.csx == nil {
		return 0, sparseErrorf(opReadFrom, fmt.Errorf("%s: %w", m.format, ErrNotImplemented))
	}
	br := binstream.NewReader(r)
	rec, err := readRecord[T](br)
	if err != nil {
		return br.Count(), sparseErrorf(opReadFrom, err)
	}
	if rec.format != m.format {
		return br.Count(), sparseErrorf(opReadFrom, fmt.Errorf("stream %s into %s: %w", rec.format, m.format, ErrUnsupportedFormat))
	}
	if err = m.install(rec); err != nil {
		return br.Count(), sparseErrorf(opReadFrom, err)
	}

	return br.Count(), nil
}

// Decode reads one record and returns a new matrix in the stream's format.
// opts configure the new matrix (workers, grow increment); the name always
// comes from the stream.
func Decode[T Float](r io.Reader, opts ...Option) (*SparseMatrix[T], error) {
	rec, err := readRecord[T](binstream.NewReader(r))
	if err != nil {
		return nil, sparseErrorf(opDecode, err)
	}
	m, err := New[T](rec.format, opts...)
	if err != nil {
		return nil, sparseErrorf(opDecode, err)
	}
	if err = m.install(rec); err != nil {
		return nil, sparseErrorf(opDecode, err)
	}

	return m, nil
}
