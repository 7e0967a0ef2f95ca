// SPDX-License-Identifier: MIT

// Package dense - column-major storage & safe accessors.
//
// Purpose:
//   - Provide the dense collaborator the sparse kernels read from and write into.
//   - Column-major layout (offset = i + j*rows) so that a column is one contiguous
//     slice; sparse scatter kernels accumulate whole columns with BLAS axpy.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//
// Complexity quicksheet:
//   - New: O(r*c) zero-init; At/Set: O(1); Resize: O(r*c) when the shape changes;
//     Zero/Fill: O(r*c); Col: O(1) (no copy).

package dense

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt     = "At"
	ctxSet    = "Set"
	ctxCol    = "Col"
	ctxNew    = "New"
	ctxResize = "Resize"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// Float is the element constraint shared by the dense and sparse packages.
// Exactly the two IEEE widths are admitted; kernels dispatch BLAS by width.
type Float interface {
	float32 | float64
}

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete column-major matrix.
//   - r,c hold dimensions (rows, cols); 0×0 is the legal "empty" state.
//   - data is a flat buffer of length r*c in column-major order (offset = i + j*r).
type Dense[T Float] struct {
	r, c int // row and column counts (>= 0)
	data []T // contiguous column-major storage (len == r*c)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense[float64])(nil)

// New creates an r×c zero matrix using column-major storage.
// MAIN DESCRIPTION:
//   - Public constructor with shape validation.
//
// Implementation:
//   - Stage 1: validate rows>=0 && cols>=0; else ErrBadShape.
//   - Stage 2: allocate zero-filled buffer.
//
// Behavior highlights:
//   - Zero-sized shapes are legal: optimizer state starts empty and is sized
//     lazily by the kernel that first consumes it.
//
// Errors:
//   - ErrBadShape (negative dimension).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func New[T Float](rows, cols int) (*Dense[T], error) {
	if rows < 0 || cols < 0 {
		return nil, denseErrorf(ctxNew, rows, cols, ErrBadShape)
	}

	return &Dense[T]{r: rows, c: cols, data: make([]T, rows*cols)}, nil
}

// NewFromColMajor adopts a copy of a column-major buffer of length rows*cols.
// Complexity: O(r*c).
func NewFromColMajor[T Float](rows, cols int, data []T) (*Dense[T], error) {
	m, err := New[T](rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("Dense.NewFromColMajor: len %d != %d*%d: %w", len(data), rows, cols, ErrDimensionMismatch)
	}
	copy(m.data, data)

	return m, nil
}

// NewFromRows builds a matrix from row slices (handy for literals).
// Every row must have the same length.
// Complexity: O(r*c).
func NewFromRows[T Float](rows [][]T) (*Dense[T], error) {
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	m, err := New[T](r, c)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("Dense.NewFromRows: row %d has %d values, want %d: %w", i, len(rows[i]), c, ErrDimensionMismatch)
		}
		for j = 0; j < c; j++ {
			m.data[i+j*r] = rows[i][j]
		}
	}

	return m, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense[T]) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense[T]) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense[T]) Shape() (rows, cols int) { return m.r, m.c }

// Len returns the number of stored elements (rows*cols).
func (m *Dense[T]) Len() int { return len(m.data) }

// IsEmpty reports whether the matrix holds no elements.
func (m *Dense[T]) IsEmpty() bool { return m.r == 0 || m.c == 0 }

// indexOf computes the column-major offset or returns ErrOutOfRange.
func (m *Dense[T]) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Column-major offset: i + j*r.
	return row + col*m.r, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense[T]) At(row, col int) (T, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense[T]) Set(row, col int, v T) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	m.data[off] = v

	return nil
}

// Resize changes the shape to rows×cols.
// MAIN DESCRIPTION:
//   - Reallocate the buffer when the element count grows; reslice otherwise.
//
// Behavior highlights:
//   - Same shape: no-op, contents preserved.
//   - Different shape: contents are unspecified (callers zero-fill when they
//     need a known state, exactly as the sparse optimizer kernels do).
//
// Errors:
//   - ErrBadShape on negative dimensions.
//
// Complexity:
//   - Time O(r*c) on growth, O(1) otherwise.
func (m *Dense[T]) Resize(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return denseErrorf(ctxResize, rows, cols, ErrBadShape)
	}
	if rows == m.r && cols == m.c {
		return nil
	}
	n := rows * cols
	if n > cap(m.data) {
		m.data = make([]T, n)
	} else {
		m.data = m.data[:n]
	}
	m.r, m.c = rows, cols

	return nil
}

// Zero sets every element to 0. Complexity: O(r*c).
func (m *Dense[T]) Zero() { clear(m.data) }

// Fill sets every element to v. Complexity: O(r*c).
func (m *Dense[T]) Fill(v T) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Col returns column j as a slice sharing the matrix storage.
// Writes through the slice are visible in the matrix.
func (m *Dense[T]) Col(j int) ([]T, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxCol, 0, j, ErrOutOfRange)
	}

	return m.data[j*m.r : (j+1)*m.r : (j+1)*m.r], nil
}

// Data exposes the column-major backing buffer (len == Rows()*Cols()).
// Hot kernels index it directly with offset i + j*Rows().
func (m *Dense[T]) Data() []T { return m.data }

// Clone returns a deep copy with a fresh buffer.
// Complexity: O(r*c).
func (m *Dense[T]) Clone() *Dense[T] {
	cp := make([]T, len(m.data))
	copy(cp, m.data)

	return &Dense[T]{r: m.r, c: m.c, data: cp}
}

// String renders rows as lines with comma-separated values.
// Intended for debugging; not for hot paths.
func (m *Dense[T]) String() string {
	var b strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[i+j*m.r]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
