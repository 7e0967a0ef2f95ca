// SPDX-License-Identifier: MIT

package sparse

import "fmt"

const (
	opNewBuilder = "NewBuilder"
	opBuilderAdd = "Builder.Add"
	opBuild      = "Builder.Build"
)

// Builder accumulates strictly ordered entries of a CSC or CSR matrix and
// finalizes them with Build. Entries must arrive lane-major (column by column
// for CSC, row by row for CSR) with strictly increasing major index inside a
// lane; anything else is rejected with ErrFillOrder.
//
// After Build the builder is sealed: Add and Build return ErrBuilderSealed and
// the built matrix is owned by the caller.
type Builder[T Float] struct {
	m      *SparseMatrix[T]
	sealed bool
}

// NewBuilder starts a builder for a rows×cols compressed matrix.
// opts are forwarded to New (name, workers, grow increment); the shape is
// always rows×cols.
func NewBuilder[T Float](format Format, rows, cols int, opts ...Option) (*Builder[T], error) {
	if !format.IsCompressed() {
		return nil, sparseErrorf(opNewBuilder, fmt.Errorf("%s: %w", format, ErrUnsupportedFormat))
	}
	if rows < 0 || cols < 0 {
		return nil, sparseErrorf(opNewBuilder, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape))
	}
	m, err := New[T](format, append(opts[:len(opts):len(opts)], WithShape(rows, cols, 0))...)
	if err != nil {
		return nil, sparseErrorf(opNewBuilder, err)
	}

	return &Builder[T]{m: m}, nil
}

// Add appends v at (row, col).
func (b *Builder[T]) Add(row, col int, v T) error {
	if b.sealed {
		return sparseErrorf(opBuilderAdd, ErrBuilderSealed)
	}
	if err := b.m.SetValue(row, col, v); err != nil {
		return sparseErrorf(opBuilderAdd, err)
	}

	return nil
}

// Len returns the number of entries added so far.
func (b *Builder[T]) Len() int { return b.m.nz }

// Build seals every lane and returns the matrix.
func (b *Builder[T]) Build() (*SparseMatrix[T], error) {
	if b.sealed {
		return nil, sparseErrorf(opBuild, ErrBuilderSealed)
	}
	b.m.seal()
	b.sealed = true

	return b.m, nil
}
