// SPDX-License-Identifier: MIT

// Package sparse - optimizer update rules.
//
// The receiver is the current gradient; c is the dense optimizer state of the
// same logical shape. When c is empty or shaped differently it is resized and
// zeroed before use. Both kernels overwrite the stored gradient values.

package sparse

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvsparse/dense"
	"github.com/katalvlaran/lvsparse/internal/parallel"
)

// AdagradFloor is added under the square root of the accumulated squared gradient.
const AdagradFloor = 1e-16

const (
	opNormalGrad = "NormalGrad"
	opAdagrad    = "Adagrad"
)

// prepareState sizes and zeroes c when it does not match m.
func (m *SparseMatrix[T]) prepareState(c *dense.Dense[T]) error {
	if !c.IsEmpty() && c.Rows() == m.rows && c.Cols() == m.cols {
		return nil
	}
	if err := c.Resize(m.rows, m.cols); err != nil {
		return err
	}
	c.Zero()

	return nil
}

// NormalGrad applies momentum smoothing to a block-sparse gradient:
//
//	c = (1-momentum)·grad + momentum·c;  grad = c
//
// Only the cells covered by live blocks are read or written. Blocks address
// distinct rows/columns, so they are processed in parallel.
//
// Errors:
//   - ErrNilMatrix when c is nil.
//   - ErrUnsupportedFormat for CSC/CSR.
func (m *SparseMatrix[T]) NormalGrad(c *dense.Dense[T], momentum T) error {
	if c == nil {
		return sparseErrorf(opNormalGrad, ErrNilMatrix)
	}
	if m.blk == nil {
		return sparseErrorf(opNormalGrad, fmt.Errorf("%s: %w", m.format, ErrUnsupportedFormat))
	}
	if err := m.prepareState(c); err != nil {
		return sparseErrorf(opNormalGrad, err)
	}

	state, ld, n := c.Data(), m.rows, m.blockLen()
	parallel.ForGrain(m.workers, m.blk.count, 1, func(lo, hi int) {
		var row, col, off int
		for b := lo; b < hi; b++ {
			id := m.blk.ids[b]
			seg := m.values[b*n : (b+1)*n]
			for p, g := range seg {
				row, col = blockCell(m.format, id, p)
				off = row + col*ld
				state[off] = (1-momentum)*g + momentum*state[off]
				seg[p] = state[off]
			}
		}
	})

	return nil
}

// Adagrad rescales every stored gradient by its accumulated history:
//
//	c += g²;  g /= sqrt(AdagradFloor + c)
//
// When needAveMultiplier is set the mean of 1/sqrt(AdagradFloor + c) over the
// stored values is returned; otherwise, or when nothing is stored, 1.
//
// Errors:
//   - ErrNilMatrix when c is nil.
func (m *SparseMatrix[T]) Adagrad(c *dense.Dense[T], needAveMultiplier bool) (T, error) {
	if c == nil {
		return 0, sparseErrorf(opAdagrad, ErrNilMatrix)
	}
	if err := m.prepareState(c); err != nil {
		return 0, sparseErrorf(opAdagrad, err)
	}

	state, ld := c.Data(), m.rows
	update := func(p, off int) T {
		g := m.values[p]
		state[off] += g * g
		a := T(math.Sqrt(float64(AdagradFloor + state[off])))
		m.values[p] = g / a

		return 1 / a
	}
	sum := func(a, b T) T { return a + b }

	var total T
	if m.csx != nil {
		total = parallel.Reduce(m.workers, m.majorLanes(), 0, func(lo, hi int) T {
			var acc T
			var row, col int
			for j := lo; j < hi; j++ {
				start, end := m.laneRange(j)
				for p := start; p < end; p++ {
					row, col = cellCoords(m.format, int(m.csx.major[p]), j)
					acc += update(p, row+col*ld)
				}
			}
			return acc
		}, sum)
	} else {
		n := m.blockLen()
		total = parallel.Reduce(m.workers, m.blk.count, 0, func(lo, hi int) T {
			var acc T
			var row, col int
			for b := lo; b < hi; b++ {
				id := m.blk.ids[b]
				for i := 0; i < n; i++ {
					row, col = blockCell(m.format, id, i)
					acc += update(b*n+i, row+col*ld)
				}
			}
			return acc
		}, sum)
	}

	if needAveMultiplier && m.nz > 0 {
		return total / T(m.nz), nil
	}

	return 1, nil
}
