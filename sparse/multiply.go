// SPDX-License-Identifier: MIT

// Package sparse - dense × sparse products.
//
// Both kernels are outer-product scatters: for each stored RHS value
// (row i, col j, v) a whole dense LHS column is added, scaled by alpha*v, to one
// result column. Cost is O(nz(rhs) × lhs.Rows()), never a dense matmul.
//
// Coverage (other combinations return ErrNotImplemented):
//
//	kernel                  transA  transB  rhs format
//	MultiplyAndWeightedAdd  false   false   CSC
//	MultiplyAndWeightedAdd  false   true    CSC
//	MultiplyAndAdd          false   true    CSC

package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/dense"
	"github.com/katalvlaran/lvsparse/internal/parallel"
)

const (
	opMultiplyWeighted = "MultiplyAndWeightedAdd"
	opMultiplyAdd      = "MultiplyAndAdd"
	opScaleAndAdd      = "ScaleAndAdd"
)

// productDims returns (m, k, l, n) of op(lhs)·op(rhs): op(lhs) is m×k, op(rhs) is l×n.
func productDims[T Float](lhs *dense.Dense[T], transA bool, rhs *SparseMatrix[T], transB bool) (m, k, l, n int) {
	m, k = lhs.Rows(), lhs.Cols()
	if transA {
		m, k = k, m
	}
	l, n = rhs.rows, rhs.cols
	if transB {
		l, n = n, l
	}

	return m, k, l, n
}

// checkProduct validates operands shared by both multiply kernels.
func checkProduct[T Float](lhs *dense.Dense[T], transA bool, rhs *SparseMatrix[T], transB bool) (m, n int, err error) {
	if lhs == nil || rhs == nil {
		return 0, 0, ErrNilMatrix
	}
	if lhs.IsEmpty() || rhs.IsEmpty() {
		return 0, 0, ErrEmptyOperand
	}
	var k, l int
	m, k, l, n = productDims(lhs, transA, rhs, transB)
	if k != l {
		return 0, 0, fmt.Errorf("inner dimensions %d != %d: %w", k, l, ErrDimensionMismatch)
	}

	return m, n, nil
}

// MultiplyAndWeightedAdd computes c = alpha·op(lhs)·op(rhs) + beta·c.
// MAIN DESCRIPTION:
//   - Dense × sparse product accumulated into a dense result.
//
// Implementation:
//   - Stage 1: validate operands and the supported combination; c is not
//     touched when any check fails.
//   - Stage 2: resize c to m×n if needed; beta==0 zero-fills, beta!=1 scales.
//   - Stage 3: scatter. No transpose: c[:,j] += alpha·v·lhs[:,i], fanned out
//     over result columns. Transposed RHS: c[:,i] += alpha·v·lhs[:,j],
//     sequential because several RHS columns hit the same result column.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyOperand, ErrDimensionMismatch.
//   - ErrNotImplemented for transA or a non-CSC rhs.
//
// Complexity:
//   - Time O(m*n) for the beta pass + O(nz(rhs) * lhs.Rows()).
func MultiplyAndWeightedAdd[T Float](alpha T, lhs *dense.Dense[T], transA bool, rhs *SparseMatrix[T], transB bool, beta T, c *dense.Dense[T]) error {
	if c == nil {
		return sparseErrorf(opMultiplyWeighted, ErrNilMatrix)
	}
	m, n, err := checkProduct(lhs, transA, rhs, transB)
	if err != nil {
		return sparseErrorf(opMultiplyWeighted, err)
	}
	if transA {
		return sparseErrorf(opMultiplyWeighted, fmt.Errorf("transposed lhs: %w", ErrNotImplemented))
	}
	if rhs.format != CSC {
		return sparseErrorf(opMultiplyWeighted, fmt.Errorf("rhs %s: %w", rhs.format, ErrNotImplemented))
	}

	if c.Rows() != m || c.Cols() != n {
		if err = c.Resize(m, n); err != nil {
			return sparseErrorf(opMultiplyWeighted, err)
		}
	}
	switch beta {
	case 0:
		c.Zero()
	case 1:
	default:
		scal(beta, c.Data())
	}

	ld := lhs.Rows()
	lhsData, cData := lhs.Data(), c.Data()
	column := func(buf []T, j int) []T { return buf[j*ld : (j+1)*ld] }

	if !transB {
		parallel.ForGrain(rhs.workers, rhs.cols, 1, func(lo, hi int) {
			for j := lo; j < hi; j++ {
				dst := column(cData, j)
				start, end := rhs.laneRange(j)
				for p := start; p < end; p++ {
					axpy(alpha*rhs.values[p], column(lhsData, int(rhs.csx.major[p])), dst)
				}
			}
		})
		return nil
	}

	var j, p int
	for j = 0; j < rhs.cols; j++ {
		src := column(lhsData, j)
		start, end := rhs.laneRange(j)
		for p = start; p < end; p++ {
			axpy(alpha*rhs.values[p], src, column(cData, int(rhs.csx.major[p])))
		}
	}

	return nil
}

// MultiplyAndAdd computes c = alpha·lhs·rhsᵀ as a new BlockSparseColumn matrix.
// MAIN DESCRIPTION:
//   - Each distinct stored RHS row i becomes one dense block holding result
//     column i; blocks are assigned in first-seen order.
//
// Implementation:
//   - Stage 1: validate operands, the combination and c's format.
//   - Stage 2: Reset c and Resize it to m×n with room for m*min(n, nz(rhs)).
//   - Stage 3: for each stored (i, j, v): the first write to row i's block
//     assigns alpha·v·lhs[:,j], later writes accumulate it.
//   - Stage 4: nz = blockCount × m.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyOperand, ErrDimensionMismatch.
//   - ErrUnsupportedFormat when c is not BlockSparseColumn.
//   - ErrNotImplemented for any combination other than (!transA, transB) or a
//     non-CSC rhs.
//   - ErrOverCapacity when the blocks do not fit c's capacity.
//
// Complexity:
//   - Time O(nz(rhs) * m), Space O(m * min(n, nz(rhs))).
func MultiplyAndAdd[T Float](alpha T, lhs *dense.Dense[T], transA bool, rhs *SparseMatrix[T], transB bool, c *SparseMatrix[T]) error {
	if c == nil {
		return sparseErrorf(opMultiplyAdd, ErrNilMatrix)
	}
	m, n, err := checkProduct(lhs, transA, rhs, transB)
	if err != nil {
		return sparseErrorf(opMultiplyAdd, err)
	}
	if c.format != BlockSparseColumn {
		return sparseErrorf(opMultiplyAdd, fmt.Errorf("result %s: %w", c.format, ErrUnsupportedFormat))
	}
	if transA || !transB {
		return sparseErrorf(opMultiplyAdd, fmt.Errorf("transA=%t transB=%t: %w", transA, transB, ErrNotImplemented))
	}
	if rhs.format != CSC {
		return sparseErrorf(opMultiplyAdd, fmt.Errorf("rhs %s: %w", rhs.format, ErrNotImplemented))
	}

	c.Reset()
	if err = c.Resize(m, n, m*min(n, rhs.nz), true, false); err != nil {
		return sparseErrorf(opMultiplyAdd, err)
	}

	ld := lhs.Rows()
	lhsData := lhs.Data()
	slot := make(map[int]int, min(n, rhs.nz))
	var j, p, h int
	for j = 0; j < rhs.cols; j++ {
		src := lhsData[j*ld : (j+1)*ld]
		start, end := rhs.laneRange(j)
		for p = start; p < end; p++ {
			i := int(rhs.csx.major[p])
			av := alpha * rhs.values[p]
			id, seen := slot[i]
			if !seen {
				id = c.blk.count
				if (id+1)*m > len(c.values) {
					return sparseErrorf(opMultiplyAdd, fmt.Errorf("%d blocks of %d: %w", id+1, m, ErrOverCapacity))
				}
				slot[i] = id
				c.blk.ids[id] = i
				c.blk.count++
			}
			dst := c.values[id*m : (id+1)*m]
			if !seen {
				for h = range dst {
					dst[h] = av * src[h]
				}
				continue
			}
			axpy(av, src, dst)
		}
	}

	c.nz = c.blk.count * m
	if c.nz > len(c.values) {
		return sparseErrorf(opMultiplyAdd, fmt.Errorf("nz %d > capacity %d: %w", c.nz, len(c.values), ErrOverCapacity))
	}

	return nil
}

// ScaleAndAdd computes rhs += alpha·lhs in place, for any sparse layout.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyOperand, ErrDimensionMismatch (shapes must match exactly).
//
// Complexity: O(nz(lhs)).
func ScaleAndAdd[T Float](alpha T, lhs *SparseMatrix[T], rhs *dense.Dense[T]) error {
	if lhs == nil || rhs == nil {
		return sparseErrorf(opScaleAndAdd, ErrNilMatrix)
	}
	if lhs.IsEmpty() || rhs.IsEmpty() {
		return sparseErrorf(opScaleAndAdd, ErrEmptyOperand)
	}
	if lhs.rows != rhs.Rows() || lhs.cols != rhs.Cols() {
		return sparseErrorf(opScaleAndAdd, fmt.Errorf("%dx%d vs %dx%d: %w", lhs.rows, lhs.cols, rhs.Rows(), rhs.Cols(), ErrDimensionMismatch))
	}
	lhs.scatterInto(rhs.Data(), alpha, true)

	return nil
}
