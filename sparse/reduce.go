// SPDX-License-Identifier: MIT

// Package sparse - reductions and dense-footprint comparison.
//
// Partial results from parallel chunks are combined with + (or OR for
// AreEqual) after every chunk finishes; no chunk stops another.

package sparse

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvsparse/internal/parallel"
)

const (
	opFrobenius = "FrobeniusNorm"
	opSumAbs    = "SumOfAbsElements"
	opSum       = "SumOfElements"
	opAreEqual  = "AreEqual"
)

func add[T Float](a, b T) T { return a + b }

// sumOver reduces f over disjoint chunks of the stored values.
func (m *SparseMatrix[T]) sumOver(f func(vals []T) T) T {
	vals := m.values[:m.nz]

	return parallel.Reduce(m.workers, len(vals), 0, func(lo, hi int) T { return f(vals[lo:hi]) }, add[T])
}

// FrobeniusNorm returns sqrt(Σ v²) over the stored values.
// Errors: ErrEmptyMatrix when the shape has no cells.
func (m *SparseMatrix[T]) FrobeniusNorm() (T, error) {
	if m.IsEmpty() {
		return 0, sparseErrorf(opFrobenius, ErrEmptyMatrix)
	}
	sq := m.sumOver(func(vals []T) T {
		var acc T
		for _, v := range vals {
			acc += v * v
		}
		return acc
	})

	return T(math.Sqrt(float64(sq))), nil
}

// SumOfAbsElements returns Σ |v| over the stored values (BLAS asum per chunk).
// Errors: ErrEmptyMatrix when the shape has no cells.
func (m *SparseMatrix[T]) SumOfAbsElements() (T, error) {
	if m.IsEmpty() {
		return 0, sparseErrorf(opSumAbs, ErrEmptyMatrix)
	}

	return m.sumOver(asum[T]), nil
}

// SumOfElements returns Σ v over the stored values.
// Errors: ErrEmptyMatrix when the shape has no cells.
func (m *SparseMatrix[T]) SumOfElements() (T, error) {
	if m.IsEmpty() {
		return 0, sparseErrorf(opSum, ErrEmptyMatrix)
	}

	return m.sumOver(func(vals []T) T {
		var acc T
		for _, v := range vals {
			acc += v
		}
		return acc
	}), nil
}

// AreEqual compares every logical cell of a and b (stored or not) within
// threshold. Shapes that differ compare unequal without error.
// MAIN DESCRIPTION:
//   - Layout-independent: a CSC and a CSR matrix holding the same cells are equal.
//
// Implementation:
//   - Stage 1: reject nil / empty operands; shape check.
//   - Stage 2: materialize both operands.
//   - Stage 3: OR-reduce a per-chunk mismatch flag over all cells.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyOperand.
//
// Complexity:
//   - Time O(r*c + nz(a) + nz(b)), Space O(r*c).
func AreEqual[T Float](a, b *SparseMatrix[T], threshold T) (bool, error) {
	if a == nil || b == nil {
		return false, sparseErrorf(opAreEqual, ErrNilMatrix)
	}
	if a.IsEmpty() || b.IsEmpty() {
		return false, sparseErrorf(opAreEqual, ErrEmptyOperand)
	}
	if a.rows != b.rows || a.cols != b.cols {
		return false, nil
	}

	da, err := a.ToDense()
	if err != nil {
		return false, sparseErrorf(opAreEqual, err)
	}
	db, err := b.ToDense()
	if err != nil {
		return false, sparseErrorf(opAreEqual, fmt.Errorf("rhs: %w", err))
	}

	x, y := da.Data(), db.Data()
	mismatch := parallel.Any(a.workers, len(x), func(lo, hi int) bool {
		for i := lo; i < hi; i++ {
			if abs(x[i]-y[i]) > threshold {
				return true
			}
		}
		return false
	})

	return !mismatch, nil
}
