// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/dense"
	"github.com/katalvlaran/lvsparse/internal/parallel"
)

const opColumnSlice = "ColumnSliceToDense"

// ColumnSliceToDense materializes columns [start, start+count) of a CSC
// matrix into a new Rows()×count dense matrix. Columns are independent and
// are filled in parallel.
//
// Errors:
//   - ErrBadShape when count == 0 (or negative).
//   - ErrOutOfRange when the range leaves [0, Cols()).
//   - ErrNotImplemented for any format other than CSC.
//
// Complexity: O(rows*count + nz in range).
func (m *SparseMatrix[T]) ColumnSliceToDense(start, count int) (*dense.Dense[T], error) {
	if count <= 0 {
		return nil, sparseErrorf(opColumnSlice, fmt.Errorf("count %d: %w", count, ErrBadShape))
	}
	if start < 0 || start+count > m.cols {
		return nil, sparseErrorf(opColumnSlice, fmt.Errorf("[%d,%d) of %d columns: %w", start, start+count, m.cols, ErrOutOfRange))
	}
	if m.format != CSC {
		return nil, sparseErrorf(opColumnSlice, fmt.Errorf("%s: %w", m.format, ErrNotImplemented))
	}

	out, err := dense.New[T](m.rows, count)
	if err != nil {
		return nil, sparseErrorf(opColumnSlice, err)
	}
	data, ld := out.Data(), m.rows
	parallel.ForGrain(m.workers, count, 1, func(lo, hi int) {
		for j := lo; j < hi; j++ {
			from, to := m.laneRange(start + j)
			for p := from; p < to; p++ {
				data[int(m.csx.major[p])+j*ld] = m.values[p]
			}
		}
	})

	return out, nil
}
