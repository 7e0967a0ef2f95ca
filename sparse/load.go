// SPDX-License-Identifier: MIT

// Package sparse - bulk load of externally produced compressed-column arrays.
//
// The arrays are validated as a whole before the receiver is touched, then
// copied in three bulk copies. The same validator guards deserialization.

package sparse

import "fmt"

const (
	opLoadCSC = "SetMatrixFromCSCFormat"
	opNewCSC  = "NewFromCSC"
)

// validateCompressed checks that (secondary, major) describe a valid
// compressed layout of nz entries over lanes lanes with major ids in [0, limit).
//
// Checked:
//   - len(secondary) >= lanes+1, len(major) >= nz;
//   - secondary[0] == 0, non-decreasing, every offset <= nz, secondary[lanes] == nz;
//   - major ids in range and strictly increasing inside each lane.
func validateCompressed(secondary, major []Index, nz, lanes, limit int) error {
	if len(secondary) < lanes+1 {
		return fmt.Errorf("secondary length %d, want %d: %w", len(secondary), lanes+1, ErrDimensionMismatch)
	}
	if len(major) < nz {
		return fmt.Errorf("major length %d, want %d: %w", len(major), nz, ErrDimensionMismatch)
	}
	if secondary[0] != 0 {
		return fmt.Errorf("secondary[0] = %d: %w", secondary[0], ErrInvalidLayout)
	}
	if int(secondary[lanes]) != nz {
		return fmt.Errorf("secondary[%d] = %d, want nz %d: %w", lanes, secondary[lanes], nz, ErrInvalidLayout)
	}

	var j, p int
	for j = 0; j < lanes; j++ {
		start, end := int(secondary[j]), int(secondary[j+1])
		if end < start {
			return fmt.Errorf("secondary[%d] = %d < secondary[%d] = %d: %w", j+1, end, j, start, ErrInvalidLayout)
		}
		if end > nz {
			return fmt.Errorf("secondary[%d] = %d exceeds nz %d: %w", j+1, end, nz, ErrInvalidLayout)
		}
		for p = start; p < end; p++ {
			id := int(major[p])
			if id < 0 || id >= limit {
				return fmt.Errorf("major[%d] = %d not in [0,%d): %w", p, id, limit, ErrInvalidLayout)
			}
			if p > start && major[p] <= major[p-1] {
				return fmt.Errorf("major[%d] = %d not above %d in lane %d: %w", p, major[p], major[p-1], j, ErrInvalidLayout)
			}
		}
	}

	return nil
}

// SetMatrixFromCSCFormat adopts external compressed-column arrays.
// MAIN DESCRIPTION:
//   - colPtr has cols+1 offsets, rowIdx and vals hold at least nz entries.
//
// Implementation:
//   - Stage 1: require a CSC receiver and non-negative sizes.
//   - Stage 2: validate the arrays (validateCompressed, len(vals) >= nz).
//   - Stage 3: Resize(rows, cols, nz, growOnly=true, keep=false) and bulk-copy.
//
// Errors:
//   - ErrUnsupportedFormat (receiver not CSC), ErrBadShape,
//     ErrDimensionMismatch (short arrays), ErrInvalidLayout.
//
// Complexity:
//   - Time O(nz + cols), Space O(nz + max(rows,cols)).
func (m *SparseMatrix[T]) SetMatrixFromCSCFormat(colPtr, rowIdx []Index, vals []T, nz, rows, cols int) error {
	if m.format != CSC {
		return sparseErrorf(opLoadCSC, fmt.Errorf("%s: %w", m.format, ErrUnsupportedFormat))
	}
	if nz < 0 || rows < 0 || cols < 0 {
		return sparseErrorf(opLoadCSC, fmt.Errorf("nz=%d %dx%d: %w", nz, rows, cols, ErrBadShape))
	}
	if len(vals) < nz {
		return sparseErrorf(opLoadCSC, fmt.Errorf("values length %d, want %d: %w", len(vals), nz, ErrDimensionMismatch))
	}
	if err := validateCompressed(colPtr, rowIdx, nz, cols, rows); err != nil {
		return sparseErrorf(opLoadCSC, err)
	}

	if err := m.Resize(rows, cols, nz, true, false); err != nil {
		return sparseErrorf(opLoadCSC, err)
	}
	m.adopt(colPtr, rowIdx, vals, nz)

	return nil
}

// adopt copies a validated compressed layout into already sized buffers and
// marks every lane as written.
func (m *SparseMatrix[T]) adopt(secondary, major []Index, vals []T, nz int) {
	lanes := m.majorLanes()
	copy(m.values, vals[:nz])
	copy(m.csx.major, major[:nz])
	copy(m.csx.secondary, secondary[:lanes+1])
	m.nz = nz
	m.csx.lanes = lanes
	m.csx.fillLane = lanes - 1
}

// NewFromCSC builds a CSC matrix from external compressed-column arrays.
// See SetMatrixFromCSCFormat for validation rules.
func NewFromCSC[T Float](colPtr, rowIdx []Index, vals []T, nz, rows, cols int, opts ...Option) (*SparseMatrix[T], error) {
	m, err := New[T](CSC, opts...)
	if err != nil {
		return nil, sparseErrorf(opNewCSC, err)
	}
	if err = m.SetMatrixFromCSCFormat(colPtr, rowIdx, vals, nz, rows, cols); err != nil {
		return nil, sparseErrorf(opNewCSC, err)
	}

	return m, nil
}

const opSetBlocks = "SetBlocks"

// SetBlocks adopts dense segments into a block-sparse matrix of the current
// shape. Segment b is vals[b*L:(b+1)*L] with L = Rows() (BlockSparseColumn)
// or Cols() (BlockSparseRow) and addresses logical column/row ids[b].
//
// Errors:
//   - ErrUnsupportedFormat for CSC/CSR.
//   - ErrDimensionMismatch when len(vals) != len(ids)*L.
//   - ErrInvalidLayout for an id out of range or repeated.
//
// Complexity: O(len(vals) + len(ids)).
func (m *SparseMatrix[T]) SetBlocks(ids []int, vals []T) error {
	if m.blk == nil {
		return sparseErrorf(opSetBlocks, fmt.Errorf("%s: %w", m.format, ErrUnsupportedFormat))
	}
	n := m.blockLen()
	if len(vals) != len(ids)*n {
		return sparseErrorf(opSetBlocks, fmt.Errorf("%d values for %d blocks of %d: %w", len(vals), len(ids), n, ErrDimensionMismatch))
	}
	limit := m.cols
	if m.format == BlockSparseRow {
		limit = m.rows
	}
	seen := make(map[int]struct{}, len(ids))
	for b, id := range ids {
		if id < 0 || id >= limit {
			return sparseErrorf(opSetBlocks, fmt.Errorf("ids[%d] = %d not in [0,%d): %w", b, id, limit, ErrInvalidLayout))
		}
		if _, dup := seen[id]; dup {
			return sparseErrorf(opSetBlocks, fmt.Errorf("ids[%d] = %d repeated: %w", b, id, ErrInvalidLayout))
		}
		seen[id] = struct{}{}
	}

	if err := m.Resize(m.rows, m.cols, len(vals), true, false); err != nil {
		return sparseErrorf(opSetBlocks, err)
	}
	copy(m.values, vals)
	copy(m.blk.ids, ids)
	m.blk.count = len(ids)
	m.nz = len(vals)

	return nil
}
