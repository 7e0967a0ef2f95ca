// SPDX-License-Identifier: MIT

// Package sparse - storage container (four layouts) & incremental fill.
//
// Purpose:
//   - Own the raw buffers of whichever layout is active and manage their capacity.
//   - Provide strict incremental insertion (SetValue), cheap reuse (Reset) and
//     layout-aware accessors.
//
// Layout summary:
//   - values has length Capacity(); the live prefix is values[:NzCount()].
//   - Compressed family (CSC/CSR): major[p] is the row id (CSC) or column id (CSR)
//     of values[p]; lane j occupies [secondary[j], secondary[j+1]).
//   - Block family: values holds BlockCount() dense segments of length Rows()
//     (BlockSparseColumn) or Cols() (BlockSparseRow); ids[b] names the logical
//     column/row of segment b.
//
// Complexity quicksheet:
//   - SetValue: amortized O(1); Reset: O(1); Resize: O(capacity) on reallocation;
//     At: O(log lane) compressed, O(blocks) block; ToDense: O(r*c + nz).

package sparse

import (
	"fmt"
	"slices"
	"strings"

	"github.com/katalvlaran/lvsparse/dense"
)

// Operation name constants for unified error wrapping.
const (
	opNew      = "New"
	opResize   = "Resize"
	opSetValue = "SetValue"
	opAt       = "At"
	opToDense  = "ToDense"
)

// compressed is the CSC/CSR storage variant.
type compressed struct {
	major     []Index // len == capacity; major id per stored value
	secondary []Index // len == secondary capacity; lane offsets
	fillLane  int     // last lane written by SetValue; -1 = none
	lanes     int     // secondary[0..lanes] is valid; lanes >= lanes read as empty
}

// blocks is the block-sparse storage variant.
type blocks struct {
	ids   []int // len == secondary capacity; logical column/row per segment
	count int   // number of live segments
}

// SparseMatrix is a CPU sparse matrix in one of four layouts.
// Exactly one of csx / blk is non-nil, selected by format at construction.
// A SparseMatrix exclusively owns its buffers and is not safe for concurrent
// mutation.
type SparseMatrix[T Float] struct {
	format     Format
	rows, cols int
	nz         int
	values     []T // len == capacity
	secCap     int // max(rows, cols) + 1 once sized
	csx        *compressed
	blk        *blocks

	name          string
	workers       int
	growIncrement int
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*SparseMatrix[float64])(nil)

// New creates an empty matrix with the given layout.
// MAIN DESCRIPTION:
//   - Select the storage variant once; optionally size it via WithShape.
//
// Implementation:
//   - Stage 1: validate format.
//   - Stage 2: resolve options and build the variant.
//   - Stage 3: Resize(rows, cols, reserve, growOnly=true, keep=false) when shaped.
//
// Errors:
//   - ErrUnsupportedFormat for an unknown format.
//
// Complexity:
//   - Time O(reserve + max(rows, cols)), Space same.
func New[T Float](format Format, opts ...Option) (*SparseMatrix[T], error) {
	if !format.Valid() {
		return nil, sparseErrorf(opNew, fmt.Errorf("format %d: %w", format, ErrUnsupportedFormat))
	}
	o := gatherOptions(opts...)
	m := &SparseMatrix[T]{
		format:        format,
		name:          o.name,
		workers:       o.workers,
		growIncrement: o.growIncrement,
	}
	if format.IsCompressed() {
		m.csx = &compressed{fillLane: -1}
	} else {
		m.blk = &blocks{}
	}
	if o.shaped {
		if err := m.Resize(o.rows, o.cols, o.reserve, true, false); err != nil {
			return nil, sparseErrorf(opNew, err)
		}
	}

	return m, nil
}

// Format returns the storage layout.
func (m *SparseMatrix[T]) Format() Format { return m.format }

// Rows returns the logical row count.
func (m *SparseMatrix[T]) Rows() int { return m.rows }

// Cols returns the logical column count.
func (m *SparseMatrix[T]) Cols() int { return m.cols }

// Shape returns (Rows, Cols).
func (m *SparseMatrix[T]) Shape() (rows, cols int) { return m.rows, m.cols }

// NzCount returns the number of stored (active) values.
func (m *SparseMatrix[T]) NzCount() int { return m.nz }

// Capacity returns the allocated length of the values / major-index buffers.
func (m *SparseMatrix[T]) Capacity() int { return len(m.values) }

// SecondaryIndexCapacity returns max(rows, cols)+1 once the matrix has been sized.
func (m *SparseMatrix[T]) SecondaryIndexCapacity() int { return m.secCap }

// BlockCount returns the number of live dense segments (block formats only; 0 otherwise).
func (m *SparseMatrix[T]) BlockCount() int {
	if m.blk == nil {
		return 0
	}

	return m.blk.count
}

// Name returns the display label.
func (m *SparseMatrix[T]) Name() string { return m.name }

// SetName replaces the display label.
func (m *SparseMatrix[T]) SetName(name string) { m.name = name }

// IsEmpty reports whether the logical shape has no cells.
func (m *SparseMatrix[T]) IsEmpty() bool { return m.rows == 0 || m.cols == 0 }

// NzValues returns the live value buffer (shared; writes are visible).
func (m *SparseMatrix[T]) NzValues() []T { return m.values[:m.nz] }

// MajorIndex returns the live major-index buffer of a compressed matrix
// (shared), or nil for block formats.
func (m *SparseMatrix[T]) MajorIndex() []Index {
	if m.csx == nil {
		return nil
	}

	return m.csx.major[:m.nz]
}

// SecondaryIndex returns a copy of the lane offsets of a compressed matrix,
// length lanes+1 (Cols()+1 for CSC, Rows()+1 for CSR). Lanes not yet
// written are reported as empty, so the result is always a valid layout.
// Returns nil for block formats.
func (m *SparseMatrix[T]) SecondaryIndex() []Index {
	if m.csx == nil {
		return nil
	}
	n := m.majorLanes()
	out := make([]Index, n+1)
	if m.csx.lanes > 0 {
		copy(out, m.csx.secondary[:m.csx.lanes+1])
	}
	for j := m.csx.lanes + 1; j <= n; j++ {
		out[j] = Index(m.nz)
	}

	return out
}

// BlockIDs returns the live block id list (shared), or nil for compressed formats.
func (m *SparseMatrix[T]) BlockIDs() []int {
	if m.blk == nil {
		return nil
	}

	return m.blk.ids[:m.blk.count]
}

// majorLanes is the lane count of a compressed layout.
func (m *SparseMatrix[T]) majorLanes() int {
	if m.format == CSC {
		return m.cols
	}

	return m.rows
}

// blockLen is the segment length of a block layout.
func (m *SparseMatrix[T]) blockLen() int {
	if m.format == BlockSparseColumn {
		return m.rows
	}

	return m.cols
}

// laneRange returns the [start, end) value range of compressed lane j.
// Lanes beyond the last written lane are empty.
func (m *SparseMatrix[T]) laneRange(j int) (start, end int) {
	if j >= m.csx.lanes {
		return 0, 0
	}

	return int(m.csx.secondary[j]), int(m.csx.secondary[j+1])
}

// Resize sets the shape and (re)allocates buffers.
// MAIN DESCRIPTION:
//   - Capacity-preserving (growOnly) or capacity-resetting reallocation.
//
// Implementation:
//   - Stage 1: validate sizes; a shape change downgrades keepExisting to false.
//   - Stage 2: reallocate when capacity < reserve, when !growOnly and
//     capacity > reserve, or when the secondary-index capacity changes.
//   - Stage 3: with keepExisting, copy the live range into the fresh buffers.
//   - Stage 4: without keepExisting, logically empty the matrix (Reset).
//
// Behavior highlights:
//   - All checks run before mutation; a failed Resize leaves m untouched.
//
// Errors:
//   - ErrBadShape for negative sizes.
//   - ErrCapacityPreservation when keepExisting would truncate live data.
//
// Complexity:
//   - Time O(reserve + max(rows,cols)) on reallocation, O(1) otherwise.
func (m *SparseMatrix[T]) Resize(rows, cols, reserve int, growOnly, keepExisting bool) error {
	if rows < 0 || cols < 0 || reserve < 0 {
		return sparseErrorf(opResize, fmt.Errorf("(%d,%d,%d): %w", rows, cols, reserve, ErrBadShape))
	}
	if m.rows != rows || m.cols != cols {
		keepExisting = false
	}

	newSec := max(rows, cols) + 1
	capNow := len(m.values)
	reallocate := capNow < reserve || (capNow > reserve && !growOnly) || m.secCap != newSec
	if reallocate && keepExisting && (m.nz > reserve || m.secCap > newSec) {
		return sparseErrorf(opResize, fmt.Errorf("nz %d > reserve %d: %w", m.nz, reserve, ErrCapacityPreservation))
	}

	m.rows, m.cols = rows, cols
	if reallocate {
		values := make([]T, reserve)
		if keepExisting {
			copy(values, m.values[:m.nz])
		}
		if m.csx != nil {
			major := make([]Index, reserve)
			secondary := make([]Index, newSec)
			if keepExisting {
				copy(major, m.csx.major[:m.nz])
				copy(secondary, m.csx.secondary)
			}
			m.csx.major, m.csx.secondary = major, secondary
		} else {
			ids := make([]int, newSec)
			if keepExisting {
				copy(ids, m.blk.ids)
			}
			m.blk.ids = ids
		}
		m.values = values
		m.secCap = newSec
	}
	if !keepExisting {
		m.Reset()
	}

	return nil
}

// Reset logically empties the matrix; buffers keep their capacity for reuse.
// Complexity: O(1).
func (m *SparseMatrix[T]) Reset() {
	m.nz = 0
	if m.csx != nil {
		m.csx.fillLane = -1
		m.csx.lanes = 0
	}
	if m.blk != nil {
		m.blk.count = 0
	}
}

// SetValue appends v at (row, col) to a compressed matrix.
// MAIN DESCRIPTION:
//   - Strict incremental fill: lane-major (columns for CSC, rows for CSR),
//     strictly increasing major index within a lane. No sorting is performed.
//
// Implementation:
//   - Stage 1: validate format and bounds; map (row,col) to (major, lane).
//   - Stage 2: enforce ordering against the current fill lane.
//   - Stage 3: grow by the grow increment when full (keeping values).
//   - Stage 4: on a lane transition stamp secondary[lane] = nz (skipped lanes
//     are stamped empty); write; stamp secondary[lane+1] = nz+1.
//
// Errors:
//   - ErrUnsupportedFormat for block formats.
//   - ErrOutOfRange for invalid row/col.
//   - ErrFillOrder for a lane that goes backwards or a non-increasing major index.
//
// Complexity:
//   - Amortized O(1); O(capacity) on growth.
func (m *SparseMatrix[T]) SetValue(row, col int, v T) error {
	c := m.csx
	if c == nil {
		return sparseErrorf(opSetValue, fmt.Errorf("%s: %w", m.format, ErrUnsupportedFormat))
	}
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return sparseErrorf(opSetValue, fmt.Errorf("(%d,%d) in %dx%d: %w", row, col, m.rows, m.cols, ErrOutOfRange))
	}

	major, lane := laneCoords(m.format, row, col)
	if c.fillLane >= 0 {
		if lane < c.fillLane {
			return sparseErrorf(opSetValue, fmt.Errorf("lane %d after lane %d: %w", lane, c.fillLane, ErrFillOrder))
		}
		if lane == c.fillLane && m.nz > int(c.secondary[lane]) && Index(major) <= c.major[m.nz-1] {
			return sparseErrorf(opSetValue, fmt.Errorf("index %d after %d in lane %d: %w", major, c.major[m.nz-1], lane, ErrFillOrder))
		}
	}

	if len(m.values) < m.nz+1 {
		if err := m.Resize(m.rows, m.cols, m.nz+m.growIncrement, true, true); err != nil {
			return sparseErrorf(opSetValue, err)
		}
	}

	if lane != c.fillLane {
		for j := c.fillLane + 1; j <= lane; j++ {
			c.secondary[j] = Index(m.nz)
		}
		c.fillLane = lane
	}
	m.values[m.nz] = v
	c.major[m.nz] = Index(major)
	c.secondary[lane+1] = Index(m.nz + 1)
	m.nz++
	if lane+1 > c.lanes {
		c.lanes = lane + 1
	}

	return nil
}

// seal stamps every unwritten trailing lane empty so all lanes are readable.
func (m *SparseMatrix[T]) seal() {
	c := m.csx
	n := m.majorLanes()
	for j := c.lanes + 1; j <= n; j++ {
		c.secondary[j] = Index(m.nz)
	}
	if c.lanes == 0 {
		c.secondary[0] = 0
	}
	c.lanes = n
	c.fillLane = max(c.fillLane, n-1)
}

// At returns the logical value at (row, col); cells not stored read as 0.
// Complexity: O(log k) for a lane of k values (compressed), O(blocks) (block).
func (m *SparseMatrix[T]) At(row, col int) (T, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, sparseErrorf(opAt, fmt.Errorf("(%d,%d) in %dx%d: %w", row, col, m.rows, m.cols, ErrOutOfRange))
	}
	if m.csx != nil {
		major, lane := laneCoords(m.format, row, col)
		start, end := m.laneRange(lane)
		if i, ok := slices.BinarySearch(m.csx.major[start:end], Index(major)); ok {
			return m.values[start+i], nil
		}

		return 0, nil
	}

	id, off := col, row
	if m.format == BlockSparseRow {
		id, off = row, col
	}
	n := m.blockLen()
	for b := 0; b < m.blk.count; b++ {
		if m.blk.ids[b] == id {
			return m.values[b*n+off], nil
		}
	}

	return 0, nil
}

// ToDense materializes every logical cell into a new column-major Dense.
// Complexity: O(r*c + nz).
func (m *SparseMatrix[T]) ToDense() (*dense.Dense[T], error) {
	out, err := dense.New[T](m.rows, m.cols)
	if err != nil {
		return nil, sparseErrorf(opToDense, err)
	}
	m.scatterInto(out.Data(), 1, false)

	return out, nil
}

// scatterInto writes (or accumulates, when add is true) alpha*value into the
// column-major buffer dst of shape Rows()×Cols().
func (m *SparseMatrix[T]) scatterInto(dst []T, alpha T, add bool) {
	ld := m.rows
	put := func(off int, v T) {
		if add {
			dst[off] += alpha * v
		} else {
			dst[off] = alpha * v
		}
	}

	if m.csx != nil {
		var j, p, row, col int
		for j = 0; j < m.majorLanes(); j++ {
			start, end := m.laneRange(j)
			for p = start; p < end; p++ {
				row, col = cellCoords(m.format, int(m.csx.major[p]), j)
				put(row+col*ld, m.values[p])
			}
		}
		return
	}

	n := m.blockLen()
	var b, p, row, col int
	for b = 0; b < m.blk.count; b++ {
		id := m.blk.ids[b]
		base := b * n
		for p = 0; p < n; p++ {
			row, col = blockCell(m.format, id, p)
			put(row+col*ld, m.values[base+p])
		}
	}
}

// String renders the stored entries lane by lane (compressed) or block by
// block (block formats) for diagnostics.
func (m *SparseMatrix[T]) String() string {
	var b strings.Builder
	name := m.name
	if name == "" {
		name = DefaultName
	}
	fmt.Fprintf(&b, "%s %s %dx%d nz=%d\n", name, m.format, m.rows, m.cols, m.nz)

	if m.csx != nil {
		for j := 0; j < m.majorLanes(); j++ {
			start, end := m.laneRange(j)
			if start == end {
				continue
			}
			fmt.Fprintf(&b, "%d:", j)
			for p := start; p < end; p++ {
				fmt.Fprintf(&b, " %d:%g", m.csx.major[p], m.values[p])
			}
			b.WriteString("\n")
		}
		return b.String()
	}

	n := m.blockLen()
	for k := 0; k < m.blk.count; k++ {
		fmt.Fprintf(&b, "[%d]", m.blk.ids[k])
		for _, v := range m.values[k*n : (k+1)*n] {
			fmt.Fprintf(&b, " %g", v)
		}
		b.WriteString("\n")
	}

	return b.String()
}
