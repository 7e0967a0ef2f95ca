// SPDX-License-Identifier: MIT

package sparse

import "github.com/katalvlaran/lvsparse/dense"

// Float is the element constraint (float32 or float64).
type Float = dense.Float

// Index is the element type of the major and secondary index arrays.
type Index = int32

// Format selects one of the four storage layouts. It is fixed at construction.
// The numeric values are the serialized format tags.
type Format int32

const (
	// CSC stores nonzeros column by column; major index = row id.
	CSC Format = iota + 1
	// CSR stores nonzeros row by row; major index = column id.
	CSR
	// BlockSparseColumn stores whole dense columns addressed by column id.
	BlockSparseColumn
	// BlockSparseRow stores whole dense rows addressed by row id.
	BlockSparseRow
)

// String returns a short human-readable name.
func (f Format) String() string {
	switch f {
	case CSC:
		return "CSC"
	case CSR:
		return "CSR"
	case BlockSparseColumn:
		return "BlockSparseColumn"
	case BlockSparseRow:
		return "BlockSparseRow"
	default:
		return "Format(?)"
	}
}

// Valid reports whether f is one of the four layouts.
func (f Format) Valid() bool { return f >= CSC && f <= BlockSparseRow }

// IsCompressed reports the compressed-index family (CSC, CSR).
func (f Format) IsCompressed() bool { return f == CSC || f == CSR }

// IsBlock reports the block-sparse family.
func (f Format) IsBlock() bool { return f == BlockSparseColumn || f == BlockSparseRow }

// laneCoords maps (row, col) to (major index, lane) for a compressed format.
func laneCoords(f Format, row, col int) (major, lane int) {
	if f == CSC {
		return row, col
	}

	return col, row
}

// cellCoords is the inverse of laneCoords.
func cellCoords(f Format, major, lane int) (row, col int) {
	if f == CSC {
		return major, lane
	}

	return lane, major
}

// blockCell maps offset p inside the block addressed by id to (row, col).
func blockCell(f Format, id, p int) (row, col int) {
	if f == BlockSparseColumn {
		return p, id
	}

	return id, p
}
