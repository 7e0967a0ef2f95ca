// SPDX-License-Identifier: MIT
// Package dense: sentinel error set.
// All methods return these sentinels (optionally wrapped with coordinates via
// %w); tests match them with errors.Is. No method panics on caller input.

package dense

import "errors"

var (
	// ErrBadShape is returned when requested dimensions are negative.
	ErrBadShape = errors.New("dense: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("dense: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes.
	ErrDimensionMismatch = errors.New("dense: dimension mismatch")

	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("dense: nil matrix")
)
