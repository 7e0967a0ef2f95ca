// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// This file defines ONLY package-level sentinel errors. Kernels return them
// wrapped with an operation tag (sparseErrorf) and tests match them via
// errors.Is. No kernel panics on caller-triggered conditions.

package sparse

import (
	"errors"
	"fmt"
)

// ERROR FAMILIES
// --------------
// Contract errors: caller misuse, never retryable.
// Capability gaps: ErrNotImplemented only; a known, intentional coverage hole
// in an otherwise general kernel ("unsupported, not broken").
// Capacity overflow: ErrOverCapacity only.

var (
	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("sparse: nil matrix")

	// ErrBadShape is returned for negative dimensions or an empty slice request.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrOutOfRange indicates a row, column or lane index outside valid bounds.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrEmptyOperand is returned when an arithmetic operand has no elements.
	ErrEmptyOperand = errors.New("sparse: empty operand")

	// ErrEmptyMatrix is returned by reductions over a matrix with no elements.
	ErrEmptyMatrix = errors.New("sparse: empty matrix")

	// ErrFillOrder signals an incremental insertion out of lane-major,
	// within-lane-increasing order.
	ErrFillOrder = errors.New("sparse: insertion out of order")

	// ErrCapacityPreservation signals a Resize asked to keep live data that
	// does not fit the requested capacity.
	ErrCapacityPreservation = errors.New("sparse: cannot keep values in smaller capacity")

	// ErrUnsupportedFormat signals a (format, operation) pair that is invalid by contract.
	ErrUnsupportedFormat = errors.New("sparse: unsupported format for operation")

	// ErrInvalidLayout signals externally supplied index arrays that do not
	// form a valid compressed layout.
	ErrInvalidLayout = errors.New("sparse: invalid compressed layout")

	// ErrElementSize is returned when a stream was written with another element width.
	ErrElementSize = errors.New("sparse: element size mismatch")

	// ErrBuilderSealed is returned when a Builder is used after Build.
	ErrBuilderSealed = errors.New("sparse: builder already built")

	// ErrNotImplemented marks a format or transpose combination the kernel
	// does not cover.
	ErrNotImplemented = errors.New("sparse: operation not implemented")

	// ErrOverCapacity signals that an accumulated result exceeds the reserved capacity.
	ErrOverCapacity = errors.New("sparse: result exceeds reserved capacity")
)

// sparseErrorf wraps err with an operation tag, preserving it for errors.Is.
// Use only when err != nil.
func sparseErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// IsCapabilityGap reports whether err denotes an intentionally unimplemented path.
func IsCapabilityGap(err error) bool { return errors.Is(err, ErrNotImplemented) }
