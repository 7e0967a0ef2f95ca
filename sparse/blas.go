// SPDX-License-Identifier: MIT

package sparse

import (
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"
)

// Width-generic BLAS level-1 dispatch. T is float32 or float64, so exactly
// one case of each switch matches.

func vec64(x []float64) blas64.Vector { return blas64.Vector{N: len(x), Data: x, Inc: 1} }

func vec32(x []float32) blas32.Vector { return blas32.Vector{N: len(x), Data: x, Inc: 1} }

// axpy computes y += alpha*x; len(x) must equal len(y).
func axpy[T Float](alpha T, x, y []T) {
	if len(x) == 0 {
		return
	}
	switch xs := any(x).(type) {
	case []float64:
		blas64.Axpy(float64(alpha), vec64(xs), vec64(any(y).([]float64)))
	case []float32:
		blas32.Axpy(float32(alpha), vec32(xs), vec32(any(y).([]float32)))
	}
}

// scal computes x *= alpha.
func scal[T Float](alpha T, x []T) {
	if len(x) == 0 {
		return
	}
	switch xs := any(x).(type) {
	case []float64:
		blas64.Scal(float64(alpha), vec64(xs))
	case []float32:
		blas32.Scal(float32(alpha), vec32(xs))
	}
}

// asum returns the sum of |x[i]|.
func asum[T Float](x []T) T {
	if len(x) == 0 {
		return 0
	}
	switch xs := any(x).(type) {
	case []float64:
		return T(blas64.Asum(vec64(xs)))
	case []float32:
		return T(blas32.Asum(vec32(xs)))
	}

	return 0
}
