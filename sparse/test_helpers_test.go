// SPDX-License-Identifier: MIT
// Package sparse_test contains test helpers
//
// Purpose:
//   - Build small deterministic fixtures (ordered entries, dense literals).
//   - Convert fixtures to gonum matrices so kernels can be checked against mat.

package sparse_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvsparse/dense"
	"github.com/katalvlaran/lvsparse/sparse"
)

// tol is the absolute tolerance for float64 kernel comparisons.
const tol = 1e-12

// entry is one (row, col, value) triple in fill order.
type entry struct {
	r, c int
	v    float64
}

// sample4x3 is a CSC fill sequence with an empty middle column:
//
//	[1 0 0]
//	[0 0 3]
//	[2 0 0]
//	[0 0 4]
var sample4x3 = []entry{{0, 0, 1}, {2, 0, 2}, {1, 2, 3}, {3, 2, 4}}

// MustBuild builds a compressed matrix from ordered entries or fails the test.
func MustBuild(t *testing.T, f sparse.Format, rows, cols int, es []entry, opts ...sparse.Option) *sparse.SparseMatrix[float64] {
	t.Helper()
	b, err := sparse.NewBuilder[float64](f, rows, cols, opts...)
	require.NoError(t, err)
	for _, e := range es {
		require.NoError(t, b.Add(e.r, e.c, e.v))
	}
	m, err := b.Build()
	require.NoError(t, err)

	return m
}

// MustDense builds a dense matrix from row literals or fails the test.
func MustDense(t *testing.T, rows [][]float64) *dense.Dense[float64] {
	t.Helper()
	d, err := dense.NewFromRows(rows)
	require.NoError(t, err)

	return d
}

// RandomEntries returns a CSC-ordered (f == CSC) or CSR-ordered fill sequence
// with roughly density*rows*cols nonzeros.
func RandomEntries(rng *rand.Rand, f sparse.Format, rows, cols int, density float64) []entry {
	var es []entry
	lanes, minor := cols, rows
	if f == sparse.CSR {
		lanes, minor = rows, cols
	}
	for j := 0; j < lanes; j++ {
		for i := 0; i < minor; i++ {
			if rng.Float64() >= density {
				continue
			}
			v := rng.NormFloat64()
			if f == sparse.CSC {
				es = append(es, entry{i, j, v})
			} else {
				es = append(es, entry{j, i, v})
			}
		}
	}

	return es
}

// RandomDense returns an r×c dense matrix with normal entries.
func RandomDense(t *testing.T, rng *rand.Rand, r, c int) *dense.Dense[float64] {
	t.Helper()
	d, err := dense.New[float64](r, c)
	require.NoError(t, err)
	for i := range d.Data() {
		d.Data()[i] = rng.NormFloat64()
	}

	return d
}

// SparseToMat materializes m as a gonum matrix.
func SparseToMat(t *testing.T, m *sparse.SparseMatrix[float64]) *mat.Dense {
	t.Helper()
	d, err := m.ToDense()
	require.NoError(t, err)

	return d.ToMat()
}

// RequireDenseApprox asserts got equals want element-wise within eps.
func RequireDenseApprox(t *testing.T, want mat.Matrix, got *dense.Dense[float64], eps float64) {
	t.Helper()
	wr, wc := want.Dims()
	require.Equal(t, wr, got.Rows(), "rows")
	require.Equal(t, wc, got.Cols(), "cols")
	require.Truef(t, mat.EqualApprox(want, got.ToMat(), eps), "want\n%v\ngot\n%v", mat.Formatted(want), got)
}
