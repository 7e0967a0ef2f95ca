// SPDX-License-Identifier: MIT

package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsparse/sparse"
)

func TestNewFromCSC(t *testing.T) {
	t.Parallel()
	m, err := sparse.NewFromCSC([]sparse.Index{0, 2, 2, 4}, []sparse.Index{0, 2, 1, 3}, []float64{1, 2, 3, 4}, 4, 4, 3)
	require.NoError(t, err)
	require.Equal(t, 4, m.NzCount())
	require.Equal(t, 4, m.Capacity())

	want := MustBuild(t, sparse.CSC, 4, 3, sample4x3)
	ok, err := sparse.AreEqual(want, m, 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want.SecondaryIndex(), m.SecondaryIndex())
}

func TestSetMatrixFromCSCFormat_Invalid(t *testing.T) {
	t.Parallel()
	vals := []float64{1, 2, 3, 4}
	cases := []struct {
		name   string
		colPtr []sparse.Index
		rowIdx []sparse.Index
		vals   []float64
		nz     int
		want   error
	}{
		{"first offset", []sparse.Index{1, 2, 2, 4}, []sparse.Index{0, 2, 1, 3}, vals, 4, sparse.ErrInvalidLayout},
		{"non-monotone", []sparse.Index{0, 3, 2, 4}, []sparse.Index{0, 2, 1, 3}, vals, 4, sparse.ErrInvalidLayout},
		{"last offset", []sparse.Index{0, 2, 2, 3}, []sparse.Index{0, 2, 1, 3}, vals, 4, sparse.ErrInvalidLayout},
		{"offset past nz", []sparse.Index{0, 5, 2, 2}, []sparse.Index{0, 1}, vals[:2], 2, sparse.ErrInvalidLayout},
		{"offset past nz mid lane", []sparse.Index{0, 1, 9, 2}, []sparse.Index{0, 1}, vals[:2], 2, sparse.ErrInvalidLayout},
		{"row out of range", []sparse.Index{0, 2, 2, 4}, []sparse.Index{0, 4, 1, 3}, vals, 4, sparse.ErrInvalidLayout},
		{"unsorted lane", []sparse.Index{0, 2, 2, 4}, []sparse.Index{2, 0, 1, 3}, vals, 4, sparse.ErrInvalidLayout},
		{"short colPtr", []sparse.Index{0, 2, 2}, []sparse.Index{0, 2, 1, 3}, vals, 4, sparse.ErrDimensionMismatch},
		{"short rowIdx", []sparse.Index{0, 2, 2, 4}, []sparse.Index{0, 2, 1}, vals, 4, sparse.ErrDimensionMismatch},
		{"short values", []sparse.Index{0, 2, 2, 4}, []sparse.Index{0, 2, 1, 3}, vals[:3], 4, sparse.ErrDimensionMismatch},
		{"negative nz", []sparse.Index{0, 2, 2, 4}, []sparse.Index{0, 2, 1, 3}, vals, -1, sparse.ErrBadShape},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := MustBuild(t, sparse.CSC, 2, 2, []entry{{1, 1, 9}})
			err := m.SetMatrixFromCSCFormat(tc.colPtr, tc.rowIdx, tc.vals, tc.nz, 4, 3)
			require.ErrorIs(t, err, tc.want)
			require.Equal(t, 1, m.NzCount(), "rejected load leaves the receiver untouched")
			require.Equal(t, 2, m.Rows())
		})
	}
}

func TestSetMatrixFromCSCFormat_OffsetPastNzNoPanic(t *testing.T) {
	t.Parallel()
	m, err := sparse.New[float64](sparse.CSC)
	require.NoError(t, err)
	require.NotPanics(t, func() {
		err = m.SetMatrixFromCSCFormat([]sparse.Index{0, 5, 2}, []sparse.Index{0, 1}, []float64{1, 2}, 2, 3, 2)
	})
	require.ErrorIs(t, err, sparse.ErrInvalidLayout)
	require.Zero(t, m.NzCount())
}

func TestSetMatrixFromCSCFormat_WrongReceiver(t *testing.T) {
	t.Parallel()
	m, err := sparse.New[float64](sparse.CSR)
	require.NoError(t, err)
	err = m.SetMatrixFromCSCFormat([]sparse.Index{0, 0}, nil, nil, 0, 1, 1)
	require.ErrorIs(t, err, sparse.ErrUnsupportedFormat)
}

func TestSetValue_AppendsAfterBulkLoad(t *testing.T) {
	t.Parallel()
	m, err := sparse.NewFromCSC([]sparse.Index{0, 1, 1}, []sparse.Index{0}, []float64{3}, 1, 2, 2)
	require.NoError(t, err)

	require.NoError(t, m.SetValue(1, 1, 9))
	require.Equal(t, []sparse.Index{0, 1, 2}, m.SecondaryIndex())
	require.ErrorIs(t, m.SetValue(0, 0, 1), sparse.ErrFillOrder)

	v, err := m.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 9.0, v)
}

func TestSetBlocks(t *testing.T) {
	t.Parallel()
	m, err := sparse.New[float64](sparse.BlockSparseRow, sparse.WithShape(3, 2, 0))
	require.NoError(t, err)
	require.NoError(t, m.SetBlocks([]int{2, 0}, []float64{1, 2, 3, 4}))
	require.Equal(t, 2, m.BlockCount())
	require.Equal(t, 4, m.NzCount())
	require.Equal(t, []int{2, 0}, m.BlockIDs())

	d, err := m.ToDense()
	require.NoError(t, err)
	require.Equal(t, MustDense(t, [][]float64{{3, 4}, {0, 0}, {1, 2}}).Data(), d.Data())

	v, err := m.At(2, 1)
	require.NoError(t, err)
	require.Equal(t, 2.0, v)

	require.ErrorIs(t, m.SetBlocks([]int{0}, []float64{1}), sparse.ErrDimensionMismatch)
	require.ErrorIs(t, m.SetBlocks([]int{3}, []float64{1, 2}), sparse.ErrInvalidLayout)
	require.ErrorIs(t, m.SetBlocks([]int{1, 1}, []float64{1, 2, 3, 4}), sparse.ErrInvalidLayout)
	require.Equal(t, 2, m.BlockCount(), "rejected blocks leave the receiver untouched")

	c, err := sparse.New[float64](sparse.CSC, sparse.WithShape(2, 2, 0))
	require.NoError(t, err)
	require.ErrorIs(t, c.SetBlocks(nil, nil), sparse.ErrUnsupportedFormat)
}
