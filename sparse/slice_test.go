// SPDX-License-Identifier: MIT

package sparse_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsparse/sparse"
)

func TestColumnSliceToDense(t *testing.T) {
	t.Parallel()
	m := MustBuild(t, sparse.CSC, 4, 3, sample4x3)
	d, err := m.ColumnSliceToDense(1, 2)
	require.NoError(t, err)
	require.Equal(t, MustDense(t, [][]float64{
		{0, 0},
		{0, 3},
		{0, 0},
		{0, 4},
	}).Data(), d.Data())
}

func TestColumnSliceToDense_Errors(t *testing.T) {
	t.Parallel()
	m := MustBuild(t, sparse.CSC, 4, 3, sample4x3)
	_, err := m.ColumnSliceToDense(0, 0)
	require.ErrorIs(t, err, sparse.ErrBadShape)
	_, err = m.ColumnSliceToDense(2, 2)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	_, err = m.ColumnSliceToDense(-1, 1)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)

	r := MustBuild(t, sparse.CSR, 4, 3, []entry{{0, 0, 1}})
	_, err = r.ColumnSliceToDense(0, 1)
	require.ErrorIs(t, err, sparse.ErrNotImplemented)
	require.True(t, sparse.IsCapabilityGap(err))
}

func TestColumnSliceToDense_Parallel(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(11))
	m := MustBuild(t, sparse.CSC, 50, 40, RandomEntries(rng, sparse.CSC, 50, 40, 0.2), sparse.WithWorkers(4))

	full, err := m.ToDense()
	require.NoError(t, err)
	all, err := m.ColumnSliceToDense(0, 40)
	require.NoError(t, err)
	require.Equal(t, full.Data(), all.Data())

	part, err := m.ColumnSliceToDense(10, 5)
	require.NoError(t, err)
	require.Equal(t, full.Data()[10*50:15*50], part.Data())
}
