// SPDX-License-Identifier: MIT

package sparse_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsparse/sparse"
)

func TestBuilder_MatchesSetValue(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(3))
	for _, f := range []sparse.Format{sparse.CSC, sparse.CSR} {
		es := RandomEntries(rng, f, 12, 9, 0.3)
		built := MustBuild(t, f, 12, 9, es)

		m, err := sparse.New[float64](f, sparse.WithShape(12, 9, 0))
		require.NoError(t, err)
		for _, e := range es {
			require.NoError(t, m.SetValue(e.r, e.c, e.v))
		}

		require.Equal(t, m.NzValues(), built.NzValues(), f.String())
		require.Equal(t, m.MajorIndex(), built.MajorIndex(), f.String())
		require.Equal(t, m.SecondaryIndex(), built.SecondaryIndex(), f.String())
	}
}

func TestBuilder_Sealed(t *testing.T) {
	t.Parallel()
	b, err := sparse.NewBuilder[float32](sparse.CSR, 2, 4)
	require.NoError(t, err)
	require.NoError(t, b.Add(1, 1, 7))
	require.Equal(t, 1, b.Len())

	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []sparse.Index{0, 0, 1}, m.SecondaryIndex())

	require.ErrorIs(t, b.Add(1, 2, 1), sparse.ErrBuilderSealed)
	_, err = b.Build()
	require.ErrorIs(t, err, sparse.ErrBuilderSealed)
	require.Equal(t, 1, m.NzCount(), "built matrix is not affected by a sealed builder")
}

func TestBuilder_Rejects(t *testing.T) {
	t.Parallel()
	_, err := sparse.NewBuilder[float64](sparse.BlockSparseColumn, 2, 2)
	require.ErrorIs(t, err, sparse.ErrUnsupportedFormat)
	_, err = sparse.NewBuilder[float64](sparse.CSC, -1, 2)
	require.ErrorIs(t, err, sparse.ErrBadShape)

	b, err := sparse.NewBuilder[float64](sparse.CSC, 3, 3)
	require.NoError(t, err)
	require.NoError(t, b.Add(2, 1, 1))
	require.ErrorIs(t, b.Add(0, 0, 1), sparse.ErrFillOrder)
	require.ErrorIs(t, b.Add(5, 1, 1), sparse.ErrOutOfRange)
}

func TestBuilder_EmptyShape(t *testing.T) {
	t.Parallel()
	b, err := sparse.NewBuilder[float64](sparse.CSC, 0, 0)
	require.NoError(t, err)
	m, err := b.Build()
	require.NoError(t, err)
	require.True(t, m.IsEmpty())
	require.Equal(t, []sparse.Index{0}, m.SecondaryIndex())
}
