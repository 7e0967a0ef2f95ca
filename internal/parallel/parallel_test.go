// SPDX-License-Identifier: MIT

package parallel_test

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/lvsparse/internal/parallel"
	"github.com/stretchr/testify/require"
)

func TestWorkersDefault(t *testing.T) {
	require.Equal(t, runtime.GOMAXPROCS(0), parallel.Workers(0))
	require.Equal(t, 3, parallel.Workers(3))
}

func TestForCoversEveryIndexOnce(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, 1, 7, parallel.MinGrain, 5*parallel.MinGrain + 3} {
		hits := make([]int32, n)
		parallel.For(4, n, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			require.Equal(t, int32(1), h, "n=%d index %d", n, i)
		}
	}
}

func TestForGrainOnePerIndex(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	out := make([]int, 8)
	parallel.ForGrain(8, 8, 1, func(start, end int) {
		calls.Add(1)
		for i := start; i < end; i++ {
			out[i] = i * 2
		}
	})
	require.Equal(t, int32(8), calls.Load())
	require.Equal(t, []int{0, 2, 4, 6, 8, 10, 12, 14}, out)
}

func TestForSingleWorkerRunsInline(t *testing.T) {
	var calls int
	parallel.For(1, 10*parallel.MinGrain, func(start, end int) {
		calls++
		require.Equal(t, 0, start)
		require.Equal(t, 10*parallel.MinGrain, end)
	})
	require.Equal(t, 1, calls)
}

func TestReduceSum(t *testing.T) {
	t.Parallel()
	n := 3*parallel.MinGrain + 11
	data := make([]float64, n)
	for i := range data {
		data[i] = 1
	}
	got := parallel.Reduce(4, n, 0.0, func(start, end int) float64 {
		var s float64
		for _, v := range data[start:end] {
			s += v
		}
		return s
	}, func(a, b float64) float64 { return a + b })
	require.Equal(t, float64(n), got)
}

func TestAnyScansAllChunks(t *testing.T) {
	t.Parallel()
	n := 4 * parallel.MinGrain
	var visited atomic.Int64
	found := parallel.Any(4, n, func(start, end int) bool {
		visited.Add(int64(end - start))
		return start == 0 // mismatch in the first chunk only
	})
	require.True(t, found)
	require.Equal(t, int64(n), visited.Load())

	require.False(t, parallel.Any(4, n, func(int, int) bool { return false }))
	require.False(t, parallel.Any(4, 0, func(int, int) bool { return true }))
}
