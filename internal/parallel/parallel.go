// SPDX-License-Identifier: MIT

// Package parallel runs data-parallel loops over contiguous index ranges for
// the duration of a single kernel call.
//
// [0, n) is split into at most `workers` contiguous chunks of at least
// MinGrain indices each. Ranges smaller than one grain, or a budget of one
// worker, run on the caller's goroutine. Every call blocks until all chunks
// have finished; nothing outlives the call.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MinGrain is the smallest chunk handed to a separate goroutine.
const MinGrain = 2048

// Workers resolves a worker budget: n <= 0 means GOMAXPROCS.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}

	return n
}

// chunks returns the chunk count and chunk size for n indices.
func chunks(workers, n, grain int) (count, size int) {
	workers = Workers(workers)
	count = min(workers, (n+grain-1)/grain)
	if count < 1 {
		count = 1
	}
	size = (n + count - 1) / count

	return count, size
}

// For calls fn(start, end) over disjoint ranges covering [0, n).
// fn must only touch state owned by its own range.
func For(workers, n int, fn func(start, end int)) {
	ForGrain(workers, n, MinGrain, fn)
}

// ForGrain is For with an explicit minimum grain. A grain of 1 allows one
// index per chunk, which suits loops whose per-index work is large
// (e.g. one dense column per index).
func ForGrain(workers, n, grain int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if grain < 1 {
		grain = 1
	}
	count, size := chunks(workers, n, grain)
	if count == 1 {
		fn(0, n)
		return
	}

	var g errgroup.Group
	g.SetLimit(count)
	for c := 0; c < count; c++ {
		start := c * size
		end := min(start+size, n)
		if start >= end {
			continue
		}
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait() // chunks never fail
}

// Reduce computes partial(start, end) on each chunk and folds the partials
// with combine in chunk order. combine must be associative; the result does
// not depend on how [0, n) was chunked beyond floating-point rounding.
func Reduce[R any](workers, n int, zero R, partial func(start, end int) R, combine func(a, b R) R) R {
	if n <= 0 {
		return zero
	}
	count, size := chunks(workers, n, MinGrain)
	if count == 1 {
		return combine(zero, partial(0, n))
	}

	parts := make([]R, count)
	var g errgroup.Group
	g.SetLimit(count)
	for c := 0; c < count; c++ {
		c := c
		start := c * size
		end := min(start+size, n)
		if start >= end {
			parts[c] = zero
			continue
		}
		g.Go(func() error {
			parts[c] = partial(start, end)
			return nil
		})
	}
	_ = g.Wait()

	acc := zero
	for _, p := range parts {
		acc = combine(acc, p)
	}

	return acc
}

// Any reports whether pred holds on any chunk. Every chunk is evaluated to
// completion and the flags are OR-combined after all workers finish; a chunk
// never observes or stops another.
func Any(workers, n int, pred func(start, end int) bool) bool {
	return Reduce(workers, n, false, pred, func(a, b bool) bool { return a || b })
}
