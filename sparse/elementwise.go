// SPDX-License-Identifier: MIT

// Package sparse - elementwise transforms over stored values.
//
// Every transform scans the live value buffer only; indices are never read,
// so all four layouts are supported. Each returns the receiver for chaining.

package sparse

import "github.com/katalvlaran/lvsparse/internal/parallel"

// apply runs f on every stored value, split across workers.
func (m *SparseMatrix[T]) apply(f func(v T) T) *SparseMatrix[T] {
	vals := m.values[:m.nz]
	parallel.For(m.workers, len(vals), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			vals[i] = f(vals[i])
		}
	})

	return m
}

// InplaceTruncateTop clamps every stored value to at most threshold.
func (m *SparseMatrix[T]) InplaceTruncateTop(threshold T) *SparseMatrix[T] {
	return m.apply(func(v T) T { return min(v, threshold) })
}

// InplaceTruncateBottom clamps every stored value to at least threshold.
func (m *SparseMatrix[T]) InplaceTruncateBottom(threshold T) *SparseMatrix[T] {
	return m.apply(func(v T) T { return max(v, threshold) })
}

// InplaceTruncate clamps every stored value into [-|threshold|, |threshold|].
func (m *SparseMatrix[T]) InplaceTruncate(threshold T) *SparseMatrix[T] {
	t := abs(threshold)

	return m.apply(func(v T) T { return min(max(v, -t), t) })
}

// InplaceSoftThreshold shrinks every stored value toward zero by threshold;
// values inside [-threshold, threshold] become 0.
func (m *SparseMatrix[T]) InplaceSoftThreshold(threshold T) *SparseMatrix[T] {
	return m.apply(func(v T) T {
		switch {
		case v > threshold:
			return v - threshold
		case v < -threshold:
			return v + threshold
		default:
			return 0
		}
	})
}

func abs[T Float](x T) T {
	if x < 0 {
		return -x
	}

	return x
}
