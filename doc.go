// SPDX-License-Identifier: MIT

// Package lvsparse is a CPU sparse-matrix storage and arithmetic engine for
// gradient-style workloads: sparse inputs multiplied against dense weights,
// block-sparse gradients, and in-place optimizer updates.
//
// Packages:
//
//	dense/    column-major Dense[T] collaborator (+ gonum mat interop)
//	sparse/   SparseMatrix[T] in CSC, CSR, BlockSparseColumn and BlockSparseRow
//	            layouts; multiply, optimizer, transform, reduction and binary I/O kernels
//
// Quick start:
//
//	b, _ := sparse.NewBuilder[float64](sparse.CSC, 2, 2)
//	_ = b.Add(0, 1, 5)
//	rhs, _ := b.Build()
//
//	lhs, _ := dense.NewFromRows([][]float64{{1, 0}, {0, 1}})
//	c, _ := dense.New[float64](0, 0)
//	_ = sparse.MultiplyAndWeightedAdd(1, lhs, false, rhs, false, 0, c)
//	// c = [[0, 5], [0, 0]]
//
// Element types are float32 and float64; vector reductions delegate to gonum BLAS.
//
//	go get github.com/katalvlaran/lvsparse
package lvsparse
