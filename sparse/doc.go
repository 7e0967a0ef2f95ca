// SPDX-License-Identifier: MIT

// Package sparse provides a CPU sparse matrix in four storage layouts and the
// arithmetic, optimizer, transform and serialization kernels that operate on it.
//
// Layouts (fixed at construction by New):
//
//   - CSC  : nonzeros stored column by column; per-column offsets + row ids.
//   - CSR  : nonzeros stored row by row; per-row offsets + column ids.
//   - BlockSparseColumn : a subset of whole columns stored densely, addressed by id.
//   - BlockSparseRow    : a subset of whole rows stored densely, addressed by id.
//
// Filling:
//
//   - SetValue / Builder: strictly ordered incremental insertion (lane-major,
//     increasing major index inside a lane). No sorting is performed.
//   - SetMatrixFromCSCFormat / NewFromCSC: bulk adoption of validated arrays.
//   - MultiplyAndAdd: produces a BlockSparseColumn result.
//
// Kernels:
//
//	MultiplyAndWeightedAdd  c = alpha·op(dense)·op(sparse) + beta·c
//	MultiplyAndAdd          c = alpha·dense·sparseᵀ (block-sparse c)
//	ScaleAndAdd             dense += alpha·sparse
//	NormalGrad, Adagrad     optimizer updates against dense state
//	InplaceTruncate*, InplaceSoftThreshold
//	FrobeniusNorm, SumOfAbsElements, SumOfElements, AreEqual
//	WriteTo, ReadFrom, Decode
//
// Errors are package sentinels wrapped with the operation name; match them with
// errors.Is. ErrNotImplemented marks a known coverage gap (see IsCapabilityGap)
// rather than misuse.
//
// A SparseMatrix is owned by one caller at a time. Kernels may fan work out
// over goroutines (bounded by WithWorkers) but always return synchronously.
package sparse
