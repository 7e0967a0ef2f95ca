// SPDX-License-Identifier: MIT

// Package sparse: functional configuration for SparseMatrix construction.
// This file defines:
//   - Option (functional option over an unexported options struct),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper that applies defaults then setters.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package sparse

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultGrowIncrement is the number of elements SetValue adds to a full buffer.
	DefaultGrowIncrement = 100

	// DefaultWorkers lets kernels use GOMAXPROCS goroutines for parallel loops.
	DefaultWorkers = 0

	// DefaultName is written to streams for unnamed matrices.
	DefaultName = "nnmatrix"
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicShapeInvalid     = "sparse: WithShape: rows, cols and reserve must be >= 0"
	panicWorkersInvalid   = "sparse: WithWorkers: n must be >= 0"
	panicIncrementInvalid = "sparse: WithGrowIncrement: n must be > 0"
)

// Option mutates construction options. Safe to apply repeatedly (last wins).
type Option func(*options)

// options stores the effective configuration after applying Option setters.
type options struct {
	rows, cols, reserve int
	shaped              bool
	name                string
	workers             int
	growIncrement       int
}

// WithShape sizes the matrix at construction (Resize(rows, cols, reserve, true, false)).
// Panics on negative values.
func WithShape(rows, cols, reserve int) Option {
	if rows < 0 || cols < 0 || reserve < 0 {
		panic(panicShapeInvalid)
	}

	return func(o *options) {
		o.rows, o.cols, o.reserve = rows, cols, reserve
		o.shaped = true
	}
}

// WithName attaches a display label; it is also the serialized name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithWorkers bounds the goroutines a kernel may fan out to.
// 0 means GOMAXPROCS; 1 keeps every kernel on the calling goroutine.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithGrowIncrement overrides how many elements SetValue adds when the
// buffers are full.
func WithGrowIncrement(n int) Option {
	if n <= 0 {
		panic(panicIncrementInvalid)
	}

	return func(o *options) { o.growIncrement = n }
}

// gatherOptions applies user setters on top of the documented defaults.
func gatherOptions(user ...Option) options {
	o := options{
		name:          "",
		workers:       DefaultWorkers,
		growIncrement: DefaultGrowIncrement,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}
