// Copyright ©2024 The Arpack-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arpack

import "gonum.org/v1/gonum/mat"

// Operator represents a square real linear operator A of order n, supplied
// by the caller as an abstract matrix-vector product rather than as a
// materialized matrix. The core Arnoldi iteration never reads the elements
// of A directly; it only ever asks for the result of A*x.
type Operator interface {
	// Dim returns the order n of the operator.
	Dim() int

	// Apply computes dst = A*x. Apply must not modify x and must write
	// every element of dst.
	Apply(dst, x *mat.VecDense)
}

// ShiftInvertOperator is an Operator that additionally knows how to apply
// the spectral transformation (A - σI)^-1, used in shift-and-invert mode to
// accelerate convergence to eigenvalues near σ.
type ShiftInvertOperator interface {
	Operator

	// SetShift sets σ for subsequent calls to ApplyShiftSolve.
	SetShift(sigma float64)

	// ApplyShiftSolve computes dst = (A - σI)^-1 * x for the most recently
	// set σ. ApplyShiftSolve must not modify x and must write every
	// element of dst.
	ApplyShiftSolve(dst, x *mat.VecDense)
}

// opCounter wraps the vector-product callback that the Arnoldi iteration
// drives the operator with, counting calls the way
// gonum.org/v1/gonum/linsolve.Stats counts MulVecToer calls. In plain mode
// the callback is op.Apply; a ShiftInvertSolver rebinds it to
// op.ApplyShiftSolve so the rest of the core is oblivious to which mode is
// in effect.
type opCounter struct {
	fn func(dst, x *mat.VecDense)
	n  int
}

func newOpCounter(op Operator) *opCounter {
	return &opCounter{fn: op.Apply}
}

func newShiftOpCounter(op ShiftInvertOperator) *opCounter {
	return &opCounter{fn: op.ApplyShiftSolve}
}

func (c *opCounter) apply(dst, x *mat.VecDense) {
	c.n++
	c.fn(dst, x)
}
