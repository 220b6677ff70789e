// Copyright ©2024 The Arpack-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arpack

import "math"

const (
	// eps is the machine epsilon of float64, the same constant
	// gonum.org/v1/gonum/linsolve uses for its breakdown tolerances.
	eps = 1.0 / (1 << 53)
)

var (
	// orthoTol is the derived tolerance ε^(2/3) used to judge Arnoldi
	// residual collapse (invariant subspace detection) and
	// re-orthogonalization drift.
	orthoTol = math.Pow(eps, 2.0/3.0)

	// nearZeroTol is the derived tolerance ε^0.9 used to decide whether a
	// Givens rotation or Householder reflector is numerically
	// indistinguishable from the identity.
	nearZeroTol = math.Pow(eps, 0.9)
)
