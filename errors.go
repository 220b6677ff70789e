// Copyright ©2024 The Arpack-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arpack

import (
	"errors"
	"fmt"
)

// ErrBreakdown is wrapped into the error returned by Compute when the
// Arnoldi residual norm collapses below the orthogonality tolerance during
// an extension step, signalling that an invariant subspace of the operator
// was discovered. Partial results (the Ritz pairs converged so far) remain
// accessible; this is reported per spec.md §7 option (b), the default.
var ErrBreakdown = errors.New("arpack: invariant subspace detected (residual norm near zero)")

// InvalidArgumentError reports a synchronous configuration mistake: an
// invalid (k, m) pair, a non-positive or NaN tolerance, or a zero initial
// residual. The solver remains usable after re-configuration, matching
// spec.md §7.
type InvalidArgumentError struct {
	msg string
}

func (e *InvalidArgumentError) Error() string { return "arpack: " + e.msg }

func invalidArgf(format string, args ...interface{}) *InvalidArgumentError {
	return &InvalidArgumentError{msg: fmt.Sprintf(format, args...)}
}

// NotComputedError is returned (or panicked with, for accessor methods that
// have no error return per the idiomatic mat.Dense convention) when results
// are requested before a successful Compute call.
type NotComputedError struct {
	method string
}

func (e *NotComputedError) Error() string {
	return fmt.Sprintf("arpack: %s called before a successful Compute", e.method)
}
