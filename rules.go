// Copyright ©2024 The Arpack-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arpack

import (
	"math"
	"math/cmplx"
)

// SelectionRule determines which of the m Ritz values of the projected
// Hessenberg matrix are considered "wanted" and retained as the output
// eigenvalue estimates. Each rule defines a strict weak ordering over
// complex128 used both to rank Ritz values and to choose exact shifts for
// the implicit restart (the unwanted, i.e. lowest-ranked, values become
// shifts).
type SelectionRule byte

const (
	// LargestMagnitude orders by |θ| descending, breaking ties by Re(θ)
	// descending.
	LargestMagnitude SelectionRule = iota
	// LargestReal orders by Re(θ) descending, breaking ties by Im(θ)
	// descending.
	LargestReal
	// LargestImag orders by |Im(θ)| descending, breaking ties by Re(θ)
	// descending.
	LargestImag
	// SmallestMagnitude orders by |θ| ascending, breaking ties by Re(θ)
	// ascending.
	SmallestMagnitude
	// SmallestReal orders by Re(θ) ascending, breaking ties by Im(θ)
	// ascending.
	SmallestReal
	// SmallestImag orders by |Im(θ)| ascending, breaking ties by Re(θ)
	// ascending.
	SmallestImag
)

// less reports whether a should be ranked ahead of (sorted before) b under
// the rule, i.e. a is "more wanted" than b.
func (r SelectionRule) less(a, b complex128) bool {
	switch r {
	case LargestMagnitude:
		ma, mb := cmplx.Abs(a), cmplx.Abs(b)
		if ma != mb {
			return ma > mb
		}
		return real(a) > real(b)
	case LargestReal:
		if real(a) != real(b) {
			return real(a) > real(b)
		}
		return imag(a) > imag(b)
	case LargestImag:
		ia, ib := math.Abs(imag(a)), math.Abs(imag(b))
		if ia != ib {
			return ia > ib
		}
		return real(a) > real(b)
	case SmallestMagnitude:
		ma, mb := cmplx.Abs(a), cmplx.Abs(b)
		if ma != mb {
			return ma < mb
		}
		return real(a) < real(b)
	case SmallestReal:
		if real(a) != real(b) {
			return real(a) < real(b)
		}
		return imag(a) < imag(b)
	case SmallestImag:
		ia, ib := math.Abs(imag(a)), math.Abs(imag(b))
		if ia != ib {
			return ia < ib
		}
		return real(a) < real(b)
	default:
		panic("arpack: invalid SelectionRule")
	}
}

func (r SelectionRule) String() string {
	switch r {
	case LargestMagnitude:
		return "LargestMagnitude"
	case LargestReal:
		return "LargestReal"
	case LargestImag:
		return "LargestImag"
	case SmallestMagnitude:
		return "SmallestMagnitude"
	case SmallestReal:
		return "SmallestReal"
	case SmallestImag:
		return "SmallestImag"
	default:
		return "SelectionRule(invalid)"
	}
}
