// Copyright ©2024 The Arpack-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arpack

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// reflector is a Householder reflector P = I - β*v*vᵀ acting on 2 or 3
// consecutive rows/columns, per spec §4.3. A zero-value reflector (v == nil)
// is the identity, used when the candidate vector's norm falls below
// nearZeroTol.
type reflector struct {
	v    []float64
	beta float64
}

// newReflector builds the Householder reflector whose first column is
// proportional to x, using the sign convention of spec §4.3: with
// ρ = -sign(x[0]), v = (x[0]-ρ‖x‖, x[1], ...) normalized.
func newReflector(x []float64) reflector {
	norm := vecNorm(x)
	if norm <= nearZeroTol {
		return reflector{}
	}
	rho := -signOf(x[0])
	v := make([]float64, len(x))
	copy(v, x)
	v[0] -= rho * norm
	vnorm := vecNorm(v)
	if vnorm <= nearZeroTol {
		return reflector{}
	}
	return reflector{v: v, beta: 2 / (vnorm * vnorm)}
}

func (r reflector) isIdentity() bool { return r.v == nil }

// applyLeft updates h's rows [row0, row0+len(v)) across columns
// [colLo, colHi) to P*h.
func (r reflector) applyLeft(h *mat.Dense, row0, colLo, colHi int) {
	if r.isIdentity() {
		return
	}
	k := len(r.v)
	for j := colLo; j < colHi; j++ {
		var w float64
		for a := 0; a < k; a++ {
			w += r.v[a] * h.At(row0+a, j)
		}
		w *= r.beta
		for a := 0; a < k; a++ {
			h.Set(row0+a, j, h.At(row0+a, j)-w*r.v[a])
		}
	}
}

// applyRight updates h's columns [col0, col0+len(v)) across rows
// [rowLo, rowHi) to h*P.
func (r reflector) applyRight(h *mat.Dense, col0, rowLo, rowHi int) {
	if r.isIdentity() {
		return
	}
	k := len(r.v)
	for i := rowLo; i < rowHi; i++ {
		var w float64
		for a := 0; a < k; a++ {
			w += r.v[a] * h.At(i, col0+a)
		}
		w *= r.beta
		for a := 0; a < k; a++ {
			h.Set(i, col0+a, h.At(i, col0+a)-w*r.v[a])
		}
	}
}

// applyVec updates the k-element window of v starting at row0 to P*v.
func (r reflector) applyVec(v *mat.VecDense, row0 int) {
	if r.isIdentity() {
		return
	}
	k := len(r.v)
	var w float64
	for a := 0; a < k; a++ {
		w += r.v[a] * v.AtVec(row0+a)
	}
	w *= r.beta
	for a := 0; a < k; a++ {
		v.SetVec(row0+a, v.AtVec(row0+a)-w*r.v[a])
	}
}

// francisQR implements the Francis implicit double-shift sweep of spec
// §4.3: two single-shift QR steps with complex-conjugate shifts μ, μ̄,
// carried out with real arithmetic via the real quantities
// s = μ+μ̄ = 2Re(μ) and t = μμ̄ = |μ|², by chasing a 3×3 bulge down the
// diagonal with a sequence of Householder reflectors.
type francisQR struct {
	n    int
	refs []reflector // n-1 reflectors: refs[0..n-3] are 3-vectors, refs[n-2] is the terminal 2-vector.
}

func newFrancisQR(n int) *francisQR {
	size := n - 1
	if size < 0 {
		size = 0
	}
	return &francisQR{n: n, refs: make([]reflector, size)}
}

// sweep performs the bulge-chasing double-shift step on h in place, per
// spec §4.3 steps 2-6. Blocks of size 1 or 2 (n < 3) contribute only
// identity reflectors, matching step 6.
//
// Unreduced-block splitting (step 1) is approximated by zeroing subdiagonal
// entries judged negligible before the chase begins; see DESIGN.md for why
// a single whole-matrix pass is sufficient here (the driver always calls
// this on the full active ncv×ncv Hessenberg block).
func (qr *francisQR) sweep(h *mat.Dense, s, t float64) {
	n := qr.n
	zeroNegligibleSubdiagonal(h, n)
	if n < 3 {
		for i := range qr.refs {
			qr.refs[i] = reflector{}
		}
		return
	}

	x00, x01 := h.At(0, 0), h.At(0, 1)
	x10, x11 := h.At(1, 0), h.At(1, 1)
	x21 := h.At(2, 1)
	v0 := x00*(x00-s) + x01*x10 + t
	v1 := x10 * (x00 + x11 - s)
	v2 := x21 * x10
	r0 := newReflector([]float64{v0, v1, v2})
	qr.refs[0] = r0
	r0.applyLeft(h, 0, 0, n)
	r0.applyRight(h, 0, 0, n)

	for i := 1; i <= n-3; i++ {
		col := i - 1
		x := []float64{h.At(i, col), h.At(i+1, col), h.At(i+2, col)}
		ri := newReflector(x)
		qr.refs[i] = ri
		ri.applyLeft(h, i, 0, n)
		ri.applyRight(h, i, 0, n)
	}

	// Final 2-vector reflector restores Hessenberg form.
	i := n - 2
	col := n - 3
	rf := newReflector([]float64{h.At(i, col), h.At(i+1, col)})
	qr.refs[i] = rf
	rf.applyLeft(h, i, 0, n)
	rf.applyRight(h, i, 0, n)
}

// applyYQ updates y in place to y*Q, carrying the Arnoldi basis V through
// the same sequence of reflectors applied to H.
func (qr *francisQR) applyYQ(y *mat.Dense) {
	rows, _ := y.Dims()
	for i, r := range qr.refs {
		if r.isIdentity() {
			continue
		}
		r.applyRight(y, i, 0, rows)
	}
}

// applyQtY updates v in place to Qᵀ*v, used to track the trailing unit
// vector e_m under the restart.
func (qr *francisQR) applyQtY(v *mat.VecDense) {
	for i, r := range qr.refs {
		if r.isIdentity() {
			continue
		}
		r.applyVec(v, i)
	}
}

func zeroNegligibleSubdiagonal(h *mat.Dense, n int) {
	for i := 1; i < n; i++ {
		if math.Abs(h.At(i, i-1)) <= nearZeroTol*(math.Abs(h.At(i-1, i-1))+math.Abs(h.At(i, i))) {
			h.Set(i, i-1, 0)
		}
	}
}

func vecNorm(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v * v
	}
	return math.Sqrt(s)
}

func signOf(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
