// Copyright ©2024 The Arpack-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arpack

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// givens is a single Givens rotation, in the same representation
// gonum.org/v1/gonum/linsolve.GMRES uses to reduce its Hessenberg matrix to
// triangular form: the matrix [[c, s], [-s, c]].
type givens struct {
	c, s float64
}

// apply computes G*(x,y)ᵀ. Because G is orthogonal, the identical formula
// also computes the right action (x,y)*Gᵀ of a row vector, which is what
// lets a single helper serve both the left updates of H and the right
// updates of V and Qᵀ below.
func (g givens) apply(x, y float64) (float64, float64) {
	return g.c*x + g.s*y, g.c*y - g.s*x
}

// identityGivens reports whether the rotation annihilating (a, b) would be
// numerically indistinguishable from the identity, per spec §4.2: when
// a²+b² is at or below the near-zero tolerance the rotation is skipped and
// the identity {c: 1, s: 0} is returned.
func identityGivens(a, b float64) (givens, bool) {
	if a*a+b*b <= nearZeroTol {
		return givens{c: 1, s: 0}, true
	}
	return givens{}, false
}

// hessenbergQR performs a single real-shift QR step on an m×m
// upper-Hessenberg matrix using m-1 Givens rotations, per spec §4.2: it
// factors H-μI = Q*R with m-1 rotations annihilating the subdiagonal in
// order, then can apply Q or Qᵀ to other matrices/vectors that must track
// the same similarity transform (V and the trailing unit vector e_m).
type hessenbergQR struct {
	n    int
	givs []givens
}

// newHessenbergQR returns a hessenbergQR ready to factorize n×n matrices.
func newHessenbergQR(n int) *hessenbergQR {
	size := n - 1
	if size < 0 {
		size = 0
	}
	return &hessenbergQR{n: n, givs: make([]givens, size)}
}

// factorize computes H-μI = Q*R in place: on return h holds the upper
// triangular R, and the Givens rotations that produced it are retained for
// matrixRQ/applyYQ/applyQtY.
func (qr *hessenbergQR) factorize(h *mat.Dense, mu float64) {
	n := qr.n
	for i := 0; i < n; i++ {
		h.Set(i, i, h.At(i, i)-mu)
	}
	for i := 0; i < n-1; i++ {
		a, b := h.At(i, i), h.At(i+1, i)
		g, isID := identityGivens(a, b)
		if !isID {
			c, s, _, _ := blas64.Rotg(a, b)
			g = givens{c: c, s: s}
		}
		qr.givs[i] = g
		for j := i; j < n; j++ {
			x, y := h.At(i, j), h.At(i+1, j)
			nx, ny := g.apply(x, y)
			h.Set(i, j, nx)
			h.Set(i+1, j, ny)
		}
	}
}

// matrixRQ computes R*Q from the just-factorized R (still stored in h) and
// adds back μI, leaving h holding the new Hessenberg matrix similar to the
// original H.
func (qr *hessenbergQR) matrixRQ(h *mat.Dense, mu float64) {
	n := qr.n
	for i := 0; i < n-1; i++ {
		g := qr.givs[i]
		for row := 0; row < n; row++ {
			x, y := h.At(row, i), h.At(row, i+1)
			nx, ny := g.apply(x, y)
			h.Set(row, i, nx)
			h.Set(row, i+1, ny)
		}
	}
	for i := 0; i < n; i++ {
		h.Set(i, i, h.At(i, i)+mu)
	}
}

// applyYQ updates y in place to y*Q, used to carry the Arnoldi basis V
// through the same similarity transform applied to H.
func (qr *hessenbergQR) applyYQ(y *mat.Dense) {
	rows, _ := y.Dims()
	for i := 0; i < qr.n-1; i++ {
		g := qr.givs[i]
		for row := 0; row < rows; row++ {
			x, v := y.At(row, i), y.At(row, i+1)
			nx, nv := g.apply(x, v)
			y.Set(row, i, nx)
			y.Set(row, i+1, nv)
		}
	}
}

// applyQtY updates v in place to Qᵀ*v, used to track how the trailing unit
// vector e_m (and hence the residual direction) transforms under restart.
func (qr *hessenbergQR) applyQtY(v *mat.VecDense) {
	for i := 0; i < qr.n-1; i++ {
		g := qr.givs[i]
		nx, ny := g.apply(v.AtVec(i), v.AtVec(i+1))
		v.SetVec(i, nx)
		v.SetVec(i+1, ny)
	}
}
