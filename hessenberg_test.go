// Copyright ©2024 The Arpack-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arpack

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func sampleHessenberg() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		2, -1, 0.5, 1,
		3, 1, 2, -0.5,
		0, 4, -1, 2,
		0, 0, 1.5, 0.5,
	})
}

func below(h *mat.Dense) float64 {
	n, _ := h.Dims()
	var s float64
	for i := 2; i < n; i++ {
		for j := 0; j < i-1; j++ {
			s += math.Abs(h.At(i, j))
		}
	}
	return s
}

// A single-shift QR step is a similarity transform, so it must preserve the
// trace of H and the upper-Hessenberg sparsity pattern.
func TestHessenbergQRPreservesTraceAndShape(t *testing.T) {
	h := sampleHessenberg()
	n, _ := h.Dims()
	trace0 := mat.Trace(h)

	qr := newHessenbergQR(n)
	qr.factorize(h, 0.75)
	qr.matrixRQ(h, 0.75)

	if got := mat.Trace(h); math.Abs(got-trace0) > 1e-9 {
		t.Errorf("trace not preserved: got %v, want %v", got, trace0)
	}
	if b := below(h); b > 1e-9 {
		t.Errorf("result is not upper Hessenberg: below-subdiagonal mass %v", b)
	}
}

// applyYQ/applyQtY must implement mutually transpose actions: for an
// orthogonal Q, (y*Q)*(Qᵀ*v) preserves the inner product yᵀv.
func TestHessenbergQRApplyYQAndApplyQtYAreTransposes(t *testing.T) {
	h := sampleHessenberg()
	n, _ := h.Dims()

	qr := newHessenbergQR(n)
	qr.factorize(h, -1.25)
	qr.matrixRQ(h, -1.25)

	y := mat.NewDense(1, n, []float64{1, 2, 3, 4})
	v := mat.NewVecDense(n, []float64{4, -1, 2, 0.5})

	dot0 := mat.Dot(y.RowView(0), v)

	qr.applyYQ(y)
	qr.applyQtY(v)

	dot1 := mat.Dot(y.RowView(0), v)
	if math.Abs(dot1-dot0) > 1e-9 {
		t.Errorf("inner product not preserved under Q/Qᵀ: got %v, want %v", dot1, dot0)
	}
}

func TestIdentityGivensSkipsNegligibleRotation(t *testing.T) {
	g, ok := identityGivens(0, 0)
	if !ok {
		t.Fatal("identityGivens(0, 0) should report identity")
	}
	if g.c != 1 || g.s != 0 {
		t.Errorf("identity rotation = %+v, want {1, 0}", g)
	}
	if _, ok := identityGivens(3, 4); ok {
		t.Error("identityGivens(3, 4) should not report identity")
	}
}
