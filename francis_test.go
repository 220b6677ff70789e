// Copyright ©2024 The Arpack-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arpack

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func sampleFrancisHessenberg() *mat.Dense {
	return mat.NewDense(5, 5, []float64{
		1, 2, -1, 0.5, 1,
		3, 1, 2, -1, 0.5,
		0, 2, 1, 1, -1,
		0, 0, 1, 2, 1,
		0, 0, 0, 1, -1,
	})
}

// A Francis double-shift sweep is a similarity transform built from
// orthogonal reflectors, so it must preserve the trace of H and restore
// upper-Hessenberg form.
func TestFrancisQRSweepPreservesTraceAndShape(t *testing.T) {
	h := sampleFrancisHessenberg()
	n, _ := h.Dims()
	trace0 := mat.Trace(h)

	fq := newFrancisQR(n)
	fq.sweep(h, 1.5, 4.25) // s = 2Re(μ), t = |μ|² for some complex-conjugate pair μ

	if got := mat.Trace(h); math.Abs(got-trace0) > 1e-8 {
		t.Errorf("trace not preserved: got %v, want %v", got, trace0)
	}

	for i := 2; i < n; i++ {
		for j := 0; j < i-1; j++ {
			if v := math.Abs(h.At(i, j)); v > 1e-8 {
				t.Errorf("h[%d][%d] = %v, want ~0 (not upper Hessenberg)", i, j, v)
			}
		}
	}
}

func TestFrancisQRSweepSmallBlocksAreIdentity(t *testing.T) {
	h := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	fq := newFrancisQR(2)
	fq.sweep(h, 5, 6)
	for _, r := range fq.refs {
		if !r.isIdentity() {
			t.Error("sweep on a block smaller than 3 should only produce identity reflectors")
		}
	}
}

func TestReflectorAnnihilatesTrailingEntries(t *testing.T) {
	x := []float64{3, 4, 0}
	r := newReflector(x)
	v := mat.NewVecDense(3, append([]float64(nil), x...))
	r.applyVec(v, 0)
	if math.Abs(v.AtVec(1)) > 1e-9 || math.Abs(v.AtVec(2)) > 1e-9 {
		t.Errorf("reflector did not annihilate trailing entries: %v", mat.Formatted(v))
	}
	if norm := vecNorm(x); math.Abs(math.Abs(v.AtVec(0))-norm) > 1e-9 {
		t.Errorf("reflector did not preserve norm: got %v, want %v", v.AtVec(0), norm)
	}
}

func TestNewReflectorDegenerateIsIdentity(t *testing.T) {
	r := newReflector([]float64{0, 0, 0})
	if !r.isIdentity() {
		t.Error("reflector of a zero vector should be the identity")
	}
}
