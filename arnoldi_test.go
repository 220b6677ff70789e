// Copyright ©2024 The Arpack-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arpack

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
)

type denseOperator struct {
	a *mat.Dense
}

func (o denseOperator) Dim() int { return o.a.RawMatrix().Rows }

func (o denseOperator) Apply(dst, x *mat.VecDense) {
	dst.MulVec(o.a, x)
}

func newRandomMatrix(n int, rnd *rand.Rand) *mat.Dense {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = rnd.NormFloat64()
	}
	return mat.NewDense(n, n, data)
}

// extend must maintain the Arnoldi relation A*V = V*H + f*eⱼᵀ at every
// order, and keep V's columns orthonormal.
func TestFactorizationExtendMaintainsInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	n, m := 8, 6
	a := newRandomMatrix(n, rnd)
	op := newOpCounter(denseOperator{a})
	fz := newFactorization(n, m, op)

	resid := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		resid.SetVec(i, rnd.Float64()-0.5)
	}
	if err := fz.init(resid); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := fz.extend(m); err != nil {
		t.Fatalf("extend: %v", err)
	}

	j := fz.order
	vj := fz.v.Slice(0, n, 0, j).(*mat.Dense)
	hj := fz.h.Slice(0, j, 0, j).(*mat.Dense)

	var av, vh mat.Dense
	av.Mul(a, vj)
	vh.Mul(vj, hj)

	var resid2 mat.Dense
	resid2.Sub(&av, &vh)

	ej := mat.NewVecDense(j, nil)
	ej.SetVec(j-1, 1)
	var outer mat.Dense
	outer.Outer(1, fz.f, ej)

	var diff mat.Dense
	diff.Sub(&resid2, &outer)
	if nrm := mat.Norm(&diff, 2); nrm > 1e-8 {
		t.Errorf("Arnoldi relation violated: ||A*V - V*H - f*eⱼᵀ|| = %v", nrm)
	}

	var gram mat.Dense
	gram.Mul(vj.T(), vj)
	for i := 0; i < j; i++ {
		for k := 0; k < j; k++ {
			want := 0.0
			if i == k {
				want = 1
			}
			if got := gram.At(i, k); math.Abs(got-want) > 1e-6 {
				t.Errorf("V not orthonormal at (%d,%d): got %v, want %v", i, k, got, want)
			}
		}
	}
}

func TestFactorizationInitRejectsZeroResidual(t *testing.T) {
	n := 4
	op := newOpCounter(denseOperator{mat.NewDense(n, n, nil)})
	fz := newFactorization(n, 3, op)
	err := fz.init(mat.NewVecDense(n, nil))
	if err == nil {
		t.Fatal("init with a zero residual should return an error")
	}
}
