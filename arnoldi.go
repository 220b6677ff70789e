// Copyright ©2024 The Arpack-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arpack

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// factorization holds an order-j Arnoldi factorization
//
//	A*V[:,0:j] = V[:,0:j]*H[0:j,0:j] + f*eⱼᵀ,  Vᵀ*f = 0
//
// per spec §3/§4.4. V and H are preallocated at their maximum order m; j is
// tracked in order.
type factorization struct {
	n, m  int // operator dimension, maximum Arnoldi order (ncv)
	order int // current valid order j

	v *mat.Dense    // n×m
	h *mat.Dense    // m×m, upper Hessenberg within [0:order, 0:order]
	f *mat.VecDense // n, the residual

	op *opCounter

	w mat.VecDense // scratch, reused across extension steps
}

func newFactorization(n, m int, op *opCounter) *factorization {
	return &factorization{
		n: n, m: m,
		v: mat.NewDense(n, m, nil),
		h: mat.NewDense(m, m, nil),
		f: mat.NewVecDense(n, nil),
		op: op,
	}
}

// colView returns the j-th column of fz.v as a *mat.VecDense, mirroring
// the vcol helper of gonum.org/v1/gonum/linsolve.GMRES.
func (fz *factorization) colView(j int) *mat.VecDense {
	return fz.v.ColView(j).(*mat.VecDense)
}

// init performs the order-0-to-1 Arnoldi step of spec §4.4: normalize
// initResid into V[:,0], then set H[0,0] and the residual f.
func (fz *factorization) init(initResid *mat.VecDense) error {
	norm := mat.Norm(initResid, 2)
	if norm <= orthoTol {
		return invalidArgf("initial residual has norm %.3g, too small to normalize", norm)
	}
	v0 := fz.colView(0)
	v0.ScaleVec(1/norm, initResid)

	fz.w.ReuseAsVec(fz.n)
	fz.op.apply(&fz.w, v0)

	h00 := mat.Dot(v0, &fz.w)
	fz.h.Set(0, 0, h00)
	fz.f.ReuseAsVec(fz.n)
	fz.f.AddScaledVec(&fz.w, -h00, v0)

	fz.order = 1
	return nil
}

// extend grows the factorization from its current order up to order to,
// per spec §4.4. It returns an error wrapping ErrBreakdown if the residual
// norm collapses (an invariant subspace was found) before reaching to; the
// factorization is left valid at whatever order it reached.
func (fz *factorization) extend(to int) error {
	fz.w.ReuseAsVec(fz.n)
	for i := fz.order; i < to; i++ {
		beta := mat.Norm(fz.f, 2)
		if beta <= orthoTol {
			return fmt.Errorf("%w: beta=%.3g at order %d", ErrBreakdown, beta, i)
		}
		vi := fz.colView(i)
		vi.ScaleVec(1/beta, fz.f)
		fz.h.Set(i, i-1, beta)
		for j := 0; j < i-1; j++ {
			fz.h.Set(i, j, 0)
		}

		fz.op.apply(&fz.w, vi)

		for j := 0; j <= i; j++ {
			vj := fz.colView(j)
			fz.h.Set(j, i, mat.Dot(vj, &fz.w))
		}

		fz.f.CopyVec(&fz.w)
		for j := 0; j <= i; j++ {
			vj := fz.colView(j)
			fz.f.AddScaledVec(fz.f, -fz.h.At(j, i), vj)
		}

		// One-step re-orthogonalization (spec §4.4 step 6, §9 open
		// question): probe drift against the first basis vector only.
		v0 := fz.colView(0)
		if math.Abs(mat.Dot(v0, fz.f)) > orthoTol {
			for j := 0; j <= i; j++ {
				vj := fz.colView(j)
				c := mat.Dot(vj, fz.f)
				fz.f.AddScaledVec(fz.f, -c, vj)
			}
		}

		fz.order = i + 1
	}
	return nil
}

// padRandomRestart implements spec §9 option (a): when the residual
// collapses, replace it with a random vector orthogonalized against the
// current basis, allowing the factorization to continue past an invariant
// subspace instead of terminating early (spec §7 option (b), the default
// used by extend's caller when this is not enabled).
func (fz *factorization) padRandomRestart(rnd randSource) {
	fz.f.ReuseAsVec(fz.n)
	for i := 0; i < fz.n; i++ {
		fz.f.SetVec(i, rnd.Float64()-0.5)
	}
	for j := 0; j < fz.order; j++ {
		vj := fz.colView(j)
		c := mat.Dot(vj, fz.f)
		fz.f.AddScaledVec(fz.f, -c, vj)
	}
}
