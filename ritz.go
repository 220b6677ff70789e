// Copyright ©2024 The Arpack-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arpack

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ritzSet holds the eigendecomposition of the order×order leading block of
// an Arnoldi Hessenberg matrix H, sorted by a SelectionRule, per spec §4.5.
type ritzSet struct {
	order  int
	values []complex128 // length order, sorted most-wanted first
	// vectors holds the order×order matrix of eigenvectors of H, with
	// column i corresponding to values[i].
	vectors *mat.CDense
}

// extractRitz computes the eigendecomposition of the leading order×order
// block of h (a standard dense non-symmetric eigensolver, per spec §4.5 —
// delegated to gonum.org/v1/gonum/mat.Eigen, itself backed by LAPACK's
// Geev) and sorts the resulting Ritz pairs by rule.
func extractRitz(h *mat.Dense, order int, rule SelectionRule) (*ritzSet, error) {
	sub := h.Slice(0, order, 0, order)

	var eig mat.Eigen
	ok := eig.Factorize(sub, false, true)
	if !ok {
		return nil, fmt.Errorf("arpack: eigendecomposition of the projected Hessenberg matrix failed")
	}
	values := eig.Values(nil)
	vectors := eig.VectorsTo(nil)

	rs := &ritzSet{order: order, values: values, vectors: vectors}
	rs.resort(rule)
	return rs, nil
}

// resort reorders rs.values and the corresponding columns of rs.vectors in
// place by rule. It is used to rank freshly extracted Ritz pairs (all order
// of them) so that the unwanted, lowest-ranked values can be read off as
// exact shifts for the next restart.
func (rs *ritzSet) resort(rule SelectionRule) {
	rs.resortPrefix(rs.order, rule)
}

// resortPrefix reorders only the first n entries of rs.values (and the
// corresponding columns of rs.vectors) among themselves by rule, leaving
// entries [n:order) untouched. This is what spec §4.6's final sort calls
// for: reordering the first k *converged* pairs by LargestMagnitude, not
// the whole retained subspace — sorting the full order would pull in
// unwanted (unconverged, or in shift-and-invert mode merely nearby-but-not
// wanted) Ritz values that happen to rank higher under LargestMagnitude
// than the converged ones actually being reported.
//
// It also works after a ShiftInvertSolver has transformed rs.values, since
// it sorts whatever values are currently stored rather than recomputing an
// eigendecomposition.
func (rs *ritzSet) resortPrefix(n int, rule SelectionRule) {
	if n > rs.order {
		n = rs.order
	}
	if n <= 0 {
		return
	}
	order := rs.order
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return rule.less(rs.values[idx[a]], rs.values[idx[b]])
	})

	sortedValues := make([]complex128, n)
	sortedCols := make([][]complex128, n)
	for newI, oldI := range idx {
		sortedValues[newI] = rs.values[oldI]
		col := make([]complex128, order)
		for row := 0; row < order; row++ {
			col[row] = rs.vectors.At(row, oldI)
		}
		sortedCols[newI] = col
	}
	for i := 0; i < n; i++ {
		rs.values[i] = sortedValues[i]
		for row := 0; row < order; row++ {
			rs.vectors.Set(row, i, sortedCols[i][row])
		}
	}
}

// convergedMask reports, for each of the first k (most-wanted) Ritz pairs,
// whether it satisfies the convergence test of spec §3/§4.5:
//
//	|y_i[order-1]| * ‖f‖ < tol * max(ε^(2/3), |θ_i|)
func (rs *ritzSet) convergedMask(k int, fNorm, tol float64) []bool {
	mask := make([]bool, k)
	for i := 0; i < k; i++ {
		errEst := cmplx.Abs(rs.vectors.At(rs.order-1, i)) * fNorm
		bound := tol * math.Max(orthoTol, cmplx.Abs(rs.values[i]))
		mask[i] = errEst < bound
	}
	return mask
}

func countTrue(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}
	return n
}
