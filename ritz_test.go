// Copyright ©2024 The Arpack-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arpack

import (
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestExtractRitzMatchesKnownSpectrum(t *testing.T) {
	// Upper triangular, so the eigenvalues are exactly the diagonal.
	h := mat.NewDense(3, 3, []float64{
		4, 1, 2,
		0, -1, 3,
		0, 0, 2,
	})
	rs, err := extractRitz(h, 3, LargestMagnitude)
	if err != nil {
		t.Fatalf("extractRitz: %v", err)
	}
	want := []float64{4, 2, -1}
	for i, w := range want {
		if got := real(rs.values[i]); cmplx.Abs(complex(got-w, imag(rs.values[i]))) > 1e-8 {
			t.Errorf("values[%d] = %v, want ~%v", i, rs.values[i], w)
		}
	}
}

func TestRitzSetResortReordersValuesAndVectors(t *testing.T) {
	rs := &ritzSet{
		order:  3,
		values: []complex128{1, 3, 2},
		vectors: mat.NewCDense(3, 3, []complex128{
			10, 20, 30,
			10, 20, 30,
			10, 20, 30,
		}),
	}
	rs.resort(LargestMagnitude)
	want := []complex128{3, 2, 1}
	for i, w := range want {
		if rs.values[i] != w {
			t.Errorf("values[%d] = %v, want %v", i, rs.values[i], w)
		}
	}
	// Column 0 after resort must be the column that used to carry value 3,
	// i.e. the old column 1, whose entries were all 20.
	if got := rs.vectors.At(0, 0); got != 20 {
		t.Errorf("vectors column 0 = %v, want 20 (not permuted in lockstep with values)", got)
	}
}

func TestConvergedMask(t *testing.T) {
	rs := &ritzSet{
		order: 2,
		values: []complex128{10, 1},
		vectors: mat.NewCDense(2, 2, []complex128{
			1e-12, 0.5,
			0, 0.5,
		}),
	}
	mask := rs.convergedMask(2, 1.0, 1e-8)
	if !mask[0] {
		t.Error("pair 0 should converge: tiny last-row eigenvector entry")
	}
	if mask[1] {
		t.Error("pair 1 should not converge: large last-row eigenvector entry")
	}
}
