// Copyright ©2024 The Arpack-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arpack

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// randSource is the subset of *golang.org/x/exp/rand.Rand used for the
// pseudo-random initial residual and the optional random-restart padding,
// matching the explicit-source convention gonum.org/v1/gonum/linsolve's
// tests use instead of the global math/rand source.
type randSource interface {
	Float64() float64
}

const defaultTolerance = 1e-10
const defaultMaxIterations = 1000

// Config holds the tunable parameters of a Solver, analogous to
// gonum.org/v1/gonum/linsolve.Settings.
type Config struct {
	// Rule selects which Ritz values are considered wanted. The zero
	// value is LargestMagnitude.
	Rule SelectionRule

	// Tolerance is the relative convergence tolerance used by Compute.
	// If zero, defaultTolerance (1e-10) is used.
	Tolerance float64

	// MaxIterations bounds the number of restart iterations performed by
	// Compute. If zero, defaultMaxIterations (1000) is used.
	MaxIterations int

	// Seed seeds the pseudo-random initial residual drawn by InitRandom
	// and the PadRandomOnBreakdown recovery. If zero, a source seeded
	// from the wall clock is used, per spec §9's "each implementation
	// should expose an optional seed".
	Seed uint64

	// PadRandomOnBreakdown selects spec §9 option (a): when the Arnoldi
	// residual collapses (an invariant subspace was found), pad it with
	// a random vector orthogonalized against the current basis and keep
	// going, instead of the §7-mandated default option (b), returning
	// early with the current convergence count.
	PadRandomOnBreakdown bool
}

// Solver computes a small number k of extremal eigenpairs of a real n×n
// operator using the Implicitly Restarted Arnoldi Method, per spec §4.6.
type Solver struct {
	op   *opCounter
	n, k, m int
	cfg  Config
	rnd  randSource

	fz   *factorization
	ritz *ritzSet

	iterations int
	nconv      int
	converged  bool

	// postProcessRitz, if set, is called once on the sorted Ritz values
	// before the final canonical sort, per spec §9's customization hook.
	// ShiftInvertSolver uses it to apply θ ↦ 1/θ + σ.
	postProcessRitz func([]complex128)
}

// NewSolver constructs a Solver for the given Operator, requesting k
// eigenpairs from an order-m Arnoldi subspace. It panics if k, m violate
// spec §3's 1 ≤ k < n and k < m ≤ n, or if cfg.Tolerance is negative or NaN
// (an InvalidArgument, reported synchronously per spec §7).
func NewSolver(op Operator, k, m int, cfg Config) *Solver {
	return newSolver(newOpCounter(op), op.Dim(), k, m, cfg)
}

func newSolver(oc *opCounter, n, k, m int, cfg Config) *Solver {
	if k < 1 || k >= n {
		panic(invalidArgf("nev=%d must satisfy 1 <= nev < n=%d", k, n))
	}
	if m <= k || m > n {
		panic(invalidArgf("ncv=%d must satisfy nev=%d < ncv <= n=%d", m, k, n))
	}
	if cfg.Tolerance < 0 || math.IsNaN(cfg.Tolerance) {
		panic(invalidArgf("tolerance=%v must be positive", cfg.Tolerance))
	}
	s := &Solver{
		op:  oc,
		n:   n,
		k:   k,
		m:   m,
		cfg: cfg,
	}
	if s.cfg.Tolerance == 0 {
		s.cfg.Tolerance = defaultTolerance
	}
	if s.cfg.MaxIterations == 0 {
		s.cfg.MaxIterations = defaultMaxIterations
	}
	seed := s.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s.rnd = rand.New(rand.NewSource(seed))
	s.fz = newFactorization(n, m, s.op)
	return s
}

// Init initializes the solver with a user-supplied initial residual, per
// spec §6. It panics with an InvalidArgumentError if resid has the wrong
// length or a norm too small to normalize.
func (s *Solver) Init(resid []float64) {
	if len(resid) != s.n {
		panic(invalidArgf("initial residual has length %d, want %d", len(resid), s.n))
	}
	v := mat.NewVecDense(s.n, append([]float64(nil), resid...))
	if err := s.fz.init(v); err != nil {
		panic(err)
	}
}

// InitRandom initializes the solver with a pseudo-random initial residual
// drawn uniformly from [-0.5, 0.5]^n, per spec §6.
func (s *Solver) InitRandom() {
	resid := make([]float64, s.n)
	for i := range resid {
		resid[i] = s.rnd.Float64() - 0.5
	}
	s.Init(resid)
}

// Compute runs the IRAM main loop of spec §4.6 until nconv >= k Ritz values
// have converged or maxIter restarts have been performed, then returns the
// number of converged pairs. A return value below k is not an error (spec
// §7's NonConvergence is not an error kind); the caller should inspect the
// return value and NumIterations. err is non-nil only for a genuine
// breakdown (spec §7 NumericalBreakdown) that PadRandomOnBreakdown did not
// absorb, or a failure in the dense eigensolver.
func (s *Solver) Compute() (nconv int, err error) {
	if err := s.extendFactorization(); err != nil {
		return 0, err
	}
	if s.ritz, err = extractRitz(s.fz.h, s.fz.order, s.cfg.Rule); err != nil {
		return 0, err
	}

	for s.iterations = 0; s.iterations < s.cfg.MaxIterations; s.iterations++ {
		mask := s.ritz.convergedMask(s.k, mat.Norm(s.fz.f, 2), s.cfg.Tolerance)
		s.nconv = countTrue(mask)
		if s.nconv >= s.k {
			s.converged = true
			break
		}

		kPrime := s.adjustK(s.nconv)
		s.restart(kPrime)

		if err := s.extendFactorization(); err != nil {
			return s.nconv, err
		}
		if s.ritz, err = extractRitz(s.fz.h, s.fz.order, s.cfg.Rule); err != nil {
			return s.nconv, err
		}
	}

	s.finalSort()
	if s.nconv > s.k {
		s.nconv = s.k
	}
	return s.nconv, nil
}

// maxBreakdownRetries bounds the number of random-residual recoveries
// extendFactorization will absorb in a single call, guarding against a
// pathological operator for which padRandomRestart never manages to make
// progress.
const maxBreakdownRetries = 10

// extendFactorization grows s.fz to full order m, absorbing any number of
// breakdowns via absorbBreakdown (when PadRandomOnBreakdown is set) and
// resuming the extension from wherever the padded residual left off, until
// order m is reached or the breakdown is not absorbed (or not absorbed
// quickly enough). Compute must never call extractRitz/restart against a
// factorization short of order m: both index Ritz values and H up to m-1.
func (s *Solver) extendFactorization() error {
	for attempt := 0; s.fz.order < s.m; attempt++ {
		err := s.fz.extend(s.m)
		if err == nil {
			return nil
		}
		if !s.absorbBreakdown(err) {
			return err
		}
		if attempt >= maxBreakdownRetries {
			return err
		}
	}
	return nil
}

// absorbBreakdown handles a breakdown error from factorization.extend: if
// PadRandomOnBreakdown is set it pads the residual and reports the
// breakdown as handled (true); otherwise it leaves the error to propagate
// (false), per spec §7/§9.
func (s *Solver) absorbBreakdown(err error) bool {
	if !s.cfg.PadRandomOnBreakdown {
		return false
	}
	s.fz.padRandomRestart(s.rnd)
	return true
}

// isUnwantedReal reports whether the Ritz value at sorted index i should be
// treated as a real shift (|Im θ| within orthoTol of zero), per spec §4.6.
func (s *Solver) isUnwantedReal(i int) bool {
	return math.Abs(imag(s.ritz.values[i])) <= orthoTol
}

// adjustK implements the restart-width heuristic of spec §4.6.
func (s *Solver) adjustK(nconv int) int {
	m, k := s.m, s.k
	kNew := k

	if k >= 1 && k < s.ritz.order && !s.isUnwantedReal(k-1) && isConjugateOf(s.ritz.values[k-1], s.ritz.values[k]) {
		kNew = k + 1
	}

	budget := (m - kNew) / 2
	if budget < 0 {
		budget = 0
	}
	extra := nconv
	if extra > budget {
		extra = budget
	}
	kNew += extra

	if kNew == 1 {
		if m >= 6 {
			kNew = m / 2
		} else if m > 3 {
			kNew = 2
		}
	}
	if kNew > m-2 {
		kNew = m - 2
	}
	if kNew < 1 {
		kNew = 1
	}

	if kNew < s.ritz.order && kNew >= 1 && !s.isUnwantedReal(kNew-1) && isConjugateOf(s.ritz.values[kNew-1], s.ritz.values[kNew]) {
		kNew++
		if kNew > m-2 {
			kNew = m - 2
		}
	}
	return kNew
}

func isConjugateOf(a, b complex128) bool {
	const tol = 1e-9
	return math.Abs(real(a)-real(b)) < tol && math.Abs(imag(a)+imag(b)) < tol && imag(a) != 0
}

// restart compresses the order-m factorization down to order kPrime by
// applying QR sweeps with the unwanted Ritz values kPrime..m-1 as exact
// shifts, per spec §4.6.
func (s *Solver) restart(kPrime int) {
	m := s.m
	em := mat.NewVecDense(m, nil)
	em.SetVec(m-1, 1)

	for i := kPrime; i < m; {
		theta := s.ritz.values[i]
		if s.isUnwantedReal(i) {
			qr := newHessenbergQR(m)
			qr.factorize(s.fz.h, real(theta))
			qr.matrixRQ(s.fz.h, real(theta))
			qr.applyYQ(s.fz.v)
			qr.applyQtY(em)
			i++
			continue
		}
		shiftS := 2 * real(theta)
		shiftT := real(theta)*real(theta) + imag(theta)*imag(theta)
		fq := newFrancisQR(m)
		fq.sweep(s.fz.h, shiftS, shiftT)
		fq.applyYQ(s.fz.v)
		fq.applyQtY(em)
		i += 2
	}

	vKPrime := s.fz.colView(kPrime)
	hSub := s.fz.h.At(kPrime, kPrime-1)

	newF := mat.NewVecDense(s.n, nil)
	newF.AddScaledVec(newF, em.AtVec(kPrime-1), s.fz.f)
	newF.AddScaledVec(newF, hSub, vKPrime)

	s.fz.f.CopyVec(newF)
	s.fz.order = kPrime
}

// finalSort applies the optional post-processing hook and then reorders
// the first nconv converged pairs by LargestMagnitude regardless of the
// rule used during iteration, per spec §4.6's canonical output ordering.
// Only the converged prefix is reordered: Eigenvalues/Eigenvectors return
// values[:nconv], and sorting the whole retained subspace would let
// unconverged (or, in shift-and-invert mode, merely nearby) Ritz values
// outrank the converged ones under LargestMagnitude and leak into the
// output.
func (s *Solver) finalSort() {
	if s.ritz == nil {
		return
	}
	if s.postProcessRitz != nil {
		s.postProcessRitz(s.ritz.values)
	}
	s.ritz.resortPrefix(s.nconv, LargestMagnitude)
}

// NumIterations returns the number of restart iterations performed by the
// most recent Compute call.
func (s *Solver) NumIterations() int { return s.iterations }

// NumOperations returns the number of Operator.Apply (or ApplyShiftSolve)
// calls made through this Solver so far, including the one made by Init;
// the count is not reset between Compute calls.
func (s *Solver) NumOperations() int { return s.op.n }

// Eigenvalues returns the converged Ritz values from the most recent
// Compute call. It panics with a NotComputedError if Compute has not been
// called successfully.
func (s *Solver) Eigenvalues() []complex128 {
	if s.ritz == nil {
		panic(&NotComputedError{method: "Eigenvalues"})
	}
	out := make([]complex128, s.nconv)
	copy(out, s.ritz.values[:s.nconv])
	return out
}

// Eigenvectors returns the n×nconv complex matrix V*y of converged
// eigenvectors from the most recent Compute call, per spec §4.7. It panics
// with a NotComputedError if Compute has not been called successfully.
func (s *Solver) Eigenvectors() *mat.CDense {
	if s.ritz == nil {
		panic(&NotComputedError{method: "Eigenvectors"})
	}
	out := mat.NewCDense(s.n, s.nconv, nil)
	for col := 0; col < s.nconv; col++ {
		for row := 0; row < s.n; row++ {
			var acc complex128
			for j := 0; j < s.ritz.order; j++ {
				acc += complex(s.fz.v.At(row, j), 0) * s.ritz.vectors.At(j, col)
			}
			out.Set(row, col, acc)
		}
	}
	return out
}
