// Copyright ©2024 The Arpack-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package arpack computes a small number of extremal eigenvalues and
eigenvectors of a large real square matrix A, using the Implicitly
Restarted Arnoldi Method (IRAM).

Background

Given a real n×n matrix A, an eigenpair (θ, x) satisfies

 A * x = θ * x,  x != 0.

For large n a dense eigensolver that computes all n eigenpairs is
infeasible: it requires O(n^3) operations and O(n^2) storage. In many
applications, however, only a handful k of eigenpairs are wanted — the
few of largest magnitude, the few closest to a point in the complex
plane, and so on — and A is available only as an abstract linear
operator, never materialized as a dense matrix.

IRAM builds a sequence of Krylov subspaces of modest, fixed dimension m
(m typically a small multiple of k), projects A onto each subspace to
get a much smaller m×m Hessenberg eigenproblem, and repeatedly
restarts the subspace using an implicit QR mechanism so that it keeps
growing toward the wanted invariant subspace of A instead of the whole
of R^n. This package never reads the entries of A directly; it only
ever asks for the result of A*x through the Operator interface.

Using arpack

The two most important elements of the API are the Operator interface
and the Solver type.

Operator interface

The Operator interface represents the matrix A. This abstracts the
details of any particular matrix representation — dense, sparse,
matrix-free — and lets the caller exploit whatever structure makes
A*x cheap to compute.

Solver

Solver is the entry point to the functionality provided by this
package. It is constructed with an Operator, the number of wanted
eigenpairs k, the Arnoldi subspace dimension m, and a Config
controlling the selection rule, convergence tolerance, iteration
budget, and random-restart behavior. After an initial residual is
supplied with Init or InitRandom, Compute runs the IRAM main loop and
reports how many of the k wanted eigenpairs converged; Eigenvalues and
Eigenvectors retrieve the result.

Shift-and-invert

When the wanted eigenvalues cluster near a real shift σ rather than
at the extremes of the spectrum, convergence is
often far faster against the spectral transformation (A - σI)^-1
than against A directly, since eigenvalues of A near σ map to
eigenvalues of (A - σI)^-1 of large magnitude. ShiftInvertSolver
wraps this transformation: the caller supplies a ShiftInvertOperator
able to solve (A - σI)y = x, and ShiftInvertSolver undoes the
transformation on the resulting Ritz values before reporting them.

References

 - Lehoucq, R. B., Sorensen, D. C., & Yang, C. (1998). ARPACK Users'
   Guide: Solution of Large-Scale Eigenvalue Problems with Implicitly
   Restarted Arnoldi Methods. Philadelphia, PA: SIAM.
 - Sorensen, D. C. (1992). Implicit Application of Polynomial Filters
   in a k-Step Arnoldi Method. SIAM Journal on Matrix Analysis and
   Applications, 13(1), 357-385.
*/
package arpack
