// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package num

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Native is the built-in backend on top of gonum: dense LU for linear
// systems and a Cholesky reduction to a symmetric standard
// eigenproblem for modal analysis.
type Native struct{}

// NewNative returns the gonum-based backend
func NewNative() *Native { return &Native{} }

// Name returns "gonum"
func (o *Native) Name() string { return "gonum" }

// Solve factorizes K with partial-pivoting LU and returns u with the
// residual norm of the realized dense system
func (o *Native) Solve(sys *LinSystem) (u []float64, info *SolveInfo, err error) {
	n := sys.Ndof
	if n < 1 {
		return nil, nil, Errf("solve", "system has no degrees of freedom")
	}
	if len(sys.F) != n {
		return nil, nil, Errf("solve", "force vector has length %d, want %d", len(sys.F), n)
	}
	K := sys.Kt.ToDense()

	var lu mat.LU
	lu.Factorize(K)
	x := mat.NewVecDense(n, nil)
	f := mat.NewVecDense(n, append([]float64(nil), sys.F...))
	if err := lu.SolveVecTo(x, false, f); err != nil {
		return nil, nil, Errf("solve", "LU factorization failed: matrix is singular or near-singular")
	}

	u = make([]float64, n)
	copy(u, x.RawVector().Data)

	// residual r = K u - F
	r := make([]float64, n)
	for i := 0; i < n; i++ {
		s := -sys.F[i]
		for j := 0; j < n; j++ {
			s += K.At(i, j) * u[j]
		}
		r[i] = s
	}
	info = &SolveInfo{Solver: o.Name(), Iterations: 1, ResidNorm: floats.Norm(r, 2)}
	return u, info, nil
}

// Eigen reduces K phi = lambda M phi on the free dofs to standard form
// with M = L Lt, solves the symmetric problem and maps the shapes back
func (o *Native) Eigen(sys *EigSystem) (*Modes, error) {
	nf := len(sys.Free)
	if nf < 1 {
		return nil, Errf("eigen", "no free degrees of freedom")
	}

	// restrict to the free dofs
	pos := make(map[int]int, nf)
	for a, d := range sys.Free {
		pos[d] = a
	}
	Kf := mat.NewDense(nf, nf, nil)
	Mf := mat.NewSymDense(nf, nil)
	restrict := func(t *Triplets, put func(a, b int, v float64)) {
		for k, v := range t.V {
			a, oka := pos[t.I[k]]
			b, okb := pos[t.J[k]]
			if oka && okb {
				put(a, b, v)
			}
		}
	}
	restrict(sys.Kt, func(a, b int, v float64) { Kf.Set(a, b, Kf.At(a, b)+v) })
	restrict(sys.Mt, func(a, b int, v float64) {
		if a <= b {
			Mf.SetSym(a, b, Mf.At(a, b)+v)
		}
	})

	var chol mat.Cholesky
	if ok := chol.Factorize(Mf); !ok {
		return nil, Errf("eigen", "mass matrix is not positive definite")
	}
	var L mat.TriDense
	chol.LTo(&L)

	// Kt = inv(L) * Kf * inv(Lt), built with two forward substitutions
	X := mat.NewDense(nf, nf, nil) // X = inv(L) * Kf
	col := make([]float64, nf)
	for j := 0; j < nf; j++ {
		for i := 0; i < nf; i++ {
			col[i] = Kf.At(i, j)
		}
		forwardSub(&L, col)
		for i := 0; i < nf; i++ {
			X.Set(i, j, col[i])
		}
	}
	KrD := mat.NewDense(nf, nf, nil) // Kr = X * inv(Lt) = (inv(L) * Xt)t
	for i := 0; i < nf; i++ {
		for j := 0; j < nf; j++ {
			col[j] = X.At(i, j)
		}
		forwardSub(&L, col)
		for j := 0; j < nf; j++ {
			KrD.Set(i, j, col[j])
		}
	}
	Kr := mat.NewSymDense(nf, nil)
	for i := 0; i < nf; i++ {
		for j := i; j < nf; j++ {
			// symmetrize against roundoff in the reduction
			Kr.SetSym(i, j, (KrD.At(i, j)+KrD.At(j, i))/2.0)
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(Kr, true); !ok {
		return nil, Errf("eigen", "symmetric eigendecomposition failed")
	}
	lams := eig.Values(nil) // ascending
	var psi mat.Dense
	eig.VectorsTo(&psi)

	nev := sys.Nev
	if nev <= 0 || nev > nf {
		nev = nf
	}
	out := &Modes{}
	for k := 0; k < nf && len(out.Lambdas) < nev; k++ {
		lam := lams[k]
		if lam <= 1e-10 { // rigid-body or spurious mode
			continue
		}
		// phi = inv(Lt) * psi
		phi := make([]float64, nf)
		for i := 0; i < nf; i++ {
			phi[i] = psi.At(i, k)
		}
		backSubT(&L, phi)

		full := make([]float64, sys.Ndof)
		for a, d := range sys.Free {
			full[d] = phi[a]
		}
		out.Lambdas = append(out.Lambdas, lam)
		out.Freqs = append(out.Freqs, math.Sqrt(lam)/(2.0*math.Pi))
		out.Shapes = append(out.Shapes, full)
	}
	if len(out.Lambdas) == 0 {
		return nil, Errf("eigen", "no positive eigenvalues found")
	}
	return out, nil
}

// forwardSub solves L x = b in place for lower-triangular L
func forwardSub(L *mat.TriDense, b []float64) {
	n := len(b)
	for i := 0; i < n; i++ {
		s := b[i]
		for j := 0; j < i; j++ {
			s -= L.At(i, j) * b[j]
		}
		b[i] = s / L.At(i, i)
	}
}

// backSubT solves Lt x = b in place for lower-triangular L
func backSubT(L *mat.TriDense, b []float64) {
	n := len(b)
	for i := n - 1; i >= 0; i-- {
		s := b[i]
		for j := i + 1; j < n; j++ {
			s -= L.At(j, i) * b[j]
		}
		b[i] = s / L.At(i, i)
	}
}
