// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/aecs4u/calculix-sub001/mdl"
	"github.com/aecs4u/calculix-sub001/msh"
	"github.com/aecs4u/calculix-sub001/out"
)

// NonlinearConfig controls the Newton iteration. ModifiedNewton reuses
// the first factorization for all iterations instead of refactorizing.
type NonlinearConfig struct {
	MaxIt          int
	TolForce       float64
	TolDisp        float64
	TolEnergy      float64
	LineSearch     bool
	MaxLineSearch  int
	ModifiedNewton bool
}

// DefaultNonlinearConfig returns the standard tolerances
func DefaultNonlinearConfig() NonlinearConfig {
	return NonlinearConfig{
		MaxIt:         50,
		TolForce:      1e-6,
		TolDisp:       1e-8,
		TolEnergy:     1e-10,
		LineSearch:    true,
		MaxLineSearch: 10,
	}
}

// ConvergenceFailure reports a Newton loop that diverged or ran out of
// iterations
type ConvergenceFailure struct {
	Iter  int
	Resid float64
	Msg   string
}

// Error returns the message with iteration count and residual
func (e *ConvergenceFailure) Error() string {
	return io.Sf("no convergence after %d iterations (residual %g): %s", e.Iter, e.Resid, e.Msg)
}

// NewtonStats reports how the iteration went
type NewtonStats struct {
	NumIt     int
	ResidNorm float64
	Status    string
	History   []float64 // residual norm per iteration
}

// lineSearchAlphas are tried in order; the first one that reduces the
// residual wins, otherwise the full step is taken
var lineSearchAlphas = []float64{1.0, 0.5, 0.25, 0.125, 0.0625}

// SolveNonlinear runs a Newton iteration on the assembled system with
// linear internal forces R = F - K u. For a linear model it converges
// in one step; the machinery (tolerances, line search, divergence
// detection) matches the general nonlinear loop.
func SolveNonlinear(m *msh.Mesh, mats *mdl.Set, bcs *BoundaryConds, secs *Sections, cfg NonlinearConfig) (*out.Results, *NewtonStats, error) {
	sys, err := AssembleSparse(m, mats, bcs, secs, false)
	if err != nil {
		return nil, nil, err
	}
	n := sys.Ndof
	K := sys.Kt.ToDense()
	F := sys.F

	normF := floats.Norm(F, 2)
	u := make([]float64, n)
	R := make([]float64, n)
	copy(R, F) // residual at u = 0

	residual := func(uu, rr []float64) float64 {
		for i := 0; i < n; i++ {
			s := F[i]
			for j := 0; j < n; j++ {
				s -= K.At(i, j) * uu[j]
			}
			rr[i] = s
		}
		return floats.Norm(rr, 2)
	}

	var lu mat.LU
	factorized := false
	stats := &NewtonStats{}
	rprev := math.Inf(1)
	r := floats.Norm(R, 2)

	for it := 1; it <= cfg.MaxIt; it++ {
		stats.NumIt = it
		stats.History = append(stats.History, r)

		if converged(r, u, R, normF, cfg) {
			stats.Status = "converged"
			stats.ResidNorm = r
			res := &out.Results{Ndof: n, Stride: sys.Stride, U: u}
			return res, stats, nil
		}
		if r > 10.0*rprev {
			return nil, stats, &ConvergenceFailure{Iter: it, Resid: r, Msg: "residual is diverging"}
		}

		if !factorized || !cfg.ModifiedNewton {
			lu.Factorize(K)
			factorized = true
		}
		du := mat.NewVecDense(n, nil)
		if err := lu.SolveVecTo(du, false, mat.NewVecDense(n, append([]float64(nil), R...))); err != nil {
			return nil, stats, &ConvergenceFailure{Iter: it, Resid: r, Msg: "tangent matrix is singular"}
		}

		alpha := 1.0
		if cfg.LineSearch {
			trial := make([]float64, n)
			rr := make([]float64, n)
			for k, a := range lineSearchAlphas {
				if k >= cfg.MaxLineSearch {
					break
				}
				for i := 0; i < n; i++ {
					trial[i] = u[i] + a*du.AtVec(i)
				}
				if residual(trial, rr) < r {
					alpha = a
					break
				}
			}
		}
		for i := 0; i < n; i++ {
			u[i] += alpha * du.AtVec(i)
		}
		rprev = r
		r = residual(u, R)
	}
	stats.ResidNorm = r
	return nil, stats, &ConvergenceFailure{Iter: cfg.MaxIt, Resid: r, Msg: "iteration limit reached"}
}

// converged applies the force, displacement and energy criteria
func converged(r float64, u, R []float64, normF float64, cfg NonlinearConfig) bool {
	// force criterion, absolute for an unloaded system
	if normF > 1e-12 {
		if r/normF >= cfg.TolForce {
			return false
		}
	} else if r >= cfg.TolForce {
		return false
	}
	normU := floats.Norm(u, 2)
	if normU > 1e-12 && r/normU >= cfg.TolDisp {
		return false
	}
	e := math.Abs(floats.Dot(R, u)) / math.Max(normU*normF, 1.0)
	return e < cfg.TolEnergy
}
