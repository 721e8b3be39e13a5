// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"

	"github.com/aecs4u/calculix-sub001/mdl"
	"github.com/aecs4u/calculix-sub001/msh"
	"github.com/aecs4u/calculix-sub001/out"
)

// NewmarkConfig holds the time integration parameters and the Rayleigh
// damping coefficients C = AlphaDamp*M + BetaDamp*K
type NewmarkConfig struct {
	Beta      float64
	Gamma     float64
	AlphaDamp float64
	BetaDamp  float64
	Dt        float64
	Steps     int
}

// AverageAcceleration returns the unconditionally stable preset
// (beta 1/4, gamma 1/2)
func AverageAcceleration(dt float64, steps int) NewmarkConfig {
	return NewmarkConfig{Beta: 0.25, Gamma: 0.5, Dt: dt, Steps: steps}
}

// LinearAcceleration returns the beta 1/6, gamma 1/2 preset
func LinearAcceleration(dt float64, steps int) NewmarkConfig {
	return NewmarkConfig{Beta: 1.0 / 6.0, Gamma: 0.5, Dt: dt, Steps: steps}
}

// FoxGoodwin returns the beta 1/12, gamma 1/2 preset
func FoxGoodwin(dt float64, steps int) NewmarkConfig {
	return NewmarkConfig{Beta: 1.0 / 12.0, Gamma: 0.5, Dt: dt, Steps: steps}
}

// SolveDynamic integrates M a + C v + K u = F from rest with constant
// loads, using the Newmark-beta recurrence with a single factorization
// of the effective stiffness.
func SolveDynamic(m *msh.Mesh, mats *mdl.Set, bcs *BoundaryConds, secs *Sections, cfg NewmarkConfig) (*out.History, error) {
	if cfg.Dt <= 0 || cfg.Steps < 1 {
		return nil, chk.Err("time step %g and step count %d must be positive", cfg.Dt, cfg.Steps)
	}
	if cfg.Beta <= 0 || cfg.Gamma <= 0 {
		return nil, chk.Err("newmark parameters beta %g and gamma %g must be positive", cfg.Beta, cfg.Gamma)
	}
	sys, err := AssembleSystem(m, mats, bcs, secs, true)
	if err != nil {
		return nil, err
	}
	n := sys.Ndof

	K := mat.NewDense(n, n, nil)
	M := mat.NewDense(n, n, nil)
	C := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			k, ms := sys.K.Get(i, j), sys.M.Get(i, j)
			K.Set(i, j, k)
			M.Set(i, j, ms)
			C.Set(i, j, cfg.AlphaDamp*ms+cfg.BetaDamp*k)
		}
	}
	F := append([]float64(nil), sys.F...)

	u := make([]float64, n)
	v := make([]float64, n)
	a := make([]float64, n)

	// initial acceleration from M a0 = F - C v0 - K u0 (rest: = F)
	var luM mat.LU
	luM.Factorize(M)
	a0 := mat.NewVecDense(n, nil)
	if err := luM.SolveVecTo(a0, false, mat.NewVecDense(n, append([]float64(nil), F...))); err != nil {
		return nil, chk.Err("mass matrix is singular: cannot compute initial accelerations")
	}
	copy(a, a0.RawVector().Data)

	dt := cfg.Dt
	beta, gamma := cfg.Beta, cfg.Gamma
	c0 := 1.0 / (beta * dt * dt)
	c1 := gamma / (beta * dt)
	c2 := 1.0 / (beta * dt)
	c3 := (1.0 - 2.0*beta) / (2.0 * beta)
	c4 := (gamma - beta) / beta
	c5 := dt * (gamma - 2.0*beta) / (2.0 * beta)

	// effective stiffness, factorized once
	Keff := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			Keff.Set(i, j, K.At(i, j)+c1*C.At(i, j)+c0*M.At(i, j))
		}
	}
	var lu mat.LU
	lu.Factorize(Keff)

	hist := &out.History{Stride: sys.Stride}
	hist.AddStep(0, u, v, a)

	feff := make([]float64, n)
	unew := mat.NewVecDense(n, nil)
	for s := 1; s <= cfg.Steps; s++ {
		for i := 0; i < n; i++ {
			fm := 0.0
			fc := 0.0
			for j := 0; j < n; j++ {
				fm += M.At(i, j) * (c0*u[j] + c2*v[j] + c3*a[j])
				fc += C.At(i, j) * (c1*u[j] + c4*v[j] + c5*a[j])
			}
			feff[i] = F[i] + fm + fc
		}
		if err := lu.SolveVecTo(unew, false, mat.NewVecDense(n, append([]float64(nil), feff...))); err != nil {
			return nil, chk.Err("effective stiffness is singular at step %d", s)
		}
		for i := 0; i < n; i++ {
			up := unew.AtVec(i)
			anew := c0*(up-u[i]) - c2*v[i] - c3*a[i]
			v[i] += dt * ((1.0-gamma)*a[i] + gamma*anew)
			a[i] = anew
			u[i] = up
		}
		hist.AddStep(float64(s)*dt, u, v, a)
	}
	return hist, nil
}
