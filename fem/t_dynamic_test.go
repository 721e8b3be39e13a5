// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// the bar of barModel behaves as a single-dof oscillator: stiffness
// EA/L and consistent end mass rho*A*L/3
func barOmega() float64 {
	k := 210000.0 * 0.001 / 1.0
	m := 7.85e-9 * 0.001 * 1.0 / 3.0
	return math.Sqrt(k / m)
}

func Test_newmark01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newmark01. step load response peaks at twice the static answer")

	m, mats, bcs, secs := barModel(210000, 1000)
	period := 2.0 * math.Pi / barOmega()
	cfg := AverageAcceleration(period/100.0, 200) // two periods
	hist, err := SolveDynamic(m, mats, bcs, secs, cfg)
	if err != nil {
		tst.Errorf("SolveDynamic failed:\n%v", err)
		return
	}
	chk.Int(tst, "num stations", hist.Len(), 201)
	chk.Float64(tst, "t1", 1e-15, hist.Times[1], cfg.Dt)
	chk.Float64(tst, "starts at rest", 1e-15, hist.U[0][3], 0)

	ustatic := 1000.0 / (0.001 * 210000.0)
	peak := 0.0
	for _, u := range hist.U {
		if u[3] > peak {
			peak = u[3]
		}
	}
	if math.Abs(peak-2.0*ustatic)/(2.0*ustatic) > 0.05 {
		tst.Errorf("peak %v, want about %v", peak, 2.0*ustatic)
	}
}

func Test_newmark02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newmark02. heavy damping settles at the static solution")

	m, mats, bcs, secs := barModel(210000, 1000)
	w := barOmega()
	period := 2.0 * math.Pi / w
	cfg := AverageAcceleration(period/100.0, 400)
	cfg.AlphaDamp = w // damping ratio 1/2
	hist, err := SolveDynamic(m, mats, bcs, secs, cfg)
	if err != nil {
		tst.Errorf("SolveDynamic failed:\n%v", err)
		return
	}
	ustatic := 1000.0 / (0.001 * 210000.0)
	uend := hist.Last().U[3]
	if math.Abs(uend-ustatic)/ustatic > 0.02 {
		tst.Errorf("settled at %v, want %v", uend, ustatic)
	}
}

func Test_newmark03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newmark03. presets and parameter validation")

	chk.Float64(tst, "average beta", 1e-15, AverageAcceleration(1, 1).Beta, 0.25)
	chk.Float64(tst, "linear beta", 1e-15, LinearAcceleration(1, 1).Beta, 1.0/6.0)
	chk.Float64(tst, "foxgoodwin beta", 1e-15, FoxGoodwin(1, 1).Beta, 1.0/12.0)

	m, mats, bcs, secs := barModel(210000, 1000)
	if _, err := SolveDynamic(m, mats, bcs, secs, NewmarkConfig{Beta: 0.25, Gamma: 0.5}); err == nil {
		tst.Errorf("zero time step should fail")
		return
	}
	if _, err := SolveDynamic(m, mats, bcs, secs, NewmarkConfig{Dt: 1e-8, Steps: 1}); err == nil {
		tst.Errorf("zero beta should fail")
	}
}

func Test_newmark04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newmark04. constrained dofs stay put while stepping")

	m, mats, bcs, secs := barModel(210000, 1000)
	period := 2.0 * math.Pi / barOmega()
	hist, err := SolveDynamic(m, mats, bcs, secs, AverageAcceleration(period/50.0, 100))
	if err != nil {
		tst.Errorf("SolveDynamic failed:\n%v", err)
		return
	}
	for _, u := range hist.U {
		for _, d := range []int{0, 1, 2, 4, 5} {
			if math.Abs(u[d]) > 1e-9 {
				tst.Errorf("constrained dof %d moved to %v", d, u[d])
				return
			}
		}
	}
}
