// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/aecs4u/calculix-sub001/msh"
	"github.com/cpmech/gosl/chk"
)

func Test_beam01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam01. local terms of beam along x")

	sec := BeamSection(1e-3, 2e-6, 3e-6, 4e-6)
	e, _ := New(msh.B31, 1, []int{1, 2}, sec)
	nds := []*msh.Node{{ID: 1}, {ID: 2, X: 2}}
	K, err := e.Stiffness(nds, steel)
	if err != nil {
		tst.Errorf("Stiffness failed:\n%v", err)
		return
	}

	// for a beam along x the transformation is the identity
	l := 2.0
	EA := steel.E * sec.A
	EIz := steel.E * sec.Izz
	EIy := steel.E * sec.Iyy
	GJ := steel.G() * sec.J
	chk.Float64(tst, "axial", 1e-6, K.Get(0, 0), EA/l)
	chk.Float64(tst, "bend z", 1e-6, K.Get(1, 1), 12.0*EIz/(l*l*l))
	chk.Float64(tst, "bend z coupling", 1e-6, K.Get(1, 5), 6.0*EIz/(l*l))
	chk.Float64(tst, "bend y", 1e-6, K.Get(2, 2), 12.0*EIy/(l*l*l))
	chk.Float64(tst, "bend y coupling", 1e-6, K.Get(2, 4), -6.0*EIy/(l*l))
	chk.Float64(tst, "torsion", 1e-6, K.Get(3, 3), GJ/l)
	chk.Float64(tst, "rot z", 1e-6, K.Get(5, 5), 4.0*EIz/l)
	checkSymmetric(tst, "beam K", K, 12)
}

func Test_beam02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam02. frame of a vertical beam")

	sec := CircSection(0.05)
	e, _ := New(msh.B31, 1, []int{1, 2}, sec)
	bm := e.(*Beam)
	nds := []*msh.Node{{ID: 1}, {ID: 2, Z: 3}}
	ex, ey, ez, l, err := bm.frame(nds)
	if err != nil {
		tst.Errorf("frame failed:\n%v", err)
		return
	}
	chk.Float64(tst, "length", 1e-14, l, 3.0)
	chk.Array(tst, "ex", 1e-14, ex, []float64{0, 0, 1})
	// orthonormal right-handed triad
	chk.Float64(tst, "ex.ey", 1e-14, dot3(ex, ey), 0)
	chk.Float64(tst, "ex.ez", 1e-14, dot3(ex, ez), 0)
	chk.Float64(tst, "ey.ez", 1e-14, dot3(ey, ez), 0)
	chk.Array(tst, "ex x ey = ez", 1e-14, cross(ex, ey), ez)
}

func Test_beam03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam03. stiffness is invariant under rigid translation")

	sec := RectSection(0.1, 0.2)
	e, _ := New(msh.B31, 1, []int{1, 2}, sec)
	nds := []*msh.Node{{ID: 1, X: 1, Y: 2, Z: 3}, {ID: 2, X: 2, Y: 3, Z: 5}}
	K, err := e.Stiffness(nds, steel)
	if err != nil {
		tst.Errorf("Stiffness failed:\n%v", err)
		return
	}
	checkSymmetric(tst, "beam K", K, 12)

	// rigid x-translation produces no force
	u := make([]float64, 12)
	u[0], u[6] = 1, 1
	for i := 0; i < 12; i++ {
		f := 0.0
		for j := 0; j < 12; j++ {
			f += K.Get(i, j) * u[j]
		}
		chk.Float64(tst, "f[rigid]", 1e-4, f, 0)
	}
}

func Test_beam04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam04. consistent mass preserves translational mass")

	sec := BeamSection(1e-3, 2e-6, 3e-6, 4e-6)
	e, _ := New(msh.B31, 1, []int{1, 2}, sec)
	nds := []*msh.Node{{ID: 1}, {ID: 2, X: 2}}
	M, err := e.Mass(nds, steel)
	if err != nil {
		tst.Errorf("Mass failed:\n%v", err)
		return
	}
	checkSymmetric(tst, "beam M", M, 12)

	// sum over the axial dofs equals the bar mass (140+70+70+140)/420
	mass := steel.Rho * sec.A * 2.0
	sum := 0.0
	for _, i := range []int{0, 6} {
		for _, j := range []int{0, 6} {
			sum += M.Get(i, j)
		}
	}
	chk.Float64(tst, "axial mass", 1e-8, sum, mass)

	// lateral dofs: (156+54+54+156)/420 = 1 after adding rotation
	// coupling rows cancels; check the plain translational block sum
	sum = 0.0
	for _, i := range []int{1, 7} {
		for _, j := range []int{1, 7} {
			sum += M.Get(i, j)
		}
	}
	chk.Float64(tst, "lateral mass", 1e-8, sum, mass)
}

func Test_section01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("section01. derived section constants")

	c := CircSection(0.1)
	chk.Float64(tst, "A circ", 1e-10, c.A, 0.0078539816339745)
	chk.Float64(tst, "Iyy circ", 1e-12, c.Iyy, 4.9087385212341e-6)
	chk.Float64(tst, "J = 2I", 1e-12, c.J, 2.0*c.Iyy)

	r := RectSection(0.2, 0.1)
	chk.Float64(tst, "A rect", 1e-14, r.A, 0.02)
	chk.Float64(tst, "Iyy rect", 1e-14, r.Iyy, 0.2*0.001/12.0)
	chk.Float64(tst, "Izz rect", 1e-14, r.Izz, 0.1*0.008/12.0)
	if r.J <= 0 || r.J >= r.Iyy+r.Izz {
		tst.Errorf("rect J out of range: %v", r.J)
	}
}
