// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/aecs4u/calculix-sub001/mdl"
	"github.com/aecs4u/calculix-sub001/msh"
	"github.com/aecs4u/calculix-sub001/num"
	"github.com/aecs4u/calculix-sub001/out"
)

func Test_static01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("static01. axial bar matches u = FL/EA")

	m, mats, bcs, secs := barModel(210000, 1000)
	res, info, err := SolveStatic(m, mats, bcs, secs, num.NewNative())
	if err != nil {
		tst.Errorf("SolveStatic failed:\n%v", err)
		return
	}
	correct := 1000.0 * 1.0 / (0.001 * 210000.0) // 4.7619e-3
	if math.Abs(res.U[3]-correct)/correct > 1e-6 {
		tst.Errorf("tip displacement %v, want %v", res.U[3], correct)
		return
	}
	chk.Float64(tst, "u known", 1e-9, res.U[3], 4.7619047619e-3)
	chk.String(tst, info.Solver, "gonum")

	// axial recovery: N = F, sigma = F/A
	elems, err := BuildElements(m, secs)
	if err != nil {
		tst.Errorf("BuildElements failed:\n%v", err)
		return
	}
	ax, err := out.RecoverAxial(res, m, mats, elems)
	if err != nil {
		tst.Errorf("RecoverAxial failed:\n%v", err)
		return
	}
	chk.Float64(tst, "axial force", 1e-3, ax[0].Force, 1000)
	chk.Float64(tst, "axial stress", 1e-6, ax[0].Stress, 1000.0/0.001)
}

func Test_static02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("static02. penalty recovers prescribed values approximately")

	m, mats, bcs, secs := barModel(210000, 0)
	bcs.AddDisp(2, 1, 1, 1e-3) // pull the tip to a prescribed position
	res, _, err := SolveStatic(m, mats, bcs, secs, num.NewNative())
	if err != nil {
		tst.Errorf("SolveStatic failed:\n%v", err)
		return
	}
	relerr := math.Abs(res.U[3]-1e-3) / 1e-3
	if relerr > 1e-6 {
		tst.Errorf("penalty error %v too large", relerr)
		return
	}
	if res.U[3] == 1e-3 {
		tst.Errorf("penalty solution should not be exact")
	}
}

func Test_static03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("static03. superposition: 5x load gives 5x displacement")

	m1, mats1, bcs1, secs1 := barModel(210000, 100)
	r1, _, err := SolveStatic(m1, mats1, bcs1, secs1, num.NewNative())
	if err != nil {
		tst.Errorf("first solve failed:\n%v", err)
		return
	}
	m5, mats5, bcs5, secs5 := barModel(210000, 500)
	r5, _, err := SolveStatic(m5, mats5, bcs5, secs5, num.NewNative())
	if err != nil {
		tst.Errorf("second solve failed:\n%v", err)
		return
	}
	chk.Float64(tst, "ratio", 0.01, r5.U[3]/r1.U[3], 5.0)
}

func Test_static04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("static04. stiffness scaling: E ratio 3 gives u ratio 3")

	mh, matsh, bcsh, secsh := barModel(210000, 1000)
	rh, _, err := SolveStatic(mh, matsh, bcsh, secsh, num.NewNative())
	if err != nil {
		tst.Errorf("stiff solve failed:\n%v", err)
		return
	}
	ms, matss, bcss, secss := barModel(70000, 1000)
	rs, _, err := SolveStatic(ms, matss, bcss, secss, num.NewNative())
	if err != nil {
		tst.Errorf("soft solve failed:\n%v", err)
		return
	}
	chk.Float64(tst, "ratio", 0.01, rs.U[3]/rh.U[3], 3.0)
}

func Test_static05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("static05. dense and sparse paths solve identically")

	m, mats, bcs, secs := barModel(210000, 1000)
	dense, err := AssembleSystem(m, mats, bcs, secs, false)
	if err != nil {
		tst.Errorf("AssembleSystem failed:\n%v", err)
		return
	}
	// realize the dense system as triplets for the same backend
	kt := num.NewTriplets(dense.Ndof, dense.Ndof, dense.Ndof*dense.Ndof)
	for i := 0; i < dense.Ndof; i++ {
		for j := 0; j < dense.Ndof; j++ {
			if v := dense.K.Get(i, j); v != 0 {
				kt.Put(i, j, v)
			}
		}
	}
	be := num.NewNative()
	ud, _, err := be.Solve(&num.LinSystem{Ndof: dense.Ndof, Kt: kt, F: dense.F})
	if err != nil {
		tst.Errorf("dense solve failed:\n%v", err)
		return
	}
	res, _, err := SolveStatic(m, mats, bcs, secs, be)
	if err != nil {
		tst.Errorf("sparse solve failed:\n%v", err)
		return
	}
	chk.Array(tst, "dense vs sparse", 1e-12, res.U, ud)
}

func Test_static06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("static06. repeated solve of an unchanged model is identical")

	m, mats, bcs, secs := barModel(210000, 1000)
	be := num.NewNative()
	r1, _, err := SolveStatic(m, mats, bcs, secs, be)
	if err != nil {
		tst.Errorf("first solve failed:\n%v", err)
		return
	}
	r2, _, err := SolveStatic(m, mats, bcs, secs, be)
	if err != nil {
		tst.Errorf("second solve failed:\n%v", err)
		return
	}
	for i := range r1.U {
		if r1.U[i] != r2.U[i] {
			tst.Errorf("solution differs at dof %d", i)
			return
		}
	}
}

func Test_static07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("static07. brick under prescribed compression")

	m, mats, bcs, secs := brickModel()
	res, _, err := SolveStatic(m, mats, bcs, secs, num.NewNative())
	if err != nil {
		tst.Errorf("SolveStatic failed:\n%v", err)
		return
	}
	// every top node follows the prescribed settlement
	for _, n := range []int{5, 6, 7, 8} {
		d := res.Disp(n)
		chk.Float64(tst, "uz top", 1e-6, d[2], -1e-3)
	}
}

// brickModel builds a unit C3D8 cube: bottom face fixed, top face
// pressed down by a prescribed displacement
func brickModel() (*msh.Mesh, *mdl.Set, *BoundaryConds, *Sections) {
	m := msh.NewMesh()
	coords := [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	for i, c := range coords {
		m.AddNode(&msh.Node{ID: i + 1, X: c[0], Y: c[1], Z: c[2]})
	}
	m.AddElem(&msh.Elem{ID: 1, Type: msh.C3D8, Conn: []int{1, 2, 3, 4, 5, 6, 7, 8}})

	mats := mdl.NewSet()
	mats.Add(&mdl.Material{Name: "MAT", E: 210000, Nu: 0.3, Rho: 7.85e-9})
	mats.Assign(1, "MAT")

	bcs := NewBoundaryConds()
	for n := 1; n <= 4; n++ {
		bcs.AddDisp(n, 1, 3, 0)
	}
	for n := 5; n <= 8; n++ {
		bcs.AddDisp(n, 3, 3, -1e-3)
	}
	return m, mats, bcs, NewSections()
}
