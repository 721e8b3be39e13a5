// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/aecs4u/calculix-sub001/mdl"
	"github.com/aecs4u/calculix-sub001/msh"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	chk.Verbose = true
}

var steel = &mdl.Material{Name: "STEEL", E: 210e9, Nu: 0.3, Rho: 7850}

func Test_truss01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("truss01. stiffness of bar along x")

	e, err := New(msh.T3D2, 1, []int{1, 2}, TrussSection(1e-4))
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	nds := []*msh.Node{{ID: 1}, {ID: 2, X: 2}}
	K, err := e.Stiffness(nds, steel)
	if err != nil {
		tst.Errorf("Stiffness failed:\n%v", err)
		return
	}
	k := 210e9 * 1e-4 / 2.0
	chk.Float64(tst, "K00", 1e-8, K.Get(0, 0), k)
	chk.Float64(tst, "K03", 1e-8, K.Get(0, 3), -k)
	chk.Float64(tst, "K33", 1e-8, K.Get(3, 3), k)
	chk.Float64(tst, "K11", 1e-12, K.Get(1, 1), 0) // no lateral stiffness
	checkSymmetric(tst, "truss K", K, 6)
}

func Test_truss02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("truss02. stiffness of inclined bar")

	e, _ := New(msh.T3D2, 1, []int{1, 2}, TrussSection(2e-4))
	nds := []*msh.Node{{ID: 1}, {ID: 2, X: 3, Y: 4}}
	K, err := e.Stiffness(nds, steel)
	if err != nil {
		tst.Errorf("Stiffness failed:\n%v", err)
		return
	}
	k := 210e9 * 2e-4 / 5.0
	c, s := 3.0/5.0, 4.0/5.0
	chk.Float64(tst, "K00", 1e-6, K.Get(0, 0), k*c*c)
	chk.Float64(tst, "K01", 1e-6, K.Get(0, 1), k*c*s)
	chk.Float64(tst, "K11", 1e-6, K.Get(1, 1), k*s*s)
	checkSymmetric(tst, "truss K", K, 6)
}

func Test_truss03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("truss03. consistent mass preserves total mass")

	e, _ := New(msh.T3D2, 1, []int{1, 2}, TrussSection(1e-4))
	tr := e.(*Truss)
	nds := []*msh.Node{{ID: 1}, {ID: 2, Z: 2}}
	M, err := e.Mass(nds, steel)
	if err != nil {
		tst.Errorf("Mass failed:\n%v", err)
		return
	}
	total := 0.0
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			total += M.Get(i, j)
		}
	}
	mass := steel.Rho * tr.Area() * tr.Length(nds)
	chk.Float64(tst, "sum(M) = 3*rho*A*L", 1e-8, total, 3.0*mass)
}

func Test_truss04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("truss04. axial strain recovery and zero length")

	e, _ := New(msh.T3D2, 1, []int{1, 2}, TrussSection(1e-4))
	tr := e.(*Truss)
	nds := []*msh.Node{{ID: 1}, {ID: 2, X: 2}}
	eps, err := tr.AxialStrain(nds, []float64{0, 0, 0, 1e-3, 0, 0})
	if err != nil {
		tst.Errorf("AxialStrain failed:\n%v", err)
		return
	}
	chk.Float64(tst, "strain", 1e-15, eps, 5e-4)

	same := []*msh.Node{{ID: 1}, {ID: 2}}
	if _, err := e.Stiffness(same, steel); err == nil {
		tst.Errorf("error expected for zero-length bar")
	}
}

func Test_factory01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("factory01. closed element set")

	if _, err := New(msh.C3D20, 1, make([]int, 20), nil); err == nil {
		tst.Errorf("C3D20 should be unsupported")
		return
	}
	if _, err := New(msh.T3D2, 1, []int{1}, TrussSection(1)); err == nil {
		tst.Errorf("short connectivity should fail")
		return
	}
	e, err := New(msh.B31, 7, []int{1, 2}, CircSection(0.1))
	if err != nil {
		tst.Errorf("New(B31) failed:\n%v", err)
		return
	}
	chk.Int(tst, "id", e.ID(), 7)
	chk.Int(tst, "ndof per node", e.NdofPerNode(), 6)
}

func Test_dofindices01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dofindices01. global dof mapping")

	chk.Ints(tst, "conn {1,2} stride 3", DofIndices([]int{1, 2}, 3, 3),
		[]int{0, 1, 2, 3, 4, 5})
	chk.Ints(tst, "conn {5,10} stride 3", DofIndices([]int{5, 10}, 3, 3),
		[]int{12, 13, 14, 27, 28, 29})
	// 3-dof element inside a 6-dof mesh keeps the larger stride
	chk.Ints(tst, "conn {2} ndof 3 stride 6", DofIndices([]int{2}, 3, 6),
		[]int{6, 7, 8})
}

// checkSymmetric asserts |K[i][j]-K[j][i]| within a relative tolerance
func checkSymmetric(tst *testing.T, msg string, K interface {
	Get(i, j int) float64
}, n int) {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := K.Get(i, j), K.Get(j, i)
			scale := 1.0
			if d := (absf(a) + absf(b)) / 2.0; d > 1 {
				scale = d
			}
			if absf(a-b)/scale > 1e-10 {
				tst.Errorf("%s: not symmetric at (%d,%d): %v vs %v", msg, i, j, a, b)
				return
			}
		}
	}
	if chk.Verbose {
		io.Pf("%s: symmetric (%dx%d)\n", msg, n, n)
	}
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
