// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/aecs4u/calculix-sub001/mdl"
	"github.com/aecs4u/calculix-sub001/msh"
)

// Beam is the 2-node spatial Euler-Bernoulli beam (B31) with 6 DOFs
// per node: axial, two bending planes and torsion.
type Beam struct {
	id   int
	conn []int
	sec  *Section
}

// ID returns the element id
func (o *Beam) ID() int { return o.id }

// Type returns B31
func (o *Beam) Type() msh.ElemType { return msh.B31 }

// Conn returns the connectivity
func (o *Beam) Conn() []int { return o.conn }

// Nnodes returns 2
func (o *Beam) Nnodes() int { return 2 }

// NdofPerNode returns 6
func (o *Beam) NdofPerNode() int { return 6 }

// frame computes the local axes and length. The local x axis follows
// the beam; the reference vector used to fix the cross-section
// orientation is the global x axis unless the beam is nearly parallel
// to it, in which case the global y axis is used.
func (o *Beam) frame(nds []*msh.Node) (ex, ey, ez []float64, l float64, err error) {
	d := []float64{nds[1].X - nds[0].X, nds[1].Y - nds[0].Y, nds[1].Z - nds[0].Z}
	l = norm3(d)
	if l < 1e-12 {
		return nil, nil, nil, 0, chk.Err("beam %d has zero length", o.id)
	}
	ex = []float64{d[0] / l, d[1] / l, d[2] / l}
	ref := []float64{1, 0, 0}
	if math.Abs(ex[0]) >= 0.9 {
		ref = []float64{0, 1, 0}
	}
	ez, ok := normalize(cross(ex, ref))
	if !ok {
		return nil, nil, nil, 0, chk.Err("beam %d has degenerate orientation", o.id)
	}
	ey = cross(ez, ex)
	return ex, ey, ez, l, nil
}

// transformation assembles the 12x12 block-diagonal matrix with rows
// equal to the local axes, so that ul = T*ug
func (o *Beam) transformation(ex, ey, ez []float64) *la.Matrix {
	T := la.NewMatrix(12, 12)
	for b := 0; b < 4; b++ {
		r := 3 * b
		for j := 0; j < 3; j++ {
			T.Set(r+0, r+j, ex[j])
			T.Set(r+1, r+j, ey[j])
			T.Set(r+2, r+j, ez[j])
		}
	}
	return T
}

// Stiffness returns the 12x12 global stiffness matrix
func (o *Beam) Stiffness(nds []*msh.Node, m *mdl.Material) (*la.Matrix, error) {
	ex, ey, ez, l, err := o.frame(nds)
	if err != nil {
		return nil, err
	}
	if !m.IsStructural() {
		return nil, chk.Err("beam %d: material %q has no elastic constants", o.id, m.Name)
	}
	if o.sec.A <= 0 || o.sec.Iyy <= 0 || o.sec.Izz <= 0 || o.sec.J <= 0 {
		return nil, chk.Err("beam %d: section constants A, Iyy, Izz and J must be positive", o.id)
	}

	EA := m.E * o.sec.A
	EIz := m.E * o.sec.Izz
	EIy := m.E * o.sec.Iyy
	GJ := m.G() * o.sec.J
	ll := l * l
	lll := ll * l

	Kl := la.NewMatrix(12, 12)

	// axial (local dofs 0, 6)
	Kl.Set(0, 0, EA/l)
	Kl.Set(0, 6, -EA/l)
	Kl.Set(6, 0, -EA/l)
	Kl.Set(6, 6, EA/l)

	// bending in the x-y plane (local dofs 1, 5, 7, 11) about z
	Kl.Set(1, 1, 12.0*EIz/lll)
	Kl.Set(1, 5, 6.0*EIz/ll)
	Kl.Set(1, 7, -12.0*EIz/lll)
	Kl.Set(1, 11, 6.0*EIz/ll)
	Kl.Set(5, 1, 6.0*EIz/ll)
	Kl.Set(5, 5, 4.0*EIz/l)
	Kl.Set(5, 7, -6.0*EIz/ll)
	Kl.Set(5, 11, 2.0*EIz/l)
	Kl.Set(7, 1, -12.0*EIz/lll)
	Kl.Set(7, 5, -6.0*EIz/ll)
	Kl.Set(7, 7, 12.0*EIz/lll)
	Kl.Set(7, 11, -6.0*EIz/ll)
	Kl.Set(11, 1, 6.0*EIz/ll)
	Kl.Set(11, 5, 2.0*EIz/l)
	Kl.Set(11, 7, -6.0*EIz/ll)
	Kl.Set(11, 11, 4.0*EIz/l)

	// bending in the x-z plane (local dofs 2, 4, 8, 10) about y
	Kl.Set(2, 2, 12.0*EIy/lll)
	Kl.Set(2, 4, -6.0*EIy/ll)
	Kl.Set(2, 8, -12.0*EIy/lll)
	Kl.Set(2, 10, -6.0*EIy/ll)
	Kl.Set(4, 2, -6.0*EIy/ll)
	Kl.Set(4, 4, 4.0*EIy/l)
	Kl.Set(4, 8, 6.0*EIy/ll)
	Kl.Set(4, 10, 2.0*EIy/l)
	Kl.Set(8, 2, -12.0*EIy/lll)
	Kl.Set(8, 4, 6.0*EIy/ll)
	Kl.Set(8, 8, 12.0*EIy/lll)
	Kl.Set(8, 10, 6.0*EIy/ll)
	Kl.Set(10, 2, -6.0*EIy/ll)
	Kl.Set(10, 4, 2.0*EIy/l)
	Kl.Set(10, 8, 6.0*EIy/ll)
	Kl.Set(10, 10, 4.0*EIy/l)

	// torsion (local dofs 3, 9)
	Kl.Set(3, 3, GJ/l)
	Kl.Set(3, 9, -GJ/l)
	Kl.Set(9, 3, -GJ/l)
	Kl.Set(9, 9, GJ/l)

	K := la.NewMatrix(12, 12)
	triMulAdd(K, o.transformation(ex, ey, ez), Kl, 12)
	return K, nil
}

// Mass returns the 12x12 consistent mass matrix (translational and
// torsional inertia; rotary bending inertia neglected)
func (o *Beam) Mass(nds []*msh.Node, m *mdl.Material) (*la.Matrix, error) {
	ex, ey, ez, l, err := o.frame(nds)
	if err != nil {
		return nil, err
	}
	if !m.IsDynamic() {
		return nil, chk.Err("beam %d: material %q has no density", o.id, m.Name)
	}

	c := m.Rho * o.sec.A * l / 420.0
	ct := m.Rho * o.sec.J * l // torsional inertia
	ll := l * l

	Ml := la.NewMatrix(12, 12)

	// axial
	Ml.Set(0, 0, 140.0*c)
	Ml.Set(0, 6, 70.0*c)
	Ml.Set(6, 0, 70.0*c)
	Ml.Set(6, 6, 140.0*c)

	// bending x-y (dofs 1, 5, 7, 11)
	Ml.Set(1, 1, 156.0*c)
	Ml.Set(1, 5, 22.0*l*c)
	Ml.Set(1, 7, 54.0*c)
	Ml.Set(1, 11, -13.0*l*c)
	Ml.Set(5, 1, 22.0*l*c)
	Ml.Set(5, 5, 4.0*ll*c)
	Ml.Set(5, 7, 13.0*l*c)
	Ml.Set(5, 11, -3.0*ll*c)
	Ml.Set(7, 1, 54.0*c)
	Ml.Set(7, 5, 13.0*l*c)
	Ml.Set(7, 7, 156.0*c)
	Ml.Set(7, 11, -22.0*l*c)
	Ml.Set(11, 1, -13.0*l*c)
	Ml.Set(11, 5, -3.0*ll*c)
	Ml.Set(11, 7, -22.0*l*c)
	Ml.Set(11, 11, 4.0*ll*c)

	// bending x-z (dofs 2, 4, 8, 10); rotation signs mirrored
	Ml.Set(2, 2, 156.0*c)
	Ml.Set(2, 4, -22.0*l*c)
	Ml.Set(2, 8, 54.0*c)
	Ml.Set(2, 10, 13.0*l*c)
	Ml.Set(4, 2, -22.0*l*c)
	Ml.Set(4, 4, 4.0*ll*c)
	Ml.Set(4, 8, -13.0*l*c)
	Ml.Set(4, 10, -3.0*ll*c)
	Ml.Set(8, 2, 54.0*c)
	Ml.Set(8, 4, -13.0*l*c)
	Ml.Set(8, 8, 156.0*c)
	Ml.Set(8, 10, 22.0*l*c)
	Ml.Set(10, 2, 13.0*l*c)
	Ml.Set(10, 4, -3.0*ll*c)
	Ml.Set(10, 8, 22.0*l*c)
	Ml.Set(10, 10, 4.0*ll*c)

	// torsion (dofs 3, 9)
	Ml.Set(3, 3, ct/3.0)
	Ml.Set(3, 9, ct/6.0)
	Ml.Set(9, 3, ct/6.0)
	Ml.Set(9, 9, ct/3.0)

	M := la.NewMatrix(12, 12)
	triMulAdd(M, o.transformation(ex, ey, ez), Ml, 12)
	return M, nil
}
