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

// Truss is the 2-node spatial truss (T3D2): axial stiffness only,
// 3 translational DOFs per node.
type Truss struct {
	id   int
	conn []int
	sec  *Section
}

// ID returns the element id
func (o *Truss) ID() int { return o.id }

// Type returns T3D2
func (o *Truss) Type() msh.ElemType { return msh.T3D2 }

// Conn returns the connectivity
func (o *Truss) Conn() []int { return o.conn }

// Nnodes returns 2
func (o *Truss) Nnodes() int { return 2 }

// NdofPerNode returns 3
func (o *Truss) NdofPerNode() int { return 3 }

// Axis returns the unit vector along the bar and its length
func (o *Truss) Axis(nds []*msh.Node) (dir []float64, l float64, err error) {
	d := []float64{nds[1].X - nds[0].X, nds[1].Y - nds[0].Y, nds[1].Z - nds[0].Z}
	l = norm3(d)
	if l < 1e-12 {
		return nil, 0, chk.Err("truss %d has zero length", o.id)
	}
	return []float64{d[0] / l, d[1] / l, d[2] / l}, l, nil
}

// Stiffness returns the 6x6 global stiffness K = EA/L [B -B; -B B]
// with B the outer product of the direction cosines
func (o *Truss) Stiffness(nds []*msh.Node, m *mdl.Material) (*la.Matrix, error) {
	dir, l, err := o.Axis(nds)
	if err != nil {
		return nil, err
	}
	if !m.IsStructural() {
		return nil, chk.Err("truss %d: material %q has no elastic constants", o.id, m.Name)
	}
	k := m.E * o.sec.A / l
	K := la.NewMatrix(6, 6)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := k * dir[i] * dir[j]
			K.Set(i, j, v)
			K.Set(i+3, j+3, v)
			K.Set(i, j+3, -v)
			K.Set(i+3, j, -v)
		}
	}
	return K, nil
}

// Mass returns the 6x6 consistent mass M = rho*A*L/6 [2I I; I 2I]
func (o *Truss) Mass(nds []*msh.Node, m *mdl.Material) (*la.Matrix, error) {
	_, l, err := o.Axis(nds)
	if err != nil {
		return nil, err
	}
	if !m.IsDynamic() {
		return nil, chk.Err("truss %d: material %q has no density", o.id, m.Name)
	}
	c := m.Rho * o.sec.A * l / 6.0
	M := la.NewMatrix(6, 6)
	for i := 0; i < 3; i++ {
		M.Set(i, i, 2.0*c)
		M.Set(i+3, i+3, 2.0*c)
		M.Set(i, i+3, c)
		M.Set(i+3, i, c)
	}
	return M, nil
}

// AxialStrain computes the axial strain from the global element
// displacement vector ue (6 entries, node 0 then node 1)
func (o *Truss) AxialStrain(nds []*msh.Node, ue []float64) (float64, error) {
	dir, l, err := o.Axis(nds)
	if err != nil {
		return 0, err
	}
	du := 0.0
	for i := 0; i < 3; i++ {
		du += dir[i] * (ue[3+i] - ue[i])
	}
	return du / l, nil
}

// Length returns the bar length
func (o *Truss) Length(nds []*msh.Node) float64 {
	dx := nds[1].X - nds[0].X
	dy := nds[1].Y - nds[0].Y
	dz := nds[1].Z - nds[0].Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Area returns the cross-sectional area
func (o *Truss) Area() float64 { return o.sec.A }
