// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/aecs4u/calculix-sub001/mdl"
	"github.com/aecs4u/calculix-sub001/msh"
	"github.com/aecs4u/calculix-sub001/shp"
)

// Brick is the 8-node trilinear hexahedron (C3D8) with full 2x2x2
// Gauss integration. 3 translational DOFs per node.
type Brick struct {
	id   int
	conn []int
}

// ID returns the element id
func (o *Brick) ID() int { return o.id }

// Type returns C3D8
func (o *Brick) Type() msh.ElemType { return msh.C3D8 }

// Conn returns the connectivity
func (o *Brick) Conn() []int { return o.conn }

// Nnodes returns 8
func (o *Brick) Nnodes() int { return 8 }

// NdofPerNode returns 3
func (o *Brick) NdofPerNode() int { return 3 }

// jacobian3d computes the inverse Jacobian and determinant at one
// integration point. A non-positive determinant signals an inverted
// or collapsed element.
func (o *Brick) jacobian3d(nds []*msh.Node, dNdR [][]float64) (jinv [3][3]float64, detJ float64, err error) {
	var J [3][3]float64
	for i := 0; i < 8; i++ {
		x := []float64{nds[i].X, nds[i].Y, nds[i].Z}
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				J[r][c] += dNdR[i][r] * x[c]
			}
		}
	}
	detJ = J[0][0]*(J[1][1]*J[2][2]-J[1][2]*J[2][1]) -
		J[0][1]*(J[1][0]*J[2][2]-J[1][2]*J[2][0]) +
		J[0][2]*(J[1][0]*J[2][1]-J[1][1]*J[2][0])
	if detJ <= 0 {
		return jinv, 0, chk.Err("brick %d has non-positive Jacobian determinant %g", o.id, detJ)
	}
	jinv[0][0] = (J[1][1]*J[2][2] - J[1][2]*J[2][1]) / detJ
	jinv[0][1] = (J[0][2]*J[2][1] - J[0][1]*J[2][2]) / detJ
	jinv[0][2] = (J[0][1]*J[1][2] - J[0][2]*J[1][1]) / detJ
	jinv[1][0] = (J[1][2]*J[2][0] - J[1][0]*J[2][2]) / detJ
	jinv[1][1] = (J[0][0]*J[2][2] - J[0][2]*J[2][0]) / detJ
	jinv[1][2] = (J[0][2]*J[1][0] - J[0][0]*J[1][2]) / detJ
	jinv[2][0] = (J[1][0]*J[2][1] - J[1][1]*J[2][0]) / detJ
	jinv[2][1] = (J[0][1]*J[2][0] - J[0][0]*J[2][1]) / detJ
	jinv[2][2] = (J[0][0]*J[1][1] - J[0][1]*J[1][0]) / detJ
	return
}

// Stiffness returns the 24x24 stiffness K = sum BtDB detJ w over the
// 2x2x2 Gauss points
func (o *Brick) Stiffness(nds []*msh.Node, m *mdl.Material) (*la.Matrix, error) {
	if !m.IsStructural() {
		return nil, chk.Err("brick %d: material %q has no elastic constants", o.id, m.Name)
	}

	// isotropic 3D constitutive matrix
	E, nu := m.E, m.Nu
	cf := E / ((1.0 + nu) * (1.0 - 2.0*nu))
	diag := (1.0 - nu) * cf
	off := nu * cf
	shear := (1.0 - 2.0*nu) / 2.0 * cf
	var D [6][6]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				D[i][j] = diag
			} else {
				D[i][j] = off
			}
		}
		D[3+i][3+i] = shear
	}

	shape := shp.Get("hex8")
	N, dNdR := shape.Alloc()
	K := la.NewMatrix(24, 24)

	for _, ip := range shp.Points("hex8") {
		shape.Func(N, dNdR, ip.R)
		jinv, detJ, err := o.jacobian3d(nds, dNdR)
		if err != nil {
			return nil, err
		}

		// strain-displacement matrix, Voigt order
		// [exx eyy ezz gxy gyz gzx]
		var B [6][24]float64
		for i := 0; i < 8; i++ {
			dx := jinv[0][0]*dNdR[i][0] + jinv[0][1]*dNdR[i][1] + jinv[0][2]*dNdR[i][2]
			dy := jinv[1][0]*dNdR[i][0] + jinv[1][1]*dNdR[i][1] + jinv[1][2]*dNdR[i][2]
			dz := jinv[2][0]*dNdR[i][0] + jinv[2][1]*dNdR[i][1] + jinv[2][2]*dNdR[i][2]
			c := 3 * i
			B[0][c] = dx
			B[1][c+1] = dy
			B[2][c+2] = dz
			B[3][c] = dy
			B[3][c+1] = dx
			B[4][c+1] = dz
			B[4][c+2] = dy
			B[5][c] = dz
			B[5][c+2] = dx
		}

		w := detJ * ip.W
		for a := 0; a < 24; a++ {
			for b := 0; b < 24; b++ {
				sum := 0.0
				for r := 0; r < 6; r++ {
					if B[r][a] == 0 {
						continue
					}
					for s := 0; s < 6; s++ {
						sum += B[r][a] * D[r][s] * B[s][b]
					}
				}
				if sum != 0 {
					K.Set(a, b, K.Get(a, b)+sum*w)
				}
			}
		}
	}
	return K, nil
}

// Mass returns the 24x24 consistent mass M = sum rho NtN detJ w
func (o *Brick) Mass(nds []*msh.Node, m *mdl.Material) (*la.Matrix, error) {
	if !m.IsDynamic() {
		return nil, chk.Err("brick %d: material %q has no density", o.id, m.Name)
	}
	shape := shp.Get("hex8")
	N, dNdR := shape.Alloc()
	M := la.NewMatrix(24, 24)
	for _, ip := range shp.Points("hex8") {
		shape.Func(N, dNdR, ip.R)
		_, detJ, err := o.jacobian3d(nds, dNdR)
		if err != nil {
			return nil, err
		}
		c := m.Rho * detJ * ip.W
		for i := 0; i < 8; i++ {
			for j := 0; j < 8; j++ {
				v := c * N[i] * N[j]
				for d := 0; d < 3; d++ {
					r, s := 3*i+d, 3*j+d
					M.Set(r, s, M.Get(r, s)+v)
				}
			}
		}
	}
	return M, nil
}
