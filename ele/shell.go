// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/aecs4u/calculix-sub001/mdl"
	"github.com/aecs4u/calculix-sub001/msh"
	"github.com/aecs4u/calculix-sub001/shp"
)

// Shell is the flat quadrilateral shell: plane-stress membrane plus
// Mindlin-Reissner bending plus a small drilling stiffness about the
// surface normal. 6 DOFs per node. Two geometries share the
// formulation: the 4-node S4 on the bilinear family with 2x2
// integration and the 8-node serendipity S8 with the 3x3 rule.
type Shell struct {
	id    int
	conn  []int
	sec   *Section
	typ   msh.ElemType
	nn    int    // 4 or 8 nodes
	shape string // qua4 or qua8
}

// ID returns the element id
func (o *Shell) ID() int { return o.id }

// Type returns S4 or S8
func (o *Shell) Type() msh.ElemType { return o.typ }

// Conn returns the connectivity
func (o *Shell) Conn() []int { return o.conn }

// Nnodes returns the number of nodes
func (o *Shell) Nnodes() int { return o.nn }

// NdofPerNode returns 6
func (o *Shell) NdofPerNode() int { return 6 }

// frame computes the local axes: x from node 0 to node 1, z along the
// surface normal (cross product of the corner diagonals), y = z cross
// x. Corners come first in the connectivity, so the frame is the same
// for S4 and S8. xy holds all node coordinates projected onto the
// local plane.
func (o *Shell) frame(nds []*msh.Node) (ex, ey, ez []float64, xy [][]float64, err error) {
	p := make([][]float64, o.nn)
	for i, n := range nds {
		p[i] = []float64{n.X, n.Y, n.Z}
	}
	ex, ok := normalize([]float64{p[1][0] - p[0][0], p[1][1] - p[0][1], p[1][2] - p[0][2]})
	if !ok {
		return nil, nil, nil, nil, chk.Err("shell %d: nodes 0 and 1 coincide", o.id)
	}
	d02 := []float64{p[2][0] - p[0][0], p[2][1] - p[0][1], p[2][2] - p[0][2]}
	d13 := []float64{p[3][0] - p[1][0], p[3][1] - p[1][1], p[3][2] - p[1][2]}
	ez, ok = normalize(cross(d02, d13))
	if !ok {
		return nil, nil, nil, nil, chk.Err("shell %d: degenerate surface normal", o.id)
	}
	ey, ok = normalize(cross(ez, ex))
	if !ok {
		return nil, nil, nil, nil, chk.Err("shell %d: local axes are parallel", o.id)
	}
	xy = make([][]float64, o.nn)
	for i := range p {
		d := []float64{p[i][0] - p[0][0], p[i][1] - p[0][1], p[i][2] - p[0][2]}
		xy[i] = []float64{dot3(ex, d), dot3(ey, d)}
	}
	return
}

// jacobian2d computes the inverse Jacobian and determinant of the
// projected quadrilateral at one integration point
func (o *Shell) jacobian2d(xy [][]float64, dNdR [][]float64) (jinv [2][2]float64, detJ float64, err error) {
	var J [2][2]float64
	for i := 0; i < o.nn; i++ {
		J[0][0] += dNdR[i][0] * xy[i][0]
		J[0][1] += dNdR[i][0] * xy[i][1]
		J[1][0] += dNdR[i][1] * xy[i][0]
		J[1][1] += dNdR[i][1] * xy[i][1]
	}
	detJ = J[0][0]*J[1][1] - J[0][1]*J[1][0]
	if math.Abs(detJ) < 1e-10 {
		return jinv, 0, chk.Err("shell %d has singular Jacobian", o.id)
	}
	jinv[0][0] = J[1][1] / detJ
	jinv[0][1] = -J[0][1] / detJ
	jinv[1][0] = -J[1][0] / detJ
	jinv[1][1] = J[0][0] / detJ
	return
}

// transformation builds the block-diagonal matrix with rows equal to
// the local axes, repeated for translations and rotations
func (o *Shell) transformation(ex, ey, ez []float64) *la.Matrix {
	ndof := 6 * o.nn
	T := la.NewMatrix(ndof, ndof)
	for b := 0; b < 2*o.nn; b++ {
		r := 3 * b
		for j := 0; j < 3; j++ {
			T.Set(r+0, r+j, ex[j])
			T.Set(r+1, r+j, ey[j])
			T.Set(r+2, r+j, ez[j])
		}
	}
	return T
}

// Stiffness returns the global stiffness matrix (24x24 for S4, 48x48
// for S8)
func (o *Shell) Stiffness(nds []*msh.Node, m *mdl.Material) (*la.Matrix, error) {
	ex, ey, ez, xy, err := o.frame(nds)
	if err != nil {
		return nil, err
	}
	if !m.IsStructural() {
		return nil, chk.Err("shell %d: material %q has no elastic constants", o.id, m.Name)
	}
	t := o.sec.Thickness
	if t <= 0 {
		return nil, chk.Err("shell %d: thickness must be positive", o.id)
	}

	E, nu := m.E, m.Nu
	nn := o.nn
	shape := shp.Get(o.shape)
	N, dNdR := shape.Alloc()
	pts := shp.Points(o.shape)

	// plane-stress matrix (membrane) and its t^3/12 scaling (bending)
	pf := E / (1.0 - nu*nu)
	Dm := [3][3]float64{
		{pf, pf * nu, 0},
		{pf * nu, pf, 0},
		{0, 0, pf * (1.0 - nu) / 2.0},
	}
	bf := E * t * t * t / (12.0 * (1.0 - nu*nu))
	Db := [3][3]float64{
		{bf, bf * nu, 0},
		{bf * nu, bf, 0},
		{0, 0, bf * (1.0 - nu) / 2.0},
	}
	ds := 5.0 / 6.0 * m.G() * t // shear correction factor 5/6

	Km := utl.Alloc(2*nn, 2*nn)
	Kb := utl.Alloc(3*nn, 3*nn)
	Kd := utl.Alloc(nn, nn)
	Bm := utl.Alloc(3, 2*nn)
	Bb := utl.Alloc(3, 3*nn)
	Bs := utl.Alloc(2, 3*nn)
	dNdx := make([]float64, nn)
	dNdy := make([]float64, nn)
	Bd := make([]float64, nn)
	area := 0.0

	for _, ip := range pts {
		shape.Func(N, dNdR, ip.R)
		jinv, detJ, err := o.jacobian2d(xy, dNdR)
		if err != nil {
			return nil, err
		}
		cf := detJ * ip.W
		area += cf

		for i := 0; i < nn; i++ {
			dNdx[i] = jinv[0][0]*dNdR[i][0] + jinv[0][1]*dNdR[i][1]
			dNdy[i] = jinv[1][0]*dNdR[i][0] + jinv[1][1]*dNdR[i][1]
		}

		// membrane: B (3 x 2nn) on [ux uy] per node
		for i := 0; i < nn; i++ {
			Bm[0][2*i] = dNdx[i]
			Bm[1][2*i+1] = dNdy[i]
			Bm[2][2*i] = dNdy[i]
			Bm[2][2*i+1] = dNdx[i]
		}
		for a := 0; a < 2*nn; a++ {
			for b := 0; b < 2*nn; b++ {
				sum := 0.0
				for r := 0; r < 3; r++ {
					for s := 0; s < 3; s++ {
						sum += Bm[r][a] * Dm[r][s] * Bm[s][b]
					}
				}
				Km[a][b] += sum * cf * t
			}
		}

		// bending: curvatures from rotations on [w tx ty] per node
		for i := 0; i < nn; i++ {
			Bb[0][3*i+2] = dNdx[i]  // kxx from ty
			Bb[1][3*i+1] = -dNdy[i] // kyy from tx
			Bb[2][3*i+1] = -dNdx[i] // kxy from tx
			Bb[2][3*i+2] = dNdy[i]  // kxy from ty
		}
		// transverse shear: gxz = dw/dx - ty, gyz = dw/dy + tx
		for i := 0; i < nn; i++ {
			Bs[0][3*i] = dNdx[i]
			Bs[0][3*i+2] = -N[i]
			Bs[1][3*i] = dNdy[i]
			Bs[1][3*i+1] = N[i]
		}
		for a := 0; a < 3*nn; a++ {
			for b := 0; b < 3*nn; b++ {
				sum := 0.0
				for r := 0; r < 3; r++ {
					for s := 0; s < 3; s++ {
						sum += Bb[r][a] * Db[r][s] * Bb[s][b]
					}
				}
				for r := 0; r < 2; r++ {
					sum += Bs[r][a] * ds * Bs[r][b]
				}
				Kb[a][b] += sum * cf
			}
		}

		// drilling strain approximated by the natural derivative sums
		for i := 0; i < nn; i++ {
			Bd[i] = dNdR[i][0] + dNdR[i][1]
		}
		for a := 0; a < nn; a++ {
			for b := 0; b < nn; b++ {
				Kd[a][b] += Bd[a] * Bd[b] * cf
			}
		}
	}

	// drilling magnitude: 1% of the bending rigidity times the area
	alpha := 0.01 * bf * area
	for a := 0; a < nn; a++ {
		for b := 0; b < nn; b++ {
			Kd[a][b] *= alpha
		}
	}

	// interleave into the local matrix: per-node [ux uy uz tx ty tz]
	ndof := 6 * nn
	Kl := la.NewMatrix(ndof, ndof)
	for i := 0; i < nn; i++ {
		for j := 0; j < nn; j++ {
			for a := 0; a < 2; a++ {
				for b := 0; b < 2; b++ {
					Kl.Set(6*i+a, 6*j+b, Km[2*i+a][2*j+b])
				}
			}
			for a := 0; a < 3; a++ {
				for b := 0; b < 3; b++ {
					Kl.Set(6*i+2+a, 6*j+2+b, Kb[3*i+a][3*j+b])
				}
			}
			Kl.Set(6*i+5, 6*j+5, Kd[i][j])
		}
	}

	K := la.NewMatrix(ndof, ndof)
	triMulAdd(K, o.transformation(ex, ey, ez), Kl, ndof)
	return K, nil
}

// Mass returns the consistent mass matrix: rho*t on the translations
// and rho*t^3/12 on the rotations
func (o *Shell) Mass(nds []*msh.Node, m *mdl.Material) (*la.Matrix, error) {
	ex, ey, ez, xy, err := o.frame(nds)
	if err != nil {
		return nil, err
	}
	if !m.IsDynamic() {
		return nil, chk.Err("shell %d: material %q has no density", o.id, m.Name)
	}
	t := o.sec.Thickness

	nn := o.nn
	shape := shp.Get(o.shape)
	N, dNdR := shape.Alloc()

	ndof := 6 * nn
	Ml := la.NewMatrix(ndof, ndof)
	for _, ip := range shp.Points(o.shape) {
		shape.Func(N, dNdR, ip.R)
		_, detJ, err := o.jacobian2d(xy, dNdR)
		if err != nil {
			return nil, err
		}
		ct := m.Rho * t * detJ * ip.W
		cr := m.Rho * t * t * t / 12.0 * detJ * ip.W
		for i := 0; i < nn; i++ {
			for j := 0; j < nn; j++ {
				nij := N[i] * N[j]
				for d := 0; d < 3; d++ {
					r, c := 6*i+d, 6*j+d
					Ml.Set(r, c, Ml.Get(r, c)+ct*nij)
					r, c = 6*i+3+d, 6*j+3+d
					Ml.Set(r, c, Ml.Get(r, c)+cr*nij)
				}
			}
		}
	}

	M := la.NewMatrix(ndof, ndof)
	triMulAdd(M, o.transformation(ex, ey, ez), Ml, ndof)
	return M, nil
}
