// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ele implements the element library: stiffness and mass
// matrices in global coordinates for the closed set of supported
// element types.
package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/aecs4u/calculix-sub001/mdl"
	"github.com/aecs4u/calculix-sub001/msh"
)

// Element computes element matrices in global coordinates. Stiffness
// and Mass receive the element nodes in connectivity order.
type Element interface {
	ID() int
	Type() msh.ElemType
	Conn() []int
	Nnodes() int
	NdofPerNode() int
	Stiffness(nds []*msh.Node, m *mdl.Material) (*la.Matrix, error)
	Mass(nds []*msh.Node, m *mdl.Material) (*la.Matrix, error)
}

// New allocates an element. The set of supported types is closed;
// anything else returns an error naming the type.
func New(typ msh.ElemType, id int, conn []int, sec *Section) (Element, error) {
	if len(conn) != typ.NumNodes() {
		return nil, chk.Err("element %d of type %s has %d nodes but expects %d",
			id, typ, len(conn), typ.NumNodes())
	}
	switch typ {
	case msh.T3D2:
		return &Truss{id: id, conn: conn, sec: sec}, nil
	case msh.B31:
		return &Beam{id: id, conn: conn, sec: sec}, nil
	case msh.S4:
		return &Shell{id: id, conn: conn, sec: sec, typ: msh.S4, nn: 4, shape: "qua4"}, nil
	case msh.S8:
		return &Shell{id: id, conn: conn, sec: sec, typ: msh.S8, nn: 8, shape: "qua8"}, nil
	case msh.C3D8:
		return &Brick{id: id, conn: conn}, nil
	}
	return nil, chk.Err("element type %s is not supported by the element library", typ)
}

// DofIndices maps a connectivity to global DOF indices. The global
// index of local DOF d (0-based) at node n (1-based) is
// (n-1)*stride + d; stride is the mesh-wide per-node DOF count.
func DofIndices(conn []int, ndofPerNode, stride int) []int {
	indices := make([]int, 0, len(conn)*ndofPerNode)
	for _, n := range conn {
		base := (n - 1) * stride
		for d := 0; d < ndofPerNode; d++ {
			indices = append(indices, base+d)
		}
	}
	return indices
}

// Section holds cross-section data for trusses, beams and shells
type Section struct {
	A         float64 // cross-sectional area
	Iyy       float64 // second moment of area about local y
	Izz       float64 // second moment of area about local z
	J         float64 // torsional constant
	Thickness float64 // shell thickness
}

// TrussSection returns a section with area only
func TrussSection(a float64) *Section {
	return &Section{A: a}
}

// CircSection returns the section of a solid circular bar of diameter d
func CircSection(d float64) *Section {
	i := math.Pi * math.Pow(d, 4) / 64.0
	return &Section{
		A:   math.Pi * d * d / 4.0,
		Iyy: i,
		Izz: i,
		J:   2.0 * i,
	}
}

// RectSection returns the section of a solid rectangle with width b
// (along local y) and height h (along local z). The torsional constant
// uses the thin-member approximation.
func RectSection(b, h float64) *Section {
	long, short := b, h
	if h > b {
		long, short = h, b
	}
	j := long * math.Pow(short, 3) *
		(1.0/3.0 - 0.21*(short/long)*(1.0-math.Pow(short/long, 4)/12.0))
	return &Section{
		A:   b * h,
		Iyy: b * math.Pow(h, 3) / 12.0,
		Izz: h * math.Pow(b, 3) / 12.0,
		J:   j,
	}
}

// BeamSection returns a section from explicit beam constants
func BeamSection(a, iyy, izz, j float64) *Section {
	return &Section{A: a, Iyy: iyy, Izz: izz, J: j}
}

// ShellSection returns a section with thickness only
func ShellSection(t float64) *Section {
	return &Section{Thickness: t}
}

// auxiliary ////////////////////////////////////////////////////////////////

// triMulAdd computes dst += trans(T)*A*T with plain loops. All
// matrices are n by n; a scratch row keeps the cost at O(n^3).
func triMulAdd(dst, T, A *la.Matrix, n int) {
	row := make([]float64, n)
	for i := 0; i < n; i++ {
		// row = column i of trans(T)*A = sum_k T[k][i]*A[k][:]
		for j := 0; j < n; j++ {
			row[j] = 0
		}
		for k := 0; k < n; k++ {
			tki := T.Get(k, i)
			if tki == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				row[j] += tki * A.Get(k, j)
			}
		}
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += row[k] * T.Get(k, j)
			}
			dst.Set(i, j, dst.Get(i, j)+sum)
		}
	}
}

func cross(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func norm3(a []float64) float64 {
	return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}

func normalize(a []float64) ([]float64, bool) {
	n := norm3(a)
	if n < 1e-10 {
		return nil, false
	}
	return []float64{a[0] / n, a[1] / n, a[2] / n}, true
}

func dot3(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
