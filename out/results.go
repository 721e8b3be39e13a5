// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package out holds solution results: nodal displacement accessors,
// modal sets, transient histories and run summaries.
package out

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/aecs4u/calculix-sub001/ele"
	"github.com/aecs4u/calculix-sub001/mdl"
	"github.com/aecs4u/calculix-sub001/msh"
)

// Results holds one global displacement solution. U is indexed by
// global DOF: (node-1)*Stride + dof.
type Results struct {
	Ndof   int
	Stride int
	U      la.Vector
}

// NewResults allocates a zeroed solution
func NewResults(ndof, stride int) *Results {
	return &Results{Ndof: ndof, Stride: stride, U: la.NewVector(ndof)}
}

// Disp returns the DOF values of one node (1-based id)
func (o *Results) Disp(node int) []float64 {
	d := make([]float64, o.Stride)
	base := (node - 1) * o.Stride
	for i := 0; i < o.Stride; i++ {
		d[i] = o.U[base+i]
	}
	return d
}

// MaxAbs returns the largest absolute displacement component
func (o *Results) MaxAbs() (max float64) {
	for _, v := range o.U {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	return
}

// ModalSet holds natural frequencies and mode shapes, ascending by
// frequency. Shapes are full-length with zeros at constrained DOFs.
type ModalSet struct {
	Stride  int
	Lambdas []float64
	Freqs   []float64 // Hz
	Shapes  [][]float64
}

// Nmodes returns the number of retained modes
func (o *ModalSet) Nmodes() int { return len(o.Freqs) }

// Shape returns mode k as a Results view for nodal access
func (o *ModalSet) Shape(k int) *Results {
	return &Results{Ndof: len(o.Shapes[k]), Stride: o.Stride, U: o.Shapes[k]}
}

// History holds a transient solution: the time grid and the
// displacement, velocity and acceleration vectors per step.
type History struct {
	Stride int
	Times  []float64
	U      [][]float64
	V      [][]float64
	A      [][]float64
}

// AddStep appends one time station, copying the state vectors
func (o *History) AddStep(t float64, u, v, a []float64) {
	o.Times = append(o.Times, t)
	o.U = append(o.U, append([]float64(nil), u...))
	o.V = append(o.V, append([]float64(nil), v...))
	o.A = append(o.A, append([]float64(nil), a...))
}

// Len returns the number of stored time stations
func (o *History) Len() int { return len(o.Times) }

// Last returns the final displacement state as Results
func (o *History) Last() *Results {
	u := o.U[len(o.U)-1]
	return &Results{Ndof: len(u), Stride: o.Stride, U: u}
}

// Summary reports the outcome of a pipeline run
type Summary struct {
	OK      bool
	Type    string // analysis type name
	Ndof    int
	Neq     int // equations actually solved
	Message string
}

// String returns a one-line report
func (o *Summary) String() string {
	status := "ok"
	if !o.OK {
		status = "failed"
	}
	return io.Sf("%s analysis (%d dofs, %d equations): %s %s", o.Type, o.Ndof, o.Neq, status, o.Message)
}

// AxialResult holds recovered axial quantities of one truss element
type AxialResult struct {
	Elem   int
	Strain float64
	Force  float64
	Stress float64
}

// RecoverAxial computes axial strain, force and stress for every truss
// element, from the global displacements
func RecoverAxial(res *Results, m *msh.Mesh, mats *mdl.Set, elems []ele.Element) (out []AxialResult, err error) {
	for _, e := range elems {
		tr, ok := e.(*ele.Truss)
		if !ok {
			continue
		}
		mat := mats.OfElem(e.ID())
		if mat == nil {
			return nil, chk.Err("no material assigned to element %d", e.ID())
		}
		me, ok := m.Elems[e.ID()]
		if !ok {
			return nil, chk.Err("element %d is not part of the mesh", e.ID())
		}
		nds, err := m.ElemNodes(me)
		if err != nil {
			return nil, err
		}
		ue := make([]float64, 6)
		for i, n := range e.Conn() {
			base := (n - 1) * res.Stride
			for d := 0; d < 3; d++ {
				ue[3*i+d] = res.U[base+d]
			}
		}
		eps, err := tr.AxialStrain(nds, ue)
		if err != nil {
			return nil, err
		}
		out = append(out, AxialResult{
			Elem:   e.ID(),
			Strain: eps,
			Force:  mat.E * tr.Area() * eps,
			Stress: mat.E * eps,
		})
	}
	return
}
