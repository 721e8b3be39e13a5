// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/aecs4u/calculix-sub001/ele"
	"github.com/aecs4u/calculix-sub001/mdl"
	"github.com/aecs4u/calculix-sub001/msh"
	"github.com/aecs4u/calculix-sub001/num"
)

// Penalty is the factor used to enforce prescribed displacements:
// K[d][d] += Penalty and F[d] += Penalty*value
const Penalty = 1e10

// AssemblyError wraps an element-level failure during assembly
type AssemblyError struct {
	Elem int
	Msg  string
}

// Error returns the message naming the element
func (e *AssemblyError) Error() string {
	return io.Sf("element %d: %s", e.Elem, e.Msg)
}

// System is the dense global system after boundary conditions
type System struct {
	Ndof        int
	Stride      int
	K           *la.Matrix
	M           *la.Matrix // nil unless assembled with mass
	F           la.Vector
	Constrained []int // ascending
}

// SparseSystem is the triplet-format global system after boundary
// conditions. Duplicate entries sum on realization.
type SparseSystem struct {
	Ndof        int
	Stride      int
	Kt          *num.Triplets
	Mt          *num.Triplets // nil unless assembled with mass
	F           la.Vector
	Constrained []int // ascending
}

// BuildElements allocates the element library objects for a mesh, in
// ascending id order
func BuildElements(m *msh.Mesh, secs *Sections) (elems []ele.Element, err error) {
	for _, id := range m.SortedElemIDs() {
		me := m.Elems[id]
		e, err := ele.New(me.Type, me.ID, me.Conn, secs.Of(id, me.Type))
		if err != nil {
			return nil, &AssemblyError{Elem: id, Msg: err.Error()}
		}
		elems = append(elems, e)
	}
	return
}

// scatter walks the elements and hands each stiffness (and mass)
// contribution plus the gravity force to the callbacks
func scatter(m *msh.Mesh, mats *mdl.Set, bcs *BoundaryConds, secs *Sections, withMass bool,
	putK, putM func(i, j int, v float64), addF func(i int, v float64)) error {

	stride := m.Stride()
	elems, err := BuildElements(m, secs)
	if err != nil {
		return err
	}
	needMass := withMass || bcs.Gravity != nil

	for _, e := range elems {
		me := m.Elems[e.ID()]
		nds, err := m.ElemNodes(me)
		if err != nil {
			return &AssemblyError{Elem: e.ID(), Msg: err.Error()}
		}
		mat := mats.OfElem(e.ID())
		if mat == nil {
			return &AssemblyError{Elem: e.ID(), Msg: "no material assigned"}
		}
		idx := ele.DofIndices(e.Conn(), e.NdofPerNode(), stride)
		n := len(idx)

		Ke, err := e.Stiffness(nds, mat)
		if err != nil {
			return &AssemblyError{Elem: e.ID(), Msg: err.Error()}
		}
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				if v := Ke.Get(a, b); v != 0 {
					putK(idx[a], idx[b], v)
				}
			}
		}

		if !needMass {
			continue
		}
		Me, err := e.Mass(nds, mat)
		if err != nil {
			return &AssemblyError{Elem: e.ID(), Msg: err.Error()}
		}
		if withMass {
			for a := 0; a < n; a++ {
				for b := 0; b < n; b++ {
					if v := Me.Get(a, b); v != 0 {
						putM(idx[a], idx[b], v)
					}
				}
			}
		}
		if g := bcs.Gravity; g != nil {
			// body force f = Me * a with the acceleration repeated on
			// the translational dofs of every node
			acc := make([]float64, n)
			npn := e.NdofPerNode()
			for i := 0; i < e.Nnodes(); i++ {
				acc[i*npn+0] = g.Gx
				acc[i*npn+1] = g.Gy
				acc[i*npn+2] = g.Gz
			}
			for a := 0; a < n; a++ {
				s := 0.0
				for b := 0; b < n; b++ {
					s += Me.Get(a, b) * acc[b]
				}
				if s != 0 {
					addF(idx[a], s)
				}
			}
		}
	}
	return nil
}

// constrainedList sorts the constrained dof indices
func constrainedList(cons map[int]float64) []int {
	list := make([]int, 0, len(cons))
	for d := range cons {
		list = append(list, d)
	}
	sort.Ints(list)
	return list
}

// AssembleSystem builds the dense global system: scatter-add of the
// element matrices, loads, gravity and penalty boundary conditions
func AssembleSystem(m *msh.Mesh, mats *mdl.Set, bcs *BoundaryConds, secs *Sections, withMass bool) (*System, error) {
	m.CalcDofs()
	sys := &System{
		Ndof:   m.Ndof,
		Stride: m.Stride(),
		K:      la.NewMatrix(m.Ndof, m.Ndof),
		F:      la.NewVector(m.Ndof),
	}
	if withMass {
		sys.M = la.NewMatrix(m.Ndof, m.Ndof)
	}
	putK := func(i, j int, v float64) { sys.K.Set(i, j, sys.K.Get(i, j)+v) }
	putM := func(i, j int, v float64) { sys.M.Set(i, j, sys.M.Get(i, j)+v) }
	addF := func(i int, v float64) { sys.F[i] += v }
	if err := scatter(m, mats, bcs, secs, withMass, putK, putM, addF); err != nil {
		return nil, err
	}
	for d, v := range bcs.NodalLoads(sys.Stride) {
		sys.F[d] += v
	}
	cons := bcs.ConstrainedDofs(sys.Stride)
	for d, v := range cons {
		sys.K.Set(d, d, sys.K.Get(d, d)+Penalty)
		sys.F[d] += Penalty * v
	}
	sys.Constrained = constrainedList(cons)
	return sys, nil
}

// AssembleSparse builds the triplet-format global system with the same
// semantics as AssembleSystem
func AssembleSparse(m *msh.Mesh, mats *mdl.Set, bcs *BoundaryConds, secs *Sections, withMass bool) (*SparseSystem, error) {
	m.CalcDofs()
	nnzGuess := 0
	for _, e := range m.Elems {
		n := len(e.Conn) * e.Type.NdofPerNode()
		nnzGuess += n * n
	}
	sys := &SparseSystem{
		Ndof:   m.Ndof,
		Stride: m.Stride(),
		Kt:     num.NewTriplets(m.Ndof, m.Ndof, nnzGuess),
		F:      la.NewVector(m.Ndof),
	}
	if withMass {
		sys.Mt = num.NewTriplets(m.Ndof, m.Ndof, nnzGuess)
	}
	putK := func(i, j int, v float64) { sys.Kt.Put(i, j, v) }
	putM := func(i, j int, v float64) { sys.Mt.Put(i, j, v) }
	addF := func(i int, v float64) { sys.F[i] += v }
	if err := scatter(m, mats, bcs, secs, withMass, putK, putM, addF); err != nil {
		return nil, err
	}
	for d, v := range bcs.NodalLoads(sys.Stride) {
		sys.F[d] += v
	}
	cons := bcs.ConstrainedDofs(sys.Stride)
	for d, v := range cons {
		sys.Kt.Put(d, d, Penalty)
		sys.F[d] += Penalty * v
	}
	sys.Constrained = constrainedList(cons)
	return sys, nil
}

// Validate checks the assembled dense system: the diagonal must be
// nonzero on every row touched by an element or constraint, and K must
// be symmetric within roundoff
func Validate(sys *System) error {
	n := sys.Ndof
	for i := 0; i < n; i++ {
		empty := true
		for j := 0; j < n; j++ {
			if sys.K.Get(i, j) != 0 {
				empty = false
				break
			}
		}
		if empty {
			continue // node id gap or inactive dof
		}
		if sys.K.Get(i, i) == 0 {
			return chk.Err("zero diagonal at dof %d: system is singular", i)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := sys.K.Get(i, j), sys.K.Get(j, i)
			if math.Abs(a-b) > 1e-6*math.Max(math.Abs(a), 1.0) {
				return chk.Err("stiffness not symmetric at (%d,%d): %g vs %g", i, j, a, b)
			}
		}
	}
	return nil
}

// LinSystem exports the sparse system for a backend, dropping entries
// with |v| <= 1e-30
func (o *SparseSystem) LinSystem() *num.LinSystem {
	rm := num.CompressRows(o.Kt)
	kt := num.NewTriplets(o.Ndof, o.Ndof, rm.Nnz())
	for i := 0; i < o.Ndof; i++ {
		for j := 0; j < o.Ndof; j++ {
			if v := rm.Val(i, j); math.Abs(v) > 1e-30 {
				kt.Put(i, j, v)
			}
		}
	}
	return &num.LinSystem{
		Ndof:        o.Ndof,
		Kt:          kt,
		F:           append([]float64(nil), o.F...),
		Constrained: append([]int(nil), o.Constrained...),
	}
}

// EigSystem exports the generalized eigenproblem. The free dof list is
// every dof minus the constrained ones; restriction to that list also
// removes the penalty diagonal terms.
func (o *SparseSystem) EigSystem(nev int) *num.EigSystem {
	isCons := make(map[int]bool, len(o.Constrained))
	for _, d := range o.Constrained {
		isCons[d] = true
	}
	// only dofs with stiffness support take part
	rm := num.CompressRows(o.Kt)
	var free []int
	for d := 0; d < o.Ndof; d++ {
		if isCons[d] {
			continue
		}
		empty := true
		for j := 0; j < o.Ndof; j++ {
			if rm.Val(d, j) != 0 {
				empty = false
				break
			}
		}
		if !empty {
			free = append(free, d)
		}
	}
	return &num.EigSystem{
		Ndof: o.Ndof,
		Kt:   o.Kt,
		Mt:   o.Mt,
		Free: free,
		Nev:  nev,
	}
}
