// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package msh holds the finite element mesh: nodes, element
// connectivities and the global degree-of-freedom bookkeeping.
package msh

import (
	"sort"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Node is one mesh vertex. Ids are 1-based as in the input deck.
type Node struct {
	ID      int
	X, Y, Z float64
}

// ElemType enumerates the supported element families
type ElemType int

// element types
const (
	T3D2 ElemType = iota // 2-node truss
	T3D3                 // 3-node truss
	C3D8                 // 8-node brick
	C3D20                // 20-node brick
	C3D4                 // 4-node tetrahedron
	C3D10                // 10-node tetrahedron
	C3D6                 // 6-node wedge
	C3D15                // 15-node wedge
	S4                   // 4-node shell
	S8                   // 8-node shell
	S3                   // 3-node shell
	S6                   // 6-node shell
	B31                  // 2-node beam
	B32                  // 3-node beam
	M3D4                 // 4-node membrane
	M3D8                 // 8-node membrane
	M3D3                 // 3-node membrane
	M3D6                 // 6-node membrane
)

// String returns the canonical keyword of the element type
func (o ElemType) String() string {
	switch o {
	case T3D2:
		return "T3D2"
	case T3D3:
		return "T3D3"
	case C3D8:
		return "C3D8"
	case C3D20:
		return "C3D20"
	case C3D4:
		return "C3D4"
	case C3D10:
		return "C3D10"
	case C3D6:
		return "C3D6"
	case C3D15:
		return "C3D15"
	case S4:
		return "S4"
	case S8:
		return "S8"
	case S3:
		return "S3"
	case S6:
		return "S6"
	case B31:
		return "B31"
	case B32:
		return "B32"
	case M3D4:
		return "M3D4"
	case M3D8:
		return "M3D8"
	case M3D3:
		return "M3D3"
	case M3D6:
		return "M3D6"
	}
	return "unknown"
}

// NumNodes returns the number of nodes of the element type
func (o ElemType) NumNodes() int {
	switch o {
	case T3D2, B31:
		return 2
	case T3D3, B32, S3, M3D3:
		return 3
	case C3D4, S4, M3D4:
		return 4
	case C3D6, S6, M3D6:
		return 6
	case C3D8, S8, M3D8:
		return 8
	case C3D10:
		return 10
	case C3D15:
		return 15
	case C3D20:
		return 20
	}
	return 0
}

// NdofPerNode returns the number of degrees of freedom per node.
// Trusses, solids and membranes carry translations only; beams and
// shells add rotations.
func (o ElemType) NdofPerNode() int {
	switch o {
	case S4, S8, S3, S6, B31, B32:
		return 6
	}
	return 3
}

// TypeFromKeyword maps a deck TYPE= string (including reduced and
// incompatible-mode variants) to the element type
func TypeFromKeyword(keyword string) (typ ElemType, ok bool) {
	switch strings.ToUpper(keyword) {
	case "T3D2":
		return T3D2, true
	case "T3D3":
		return T3D3, true
	case "C3D8", "C3D8R", "C3D8I":
		return C3D8, true
	case "C3D20", "C3D20R":
		return C3D20, true
	case "C3D4":
		return C3D4, true
	case "C3D10", "C3D10T":
		return C3D10, true
	case "C3D6":
		return C3D6, true
	case "C3D15":
		return C3D15, true
	case "S4", "S4R":
		return S4, true
	case "S8", "S8R":
		return S8, true
	case "S3", "S3R":
		return S3, true
	case "S6":
		return S6, true
	case "B31", "B31R":
		return B31, true
	case "B32", "B32R":
		return B32, true
	case "M3D4", "M3D4R":
		return M3D4, true
	case "M3D8", "M3D8R":
		return M3D8, true
	case "M3D3":
		return M3D3, true
	case "M3D6":
		return M3D6, true
	}
	return 0, false
}

// Elem is one element: id, type and 1-based node connectivity
type Elem struct {
	ID   int
	Type ElemType
	Conn []int
}

// Check verifies that the connectivity length matches the element type
func (o *Elem) Check() error {
	if len(o.Conn) != o.Type.NumNodes() {
		return chk.Err("element %d of type %s has %d nodes but expects %d",
			o.ID, o.Type, len(o.Conn), o.Type.NumNodes())
	}
	return nil
}

// Mesh holds nodes, elements and derived DOF counts
type Mesh struct {
	Nodes map[int]*Node
	Elems map[int]*Elem
	Ndof  int // total number of DOFs; set by CalcDofs
}

// NewMesh returns an empty mesh
func NewMesh() *Mesh {
	return &Mesh{
		Nodes: make(map[int]*Node),
		Elems: make(map[int]*Elem),
	}
}

// AddNode inserts (or replaces) one node
func (o *Mesh) AddNode(n *Node) {
	o.Nodes[n.ID] = n
}

// AddElem inserts one element after checking its connectivity length
func (o *Mesh) AddElem(e *Elem) error {
	if err := e.Check(); err != nil {
		return err
	}
	o.Elems[e.ID] = e
	return nil
}

// Stride returns the per-node DOF stride: the maximum NdofPerNode over
// all elements. Meshes mixing 3-DOF and 6-DOF families use the larger
// stride for every node so that global indices stay uniform.
func (o *Mesh) Stride() int {
	stride := 3
	for _, e := range o.Elems {
		if n := e.Type.NdofPerNode(); n > stride {
			stride = n
		}
	}
	return stride
}

// MaxNodeID returns the largest node id (0 for an empty mesh)
func (o *Mesh) MaxNodeID() int {
	max := 0
	for id := range o.Nodes {
		if id > max {
			max = id
		}
	}
	return max
}

// CalcDofs computes the total number of DOFs. The global index of
// local DOF d (0-based) at node n (1-based) is (n-1)*stride + d, hence
// the total spans up to the largest node id even if ids have gaps.
func (o *Mesh) CalcDofs() {
	o.Ndof = o.MaxNodeID() * o.Stride()
}

// ElemNodes collects the node structures of one element, in
// connectivity order
func (o *Mesh) ElemNodes(e *Elem) (nodes []*Node, err error) {
	nodes = make([]*Node, len(e.Conn))
	for i, id := range e.Conn {
		n, ok := o.Nodes[id]
		if !ok {
			return nil, chk.Err("element %d references missing node %d", e.ID, id)
		}
		nodes[i] = n
	}
	return
}

// Check verifies that all element connectivities reference existing nodes
func (o *Mesh) Check() error {
	for _, e := range o.Elems {
		for _, id := range e.Conn {
			if _, ok := o.Nodes[id]; !ok {
				return chk.Err("element %d references missing node %d", e.ID, id)
			}
		}
	}
	return nil
}

// SortedElemIDs returns element ids in ascending order, for
// deterministic assembly
func (o *Mesh) SortedElemIDs() []int {
	ids := make([]int, 0, len(o.Elems))
	for id := range o.Elems {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Stats summarises the mesh contents
type Stats struct {
	Nnodes  int
	Nelems  int
	ByType  map[ElemType]int
	Ndof    int
	Stride  int
}

// Statistics computes mesh statistics
func (o *Mesh) Statistics() (s Stats) {
	s.Nnodes = len(o.Nodes)
	s.Nelems = len(o.Elems)
	s.ByType = make(map[ElemType]int)
	for _, e := range o.Elems {
		s.ByType[e.Type]++
	}
	s.Ndof = o.Ndof
	s.Stride = o.Stride()
	return
}

// String returns a one-line summary
func (o Stats) String() string {
	return io.Sf("%d nodes, %d elements, %d dofs (stride %d)", o.Nnodes, o.Nelems, o.Ndof, o.Stride)
}
