// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fem ties the model together: boundary conditions, global
// assembly, the linear/nonlinear/dynamic/modal solvers and the
// card-deck pipeline.
package fem

import (
	"strings"

	"github.com/cpmech/gosl/io"

	"github.com/aecs4u/calculix-sub001/inp"
)

// DispBC prescribes a displacement on a 1-based inclusive DOF range of
// one node. Value applies to every DOF in the range.
type DispBC struct {
	Node     int
	FirstDof int
	LastDof  int
	Value    float64
}

// PointLoad is a concentrated force on one nodal DOF (1-based)
type PointLoad struct {
	Node  int
	Dof   int
	Value float64
}

// GravityLoad is a body acceleration applied through the element mass
type GravityLoad struct {
	Gx, Gy, Gz float64
}

// BoundaryConds collects displacement constraints and loads. On
// conflicting constraints for the same DOF the last one wins; loads on
// the same DOF accumulate.
type BoundaryConds struct {
	Disps   []DispBC
	Loads   []PointLoad
	Gravity *GravityLoad
}

// NewBoundaryConds returns an empty container
func NewBoundaryConds() *BoundaryConds {
	return &BoundaryConds{}
}

// AddDisp appends a displacement constraint
func (o *BoundaryConds) AddDisp(node, firstDof, lastDof int, value float64) {
	o.Disps = append(o.Disps, DispBC{Node: node, FirstDof: firstDof, LastDof: lastDof, Value: value})
}

// AddLoad appends a point load
func (o *BoundaryConds) AddLoad(node, dof int, value float64) {
	o.Loads = append(o.Loads, PointLoad{Node: node, Dof: dof, Value: value})
}

// SetGravity sets the body acceleration vector
func (o *BoundaryConds) SetGravity(gx, gy, gz float64) {
	o.Gravity = &GravityLoad{Gx: gx, Gy: gy, Gz: gz}
}

// ConstrainedDofs expands the constraints into global DOF indices with
// the prescribed values. Later entries overwrite earlier ones.
func (o *BoundaryConds) ConstrainedDofs(stride int) map[int]float64 {
	res := make(map[int]float64)
	for _, bc := range o.Disps {
		for d := bc.FirstDof; d <= bc.LastDof; d++ {
			if d < 1 || d > stride {
				continue
			}
			res[(bc.Node-1)*stride+d-1] = bc.Value
		}
	}
	return res
}

// NodalLoads sums the point loads into global DOF indices
func (o *BoundaryConds) NodalLoads(stride int) map[int]float64 {
	res := make(map[int]float64)
	for _, ld := range o.Loads {
		if ld.Dof < 1 || ld.Dof > stride {
			continue
		}
		res[(ld.Node-1)*stride+ld.Dof-1] += ld.Value
	}
	return res
}

// Statistics returns a one-line summary
func (o *BoundaryConds) Statistics() string {
	g := ""
	if o.Gravity != nil {
		g = io.Sf(", gravity (%g,%g,%g)", o.Gravity.Gx, o.Gravity.Gy, o.Gravity.Gz)
	}
	return io.Sf("%d displacement constraints, %d point loads%s", len(o.Disps), len(o.Loads), g)
}

// BCsFromDeck builds boundary conditions from *BOUNDARY, *CLOAD and
// *DLOAD (GRAV) cards.
//
// *BOUNDARY lines: node, first[, last[, value]]
// *CLOAD lines:    node, dof, value
// *DLOAD lines:    set, GRAV, magnitude, nx, ny, nz
func BCsFromDeck(deck *inp.Deck) (*BoundaryConds, error) {
	bcs := NewBoundaryConds()
	for _, card := range deck.FindAll("BOUNDARY") {
		for li, line := range card.Lines {
			lnum := card.LineNo(li)
			f := inp.Fields(line)
			if len(f) < 2 {
				return nil, inp.Errf(lnum, "BOUNDARY line needs at least node and dof")
			}
			node, err := inp.ParseInt(f[0], lnum)
			if err != nil {
				return nil, err
			}
			first, err := inp.ParseInt(f[1], lnum)
			if err != nil {
				return nil, err
			}
			last := first
			if len(f) > 2 {
				if last, err = inp.ParseInt(f[2], lnum); err != nil {
					return nil, err
				}
			}
			value := 0.0
			if len(f) > 3 {
				if value, err = inp.ParseFloat(f[3], lnum); err != nil {
					return nil, err
				}
			}
			bcs.AddDisp(node, first, last, value)
		}
	}
	for _, card := range deck.FindAll("CLOAD") {
		for li, line := range card.Lines {
			lnum := card.LineNo(li)
			f := inp.Fields(line)
			if len(f) < 3 {
				return nil, inp.Errf(lnum, "CLOAD line needs node, dof and value")
			}
			node, err := inp.ParseInt(f[0], lnum)
			if err != nil {
				return nil, err
			}
			dof, err := inp.ParseInt(f[1], lnum)
			if err != nil {
				return nil, err
			}
			value, err := inp.ParseFloat(f[2], lnum)
			if err != nil {
				return nil, err
			}
			bcs.AddLoad(node, dof, value)
		}
	}
	for _, card := range deck.FindAll("DLOAD") {
		for li, line := range card.Lines {
			lnum := card.LineNo(li)
			f := inp.Fields(line)
			if len(f) < 2 || strings.ToUpper(f[1]) != "GRAV" {
				return nil, inp.Errf(lnum, "only GRAV distributed loads are supported")
			}
			if len(f) < 6 {
				return nil, inp.Errf(lnum, "GRAV line needs magnitude and direction")
			}
			mag, err := inp.ParseFloat(f[2], lnum)
			if err != nil {
				return nil, err
			}
			var dir [3]float64
			for k := 0; k < 3; k++ {
				if dir[k], err = inp.ParseFloat(f[3+k], lnum); err != nil {
					return nil, err
				}
			}
			bcs.SetGravity(mag*dir[0], mag*dir[1], mag*dir[2])
		}
	}
	return bcs, nil
}
