// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/aecs4u/calculix-sub001/mdl"
	"github.com/aecs4u/calculix-sub001/msh"
	"github.com/aecs4u/calculix-sub001/num"
	"github.com/aecs4u/calculix-sub001/out"
)

// SolveStatic assembles the sparse system and solves K u = F with the
// given backend. Prescribed displacements are enforced by penalty and
// recovered in the solution within the penalty accuracy.
func SolveStatic(m *msh.Mesh, mats *mdl.Set, bcs *BoundaryConds, secs *Sections, be num.Backend) (*out.Results, *num.SolveInfo, error) {
	sys, err := AssembleSparse(m, mats, bcs, secs, false)
	if err != nil {
		return nil, nil, err
	}
	u, info, err := be.Solve(sys.LinSystem())
	if err != nil {
		return nil, nil, err
	}
	res := &out.Results{Ndof: sys.Ndof, Stride: sys.Stride, U: u}
	return res, info, nil
}
