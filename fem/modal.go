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

// SolveModal computes the lowest nmodes natural frequencies and mode
// shapes. The constrained dofs are removed from the eigenproblem, so
// the penalty terms never enter; rigid-body modes (lambda near zero)
// are discarded by the backend.
func SolveModal(m *msh.Mesh, mats *mdl.Set, bcs *BoundaryConds, secs *Sections, nmodes int, be num.Backend) (*out.ModalSet, error) {
	sys, err := AssembleSparse(m, mats, bcs, secs, true)
	if err != nil {
		return nil, err
	}
	modes, err := be.Eigen(sys.EigSystem(nmodes))
	if err != nil {
		return nil, err
	}
	return &out.ModalSet{
		Stride:  sys.Stride,
		Lambdas: modes.Lambdas,
		Freqs:   modes.Freqs,
		Shapes:  modes.Shapes,
	}, nil
}
