// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package num

import (
	"fmt"
)

// BackendError wraps a failure inside a numerical backend
type BackendError struct {
	Op  string // operation that failed, e.g. "solve" or "eigen"
	Msg string
}

// Error returns the message
func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s: %s", e.Op, e.Msg)
}

// Errf creates a new BackendError
func Errf(op, msg string, prm ...interface{}) *BackendError {
	return &BackendError{Op: op, Msg: fmt.Sprintf(msg, prm...)}
}

// LinSystem is the backend-neutral form of K u = F after boundary
// conditions have been applied (penalty terms already included).
type LinSystem struct {
	Ndof        int
	Kt          *Triplets // stiffness, duplicates allowed
	F           []float64
	Constrained []int // constrained dof indices, informational
}

// EigSystem is the backend-neutral generalized eigenproblem
// K phi = lambda M phi restricted to the free dofs.
type EigSystem struct {
	Ndof   int
	Kt, Mt *Triplets
	Free   []int // unconstrained dof indices, ascending
	Nev    int   // number of modes requested; 0 means all
}

// SolveInfo reports how a linear solve went
type SolveInfo struct {
	Solver     string
	Iterations int // 1 for direct solvers
	ResidNorm  float64
}

// Modes holds an eigen solution. Shapes are expanded back to full
// length with zeros at the constrained dofs.
type Modes struct {
	Lambdas []float64 // ascending eigenvalues
	Freqs   []float64 // sqrt(lambda)/(2 pi)
	Shapes  [][]float64
}

// Backend solves the realized systems. Implementations must not
// mutate the inputs.
type Backend interface {
	Name() string
	Solve(sys *LinSystem) (u []float64, info *SolveInfo, err error)
	Eigen(sys *EigSystem) (*Modes, error)
}
