// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/aecs4u/calculix-sub001/inp"
	"github.com/aecs4u/calculix-sub001/mdl"
	"github.com/aecs4u/calculix-sub001/msh"
	"github.com/aecs4u/calculix-sub001/num"
	"github.com/aecs4u/calculix-sub001/out"
)

// AnalysisType enumerates the analysis modes a deck can request
type AnalysisType int

// analysis modes
const (
	Static AnalysisType = iota
	NonlinearStatic
	Modal
	Dynamic
	HeatTransfer
	CoupledThermalStatic
	Buckling
)

// String returns the analysis type name
func (o AnalysisType) String() string {
	switch o {
	case Static:
		return "static"
	case NonlinearStatic:
		return "nonlinear static"
	case Modal:
		return "modal"
	case Dynamic:
		return "dynamic"
	case HeatTransfer:
		return "heat transfer"
	case CoupledThermalStatic:
		return "coupled thermal-static"
	case Buckling:
		return "buckling"
	}
	return "unknown"
}

// DetectAnalysis inspects the procedure cards of a deck. Precedence:
// buckling and eigenfrequency cards win over dynamic, dynamic over
// heat transfer, heat transfer over static; a heat-transfer card next
// to a static card means a coupled run. No procedure card means a
// plain static analysis.
func DetectAnalysis(deck *inp.Deck) AnalysisType {
	switch {
	case deck.HasKeyword("BUCKLE"):
		return Buckling
	case deck.HasKeyword("FREQUENCY"):
		// covers FREQUENCY and COMPLEX FREQUENCY
		return Modal
	case deck.HasKeyword("DYNAMIC"):
		return Dynamic
	case deck.HasKeyword("HEAT", "TRANSFER"):
		if deck.HasKeyword("STATIC") {
			return CoupledThermalStatic
		}
		return HeatTransfer
	case deck.HasKeyword("STATIC"):
		if step := deck.Find("STEP"); step != nil && step.Has("NLGEOM") {
			return NonlinearStatic
		}
		return Static
	}
	return Static
}

// Pipeline runs a full analysis from a parsed deck. The result
// structures of the most recent Run stay accessible on the pipeline.
type Pipeline struct {
	Backend num.Backend
	Nmodes  int // default mode count for eigenfrequency runs

	Results *out.Results
	Modal   *out.ModalSet
	History *out.History
}

// NewPipeline returns a pipeline on the native backend
func NewPipeline() *Pipeline {
	return &Pipeline{Backend: num.NewNative(), Nmodes: 10}
}

// Run builds the model from the deck, dispatches to the matching
// solver and reports a summary. The displacement results (or modal
// set, or history) of the last run are kept on the pipeline.
func (o *Pipeline) Run(deck *inp.Deck) (*out.Summary, error) {
	m, err := msh.FromDeck(deck)
	if err != nil {
		return nil, err
	}
	if len(m.Nodes) == 0 {
		return nil, chk.Err("deck defines no nodes")
	}
	if len(m.Elems) == 0 {
		return nil, chk.Err("deck defines no elements")
	}
	mats, err := mdl.FromDeck(deck)
	if err != nil {
		return nil, err
	}
	mats.AssignRemaining(m)
	if err := mats.CheckStructural(m); err != nil {
		return nil, err
	}
	bcs, err := BCsFromDeck(deck)
	if err != nil {
		return nil, err
	}
	secs, err := SectionsFromDeck(deck)
	if err != nil {
		return nil, err
	}
	m.CalcDofs()

	typ := DetectAnalysis(deck)
	summary := &out.Summary{Type: typ.String(), Ndof: m.Ndof}

	switch typ {
	case Static:
		res, info, err := SolveStatic(m, mats, bcs, secs, o.Backend)
		if err != nil {
			return summary, err
		}
		o.Results = res
		summary.OK = true
		summary.Neq = res.Ndof
		summary.Message = io.Sf("max |u| = %g (residual %g)", res.MaxAbs(), info.ResidNorm)

	case NonlinearStatic:
		res, stats, err := SolveNonlinear(m, mats, bcs, secs, DefaultNonlinearConfig())
		if err != nil {
			return summary, err
		}
		o.Results = res
		summary.OK = true
		summary.Neq = res.Ndof
		summary.Message = io.Sf("%s in %d iterations", stats.Status, stats.NumIt)

	case Modal:
		nmodes := o.Nmodes
		if card := deck.Find("FREQUENCY"); card != nil && len(card.Lines) > 0 {
			f := inp.Fields(card.Lines[0])
			if len(f) > 0 {
				if n, err := inp.ParseInt(f[0], card.LineNo(0)); err == nil && n > 0 {
					nmodes = n
				}
			}
		}
		ms, err := SolveModal(m, mats, bcs, secs, nmodes, o.Backend)
		if err != nil {
			return summary, err
		}
		o.Modal = ms
		summary.OK = true
		summary.Neq = m.Ndof - countConstrained(bcs, m.Stride())
		summary.Message = io.Sf("%d modes", ms.Nmodes())

	case Dynamic:
		cfg := AverageAcceleration(1e-3, 100)
		if card := deck.Find("DYNAMIC"); card != nil && len(card.Lines) > 0 {
			f := inp.Fields(card.Lines[0])
			lnum := card.LineNo(0)
			if len(f) >= 2 {
				dt, err1 := inp.ParseFloat(f[0], lnum)
				period, err2 := inp.ParseFloat(f[1], lnum)
				if err1 == nil && err2 == nil && dt > 0 && period > dt {
					cfg.Dt = dt
					cfg.Steps = int(period/dt + 0.5)
				}
			}
		}
		hist, err := SolveDynamic(m, mats, bcs, secs, cfg)
		if err != nil {
			return summary, err
		}
		o.History = hist
		summary.OK = true
		summary.Neq = m.Ndof
		summary.Message = io.Sf("%d time steps", hist.Len()-1)

	case HeatTransfer, CoupledThermalStatic, Buckling:
		return summary, chk.Err("%s analysis is not solvable by this engine", typ)
	}
	return summary, nil
}

func countConstrained(bcs *BoundaryConds, stride int) int {
	return len(bcs.ConstrainedDofs(stride))
}
