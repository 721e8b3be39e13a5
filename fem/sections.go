// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"strings"

	"github.com/aecs4u/calculix-sub001/ele"
	"github.com/aecs4u/calculix-sub001/inp"
	"github.com/aecs4u/calculix-sub001/msh"
)

// Sections maps elements to cross-section data. Elements without an
// explicit entry fall back to the per-type default.
type Sections struct {
	byElem   map[int]*ele.Section
	defaults map[msh.ElemType]*ele.Section
}

// NewSections returns an empty table
func NewSections() *Sections {
	return &Sections{
		byElem:   make(map[int]*ele.Section),
		defaults: make(map[msh.ElemType]*ele.Section),
	}
}

// Assign binds one element to a section
func (o *Sections) Assign(elemID int, s *ele.Section) {
	o.byElem[elemID] = s
}

// SetDefault sets the fallback section of an element type
func (o *Sections) SetDefault(typ msh.ElemType, s *ele.Section) {
	o.defaults[typ] = s
}

// Of returns the section of an element, or nil when neither an
// assignment nor a type default exists (solids need none)
func (o *Sections) Of(elemID int, typ msh.ElemType) *ele.Section {
	if s, ok := o.byElem[elemID]; ok {
		return s
	}
	return o.defaults[typ]
}

// SectionsFromDeck builds the section table from *SOLID SECTION,
// *SHELL SECTION and *BEAM SECTION cards. Element sets are not
// supported, so each card becomes the default for its element family:
// solid sections carry the truss area, shell sections the thickness,
// beam sections the shape dimensions (SECTION=CIRC or RECT).
func SectionsFromDeck(deck *inp.Deck) (*Sections, error) {
	secs := NewSections()

	if card := deck.Find("SOLID SECTION"); card != nil {
		// a data line with an area makes trusses usable
		if len(card.Lines) > 0 {
			f := inp.Fields(card.Lines[0])
			if len(f) > 0 {
				a, err := inp.ParseFloat(f[0], card.LineNo(0))
				if err != nil {
					return nil, err
				}
				secs.SetDefault(msh.T3D2, ele.TrussSection(a))
			}
		}
	}

	if card := deck.Find("SHELL SECTION"); card != nil {
		if len(card.Lines) == 0 {
			return nil, inp.Errf(card.LineStart, "SHELL SECTION needs a thickness line")
		}
		f := inp.Fields(card.Lines[0])
		t, err := inp.ParseFloat(f[0], card.LineNo(0))
		if err != nil {
			return nil, err
		}
		secs.SetDefault(msh.S4, ele.ShellSection(t))
		secs.SetDefault(msh.S8, ele.ShellSection(t))
	}

	if card := deck.Find("BEAM SECTION"); card != nil {
		if len(card.Lines) == 0 {
			return nil, inp.Errf(card.LineStart, "BEAM SECTION needs a dimension line")
		}
		shape, _ := card.Param("SECTION")
		f := inp.Fields(card.Lines[0])
		lnum := card.LineNo(0)
		switch strings.ToUpper(shape) {
		case "CIRC":
			d, err := inp.ParseFloat(f[0], lnum)
			if err != nil {
				return nil, err
			}
			secs.SetDefault(msh.B31, ele.CircSection(2.0*d)) // radius on the data line
		case "RECT", "":
			if len(f) < 2 {
				return nil, inp.Errf(lnum, "RECT beam section needs two dimensions")
			}
			b, err := inp.ParseFloat(f[0], lnum)
			if err != nil {
				return nil, err
			}
			h, err := inp.ParseFloat(f[1], lnum)
			if err != nil {
				return nil, err
			}
			secs.SetDefault(msh.B31, ele.RectSection(b, h))
		default:
			return nil, inp.Errf(card.LineStart, "unsupported beam section shape %q", shape)
		}
	}
	return secs, nil
}
