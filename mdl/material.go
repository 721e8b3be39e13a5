// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mdl holds material definitions and the per-element material
// assignment table.
package mdl

import (
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/aecs4u/calculix-sub001/inp"
	"github.com/aecs4u/calculix-sub001/msh"
)

// Material holds isotropic material properties. A zero value means the
// property was not given; IsStructural and IsDynamic check presence.
type Material struct {
	Name  string
	E     float64 // Young's modulus
	Nu    float64 // Poisson's ratio
	Rho   float64 // density
	Alpha float64 // thermal expansion coefficient
	Kcond float64 // thermal conductivity
	Cp    float64 // specific heat
}

// IsStructural tells whether the material can drive a stiffness computation
func (o *Material) IsStructural() bool {
	return o.E > 0
}

// IsDynamic tells whether the material can drive a mass computation
func (o *Material) IsDynamic() bool {
	return o.Rho > 0
}

// G returns the shear modulus E/(2(1+nu))
func (o *Material) G() float64 {
	return o.E / (2.0 * (1.0 + o.Nu))
}

// Bulk returns the bulk modulus E/(3(1-2nu))
func (o *Material) Bulk() float64 {
	return o.E / (3.0 * (1.0 - 2.0*o.Nu))
}

// Set holds named materials and element assignments
type Set struct {
	materials map[string]*Material
	byElem    map[int]string
}

// NewSet returns an empty material set
func NewSet() *Set {
	return &Set{
		materials: make(map[string]*Material),
		byElem:    make(map[int]string),
	}
}

// Add inserts (or replaces) a material
func (o *Set) Add(m *Material) {
	o.materials[m.Name] = m
}

// Get returns a material by name or nil
func (o *Set) Get(name string) *Material {
	return o.materials[name]
}

// Names returns all material names, sorted
func (o *Set) Names() []string {
	names := make([]string, 0, len(o.materials))
	for name := range o.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Assign binds an element to a material name
func (o *Set) Assign(elemID int, name string) {
	o.byElem[elemID] = name
}

// OfElem returns the material assigned to an element or nil
func (o *Set) OfElem(elemID int) *Material {
	name, ok := o.byElem[elemID]
	if !ok {
		return nil
	}
	return o.materials[name]
}

// AssignRemaining assigns the first material (by sorted name) to every
// element of the mesh without an explicit assignment. It is a no-op on
// an empty set.
func (o *Set) AssignRemaining(m *msh.Mesh) {
	names := o.Names()
	if len(names) == 0 {
		return
	}
	for id := range m.Elems {
		if _, ok := o.byElem[id]; !ok {
			o.byElem[id] = names[0]
		}
	}
}

// FromDeck builds a material set from *MATERIAL cards and the property
// cards (*ELASTIC, *DENSITY, *EXPANSION, *CONDUCTIVITY, *SPECIFIC HEAT)
// that follow each of them.
func FromDeck(deck *inp.Deck) (*Set, error) {
	set := NewSet()
	var current *Material
	for i := range deck.Cards {
		card := &deck.Cards[i]
		switch card.Keyword {
		case "MATERIAL":
			name, found := card.Param("NAME")
			if !found || name == "" {
				return nil, inp.Errf(card.LineStart, "MATERIAL card missing NAME parameter")
			}
			current = &Material{Name: name}
			set.Add(current)
		case "ELASTIC":
			if current == nil {
				continue
			}
			vals, err := firstLineFloats(card, 2)
			if err != nil {
				return nil, err
			}
			current.E, current.Nu = vals[0], vals[1]
		case "DENSITY":
			if err := setScalar(card, current, func(m *Material, v float64) { m.Rho = v }); err != nil {
				return nil, err
			}
		case "EXPANSION":
			if err := setScalar(card, current, func(m *Material, v float64) { m.Alpha = v }); err != nil {
				return nil, err
			}
		case "CONDUCTIVITY":
			if err := setScalar(card, current, func(m *Material, v float64) { m.Kcond = v }); err != nil {
				return nil, err
			}
		case "SPECIFIC HEAT":
			if err := setScalar(card, current, func(m *Material, v float64) { m.Cp = v }); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

func firstLineFloats(card *inp.Card, n int) ([]float64, error) {
	if len(card.Lines) == 0 {
		return nil, inp.Errf(card.LineStart, "%s card has no data lines", card.Keyword)
	}
	lnum := card.LineNo(0)
	fields := inp.Fields(card.Lines[0])
	if len(fields) < n {
		return nil, inp.Errf(lnum, "%s data line needs %d values", card.Keyword, n)
	}
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := inp.ParseFloat(fields[i], lnum)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func setScalar(card *inp.Card, current *Material, set func(*Material, float64)) error {
	if current == nil {
		return nil
	}
	vals, err := firstLineFloats(card, 1)
	if err != nil {
		return err
	}
	set(current, vals[0])
	return nil
}

// CheckStructural verifies that every element of the mesh has a
// structural material assigned
func (o *Set) CheckStructural(m *msh.Mesh) error {
	for id := range m.Elems {
		mat := o.OfElem(id)
		if mat == nil {
			return chk.Err("no material assigned to element %d", id)
		}
		if !mat.IsStructural() {
			return chk.Err("material %q of element %d has no elastic constants", mat.Name, id)
		}
	}
	return nil
}
