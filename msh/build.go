// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"strings"

	"github.com/aecs4u/calculix-sub001/inp"
)

// FromDeck builds a mesh from *NODE and *ELEMENT cards. Connectivity
// lines ending with a comma continue on the next line. The DOF count
// is computed before returning.
func FromDeck(deck *inp.Deck) (*Mesh, error) {
	m := NewMesh()
	for i := range deck.Cards {
		card := &deck.Cards[i]
		switch card.Keyword {
		case "NODE":
			if err := m.addNodeCard(card); err != nil {
				return nil, err
			}
		case "ELEMENT":
			if err := m.addElemCard(card); err != nil {
				return nil, err
			}
		}
	}
	if err := m.Check(); err != nil {
		return nil, err
	}
	m.CalcDofs()
	return m, nil
}

func (o *Mesh) addNodeCard(card *inp.Card) error {
	for k, line := range card.Lines {
		lnum := card.LineNo(k)
		fields := inp.Fields(line)
		if len(fields) < 3 {
			return inp.Errf(lnum, "node line needs id and at least two coordinates")
		}
		id, err := inp.ParseInt(fields[0], lnum)
		if err != nil {
			return err
		}
		if id < 1 {
			return inp.Errf(lnum, "node id must be positive; got %d", id)
		}
		coords := make([]float64, 3)
		for i := 1; i < len(fields) && i < 4; i++ {
			v, err := inp.ParseFloat(fields[i], lnum)
			if err != nil {
				return err
			}
			coords[i-1] = v
		}
		o.AddNode(&Node{ID: id, X: coords[0], Y: coords[1], Z: coords[2]})
	}
	return nil
}

func (o *Mesh) addElemCard(card *inp.Card) error {
	keyword, found := card.Param("TYPE")
	if !found {
		return inp.Errf(card.LineStart, "ELEMENT card missing TYPE parameter")
	}
	typ, ok := TypeFromKeyword(keyword)
	if !ok {
		return inp.Errf(card.LineStart, "unknown element type %q", keyword)
	}

	// join continuation lines (trailing comma) before splitting
	var joined []string
	var lnums []int
	for k := 0; k < len(card.Lines); k++ {
		line := card.Lines[k]
		lnum := card.LineNo(k)
		for strings.HasSuffix(strings.TrimSpace(line), ",") && k+1 < len(card.Lines) {
			k++
			line += card.Lines[k]
		}
		joined = append(joined, line)
		lnums = append(lnums, lnum)
	}

	for k, line := range joined {
		lnum := lnums[k]
		fields := inp.Fields(line)
		if len(fields) < 1+typ.NumNodes() {
			return inp.Errf(lnum, "element line needs id and %d nodes; got %d fields",
				typ.NumNodes(), len(fields))
		}
		id, err := inp.ParseInt(fields[0], lnum)
		if err != nil {
			return err
		}
		conn := make([]int, typ.NumNodes())
		for i := range conn {
			conn[i], err = inp.ParseInt(fields[1+i], lnum)
			if err != nil {
				return err
			}
		}
		if err := o.AddElem(&Elem{ID: id, Type: typ, Conn: conn}); err != nil {
			return inp.Errf(lnum, "%v", err)
		}
	}
	return nil
}
