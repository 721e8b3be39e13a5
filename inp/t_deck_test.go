// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	chk.Verbose = true
}

func Test_deck01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("deck01. basic cards and data lines")

	src := `
** comment
*HEADING
simple model
*NODE, NSET=NALL
1, 0, 0, 0
2, 1, 0, 0
*ELEMENT, TYPE=C3D8, ELSET=EALL
1, 1,2,3,4,5,6,7,8
`
	deck, err := ParseDeck(src)
	if err != nil {
		tst.Errorf("ParseDeck failed:\n%v", err)
		return
	}
	if len(deck.Cards) != 3 {
		tst.Errorf("wrong number of cards: %d", len(deck.Cards))
		return
	}
	chk.String(tst, deck.Cards[1].Keyword, "NODE")
	chk.Int(tst, "node data lines", len(deck.Cards[1].Lines), 2)
	chk.String(tst, deck.Cards[2].Keyword, "ELEMENT")

	typ, found := deck.Cards[2].Param("type")
	if !found {
		tst.Errorf("TYPE parameter not found")
		return
	}
	chk.String(tst, typ, "C3D8")
	if verb := chk.Verbose; verb {
		io.Pf("cards = %v\n", deck.Cards)
	}
}

func Test_deck02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("deck02. header continuation and flags")

	src := `
*STEP, INC=100
, NLGEOM
*STATIC
1., 1.
`
	deck, err := ParseDeck(src)
	if err != nil {
		tst.Errorf("ParseDeck failed:\n%v", err)
		return
	}
	chk.Int(tst, "ncards", len(deck.Cards), 2)
	chk.String(tst, deck.Cards[0].Keyword, "STEP")
	if !deck.Cards[0].Has("NLGEOM") {
		tst.Errorf("NLGEOM flag not found")
	}
	inc, _ := deck.Cards[0].Param("INC")
	chk.String(tst, inc, "100")
}

func Test_deck03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("deck03. orphan data line fails with line number")

	_, err := ParseDeck("1,2,3\n*NODE\n1,0,0,0\n")
	if err == nil {
		tst.Errorf("error expected for orphan data line")
		return
	}
	var berr *BuildError
	if !errors.As(err, &berr) {
		tst.Errorf("BuildError expected; got %T", err)
		return
	}
	chk.Int(tst, "error line", berr.Line, 1)
}

func Test_deck05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("deck05. data line numbers skip blanks and comments")

	src := `*NODE
1, 0, 0, 0

** interior comment
2, 1, 0, 0
3, 2, 0, 0
`
	deck, err := ParseDeck(src)
	if err != nil {
		tst.Errorf("ParseDeck failed:\n%v", err)
		return
	}
	card := deck.Cards[0]
	chk.Int(tst, "ndata", len(card.Lines), 3)
	chk.Ints(tst, "line numbers", card.LineNos, []int{2, 5, 6})
	chk.Int(tst, "LineNo(2)", card.LineNo(2), 6)
	chk.Int(tst, "LineNo out of range", card.LineNo(3), card.LineStart+4)
}

func Test_deck04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("deck04. keyword search")

	src := `
*NODE
1, 0, 0, 0
*STEP
*STEADY STATE DYNAMICS
`
	deck, err := ParseDeck(src)
	if err != nil {
		tst.Errorf("ParseDeck failed:\n%v", err)
		return
	}
	if !deck.HasKeyword("STEADY", "STATE") {
		tst.Errorf("HasKeyword(STEADY, STATE) should be true")
	}
	if deck.HasKeyword("FREQUENCY") {
		tst.Errorf("HasKeyword(FREQUENCY) should be false")
	}
	if deck.Find("node") == nil {
		tst.Errorf("Find should be case-insensitive")
	}
}
