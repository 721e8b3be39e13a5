// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inp implements the card-deck input format. A deck is a flat
// sequence of cards; each card has a starred keyword header with
// optional parameters followed by data lines.
package inp

import (
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/io"
)

// BuildError indicates malformed input. Line is 1-based within the
// deck source; zero means the location is unknown.
type BuildError struct {
	Line int
	Msg  string
}

// Error returns the message prefixed with the line number
func (o *BuildError) Error() string {
	if o.Line > 0 {
		return io.Sf("line %d: %s", o.Line, o.Msg)
	}
	return o.Msg
}

// Errf creates a new BuildError
func Errf(line int, msg string, prm ...interface{}) *BuildError {
	return &BuildError{Line: line, Msg: io.Sf(msg, prm...)}
}

// Param holds one KEY or KEY=VAL entry from a card header
type Param struct {
	Key string // uppercased key
	Val string // empty for flag parameters
}

// Card holds one *KEYWORD block
type Card struct {
	Keyword   string   // uppercased keyword
	Params    []Param  // header parameters in input order
	Lines     []string // trimmed data lines
	LineNos   []int    // 1-based source line of each data line
	LineStart int      // 1-based line of the header in the source
}

// Deck holds a parsed card deck
type Deck struct {
	Cards []Card
}

// Param returns the value of a header parameter and whether it is present
func (o *Card) Param(key string) (val string, found bool) {
	key = strings.ToUpper(key)
	for _, p := range o.Params {
		if p.Key == key {
			return p.Val, true
		}
	}
	return
}

// Has tells whether a header parameter (or flag) is present
func (o *Card) Has(key string) bool {
	_, found := o.Param(key)
	return found
}

// LineNo returns the 1-based source line of data line k. Blank and
// comment lines between data lines are accounted for.
func (o *Card) LineNo(k int) int {
	if k >= 0 && k < len(o.LineNos) {
		return o.LineNos[k]
	}
	return o.LineStart + k + 1
}

// Find returns the first card with the given keyword or nil
func (o *Deck) Find(keyword string) *Card {
	keyword = strings.ToUpper(keyword)
	for i := range o.Cards {
		if o.Cards[i].Keyword == keyword {
			return &o.Cards[i]
		}
	}
	return nil
}

// FindAll returns all cards with the given keyword
func (o *Deck) FindAll(keyword string) (cards []*Card) {
	keyword = strings.ToUpper(keyword)
	for i := range o.Cards {
		if o.Cards[i].Keyword == keyword {
			cards = append(cards, &o.Cards[i])
		}
	}
	return
}

// HasKeyword tells whether any card keyword contains all given words.
// Words are matched uppercased; e.g. ("STEADY", "STATE") matches
// "STEADY STATE DYNAMICS".
func (o *Deck) HasKeyword(words ...string) bool {
	for _, c := range o.Cards {
		all := true
		for _, w := range words {
			if !strings.Contains(c.Keyword, strings.ToUpper(w)) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// ReadDeck reads and parses a deck file
func ReadDeck(filename string) (*Deck, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, Errf(0, "cannot read %q: %v", filename, err)
	}
	return ParseDeck(string(b))
}

// ParseDeck parses deck source text
func ParseDeck(src string) (*Deck, error) {
	lines := strings.Split(src, "\n")
	var deck Deck
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		// skip blanks and comments
		if line == "" || isComment(line) {
			i++
			continue
		}

		// data before the first card
		if !strings.HasPrefix(line, "*") {
			return nil, Errf(i+1, "expected card starting with '*'")
		}

		// header, possibly continued by lines starting with a comma
		lineStart := i + 1
		header := strings.TrimSpace(strings.TrimPrefix(line, "*"))
		i++
		for i < len(lines) {
			next := strings.TrimSpace(lines[i])
			if strings.HasPrefix(next, ",") {
				header += next
				i++
				continue
			}
			break
		}

		keyword, params, err := parseHeader(header, lineStart)
		if err != nil {
			return nil, err
		}

		// data lines until the next card
		var data []string
		var nums []int
		for i < len(lines) {
			cand := strings.TrimSpace(lines[i])
			if cand == "" || isComment(cand) {
				i++
				continue
			}
			if strings.HasPrefix(cand, "*") {
				break
			}
			data = append(data, cand)
			nums = append(nums, i+1)
			i++
		}

		deck.Cards = append(deck.Cards, Card{
			Keyword:   keyword,
			Params:    params,
			Lines:     data,
			LineNos:   nums,
			LineStart: lineStart,
		})
	}
	return &deck, nil
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "**")
}

func parseHeader(header string, line int) (keyword string, params []Param, err error) {
	parts := strings.Split(header, ",")
	keyword = strings.ToUpper(strings.TrimSpace(parts[0]))
	if keyword == "" {
		return "", nil, Errf(line, "empty card keyword")
	}
	for _, part := range parts[1:] {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		if k, v, has := strings.Cut(item, "="); has {
			params = append(params, Param{
				Key: strings.ToUpper(strings.TrimSpace(k)),
				Val: strings.TrimSpace(v),
			})
		} else {
			params = append(params, Param{Key: strings.ToUpper(item)})
		}
	}
	return
}

// numeric helpers ///////////////////////////////////////////////////////////

// Fields splits a comma-separated data line and trims each field
func Fields(line string) (fields []string) {
	for _, f := range strings.Split(line, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}
	return
}

// ParseInt parses an integer field of a data line
func ParseInt(field string, line int) (int, error) {
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, Errf(line, "invalid integer %q", field)
	}
	return n, nil
}

// ParseFloat parses a float field of a data line
func ParseFloat(field string, line int) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, Errf(line, "invalid number %q", field)
	}
	return v, nil
}
