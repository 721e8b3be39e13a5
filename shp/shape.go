// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shp provides shape functions and Gauss quadrature rules for
// the isoparametric elements. Evaluations write into caller-provided
// slices so the hot assembly loops stay allocation free.
package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Shape holds one interpolation family. Func evaluates the shape
// functions N[nverts] and their natural derivatives dNdR[nverts][ndim]
// at natural coordinates r[ndim].
type Shape struct {
	Name   string
	Nverts int
	Ndim   int
	Func   func(N []float64, dNdR [][]float64, r []float64)
}

// IntPoint is one integration point: natural coordinates and weight
type IntPoint struct {
	R []float64
	W float64
}

// Get returns a shape structure by name: "lin2", "qua4", "qua8" or
// "hex8". It panics on unknown names since callers select from the
// closed element set.
func Get(name string) *Shape {
	switch name {
	case "lin2":
		return &Shape{Name: name, Nverts: 2, Ndim: 1, Func: lin2}
	case "qua4":
		return &Shape{Name: name, Nverts: 4, Ndim: 2, Func: qua4}
	case "qua8":
		return &Shape{Name: name, Nverts: 8, Ndim: 2, Func: qua8}
	case "hex8":
		return &Shape{Name: name, Nverts: 8, Ndim: 3, Func: hex8}
	}
	chk.Panic("unknown shape %q", name)
	return nil
}

// Alloc returns scratch slices sized for this shape
func (o *Shape) Alloc() (N []float64, dNdR [][]float64) {
	return make([]float64, o.Nverts), utl.Alloc(o.Nverts, o.Ndim)
}

// natural coordinates of hex8 and qua4 corners
var (
	hexR = []float64{-1, 1, 1, -1, -1, 1, 1, -1}
	hexS = []float64{-1, -1, 1, 1, -1, -1, 1, 1}
	hexT = []float64{-1, -1, -1, -1, 1, 1, 1, 1}
	quaR = []float64{-1, 1, 1, -1}
	quaS = []float64{-1, -1, 1, 1}
)

func lin2(N []float64, dNdR [][]float64, r []float64) {
	N[0] = 0.5 * (1.0 - r[0])
	N[1] = 0.5 * (1.0 + r[0])
	dNdR[0][0] = -0.5
	dNdR[1][0] = 0.5
}

func qua4(N []float64, dNdR [][]float64, r []float64) {
	for i := 0; i < 4; i++ {
		N[i] = 0.25 * (1.0 + r[0]*quaR[i]) * (1.0 + r[1]*quaS[i])
		dNdR[i][0] = 0.25 * quaR[i] * (1.0 + r[1]*quaS[i])
		dNdR[i][1] = 0.25 * (1.0 + r[0]*quaR[i]) * quaS[i]
	}
}

// qua8 is the serendipity quadrilateral: corners 0..3, then midsides
// 4..7 on edges 01, 12, 23, 30
func qua8(N []float64, dNdR [][]float64, r []float64) {
	x, y := r[0], r[1]

	// corners
	for i := 0; i < 4; i++ {
		xi, yi := quaR[i], quaS[i]
		N[i] = 0.25 * (1.0 + x*xi) * (1.0 + y*yi) * (x*xi + y*yi - 1.0)
		dNdR[i][0] = 0.25 * xi * (1.0 + y*yi) * (2.0*x*xi + y*yi)
		dNdR[i][1] = 0.25 * yi * (1.0 + x*xi) * (2.0*y*yi + x*xi)
	}

	// midsides on xi=0 edges (bottom, top)
	N[4] = 0.5 * (1.0 - x*x) * (1.0 - y)
	dNdR[4][0] = -x * (1.0 - y)
	dNdR[4][1] = -0.5 * (1.0 - x*x)

	N[6] = 0.5 * (1.0 - x*x) * (1.0 + y)
	dNdR[6][0] = -x * (1.0 + y)
	dNdR[6][1] = 0.5 * (1.0 - x*x)

	// midsides on eta=0 edges (right, left)
	N[5] = 0.5 * (1.0 + x) * (1.0 - y*y)
	dNdR[5][0] = 0.5 * (1.0 - y*y)
	dNdR[5][1] = -y * (1.0 + x)

	N[7] = 0.5 * (1.0 - x) * (1.0 - y*y)
	dNdR[7][0] = -0.5 * (1.0 - y*y)
	dNdR[7][1] = -y * (1.0 - x)
}

func hex8(N []float64, dNdR [][]float64, r []float64) {
	for i := 0; i < 8; i++ {
		N[i] = 0.125 * (1.0 + r[0]*hexR[i]) * (1.0 + r[1]*hexS[i]) * (1.0 + r[2]*hexT[i])
		dNdR[i][0] = 0.125 * hexR[i] * (1.0 + r[1]*hexS[i]) * (1.0 + r[2]*hexT[i])
		dNdR[i][1] = 0.125 * (1.0 + r[0]*hexR[i]) * hexS[i] * (1.0 + r[2]*hexT[i])
		dNdR[i][2] = 0.125 * (1.0 + r[0]*hexR[i]) * (1.0 + r[1]*hexS[i]) * hexT[i]
	}
}
