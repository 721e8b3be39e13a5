// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// 1D Gauss-Legendre abscissae
var (
	gp2 = 1.0 / math.Sqrt(3.0)
	gp3 = 0.774596669241483 // sqrt(3/5)
	gw3 = []float64{5.0 / 9.0, 8.0 / 9.0, 5.0 / 9.0}
)

// Points returns the default quadrature rule for a shape family:
// 2 points for lin2, 2x2 for qua4, 3x3 for qua8 and 2x2x2 for hex8
func Points(name string) (pts []IntPoint) {
	switch name {
	case "lin2":
		return []IntPoint{
			{R: []float64{-gp2}, W: 1},
			{R: []float64{gp2}, W: 1},
		}
	case "qua4":
		for _, y := range []float64{-gp2, gp2} {
			for _, x := range []float64{-gp2, gp2} {
				pts = append(pts, IntPoint{R: []float64{x, y}, W: 1})
			}
		}
		return
	case "qua8":
		xs := []float64{-gp3, 0, gp3}
		for j, y := range xs {
			for i, x := range xs {
				pts = append(pts, IntPoint{R: []float64{x, y}, W: gw3[i] * gw3[j]})
			}
		}
		return
	case "hex8":
		for _, z := range []float64{-gp2, gp2} {
			for _, y := range []float64{-gp2, gp2} {
				for _, x := range []float64{-gp2, gp2} {
					pts = append(pts, IntPoint{R: []float64{x, y, z}, W: 1})
				}
			}
		}
		return
	}
	chk.Panic("no quadrature rule for shape %q", name)
	return
}
