// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ana provides closed-form reference solutions used to verify
// the finite element results.
package ana

import (
	"math"
)

// AxialBar is a prismatic bar fixed at one end and loaded axially at
// the other
type AxialBar struct {
	E float64 // Young's modulus
	A float64 // cross-sectional area
	L float64 // length
}

// TipDisplacement returns u = F L / (E A)
func (o *AxialBar) TipDisplacement(F float64) float64 {
	return F * o.L / (o.E * o.A)
}

// Stress returns the uniform axial stress F / A
func (o *AxialBar) Stress(F float64) float64 {
	return F / o.A
}

// Cantilever is a prismatic beam clamped at one end with a transverse
// tip load
type Cantilever struct {
	E float64 // Young's modulus
	I float64 // second moment of area in the bending plane
	L float64 // length
}

// TipDeflection returns w = P L^3 / (3 E I)
func (o *Cantilever) TipDeflection(P float64) float64 {
	return P * math.Pow(o.L, 3) / (3.0 * o.E * o.I)
}

// TipRotation returns theta = P L^2 / (2 E I)
func (o *Cantilever) TipRotation(P float64) float64 {
	return P * o.L * o.L / (2.0 * o.E * o.I)
}

// FixedFreeBar gives the longitudinal vibration of a bar fixed at one
// end and free at the other
type FixedFreeBar struct {
	E   float64 // Young's modulus
	Rho float64 // density
	L   float64 // length
}

// WaveSpeed returns c = sqrt(E/rho)
func (o *FixedFreeBar) WaveSpeed() float64 {
	return math.Sqrt(o.E / o.Rho)
}

// Frequency returns the n-th natural frequency (n starting at 1):
// f_n = (2n-1) c / (4 L)
func (o *FixedFreeBar) Frequency(n int) float64 {
	return float64(2*n-1) * o.WaveSpeed() / (4.0 * o.L)
}

// SdofOscillator is the single-dof system m a + c v + k u = F
type SdofOscillator struct {
	K float64 // stiffness
	M float64 // mass
}

// Omega returns the undamped circular frequency sqrt(k/m)
func (o *SdofOscillator) Omega() float64 {
	return math.Sqrt(o.K / o.M)
}

// StepResponse returns the undamped response to a suddenly applied
// constant force: u(t) = (F/k) (1 - cos(omega t))
func (o *SdofOscillator) StepResponse(F, t float64) float64 {
	return F / o.K * (1.0 - math.Cos(o.Omega()*t))
}
