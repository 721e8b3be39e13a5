// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package num holds the numerical backend: the sparse triplet
// interchange format and the linear/eigen solvers built on gonum.
package num

import (
	"gonum.org/v1/gonum/mat"
)

// Triplets is a coordinate-format sparse matrix accumulator. Repeated
// (i,j) entries are summed when the matrix is realized, so scatter-add
// assembly may Put without searching for existing entries.
type Triplets struct {
	m, n int
	I, J []int
	V    []float64
}

// NewTriplets returns an m by n accumulator with capacity for nnz entries
func NewTriplets(m, n, nnz int) *Triplets {
	return &Triplets{
		m: m, n: n,
		I: make([]int, 0, nnz),
		J: make([]int, 0, nnz),
		V: make([]float64, 0, nnz),
	}
}

// Size returns the matrix dimensions
func (o *Triplets) Size() (m, n int) { return o.m, o.n }

// Len returns the number of stored entries, duplicates included
func (o *Triplets) Len() int { return len(o.V) }

// Put appends one entry. Panics on out-of-range indices since those
// always indicate an assembly bug rather than bad user input.
func (o *Triplets) Put(i, j int, v float64) {
	if i < 0 || i >= o.m || j < 0 || j >= o.n {
		panic("triplet index out of range")
	}
	o.I = append(o.I, i)
	o.J = append(o.J, j)
	o.V = append(o.V, v)
}

// Reset drops all entries but keeps the capacity
func (o *Triplets) Reset() {
	o.I = o.I[:0]
	o.J = o.J[:0]
	o.V = o.V[:0]
}

// ToDense realizes the triplets as a dense matrix, summing duplicates
func (o *Triplets) ToDense() *mat.Dense {
	d := mat.NewDense(o.m, o.n, nil)
	for k, v := range o.V {
		i, j := o.I[k], o.J[k]
		d.Set(i, j, d.At(i, j)+v)
	}
	return d
}

// RowMap is a row-compressed view of a Triplets with duplicates merged
type RowMap struct {
	m, n int
	rows []map[int]float64
}

// CompressRows merges duplicate triplet entries into per-row maps
func CompressRows(t *Triplets) *RowMap {
	o := &RowMap{m: t.m, n: t.n, rows: make([]map[int]float64, t.m)}
	for i := range o.rows {
		o.rows[i] = make(map[int]float64)
	}
	for k, v := range t.V {
		o.rows[t.I[k]][t.J[k]] += v
	}
	return o
}

// Nnz counts the stored entries after duplicate summation. This is a
// storage count: slots whose values cancelled to zero still count.
func (o *RowMap) Nnz() (n int) {
	for _, r := range o.rows {
		n += len(r)
	}
	return
}

// Row returns the merged (column, value) map of row i
func (o *RowMap) Row(i int) map[int]float64 { return o.rows[i] }

// Val returns the merged value at (i,j)
func (o *RowMap) Val(i, j int) float64 { return o.rows[i][j] }
