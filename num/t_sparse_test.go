// Copyright 2026 The AECS4U Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package num

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripletsDuplicatesAreSummed(t *testing.T) {
	tr := NewTriplets(3, 3, 8)
	tr.Put(0, 0, 1.0)
	tr.Put(1, 1, 2.0)
	tr.Put(0, 0, 2.5) // same slot again
	tr.Put(2, 1, -1.0)
	assert.Equal(t, 4, tr.Len())

	d := tr.ToDense()
	assert.InDelta(t, 3.5, d.At(0, 0), 1e-15)
	assert.InDelta(t, 2.0, d.At(1, 1), 1e-15)
	assert.InDelta(t, -1.0, d.At(2, 1), 1e-15)
	assert.InDelta(t, 0.0, d.At(2, 2), 1e-15)
}

func TestTripletsOutOfRangePanics(t *testing.T) {
	tr := NewTriplets(2, 2, 1)
	assert.Panics(t, func() { tr.Put(2, 0, 1.0) })
	assert.Panics(t, func() { tr.Put(0, -1, 1.0) })
}

func TestRowMapMergesAndCounts(t *testing.T) {
	tr := NewTriplets(3, 3, 8)
	tr.Put(0, 0, 1.0)
	tr.Put(0, 0, -1.0) // cancels to zero
	tr.Put(1, 2, 4.0)
	tr.Put(1, 2, 1.0)
	tr.Put(2, 2, 7.0)

	rm := CompressRows(tr)
	assert.Equal(t, 3, rm.Nnz()) // storage count: the cancelled slot still counts
	assert.InDelta(t, 5.0, rm.Val(1, 2), 1e-15)
	assert.InDelta(t, 0.0, rm.Val(0, 0), 1e-15)
	assert.Len(t, rm.Row(1), 1)
}

func TestTripletsReset(t *testing.T) {
	tr := NewTriplets(2, 2, 4)
	tr.Put(0, 0, 1.0)
	tr.Put(1, 1, 1.0)
	require.Equal(t, 2, tr.Len())
	tr.Reset()
	assert.Equal(t, 0, tr.Len())
	m, n := tr.Size()
	assert.Equal(t, 2, m)
	assert.Equal(t, 2, n)
}
