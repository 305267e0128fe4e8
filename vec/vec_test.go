// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vec

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommonShape(t *testing.T) {
	for _, test := range []struct {
		explicit []int
		args     []Array
		want     []int
	}{
		{nil, []Array{Scalar(1)}, []int{}},
		{nil, []Array{Scalar(1), Of(1, 2, 3)}, []int{3}},
		{nil, []Array{New([]int{2, 1}, []float64{1, 2}), Of(1, 2, 3)}, []int{2, 3}},
		{[]int{4, 3}, []Array{Of(1, 2, 3)}, []int{4, 3}},
		{[]int{1}, []Array{Scalar(0)}, []int{1}},
	} {
		got, err := CommonShape(test.explicit, test.args...)
		require.NoError(t, err)
		assert.Equal(t, test.want, got)
	}

	_, err := CommonShape(nil, Of(1, 2), Of(1, 2, 3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShape))

	_, err = CommonShape([]int{4}, Of(1, 2, 3))
	assert.True(t, errors.Is(err, ErrShape))
}

func TestBroadcastTo(t *testing.T) {
	col := New([]int{2, 1}, []float64{1, 2})
	row := Of(10, 20, 30)
	shape, cols, err := Broadcast(nil, col, row)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, shape)
	assert.Equal(t, []float64{1, 1, 1, 2, 2, 2}, cols[0])
	assert.Equal(t, []float64{10, 20, 30, 10, 20, 30}, cols[1])

	assert.Equal(t, []float64{7, 7, 7, 7}, BroadcastTo(Scalar(7), []int{2, 2}))
}

func TestSelectFill(t *testing.T) {
	mask := []bool{true, false, true, false}
	sel := Select(mask, []float64{1, 2, 3, 4}, []float64{9})
	assert.Equal(t, []float64{1, 3}, sel[0])
	assert.Equal(t, []float64{9, 9}, sel[1])

	out := Fill([]int{2, 2}, mask, []float64{10, 30}, -1)
	assert.Equal(t, []int{2, 2}, out.Shape())
	assert.Equal(t, []float64{10, -1, 30, -1}, out.Data())

	assert.Panics(t, func() { Fill([]int{4}, mask, []float64{1}, 0) })
	assert.Equal(t, 2, Count(mask))
}

func TestLinspaceUnique(t *testing.T) {
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 1}, Linspace(0, 1, 5), 1e-15)
	assert.Equal(t, []float64{2}, Linspace(2, 3, 1))
	assert.Nil(t, Linspace(2, 3, 0))
	assert.Equal(t, []float64{1, 2, 3}, Unique([]float64{3, 1, 2, 3, 1}))
}

func TestScalar(t *testing.T) {
	s := Scalar(3)
	assert.True(t, s.IsScalar())
	assert.Equal(t, 3.0, s.Float())
	assert.Equal(t, 1, s.Len())
	assert.Panics(t, func() { Of(1, 2).Float() })
	assert.Panics(t, func() { New([]int{2}, []float64{1}) })
}
