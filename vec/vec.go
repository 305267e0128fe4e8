// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vec implements small n-dimensional float64 arrays with
// NumPy-style broadcasting.
//
// The distribution engines in package stats accept every argument as
// an Array so that a single call can evaluate a function over a grid
// of points and parameters. The three operations that recur in every
// such call are CommonShape (resolve the broadcast shape), Select
// (extract the elements where a condition holds) and Fill (scatter
// computed values back into a full-shape result).
package vec // import "github.com/aclements/go-distfit/vec"

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrShape is returned when the shapes of a set of arrays cannot be
// broadcast together.
var ErrShape = errors.New("shape mismatch: objects cannot be broadcast to a single shape")

// An Array is an n-dimensional array of float64 values stored in
// row-major order. A zero-dimensional Array (empty shape) holds a
// single scalar.
//
// Arrays are values; the operations in this package never modify
// their arguments.
type Array struct {
	shape []int
	data  []float64
}

// Scalar returns a zero-dimensional Array holding v.
func Scalar(v float64) Array {
	return Array{data: []float64{v}}
}

// Of returns a one-dimensional Array holding vs.
func Of(vs ...float64) Array {
	return Array{shape: []int{len(vs)}, data: vs}
}

// New returns an Array with the given shape backed by data. It panics
// if len(data) does not match the shape.
func New(shape []int, data []float64) Array {
	if Size(shape) != len(data) {
		panic(fmt.Sprintf("vec: %d values do not fill shape %v", len(data), shape))
	}
	return Array{shape: append([]int(nil), shape...), data: data}
}

// Full returns an Array of the given shape with every element set to v.
func Full(shape []int, v float64) Array {
	data := make([]float64, Size(shape))
	for i := range data {
		data[i] = v
	}
	return Array{shape: append([]int(nil), shape...), data: data}
}

// Size returns the number of elements of an array with the given
// shape.
func Size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// Shape returns the shape of a. The result must not be modified.
func (a Array) Shape() []int {
	return a.shape
}

// Len returns the number of elements in a.
func (a Array) Len() int {
	return len(a.data)
}

// Data returns the row-major elements of a. The result must not be
// modified.
func (a Array) Data() []float64 {
	return a.data
}

// At returns the i'th element of a in row-major order.
func (a Array) At(i int) float64 {
	return a.data[i]
}

// IsScalar reports whether a is zero-dimensional.
func (a Array) IsScalar() bool {
	return len(a.shape) == 0
}

// Float returns the single value held by a. It panics if a does not
// have exactly one element.
func (a Array) Float() float64 {
	if len(a.data) != 1 {
		panic(fmt.Sprintf("vec: Float of array with shape %v", a.shape))
	}
	return a.data[0]
}

func (a Array) String() string {
	if a.IsScalar() && len(a.data) == 1 {
		return fmt.Sprint(a.data[0])
	}
	return fmt.Sprintf("%v%v", a.shape, a.data)
}

// CommonShape returns the shape that args broadcast to. If explicit
// is non-nil, it takes part in the broadcast as if it were the shape
// of an additional argument.
//
// Dimensions are aligned from the right; each dimension must either
// agree or be 1. Otherwise CommonShape returns an error matching
// ErrShape.
func CommonShape(explicit []int, args ...Array) ([]int, error) {
	shapes := make([][]int, 0, len(args)+1)
	for _, a := range args {
		shapes = append(shapes, a.shape)
	}
	if explicit != nil {
		shapes = append(shapes, explicit)
	}

	nd := 0
	for _, s := range shapes {
		if len(s) > nd {
			nd = len(s)
		}
	}
	out := make([]int, nd)
	for i := range out {
		out[i] = 1
	}
	for _, s := range shapes {
		off := nd - len(s)
		for i, d := range s {
			switch {
			case d == out[off+i] || d == 1:
			case out[off+i] == 1:
				out[off+i] = d
			default:
				return nil, errors.Wrapf(ErrShape, "dimension %d: %d vs %d", off+i, out[off+i], d)
			}
		}
	}
	return out, nil
}

// BroadcastTo returns the row-major elements of a broadcast to shape.
// shape must be a valid broadcast target of a.shape (for example, the
// result of CommonShape). The result is always a fresh slice.
func BroadcastTo(a Array, shape []int) []float64 {
	n := Size(shape)
	out := make([]float64, n)
	if len(a.data) == 1 {
		for i := range out {
			out[i] = a.data[0]
		}
		return out
	}
	if len(a.data) == n {
		copy(out, a.data)
		return out
	}

	nd := len(shape)
	strides := make([]int, nd)
	off := nd - len(a.shape)
	st := 1
	for i := len(a.shape) - 1; i >= 0; i-- {
		if a.shape[i] != 1 {
			strides[off+i] = st
		}
		st *= a.shape[i]
	}

	idx := make([]int, nd)
	pos := 0
	for i := range out {
		out[i] = a.data[pos]
		for d := nd - 1; d >= 0; d-- {
			idx[d]++
			pos += strides[d]
			if idx[d] < shape[d] {
				break
			}
			pos -= strides[d] * idx[d]
			idx[d] = 0
		}
	}
	return out
}

// Broadcast resolves the common shape of args and returns it together
// with each argument's elements broadcast to that shape.
func Broadcast(explicit []int, args ...Array) ([]int, [][]float64, error) {
	shape, err := CommonShape(explicit, args...)
	if err != nil {
		return nil, nil, err
	}
	cols := make([][]float64, len(args))
	for i, a := range args {
		cols[i] = BroadcastTo(a, shape)
	}
	return shape, cols, nil
}

// Select returns, for each column, the elements at the positions where
// mask is true. Each column must have either len(mask) elements or a
// single element, which is repeated.
func Select(mask []bool, cols ...[]float64) [][]float64 {
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}
	out := make([][]float64, len(cols))
	for j, col := range cols {
		sel := make([]float64, 0, n)
		for i, m := range mask {
			if !m {
				continue
			}
			if len(col) == 1 {
				sel = append(sel, col[0])
			} else {
				sel = append(sel, col[i])
			}
		}
		out[j] = sel
	}
	return out
}

// Fill returns an Array of the given shape whose elements are fill
// except at the positions where mask is true, which receive vals in
// order. It panics if len(vals) differs from the number of true
// entries in mask.
func Fill(shape []int, mask []bool, vals []float64, fill float64) Array {
	out := Full(shape, fill)
	j := 0
	for i, m := range mask {
		if m {
			out.data[i] = vals[j]
			j++
		}
	}
	if j != len(vals) {
		panic(fmt.Sprintf("vec: Fill got %d values for %d positions", len(vals), j))
	}
	return out
}

// Count returns the number of true entries in mask.
func Count(mask []bool) int {
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}
	return n
}
