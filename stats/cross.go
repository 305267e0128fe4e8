// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

// findCross returns the indexes i such that ys crosses the level v
// between ys[i] and ys[i+1].
//
// Points exactly at the level do not create crossings of their own:
// each takes the side of the point before it, and a run of such points
// at the start takes the side opposite to the first point off the
// level, so that leaving the level counts as one crossing. If every
// point is at the level, there are no crossings.
func findCross(ys []float64, v float64) []int {
	n := len(ys)
	if n < 2 {
		return nil
	}
	side := make([]int8, n)
	first := -1
	for i, y := range ys {
		switch {
		case y > v:
			side[i] = 1
		case y < v:
			side[i] = -1
		}
		if side[i] != 0 && first < 0 {
			first = i
		}
	}
	if first < 0 {
		return nil
	}
	for i := 0; i < first; i++ {
		side[i] = -side[first]
	}
	for i := first + 1; i < n; i++ {
		if side[i] == 0 {
			side[i] = side[i-1]
		}
	}

	var ind []int
	for i := 0; i < n-1; i++ {
		if side[i]*side[i+1] < 0 {
			ind = append(ind, i)
		}
	}
	return ind
}

// eCross returns the point between xs[i] and xs[i+1] where the linear
// interpolation of ys equals v.
func eCross(xs, ys []float64, i int, v float64) float64 {
	return xs[i] + (v-ys[i])*(xs[i+1]-xs[i])/(ys[i+1]-ys[i])
}
