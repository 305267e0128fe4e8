// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/aclements/go-distfit/vec"
	"github.com/stretchr/testify/require"
)

func aeq(expect, got float64) bool {
	if math.IsInf(expect, 0) || math.IsInf(got, 0) {
		return expect == got
	}
	return math.Abs(expect-got) < 0.00001
}

func testFunc(t *testing.T, name string, f func(float64) float64, vals map[float64]float64) {
	t.Helper()
	xs := make([]float64, 0, len(vals))
	for x := range vals {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	for _, x := range xs {
		want, got := vals[x], f(x)
		if math.IsNaN(want) && math.IsNaN(got) || aeq(want, got) {
			continue
		}
		var label string
		if strings.Contains(name, "%v") {
			label = fmt.Sprintf(name, x)
		} else {
			label = fmt.Sprintf("%s(%v)", name, x)
		}
		t.Errorf("want %s=%v, got %v", label, want, got)
	}
}

// testDiscreteCDF checks that dist's CDF is the running sum of its
// PMF.
func testDiscreteCDF(t *testing.T, name string, dist DiscreteDist) {
	t.Helper()
	// Build the expected CDF out of the PMF.
	l, h := dist.Bounds()
	s := dist.Step()
	want := map[float64]float64{l - 0.1: 0, h: 1}
	sum := 0.0
	for x := l; x < h; x += s {
		sum += dist.PMF(x)
		want[x] = sum
		want[x+s/2] = sum
	}

	testFunc(t, name, dist.CDF, want)
}

// eval1 calls a vectorized distribution method on scalar arguments
// and returns the scalar result.
func eval1(t *testing.T, f func(vec.Array, ...vec.Array) (vec.Array, error), x float64, args ...float64) float64 {
	t.Helper()
	vargs := make([]vec.Array, len(args))
	for i, a := range args {
		vargs[i] = vec.Scalar(a)
	}
	res, err := f(vec.Scalar(x), vargs...)
	require.NoError(t, err)
	return res.Float()
}

// scalars converts args to scalar Arrays.
func scalars(args ...float64) []vec.Array {
	out := make([]vec.Array, len(args))
	for i, a := range args {
		out[i] = vec.Scalar(a)
	}
	return out
}
