// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestChoose(t *testing.T) {
	for _, test := range []struct {
		n, k int
		want float64
	}{
		{5, 0, 1}, {5, 5, 1}, {5, 2, 10}, {10, 3, 120}, {5, -1, 0}, {5, 6, 0},
		{52, 5, 2598960},
	} {
		assert.Equal(t, test.want, Choose(test.n, test.k), "Choose(%d, %d)", test.n, test.k)
	}
	assert.InEpsilon(t, 1.0089134454556417e29, Choose(100, 50), 1e-10)
}

func TestBetaInc(t *testing.T) {
	assert.InDelta(t, 0.5, BetaInc(0.5, 2, 2), 1e-12)
	assert.Equal(t, 0.0, BetaInc(0, 2, 3))
	assert.Equal(t, 1.0, BetaInc(1, 2, 3))
	assert.True(t, math.IsNaN(BetaInc(-0.1, 2, 3)))
	// I_x(1, 1) = x.
	assert.InDelta(t, 0.3, BetaInc(0.3, 1, 1), 1e-12)
}

func TestBrent(t *testing.T) {
	x, err := Brent(func(x float64) float64 { return x*x - 2 }, 0, 2, 0)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, x, 1e-12)

	x, err = Brent(math.Cos, 0, 3, 1e-10)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, x, 1e-9)

	_, err = Brent(func(x float64) float64 { return x*x + 1 }, -1, 1, 0)
	assert.True(t, errors.Is(err, ErrNoBracket))
}

func TestBracket(t *testing.T) {
	f := func(x float64) float64 { return x - 100 }
	lo, hi, ok := Bracket(f, -10, 10, math.Inf(-1), math.Inf(1))
	require.True(t, ok)
	assert.True(t, f(lo) <= 0 && f(hi) >= 0)

	lo, hi, ok = Bracket(func(x float64) float64 { return x + 1e3 }, -10, 10, math.Inf(-1), math.Inf(1))
	require.True(t, ok)
	assert.True(t, lo <= -1e3 && hi >= -1e3)

	_, _, ok = Bracket(f, 0, 1, 0, 50)
	assert.False(t, ok)
}

func TestIntegrate(t *testing.T) {
	stdNormal := func(x float64) float64 { return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi) }
	for _, test := range []struct {
		name string
		f    func(float64) float64
		a, b float64
		want float64
	}{
		{"x^2", func(x float64) float64 { return x * x }, 0, 3, 9},
		{"reversed", func(x float64) float64 { return x * x }, 3, 0, -9},
		{"normal", stdNormal, math.Inf(-1), math.Inf(1), 1},
		{"normal upper", stdNormal, 0, math.Inf(1), 0.5},
		{"normal lower", stdNormal, math.Inf(-1), 1.96, 0.9750021048517795},
		{"exp", func(x float64) float64 { return math.Exp(-x) }, 0, math.Inf(1), 1},
		{"normal var", func(x float64) float64 { return x * x * stdNormal(x) }, math.Inf(-1), math.Inf(1), 1},
	} {
		got, _ := Integrate(test.f, test.a, test.b)
		assert.InDelta(t, test.want, got, 1e-8, test.name)
	}

	got, _ := Integrate(func(float64) float64 { return math.NaN() }, 0, 1)
	assert.True(t, math.IsNaN(got))
}

func TestDerivative(t *testing.T) {
	assert.InDelta(t, math.Cos(1), Derivative(math.Sin, 1), 1e-8)

	f := func(x []float64) float64 { return x[0]*x[0]*x[1] + 3*x[1] }
	g := Gradient(f, []float64{2, 1000})
	assert.InDelta(t, 4000, g[0], 1e-3)
	assert.InDelta(t, 7, g[1], 1e-3)

	h := Hessian(f, []float64{2, 1000})
	assert.InDelta(t, 2000, h.At(0, 0), 1e-2)
	assert.InDelta(t, 4, h.At(0, 1), 1e-3)
	assert.InDelta(t, 0, h.At(1, 1), 1e-3)
}

func TestPInv(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{4, 0, 0, 2})
	p, ok := PInv(a, 0)
	require.True(t, ok)
	assert.InDelta(t, 0.25, p.At(0, 0), 1e-14)
	assert.InDelta(t, 0.5, p.At(1, 1), 1e-14)

	// Rank-deficient matrix: pinv(A)·A·pinv(A) == pinv(A).
	s := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
	p, ok = PInv(s, 0)
	require.True(t, ok)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, 0.25, p.At(i, j), 1e-12)
		}
	}

	_, ok = PInv(mat.NewDense(1, 1, []float64{math.Inf(1)}), 0)
	assert.False(t, ok)
}

func TestMinimize(t *testing.T) {
	rosen := func(x []float64) float64 {
		a, b := 1-x[0], x[1]-x[0]*x[0]
		return a*a + 100*b*b
	}
	res := Minimize(rosen, []float64{-1.2, 1})
	assert.InDelta(t, 1, res.X[0], 1e-3)
	assert.InDelta(t, 1, res.X[1], 1e-3)
	assert.InDelta(t, 0, res.F, 1e-6)

	quad := func(x []float64) float64 {
		if x[0] < 0 {
			return math.Inf(1)
		}
		return (x[0] - 3) * (x[0] - 3)
	}
	res = Minimize(quad, []float64{1})
	assert.InDelta(t, 3, res.X[0], 1e-4)
}
