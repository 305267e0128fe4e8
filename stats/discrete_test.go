// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/aclements/go-distfit/vec"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinom(t *testing.T) {
	pmf := func(k float64) float64 { return eval1(t, Binom.PMF, k, 10, 0.3) }
	testFunc(t, "Binom.PMF", pmf, map[float64]float64{
		-1:  0,
		0:   0.0282475249,
		3:   0.2668279320,
		3.5: 0,
		10:  0.0000059049,
		11:  0,
	})
	cdf := func(k float64) float64 { return eval1(t, Binom.CDF, k, 10, 0.3) }
	testFunc(t, "Binom.CDF", cdf, map[float64]float64{
		-1:  0,
		3:   0.6496107184,
		3.5: 0.6496107184,
		10:  1,
		20:  1,
	})
	assert.InDelta(t, 0.3503892816, eval1(t, Binom.SF, 3, 10, 0.3), 1e-9)
	assert.Equal(t, 1.0, eval1(t, Binom.SF, -1, 10, 0.3))
	assert.Equal(t, 0.0, eval1(t, Binom.SF, 10, 10, 0.3))

	ppf := func(q float64) float64 { return eval1(t, Binom.PPF, q, 10, 0.3) }
	testFunc(t, "Binom.PPF", ppf, map[float64]float64{
		0:    -1,
		0.38: 2,
		0.5:  3,
		1:    10,
		1.1:  math.NaN(),
	})
	isf := func(q float64) float64 { return eval1(t, Binom.ISF, q, 10, 0.3) }
	testFunc(t, "Binom.ISF", isf, map[float64]float64{
		0:   10,
		0.5: 3,
		1:   -1,
	})

	// loc shifts outcomes.
	assert.InDelta(t, 0.2668279320, eval1(t, Binom.PMF, 5, 10, 0.3, 2), 1e-9)
	assert.Equal(t, 1.0, eval1(t, Binom.PPF, 0, 10, 0.3, 2))

	// Invalid shapes.
	assert.True(t, math.IsNaN(eval1(t, Binom.PMF, 1, 10, 1.5)))
	assert.True(t, math.IsNaN(eval1(t, Binom.PMF, 1, 2.5, 0.5)))

	s, err := Binom.Stats(AllMoments, scalars(10, 0.3)...)
	require.NoError(t, err)
	assert.InDelta(t, 3, s.Mean.Float(), 1e-12)
	assert.InDelta(t, 2.1, s.Variance.Float(), 1e-12)

	h, err := Binom.Entropy(scalars(10, 0.3)...)
	require.NoError(t, err)
	assert.InDelta(t, 1.7790787840900626, h.Float(), 1e-9)
}

func TestDiscreteFamilies(t *testing.T) {
	// Poisson has no PPF, moments beyond Stats or entropy of its
	// own.
	assert.InDelta(t, 0.1353352832366127, eval1(t, Poisson.PMF, 0, 2), 1e-12)
	assert.InDelta(t, 0.6766764161830635, eval1(t, Poisson.CDF, 2, 2), 1e-9)
	assert.Equal(t, 2.0, eval1(t, Poisson.PPF, 0.5, 2))
	assert.Equal(t, 0.0, eval1(t, Poisson.PPF, 0.1, 2))
	assert.Equal(t, math.Inf(1), eval1(t, Poisson.PPF, 1, 2))
	m, err := Poisson.Moment(2, vec.Scalar(2))
	require.NoError(t, err)
	assert.InDelta(t, 6, m.Float(), 1e-9)
	h, err := Poisson.Entropy(vec.Scalar(2))
	require.NoError(t, err)
	assert.InDelta(t, 1.7048826439329838, h.Float(), 1e-9)

	testFunc(t, "Geom.PMF", func(k float64) float64 { return eval1(t, Geom.PMF, k, 0.5) },
		map[float64]float64{0: 0, 1: 0.5, 2: 0.25, 3: 0.125})
	testFunc(t, "Geom.PPF", func(q float64) float64 { return eval1(t, Geom.PPF, q, 0.5) },
		map[float64]float64{0: 0, 0.5: 1, 0.75: 2, 0.8: 3, 1: math.Inf(1)})
	h, err = Geom.Entropy(vec.Scalar(0.5))
	require.NoError(t, err)
	assert.InDelta(t, 1.3862943611198906, h.Float(), 1e-9)

	testFunc(t, "Bernoulli.PMF", func(k float64) float64 { return eval1(t, Bernoulli.PMF, k, 0.3) },
		map[float64]float64{0: 0.7, 1: 0.3, 0.5: 0, 2: 0})
	testFunc(t, "Bernoulli.CDF", func(k float64) float64 { return eval1(t, Bernoulli.CDF, k, 0.3) },
		map[float64]float64{-1: 0, 0: 0.7, 0.5: 0.7, 1: 1})
	h, err = Bernoulli.Entropy(vec.Scalar(0.3))
	require.NoError(t, err)
	assert.InDelta(t, 0.6108643020548935, h.Float(), 1e-12)

	for _, d := range []struct {
		dist *Discrete
		par  []float64
	}{
		{Binom, []float64{20, 0.4}},
		{Bernoulli, []float64{0.6}},
	} {
		rv, err := d.dist.Freeze(d.par...)
		require.NoError(t, err)
		testDiscreteCDF(t, d.dist.Name()+".CDF", rv)
	}

	// Unbounded families: the CDF is the running sum of the PMF.
	for _, d := range []struct {
		dist *Discrete
		par  []float64
	}{
		{Poisson, []float64{3}},
		{Geom, []float64{0.3}},
	} {
		rv, err := d.dist.Freeze(d.par...)
		require.NoError(t, err)
		sum := 0.0
		for k := 0.0; k <= 30; k++ {
			sum += rv.PMF(k)
			assert.InDelta(t, sum, rv.CDF(k), 1e-9, "%s.CDF(%v)", d.dist.Name(), k)
		}
	}
}

func TestDiscreteGeneric(t *testing.T) {
	// A family with only a PMF exercises the generic CDF, PPF,
	// moment and entropy sums.
	pois := NewDiscrete(DiscreteFamily{
		Name:      "pmfpoisson",
		NumShapes: 1,
		A:         0,
		B:         math.Inf(1),
		PMF: func(k float64, s []float64) float64 {
			lg, _ := math.Lgamma(k + 1)
			return math.Exp(k*math.Log(s[0]) - s[0] - lg)
		},
	})
	for _, k := range []float64{0, 1, 2, 5, 10} {
		assert.InDelta(t, eval1(t, Poisson.CDF, k, 2), eval1(t, pois.CDF, k, 2), 1e-12, "CDF(%v)", k)
	}
	for _, q := range []float64{0.01, 0.1, 0.5, 0.9, 0.999} {
		assert.Equal(t, eval1(t, Poisson.PPF, q, 2), eval1(t, pois.PPF, q, 2), "PPF(%v)", q)
	}
	s, err := pois.Stats(AllMoments, vec.Scalar(2))
	require.NoError(t, err)
	assert.InDelta(t, 2, s.Mean.Float(), 1e-8)
	assert.InDelta(t, 2, s.Variance.Float(), 1e-8)
	assert.InDelta(t, 1/math.Sqrt(2), s.Skew.Float(), 1e-8)
	assert.InDelta(t, 0.5, s.Kurtosis.Float(), 1e-7)
	h, err := pois.Entropy(vec.Scalar(2))
	require.NoError(t, err)
	assert.InDelta(t, 1.7048826439329838, h.Float(), 1e-9)

	// A CDF-only family over negative and positive outcomes.
	cdfOnly := NewDiscrete(DiscreteFamily{
		Name: "dunif",
		A:    -2,
		B:    2,
		CDF: func(k float64, _ []float64) float64 {
			return (k + 3) / 5
		},
	})
	for k := -2.0; k <= 2; k++ {
		assert.InDelta(t, 0.2, eval1(t, cdfOnly.PMF, k), 1e-12)
	}
	assert.Equal(t, -2.0, eval1(t, cdfOnly.PPF, 0.1))
	assert.Equal(t, 0.0, eval1(t, cdfOnly.PPF, 0.5))
	assert.Equal(t, -3.0, eval1(t, cdfOnly.PPF, 0))
	s, err = cdfOnly.Stats(MV)
	require.NoError(t, err)
	assert.InDelta(t, 0, s.Mean.Float(), 1e-12)
	assert.InDelta(t, 2, s.Variance.Float(), 1e-12)

	assert.Panics(t, func() { NewDiscrete(DiscreteFamily{Name: "empty"}) })
}

func TestTable(t *testing.T) {
	d, err := NewTable("t", []float64{3, 1, 2, 1}, []float64{0.2, 0.1, 0.5, 0.2})
	require.NoError(t, err)
	xk, pk := d.Table()
	assert.Equal(t, []float64{1, 2, 3}, xk)
	assert.InDeltaSlice(t, []float64{0.3, 0.5, 0.2}, pk, 1e-15)

	testFunc(t, "table.PMF", func(x float64) float64 { return eval1(t, d.PMF, x) },
		map[float64]float64{0: 0, 1: 0.3, 1.5: 0, 2: 0.5, 3: 0.2, 4: 0})
	testFunc(t, "table.CDF", func(x float64) float64 { return eval1(t, d.CDF, x) },
		map[float64]float64{0: 0, 1: 0.3, 2: 0.8, 2.5: 0.8, 3: 1, 10: 1})
	testFunc(t, "table.PPF", func(q float64) float64 { return eval1(t, d.PPF, q) },
		map[float64]float64{0: 0, 0.3: 1, 0.31: 2, 0.79: 2, 0.9: 3, 1: 3})
	testFunc(t, "table.SF", func(x float64) float64 { return eval1(t, d.SF, x) },
		map[float64]float64{0: 1, 1: 0.7, 3: 0})

	// loc shifts the table.
	assert.InDelta(t, 0.5, eval1(t, d.PMF, 12, 10), 1e-15)

	s, err := d.Stats(MV)
	require.NoError(t, err)
	assert.InDelta(t, 1.9, s.Mean.Float(), 1e-12)
	assert.InDelta(t, 0.49, s.Variance.Float(), 1e-12)
	m, err := d.Moment(2)
	require.NoError(t, err)
	assert.InDelta(t, 4.1, m.Float(), 1e-12)
	h, err := d.Entropy()
	require.NoError(t, err)
	assert.InDelta(t, 1.0296530140645737, h.Float(), 1e-12)

	rv, err := d.Freeze()
	require.NoError(t, err)
	assert.Equal(t, 0.0, rv.Step())
	rng := rand.New(rand.NewPCG(1, 1))
	counts := map[float64]int{}
	for i := 0; i < 1000; i++ {
		counts[rv.Rand(rng)]++
	}
	assert.Len(t, counts, 3)
	assert.InDelta(t, 500, counts[2], 60)

	for _, tc := range []struct {
		name   string
		xk, pk []float64
	}{
		{"length", []float64{1, 2}, []float64{1}},
		{"empty", nil, nil},
		{"negative", []float64{1, 2}, []float64{1.5, -0.5}},
		{"sum", []float64{1, 2}, []float64{0.5, 0.4}},
		{"nan", []float64{math.NaN()}, []float64{1}},
	} {
		_, err := NewTable(tc.name, tc.xk, tc.pk)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "%s: got %v", tc.name, err)
	}
}

func TestDiscreteRand(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	res, err := Binom.Rand(rng, []int{2000}, scalars(10, 0.3)...)
	require.NoError(t, err)
	for _, k := range res.Data() {
		require.True(t, k >= 0 && k <= 10 && k == math.Trunc(k), "bad outcome %v", k)
	}
	mean, _ := meanVariance(res.Data())
	assert.InDelta(t, 3, mean, 0.15)

	for _, mu := range []float64{4, 40, 100} {
		res, err = Poisson.Rand(rng, []int{2000}, vec.Scalar(mu))
		require.NoError(t, err)
		for _, k := range res.Data() {
			require.True(t, k >= 0 && k == math.Trunc(k), "Poisson(%v) outcome %v", mu, k)
		}
		mean, variance := meanVariance(res.Data())
		assert.InDelta(t, mu, mean, 4*math.Sqrt(mu/2000), "Poisson(%v) mean", mu)
		assert.InEpsilon(t, mu, variance, 0.2, "Poisson(%v) variance", mu)
	}
	res, err = Poisson.Rand(rng, []int{10}, vec.Scalar(0))
	require.NoError(t, err)
	assert.Equal(t, make([]float64, 10), res.Data())
}
