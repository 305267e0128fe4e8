// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func fitExpon(t *testing.T) *Fitted {
	t.Helper()
	data := sample(t, Expon, 200, 11, 0, 3)
	f, err := Expon.Fit(data, FitOptions{ParFix: []float64{0, nan}})
	require.NoError(t, err)
	return f
}

func TestProfileParam(t *testing.T) {
	f := fitExpon(t)
	pr, err := f.Profile(ProfileOptions{Index: 1, Alpha: 0.01, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	assert.Equal(t, ProfileParam, pr.Target)
	assert.Equal(t, 1, pr.Index)
	assert.Equal(t, f.Par[1], pr.Opt)
	assert.Equal(t, f.LLMax, pr.LMax)
	assert.InDelta(t, f.LLMax-0.5*chi2ISF1(0.01), pr.CrossLevel, 1e-12)
	assert.Equal(t, len(pr.Args), len(pr.Values))
	assert.True(t, sortedAsc(pr.Args), "Args not sorted: %v", pr.Args)

	// The profile peaks at the estimate.
	for i, v := range pr.Values {
		assert.LessOrEqual(t, v, pr.LMax+1e-6, "Values[%d] at %v", i, pr.Args[i])
	}

	// Intervals at larger alpha nest inside those at smaller alpha.
	prevLo, prevHi := math.Inf(-1), math.Inf(1)
	for _, alpha := range []float64{0.01, 0.05, 0.10} {
		lo, hi, err := pr.CI(alpha)
		require.NoError(t, err)
		assert.Less(t, lo, f.Par[1], "alpha %v", alpha)
		assert.Greater(t, hi, f.Par[1], "alpha %v", alpha)
		assert.GreaterOrEqual(t, lo, prevLo, "alpha %v", alpha)
		assert.LessOrEqual(t, hi, prevHi, "alpha %v", alpha)
		prevLo, prevHi = lo, hi

		// The log-likelihood at the bounds is at the crossing
		// level.
		level := f.LLMax - 0.5*chi2ISF1(alpha)
		assert.InDelta(t, level, -Expon.nnlf([]float64{0, lo}, f.Data), 0.02, "alpha %v", alpha)
		assert.InDelta(t, level, -Expon.nnlf([]float64{0, hi}, f.Data), 0.02, "alpha %v", alpha)
	}

	_, _, err = pr.CI(0.001)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, _, err = pr.CI(1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestProfileIndex(t *testing.T) {
	f := fitExpon(t)

	// Index 0 is fixed, so the first free parameter is profiled.
	pr, err := f.Profile(ProfileOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, pr.Index)
	assert.Equal(t, DefaultAlpha, pr.Alpha)

	data := sample(t, WeibullMin, 500, 12, 2, 0, 1)
	wf, err := WeibullMin.Fit(data, FitOptions{ParFix: []float64{nan, 0, nan}})
	require.NoError(t, err)
	_, err = wf.Profile(ProfileOptions{Index: 1})
	assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
	_, err = wf.Profile(ProfileOptions{Index: 3})
	assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
	_, err = wf.Profile(ProfileOptions{Index: 2, N: 1})
	assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)

	// Profiling the shape re-estimates the scale at each point.
	pr, err = wf.Profile(ProfileOptions{Index: 0, N: 40})
	require.NoError(t, err)
	lo, hi, err := pr.CI(0.05)
	require.NoError(t, err)
	assert.Less(t, lo, wf.Par[0])
	assert.Greater(t, hi, wf.Par[0])
}

func TestProfileQuantile(t *testing.T) {
	f := fitExpon(t)
	x := 5.0
	pr, err := f.Profile(ProfileOptions{Index: 1, X: &x})
	require.NoError(t, err)
	assert.Equal(t, ProfileQuantile, pr.Target)
	assert.Equal(t, x, pr.Opt)
	assert.InDelta(t, math.Log(f.SF(x)), pr.LogSF, 1e-12)
	xlo, xhi, err := pr.CI(0.05)
	require.NoError(t, err)
	assert.Less(t, xlo, x)
	assert.Greater(t, xhi, x)

	// The quantile is proportional to the scale, so its interval
	// is the scaled interval of the scale.
	ps, err := f.Profile(ProfileOptions{Index: 1})
	require.NoError(t, err)
	slo, shi, err := ps.CI(0.05)
	require.NoError(t, err)
	assert.InEpsilon(t, -pr.LogSF*slo, xlo, 0.02)
	assert.InEpsilon(t, -pr.LogSF*shi, xhi, 0.02)
}

func TestProfileLogSF(t *testing.T) {
	f := fitExpon(t)
	logSF := -1.0
	pr, err := f.Profile(ProfileOptions{Index: 1, LogSF: &logSF})
	require.NoError(t, err)
	assert.Equal(t, ProfileLogSF, pr.Target)
	assert.Equal(t, logSF, pr.Opt)
	assert.InDelta(t, f.Par[1], pr.X, 1e-9)
	lo, hi, err := pr.CI(0.05)
	require.NoError(t, err)
	assert.Less(t, lo, logSF)
	assert.Greater(t, hi, logSF)

	// X takes priority over LogSF.
	x := 5.0
	pr, err = f.Profile(ProfileOptions{Index: 1, X: &x, LogSF: &logSF})
	require.NoError(t, err)
	assert.Equal(t, ProfileQuantile, pr.Target)
}

func TestProfileBounds(t *testing.T) {
	f := fitExpon(t)
	pmin, pmax := 0.5*f.Par[1], 2*f.Par[1]
	pr, err := f.Profile(ProfileOptions{Index: 1, PMin: &pmin, PMax: &pmax, N: 50})
	require.NoError(t, err)
	assert.Equal(t, pmin, pr.PMin)
	assert.Equal(t, pmax, pr.PMax)
	assert.LessOrEqual(t, len(pr.Args), 50)
	for _, a := range pr.Args {
		assert.True(t, a >= pmin && a <= pmax, "arg %v outside [%v, %v]", a, pmin, pmax)
	}
	lo, hi, err := pr.CI(0.05)
	require.NoError(t, err)
	assert.True(t, pmin < lo && lo < f.Par[1] && f.Par[1] < hi && hi < pmax,
		"CI [%v, %v] around %v", lo, hi, f.Par[1])

	// A grid that stops short of the crossing on one side gives
	// a one-sided interval.
	pmax = f.Par[1] * 1.01
	pr, err = f.Profile(ProfileOptions{Index: 1, PMin: &pmin, PMax: &pmax, N: 50})
	require.NoError(t, err)
	lo, hi, err = pr.CI(0.05)
	require.NoError(t, err)
	assert.Less(t, lo, f.Par[1])
	assert.Equal(t, pmax, hi)
}

func TestProfileNoLink(t *testing.T) {
	data := sample(t, Rayleigh, 50, 13, 0, 1)
	f, err := Rayleigh.Fit(data, FitOptions{Start: []float64{-0.1, 1}, SkipSearch: true})
	require.NoError(t, err)
	x := 1.0
	_, err = f.Profile(ProfileOptions{Index: 1, X: &x})
	assert.True(t, errors.Is(err, ErrNotImplemented), "got %v", err)

	data = sample(t, GenPareto, 200, 14, 0.2, 0, 1)
	gf, err := GenPareto.Fit(data, FitOptions{ParFix: []float64{nan, 0, nan}})
	require.NoError(t, err)
	_, err = gf.Profile(ProfileOptions{Index: 0, X: &x})
	assert.True(t, errors.Is(err, ErrNotImplemented), "got %v", err)
	pr, err := gf.Profile(ProfileOptions{Index: 2, X: &x, N: 40})
	require.NoError(t, err)
	assert.Equal(t, 2, pr.Index)

	// A caller-supplied link replaces the family's.
	link := func(x, logSF float64, par []float64, i int) (float64, error) {
		return -(x - par[0]) / logSF, nil
	}
	ef := fitExpon(t)
	want, err := ef.Profile(ProfileOptions{Index: 1, X: &x, N: 40})
	require.NoError(t, err)
	pr, err = ef.Profile(ProfileOptions{Index: 1, X: &x, Link: link, N: 40})
	require.NoError(t, err)
	assert.Equal(t, want.Args, pr.Args)
	assert.InDeltaSlice(t, want.Values, pr.Values, 1e-9)
}

func TestLinks(t *testing.T) {
	for _, tc := range []struct {
		c   *Continuous
		par []float64
		idx []int
	}{
		{Norm, []float64{1, 2}, []int{0, 1}},
		{Expon, []float64{1, 2}, []int{0, 1}},
		{WeibullMin, []float64{1.5, 1, 2}, []int{0, 1, 2}},
		{GenPareto, []float64{0.3, 1, 2}, []int{1, 2}},
		{GenPareto, []float64{-0.3, 1, 2}, []int{1, 2}},
		{GenPareto, []float64{0, 1, 2}, []int{1, 2}},
	} {
		link := tc.c.Family().Link
		require.NotNil(t, link, tc.c.Name())
		rv, err := tc.c.Freeze(tc.par...)
		require.NoError(t, err)
		for _, q := range []float64{0.1, 0.5, 0.9} {
			x := rv.ISF(q)
			for _, i := range tc.idx {
				got, err := link(x, math.Log(q), tc.par, i)
				require.NoError(t, err)
				assert.InDelta(t, tc.par[i], got, 1e-9, "%s%v link %d at SF %v", tc.c.Name(), tc.par, i, q)
			}
		}
	}

	_, err := GenPareto.Family().Link(1, -1, []float64{0.3, 0, 1}, 0)
	assert.True(t, errors.Is(err, ErrNotImplemented))
	_, err = Norm.Family().Link(1, -1, []float64{0, 1}, 2)
	assert.True(t, errors.Is(err, ErrNotImplemented))
}

func TestRegistry(t *testing.T) {
	cont, disc := Names()
	assert.Equal(t, []string{"expon", "gamma", "genpareto", "lognorm", "norm", "rayleigh", "uniform", "weibull_min"}, cont)
	assert.Equal(t, []string{"bernoulli", "binom", "geom", "poisson"}, disc)
	for _, name := range cont {
		c, err := ContinuousByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
	for _, name := range disc {
		d, err := DiscreteByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, d.Name())
	}
	_, err := ContinuousByName("binom")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = DiscreteByName("norm")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestProfileFixInfinite(t *testing.T) {
	pr := &Profile{
		Args:       []float64{0, 1, 2, 3},
		Values:     []float64{math.Inf(-1), -1, 0, math.Inf(-1)},
		CrossLevel: -2,
	}
	pr.fixInfinite(2)
	// Each infinite point moves onto its finite neighbor at the
	// level CrossLevel-1.
	assert.Equal(t, []float64{1, 1, 2, 2}, pr.Args)
	assert.Equal(t, []float64{-3, -1, 0, -3}, pr.Values)

	pr = &Profile{Args: []float64{0, 1}, Values: []float64{-1, 0}, CrossLevel: -2}
	pr.fixInfinite(2)
	assert.Equal(t, []float64{0, 1}, pr.Args)
	assert.Equal(t, []float64{-1, 0}, pr.Values)
}

func TestProfileInfiniteObjective(t *testing.T) {
	// The product of spacings is zero once loc reaches the smallest
	// datum, so the walk above the estimate ends at an infinite
	// point.
	data := sample(t, Expon, 500, 4, 10, 3)
	f, err := Expon.Fit(data, FitOptions{Method: MPS})
	require.NoError(t, err)
	gap := f.Data[0] - f.Par[0]
	require.Greater(t, gap, 0.0)

	h := 0.6 * gap
	pmin, pmax := f.Par[0]-100*h, f.Par[0]+100*h
	pr, err := f.Profile(ProfileOptions{Index: 0, PMin: &pmin, PMax: &pmax, N: 201})
	require.NoError(t, err)
	for i, v := range pr.Values {
		assert.False(t, math.IsInf(v, 0) || math.IsNaN(v), "Values[%d] = %v", i, v)
	}
	assert.True(t, sortedAsc(pr.Args), "Args not sorted: %v", pr.Args)

	lo, hi, err := pr.CI(0.05)
	require.NoError(t, err)
	assert.Less(t, lo, f.Par[0])
	assert.Greater(t, hi, f.Par[0])
	assert.LessOrEqual(t, hi, f.Data[0])
}
