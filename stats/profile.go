// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"github.com/aclements/go-distfit/mathx"
	"github.com/aclements/go-distfit/vec"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultProfilePoints is the default number of grid points of a
// profile.
const DefaultProfilePoints = 100

// ProfileTarget is the quantity a Profile varies.
type ProfileTarget int

const (
	// ProfileParam profiles a distribution parameter.
	ProfileParam ProfileTarget = iota

	// ProfileQuantile profiles the quantile x with a fixed survival
	// probability.
	ProfileQuantile

	// ProfileLogSF profiles the log survival probability at a
	// fixed quantile.
	ProfileLogSF
)

func (t ProfileTarget) String() string {
	switch t {
	case ProfileParam:
		return "param"
	case ProfileQuantile:
		return "x"
	case ProfileLogSF:
		return "logSF"
	}
	return "ProfileTarget(?)"
}

// ProfileOptions are options for Fitted.Profile. The zero value
// profiles the first free parameter.
type ProfileOptions struct {
	// Index is the parameter held fixed while the others are
	// re-estimated. When profiling X or LogSF, this parameter is
	// solved from the target with the link function. If Index is
	// 0 and parameter 0 is fixed in the fit, the first free
	// parameter is used.
	Index int

	// X, if non-nil, profiles the quantile X: the log survival
	// probability at X is held at its fitted value.
	X *float64

	// LogSF, if non-nil and X is nil, profiles the log survival
	// probability LogSF: the corresponding quantile is held at its
	// fitted value.
	LogSF *float64

	// PMin and PMax bound the profiled values. If either is nil,
	// the grid is centered on the estimate with a width derived
	// from the delta-method variance.
	PMin, PMax *float64

	// N is the maximum number of grid points. If zero,
	// DefaultProfilePoints is used.
	N int

	// Alpha is the smallest significance level CI can resolve. If
	// zero, DefaultAlpha is used.
	Alpha float64

	// Link relates quantiles and survival probabilities to
	// parameter Index. If nil, the family's link is used.
	Link LinkFunc

	// Logger, if non-nil, receives debug output.
	Logger *zap.Logger
}

// A Profile is a profile log-likelihood (or log product of spacings)
// curve. Each point holds one quantity fixed and re-estimates the
// other free parameters.
type Profile struct {
	// Target is what is profiled and Index is the parameter
	// fixed (directly, or through the link function).
	Target ProfileTarget
	Index  int

	// X and LogSF are the fixed quantile and log survival
	// probability for the ProfileQuantile and ProfileLogSF
	// targets.
	X, LogSF float64

	// Args are the profiled values in increasing order and Values
	// the maximized log objective at each.
	Args, Values []float64

	// Opt is the estimate of the profiled quantity.
	Opt float64

	// LMax is the maximum of the log objective.
	LMax float64

	// CrossLevel is the level of the profile corresponding to
	// Alpha: LMax - χ²₁(1-Alpha)/2.
	CrossLevel float64

	// PMin and PMax are the bounds of the grid.
	PMin, PMax float64

	// Alpha is the significance level the profile was built for.
	Alpha float64
}

func chi2ISF1(alpha float64) float64 {
	return distuv.ChiSquared{K: 1}.Quantile(1 - alpha)
}

// Profile computes the profile of the fitted objective for the target
// selected by opts.
//
// Starting at the estimate, it walks outward over the grid in both
// directions, re-estimating the remaining free parameters at each
// point from the solution at the previous one. Each walk stops at the
// first point whose value falls below CrossLevel.
func (f *Fitted) Profile(opts ProfileOptions) (*Profile, error) {
	np := len(f.Par)
	alpha := opts.Alpha
	if alpha == 0 {
		alpha = DefaultAlpha
	}
	if !(alpha > 0 && alpha < 1) {
		return nil, errors.Wrapf(ErrInvalidArgument, "alpha %g not in (0, 1)", alpha)
	}
	n := opts.N
	if n == 0 {
		n = DefaultProfilePoints
	}
	if n < 2 {
		return nil, errors.Wrapf(ErrInvalidArgument, "profile needs at least 2 points, got %d", n)
	}
	logger := opts.Logger
	if logger == nil {
		logger = f.logger
	}

	ix := opts.Index
	if ix < 0 || ix >= np {
		return nil, errors.Wrapf(ErrInvalidArgument, "parameter index %d out of range [0, %d)", ix, np)
	}
	if f.fixed(ix) {
		if ix != 0 || len(f.free) == 0 {
			return nil, errors.Wrapf(ErrInvalidArgument, "parameter %d is fixed; the profiled parameter must be free", ix)
		}
		ix = f.free[0]
	}
	var free []int
	for _, i := range f.free {
		if i != ix {
			free = append(free, i)
		}
	}

	pr := &Profile{
		Index: ix,
		LMax:  f.LMax(),
		Alpha: alpha,
	}
	lrange := 0.5 * chi2ISF1(alpha)
	pr.CrossLevel = pr.LMax - lrange

	link := opts.Link
	if link == nil {
		link = f.dist.fam.Link
	}
	var localLink func(fix float64, par []float64) (float64, error)
	switch {
	case opts.X != nil:
		pr.Target = ProfileQuantile
		pr.X = *opts.X
		pr.LogSF = math.Log(f.SF(pr.X))
		pr.Opt = pr.X
		localLink = func(fix float64, par []float64) (float64, error) {
			return link(fix, pr.LogSF, par, ix)
		}
	case opts.LogSF != nil:
		pr.Target = ProfileLogSF
		pr.LogSF = *opts.LogSF
		pr.X = f.ISF(math.Exp(pr.LogSF))
		pr.Opt = pr.LogSF
		localLink = func(fix float64, par []float64) (float64, error) {
			return link(pr.X, fix, par, ix)
		}
	default:
		pr.Target = ProfileParam
		pr.Opt = f.Par[ix]
		localLink = func(fix float64, par []float64) (float64, error) {
			return fix, nil
		}
	}
	if pr.Target != ProfileParam {
		if link == nil {
			return nil, errors.Wrapf(ErrNotImplemented, "%s: no link function to profile %v", f.dist.name, pr.Target)
		}
		if _, err := localLink(pr.Opt, f.Par); err != nil {
			return nil, err
		}
	}

	pvec := f.profileGrid(pr, opts, n)

	obj := f.dist.objective(f.Method)
	nlogfun := func(x []float64, fix float64) float64 {
		par := append([]float64(nil), f.Par...)
		for j, i := range free {
			par[i] = x[j]
		}
		v, err := localLink(fix, par)
		if err != nil || math.IsNaN(v) {
			return inf
		}
		par[ix] = v
		l := obj(par, f.Data)
		if math.IsNaN(l) {
			return inf
		}
		return l
	}
	solve := func(x []float64, fix float64) ([]float64, float64) {
		res := mathx.Minimize(func(x []float64) float64 { return nlogfun(x, fix) }, x)
		return res.X, -res.F
	}

	values := make([]float64, len(pvec))
	for i := range values {
		values[i] = nan
	}
	k1 := 0
	for i, p := range pvec {
		if p >= pr.Opt {
			k1 = i
			break
		}
	}

	start := pick(f.Par, free)
	lo, hi := 0, len(pvec)-1
	x := start
	for i := k1; i >= 0; i-- {
		x, values[i] = solve(x, pvec[i])
		if values[i] < pr.CrossLevel {
			lo = i
			break
		}
	}
	x = start
	for i := k1 + 1; i < len(pvec); i++ {
		x, values[i] = solve(x, pvec[i])
		if values[i] < pr.CrossLevel {
			hi = i
			break
		}
	}
	logger.Debug("profile walk done",
		zap.String("dist", f.dist.name),
		zap.Stringer("target", pr.Target),
		zap.Int("index", ix),
		zap.Int("points", hi-lo+1),
		zap.Int("grid", len(pvec)))

	pr.Args = append([]float64(nil), pvec[lo:hi+1]...)
	pr.Values = append([]float64(nil), values[lo:hi+1]...)
	pr.fixInfinite(lrange)
	return pr, nil
}

// fixInfinite replaces points where the objective is -Inf by points
// at level CrossLevel - lrange/2, interpolated from their neighbors.
func (pr *Profile) fixInfinite(lrange float64) {
	var ind []int
	for i, v := range pr.Values {
		if math.IsInf(v, -1) {
			ind = append(ind, i)
			pr.Values[i] = -math.MaxFloat64 / 2
		}
	}
	if len(ind) == 0 {
		return
	}
	cl := pr.CrossLevel - lrange/2
	t0 := make([]float64, len(ind))
	for j, i := range ind {
		i1 := i
		if i > 0 {
			i1 = i - 1
		}
		if i1+1 < len(pr.Args) {
			t0[j] = eCross(pr.Args, pr.Values, i1, cl)
		} else {
			t0[j] = pr.Args[i]
		}
	}
	for j, i := range ind {
		pr.Values[i] = cl
		pr.Args[i] = t0[j]
	}
}

// profileGrid returns the sorted grid of profiled values and records
// its bounds in pr.
func (f *Fitted) profileGrid(pr *Profile, opts ProfileOptions, n int) []float64 {
	if opts.PMin != nil && opts.PMax != nil {
		pr.PMin, pr.PMax = *opts.PMin, *opts.PMax
		return vec.Linspace(pr.PMin, pr.PMax, n)
	}

	pOpt := pr.Opt
	pcrit := distuv.UnitNormal.Quantile(1-pr.Alpha/2) * math.Sqrt(f.profileVariance(pr)) * 1.5
	if math.IsNaN(pcrit) || math.IsInf(pcrit, 0) || pcrit == 0 {
		pcrit = math.Max(0.1*math.Abs(pOpt), 1e-3)
		f.logger.Debug("delta-method variance unavailable; using default grid width",
			zap.Float64("pcrit", pcrit))
	}
	pr.PMin, pr.PMax = pOpt-5*pcrit, pOpt+5*pcrit
	if opts.PMin != nil {
		pr.PMin = *opts.PMin
	}
	if opts.PMax != nil {
		pr.PMax = *opts.PMax
	}

	n4 := n / 4
	var pvec []float64
	pvec = append(pvec, vec.Linspace(pr.PMin, pOpt-pcrit, n4+1)...)
	pvec = append(pvec, pOpt)
	pvec = append(pvec, vec.Linspace(pOpt-pcrit, pOpt+pcrit, n-2*n4)...)
	pvec = append(pvec, vec.Linspace(pOpt+pcrit, pr.PMax, n4+1)...)
	return vec.Unique(pvec)
}

// profileVariance returns the delta-method variance of the profiled
// quantity.
func (f *Fitted) profileVariance(pr *Profile) float64 {
	if pr.Target == ProfileParam {
		return f.Cov.At(pr.Index, pr.Index)
	}
	if len(f.free) == 0 {
		return 0
	}

	var g func(par []float64) float64
	switch pr.Target {
	case ProfileQuantile:
		q := math.Exp(pr.LogSF)
		g = func(par []float64) float64 {
			return f.dist.at(q, par, f.dist.isfAt)
		}
	case ProfileLogSF:
		g = func(par []float64) float64 {
			return math.Log(f.dist.at(pr.X, par, f.dist.sfAt))
		}
	}
	grad := mathx.Gradient(func(x []float64) float64 {
		return g(f.expand(f.Par, x))
	}, pick(f.Par, f.free))

	m := len(f.free)
	cov := mat.NewSymDense(m, nil)
	for a, i := range f.free {
		for b := a; b < m; b++ {
			cov.SetSym(a, b, f.Cov.At(i, f.free[b]))
		}
	}
	gv := mat.NewVecDense(m, grad)
	return mat.Inner(gv, cov, gv)
}

// CI returns the confidence interval at significance level alpha,
// where the profile crosses LMax - χ²₁(1-alpha)/2.
//
// If the profile does not cross that level, the interval is the whole
// grid. With a single crossing, the interval extends from it to the
// grid bound on the side where the profile is above the level. With
// more than two crossings, the outermost are used.
//
// alpha must be at least the Alpha the profile was built for, since
// the profile was not computed beyond that level.
func (pr *Profile) CI(alpha float64) (lo, hi float64, err error) {
	if alpha < pr.Alpha || alpha >= 1 {
		return 0, 0, errors.Wrapf(ErrInvalidArgument, "cannot compute CI with alpha %g for a profile with alpha %g", alpha, pr.Alpha)
	}
	level := pr.LMax - 0.5*chi2ISF1(alpha)
	ind := findCross(pr.Values, level)
	switch len(ind) {
	case 0:
		return pr.PMin, pr.PMax, nil
	case 1:
		x0 := eCross(pr.Args, pr.Values, ind[0], level)
		if pr.Values[ind[0]] > pr.Values[ind[0]+1] {
			// Decreasing through the crossing: the interval
			// is to its left.
			return pr.PMin, x0, nil
		}
		return x0, pr.PMax, nil
	}
	return eCross(pr.Args, pr.Values, ind[0], level), eCross(pr.Args, pr.Values, ind[len(ind)-1], level), nil
}
