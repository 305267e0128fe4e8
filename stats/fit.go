// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/aclements/go-distfit/mathx"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultAlpha is the default significance level of confidence
// intervals.
const DefaultAlpha = 0.05

// Method is a parameter estimation method.
type Method int

const (
	// ML is maximum likelihood estimation.
	ML Method = iota

	// MPS is maximum product of spacings estimation. It is
	// consistent in some cases where ML is not, such as when the
	// support depends on the parameters.
	MPS
)

func (m Method) String() string {
	switch m {
	case ML:
		return "ml"
	case MPS:
		return "mps"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod parses "ml" or "mps" (case insensitive).
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "ml", "mle":
		return ML, nil
	case "mps":
		return MPS, nil
	}
	return 0, errors.Wrapf(ErrInvalidArgument, "unknown estimation method %q", s)
}

// FitOptions are options for Continuous.Fit. The zero value fits all
// parameters by maximum likelihood from an automatic starting point.
type FitOptions struct {
	// Method is the estimation method.
	Method Method

	// Alpha is the significance level of the confidence bounds.
	// If zero, DefaultAlpha is used.
	Alpha float64

	// ParFix, if non-nil, holds one entry per parameter (shapes,
	// loc, scale). Finite entries hold that parameter fixed at the
	// given value; NaN entries are estimated.
	ParFix []float64

	// Start is the starting point of the search. If ParFix has
	// fixed entries, Start must hold exactly one value per free
	// parameter. Otherwise it holds leading parameters (shapes,
	// then optionally loc and scale); missing shapes start at 1
	// and missing loc and scale are estimated from the sample
	// mean and variance.
	Start []float64

	// SkipSearch evaluates the fit at the starting point without
	// optimizing.
	SkipSearch bool

	// InPlace sorts the caller's data slice instead of a copy.
	InPlace bool

	// Logger, if non-nil, receives debug output about the search.
	Logger *zap.Logger
}

// Fitted is a distribution whose parameters were estimated from data.
// It embeds the frozen distribution with the estimated parameters.
type Fitted struct {
	*RV

	// Data is the sample, sorted in increasing order.
	Data []float64

	// Method is the estimation method.
	Method Method

	// Par holds the estimated parameters (shapes, loc, scale),
	// including any fixed ones.
	Par []float64

	// ParFix is a copy of FitOptions.ParFix, or nil.
	ParFix []float64

	// Cov is the estimated covariance of Par. Rows and columns of
	// fixed parameters are zero. If the observed information
	// matrix could not be inverted, all entries are NaN.
	Cov *mat.SymDense

	// ParLower and ParUpper are normal-approximation confidence
	// bounds on Par at level 1-Alpha.
	ParLower, ParUpper []float64

	// LLMax is the log-likelihood at Par and LPSMax is the log
	// product of spacings at Par.
	LLMax, LPSMax float64

	// PValue is the p-value of Moran's goodness-of-fit test.
	PValue float64

	// Alpha is the significance level of the confidence bounds.
	Alpha float64

	free   []int
	logger *zap.Logger
}

// Fit estimates the parameters of c from data.
//
// The objective (the negative log-likelihood, or the negative log
// product of spacings) is minimized over the free parameters with the
// Nelder-Mead simplex method. The covariance of the estimates is the
// pseudo-inverse of the numerical Hessian of the negative
// log-likelihood with respect to the free parameters.
//
// Fit returns an error matching ErrInvalidArgument for empty data, a
// ParFix of the wrong length, or the wrong number of starting values.
func (c *Continuous) Fit(data []float64, opts FitOptions) (*Fitted, error) {
	np := c.NumParams()
	if len(data) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "no data")
	}
	alpha := opts.Alpha
	if alpha == 0 {
		alpha = DefaultAlpha
	}
	if !(alpha > 0 && alpha < 1) {
		return nil, errors.Wrapf(ErrInvalidArgument, "alpha %g not in (0, 1)", alpha)
	}
	if opts.Method != ML && opts.Method != MPS {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown estimation method %v", opts.Method)
	}
	if opts.ParFix != nil && len(opts.ParFix) != np {
		return nil, errors.Wrapf(ErrInvalidArgument, "%s: ParFix has %d entries, want %d", c.name, len(opts.ParFix), np)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &Fitted{
		Method: opts.Method,
		Alpha:  alpha,
		logger: logger,
	}
	if opts.ParFix != nil {
		f.ParFix = append([]float64(nil), opts.ParFix...)
	}
	for i := 0; i < np; i++ {
		if !f.fixed(i) {
			f.free = append(f.free, i)
		}
	}
	f.Data = sortedCopy(data, opts.InPlace)

	start, err := c.fitStart(f, opts.Start)
	if err != nil {
		return nil, err
	}

	x := pick(start, f.free)
	if !opts.SkipSearch && len(x) > 0 {
		obj := c.objective(f.Method)
		fitfun := func(x []float64) float64 {
			return obj(f.expand(start, x), f.Data)
		}
		res := mathx.Minimize(fitfun, x)
		logger.Debug("fit search done",
			zap.String("dist", c.name),
			zap.Stringer("method", f.Method),
			zap.Stringer("status", res.Status),
			zap.Float64("objective", res.F),
			zap.Float64s("start", x),
			zap.Float64s("par", res.X),
			zap.Error(res.Err))
		x = res.X
	}
	f.Par = f.expand(start, x)
	f.RV = &RV{dist: c, par: slices.Clone(f.Par)}

	f.computeCov()
	z := distuv.UnitNormal.Quantile(1 - alpha/2)
	f.ParLower = make([]float64, np)
	f.ParUpper = make([]float64, np)
	for i, p := range f.Par {
		d := z * math.Sqrt(f.Cov.At(i, i))
		f.ParLower[i], f.ParUpper[i] = p-d, p+d
	}

	f.LLMax = -c.nnlf(f.Par, f.Data)
	f.LPSMax = -c.nlogps(f.Par, f.Data)
	f.PValue = c.pvalue(f.Par, f.Data, len(f.free))
	return f, nil
}

// objective returns the function minimized by method m.
func (c *Continuous) objective(m Method) func(par, data []float64) float64 {
	if m == MPS {
		return c.nlogps
	}
	return c.nnlf
}

// fitStart returns the full starting parameter vector.
func (c *Continuous) fitStart(f *Fitted, start []float64) ([]float64, error) {
	k, np := c.numShapes, c.NumParams()
	someFixed := len(f.free) < np

	par := make([]float64, np)
	switch {
	case start != nil && someFixed:
		if len(start) != len(f.free) {
			return nil, errors.Wrapf(ErrInvalidArgument, "%s: got %d starting values, want %d free parameters",
				c.name, len(start), len(f.free))
		}
		for i := range par {
			par[i] = f.ParFix[i]
		}
		for j, i := range f.free {
			par[i] = start[j]
		}
		return par, nil

	case len(start) > np:
		return nil, errors.Wrapf(ErrInvalidArgument, "%s: got %d starting values, want at most %d",
			c.name, len(start), np)
	}

	for i := 0; i < k; i++ {
		par[i] = 1
	}
	copy(par, start)
	if len(start) < np {
		for i := 0; i < k; i++ {
			if f.fixed(i) {
				par[i] = f.ParFix[i]
			}
		}
		loc, scale := 0.0, 1.0
		if p, ok := c.resolve(append(par[:k:k], 0, 1)); ok {
			ms := c.moments(p, MV)
			loc, scale = estLocScale(f.Data, ms.Mean, ms.Variance)
		}
		if len(start) <= k {
			par[k] = loc
		}
		par[k+1] = scale
	}
	for i := range par {
		if f.fixed(i) {
			par[i] = f.ParFix[i]
		}
	}
	c.adjustStart(f, par)
	return par, nil
}

// adjustStart moves a free loc (and, if needed, scale) so that the
// data lie strictly inside the support, making the starting objective
// finite.
func (c *Continuous) adjustStart(f *Fitted, par []float64) {
	k := c.numShapes
	if !math.IsInf(c.nnlf(par, f.Data), 1) {
		return
	}
	p, ok := c.resolve(par)
	if !ok {
		return
	}
	lo, hi := f.Data[0], f.Data[len(f.Data)-1]
	spread := math.Max(hi-lo, math.Abs(hi)*1e-3)
	if spread == 0 {
		spread = 1
	}
	if !f.fixed(k) {
		if !math.IsInf(p.sup.A, -1) && !math.IsInf(p.sup.B, 1) {
			// Bounded support: map the data into its middle.
			if !f.fixed(k + 1) {
				par[k+1] = 1.1 * spread / (p.sup.B - p.sup.A)
			}
			par[k] = (lo+hi)/2 - par[k+1]*(p.sup.A+p.sup.B)/2
		} else if !math.IsInf(p.sup.A, -1) {
			par[k] = lo - par[k+1]*p.sup.A - 0.01*spread
		} else if !math.IsInf(p.sup.B, 1) {
			par[k] = hi - par[k+1]*p.sup.B + 0.01*spread
		}
	}
	f.logger.Debug("adjusted starting point", zap.String("dist", c.name), zap.Float64s("start", par))
}

// fixed reports whether parameter i is held fixed.
func (f *Fitted) fixed(i int) bool {
	return f.ParFix != nil && !math.IsNaN(f.ParFix[i])
}

// Free returns the indexes of the estimated (not fixed) parameters.
func (f *Fitted) Free() []int {
	return append([]int(nil), f.free...)
}

// expand returns a copy of par with the free parameters replaced by
// x.
func (f *Fitted) expand(par, x []float64) []float64 {
	out := append([]float64(nil), par...)
	for j, i := range f.free {
		out[i] = x[j]
	}
	return out
}

func pick(par []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for j, i := range idx {
		out[j] = par[i]
	}
	return out
}

// Objective returns the estimation objective at par: the negative
// log-likelihood for ML, or the negative log product of spacings for
// MPS.
func (f *Fitted) Objective(par []float64) float64 {
	return f.dist.objective(f.Method)(par, f.Data)
}

// LMax returns the maximized log objective: LLMax for ML and LPSMax
// for MPS.
func (f *Fitted) LMax() float64 {
	if f.Method == MPS {
		return f.LPSMax
	}
	return f.LLMax
}

func (f *Fitted) computeCov() {
	np := len(f.Par)
	f.Cov = mat.NewSymDense(np, nil)
	if len(f.free) == 0 {
		return
	}

	c := f.dist
	nnlf := func(x []float64) float64 {
		return c.nnlf(f.expand(f.Par, x), f.Data)
	}
	h := mathx.Hessian(nnlf, pick(f.Par, f.free))
	pinv, ok := mathx.PInv(h, 0)
	if !ok {
		f.logger.Warn("observed information matrix is not invertible",
			zap.String("dist", c.name), zap.Float64s("par", f.Par))
		for i := 0; i < np; i++ {
			for j := i; j < np; j++ {
				f.Cov.SetSym(i, j, nan)
			}
		}
		return
	}
	for a, i := range f.free {
		for b, j := range f.free {
			if j < i {
				continue
			}
			f.Cov.SetSym(i, j, (pinv.At(a, b)+pinv.At(b, a))/2)
		}
	}
}

// meanVariance returns the sample mean and unbiased variance of xs.
func meanVariance(xs []float64) (float64, float64) {
	if len(xs) < 2 {
		return stat.Mean(xs, nil), 0
	}
	return stat.MeanVariance(xs, nil)
}

func (f *Fitted) String() string {
	return fmt.Sprintf("%s fit (%v): par %v, lower %v, upper %v, p-value %.4g",
		f.dist.name, f.Method, f.Par, f.ParLower, f.ParUpper, f.PValue)
}
